// SPDX-License-Identifier: AGPL-3.0-only
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizer_Poster(t *testing.T) {
	n := New("https://api.example.com")

	assert.Equal(t, "", n.Poster("", TypeVideo))
	assert.Equal(t, "https://api.example.com/media/p.jpg", n.Poster("/media/p.jpg", TypeVideo))
	assert.Equal(t, "https://api.example.com/media/p.jpg", n.Poster(`\media\p.jpg`, TypeVideo))
	assert.Equal(t, "", n.Poster("/media/p.jpg", TypeImage))
	assert.Equal(t, "", n.Poster("/media/p.jpg", TypeText))
	assert.Equal(t, "", n.Poster("/media/uploads/videos/p.mp4", TypeVideo))
}
