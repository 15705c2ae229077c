// SPDX-License-Identifier: AGPL-3.0-only
package stats

import (
	"testing"

	"github.com/fluffyriot/postview/internal/normalize"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	n := normalize.New("")
	posts := n.Posts([]normalize.RawPost{
		{"type": "video", "media": []any{"/media/uploads/videos/v.mp4", "/media/t.jpg"}, "poster": "/media/t.jpg"},
		{"type": "video", "media": []any{"/media/a.jpg", "/media/b.jpg"}},
		{},
	}, "")

	got := Compute("feed", posts)

	assert.Equal(t, SourceStats{
		Source:     "feed",
		Posts:      3,
		Video:      1,
		Image:      1,
		Text:       1,
		WithPoster: 1,
		MediaItems: 3,
		Gallery:    3,
	}, got)
}

func TestCompute_Empty(t *testing.T) {
	assert.Equal(t, SourceStats{Source: "mine"}, Compute("mine", nil))
}
