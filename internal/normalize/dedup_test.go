// SPDX-License-Identifier: AGPL-3.0-only
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedup(t *testing.T) {
	t.Run("Should keep first occurrence order", func(t *testing.T) {
		got := Dedup([]string{"b", "a", "b", "c", "a"})
		assert.Equal(t, []string{"b", "a", "c"}, got)
	})

	t.Run("Should drop empty entries", func(t *testing.T) {
		got := Dedup([]string{"", "a", ""})
		assert.Equal(t, []string{"a"}, got)
	})

	t.Run("Should return an empty non-nil slice for nil input", func(t *testing.T) {
		got := Dedup(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Should compare exact strings only", func(t *testing.T) {
		got := Dedup([]string{"http://x/A.png", "http://x/a.png"})
		assert.Len(t, got, 2)
	})
}
