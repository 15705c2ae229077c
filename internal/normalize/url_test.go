// SPDX-License-Identifier: AGPL-3.0-only
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("Should fall back to the default base", func(t *testing.T) {
		assert.Equal(t, DefaultAPIBase, New("").APIBase())
		assert.Equal(t, DefaultAPIBase, New("   ").APIBase())
	})

	t.Run("Should trim trailing slashes", func(t *testing.T) {
		assert.Equal(t, "https://cdn.example.com", New("https://cdn.example.com//").APIBase())
	})
}

func TestNormalizer_URL(t *testing.T) {
	n := New("https://api.example.com")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"absolute http", "http://x.test/a.png", "http://x.test/a.png"},
		{"absolute https upper", "HTTPS://x.test/a.png", "HTTPS://x.test/a.png"},
		{"media root", "/media/a.png", "https://api.example.com/media/a.png"},
		{"backslashes in media root", `\media\uploads\videos\x.mp4`, "https://api.example.com/media/uploads/videos/x.mp4"},
		{"backslashes in absolute", `http://x.test\media\a.png`, "http://x.test/media/a.png"},
		{"relative opaque", "static/a.png", "static/a.png"},
		{"other root", "/static/a.png", "/static/a.png"},
		{"media without leading slash", "media/a.png", "media/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.URL(tt.in))
		})
	}
}

func TestNormalizer_URL_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"/media/a.png",
		`\media\b.jpg`,
		"https://x.test/c.gif",
		"relative/d",
		`C:\media\e.png`,
		"/media/",
	}

	for _, base := range []string{"", "https://api.example.com", "api.example.com"} {
		n := New(base)
		for _, in := range inputs {
			once := n.URL(in)
			assert.Equal(t, once, n.URL(once), "base=%q input=%q", base, in)
		}
	}
}
