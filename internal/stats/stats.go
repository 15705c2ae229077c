// SPDX-License-Identifier: AGPL-3.0-only
package stats

import (
	"github.com/fluffyriot/postview/internal/normalize"
)

type SourceStats struct {
	Source     string `json:"source"`
	Posts      int    `json:"posts"`
	Video      int    `json:"video"`
	Image      int    `json:"image"`
	Text       int    `json:"text"`
	WithPoster int    `json:"with_poster"`
	MediaItems int    `json:"media_items"`
	Gallery    int    `json:"gallery_items"`
}

// Compute breaks a set of canonical posts down by resolved type.
func Compute(source string, posts []normalize.Post) SourceStats {
	s := SourceStats{Source: source, Posts: len(posts)}

	for _, p := range posts {
		switch p.Type() {
		case normalize.TypeVideo:
			s.Video++
		case normalize.TypeImage:
			s.Image++
		default:
			s.Text++
		}
		if p.Poster() != "" {
			s.WithPoster++
		}
		s.MediaItems += len(p.Media())
		s.Gallery += len(p.MediaImages())
	}

	return s
}
