// SPDX-License-Identifier: AGPL-3.0-only
package normalize

// Poster keeps a thumbnail only for confirmed videos, and never one that
// points at another uploaded video.
func (n *Normalizer) Poster(raw string, finalType MediaType) string {
	if raw == "" {
		return ""
	}

	poster := n.URL(raw)
	if finalType != TypeVideo {
		return ""
	}
	if isVideoUpload(poster) {
		return ""
	}
	return poster
}
