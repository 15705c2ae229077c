// SPDX-License-Identifier: AGPL-3.0-only
package normalize

import (
	"regexp"
	"strings"
)

const DefaultAPIBase = "http://127.0.0.1:8000"

const mediaRootPrefix = "/media/"

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// Normalizer turns raw post records into canonical view models. The API base
// is only used to join media-root paths, it is never fetched.
type Normalizer struct {
	apiBase string
}

func New(apiBase string) *Normalizer {
	apiBase = strings.TrimRight(strings.TrimSpace(apiBase), "/")
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Normalizer{apiBase: apiBase}
}

func (n *Normalizer) APIBase() string {
	return n.apiBase
}

// URL resolves one media reference to an absolute forward-slash URL. Values
// outside the media root are returned with separators fixed but otherwise
// untouched.
func (n *Normalizer) URL(raw string) string {
	if raw == "" {
		return ""
	}

	fixed := strings.ReplaceAll(raw, `\`, "/")
	if absoluteURL.MatchString(fixed) {
		return fixed
	}
	if strings.HasPrefix(fixed, mediaRootPrefix) {
		return n.apiBase + fixed
	}
	return fixed
}
