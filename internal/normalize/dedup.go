// SPDX-License-Identifier: AGPL-3.0-only
package normalize

// Dedup keeps the first occurrence of every URL. Empty entries are dropped.
func Dedup(urls []string) []string {
	out := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))

	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, exists := seen[u]; exists {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}

	return out
}
