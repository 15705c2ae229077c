// SPDX-License-Identifier: AGPL-3.0-only
package normalize

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Post builds the canonical record for one raw post. It never fails: missing
// or malformed fields degrade to a text post with empty media.
func (n *Normalizer) Post(raw RawPost, fallbackAvatar string) Post {
	mediaList := raw.mediaList()
	normalized := make([]string, 0, len(mediaList))
	for _, m := range mediaList {
		if m == "" {
			continue
		}
		normalized = append(normalized, n.URL(m))
	}

	cls := Classify(raw.str(FieldType), Dedup(normalized))

	out := make(Post, len(raw)+6)
	for k, v := range raw {
		out[k] = cloneValue(v)
	}

	out[FieldType] = string(cls.Type)
	out[FieldMedia] = append([]string{}, cls.Media...)
	out[FieldMediaImages] = append([]string{}, cls.MediaImages...)
	out[FieldVideoSrc] = cls.VideoSrc
	out[FieldPoster] = n.Poster(raw.str(FieldPoster), cls.Type)
	out[FieldAvatar] = n.avatar(raw, fallbackAvatar)

	return out
}

func (n *Normalizer) avatar(raw RawPost, fallback string) string {
	if a := raw.str(FieldAvatar); a != "" {
		return n.URL(a)
	}
	if fallback != "" {
		return fallback
	}
	return raw.str(FieldAvatar)
}

// Posts normalizes every record independently. The output always has the
// same length and order as the input; a nil input yields an empty slice.
func (n *Normalizer) Posts(records []RawPost, fallbackAvatar string) []Post {
	out := make([]Post, len(records))
	for i, r := range records {
		out[i] = n.Post(r, fallbackAvatar)
	}
	return out
}

// PostsParallel is Posts spread over a bounded number of goroutines. The
// result is identical to Posts. It only returns an error when ctx is done.
func (n *Normalizer) PostsParallel(ctx context.Context, records []RawPost, fallbackAvatar string, workers int) ([]Post, error) {
	out := make([]Post, len(records))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i := range records {
		i := i // per-iteration copy (go < 1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = n.Post(records[i], fallbackAvatar)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

func jsonScalar(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
