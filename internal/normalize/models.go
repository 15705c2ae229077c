// SPDX-License-Identifier: AGPL-3.0-only
package normalize

const (
	FieldType        = "type"
	FieldMedia       = "media"
	FieldMediaImages = "mediaImages"
	FieldVideoSrc    = "videoSrc"
	FieldPoster      = "poster"
	FieldAvatar      = "avatar"
)

// RawPost is a post record as decoded from the content service. Every field
// is optional and may carry an unexpected shape.
type RawPost map[string]any

// Post is the canonical view model. Derived fields are always present, the
// rest of the record is carried over from the raw post.
type Post map[string]any

func (r RawPost) str(key string) string {
	s, _ := r[key].(string)
	return s
}

// mediaList reads the media array. Non-string entries count as empty, a
// non-array value counts as absent.
func (r RawPost) mediaList() []string {
	switch v := r[FieldMedia].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, _ := item.(string)
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

func (p Post) str(key string) string {
	s, _ := p[key].(string)
	return s
}

func (p Post) list(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func (p Post) Type() MediaType {
	return MediaType(p.str(FieldType))
}

func (p Post) Media() []string       { return p.list(FieldMedia) }
func (p Post) MediaImages() []string { return p.list(FieldMediaImages) }
func (p Post) VideoSrc() string      { return p.str(FieldVideoSrc) }
func (p Post) Poster() string        { return p.str(FieldPoster) }
func (p Post) Avatar() string        { return p.str(FieldAvatar) }

// ID returns the passthrough id as a string, whatever its JSON type.
func (p Post) ID() string {
	switch v := p["id"].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return jsonScalar(v)
	}
}

func (p Post) Text() string {
	return p.str("text")
}
