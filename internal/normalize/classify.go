// SPDX-License-Identifier: AGPL-3.0-only
package normalize

import (
	"regexp"
	"strings"
)

type MediaType string

const (
	TypeText  MediaType = "text"
	TypeImage MediaType = "image"
	TypeVideo MediaType = "video"
)

// ParseTypeHint maps the upstream type tag onto a known media type. Anything
// else, including an empty tag, reports ok == false and is treated as unset.
func ParseTypeHint(hint string) (MediaType, bool) {
	switch MediaType(hint) {
	case TypeText, TypeImage, TypeVideo:
		return MediaType(hint), true
	default:
		return "", false
	}
}

const videoUploadMarker = "/uploads/videos/"

var (
	imageExt = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif|bmp|svg)$`)
	videoExt = regexp.MustCompile(`(?i)\.mp4$`)
)

func IsImageLike(u string) bool {
	return imageExt.MatchString(u)
}

func IsVideoLike(u string) bool {
	return strings.Contains(u, videoUploadMarker) || videoExt.MatchString(u)
}

func isVideoUpload(u string) bool {
	return strings.Contains(u, videoUploadMarker)
}

type Classification struct {
	Type        MediaType
	Media       []string
	MediaImages []string
	VideoSrc    string
	// Demoted is set when a video hint had no video evidence and the record
	// fell back to an image gallery.
	Demoted bool
}

// Classify decides the effective type of a record and splits its deduplicated
// media into a video slot and an image gallery.
//
//	hint    media evidence                       result
//	----    ---------------                      ------
//	unset   none                                 text
//	unset   any                                  image
//	!video  any                                  hint, gallery = images or all media
//	video   video candidate                      video, media = [candidate]
//	video   no candidate, images                 image (demoted), media = images
//	video   nothing                              video, empty
func Classify(hint string, media []string) Classification {
	typ, ok := ParseTypeHint(hint)
	if !ok {
		typ = TypeText
		if len(media) > 0 {
			typ = TypeImage
		}
	}

	if typ != TypeVideo {
		images := filterImages(media)
		if len(images) == 0 {
			images = media
		}
		return Classification{
			Type:        typ,
			Media:       media,
			MediaImages: images,
		}
	}

	var videoURL string
	images := make([]string, 0, len(media))

	for _, u := range media {
		if u == "" {
			continue
		}
		isImage := IsImageLike(u)
		if videoURL == "" && (IsVideoLike(u) || !isImage) {
			videoURL = u
		} else if isImage {
			images = append(images, u)
		}
	}

	if videoURL == "" && len(images) > 0 {
		return Classification{
			Type:        TypeImage,
			Media:       images,
			MediaImages: images,
			Demoted:     true,
		}
	}

	out := Classification{
		Type:        TypeVideo,
		Media:       []string{},
		MediaImages: images,
		VideoSrc:    videoURL,
	}
	if videoURL != "" {
		out.Media = []string{videoURL}
	}
	return out
}

func filterImages(media []string) []string {
	images := make([]string, 0, len(media))
	for _, u := range media {
		if IsImageLike(u) {
			images = append(images, u)
		}
	}
	return images
}
