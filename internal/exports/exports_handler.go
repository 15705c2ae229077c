// SPDX-License-Identifier: AGPL-3.0-only
package exports

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fluffyriot/postview/internal/fetcher"
	"github.com/fluffyriot/postview/internal/normalize"
)

var Header = []string{"id", "type", "video_src", "poster", "avatar", "media", "media_images", "text"}

const listSeparator = "|"

// WriteCSV writes one row per canonical post.
func WriteCSV(w io.Writer, posts []normalize.Post) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, p := range posts {
		row := []string{
			p.ID(),
			string(p.Type()),
			p.VideoSrc(),
			p.Poster(),
			p.Avatar(),
			strings.Join(p.Media(), listSeparator),
			strings.Join(p.MediaImages(), listSeparator),
			fetcher.StripHTMLToText(p.Text()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportToFile writes the CSV next to a temporary file first so a failed
// export never leaves a truncated file behind.
func ExportToFile(path string, posts []normalize.Post) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, posts); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
