// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"

	"github.com/fluffyriot/postview/internal/normalize"
	"github.com/fluffyriot/postview/internal/worker"
	"github.com/gin-gonic/gin"
)

const maxNormalizeBody = 4 << 20

// PostsHandler serves the last synced canonical posts of one source,
// optionally narrowed to a single media type.
func (h *Handler) PostsHandler(c *gin.Context) {
	source := c.DefaultQuery("source", worker.SourceFeed)
	if source != worker.SourceFeed && source != worker.SourceMine {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "unknown source " + source})
		return
	}

	var want normalize.MediaType
	if v := c.Query("type"); v != "" {
		t, ok := normalize.ParseTypeHint(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "unknown type " + v})
			return
		}
		want = t
	}

	entry, _ := h.Snapshot.Get(source)

	posts := make([]normalize.Post, 0, len(entry.Posts))
	for _, p := range entry.Posts {
		if want != "" && p.Type() != want {
			continue
		}
		posts = append(posts, p)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"source":    source,
		"total":     entry.Total,
		"synced_at": entry.SyncedAt,
		"error":     entry.Err,
		"posts":     posts,
	})
}

func (h *Handler) PostHandler(c *gin.Context) {
	p, ok := h.Snapshot.Find(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "post not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// NormalizeHandler runs the normalizer over posted raw records. A JSON null
// body is treated as an empty list.
func (h *Handler) NormalizeHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxNormalizeBody)

	var raw []normalize.RawPost
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "body must be a JSON array of posts: " + err.Error()})
		return
	}

	fallback := c.DefaultQuery("fallback_avatar", h.Config.FallbackAvatar)
	c.JSON(http.StatusOK, h.Normalizer.Posts(raw, fallback))
}
