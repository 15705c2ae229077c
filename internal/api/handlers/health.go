// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"

	"github.com/fluffyriot/postview/internal/stats"
	"github.com/fluffyriot/postview/internal/worker"
	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheckHandler(c *gin.Context) {
	sources := gin.H{}
	for _, name := range []string{worker.SourceFeed, worker.SourceMine} {
		entry, ok := h.Snapshot.Get(name)
		if !ok {
			continue
		}
		sources[name] = gin.H{
			"stats":     stats.Compute(name, entry.Posts),
			"synced_at": entry.SyncedAt,
			"error":     entry.Err,
		}
	}

	scheduler := false
	if h.Worker != nil {
		scheduler = h.Worker.IsActive()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"api_base":  h.Normalizer.APIBase(),
		"scheduler": scheduler,
		"sources":   sources,
	})
}
