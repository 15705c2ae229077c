// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/fluffyriot/postview/internal/exports"
	"github.com/fluffyriot/postview/internal/worker"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ExportHandler(c *gin.Context) {
	source := c.DefaultQuery("source", worker.SourceFeed)
	entry, _ := h.Snapshot.Get(source)

	var buf bytes.Buffer
	if err := exports.WriteCSV(&buf, entry.Posts); err != nil {
		h.Logger.Error("CSV export failed", "source", source, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	name := fmt.Sprintf("posts-%s-%s.csv", source, time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
