// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) TriggerSyncHandler(c *gin.Context) {
	if h.Worker.IsRunning() {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Sync already in progress",
		})
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.Logger.Error("Panic in manual sync trigger", "panic", r)
			}
		}()
		h.Worker.SyncAll()
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "ok",
		"message": "Sync triggered successfully",
	})
}
