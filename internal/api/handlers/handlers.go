// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"github.com/charmbracelet/log"
	"github.com/fluffyriot/postview/internal/config"
	"github.com/fluffyriot/postview/internal/logging"
	"github.com/fluffyriot/postview/internal/middleware"
	"github.com/fluffyriot/postview/internal/normalize"
	"github.com/fluffyriot/postview/internal/worker"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	Normalizer *normalize.Normalizer
	Snapshot   *worker.Snapshot
	Worker     *worker.Worker
	Config     *config.AppConfig
	Logger     *log.Logger
}

func NewHandler(n *normalize.Normalizer, snap *worker.Snapshot, w *worker.Worker, cfg *config.AppConfig, logger *log.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		Normalizer: n,
		Snapshot:   snap,
		Worker:     w,
		Config:     cfg,
		Logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(middleware.RequestIDMiddleware(h.Logger), middleware.SecurityHeadersMiddleware())

	r.GET("/health", h.HealthCheckHandler)

	api := r.Group("/api")
	api.GET("/posts", h.PostsHandler)
	api.GET("/posts/:id", h.PostHandler)
	api.POST("/normalize", h.NormalizeHandler)
	api.GET("/export.csv", h.ExportHandler)

	ops := api.Group("", middleware.AuthMiddleware(h.Config.AdminToken))
	ops.POST("/sync", h.TriggerSyncHandler)
}
