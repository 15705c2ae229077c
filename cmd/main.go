// SPDX-License-Identifier: AGPL-3.0-only
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fluffyriot/postview/internal/api/handlers"
	"github.com/fluffyriot/postview/internal/auth"
	"github.com/fluffyriot/postview/internal/cli"
	"github.com/fluffyriot/postview/internal/config"
	"github.com/fluffyriot/postview/internal/fetcher"
	"github.com/fluffyriot/postview/internal/logging"
	"github.com/fluffyriot/postview/internal/normalize"
	"github.com/fluffyriot/postview/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

type app struct {
	cfg        *config.AppConfig
	logger     *log.Logger
	client     *fetcher.Client
	normalizer *normalize.Normalizer
	worker     *worker.Worker
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON)

	var tokens auth.Store = &auth.MemoryStore{}
	if cfg.EncryptionKey != nil {
		tokens, err = auth.NewTokenStore(cfg.TokenFile, cfg.EncryptionKey)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("POSTVIEW_ENCRYPTION_KEY not set, the session token will not survive a restart")
	}

	client := fetcher.NewClient(cfg.APIBase, cfg.RequestTimeout, tokens, logger.WithPrefix("fetcher"))
	n := normalize.New(cfg.APIBase)

	w := worker.NewWorker(client, n, worker.NewSnapshot(), logger.WithPrefix("worker"))
	w.PageSize = cfg.PageSize
	w.FallbackAvatar = cfg.FallbackAvatar

	return &app{cfg: cfg, logger: logger, client: client, normalizer: n, worker: w}, nil
}

func main() {
	root := &cobra.Command{
		Use:           "postview",
		Short:         "Mirror and normalize posts from the content service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Sync the feed on a schedule and serve canonical posts",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "login <username>",
			Short: "Log in to the content service and store the token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				return cli.HandleLogin(cmd.Context(), a.client, args[0], cli.TerminalPassword, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "End the session and clear the stored token",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				return cli.HandleLogout(cmd.Context(), a.client, cmd.OutOrStdout())
			},
		},
		exportCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func exportCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Sync once and export canonical posts as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return cli.HandleExport(cmd.Context(), a.worker, source, args[0], cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&source, "source", worker.SourceFeed, "feed or mine")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if !a.cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	h := handlers.NewHandler(a.normalizer, a.worker.Snapshot, a.worker, a.cfg, a.logger.WithPrefix("http"))
	h.RegisterRoutes(r)

	go a.worker.SyncAll()
	a.worker.Start(a.cfg.SyncInterval)
	defer a.worker.Stop()

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Listening", "addr", a.cfg.ListenAddr, "api_base", a.cfg.APIBase)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-cmd.Context().Done():
	}

	a.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
