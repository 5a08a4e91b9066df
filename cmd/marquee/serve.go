package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/prideworks/marquee/internal/config"
	"github.com/prideworks/marquee/internal/coordinator"
	"github.com/prideworks/marquee/internal/events"
	"github.com/prideworks/marquee/internal/eventstore"
	"github.com/prideworks/marquee/internal/history"
	"github.com/prideworks/marquee/internal/server"
	"github.com/prideworks/marquee/internal/snapshot"
	"github.com/prideworks/marquee/internal/store"
	"github.com/prideworks/marquee/internal/store/postgres"
	"github.com/prideworks/marquee/internal/ticketing"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the marquee server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't build an HTTP client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Event document store over the git clone.
		files := eventstore.New(filepath.Join(cfg.DataRepo, cfg.DataFile))
		hist := history.NewGit(cfg.DataRepo, cfg.DataBranch, cfg.DataRemote)
		logger.Info("history backend ready", "repo", cfg.DataRepo, "branch", cfg.DataBranch, "remote", cfg.DataRemote)

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (MARQUEE_NATS_URL not set)")
		}

		// Roles store is optional; without a database the server runs as a
		// pure event-document service.
		var roles store.RoleStore
		if cfg.DatabaseURL != "" {
			pg, err := postgres.New(cfg.DatabaseURL)
			if err != nil {
				publisher.Close()
				return err
			}
			roles = pg
			logger.Info("roles store ready")
		} else {
			logger.Info("roles API disabled (MARQUEE_DATABASE_URL not set)")
		}

		coord := coordinator.New(files, hist, cfg.DataFile, publisher, logger)
		tickets := ticketing.NewClient(cfg.TicketingURL, cfg.TicketingToken)

		srv := server.New(coord, files, tickets, publisher, logger, server.Options{
			Roles:           roles,
			MutationTimeout: cfg.MutationTimeout,
		})

		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: srv.NewHTTPHandler(cfg.AuthToken),
		}
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start the snapshot scheduler if a destination is configured.
		var scheduler *snapshot.Scheduler
		if cfg.SnapshotInterval > 0 && cfg.SnapshotS3Bucket != "" {
			s3Dest, err := snapshot.NewS3Destination(
				context.Background(),
				cfg.SnapshotS3Bucket,
				cfg.SnapshotS3Key,
				cfg.SnapshotS3Region,
				cfg.SnapshotS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 snapshot destination", "err", err)
			} else {
				scheduler = snapshot.NewScheduler(files, []snapshot.Destination{s3Dest}, cfg.SnapshotInterval, logger)
				scheduler.Start()
				logger.Info("snapshot scheduler started", "bucket", cfg.SnapshotS3Bucket, "interval", cfg.SnapshotInterval)
			}
		}

		logger.Info("marquee server started", "http_addr", cfg.HTTPAddr)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if scheduler != nil {
			scheduler.Stop()
			logger.Info("snapshot scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown error", "err", err)
		}

		publisher.Close()
		if roles != nil {
			roles.Close()
		}
		logger.Info("shutdown complete")
		return nil
	},
}
