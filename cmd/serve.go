package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"condo_ledger/internal/config"
	"condo_ledger/internal/handlers"
	"condo_ledger/internal/logger"
	"condo_ledger/internal/server"
	"condo_ledger/internal/service"
	"condo_ledger/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	archiver, err := storage.FromConfig(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if archiver != nil {
		log.Infow("report archive enabled", "bucket", cfg.Storage.Bucket, "region", cfg.Storage.Region)
	}

	services, conn, err := openServices(cfg, log, archiver)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	apiHandler := handlers.NewHandler(services, log.Named("http"), handlers.Options{
		CookieName:     cfg.Auth.CookieName,
		CookieSecure:   cfg.Auth.CookieSecure,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MetricsEnabled: cfg.Metrics.Enabled,
	})

	srv := server.New(server.Timeouts{
		ReadHeader: cfg.Server.ReadHeaderTimeout,
		Write:      cfg.Server.WriteTimeout,
		Idle:       cfg.Server.IdleTimeout,
	})

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go services.Janitor.Run(sweepCtx, service.DefaultSweepInterval)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("starting server", "port", cfg.Server.Port, "db", cfg.DB.Path)
		if err := srv.Run(cfg.Server.Port, apiHandler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(ctx, srv, errCh, log)
}

// waitForShutdown blocks until a termination signal or a server error, then
// gives in-flight requests shutdownTimeout to complete.
func waitForShutdown(ctx context.Context, srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			log.Errorw("error starting server", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}
