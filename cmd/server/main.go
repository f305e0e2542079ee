// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/app"
	"github.com/festy23/review_metrics/internal/config"
	"github.com/festy23/review_metrics/internal/health"
	"github.com/festy23/review_metrics/internal/middleware"
	"github.com/festy23/review_metrics/internal/review/router"
	"github.com/festy23/review_metrics/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalw("server stopped with error", "error", err)
	}
}

func run(cfg config.Config, logger *zap.SugaredLogger) error {
	components, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.Logger(logger, "/health"),
		middleware.Timeout(cfg.Server.WriteTimeout),
	)

	r.GET("/health", health.New(components.Repository, logger).Check)
	router.RegisterRoutes(r, components.Repository, components.Engine, router.Options{
		Service:         components.ServiceOptions,
		DefaultProjects: cfg.GitLab.ProjectIDs,
		Chart:           components.ChartOptions,
	}, logger)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("server starting",
			"address", srv.Addr,
			"gitlab_url", cfg.GitLab.URL,
			"projects", cfg.GitLab.ProjectIDs,
			"duration_mode", cfg.Report.DurationMode,
			"timezone", cfg.Report.TimeZone,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Infow("shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
