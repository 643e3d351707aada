package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hyunsoo-an/purchase-review/internal/common"
	"github.com/hyunsoo-an/purchase-review/internal/export"
	"github.com/hyunsoo-an/purchase-review/internal/policy"
	"github.com/hyunsoo-an/purchase-review/internal/repository"
	"github.com/hyunsoo-an/purchase-review/internal/review"
	"github.com/hyunsoo-an/purchase-review/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pol, err := loadPolicy(cfg.Review.PolicyPath, logger)
	if err != nil {
		logger.Error("failed to load policy", "error", err)
		os.Exit(1)
	}

	pool, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}

	reviewSvc, err := review.NewService(pol, logger)
	if err != nil {
		logger.Error("failed to build review service", "error", err)
		os.Exit(1)
	}
	exportSvc := export.NewService(logger)
	cases := repository.NewCaseRepository(pool, logger)
	metrics := server.NewMetrics()

	srv := server.New(reviewSvc, exportSvc, cases, pool, metrics, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}

func loadPolicy(path string, logger *slog.Logger) (*policy.Policy, error) {
	if path == "" {
		logger.Info("using built-in policy")
		return policy.Default(), nil
	}
	logger.Info("loading policy", "path", path)
	return policy.Load(path)
}
