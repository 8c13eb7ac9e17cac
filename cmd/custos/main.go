package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"custos/internal/backend"
	"custos/internal/config"
	apphttp "custos/internal/http"
	applog "custos/internal/log"
	"custos/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	be, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend",
			applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer be.Close()

	loader := services.NewLoader(be.Store, cfg.CacheTTL, logger)
	writer := services.NewWriter(be.Store, loader, logger)
	reconciler := services.NewReconciler(be.Store, be.Formatter, logger)
	tracker := services.NewTracker(loader, writer, reconciler)

	// Make sure the sheet header is in shape before serving. A failure
	// here is surfaced but not fatal: the store may come back, and the
	// reconcile action remains available from the dashboard.
	if res := tracker.Reconcile(ctx); res.OK {
		logger.Info("Startup reconciliation", "message", res.Message, applog.FieldRestoredRows, res.Restored)
	} else {
		logger.Warn("Startup reconciliation failed", "message", res.Message)
	}

	srv := apphttp.NewServer(":"+cfg.Port, tracker, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting custos server",
		"port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
