// Command custos-reconcile runs one reconciliation pass against the
// configured backend and exits. Useful from cron or after editing the
// sheet by hand.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"custos/internal/backend"
	"custos/internal/config"
	applog "custos/internal/log"
	"custos/internal/services"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	be, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend",
			applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer be.Close()

	reconciler := services.NewReconciler(be.Store, be.Formatter, logger)
	res := reconciler.Reconcile(ctx)
	fmt.Println(res.Message)
	if !res.OK {
		os.Exit(1)
	}
}
