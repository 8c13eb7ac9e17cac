// Package backend selects and opens the configured row store.
package backend

import (
	"context"
	"fmt"

	"custos/internal/config"
	"custos/internal/log"
	"custos/internal/sheets"
	"custos/internal/sheets/google"
	"custos/internal/sheets/memory"
	"custos/internal/storage"
)

// Result bundles what a backend provides. Formatter is nil for backends
// with nothing to format; Close is never nil.
type Result struct {
	Store     sheets.RowStore
	Formatter sheets.HeaderFormatter
	Close     func() error
}

// Open builds the row store named by cfg.DataBackend.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	switch cfg.DataBackend {
	case "sheets":
		cli, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets backend: %w", err)
		}
		logger.Info("Initialized Google Sheets backend",
			log.FieldBackend, cfg.DataBackend, log.FieldSheetName, cfg.GoogleSheetName)
		return &Result{Store: cli, Formatter: cli, Close: func() error { return nil }}, nil

	case "sqlite":
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend",
			log.FieldBackend, cfg.DataBackend, "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Close: repo.Close}, nil

	default:
		store := memory.New()
		logger.Info("Initialized memory backend", log.FieldBackend, cfg.DataBackend)
		return &Result{Store: store, Formatter: store, Close: func() error { return nil }}, nil
	}
}
