package services

import (
	"context"
	"fmt"

	"custos/internal/core"
	"custos/internal/log"
	"custos/internal/sheets"
)

// Writer appends validated records to the store. A successful append
// invalidates the loader cache so the next load sees the new row. There
// are no retries: a store failure surfaces immediately.
type Writer struct {
	store  sheets.RowAppender
	loader *Loader
	logger *log.Logger
}

func NewWriter(store sheets.RowAppender, loader *Loader, logger *log.Logger) *Writer {
	return &Writer{store: store, loader: loader, logger: logger.WithComponent(log.ComponentWriter)}
}

func (w *Writer) Save(ctx context.Context, rec core.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validate record: %w", err)
	}
	if err := w.store.Append(ctx, rec.Row()); err != nil {
		w.logger.ErrorContext(ctx, "Appending record failed",
			log.FieldOperation, log.OpAppend,
			log.FieldClient, rec.Client,
			log.FieldCategory, rec.Category,
			log.FieldError, err)
		return fmt.Errorf("append record: %w", err)
	}
	w.loader.Invalidate()

	w.logger.InfoContext(ctx, "Record saved",
		log.FieldOperation, log.OpAppend,
		log.FieldClient, rec.Client,
		log.FieldCategory, rec.Category,
		log.FieldStatus, rec.Status,
		log.FieldTotalCell, rec.Total.String())
	return nil
}
