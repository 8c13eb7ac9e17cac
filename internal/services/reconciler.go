// Package services orchestrates the store-facing operations: schema
// reconciliation, the cached record loader, and the record writer.
package services

import (
	"context"

	"custos/internal/core"
	"custos/internal/log"
	"custos/internal/sheets"
)

// columnWidths are the pixel widths applied to columns A through L.
var columnWidths = []int64{120, 200, 150, 250, 100, 120, 120, 100, 120, 150, 150, 200}

// ReconcileResult is the outcome of a reconciliation pass. Reconcile
// never returns an error: store failures land here as OK=false plus a
// user-facing message.
type ReconcileResult struct {
	OK       bool
	Message  string
	Restored int // data rows preserved across a rewrite
}

// Reconciler ensures row 0 of the store equals the fixed header,
// preserving any pre-existing data across the rewrite.
type Reconciler struct {
	store     sheets.RowStore
	formatter sheets.HeaderFormatter // nil for backends with no formatting
	logger    *log.Logger
}

func NewReconciler(store sheets.RowStore, formatter sheets.HeaderFormatter, logger *log.Logger) *Reconciler {
	return &Reconciler{store: store, formatter: formatter, logger: logger.WithComponent(log.ComponentReconciler)}
}

// Reconcile checks the header and, when it mismatches, rewrites the whole
// store: clear, header first, then every preserved non-empty data row
// padded or truncated to 12 cells. Cosmetic formatting runs last and only
// warns on failure.
func (r *Reconciler) Reconcile(ctx context.Context) ReconcileResult {
	rows, err := r.store.Rows(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Reading store for reconciliation failed",
			log.FieldOperation, log.OpReconcile, log.FieldError, err)
		return ReconcileResult{Message: "Erro ao configurar planilha: " + err.Error()}
	}

	if len(rows) > 0 && equalHeader(rows[0]) {
		r.formatBestEffort(ctx)
		return ReconcileResult{OK: true, Message: "Planilha já está configurada corretamente"}
	}

	// Decide what to preserve: a header-like first row is discarded, any
	// other first row is data.
	var preserved [][]string
	if len(rows) > 0 {
		if headerLike(rows[0]) {
			preserved = rows[1:]
		} else {
			preserved = rows
		}
	}

	if err := r.store.Clear(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Clearing store failed",
			log.FieldOperation, log.OpReconcile, log.FieldError, err)
		return ReconcileResult{Message: "Erro ao configurar planilha: " + err.Error()}
	}
	if err := r.store.Append(ctx, core.Columns); err != nil {
		r.logger.ErrorContext(ctx, "Writing header failed",
			log.FieldOperation, log.OpReconcile, log.FieldError, err)
		return ReconcileResult{Message: "Erro ao configurar planilha: " + err.Error()}
	}

	restored := 0
	for _, row := range preserved {
		if allEmpty(row) {
			continue
		}
		if err := r.store.Append(ctx, fitRow(row)); err != nil {
			r.logger.ErrorContext(ctx, "Restoring data row failed",
				log.FieldOperation, log.OpReconcile, log.FieldError, err)
			return ReconcileResult{Message: "Erro ao configurar planilha: " + err.Error(), Restored: restored}
		}
		restored++
	}

	r.formatBestEffort(ctx)

	r.logger.InfoContext(ctx, "Store reconciled",
		log.FieldOperation, log.OpReconcile, log.FieldRestoredRows, restored)
	return ReconcileResult{OK: true, Message: "Planilha configurada com sucesso", Restored: restored}
}

func (r *Reconciler) formatBestEffort(ctx context.Context) {
	if r.formatter == nil {
		return
	}
	if err := r.formatter.FormatHeader(ctx, columnWidths); err != nil {
		r.logger.WarnContext(ctx, "Formatting applied partially",
			log.FieldOperation, log.OpReconcile, log.FieldError, err)
	}
}

func equalHeader(row []string) bool {
	if len(row) != len(core.Columns) {
		return false
	}
	for i, c := range core.Columns {
		if row[i] != c {
			return false
		}
	}
	return true
}

// headerLike reports whether a row looks like a (possibly stale) header
// rather than data: its first cell matches the first column name.
func headerLike(row []string) bool {
	return len(row) > 0 && row[0] == core.Columns[0]
}

func allEmpty(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

// fitRow right-pads with empty cells to exactly 12 columns, truncating
// longer rows.
func fitRow(row []string) []string {
	out := make([]string, len(core.Columns))
	copy(out, row)
	return out
}
