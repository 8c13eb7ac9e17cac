package sheets

import "context"

// Ports for outbound row-store adapters. The store is an ordered sequence
// of rows of cell strings; row 0 is the header once reconciled.
type (
	RowReader interface {
		// Rows returns every row currently in the store, in order.
		Rows(ctx context.Context) ([][]string, error)
	}

	RowAppender interface {
		// Append adds one row after the last non-empty row.
		Append(ctx context.Context, row []string) error
	}

	RowClearer interface {
		// Clear removes every row, header included.
		Clear(ctx context.Context) error
	}

	// HeaderFormatter applies cosmetic formatting to the header row and
	// column widths. Formatting is best-effort: callers treat a failure
	// as a warning, not a failed operation. Local backends may not
	// implement it at all.
	HeaderFormatter interface {
		FormatHeader(ctx context.Context, widths []int64) error
	}

	RowStore interface {
		RowReader
		RowAppender
		RowClearer
	}
)
