package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"custos/internal/core"
	"custos/internal/sheets/memory"
)

func seedRows() [][]string {
	return [][]string{
		append([]string(nil), core.Columns...),
		{"15/07/2025", "Reforma Apto 101", "Ferramentas", "Furadeira", "2", "150.5", "301", "10", "270.9", "Pago", "PIX", "nota"},
		{"notadate", "Obra B", "Pintura", "Tinta", "abc", "", "18", "0", "18", "Pendente", "Dinheiro", ""},
	}
}

func TestLoaderTypesRows(t *testing.T) {
	ctx := context.Background()
	store := memory.NewWithRows(seedRows())
	l := NewLoader(store, time.Minute, testLogger())

	table, err := l.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("records: got %d", table.Len())
	}

	first := table.Records[0]
	if first.Date.IsNull() || first.Date.Day() != 15 {
		t.Fatalf("date: %+v", first.Date)
	}
	if first.Quantity.String() != "2" || first.Total.String() != "270.9" || first.Discount != 10 {
		t.Fatalf("numeric columns: %+v", first)
	}

	second := table.Records[1]
	if !second.Date.IsNull() {
		t.Fatalf("bad date must load as null: %+v", second.Date)
	}
	// "abc" coerces to zero; the empty price is not counted as coerced.
	if !second.Quantity.IsZero() || !second.UnitPrice.IsZero() {
		t.Fatalf("coercion: %+v", second)
	}
	if table.CoercedCells != 1 {
		t.Fatalf("coerced cells: got %d, want 1", table.CoercedCells)
	}
}

func TestLoaderEmptyStore(t *testing.T) {
	ctx := context.Background()
	l := NewLoader(memory.New(), time.Minute, testLogger())

	table, err := l.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 0 {
		t.Fatalf("expected empty table, got %d records", table.Len())
	}
}

func TestLoaderCachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	store := memory.NewWithRows(seedRows())
	l := NewLoader(store, time.Minute, testLogger())

	before, _ := l.Load(ctx)
	if before.Len() != 2 {
		t.Fatalf("records: got %d", before.Len())
	}

	// A row appended behind the cache's back is invisible until
	// invalidation.
	if err := store.Append(ctx, []string{"01/08/2025", "C", "Outros", "d", "1", "5", "5", "0", "5", "Pago", "PIX", ""}); err != nil {
		t.Fatalf("append: %v", err)
	}
	cached, _ := l.Load(ctx)
	if cached.Len() != 2 {
		t.Fatalf("expected cached table, got %d records", cached.Len())
	}

	l.Invalidate()
	fresh, _ := l.Load(ctx)
	if fresh.Len() != 3 {
		t.Fatalf("expected fresh table, got %d records", fresh.Len())
	}
}

func TestLoaderDegradesToEmptyTable(t *testing.T) {
	ctx := context.Background()
	store := memory.NewWithRows(seedRows())
	store.RowsErr = errors.New("store unreachable")
	l := NewLoader(store, time.Minute, testLogger())

	table, err := l.Load(ctx)
	if err == nil {
		t.Fatalf("expected error")
	}
	if table.Len() != 0 {
		t.Fatalf("expected empty table, got %d records", table.Len())
	}

	// A failed load is not cached: once the store recovers the next
	// load sees the data.
	store.RowsErr = nil
	table, err = l.Load(ctx)
	if err != nil || table.Len() != 2 {
		t.Fatalf("recovered load: %d records, err %v", table.Len(), err)
	}
}

func TestLoaderZeroTTLDisablesCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewWithRows(seedRows())
	l := NewLoader(store, 0, testLogger())

	if table, _ := l.Load(ctx); table.Len() != 2 {
		t.Fatalf("first load: %d", table.Len())
	}
	_ = store.Append(ctx, []string{"01/08/2025", "C", "Outros", "d", "1", "5", "5", "0", "5", "Pago", "PIX", ""})
	if table, _ := l.Load(ctx); table.Len() != 3 {
		t.Fatalf("second load should refetch: %d", table.Len())
	}
}
