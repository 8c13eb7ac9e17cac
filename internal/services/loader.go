package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"custos/internal/cache"
	"custos/internal/core"
	"custos/internal/log"
	"custos/internal/sheets"
)

// Loader fetches all rows from the store and builds the typed table.
// Results are cached globally for the configured TTL; the cache is
// cleared after every successful write and after reconciliation.
type Loader struct {
	store  sheets.RowReader
	cache  *cache.Value[core.Table]
	group  singleflight.Group
	logger *log.Logger
}

func NewLoader(store sheets.RowReader, ttl time.Duration, logger *log.Logger) *Loader {
	return &Loader{
		store:  store,
		cache:  cache.NewValue[core.Table](ttl),
		logger: logger.WithComponent(log.ComponentLoader),
	}
}

// Load returns the loaded table. Fetch failures degrade to an empty table
// and the error is returned alongside it for display; nothing propagates
// as a panic and a failed load is never cached. Concurrent loads collapse
// into a single store fetch.
func (l *Loader) Load(ctx context.Context) (core.Table, error) {
	if t, ok := l.cache.Get(); ok {
		return t, nil
	}

	v, err, _ := l.group.Do("table", func() (any, error) {
		rows, err := l.store.Rows(ctx)
		if err != nil {
			return core.EmptyTable(), err
		}
		t := buildTable(rows)
		l.cache.Set(t)
		if t.CoercedCells > 0 {
			l.logger.WarnContext(ctx, "Numeric cells coerced to zero",
				log.FieldOperation, log.OpLoad,
				log.FieldCoercedCells, t.CoercedCells,
				log.FieldRowCount, t.Len())
		}
		return t, nil
	})
	t := v.(core.Table)
	if err != nil {
		l.logger.ErrorContext(ctx, "Loading records failed, serving empty table",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
		return t, err
	}
	return t, nil
}

// Invalidate drops the cached table.
func (l *Loader) Invalidate() {
	l.cache.Clear()
}

// buildTable types raw rows into records. Row 0 is treated as the header
// and cells are looked up by column name, so a sheet whose columns were
// reordered by hand still loads. Numeric cells coerce to zero, bad dates
// become the null date.
func buildTable(rows [][]string) core.Table {
	if len(rows) == 0 {
		return core.EmptyTable()
	}

	index := headerIndex(rows[0])
	t := core.Table{Records: make([]core.Record, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		numeric := func(col string) decimal.Decimal {
			v, ok := core.ParseCell(cell(col))
			if !ok && cell(col) != "" {
				t.CoercedCells++
			}
			return v
		}

		discount, ok := core.ParseDiscountCell(cell("Desconto (%)"))
		if !ok && cell("Desconto (%)") != "" {
			t.CoercedCells++
		}

		t.Records = append(t.Records, core.Record{
			Date:        core.ParseDate(cell("Data")),
			Client:      cell("Cliente/Projeto"),
			Category:    cell("Categoria"),
			Description: cell("Descrição"),
			Quantity:    numeric("Quantidade"),
			UnitPrice:   numeric("Preço Unitário"),
			Subtotal:    numeric("Subtotal"),
			Discount:    discount,
			Total:       numeric("Total"),
			Status:      cell("Status Pagamento"),
			Method:      cell("Forma Pagamento"),
			Notes:       cell("Observações"),
		})
	}
	return t
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}
