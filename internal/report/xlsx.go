package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"custos/internal/core"
)

const xlsxSheet = "Custos"

// XLSX renders the records as a single-sheet spreadsheet file. Numeric
// columns are written as numbers so the file aggregates cleanly; the date
// column keeps its DD/MM/YYYY text form.
func XLSX(records []core.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]interface{}, len(core.Columns))
	for i, c := range core.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		row := []interface{}{
			r.Date.Cell(),
			r.Client,
			r.Category,
			r.Description,
			r.Quantity.InexactFloat64(),
			r.UnitPrice.InexactFloat64(),
			r.Subtotal.InexactFloat64(),
			r.Discount,
			r.Total.InexactFloat64(),
			r.Status,
			r.Method,
			r.Notes,
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
