// Package report renders a filtered set of records into the three export
// forms: CSV, a spreadsheet file, and a plain-text report. Renderers are
// pure functions of the records (plus a timestamp for headers and
// filenames); none of them touch the store.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"custos/internal/core"
)

// utf8BOM leads the CSV so spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const filenameStamp = "20060102_1504"

// CSV renders all twelve columns, header included, comma-delimited.
func CSV(records []core.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(core.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func CSVFilename(now time.Time) string {
	return "custos_artico_" + now.Format(filenameStamp) + ".csv"
}

func XLSXFilename(now time.Time) string {
	return "custos_artico_" + now.Format(filenameStamp) + ".xlsx"
}

func TextFilename(now time.Time) string {
	return "relatorio_custos_" + now.Format(filenameStamp) + ".txt"
}
