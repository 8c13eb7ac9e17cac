package report

import (
	"fmt"
	"strings"
	"time"

	"custos/internal/core"
)

// Text renders the fixed plain-text report: financial summary, the
// per-category distribution, then one detail block per record separated
// by a divider. Null dates render as "N/A".
func Text(records []core.Record, now time.Time) []byte {
	s := core.Summarize(records)

	var b strings.Builder
	fmt.Fprintf(&b, `
ÁRTICO SOLUÇÕES PREDIAIS - RELATÓRIO DE CUSTOS
Gerado em: %s

RESUMO FINANCEIRO:
- Total de Registros: %d
- Valor Total: %s
- Ticket Médio: %s
- Pagamentos Pendentes: %d

DISTRIBUIÇÃO POR CATEGORIA:
`, now.Format("02/01/2006 15:04"), s.Count, core.FormatMoney(s.Total), core.FormatMoney(s.Mean), s.PendingCount)

	for _, g := range s.ByCategory {
		fmt.Fprintf(&b, "- %s: %s\n", g.Key, core.FormatMoney(g.Total))
	}

	b.WriteString("\n\nREGISTROS DETALHADOS:\n")
	for _, r := range records {
		fmt.Fprintf(&b, `
Data: %s
Cliente: %s
Categoria: %s
Descrição: %s
Total: %s
Status: %s
---
`, r.Date.Display(), r.Client, r.Category, r.Description, core.FormatMoney(r.Total), r.Status)
	}

	return []byte(b.String())
}
