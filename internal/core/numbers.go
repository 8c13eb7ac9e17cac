// Package core holds the expense domain: the fixed sheet schema, record
// validation and derived totals, lenient cell parsing, and the pure
// filter/aggregation functions the dashboard is built on.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCell parses a numeric sheet cell leniently. It accepts a decimal
// comma or dot and tolerates an "R$" prefix. The second return reports
// whether the cell parsed; callers coerce failures to zero, so a bad cell
// is a diagnostic, never an error.
func ParseCell(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" {
		return decimal.Zero, false
	}
	// Normalize decimal comma
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseDiscountCell parses the discount column to a whole percentage,
// coercing failures and fractions downward to an int.
func ParseDiscountCell(s string) (int, bool) {
	d, ok := ParseCell(s)
	if !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

// FormatMoney renders a decimal as "R$ 1,234.56" with thousands
// separators, matching the report template.
func FormatMoney(d decimal.Decimal) string {
	return "R$ " + groupThousands(d.StringFixed(2))
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
