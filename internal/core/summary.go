package core

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

type (
	// GroupSum is a total aggregated under a group key (category or
	// payment status), in first-seen order.
	GroupSum struct {
		Key   string
		Total decimal.Decimal
	}

	// MonthSum is a total aggregated under a year-month bucket.
	MonthSum struct {
		Year  int
		Month int // 1-12
		Total decimal.Decimal
	}

	// Summary holds every aggregate the dashboard shows for a filtered
	// subset. It is a pure function of that subset; see Summarize.
	Summary struct {
		Count        int
		Total        decimal.Decimal
		Mean         decimal.Decimal
		PendingCount int
		ByCategory   []GroupSum
		ByStatus     []GroupSum
		ByMonth      []MonthSum
	}
)

// Label renders the bucket as "2025-07" for chart axes.
func (m MonthSum) Label() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Summarize computes the dashboard aggregates over the given records:
// count, sum and mean of Total (mean is zero for an empty subset), the
// pending-payment count, and sums grouped by category, by status, and by
// calendar month in chronological order. Records with a null date are
// excluded from the monthly buckets only.
func Summarize(records []Record) Summary {
	s := Summary{
		Count: len(records),
		Total: decimal.Zero,
		Mean:  decimal.Zero,
	}

	byCategory := map[string]decimal.Decimal{}
	byStatus := map[string]decimal.Decimal{}
	byMonth := map[[2]int]decimal.Decimal{}
	var catOrder, statusOrder []string

	for _, r := range records {
		s.Total = s.Total.Add(r.Total)
		if r.Status == StatusPending {
			s.PendingCount++
		}
		if _, ok := byCategory[r.Category]; !ok {
			catOrder = append(catOrder, r.Category)
		}
		byCategory[r.Category] = byCategory[r.Category].Add(r.Total)
		if _, ok := byStatus[r.Status]; !ok {
			statusOrder = append(statusOrder, r.Status)
		}
		byStatus[r.Status] = byStatus[r.Status].Add(r.Total)
		if !r.Date.IsNull() {
			key := [2]int{r.Date.Year(), int(r.Date.Month())}
			byMonth[key] = byMonth[key].Add(r.Total)
		}
	}

	if s.Count > 0 {
		s.Mean = s.Total.Div(decimal.NewFromInt(int64(s.Count)))
	}

	for _, k := range catOrder {
		s.ByCategory = append(s.ByCategory, GroupSum{Key: k, Total: byCategory[k]})
	}
	for _, k := range statusOrder {
		s.ByStatus = append(s.ByStatus, GroupSum{Key: k, Total: byStatus[k]})
	}

	months := make([][2]int, 0, len(byMonth))
	for k := range byMonth {
		months = append(months, k)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i][0] != months[j][0] {
			return months[i][0] < months[j][0]
		}
		return months[i][1] < months[j][1]
	})
	for _, k := range months {
		s.ByMonth = append(s.ByMonth, MonthSum{Year: k[0], Month: k[1], Total: byMonth[k]})
	}

	return s
}
