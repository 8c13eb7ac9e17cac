package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSummarizeBasic(t *testing.T) {
	records := []Record{
		rec("A", "Ferramentas", StatusPaid, NewDate(2025, 3, 1), 100),
		rec("A", "Ferramentas", StatusPending, NewDate(2025, 3, 2), 50),
	}
	s := Summarize(records)

	if s.Count != 2 {
		t.Fatalf("count: got %d", s.Count)
	}
	if got := s.Total.String(); got != "150" {
		t.Fatalf("sum: got %s", got)
	}
	if got := s.Mean.String(); got != "75" {
		t.Fatalf("mean: got %s", got)
	}
	if s.PendingCount != 1 {
		t.Fatalf("pending count: got %d", s.PendingCount)
	}
	if len(s.ByCategory) != 1 || s.ByCategory[0].Key != "Ferramentas" || s.ByCategory[0].Total.String() != "150" {
		t.Fatalf("category groups: %+v", s.ByCategory)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || !s.Total.IsZero() || !s.Mean.IsZero() || s.PendingCount != 0 {
		t.Fatalf("unexpected summary for empty input: %+v", s)
	}
	if len(s.ByCategory) != 0 || len(s.ByStatus) != 0 || len(s.ByMonth) != 0 {
		t.Fatalf("expected no groups: %+v", s)
	}
}

// Grouped category sums must partition the ungrouped total.
func TestSummarizePartition(t *testing.T) {
	records := []Record{
		rec("A", "Ferramentas", StatusPaid, NewDate(2025, 1, 1), 100.10),
		rec("B", "Pintura", StatusPending, NewDate(2025, 1, 2), 50.25),
		rec("C", "Pintura", StatusPartial, NewDate(2025, 2, 3), 30.05),
		rec("D", "Transporte", StatusPaid, Date{}, 19.60),
	}
	s := Summarize(records)

	sum := decimal.Zero
	for _, g := range s.ByCategory {
		sum = sum.Add(g.Total)
	}
	if !sum.Equal(s.Total) {
		t.Fatalf("category sums %s != total %s", sum, s.Total)
	}

	sum = decimal.Zero
	for _, g := range s.ByStatus {
		sum = sum.Add(g.Total)
	}
	if !sum.Equal(s.Total) {
		t.Fatalf("status sums %s != total %s", sum, s.Total)
	}
}

func TestSummarizeMonthsChronological(t *testing.T) {
	records := []Record{
		rec("A", "Outros", StatusPaid, NewDate(2025, 3, 1), 10),
		rec("B", "Outros", StatusPaid, NewDate(2024, 12, 1), 20),
		rec("C", "Outros", StatusPaid, NewDate(2025, 1, 15), 30),
		rec("D", "Outros", StatusPaid, NewDate(2025, 1, 20), 5),
		rec("E", "Outros", StatusPaid, Date{}, 99), // null date: no bucket
	}
	s := Summarize(records)

	if len(s.ByMonth) != 3 {
		t.Fatalf("month buckets: got %d", len(s.ByMonth))
	}
	wantLabels := []string{"2024-12", "2025-01", "2025-03"}
	for i, w := range wantLabels {
		if s.ByMonth[i].Label() != w {
			t.Fatalf("bucket %d: got %s, want %s", i, s.ByMonth[i].Label(), w)
		}
	}
	if got := s.ByMonth[1].Total.String(); got != "35" {
		t.Fatalf("2025-01 total: got %s", got)
	}
	// Null-dated record still counts toward the overall total.
	if got := s.Total.String(); got != "164" {
		t.Fatalf("total: got %s", got)
	}
}
