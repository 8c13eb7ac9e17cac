package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func rec(client, category, status string, date Date, total float64) Record {
	return Record{
		Date:     date,
		Client:   client,
		Category: category,
		Status:   status,
		Total:    decimal.NewFromFloat(total),
	}
}

func TestFilterApply(t *testing.T) {
	records := []Record{
		rec("A", "Ferramentas", StatusPaid, NewDate(2025, 1, 10), 100),
		rec("B", "Ferramentas", StatusPending, NewDate(2025, 2, 10), 50),
		rec("A", "Pintura", StatusPending, Date{}, 30), // null date
	}

	cases := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"no criteria", Filter{}, 3},
		{"by client", Filter{Client: "A"}, 2},
		{"by category", Filter{Category: "Ferramentas"}, 2},
		{"by status", Filter{Status: StatusPending}, 2},
		{"combined", Filter{Client: "A", Status: StatusPending}, 1},
		{"min date excludes null dates", Filter{From: NewDate(2025, 1, 1)}, 2},
		{"min date inclusive", Filter{From: NewDate(2025, 2, 10)}, 1},
		{"absent client", Filter{Client: "Z"}, 0},
	}
	for _, tc := range cases {
		if got := len(tc.filter.Apply(records)); got != tc.want {
			t.Fatalf("%s: got %d records, want %d", tc.name, got, tc.want)
		}
	}
}

func TestFilterAbsentClientSummary(t *testing.T) {
	records := []Record{
		rec("A", "Ferramentas", StatusPaid, NewDate(2025, 1, 10), 100),
	}
	subset := Filter{Client: "Z"}.Apply(records)
	s := Summarize(subset)
	if s.Count != 0 {
		t.Fatalf("count: got %d", s.Count)
	}
	if !s.Total.IsZero() {
		t.Fatalf("sum: got %s", s.Total)
	}
	if !s.Mean.IsZero() {
		t.Fatalf("mean of empty subset must be zero, got %s", s.Mean)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := []Record{
		rec("A", "Ferramentas", StatusPaid, NewDate(2025, 1, 10), 100),
		rec("B", "Pintura", StatusPending, NewDate(2025, 2, 10), 50),
	}
	_ = Filter{Client: "B"}.Apply(records)
	if records[0].Client != "A" || records[1].Client != "B" {
		t.Fatalf("input slice mutated: %+v", records)
	}
}
