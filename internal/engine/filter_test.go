package engine

import (
	"testing"
	"time"

	"github.com/shivthakur007/expense/internal/core"
)

func dated(id string, cents int64, cat, mode, date string) core.Expense {
	return NormalizeRecord(core.Expense{
		ID:          id,
		Description: id,
		Amount:      core.Money{Cents: cents},
		Category:    cat,
		PaymentMode: mode,
		Date:        date,
	})
}

func TestDefaultFilterMatchesUnfiltered(t *testing.T) {
	records := []core.Expense{
		dated("a", 10000, "Food", "Cash", "2024-01-01"),
		dated("b", 20000, "Bills", "Card", "2024-02-01"),
		dated("c", 5000, "Food", "UPI", "2024-03-15"),
	}

	f := DefaultFilter(records)
	got := f.Apply(records)
	if len(got) != len(records) {
		t.Fatalf("default filter dropped records: got %d, want %d", len(got), len(records))
	}
	for i := range got {
		if got[i].ID != records[i].ID {
			t.Fatalf("default filter reordered records: %v", ids(got))
		}
	}
}

func TestDefaultFilterObservedValues(t *testing.T) {
	records := []core.Expense{
		dated("a", 100, "Food", "Cash", "2024-01-05"),
		dated("b", 100, "Bills", "Card", "2024-03-20"),
	}
	f := DefaultFilter(records)

	if len(f.Categories) != 2 || f.Categories[0] != "Bills" || f.Categories[1] != "Food" {
		t.Fatalf("unexpected categories: %v", f.Categories)
	}
	if len(f.PaymentModes) != 2 {
		t.Fatalf("unexpected payment modes: %v", f.PaymentModes)
	}
	if !f.From.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected span start: %v", f.From)
	}
	if !f.To.Equal(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected span end: %v", f.To)
	}
}

func TestFilterScenarioCategoryNarrowing(t *testing.T) {
	records := []core.Expense{
		dated("a", 10000, "Food", "Cash", "2024-01-01"),
		dated("b", 20000, "Bills", "Cash", "2024-02-01"),
	}

	f := DefaultFilter(records)
	f.Categories = []string{"Food"}
	got := f.Apply(records)

	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only the Food record, got %v", ids(got))
	}

	report := BuildReport(got, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	if report.Total.Cents != 10000 {
		t.Fatalf("total = %d, want 10000", report.Total.Cents)
	}
	if len(report.ByCategory) != 1 || report.ByCategory[0].Name != "Food" || report.ByCategory[0].Amount.Cents != 10000 {
		t.Fatalf("unexpected category split: %+v", report.ByCategory)
	}
}

func TestFilterDateRangeInclusive(t *testing.T) {
	records := []core.Expense{
		dated("before", 100, "Food", "Cash", "2023-12-31"),
		dated("start", 100, "Food", "Cash", "2024-01-01"),
		dated("end", 100, "Food", "Cash", "2024-01-31"),
		dated("after", 100, "Food", "Cash", "2024-02-01"),
	}
	f := DefaultFilter(records)
	f.From = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.To = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	got := f.Apply(records)
	if len(got) != 2 || got[0].ID != "start" || got[1].ID != "end" {
		t.Fatalf("inclusive range mismatch: %v", ids(got))
	}
}

func TestFilterExcludesUnknownDates(t *testing.T) {
	records := []core.Expense{
		dated("dated", 100, "Food", "Cash", "2024-01-01"),
		dated("undated", 100, "Food", "Cash", ""),
	}

	// Active filtering drops records the date predicate cannot evaluate.
	got := DefaultFilter(records).Apply(records)
	if len(got) != 1 || got[0].ID != "dated" {
		t.Fatalf("expected undated record to drop out, got %v", ids(got))
	}

	// ShowAll keeps everything.
	all := Filter{ShowAll: true}.Apply(records)
	if len(all) != 2 {
		t.Fatalf("ShowAll must keep all records, got %v", ids(all))
	}
}

func TestFilterIntersection(t *testing.T) {
	records := []core.Expense{
		dated("a", 100, "Food", "Cash", "2024-01-01"),
		dated("b", 100, "Food", "Card", "2024-01-02"),
		dated("c", 100, "Bills", "Cash", "2024-01-03"),
	}
	f := DefaultFilter(records)
	f.Categories = []string{"Food"}
	f.PaymentModes = []string{"Cash"}

	got := f.Apply(records)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("predicates must intersect, got %v", ids(got))
	}
}
