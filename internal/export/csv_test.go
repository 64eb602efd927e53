package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shivthakur007/expense/internal/core"
	"github.com/shivthakur007/expense/internal/engine"
	"github.com/shivthakur007/expense/internal/store"
)

func TestWriteRoundTrip(t *testing.T) {
	docs := []store.Document{
		{ID: "1", Data: map[string]any{"expense": "groceries", "amount": 42.5, "category": "Food", "payment_mode": "Card", "date": "2024-03-10"}},
		{ID: "2", Data: map[string]any{"expense": "metro, downtown", "amount": 2.0, "category": "Transport", "payment_mode": "UPI", "date": "2024-03-09"}},
		{ID: "3", Data: map[string]any{"expense": "legacy"}},
	}
	records := engine.Normalize(docs)
	engine.SortByDateDesc(records)

	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("re-parse csv: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("expected header + %d rows, got %d", len(records), len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(Header, ",") {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	// Re-parsed tuples must match the records, in the same order.
	for i, e := range records {
		row := rows[i+1]
		want := []string{e.Date, e.Description, e.Amount.Format(), e.Category, e.PaymentMode}
		for j := range want {
			if row[j] != want[j] {
				t.Fatalf("row %d col %s: got %q, want %q", i, Header[j], row[j], want[j])
			}
		}
	}

	// Spot-check the sentinel row and the two-decimal amount.
	last := rows[len(rows)-1]
	if last[0] != core.UnknownDate || last[2] != "0.00" || last[3] != core.Uncategorized {
		t.Fatalf("unexpected sentinel row: %v", last)
	}
}

func TestWriteEmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if got != strings.Join(Header, ",") {
		t.Fatalf("expected header only, got %q", got)
	}
}
