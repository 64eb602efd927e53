package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shivthakur007/expense/internal/core"
	"github.com/shivthakur007/expense/internal/engine"
	"github.com/shivthakur007/expense/internal/store"
	"github.com/shivthakur007/expense/internal/store/memory"
)

func validInput() Input {
	return Input{
		Description: "groceries",
		Amount:      core.Money{Cents: 4250},
		Category:    core.Label{Choice: "Food"},
		PaymentMode: core.Label{Choice: "Card"},
		Date:        "2024-03-10",
	}
}

func TestAddThenListAll(t *testing.T) {
	ctx := context.Background()
	repo := New(memory.New(), "user-1")

	before, _ := repo.ListAll(ctx)
	id, err := repo.Add(ctx, validInput())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	after, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected exactly one additional record, got %d -> %d", len(before), len(after))
	}

	records := engine.Normalize(after)
	got := records[0]
	if got.ID != id || got.Description != "groceries" || got.Amount.Cents != 4250 {
		t.Fatalf("normalized record does not match input: %+v", got)
	}
	if got.Category != "Food" || got.PaymentMode != "Card" || got.Date != "2024-03-10" {
		t.Fatalf("normalized record does not match input: %+v", got)
	}
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	repo := New(memory.New(), "")

	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"empty description", func(in *Input) { in.Description = "   " }},
		{"negative amount", func(in *Input) { in.Amount = core.Money{Cents: -1} }},
		{"malformed date", func(in *Input) { in.Date = "10/03/2024" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if _, err := repo.Add(ctx, in); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCustomLabelsResolve(t *testing.T) {
	ctx := context.Background()
	repo := New(memory.New(), "")

	in := validInput()
	in.Category = core.Label{Choice: "Other", Custom: "Rent"}
	in.PaymentMode = core.Label{Choice: "Other"} // empty custom text
	if _, err := repo.Add(ctx, in); err != nil {
		t.Fatalf("Add: %v", err)
	}

	docs, _ := repo.ListAll(ctx)
	if docs[0].Data["category"] != "Rent" {
		t.Fatalf("custom category not resolved: %+v", docs[0].Data)
	}
	if docs[0].Data["payment_mode"] != "Other" {
		t.Fatalf("empty custom must fall back to Other: %+v", docs[0].Data)
	}
}

func TestUpdateMissingIDSurfacesNotFound(t *testing.T) {
	ctx := context.Background()
	repo := New(memory.New(), "")

	if err := repo.Update(ctx, "missing", validInput()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := New(memory.New(), "")

	id, _ := repo.Add(ctx, validInput())
	updated := validInput()
	updated.Description = "weekly groceries"
	updated.Amount = core.Money{Cents: 5000}
	if err := repo.Update(ctx, id, updated); err != nil {
		t.Fatalf("Update: %v", err)
	}

	docs, _ := repo.ListAll(ctx)
	if docs[0].Data["expense"] != "weekly groceries" || docs[0].Data["amount"] != 50.0 {
		t.Fatalf("update not applied: %+v", docs[0].Data)
	}
}

func TestCollectionName(t *testing.T) {
	if got := CollectionName(""); got != "expenses" {
		t.Fatalf("single-user collection = %q", got)
	}
	if got := CollectionName("abc123"); got != "expenses_abc123" {
		t.Fatalf("per-user collection = %q", got)
	}
}
