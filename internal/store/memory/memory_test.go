package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shivthakur007/expense/internal/store"
)

func TestCollectionCRUD(t *testing.T) {
	ctx := context.Background()
	col := New().Collection("expenses")

	id, err := col.Add(ctx, map[string]any{"expense": "coffee", "amount": 3.5})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id == "" {
		t.Fatal("expected a store-assigned id")
	}

	docs, err := col.Stream(ctx)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != id {
		t.Fatalf("expected one document with id %s, got %+v", id, docs)
	}
	if docs[0].Data["expense"] != "coffee" {
		t.Fatalf("unexpected data: %+v", docs[0].Data)
	}

	if err := col.Update(ctx, id, map[string]any{"expense": "tea", "amount": 2.0}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	docs, _ = col.Stream(ctx)
	if docs[0].Data["expense"] != "tea" {
		t.Fatalf("update not applied: %+v", docs[0].Data)
	}

	if err := col.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	docs, _ = col.Stream(ctx)
	if len(docs) != 0 {
		t.Fatalf("expected empty collection, got %d docs", len(docs))
	}
}

func TestMissingIDSurfacesNotFound(t *testing.T) {
	ctx := context.Background()
	col := New().Collection("expenses")

	if err := col.Update(ctx, "nope", map[string]any{}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := col.Delete(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	st := New()
	a := st.Collection("expenses_alice")
	b := st.Collection("expenses_bob")

	if _, err := a.Add(ctx, map[string]any{"expense": "lunch"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	docs, err := b.Stream(ctx)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected bob's collection to be empty, got %d docs", len(docs))
	}
}

func TestStreamReturnsCopies(t *testing.T) {
	ctx := context.Background()
	col := New().Collection("expenses")
	id, _ := col.Add(ctx, map[string]any{"expense": "coffee"})

	docs, _ := col.Stream(ctx)
	docs[0].Data["expense"] = "mutated"

	again, _ := col.Stream(ctx)
	if again[0].Data["expense"] != "coffee" {
		t.Fatalf("snapshot mutation leaked into store (id=%s)", id)
	}
}
