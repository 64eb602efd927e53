// Package repository owns the lifecycle of expense records inside one
// user's collection. It is the only writer; reads hand back raw documents
// for the engine to normalize.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivthakur007/expense/internal/core"
	"github.com/shivthakur007/expense/internal/store"
)

const baseCollection = "expenses"

// CollectionName scopes storage per user. An empty uid selects the shared
// collection used by single-user deployments.
func CollectionName(uid string) string {
	if uid == "" {
		return baseCollection
	}
	return baseCollection + "_" + uid
}

// Input carries the user-supplied fields of a record. The id is never
// client-assigned.
type Input struct {
	Description string
	Amount      core.Money
	Category    core.Label
	PaymentMode core.Label
	Date        string
}

type ExpenseRepository struct {
	col store.Collection
}

// New scopes a repository to the given user's collection.
func New(st store.Store, uid string) *ExpenseRepository {
	return &ExpenseRepository{col: st.Collection(CollectionName(uid))}
}

// Add validates the input and appends a record, returning the assigned id.
func (r *ExpenseRepository) Add(ctx context.Context, in Input) (string, error) {
	doc, err := r.document(in)
	if err != nil {
		return "", err
	}
	id, err := r.col.Add(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("add expense: %w", err)
	}
	slog.InfoContext(ctx, "Expense added",
		"id", id,
		"description", doc["expense"],
		"amount", doc["amount"])
	return id, nil
}

// ListAll returns the full raw snapshot in store order.
func (r *ExpenseRepository) ListAll(ctx context.Context) ([]store.Document, error) {
	docs, err := r.col.Stream(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return docs, nil
}

// Update overwrites every field of the addressed record. A missing id
// surfaces store.ErrNotFound instead of silently succeeding.
func (r *ExpenseRepository) Update(ctx context.Context, id string, in Input) error {
	doc, err := r.document(in)
	if err != nil {
		return err
	}
	if err := r.col.Update(ctx, id, doc); err != nil {
		return fmt.Errorf("update expense %s: %w", id, err)
	}
	slog.InfoContext(ctx, "Expense updated", "id", id)
	return nil
}

// Delete removes the addressed record, surfacing store.ErrNotFound when it
// does not exist.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// document validates the input and encodes it in the wire format shared
// with the original data set.
func (r *ExpenseRepository) document(in Input) (map[string]any, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, core.ErrEmptyDescription
	}
	if len(desc) > 200 {
		return nil, core.ErrDescriptionTooLong
	}
	if err := in.Amount.Validate(); err != nil {
		return nil, err
	}
	if _, err := core.ParseDate(in.Date); err != nil {
		return nil, err
	}
	return map[string]any{
		"expense":      desc,
		"amount":       in.Amount.Value(),
		"category":     in.Category.Resolve(),
		"payment_mode": in.PaymentMode.Resolve(),
		"date":         strings.TrimSpace(in.Date),
	}, nil
}
