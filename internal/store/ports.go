// Package store defines the document-store port: schemaless, collection
// scoped persistence with add/stream/update/delete. Adapters live in the
// subpackages (mongo, sqlite, memory).
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Update and Delete when the addressed document
// does not exist. Mutations never silently no-op.
var ErrNotFound = errors.New("document not found")

// Document is one stored record: an opaque id plus a flat map of string
// keys to string/number/boolean values.
type Document struct {
	ID   string
	Data map[string]any
}

type (
	// Collection is a named set of documents. Every mutation is a single
	// unconditional round-trip; concurrent writers are last-write-wins.
	Collection interface {
		// Add appends a document and returns the store-assigned id.
		Add(ctx context.Context, data map[string]any) (string, error)
		// Stream returns a full snapshot in store order (unordered as far
		// as callers are concerned; ordering is applied downstream).
		Stream(ctx context.Context) ([]Document, error)
		// Update overwrites every field of the addressed document.
		Update(ctx context.Context, id string, data map[string]any) error
		// Delete removes the addressed document.
		Delete(ctx context.Context, id string) error
	}

	// Store hands out collections by name and owns the underlying client.
	Store interface {
		Collection(name string) Collection
		Close(ctx context.Context) error
	}
)
