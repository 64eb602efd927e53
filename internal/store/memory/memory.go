// Package memory is an in-process store adapter used by tests and local
// development. It mirrors the port contract of the remote adapters,
// including ErrNotFound on missing ids.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shivthakur007/expense/internal/store"
)

type Store struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

func New() *Store {
	return &Store{collections: make(map[string]*Collection)}
}

func (s *Store) Collection(name string) store.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		col = &Collection{docs: make(map[string]map[string]any)}
		s.collections[name] = col
	}
	return col
}

func (s *Store) Close(context.Context) error { return nil }

type Collection struct {
	mu    sync.Mutex
	docs  map[string]map[string]any
	order []string
}

func (c *Collection) Add(_ context.Context, data map[string]any) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := uuid.NewString()
	c.docs[id] = cloneData(data)
	c.order = append(c.order, id)
	return id, nil
}

func (c *Collection) Stream(_ context.Context) ([]store.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]store.Document, 0, len(c.docs))
	for _, id := range c.order {
		data, ok := c.docs[id]
		if !ok {
			continue
		}
		out = append(out, store.Document{ID: id, Data: cloneData(data)})
	}
	return out, nil
}

func (c *Collection) Update(_ context.Context, id string, data map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return store.ErrNotFound
	}
	c.docs[id] = cloneData(data)
	return nil
}

func (c *Collection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(c.docs, id)
	return nil
}

func cloneData(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
