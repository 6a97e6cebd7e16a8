// Package store translates between in-memory entity collections and a
// backing store. A collection is always loaded and saved as a whole:
// every mutating operation re-persists the full array (write-through,
// last-write-wins). Absent or malformed stored data loads as an empty
// collection rather than an error.
package store

import (
	"context"
	"errors"
)

// ErrNotFound reports that an entity id is absent from the collection.
var ErrNotFound = errors.New("not found")

// Identifiable is satisfied by every persisted entity type.
type Identifiable interface {
	EntityID() int
}

// Store is the whole-collection persistence contract. Production code
// wires it to a file, Redis, Postgres or the remote service; tests wire
// it to Memory.
type Store[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}

// NextID returns max(existing ids)+1, or 1 for an empty collection.
func NextID[T Identifiable](items []T) int {
	max := 0
	for _, it := range items {
		if it.EntityID() > max {
			max = it.EntityID()
		}
	}

	return max + 1
}

// FindByID scans the collection for the given id.
func FindByID[T Identifiable](items []T, id int) (T, bool) {
	for _, it := range items {
		if it.EntityID() == id {
			return it, true
		}
	}

	var zero T
	return zero, false
}

// RemoveByID returns the collection without the given id, preserving
// the order of the remaining items.
func RemoveByID[T Identifiable](items []T, id int) ([]T, bool) {
	out := make([]T, 0, len(items))
	found := false
	for _, it := range items {
		if it.EntityID() == id {
			found = true

			continue
		}
		out = append(out, it)
	}

	return out, found
}
