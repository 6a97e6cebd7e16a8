package store

import (
	"context"
	"sync"
)

// Memory keeps the collection in process memory. Used by tests and as
// the fallback backend when nothing else is configured.
type Memory[T any] struct {
	mu    sync.RWMutex
	items []T
}

func NewMemory[T any](seed ...T) *Memory[T] {
	m := &Memory[T]{}
	m.items = append(m.items, seed...)

	return m
}

func (m *Memory[T]) Load(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, len(m.items))
	copy(out, m.items)

	return out, nil
}

func (m *Memory[T]) Save(_ context.Context, items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make([]T, len(items))
	copy(m.items, items)

	return nil
}
