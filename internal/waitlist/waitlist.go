// Package waitlist provides the append-only ordered id sequences of the
// workflow. A waiting list is a historical record, not a live queue: ids are
// never removed, and "still pending" views are derived by filtering against
// downstream state.
package waitlist

import (
	"context"
	"sync"
)

// Log is an append-only ordered sequence of ids. Order is append order.
type Log[T comparable] struct {
	mu    sync.RWMutex
	items []T
}

func NewLog[T comparable]() *Log[T] {
	return &Log[T]{}
}

// Append adds the id to the end of the sequence.
func (l *Log[T]) Append(_ context.Context, item T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, item)
	return nil
}

// All returns the full sequence oldest first.
func (l *Log[T]) All(_ context.Context) ([]T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]T{}, l.items...), nil
}

// Len returns the current sequence length.
func (l *Log[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Filter returns the ordered subset of items for which keep returns true.
// This is the derivation primitive for "still pending" views.
func Filter[T comparable](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
