package app

import (
	"context"
	"sync"

	"damq_travel/internal/domain"
)

// Collection mirrors one remote collection as an ordered in-memory
// snapshot. The snapshot is always replaced wholesale after a fetch,
// never patched in place, so it can drift from the store only between
// a mutation and the reload that follows it.
type Collection[T any] struct {
	fetch func(context.Context) ([]T, error)
	keyOf func(T) string

	mu    sync.Mutex
	items []T
	gen   uint64 // completed reloads; last finished fetch wins
}

func NewCollection[T any](fetch func(context.Context) ([]T, error), keyOf func(T) string) *Collection[T] {
	return &Collection[T]{fetch: fetch, keyOf: keyOf}
}

// Reload fetches the full collection and replaces the snapshot. On fetch
// failure the previous snapshot is kept untouched. Concurrent reloads are
// safe; whichever finishes last determines the visible snapshot.
func (c *Collection[T]) Reload(ctx context.Context) error {
	items, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = items
	c.gen++
	c.mu.Unlock()
	return nil
}

// Items returns a copy of the snapshot to keep callers from aliasing the
// backing array.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Lookup finds an item by key in the snapshot. A miss is a reportable
// no-op, not a panic.
func (c *Collection[T]) Lookup(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if c.keyOf(it) == id {
			return it, nil
		}
	}
	var zero T
	return zero, domain.ErrNotFound
}
