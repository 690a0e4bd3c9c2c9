package v1

import (
	"context"
	"sync"
)

// ListCache keeps the last fetched list until Invalidate is called. Endpoints
// invalidate their cache after every successful write.
type ListCache[T any] struct {
	mu     sync.Mutex
	items  []T
	loaded bool
}

// Get returns the cached list, calling fetch on a miss. Failed fetches are not
// cached.
func (c *ListCache[T]) Get(ctx context.Context, fetch func(context.Context) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.items, nil
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.items = items
	c.loaded = true
	return items, nil
}

func (c *ListCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.loaded = false
}
