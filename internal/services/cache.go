// Package services wraps the repositories with cached collections. Every
// mutation is followed by a full reload of the collection it touched.
package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// listCache holds the last fetched copy of a collection.
type listCache[T any] struct {
	mu      sync.RWMutex
	items   []T
	loading int
}

func (c *listCache[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *listCache[T]) isLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading > 0
}

// load runs fetch and replaces the cached items on success. A failed fetch
// keeps the previous items.
func (c *listCache[T]) load(ctx context.Context, what string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()

	items, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	return slices.Clone(items), nil
}

// refreshAfter reloads the collection once a mutation has succeeded.
func refreshAfter[T any](ctx context.Context, c *listCache[T], what string, fetch func(context.Context) ([]T, error)) error {
	_, err := c.load(ctx, what, fetch)
	return err
}
