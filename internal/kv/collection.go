// ABOUTME: Generic JSON collection stored whole under a single key.
// ABOUTME: Serializes read-modify-write cycles per key to avoid lost updates.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrNoChange may be returned by an Update callback to skip the write.
var ErrNoChange = errors.New("no change")

type lockKey struct {
	store Store
	key   string
}

var (
	locksMu sync.Mutex
	locks   = map[lockKey]*sync.Mutex{}
)

// LockKey acquires the in-process write lock for key on store and returns
// the matching unlock function.
func LockKey(store Store, key string) func() {
	locksMu.Lock()
	lk := lockKey{store: store, key: key}
	mu, ok := locks[lk]
	if !ok {
		mu = &sync.Mutex{}
		locks[lk] = mu
	}
	locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// releaseLocks drops every key lock registered for store. Backends call it
// from Close so a closed store is not kept reachable by the registry.
func releaseLocks(store Store) {
	locksMu.Lock()
	defer locksMu.Unlock()
	for lk := range locks {
		if lk.store == store {
			delete(locks, lk)
		}
	}
}

// Collection is a JSON array of T persisted under one key.
type Collection[T any] struct {
	store Store
	key   string
}

// NewCollection binds a collection to key on store.
func NewCollection[T any](store Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// Key returns the storage key.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads the full collection. A missing key is an empty collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, nil
}

// Save replaces the full collection.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	unlock := LockKey(c.store, c.key)
	defer unlock()
	return c.save(ctx, items)
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.store.Set(ctx, c.key, data)
}

// Update loads the collection, applies fn, and writes the result back while
// holding the key's write lock. If fn returns ErrNoChange nothing is written
// and the loaded items are returned.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) ([]T, error) {
	unlock := LockKey(c.store, c.key)
	defer unlock()

	items, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := fn(items)
	if errors.Is(err, ErrNoChange) {
		return items, nil
	}
	if err != nil {
		return nil, err
	}

	if err := c.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Clear removes the collection's key.
func (c *Collection[T]) Clear(ctx context.Context) error {
	unlock := LockKey(c.store, c.key)
	defer unlock()
	return c.store.Remove(ctx, c.key)
}
