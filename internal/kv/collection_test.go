// ABOUTME: Tests for the generic JSON Collection.
// ABOUTME: Verifies empty loads, updates, skipped writes, and serialized concurrent updates.
package kv

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newMemStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCollectionLoadMissingIsEmpty(t *testing.T) {
	c := NewCollection[item](newMemStore(t), "items")

	items, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCollectionSaveLoad(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[item](newMemStore(t), "items")

	require.NoError(t, c.Save(ctx, []item{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}))

	items, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "two", items[1].Name)
}

func TestCollectionSaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	c := NewCollection[item](s, "items")

	require.NoError(t, c.Save(ctx, nil))

	raw, err := s.Get(ctx, "items")
	require.NoError(t, err)
	require.Equal(t, "[]", string(raw))
}

func TestCollectionLoadCorrupt(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	require.NoError(t, s.Set(ctx, "items", []byte("{oops")))

	_, err := NewCollection[item](s, "items").Load(ctx)
	require.Error(t, err)
}

func TestCollectionUpdateNoChangeSkipsWrite(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	c := NewCollection[item](s, "items")

	got, err := c.Update(ctx, func(items []item) ([]item, error) {
		return nil, ErrNoChange
	})
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = s.Get(ctx, "items")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionUpdatePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCollection[item](newMemStore(t), "items")

	_, err := c.Update(context.Background(), func(items []item) ([]item, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestCollectionConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[item](newMemStore(t), "items")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Update(ctx, func(items []item) ([]item, error) {
				return append(items, item{ID: "x"}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, n)
}

func TestCollectionClear(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[item](newMemStore(t), "items")
	require.NoError(t, c.Save(ctx, []item{{ID: "1"}}))

	require.NoError(t, c.Clear(ctx))

	items, err := c.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func registeredLocks(store Store) int {
	locksMu.Lock()
	defer locksMu.Unlock()
	n := 0
	for lk := range locks {
		if lk.store == store {
			n++
		}
	}
	return n
}

func TestCloseReleasesKeyLocks(t *testing.T) {
	store, err := OpenBadgerInMemory()
	require.NoError(t, err)
	other := newMemStore(t)
	ctx := context.Background()

	require.NoError(t, NewCollection[item](store, "a").Save(ctx, []item{{ID: "1"}}))
	require.NoError(t, NewCollection[item](store, "b").Save(ctx, []item{{ID: "2"}}))
	require.NoError(t, NewCollection[item](other, "a").Save(ctx, []item{{ID: "3"}}))
	assert.Equal(t, 2, registeredLocks(store))

	require.NoError(t, store.Close())
	assert.Zero(t, registeredLocks(store))
	assert.Equal(t, 1, registeredLocks(other))
}
