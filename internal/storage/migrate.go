// ABOUTME: Data migration between aurofit storage backends.
// ABOUTME: Copies every known record key from a source store to a destination store.

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/harperreed/aurofit/internal/kv"
)

// MigrateSummary holds counts of migrated records.
type MigrateSummary struct {
	Keys      int
	Intakes   int
	Favorites int
	Workouts  int
}

// MigrateData copies every aurofit key from src to dst, overwriting any
// value dst already holds. Keys missing from src are left untouched in dst.
func MigrateData(ctx context.Context, src, dst kv.Store) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, key := range kv.AllKeys {
		value, err := src.Get(ctx, key)
		if errors.Is(err, kv.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s from source: %w", key, err)
		}

		unlock := kv.LockKey(dst, key)
		err = dst.Set(ctx, key, value)
		unlock()
		if err != nil {
			return nil, fmt.Errorf("write %s to destination: %w", key, err)
		}
		summary.Keys++
	}

	data, err := GetAllData(ctx, dst, time.Now())
	if err != nil {
		return nil, fmt.Errorf("verify destination: %w", err)
	}
	summary.Intakes = len(data.Intakes)
	summary.Favorites = len(data.Favorites)
	summary.Workouts = len(data.Workouts)

	return summary, nil
}

// IsStoreEmpty reports whether store holds none of the aurofit keys.
func IsStoreEmpty(ctx context.Context, store kv.Store) (bool, error) {
	for _, key := range kv.AllKeys {
		_, err := store.Get(ctx, key)
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, kv.ErrNotFound) {
			return false, err
		}
	}
	return true, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
