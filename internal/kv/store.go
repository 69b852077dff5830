// ABOUTME: Key-value Store interface shared by all persistence backends.
// ABOUTME: Defines the record keys and the not-found sentinel.
package kv

import (
	"context"
	"errors"
)

// Record keys. Each logical store owns exactly one key.
const (
	KeyWaterIntake          = "water_intake"
	KeyWaterGoal            = "water_goal"
	KeyFavorites            = "AUROFIT_FAVOURITES_V1"
	KeyWorkoutLogs          = "workout_logs"
	KeyNotificationSettings = "water_notification_settings"
)

// AllKeys lists every key the application writes.
var AllKeys = []string{
	KeyWaterIntake,
	KeyWaterGoal,
	KeyFavorites,
	KeyWorkoutLogs,
	KeyNotificationSettings,
}

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a flat key-value store. A Set fully replaces the value under a key.
// This interface allows swapping implementations (e.g., for testing).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
