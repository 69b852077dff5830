// ABOUTME: Shared fixtures for water package tests.
// ABOUTME: Provides an in-memory store and a controllable clock.
package water

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/logging"
	"github.com/harperreed/aurofit/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type recordingReminders struct {
	mu    sync.Mutex
	goals []models.WaterGoal
	err   error
}

func (r *recordingReminders) UpdateSettings(_ context.Context, goal models.WaterGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals = append(r.goals, goal)
	return r.err
}

type env struct {
	store     kv.Store
	clock     *fakeClock
	reminders *recordingReminders
	goals     *GoalStore
	ledger    *Ledger
	history   *History
	tracker   *Tracker
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store, err := kv.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)}
	reminders := &recordingReminders{}
	logger := logging.Discard()

	goals := NewGoalStore(store, reminders, logger)
	ledger := NewLedger(store, clock.Now, logger)
	history := NewHistory(ledger, goals)
	return &env{
		store:     store,
		clock:     clock,
		reminders: reminders,
		goals:     goals,
		ledger:    ledger,
		history:   history,
		tracker:   NewTracker(goals, ledger, history),
	}
}

// seed writes events directly, bypassing the ledger.
func (e *env) seed(t *testing.T, items ...models.WaterIntake) {
	t.Helper()
	c := kv.NewCollection[models.WaterIntake](e.store, kv.KeyWaterIntake)
	require.NoError(t, c.Save(context.Background(), items))
}

func intakeAt(id string, amount int, at time.Time) models.WaterIntake {
	return models.WaterIntake{
		ID:        id,
		Date:      at.Format(models.DateLayout),
		Amount:    amount,
		GlassSize: amount,
		Timestamp: at,
	}
}

var errBoom = errors.New("boom")

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errBoom }
func (failingStore) Set(context.Context, string, []byte) error { return errBoom }
func (failingStore) Remove(context.Context, string) error { return errBoom }
func (failingStore) Keys(context.Context) ([]string, error) { return nil, errBoom }
func (failingStore) Close() error { return nil }

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
