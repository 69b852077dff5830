// ABOUTME: Goal Store for hydration settings persisted as a single record.
// ABOUTME: Merges stored fields over defaults, clamps on save, and notifies reminders.
package water

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/models"
)

// ReminderUpdater is told about every saved goal so it can reschedule reminders.
type ReminderUpdater interface {
	UpdateSettings(ctx context.Context, goal models.WaterGoal) error
}

// GoalStore reads and writes the water goal record.
type GoalStore struct {
	store     kv.Store
	reminders ReminderUpdater
	logger    *log.Logger
}

// NewGoalStore creates a goal store. reminders may be nil.
func NewGoalStore(store kv.Store, reminders ReminderUpdater, logger *log.Logger) *GoalStore {
	return &GoalStore{store: store, reminders: reminders, logger: logger}
}

// SetReminders replaces the reminder collaborator.
func (g *GoalStore) SetReminders(reminders ReminderUpdater) {
	g.reminders = reminders
}

// Goal returns the stored goal merged over the defaults. Read failures and
// corrupt records are logged and yield the defaults.
func (g *GoalStore) Goal(ctx context.Context) models.WaterGoal {
	goal, err := g.load(ctx)
	if err != nil {
		g.logger.Warn("reading water goal, using defaults", "err", err)
	}
	return goal
}

func (g *GoalStore) load(ctx context.Context) (models.WaterGoal, error) {
	data, err := g.store.Get(ctx, kv.KeyWaterGoal)
	if errors.Is(err, kv.ErrNotFound) {
		return models.DefaultWaterGoal(), nil
	}
	if err != nil {
		return models.DefaultWaterGoal(), err
	}
	goal, err := models.DecodeGoal(data)
	if err != nil {
		return goal, fmt.Errorf("decode water goal: %w", err)
	}
	return goal, nil
}

// SaveGoal merges patch over the current goal, clamps the result, and
// persists it. The reminder collaborator is notified afterwards; its
// failure is logged and does not fail the save.
func (g *GoalStore) SaveGoal(ctx context.Context, patch models.GoalPatch) (models.WaterGoal, error) {
	updated, err := g.save(ctx, patch)
	if err != nil {
		return models.WaterGoal{}, err
	}

	if g.reminders != nil {
		if err := g.reminders.UpdateSettings(ctx, updated); err != nil {
			g.logger.Error("updating reminder settings", "err", err)
		}
	}
	return updated, nil
}

func (g *GoalStore) save(ctx context.Context, patch models.GoalPatch) (models.WaterGoal, error) {
	unlock := kv.LockKey(g.store, kv.KeyWaterGoal)
	defer unlock()

	updated := patch.Apply(g.Goal(ctx))
	data, err := json.Marshal(updated)
	if err != nil {
		return models.WaterGoal{}, fmt.Errorf("encode water goal: %w", err)
	}
	if err := g.store.Set(ctx, kv.KeyWaterGoal, data); err != nil {
		return models.WaterGoal{}, fmt.Errorf("save water goal: %w", err)
	}
	return updated, nil
}

// Reset removes the stored goal so the defaults apply again.
func (g *GoalStore) Reset(ctx context.Context) error {
	unlock := kv.LockKey(g.store, kv.KeyWaterGoal)
	defer unlock()
	if err := g.store.Remove(ctx, kv.KeyWaterGoal); err != nil {
		return fmt.Errorf("remove water goal: %w", err)
	}
	return nil
}
