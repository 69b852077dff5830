// ABOUTME: Tests for the Goal Store.
// ABOUTME: Covers defaults, merging, clamping, legacy migration, and reminder notification.
package water

import (
	"context"
	"testing"

	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/logging"
	"github.com/harperreed/aurofit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalDefaultsWhenMissing(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, models.DefaultWaterGoal(), e.goals.Goal(context.Background()))
}

func TestGoalMergesPartialRecord(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.store.Set(ctx, kv.KeyWaterGoal, []byte(`{"schemaVersion":1,"dailyGoal":3000}`)))

	goal := e.goals.Goal(ctx)
	assert.Equal(t, 3000, goal.DailyGoal)
	assert.Equal(t, models.DefaultGlassSize, goal.GlassSize)
	assert.Equal(t, models.DefaultReminderInterval, goal.ReminderInterval)
	assert.False(t, goal.ReminderEnabled)
}

func TestGoalCorruptRecordYieldsDefaults(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.store.Set(ctx, kv.KeyWaterGoal, []byte(`not json`)))

	assert.Equal(t, models.DefaultWaterGoal(), e.goals.Goal(ctx))
}

func TestGoalLegacyRecordIsClamped(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.store.Set(ctx, kv.KeyWaterGoal, []byte(`{"dailyGoal":99999,"glassSize":260,"reminderInterval":5}`)))

	goal := e.goals.Goal(ctx)
	assert.Equal(t, models.MaxDailyGoal, goal.DailyGoal)
	assert.Equal(t, 250, goal.GlassSize)
	assert.Equal(t, models.MinReminderInterval, goal.ReminderInterval)
	assert.Equal(t, models.GoalSchemaVersion, goal.SchemaVersion)
}

func TestSaveGoalPartialUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	saved, err := e.goals.SaveGoal(ctx, models.GoalPatch{DailyGoal: intPtr(2500)})
	require.NoError(t, err)

	want := models.DefaultWaterGoal()
	want.DailyGoal = 2500
	assert.Equal(t, want, saved)
	assert.Equal(t, want, e.goals.Goal(ctx))
}

func TestSaveGoalClamps(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	saved, err := e.goals.SaveGoal(ctx, models.GoalPatch{
		DailyGoal:        intPtr(100),
		GlassSize:        intPtr(1000),
		ReminderInterval: intPtr(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MinDailyGoal, saved.DailyGoal)
	assert.Equal(t, 500, saved.GlassSize)
	assert.Equal(t, models.MaxReminderInterval, saved.ReminderInterval)
	assert.Equal(t, saved, e.goals.Goal(ctx))
}

func TestSaveGoalNotifiesReminders(t *testing.T) {
	e := newEnv(t)

	_, err := e.goals.SaveGoal(context.Background(), models.GoalPatch{ReminderEnabled: boolPtr(true)})
	require.NoError(t, err)

	require.Len(t, e.reminders.goals, 1)
	assert.True(t, e.reminders.goals[0].ReminderEnabled)
}

func TestSaveGoalReminderFailureDoesNotFailSave(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.reminders.err = errBoom

	saved, err := e.goals.SaveGoal(ctx, models.GoalPatch{DailyGoal: intPtr(1800)})
	require.NoError(t, err)
	assert.Equal(t, 1800, saved.DailyGoal)
	assert.Equal(t, 1800, e.goals.Goal(ctx).DailyGoal)
}

func TestSaveGoalStorageFailurePropagates(t *testing.T) {
	reminders := &recordingReminders{}
	goals := NewGoalStore(failingStore{}, reminders, logging.Discard())

	_, err := goals.SaveGoal(context.Background(), models.GoalPatch{DailyGoal: intPtr(1800)})
	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, reminders.goals)
}

func TestGoalReadFailureYieldsDefaults(t *testing.T) {
	goals := NewGoalStore(failingStore{}, nil, logging.Discard())
	assert.Equal(t, models.DefaultWaterGoal(), goals.Goal(context.Background()))
}

func TestGoalReset(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.goals.SaveGoal(ctx, models.GoalPatch{DailyGoal: intPtr(4000)})
	require.NoError(t, err)
	require.NoError(t, e.goals.Reset(ctx))
	assert.Equal(t, models.DefaultWaterGoal(), e.goals.Goal(ctx))
}
