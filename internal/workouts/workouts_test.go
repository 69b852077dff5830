// ABOUTME: Tests for the workout log store.
// ABOUTME: Covers add/delete, prefix lookup, sorting, grouping, and rolling stats.
package workouts

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/logging"
	"github.com/harperreed/aurofit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *Store {
	t.Helper()
	backend, err := kv.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return New(backend, func() time.Time { return testNow }, logging.Discard())
}

func logAt(id, name string, at time.Time, minutes int) models.WorkoutLog {
	l := models.NewWorkoutLog("ex-"+name, name, "strength").WithSets(3, 10).WithDate(at)
	l.ID = id
	if minutes > 0 {
		l.WithDuration(minutes)
	}
	return *l
}

func TestAddAssignsIDAndDate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, models.WorkoutLog{ExerciseName: "Squat", Sets: 3, Reps: 8})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, testNow, added.Date)

	logs := s.List(ctx)
	require.Len(t, logs, 1)
	assert.Equal(t, added.ID, logs[0].ID)
}

func TestAddIgnoresDuplicateID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	entry := logAt("abc", "Squat", testNow, 0)

	_, err := s.Add(ctx, entry)
	require.NoError(t, err)
	_, err = s.Add(ctx, entry)
	require.NoError(t, err)

	assert.Len(t, s.List(ctx), 1)
}

func TestListKeepsStorageOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	for _, l := range []models.WorkoutLog{
		logAt("1", "Squat", testNow.Add(-time.Hour), 0),
		logAt("2", "Bench", testNow.Add(-48*time.Hour), 0),
		logAt("3", "Row", testNow, 0),
	} {
		_, err := s.Add(ctx, l)
		require.NoError(t, err)
	}

	logs := s.List(ctx)
	require.Len(t, logs, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{logs[0].ID, logs[1].ID, logs[2].ID})

	sorted := s.Sorted(ctx, "", 2)
	require.Len(t, sorted, 2)
	assert.Equal(t, "3", sorted[0].ID)
	assert.Equal(t, "1", sorted[1].ID)
}

func TestSortedFiltersByType(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	run := logAt("r", "Run", testNow, 30)
	run.Type = "cardio"
	_, err := s.Add(ctx, run)
	require.NoError(t, err)
	_, err = s.Add(ctx, logAt("s", "Squat", testNow, 0))
	require.NoError(t, err)

	cardio := s.Sorted(ctx, "Cardio", 0)
	require.Len(t, cardio, 1)
	assert.Equal(t, "Run", cardio[0].ExerciseName)
	assert.Empty(t, s.Sorted(ctx, "yoga", 0))
}

func TestDeleteByIDAndPrefix(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	for _, id := range []string{"aaa111", "aab222", "bbb333"} {
		_, err := s.Add(ctx, logAt(id, "Squat", testNow, 0))
		require.NoError(t, err)
	}

	removed, err := s.Delete(ctx, "bbb")
	require.NoError(t, err)
	assert.Equal(t, "bbb333", removed.ID)

	_, err = s.Delete(ctx, "aa")
	require.ErrorContains(t, err, "ambiguous")

	_, err = s.Delete(ctx, "aaa111")
	require.NoError(t, err)

	_, err = s.Delete(ctx, "zzz")
	require.ErrorIs(t, err, ErrNotFound)

	logs := s.List(ctx)
	require.Len(t, logs, 1)
	assert.Equal(t, "aab222", logs[0].ID)
}

func TestGroupByDate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	for _, l := range []models.WorkoutLog{
		logAt("1", "Squat", testNow, 0),
		logAt("2", "Bench", testNow.Add(-time.Hour), 0),
		logAt("3", "Row", testNow.AddDate(0, 0, -1), 0),
	} {
		_, err := s.Add(ctx, l)
		require.NoError(t, err)
	}

	grouped := s.GroupByDate(ctx)
	assert.Len(t, grouped["2026-03-14"], 2)
	assert.Len(t, grouped["2026-03-13"], 1)
}

func TestStatsWindows(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	for _, l := range []models.WorkoutLog{
		logAt("1", "Squat", testNow, 0),
		logAt("2", "Squat", testNow.AddDate(0, 0, -6), 0),
		logAt("3", "Squat", testNow.AddDate(0, 0, -8), 0),
		logAt("4", "Squat", testNow.AddDate(0, 0, -29), 0),
		logAt("5", "Squat", testNow.AddDate(0, 0, -31), 0),
	} {
		_, err := s.Add(ctx, l)
		require.NoError(t, err)
	}

	assert.Equal(t, Stats{ThisWeek: 2, ThisMonth: 4}, s.Stats(ctx))
}

func TestDurationSummary(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	for _, l := range []models.WorkoutLog{
		logAt("1", "Run", testNow, 30),
		logAt("2", "Run", testNow.AddDate(0, 0, -2), 20),
		logAt("3", "Swim", testNow.AddDate(0, 0, -1), 60),
		logAt("4", "Squat", testNow, 0),
		logAt("5", "Run", testNow.AddDate(0, 0, -10), 90),
	} {
		_, err := s.Add(ctx, l)
		require.NoError(t, err)
	}

	summary := s.DurationSummary(ctx)
	require.Len(t, summary, 3)
	assert.Equal(t, ExerciseDuration{ExerciseName: "Swim", Minutes: 60, Sessions: 1}, summary[0])
	assert.Equal(t, ExerciseDuration{ExerciseName: "Run", Minutes: 50, Sessions: 2}, summary[1])
	assert.Equal(t, ExerciseDuration{ExerciseName: "Squat", Minutes: 0, Sessions: 1}, summary[2])
}
