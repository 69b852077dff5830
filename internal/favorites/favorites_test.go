// ABOUTME: Tests for the favorites store.
// ABOUTME: Covers id-or-name matching, dedupe, ordering, toggle, and read degradation.
package favorites

import (
	"context"
	"testing"

	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/logging"
	"github.com/harperreed/aurofit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, kv.Store) {
	t.Helper()
	backend, err := kv.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return New(backend, logging.Discard()), backend
}

var (
	pushUp = models.Exercise{ID: "ex-1", Name: "Push Up", Type: "strength", Muscle: "chest"}
	squat  = models.Exercise{ID: "ex-2", Name: "Squat", Type: "strength", Muscle: "quadriceps"}
)

func TestListEmpty(t *testing.T) {
	s, _ := newStore(t)
	items := s.List(context.Background())
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestAddPrependsNewest(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, pushUp))
	require.NoError(t, s.Add(ctx, squat))

	items := s.List(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "Squat", items[0].Name)
	assert.Equal(t, "Push Up", items[1].Name)
}

func TestAddDedupesByIDOrName(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, pushUp))

	sameName := models.Exercise{ID: "other-id", Name: "Push Up"}
	sameID := models.Exercise{ID: "ex-1", Name: "Renamed"}
	require.NoError(t, s.Add(ctx, sameName))
	require.NoError(t, s.Add(ctx, sameID))

	assert.Len(t, s.List(ctx), 1)
}

func TestIsFavorite(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, pushUp))

	assert.True(t, s.IsFavorite(ctx, "ex-1"))
	assert.True(t, s.IsFavorite(ctx, "Push Up"))
	assert.False(t, s.IsFavorite(ctx, "Squat"))
	assert.False(t, s.IsFavorite(ctx, ""))
}

func TestRemoveByName(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, pushUp))
	require.NoError(t, s.Add(ctx, squat))

	require.NoError(t, s.Remove(ctx, "Push Up"))

	items := s.List(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "Squat", items[0].Name)
}

func TestToggle(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	on, err := s.Toggle(ctx, pushUp)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, s.IsFavorite(ctx, pushUp.ID))

	// A detail fetch may produce a different id for the same exercise.
	detail := models.Exercise{ID: "detail-id", Name: "Push Up"}
	on, err = s.Toggle(ctx, detail)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, s.List(ctx))
}

func TestRejectsExerciseWithoutIDOrName(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, pushUp))

	err := s.Add(ctx, models.Exercise{Type: "strength"})
	require.ErrorIs(t, err, ErrInvalidExercise)

	on, err := s.Toggle(ctx, models.Exercise{})
	require.ErrorIs(t, err, ErrInvalidExercise)
	assert.False(t, on)
	assert.Len(t, s.List(ctx), 1)
}

func TestCorruptListDegradesToEmpty(t *testing.T) {
	s, backend := newStore(t)
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, kv.KeyFavorites, []byte(`{"not":"a list"}`)))

	assert.Empty(t, s.List(ctx))
	assert.Error(t, s.Add(ctx, pushUp))
}
