// ABOUTME: Tests for the JSON HTTP API.
// ABOUTME: Drives the chi router through httptest against an in-memory store.
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/aurofit/internal/app"
	"github.com/harperreed/aurofit/internal/favorites"
	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/logging"
	"github.com/harperreed/aurofit/internal/models"
	"github.com/harperreed/aurofit/internal/reminder"
	"github.com/harperreed/aurofit/internal/water"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store, err := kv.OpenBadgerInMemory()
	require.NoError(t, err)

	logger := logging.Discard()
	a := app.New(store, reminder.LogNotifier{Logger: logger}, logger,
		app.WithClock(func() time.Time { return testNow }))
	t.Cleanup(func() { _ = a.Close() })

	return New(a)
}

func do(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &v), recorder.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	recorder := do(t, server, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
}

func TestAddIntakeDefaultsToGlass(t *testing.T) {
	server := newTestServer(t)

	recorder := do(t, server, http.MethodPost, "/api/water/intakes", "")
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	snap := decode[water.Snapshot](t, recorder)
	assert.Equal(t, models.DefaultGlassSize, snap.CurrentIntake)
	assert.Equal(t, 1, snap.Progress.Glasses)
}

func TestAddIntakeAmount(t *testing.T) {
	server := newTestServer(t)

	recorder := do(t, server, http.MethodPost, "/api/water/intakes", `{"amount": 750}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/api/water", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	snap := decode[water.Snapshot](t, recorder)
	assert.Equal(t, 750, snap.CurrentIntake)
	assert.Equal(t, 37.5, snap.Progress.Percentage)
	require.Len(t, snap.WeeklyHistory, 7)
	assert.Equal(t, 750, snap.WeeklyHistory[6].TotalIntake)
}

func TestAddIntakeRejectsBadInput(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"negative amount", `{"amount": -5}`},
		{"malformed json", `{"amount":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(t, server, http.MethodPost, "/api/water/intakes", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			body := decode[map[string]string](t, recorder)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRemoveLastIntake(t *testing.T) {
	server := newTestServer(t)

	do(t, server, http.MethodPost, "/api/water/intakes", `{"amount": 200}`)
	do(t, server, http.MethodPost, "/api/water/intakes", `{"amount": 300}`)

	recorder := do(t, server, http.MethodDelete, "/api/water/intakes/last", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	snap := decode[water.Snapshot](t, recorder)
	assert.Equal(t, 200, snap.CurrentIntake)

	do(t, server, http.MethodDelete, "/api/water/intakes/last", "")
	recorder = do(t, server, http.MethodDelete, "/api/water/intakes/last", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	snap = decode[water.Snapshot](t, recorder)
	assert.Equal(t, 0, snap.CurrentIntake)
}

func TestHistory(t *testing.T) {
	server := newTestServer(t)

	recorder := do(t, server, http.MethodGet, "/api/water/history?days=3", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decode[struct {
		Days []models.WaterHistoryDay `json:"days"`
	}](t, recorder)
	require.Len(t, body.Days, 3)
	assert.Equal(t, "2026-03-12", body.Days[0].Date)
	assert.Equal(t, "2026-03-14", body.Days[2].Date)

	recorder = do(t, server, http.MethodGet, "/api/water/history?days=zero", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/api/water/history?days=200000000", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/api/water/history?days="+strconv.Itoa(water.MaxHistoryDays), "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGoalRoundTrip(t *testing.T) {
	server := newTestServer(t)

	recorder := do(t, server, http.MethodGet, "/api/water/goal", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, models.DefaultWaterGoal(), decode[models.WaterGoal](t, recorder))

	recorder = do(t, server, http.MethodPut, "/api/water/goal", `{"dailyGoal": 100, "glassSize": 480}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	goal := decode[models.WaterGoal](t, recorder)
	assert.Equal(t, models.MinDailyGoal, goal.DailyGoal)
	assert.Equal(t, 500, goal.GlassSize)

	recorder = do(t, server, http.MethodGet, "/api/water/goal", "")
	assert.Equal(t, goal, decode[models.WaterGoal](t, recorder))

	recorder = do(t, server, http.MethodPut, "/api/water/goal", `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestFavorites(t *testing.T) {
	server := newTestServer(t)

	recorder := do(t, server, http.MethodPost, "/api/favorites/toggle", `{"id": "ex-1", "name": "Plank", "muscle": "abdominals"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, decode[map[string]interface{}](t, recorder)["favorite"])

	recorder = do(t, server, http.MethodGet, "/api/favorites", "")
	favs := decode[[]models.Exercise](t, recorder)
	require.Len(t, favs, 1)
	assert.Equal(t, "Plank", favs[0].Name)

	recorder = do(t, server, http.MethodDelete, "/api/favorites/Plank", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/api/favorites", "")
	assert.Empty(t, decode[[]models.Exercise](t, recorder))

	recorder = do(t, server, http.MethodPost, "/api/favorites/toggle", `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWorkouts(t *testing.T) {
	server := newTestServer(t)

	recorder := do(t, server, http.MethodPost, "/api/workouts", `{"exerciseName": "Row", "type": "cardio", "duration": 20}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	created := decode[models.WorkoutLog](t, recorder)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Date.Equal(testNow))

	recorder = do(t, server, http.MethodPost, "/api/workouts", `{"type": "cardio"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/api/workouts?type=cardio", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, decode[[]models.WorkoutLog](t, recorder), 1)

	recorder = do(t, server, http.MethodGet, "/api/workouts/stats", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	stats := decode[struct {
		ThisWeek  int `json:"thisWeek"`
		ThisMonth int `json:"thisMonth"`
	}](t, recorder)
	assert.Equal(t, 1, stats.ThisWeek)
	assert.Equal(t, 1, stats.ThisMonth)

	recorder = do(t, server, http.MethodDelete, "/api/workouts/"+created.ID[:8], "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, created.ID, decode[models.WorkoutLog](t, recorder).ID)

	recorder = do(t, server, http.MethodDelete, "/api/workouts/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(water.ErrInvalidAmount))
	assert.Equal(t, http.StatusBadRequest, statusFor(water.ErrNoGoal))
	assert.Equal(t, http.StatusBadRequest, statusFor(favorites.ErrInvalidExercise))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
