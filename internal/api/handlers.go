// ABOUTME: JSON handlers for water, favorites, and workout routes.
// ABOUTME: Maps precondition errors to 4xx and storage failures to 500.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/aurofit/internal/app"
	"github.com/harperreed/aurofit/internal/favorites"
	"github.com/harperreed/aurofit/internal/models"
	"github.com/harperreed/aurofit/internal/water"
	"github.com/harperreed/aurofit/internal/workouts"
)

type waterHandler struct {
	app *app.App
}

type intakeRequest struct {
	Amount int `json:"amount"`
}

func (handler *waterHandler) Status(w http.ResponseWriter, r *http.Request) {
	snap, err := handler.app.Water.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load water state")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// AddIntake logs the posted amount, or one glass when the amount is omitted.
func (handler *waterHandler) AddIntake(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req intakeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	tracker := handler.app.Water
	if _, err := tracker.Load(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load water state")
		return
	}

	var (
		snap water.Snapshot
		err  error
	)
	if req.Amount == 0 {
		snap, err = tracker.AddGlass(ctx)
	} else {
		snap, err = tracker.AddAmount(ctx, req.Amount)
	}
	if err != nil {
		handler.app.Logger.Error("adding intake", "err", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (handler *waterHandler) RemoveLast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := handler.app.Water.Load(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load water state")
		return
	}
	snap, err := handler.app.Water.RemoveGlass(ctx)
	if err != nil {
		handler.app.Logger.Error("removing intake", "err", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (handler *waterHandler) History(w http.ResponseWriter, r *http.Request) {
	days := water.WeekDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > water.MaxHistoryDays {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("days must be between 1 and %d", water.MaxHistoryDays))
			return
		}
		days = n
	}

	rows := handler.app.Water.History.History(r.Context(), days)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":  rows,
		"stats": water.ComputeWeeklyStats(rows),
	})
}

func (handler *waterHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.app.Water.Goals.Goal(r.Context()))
}

func (handler *waterHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var patch models.GoalPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.IsEmpty() {
		writeError(w, http.StatusBadRequest, "no goal fields provided")
		return
	}

	snap, err := handler.app.Water.UpdateGoal(r.Context(), patch)
	if err != nil {
		handler.app.Logger.Error("saving goal", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to save goal")
		return
	}
	writeJSON(w, http.StatusOK, snap.Goal)
}

type favoritesHandler struct {
	app *app.App
}

func (handler *favoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.app.Favorites.List(r.Context()))
}

func (handler *favoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var item models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if item.ID == "" {
		item.ID = item.Name
	}

	on, err := handler.app.Favorites.Toggle(r.Context(), item)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadRequest {
			writeError(w, status, "id or name is required")
			return
		}
		handler.app.Logger.Error("toggling favorite", "err", err)
		writeError(w, status, "failed to update favorites")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"favorite": on,
		"exercise": item,
	})
}

func (handler *favoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := handler.app.Favorites.Remove(r.Context(), chi.URLParam(r, "key")); err != nil {
		handler.app.Logger.Error("removing favorite", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update favorites")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type workoutsHandler struct {
	app *app.App
}

func (handler *workoutsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, handler.app.Workouts.Sorted(r.Context(), r.URL.Query().Get("type"), limit))
}

func (handler *workoutsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var entry models.WorkoutLog
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if entry.ExerciseName == "" {
		writeError(w, http.StatusBadRequest, "exerciseName is required")
		return
	}

	added, err := handler.app.Workouts.Add(r.Context(), entry)
	if err != nil {
		handler.app.Logger.Error("adding workout", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to save workout")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (handler *workoutsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := handler.app.Workouts.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

func (handler *workoutsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := handler.app.Workouts.Stats(ctx)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"thisWeek":  stats.ThisWeek,
		"thisMonth": stats.ThisMonth,
		"durations": handler.app.Workouts.DurationSummary(ctx),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, water.ErrInvalidAmount),
		errors.Is(err, water.ErrNoGoal),
		errors.Is(err, favorites.ErrInvalidExercise),
		errors.Is(err, workouts.ErrAmbiguous):
		return http.StatusBadRequest
	case errors.Is(err, workouts.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
