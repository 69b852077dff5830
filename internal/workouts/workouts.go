// ABOUTME: Workout log store kept as a single list in the key-value store.
// ABOUTME: Provides CRUD plus date grouping, rolling counts, and duration summaries.
package workouts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/models"
)

var (
	// ErrNotFound is returned when no log matches an id.
	ErrNotFound = errors.New("workout log not found")
	// ErrAmbiguous is returned when an id prefix matches more than one log.
	ErrAmbiguous = errors.New("ambiguous prefix: matches multiple records")
)

const (
	weekWindow  = 7 * 24 * time.Hour
	monthWindow = 30 * 24 * time.Hour
)

// Store persists workout logs in insertion order.
type Store struct {
	logs   *kv.Collection[models.WorkoutLog]
	now    func() time.Time
	logger *log.Logger
}

// New creates a workout store. A nil clock uses time.Now.
func New(store kv.Store, now func() time.Time, logger *log.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		logs:   kv.NewCollection[models.WorkoutLog](store, kv.KeyWorkoutLogs),
		now:    now,
		logger: logger,
	}
}

// List returns every log in storage order. Read failures yield an empty list.
func (s *Store) List(ctx context.Context) []models.WorkoutLog {
	logs, err := s.logs.Load(ctx)
	if err != nil {
		s.logger.Warn("reading workout logs", "err", err)
		return []models.WorkoutLog{}
	}
	if logs == nil {
		return []models.WorkoutLog{}
	}
	return logs
}

// Sorted returns logs most recent first, optionally filtered by type and
// truncated to limit when limit is positive.
func (s *Store) Sorted(ctx context.Context, workoutType string, limit int) []models.WorkoutLog {
	var out []models.WorkoutLog
	for _, l := range s.List(ctx) {
		if workoutType != "" && !strings.EqualFold(l.Type, workoutType) {
			continue
		}
		out = append(out, l)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []models.WorkoutLog{}
	}
	return out
}

// Add appends log, assigning an id and the current time when absent.
// A log whose id is already stored is ignored.
func (s *Store) Add(ctx context.Context, entry models.WorkoutLog) (models.WorkoutLog, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Date.IsZero() {
		entry.Date = s.now()
	}

	_, err := s.logs.Update(ctx, func(logs []models.WorkoutLog) ([]models.WorkoutLog, error) {
		for _, l := range logs {
			if l.ID == entry.ID {
				return nil, kv.ErrNoChange
			}
		}
		return append(logs, entry), nil
	})
	if err != nil {
		return models.WorkoutLog{}, fmt.Errorf("add workout log: %w", err)
	}
	return entry, nil
}

// Delete removes the log whose id equals idOrPrefix, or the single log whose
// id starts with it.
func (s *Store) Delete(ctx context.Context, idOrPrefix string) (models.WorkoutLog, error) {
	var removed models.WorkoutLog
	_, err := s.logs.Update(ctx, func(logs []models.WorkoutLog) ([]models.WorkoutLog, error) {
		i, err := find(logs, idOrPrefix)
		if err != nil {
			return nil, err
		}
		removed = logs[i]
		return append(logs[:i:i], logs[i+1:]...), nil
	})
	if err != nil {
		return models.WorkoutLog{}, fmt.Errorf("delete workout log: %w", err)
	}
	return removed, nil
}

func find(logs []models.WorkoutLog, idOrPrefix string) (int, error) {
	if idOrPrefix == "" {
		return -1, ErrNotFound
	}
	match := -1
	for i, l := range logs {
		if l.ID == idOrPrefix {
			return i, nil
		}
		if strings.HasPrefix(l.ID, idOrPrefix) {
			if match >= 0 {
				return -1, fmt.Errorf("%s: %w", idOrPrefix, ErrAmbiguous)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%s: %w", idOrPrefix, ErrNotFound)
	}
	return match, nil
}

// GroupByDate buckets logs by the calendar day they were logged on.
func (s *Store) GroupByDate(ctx context.Context) map[string][]models.WorkoutLog {
	grouped := make(map[string][]models.WorkoutLog)
	for _, l := range s.List(ctx) {
		day := l.DayKey()
		grouped[day] = append(grouped[day], l)
	}
	return grouped
}

// Stats counts logs in the rolling week and month windows.
type Stats struct {
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}

// Stats counts logs dated within the last 7 and 30 days.
func (s *Store) Stats(ctx context.Context) Stats {
	now := s.now()
	weekAgo := now.Add(-weekWindow)
	monthAgo := now.Add(-monthWindow)

	var st Stats
	for _, l := range s.List(ctx) {
		if !l.Date.Before(weekAgo) {
			st.ThisWeek++
		}
		if !l.Date.Before(monthAgo) {
			st.ThisMonth++
		}
	}
	return st
}

// ExerciseDuration is the total minutes logged for one exercise.
type ExerciseDuration struct {
	ExerciseName string `json:"exerciseName"`
	Minutes      int    `json:"minutes"`
	Sessions     int    `json:"sessions"`
}

// DurationSummary totals minutes per exercise over the last 7 days, largest
// first. Logs without a duration count as sessions of zero minutes.
func (s *Store) DurationSummary(ctx context.Context) []ExerciseDuration {
	weekAgo := s.now().Add(-weekWindow)

	byName := make(map[string]*ExerciseDuration)
	var order []string
	for _, l := range s.List(ctx) {
		if l.Date.Before(weekAgo) {
			continue
		}
		d, ok := byName[l.ExerciseName]
		if !ok {
			d = &ExerciseDuration{ExerciseName: l.ExerciseName}
			byName[l.ExerciseName] = d
			order = append(order, l.ExerciseName)
		}
		d.Sessions++
		if l.Duration != nil {
			d.Minutes += *l.Duration
		}
	}

	out := make([]ExerciseDuration, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Minutes > out[j].Minutes
	})
	return out
}
