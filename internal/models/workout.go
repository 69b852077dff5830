// ABOUTME: Exercise and WorkoutLog models for favorites and workout logging.
// ABOUTME: Exercises come from the catalog; logs record sets, reps, weight, duration.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a catalog entry a user can mark as a favorite.
type Exercise struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	Muscle       string `json:"muscle" yaml:"muscle"`
	Equipment    string `json:"equipment" yaml:"equipment"`
	Difficulty   string `json:"difficulty" yaml:"difficulty"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

// Matches reports whether idOrName identifies this exercise by id or name.
func (e Exercise) Matches(idOrName string) bool {
	return e.ID == idOrName || e.Name == idOrName
}

// WorkoutLog represents one logged exercise session.
type WorkoutLog struct {
	ID           string    `json:"id" yaml:"id"`
	ExerciseID   string    `json:"exerciseId" yaml:"exercise_id"`
	ExerciseName string    `json:"exerciseName" yaml:"exercise_name"`
	Type         string    `json:"type" yaml:"type"`
	Sets         int       `json:"sets" yaml:"sets"`
	Reps         int       `json:"reps" yaml:"reps"`
	Weight       *float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Duration     *int      `json:"duration,omitempty" yaml:"duration,omitempty"`
	Notes        *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Date         time.Time `json:"date" yaml:"date"`
}

// NewWorkoutLog creates a log for an exercise with a generated ID and the current time.
func NewWorkoutLog(exerciseID, exerciseName, workoutType string) *WorkoutLog {
	return &WorkoutLog{
		ID:           uuid.New().String(),
		ExerciseID:   exerciseID,
		ExerciseName: exerciseName,
		Type:         workoutType,
		Date:         time.Now(),
	}
}

// WithSets sets the sets and reps performed.
func (w *WorkoutLog) WithSets(sets, reps int) *WorkoutLog {
	w.Sets = sets
	w.Reps = reps
	return w
}

// WithWeight sets the weight used.
func (w *WorkoutLog) WithWeight(weight float64) *WorkoutLog {
	w.Weight = &weight
	return w
}

// WithDuration sets the duration in minutes.
func (w *WorkoutLog) WithDuration(minutes int) *WorkoutLog {
	w.Duration = &minutes
	return w
}

// WithNotes sets notes on the log.
func (w *WorkoutLog) WithNotes(notes string) *WorkoutLog {
	w.Notes = &notes
	return w
}

// WithDate sets a custom log timestamp.
func (w *WorkoutLog) WithDate(t time.Time) *WorkoutLog {
	w.Date = t
	return w
}

// DayKey returns the calendar day the workout was logged on.
func (w *WorkoutLog) DayKey() string {
	return w.Date.Format(DateLayout)
}
