// ABOUTME: Export and import functionality for aurofit data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any key-value store.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for aurofit data.
type ExportData struct {
	Version    string               `json:"version" yaml:"version"`
	ExportedAt time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool       string               `json:"tool" yaml:"tool"`
	Goal       *models.WaterGoal    `json:"goal,omitempty" yaml:"goal,omitempty"`
	Intakes    []models.WaterIntake `json:"intakes" yaml:"intakes"`
	Favorites  []models.Exercise    `json:"favorites" yaml:"favorites"`
	Workouts   []models.WorkoutLog  `json:"workouts" yaml:"workouts"`
}

// UnmarshalJSON decodes the goal over the defaults so a partial goal
// keeps default values for the fields it leaves out.
func (d *ExportData) UnmarshalJSON(raw []byte) error {
	type plain ExportData
	aux := struct {
		*plain
		Goal json.RawMessage `json:"goal,omitempty"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}
	d.Goal = nil
	if len(aux.Goal) == 0 || string(aux.Goal) == "null" {
		return nil
	}
	goal, err := models.DecodeGoal(aux.Goal)
	if err != nil {
		return fmt.Errorf("decode goal: %w", err)
	}
	d.Goal = &goal
	return nil
}

// GetAllData reads every record from store for export. Unlike the
// interactive read paths, decode failures are returned so nothing is
// silently dropped from an export.
func GetAllData(ctx context.Context, store kv.Store, now time.Time) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: now,
		Tool:       "aurofit",
	}

	raw, err := store.Get(ctx, kv.KeyWaterGoal)
	switch {
	case err == nil:
		goal, err := models.DecodeGoal(raw)
		if err != nil {
			return nil, fmt.Errorf("decode water goal: %w", err)
		}
		data.Goal = &goal
	case !errors.Is(err, kv.ErrNotFound):
		return nil, fmt.Errorf("read water goal: %w", err)
	}

	if data.Intakes, err = kv.NewCollection[models.WaterIntake](store, kv.KeyWaterIntake).Load(ctx); err != nil {
		return nil, fmt.Errorf("list intakes: %w", err)
	}
	if data.Favorites, err = kv.NewCollection[models.Exercise](store, kv.KeyFavorites).Load(ctx); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if data.Workouts, err = kv.NewCollection[models.WorkoutLog](store, kv.KeyWorkoutLogs).Load(ctx); err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	if data.Intakes == nil {
		data.Intakes = []models.WaterIntake{}
	}
	if data.Favorites == nil {
		data.Favorites = []models.Exercise{}
	}
	if data.Workouts == nil {
		data.Workouts = []models.WorkoutLog{}
	}
	return data, nil
}

// ImportSummary holds counts of imported records. Skipped counts intakes
// rejected for a non-positive amount or a malformed date.
type ImportSummary struct {
	Goal      bool
	Intakes   int
	Skipped   int
	Favorites int
	Workouts  int
}

// ImportData merges data into store. Records whose id (or, for favorites,
// name) already exists are skipped. A goal in the export replaces the
// stored goal.
func ImportData(ctx context.Context, store kv.Store, data *ExportData) (*ImportSummary, error) {
	summary := &ImportSummary{}

	if data.Goal != nil {
		goal := data.Goal.Clamped()
		raw, err := json.Marshal(goal)
		if err != nil {
			return nil, fmt.Errorf("encode water goal: %w", err)
		}
		unlock := kv.LockKey(store, kv.KeyWaterGoal)
		err = store.Set(ctx, kv.KeyWaterGoal, raw)
		unlock()
		if err != nil {
			return nil, fmt.Errorf("import water goal: %w", err)
		}
		summary.Goal = true
	}

	valid := make([]models.WaterIntake, 0, len(data.Intakes))
	for _, in := range data.Intakes {
		if !validIntake(in) {
			summary.Skipped++
			continue
		}
		valid = append(valid, in)
	}

	intakes := kv.NewCollection[models.WaterIntake](store, kv.KeyWaterIntake)
	n, err := merge(ctx, intakes, valid, func(a, b models.WaterIntake) bool { return a.ID == b.ID })
	if err != nil {
		return nil, fmt.Errorf("import intakes: %w", err)
	}
	summary.Intakes = n

	favorites := kv.NewCollection[models.Exercise](store, kv.KeyFavorites)
	n, err = merge(ctx, favorites, data.Favorites, func(a, b models.Exercise) bool {
		return a.Matches(b.ID) || a.Matches(b.Name)
	})
	if err != nil {
		return nil, fmt.Errorf("import favorites: %w", err)
	}
	summary.Favorites = n

	workouts := kv.NewCollection[models.WorkoutLog](store, kv.KeyWorkoutLogs)
	n, err = merge(ctx, workouts, data.Workouts, func(a, b models.WorkoutLog) bool { return a.ID == b.ID })
	if err != nil {
		return nil, fmt.Errorf("import workouts: %w", err)
	}
	summary.Workouts = n

	return summary, nil
}

func validIntake(in models.WaterIntake) bool {
	if in.Amount <= 0 {
		return false
	}
	_, err := time.Parse(models.DateLayout, in.Date)
	return err == nil
}

func merge[T any](ctx context.Context, c *kv.Collection[T], incoming []T, same func(a, b T) bool) (int, error) {
	if len(incoming) == 0 {
		return 0, nil
	}
	added := 0
	_, err := c.Update(ctx, func(items []T) ([]T, error) {
		for _, in := range incoming {
			dup := false
			for _, it := range items {
				if same(it, in) {
					dup = true
					break
				}
			}
			if !dup {
				items = append(items, in)
				added++
			}
		}
		if added == 0 {
			return nil, kv.ErrNoChange
		}
		return items, nil
	})
	return added, err
}

// ExportJSON encodes data as indented JSON.
func ExportJSON(data *ExportData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON decodes an export produced by ExportJSON and merges it into store.
func ImportJSON(ctx context.Context, store kv.Store, raw []byte) (*ImportSummary, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return ImportData(ctx, store, &data)
}

// ExportYAML encodes data as YAML with intakes grouped by day.
func ExportYAML(data *ExportData) ([]byte, error) {
	yamlData := struct {
		Version    string                   `yaml:"version"`
		ExportedAt string                   `yaml:"exported_at"`
		Tool       string                   `yaml:"tool"`
		Goal       *models.WaterGoal        `yaml:"goal,omitempty"`
		Water      map[string][]yamlIntake  `yaml:"water"`
		Favorites  []models.Exercise        `yaml:"favorites,omitempty"`
		Workouts   map[string][]yamlWorkout `yaml:"workouts"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Goal:       data.Goal,
		Water:      make(map[string][]yamlIntake),
		Favorites:  data.Favorites,
		Workouts:   make(map[string][]yamlWorkout),
	}

	for _, in := range data.Intakes {
		yamlData.Water[in.Date] = append(yamlData.Water[in.Date], yamlIntake{
			ID:     shortID(in.ID),
			Amount: in.Amount,
			Glass:  in.GlassSize,
			At:     in.Timestamp.Format("15:04"),
		})
	}

	for _, w := range data.Workouts {
		yw := yamlWorkout{
			ID:       shortID(w.ID),
			Exercise: w.ExerciseName,
			Type:     w.Type,
			Sets:     w.Sets,
			Reps:     w.Reps,
		}
		if w.Weight != nil {
			yw.Weight = *w.Weight
		}
		if w.Duration != nil {
			yw.DurationMinutes = *w.Duration
		}
		if w.Notes != nil {
			yw.Notes = *w.Notes
		}
		day := w.DayKey()
		yamlData.Workouts[day] = append(yamlData.Workouts[day], yw)
	}

	return yaml.Marshal(yamlData)
}

type yamlIntake struct {
	ID     string `yaml:"id"`
	Amount int    `yaml:"amount"`
	Glass  int    `yaml:"glass"`
	At     string `yaml:"at"`
}

type yamlWorkout struct {
	ID              string  `yaml:"id"`
	Exercise        string  `yaml:"exercise"`
	Type            string  `yaml:"type,omitempty"`
	Sets            int     `yaml:"sets,omitempty"`
	Reps            int     `yaml:"reps,omitempty"`
	Weight          float64 `yaml:"weight,omitempty"`
	DurationMinutes int     `yaml:"duration_minutes,omitempty"`
	Notes           string  `yaml:"notes,omitempty"`
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// sortedKeys returns the map's keys in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
