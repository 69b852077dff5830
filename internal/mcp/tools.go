// ABOUTME: MCP tool implementations for hydration, favorites, and workouts.
// ABOUTME: Each tool delegates to the shared services and returns structured output.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/aurofit/internal/models"
	"github.com/harperreed/aurofit/internal/water"
	"github.com/harperreed/aurofit/internal/workouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_water",
		Description: "Log water intake. Without an amount, logs one glass of the configured size.",
	}, s.handleAddWater)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_water",
		Description: "Undo the most recent water intake logged today",
	}, s.handleRemoveWater)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "water_status",
		Description: "Get today's water intake, goal progress, and this week's stats",
	}, s.handleWaterStatus)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "water_history",
		Description: "Get daily water totals for the last N days (default 7)",
	}, s.handleWaterHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_goal",
		Description: "Get the water goal and reminder settings",
	}, s.handleGetGoal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_goal",
		Description: "Update the water goal or reminder settings. Omitted fields are unchanged; values are clamped to valid ranges.",
	}, s.handleSetGoal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_favorites",
		Description: "List favorite exercises, newest first",
	}, s.handleListFavorites)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_favorite",
		Description: "Add an exercise to favorites, or remove it if it is already a favorite",
	}, s.handleToggleFavorite)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Log a workout for an exercise",
	}, s.handleLogWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts, optionally filtered by type",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout log by ID or ID prefix",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workout_stats",
		Description: "Count workouts in the last 7 and 30 days and total minutes per exercise this week",
	}, s.handleWorkoutStats)
}

// Tool input/output types

type addWaterInput struct {
	AmountML int `json:"amount_ml,omitempty" jsonschema:"Amount in ml; defaults to one glass of the configured size"`
}

type emptyInput struct{}

type waterStatusOutput struct {
	TodayML          int                  `json:"today_ml"`
	GoalML           int                  `json:"goal_ml"`
	GlassSize        int                  `json:"glass_size"`
	Percentage       float64              `json:"percentage"`
	Glasses          int                  `json:"glasses"`
	RemainingGlasses int                  `json:"remaining_glasses"`
	Tier             string               `json:"tier"`
	Intakes          []models.WaterIntake `json:"intakes,omitempty"`
	Week             water.WeeklyStats    `json:"week"`
	Message          string               `json:"message"`
}

type historyInput struct {
	Days int `json:"days,omitempty" jsonschema:"Number of days ending today (default 7)"`
}

type historyOutput struct {
	Days  []models.WaterHistoryDay `json:"days"`
	Stats water.WeeklyStats        `json:"stats"`
}

type setGoalInput struct {
	DailyGoal        *int  `json:"daily_goal,omitempty" jsonschema:"Daily goal in ml (500-5000)"`
	GlassSize        *int  `json:"glass_size,omitempty" jsonschema:"Glass size in ml (200, 250, 300, 400 or 500)"`
	ReminderEnabled  *bool `json:"reminder_enabled,omitempty" jsonschema:"Whether hydration reminders are on"`
	ReminderInterval *int  `json:"reminder_interval,omitempty" jsonschema:"Minutes between reminders (15-480)"`
}

type goalOutput struct {
	Goal    models.WaterGoal `json:"goal"`
	Message string           `json:"message"`
}

type favoritesOutput struct {
	Favorites []models.Exercise `json:"favorites"`
	Count     int               `json:"count"`
}

type exerciseInput struct {
	ID           string `json:"id,omitempty" jsonschema:"Exercise ID"`
	Name         string `json:"name" jsonschema:"Exercise name"`
	Type         string `json:"type,omitempty" jsonschema:"Exercise type (strength, cardio, stretching, ...)"`
	Muscle       string `json:"muscle,omitempty" jsonschema:"Primary muscle group"`
	Equipment    string `json:"equipment,omitempty" jsonschema:"Equipment needed"`
	Difficulty   string `json:"difficulty,omitempty" jsonschema:"beginner, intermediate or expert"`
	Instructions string `json:"instructions,omitempty" jsonschema:"How to perform the exercise"`
}

type toggleFavoriteOutput struct {
	Favorite bool   `json:"favorite"`
	Message  string `json:"message"`
}

type logWorkoutInput struct {
	ExerciseID      string   `json:"exercise_id,omitempty" jsonschema:"Catalog exercise ID"`
	ExerciseName    string   `json:"exercise_name" jsonschema:"Exercise name"`
	Type            string   `json:"type,omitempty" jsonschema:"Workout type (strength, cardio, ...)"`
	Sets            int      `json:"sets,omitempty" jsonschema:"Number of sets"`
	Reps            int      `json:"reps,omitempty" jsonschema:"Reps per set"`
	Weight          *float64 `json:"weight,omitempty" jsonschema:"Weight used"`
	DurationMinutes int      `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes"`
	Notes           string   `json:"notes,omitempty" jsonschema:"Workout notes"`
	Date            string   `json:"date,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
}

type workoutOutput struct {
	ID      string            `json:"id"`
	Workout models.WorkoutLog `json:"workout"`
	Message string            `json:"message"`
}

type listWorkoutsInput struct {
	Type  string `json:"type,omitempty" jsonschema:"Filter by workout type"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type workoutsOutput struct {
	Workouts []models.WorkoutLog `json:"workouts"`
	Count    int                 `json:"count"`
}

type deleteWorkoutInput struct {
	ID string `json:"id" jsonschema:"Workout ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type workoutStatsOutput struct {
	ThisWeek  int                         `json:"this_week"`
	ThisMonth int                         `json:"this_month"`
	Durations []workouts.ExerciseDuration `json:"durations"`
}

// Tool handlers

func (s *Server) handleAddWater(ctx context.Context, req *mcp.CallToolRequest, input addWaterInput) (*mcp.CallToolResult, waterStatusOutput, error) {
	tracker := s.app.Water
	if _, err := tracker.Load(ctx); err != nil {
		return nil, waterStatusOutput{}, err
	}

	var (
		snap water.Snapshot
		err  error
	)
	if input.AmountML == 0 {
		snap, err = tracker.AddGlass(ctx)
	} else {
		snap, err = tracker.AddAmount(ctx, input.AmountML)
	}
	if err != nil {
		return nil, waterStatusOutput{}, fmt.Errorf("failed to add water: %w", err)
	}

	out := statusOutput(snap, nil)
	out.Message = fmt.Sprintf("Logged water. Today: %d/%d ml (%.0f%%)", out.TodayML, out.GoalML, out.Percentage)
	return nil, out, nil
}

func (s *Server) handleRemoveWater(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, waterStatusOutput, error) {
	tracker := s.app.Water
	before, err := tracker.Load(ctx)
	if err != nil {
		return nil, waterStatusOutput{}, err
	}

	snap, err := tracker.RemoveGlass(ctx)
	if err != nil {
		return nil, waterStatusOutput{}, fmt.Errorf("failed to remove water: %w", err)
	}

	out := statusOutput(snap, nil)
	if snap.CurrentIntake == before.CurrentIntake {
		out.Message = "Nothing logged today to remove."
	} else {
		out.Message = fmt.Sprintf("Removed %d ml. Today: %d/%d ml", before.CurrentIntake-snap.CurrentIntake, out.TodayML, out.GoalML)
	}
	return nil, out, nil
}

func (s *Server) handleWaterStatus(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, waterStatusOutput, error) {
	snap, err := s.app.Water.Load(ctx)
	if err != nil {
		return nil, waterStatusOutput{}, err
	}

	out := statusOutput(snap, s.app.Water.Ledger.TodayIntakes(ctx))
	out.Message = fmt.Sprintf("Today: %d/%d ml (%.0f%%), %s", out.TodayML, out.GoalML, out.Percentage, out.Tier)
	return nil, out, nil
}

func statusOutput(snap water.Snapshot, intakes []models.WaterIntake) waterStatusOutput {
	goal := models.DefaultWaterGoal()
	if snap.Goal != nil {
		goal = *snap.Goal
	}
	return waterStatusOutput{
		TodayML:          snap.CurrentIntake,
		GoalML:           goal.DailyGoal,
		GlassSize:        goal.GlassSize,
		Percentage:       snap.Progress.Percentage,
		Glasses:          snap.Progress.Glasses,
		RemainingGlasses: snap.Progress.RemainingGlasses,
		Tier:             string(snap.Progress.Tier),
		Intakes:          intakes,
		Week:             snap.Stats,
	}
}

func (s *Server) handleWaterHistory(ctx context.Context, req *mcp.CallToolRequest, input historyInput) (*mcp.CallToolResult, historyOutput, error) {
	if input.Days <= 0 {
		input.Days = water.WeekDays
	}
	if input.Days > water.MaxHistoryDays {
		return nil, historyOutput{}, fmt.Errorf("days must be at most %d", water.MaxHistoryDays)
	}
	days := s.app.Water.History.History(ctx, input.Days)
	return nil, historyOutput{Days: days, Stats: water.ComputeWeeklyStats(days)}, nil
}

func (s *Server) handleGetGoal(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, goalOutput, error) {
	goal := s.app.Water.Goals.Goal(ctx)
	return nil, goalOutput{
		Goal:    goal,
		Message: fmt.Sprintf("Goal: %d ml/day in %d ml glasses", goal.DailyGoal, goal.GlassSize),
	}, nil
}

func (s *Server) handleSetGoal(ctx context.Context, req *mcp.CallToolRequest, input setGoalInput) (*mcp.CallToolResult, goalOutput, error) {
	patch := models.GoalPatch{
		DailyGoal:        input.DailyGoal,
		GlassSize:        input.GlassSize,
		ReminderEnabled:  input.ReminderEnabled,
		ReminderInterval: input.ReminderInterval,
	}
	if patch.IsEmpty() {
		return nil, goalOutput{}, fmt.Errorf("no goal fields provided")
	}

	snap, err := s.app.Water.UpdateGoal(ctx, patch)
	if err != nil {
		return nil, goalOutput{}, fmt.Errorf("failed to save goal: %w", err)
	}
	return nil, goalOutput{
		Goal:    *snap.Goal,
		Message: fmt.Sprintf("Goal saved: %d ml/day in %d ml glasses", snap.Goal.DailyGoal, snap.Goal.GlassSize),
	}, nil
}

func (s *Server) handleListFavorites(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, favoritesOutput, error) {
	favs := s.app.Favorites.List(ctx)
	return nil, favoritesOutput{Favorites: favs, Count: len(favs)}, nil
}

func (s *Server) handleToggleFavorite(ctx context.Context, req *mcp.CallToolRequest, input exerciseInput) (*mcp.CallToolResult, toggleFavoriteOutput, error) {
	if input.ID == "" && input.Name == "" {
		return nil, toggleFavoriteOutput{}, fmt.Errorf("exercise id or name is required")
	}
	item := models.Exercise(input)
	if item.ID == "" {
		item.ID = item.Name
	}

	on, err := s.app.Favorites.Toggle(ctx, item)
	if err != nil {
		return nil, toggleFavoriteOutput{}, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	msg := fmt.Sprintf("Removed %s from favorites", displayName(item))
	if on {
		msg = fmt.Sprintf("Added %s to favorites", displayName(item))
	}
	return nil, toggleFavoriteOutput{Favorite: on, Message: msg}, nil
}

func displayName(e models.Exercise) string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	if input.ExerciseName == "" {
		return nil, workoutOutput{}, fmt.Errorf("exercise_name is required")
	}

	w := models.NewWorkoutLog(input.ExerciseID, input.ExerciseName, input.Type)
	w.Date = time.Time{}
	if input.Sets > 0 || input.Reps > 0 {
		w.WithSets(input.Sets, input.Reps)
	}
	if input.Weight != nil {
		w.WithWeight(*input.Weight)
	}
	if input.DurationMinutes > 0 {
		w.WithDuration(input.DurationMinutes)
	}
	if input.Notes != "" {
		w.WithNotes(input.Notes)
	}
	if input.Date != "" {
		t, err := time.Parse(time.RFC3339, input.Date)
		if err != nil {
			t, err = time.ParseInLocation("2006-01-02 15:04", input.Date, time.Local)
		}
		if err != nil {
			return nil, workoutOutput{}, fmt.Errorf("invalid date %q: use ISO 8601", input.Date)
		}
		w.WithDate(t)
	}

	added, err := s.app.Workouts.Add(ctx, *w)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}

	return nil, workoutOutput{
		ID:      shortID(added.ID),
		Workout: added,
		Message: fmt.Sprintf("Logged %s (ID: %s)", added.ExerciseName, shortID(added.ID)),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, workoutsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	logs := s.app.Workouts.Sorted(ctx, input.Type, input.Limit)
	return nil, workoutsOutput{Workouts: logs, Count: len(logs)}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input deleteWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	removed, err := s.app.Workouts.Delete(ctx, input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %s (%s)", shortID(removed.ID), removed.ExerciseName),
	}, nil
}

func (s *Server) handleWorkoutStats(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, workoutStatsOutput, error) {
	st := s.app.Workouts.Stats(ctx)
	return nil, workoutStatsOutput{
		ThisWeek:  st.ThisWeek,
		ThisMonth: st.ThisMonth,
		Durations: s.app.Workouts.DurationSummary(ctx),
	}, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
