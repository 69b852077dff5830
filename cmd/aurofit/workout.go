// ABOUTME: CLI commands for logging workouts.
// ABOUTME: Supports log, list, delete, and stats subcommands.
package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/harperreed/aurofit/internal/models"
	"github.com/spf13/cobra"
)

var (
	workoutExerciseID string
	workoutType       string
	workoutSets       int
	workoutReps       int
	workoutWeight     float64
	workoutDuration   int
	workoutNotes      string
	workoutAt         string

	workoutListType string
	workoutLimit    int
	workoutByDay    bool
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Log workouts",
	Long: `Log exercise sessions with sets, reps, weight, and duration.

COMMANDS:

  log      Log a workout for an exercise
  list     List recent workouts (most recent first)
  delete   Delete a workout by ID or ID prefix
  stats    Workouts in the last 7 and 30 days, minutes per exercise this week`,
}

var workoutLogCmd = &cobra.Command{
	Use:     "log <exercise>",
	Aliases: []string{"add"},
	Short:   "Log a workout",
	Long: `Log a workout for an exercise.

Examples:
  aurofit workout log "Bench Press" --sets 4 --reps 8 --weight 60
  aurofit workout log Run --type cardio --duration 30
  aurofit workout log Squat --sets 5 --reps 5 --at "2026-03-01 18:30"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := models.NewWorkoutLog(workoutExerciseID, args[0], workoutType)
		w.Date = svc.Now()
		if workoutSets > 0 || workoutReps > 0 {
			w.WithSets(workoutSets, workoutReps)
		}
		if cmd.Flags().Changed("weight") {
			w.WithWeight(workoutWeight)
		}
		if workoutDuration > 0 {
			w.WithDuration(workoutDuration)
		}
		if workoutNotes != "" {
			w.WithNotes(workoutNotes)
		}
		if workoutAt != "" {
			t, err := parseTime(workoutAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", workoutAt)
			}
			w.WithDate(t)
		}

		added, err := svc.Workouts.Add(cmd.Context(), *w)
		if err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}

		color.Green("✓ Logged %s", added.ExerciseName)
		fmt.Printf("  ID: %s\n", shortID(added.ID))
		if detail := workoutDetail(added); detail != "" {
			fmt.Printf("  %s\n", detail)
		}
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if workoutByDay {
			return listWorkoutsByDay(cmd)
		}

		logs := svc.Workouts.Sorted(ctx, workoutListType, workoutLimit)
		if len(logs) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range logs {
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(shortID(w.ID)),
				faint.Sprint(w.Date.Format("2006-01-02 15:04")),
				padRight(truncate(w.ExerciseName, 20), 20),
				workoutDetail(w))
		}
		return nil
	},
}

func listWorkoutsByDay(cmd *cobra.Command) error {
	grouped := svc.Workouts.GroupByDate(cmd.Context())
	if len(grouped) == 0 {
		fmt.Println("No workouts found.")
		return nil
	}

	days := make([]string, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	bold := color.New(color.Bold)
	for _, day := range days {
		_, _ = bold.Println(day)
		for _, w := range grouped[day] {
			fmt.Printf("  %s %s %s\n",
				color.New(color.Faint).Sprint(shortID(w.ID)),
				padRight(truncate(w.ExerciseName, 20), 20),
				workoutDetail(w))
		}
	}
	return nil
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout by its ID or ID prefix.

The ID prefix is shown in the first column of 'aurofit workout list'.
If the prefix matches multiple workouts, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := svc.Workouts.Delete(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Yellow("✗ Deleted %s", removed.ExerciseName)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(shortID(removed.ID)),
			removed.Date.Format("2006-01-02 15:04"))
		return nil
	},
}

var workoutStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workout counts and minutes per exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st := svc.Workouts.Stats(ctx)
		fmt.Printf("Last 7 days:  %d workouts\n", st.ThisWeek)
		fmt.Printf("Last 30 days: %d workouts\n", st.ThisMonth)

		summary := svc.Workouts.DurationSummary(ctx)
		if len(summary) == 0 {
			return nil
		}
		fmt.Println()
		for _, d := range summary {
			fmt.Printf("  %s %s %s\n",
				padRight(truncate(d.ExerciseName, 20), 20),
				padLeft(fmt.Sprintf("%d min", d.Minutes), 8),
				color.New(color.Faint).Sprintf("(%d sessions)", d.Sessions))
		}
		return nil
	},
}

func workoutDetail(w models.WorkoutLog) string {
	detail := ""
	if w.Sets > 0 || w.Reps > 0 {
		detail = fmt.Sprintf("%d x %d", w.Sets, w.Reps)
	}
	if w.Weight != nil {
		detail += fmt.Sprintf(" @ %g", *w.Weight)
	}
	if w.Duration != nil {
		if detail != "" {
			detail += "  "
		}
		detail += fmt.Sprintf("%d min", *w.Duration)
	}
	if w.Notes != nil && *w.Notes != "" {
		detail += color.New(color.Faint).Sprintf(" (%s)", truncate(*w.Notes, 30))
	}
	return detail
}

func init() {
	workoutLogCmd.Flags().StringVar(&workoutExerciseID, "exercise-id", "", "catalog exercise ID")
	workoutLogCmd.Flags().StringVarP(&workoutType, "type", "t", "", "workout type (strength, cardio, ...)")
	workoutLogCmd.Flags().IntVarP(&workoutSets, "sets", "s", 0, "number of sets")
	workoutLogCmd.Flags().IntVarP(&workoutReps, "reps", "r", 0, "reps per set")
	workoutLogCmd.Flags().Float64VarP(&workoutWeight, "weight", "w", 0, "weight used")
	workoutLogCmd.Flags().IntVarP(&workoutDuration, "duration", "d", 0, "duration in minutes")
	workoutLogCmd.Flags().StringVarP(&workoutNotes, "notes", "n", "", "workout notes")
	workoutLogCmd.Flags().StringVar(&workoutAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")

	workoutListCmd.Flags().StringVarP(&workoutListType, "type", "t", "", "filter by workout type")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")
	workoutListCmd.Flags().BoolVar(&workoutByDay, "by-day", false, "group workouts by day")

	workoutCmd.AddCommand(workoutLogCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	workoutCmd.AddCommand(workoutStatsCmd)
	rootCmd.AddCommand(workoutCmd)
}
