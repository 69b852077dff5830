// ABOUTME: CLI commands for water tracking.
// ABOUTME: Supports add, remove, status, history, goal, and reset subcommands.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/aurofit/internal/models"
	"github.com/harperreed/aurofit/internal/water"
	"github.com/spf13/cobra"
)

const barWidth = 20

var (
	historyDays int

	goalDaily     int
	goalGlass     int
	goalReminders bool
	goalInterval  int

	resetYes bool
)

var waterCmd = &cobra.Command{
	Use:     "water",
	Aliases: []string{"h2o"},
	Short:   "Track water intake",
	Long: `Track daily water intake against a goal.

Each intake is stored as an event stamped with today's date. Today's total is
the sum of today's events, and the history shows one row per day ending today.

COMMANDS:

  add [ml]   Log one glass, or the given amount in ml
  remove     Undo the most recent intake logged today
  status     Show today's progress
  history    Show daily totals for the last 7 days (--days to change)
  goal       Show or change the goal and reminder settings
  reset      Delete all intake events and the goal`,
}

var waterAddCmd = &cobra.Command{
	Use:     "add [ml]",
	Aliases: []string{"a"},
	Short:   "Log water",
	Long: `Log water intake. Without an amount, logs one glass of the configured size.

Examples:
  aurofit water add
  aurofit water add 330`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		tracker := svc.Water
		if _, err := tracker.Load(ctx); err != nil {
			return err
		}

		var (
			snap water.Snapshot
			err  error
		)
		if len(args) == 0 {
			snap, err = tracker.AddGlass(ctx)
		} else {
			ml, perr := strconv.Atoi(args[0])
			if perr != nil {
				return fmt.Errorf("invalid amount: %s", args[0])
			}
			snap, err = tracker.AddAmount(ctx, ml)
		}
		if err != nil {
			return fmt.Errorf("failed to add water: %w", err)
		}

		added := snap.Goal.GlassSize
		if len(args) > 0 {
			added, _ = strconv.Atoi(args[0])
		}
		color.Green("✓ Added %d ml", added)
		printProgress(snap)
		return nil
	},
}

var waterRemoveCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm", "undo"},
	Short:   "Undo the last intake logged today",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		before, err := svc.Water.Load(ctx)
		if err != nil {
			return err
		}

		snap, err := svc.Water.RemoveGlass(ctx)
		if err != nil {
			return fmt.Errorf("failed to remove water: %w", err)
		}

		if snap.CurrentIntake == before.CurrentIntake {
			fmt.Println("Nothing logged today.")
			return nil
		}
		color.Yellow("✗ Removed %d ml", before.CurrentIntake-snap.CurrentIntake)
		printProgress(snap)
		return nil
	},
}

var waterStatusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show today's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		snap, err := svc.Water.Load(ctx)
		if err != nil {
			return err
		}

		printProgress(snap)

		intakes := svc.Water.Ledger.TodayIntakes(ctx)
		if len(intakes) > 0 {
			fmt.Println()
			faint := color.New(color.Faint)
			for _, in := range intakes {
				fmt.Printf("  %s %s %d ml\n",
					faint.Sprint(shortID(in.ID)),
					faint.Sprint(in.Timestamp.Format("15:04")),
					in.Amount)
			}
		}

		fmt.Println()
		printWeekSummary(snap.Stats, snap.WeeklyHistory)
		return nil
	},
}

var waterHistoryCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist"},
	Short:   "Show daily totals",
	Long: `Show daily water totals ending today, oldest first.

Every row is compared against the current daily goal.

Examples:
  aurofit water history
  aurofit water history --days 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyDays < 1 || historyDays > water.MaxHistoryDays {
			return fmt.Errorf("--days must be between 1 and %d", water.MaxHistoryDays)
		}
		days := svc.Water.History.History(cmd.Context(), historyDays)

		faint := color.New(color.Faint)
		for _, d := range days {
			pct := 0.0
			if d.Goal > 0 {
				pct = float64(d.TotalIntake) / float64(d.Goal) * 100
			}
			mark := " "
			if d.TotalIntake >= d.Goal {
				mark = color.GreenString("✓")
			}
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(d.Date),
				tierColor(water.TierFor(pct)).Sprint(progressBar(pct, barWidth)),
				padLeft(fmt.Sprintf("%d ml", d.TotalIntake), 8),
				faint.Sprintf("(%d)", d.IntakeCount),
				mark)
		}

		fmt.Println()
		printWeekSummary(water.ComputeWeeklyStats(days), days)
		return nil
	},
}

var waterGoalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show or change the water goal",
	Long: `Show the goal, or change it with flags. Values are clamped to valid ranges:

  --daily      500 to 5000 ml
  --glass      200, 250, 300, 400 or 500 ml (other sizes snap to the nearest)
  --reminders  turn hydration reminders on or off
  --interval   15 to 480 minutes between reminders

Examples:
  aurofit water goal
  aurofit water goal --daily 2500 --glass 300
  aurofit water goal --reminders --interval 90`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		patch := goalPatchFromFlags(cmd)
		if patch.IsEmpty() {
			printGoal(svc.Water.Goals.Goal(ctx))
			return nil
		}

		snap, err := svc.Water.UpdateGoal(ctx, patch)
		if err != nil {
			return fmt.Errorf("failed to save goal: %w", err)
		}
		color.Green("✓ Goal saved")
		printGoal(*snap.Goal)
		return nil
	},
}

var waterResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all water data",
	Long: `Delete every intake event and the stored goal. The goal returns to its defaults.

This cannot be undone. Pass --yes to confirm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to delete water data without --yes")
		}
		ctx := cmd.Context()
		if err := svc.Water.Ledger.Clear(ctx); err != nil {
			return err
		}
		if err := svc.Water.Goals.Reset(ctx); err != nil {
			return err
		}
		color.Yellow("✗ Water data deleted")
		return nil
	},
}

func goalPatchFromFlags(cmd *cobra.Command) models.GoalPatch {
	var patch models.GoalPatch
	flags := cmd.Flags()
	if flags.Changed("daily") {
		patch.DailyGoal = &goalDaily
	}
	if flags.Changed("glass") {
		patch.GlassSize = &goalGlass
	}
	if flags.Changed("reminders") {
		patch.ReminderEnabled = &goalReminders
	}
	if flags.Changed("interval") {
		patch.ReminderInterval = &goalInterval
	}
	return patch
}

func printProgress(snap water.Snapshot) {
	goal := models.DefaultWaterGoal()
	if snap.Goal != nil {
		goal = *snap.Goal
	}
	p := snap.Progress

	fmt.Printf("%s %d/%d ml (%.0f%%)\n",
		tierColor(p.Tier).Sprint(progressBar(p.Percentage, barWidth)),
		snap.CurrentIntake, goal.DailyGoal, p.Percentage)
	fmt.Printf("%d glasses (%d ml each)\n", p.Glasses, goal.GlassSize)

	if p.RemainingGlasses > 0 {
		fmt.Println(remainingMessage(p.RemainingGlasses))
	} else {
		color.Green("🎉 Goal achieved! Great job!")
	}
}

func printWeekSummary(stats water.WeeklyStats, days []models.WaterHistoryDay) {
	fmt.Printf("Total: %d ml  Average: %.0f ml/day  Goal met: %d/%d\n",
		stats.Total, stats.DailyAverage, stats.GoalDays, len(days))
	if stats.BestDay != nil {
		fmt.Printf("Best day: %s (%d ml)\n", stats.BestDay.Date, stats.BestDay.TotalIntake)
	}
}

func printGoal(g models.WaterGoal) {
	reminders := "off"
	if g.ReminderEnabled {
		reminders = fmt.Sprintf("every %d min", g.ReminderInterval)
	}
	fmt.Printf("Daily goal: %d ml\n", g.DailyGoal)
	fmt.Printf("Glass size: %d ml\n", g.GlassSize)
	fmt.Printf("Reminders:  %s\n", reminders)
}

func remainingMessage(glasses int) string {
	if glasses == 1 {
		return "1 more glass to go!"
	}
	return fmt.Sprintf("%d more glasses to go!", glasses)
}

// progressBar renders pct (0-100) as a fixed-width bar.
func progressBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func tierColor(t water.Tier) *color.Color {
	switch t {
	case water.TierGoalReached:
		return color.New(color.FgGreen)
	case water.TierGood:
		return color.New(color.FgBlue)
	case water.TierNeedsWork:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func init() {
	waterHistoryCmd.Flags().IntVarP(&historyDays, "days", "d", water.WeekDays, "number of days ending today")

	waterGoalCmd.Flags().IntVar(&goalDaily, "daily", 0, "daily goal in ml")
	waterGoalCmd.Flags().IntVar(&goalGlass, "glass", 0, "glass size in ml")
	waterGoalCmd.Flags().BoolVar(&goalReminders, "reminders", false, "enable hydration reminders")
	waterGoalCmd.Flags().IntVar(&goalInterval, "interval", 0, "minutes between reminders")

	waterResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "confirm deletion")

	waterCmd.AddCommand(waterAddCmd)
	waterCmd.AddCommand(waterRemoveCmd)
	waterCmd.AddCommand(waterStatusCmd)
	waterCmd.AddCommand(waterHistoryCmd)
	waterCmd.AddCommand(waterGoalCmd)
	waterCmd.AddCommand(waterResetCmd)
	rootCmd.AddCommand(waterCmd)
}
