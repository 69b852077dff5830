// ABOUTME: Markdown report rendering for exported aurofit data.
// ABOUTME: Produces per-day water totals and a workout table, optionally since a date.
package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/aurofit/internal/models"
)

// ExportMarkdown renders data as a Markdown report. When since is non-nil,
// only records on or after it are included.
func ExportMarkdown(data *ExportData, since *time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Aurofit Export - %s\n\n", data.ExportedAt.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339)))

	goal := models.DefaultWaterGoal()
	if data.Goal != nil {
		goal = *data.Goal
	}
	sb.WriteString("## Goal\n\n")
	sb.WriteString(fmt.Sprintf("- Daily goal: %d ml\n", goal.DailyGoal))
	sb.WriteString(fmt.Sprintf("- Glass size: %d ml\n", goal.GlassSize))
	if goal.ReminderEnabled {
		sb.WriteString(fmt.Sprintf("- Reminders: every %d min\n", goal.ReminderInterval))
	} else {
		sb.WriteString("- Reminders: off\n")
	}
	sb.WriteString("\n")

	type day struct{ total, count int }
	days := make(map[string]day)
	for _, in := range data.Intakes {
		if since != nil && in.Timestamp.Before(*since) {
			continue
		}
		d := days[in.Date]
		d.total += in.Amount
		d.count++
		days[in.Date] = d
	}

	if len(days) > 0 {
		sb.WriteString("## Water\n\n")
		sb.WriteString("| Date | Total | Glasses | Goal |\n")
		sb.WriteString("|------|-------|---------|------|\n")
		for _, date := range sortedKeys(days) {
			d := days[date]
			mark := ""
			if d.total >= goal.DailyGoal {
				mark = "yes"
			}
			sb.WriteString(fmt.Sprintf("| %s | %d ml | %d | %s |\n", date, d.total, d.count, mark))
		}
		sb.WriteString("\n")
	}

	var workouts []models.WorkoutLog
	for _, w := range data.Workouts {
		if since != nil && w.Date.Before(*since) {
			continue
		}
		workouts = append(workouts, w)
	}

	if len(workouts) > 0 {
		sb.WriteString("## Workouts\n\n")
		sb.WriteString("| Date | Exercise | Sets x Reps | Duration | Notes |\n")
		sb.WriteString("|------|----------|-------------|----------|-------|\n")
		for _, w := range workouts {
			volume := ""
			if w.Sets > 0 {
				volume = fmt.Sprintf("%d x %d", w.Sets, w.Reps)
			}
			duration := ""
			if w.Duration != nil {
				duration = fmt.Sprintf("%d min", *w.Duration)
			}
			notes := ""
			if w.Notes != nil {
				notes = *w.Notes
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				w.Date.Format("2006-01-02 15:04"), w.ExerciseName, volume, duration, notes))
		}
		sb.WriteString("\n")
	}

	if len(data.Favorites) > 0 {
		sb.WriteString("## Favorites\n\n")
		for _, f := range data.Favorites {
			sb.WriteString(fmt.Sprintf("- %s", f.Name))
			if f.Muscle != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", f.Muscle))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
