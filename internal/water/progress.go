// ABOUTME: Pure progress and weekly statistics helpers for hydration views.
// ABOUTME: Percentage is capped at 100; tiers label how close the day is to goal.
package water

import (
	"math"

	"github.com/harperreed/aurofit/internal/models"
)

// Tier labels a day's progress towards the goal.
type Tier string

const (
	TierGoalReached Tier = "goal_reached"
	TierGood        Tier = "good"
	TierNeedsWork   Tier = "needs_work"
	TierLow         Tier = "low"
)

// Progress summarises today's intake against the goal.
type Progress struct {
	Percentage       float64 `json:"percentage"`
	Glasses          int     `json:"glasses"`
	RemainingML      int     `json:"remainingMl"`
	RemainingGlasses int     `json:"remainingGlasses"`
	Tier             Tier    `json:"tier"`
}

// ComputeProgress derives progress from a total and a goal.
func ComputeProgress(total int, goal models.WaterGoal) Progress {
	p := Progress{}
	if goal.DailyGoal > 0 {
		p.Percentage = math.Min(float64(total)/float64(goal.DailyGoal)*100, 100)
	}
	p.RemainingML = max(goal.DailyGoal-total, 0)
	if goal.GlassSize > 0 {
		p.Glasses = total / goal.GlassSize
		p.RemainingGlasses = int(math.Ceil(float64(p.RemainingML) / float64(goal.GlassSize)))
	}
	p.Tier = TierFor(p.Percentage)
	return p
}

// TierFor labels a percentage of the daily goal.
func TierFor(pct float64) Tier {
	switch {
	case pct >= 100:
		return TierGoalReached
	case pct >= 75:
		return TierGood
	case pct >= 50:
		return TierNeedsWork
	default:
		return TierLow
	}
}

// WeeklyStats summarises a history window.
type WeeklyStats struct {
	Total        int                     `json:"total"`
	DailyAverage float64                 `json:"dailyAverage"`
	BestDay      *models.WaterHistoryDay `json:"bestDay,omitempty"`
	GoalDays     int                     `json:"goalDays"`
	Days         int                     `json:"days"`
}

// ComputeWeeklyStats totals days. The average divides by the number of rows;
// the best day is the first row with the highest non-zero total.
func ComputeWeeklyStats(days []models.WaterHistoryDay) WeeklyStats {
	s := WeeklyStats{Days: len(days)}
	for i := range days {
		d := days[i]
		s.Total += d.TotalIntake
		if d.Goal > 0 && d.TotalIntake >= d.Goal {
			s.GoalDays++
		}
		if d.TotalIntake > 0 && (s.BestDay == nil || d.TotalIntake > s.BestDay.TotalIntake) {
			best := d
			s.BestDay = &best
		}
	}
	if len(days) > 0 {
		s.DailyAverage = float64(s.Total) / float64(len(days))
	}
	return s
}
