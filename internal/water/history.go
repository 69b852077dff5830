// ABOUTME: History Aggregator deriving per-day totals from the intake ledger.
// ABOUTME: Produces fixed windows of days ending today, oldest first.
package water

import (
	"context"

	"github.com/harperreed/aurofit/internal/models"
)

// WeekDays is the length of the weekly history window.
const WeekDays = 7

// MaxHistoryDays is the longest history window served.
const MaxHistoryDays = 366

// History derives daily totals from a ledger and the current goal.
type History struct {
	ledger *Ledger
	goals  *GoalStore
}

// NewHistory creates an aggregator over ledger and goals.
func NewHistory(ledger *Ledger, goals *GoalStore) *History {
	return &History{ledger: ledger, goals: goals}
}

// WeeklyHistory returns the last seven days ending today.
func (h *History) WeeklyHistory(ctx context.Context) []models.WaterHistoryDay {
	return h.History(ctx, WeekDays)
}

// History returns one row per calendar day for the last days days, oldest
// first, ending today. Every row carries the current goal, even for days
// logged under an older one. days is clamped to 1..MaxHistoryDays.
func (h *History) History(ctx context.Context, days int) []models.WaterHistoryDay {
	if days < 1 {
		days = 1
	}
	if days > MaxHistoryDays {
		days = MaxHistoryDays
	}

	items, err := h.ledger.events.Load(ctx)
	if err != nil {
		h.ledger.logger.Warn("reading water history", "err", err)
		return []models.WaterHistoryDay{}
	}
	goal := h.goals.Goal(ctx)

	type tally struct{ total, count int }
	byDate := make(map[string]tally)
	for _, in := range items {
		t := byDate[in.Date]
		t.total += in.Amount
		t.count++
		byDate[in.Date] = t
	}

	now := h.ledger.now()
	out := make([]models.WaterHistoryDay, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(models.DateLayout)
		t := byDate[date]
		out = append(out, models.WaterHistoryDay{
			Date:        date,
			TotalIntake: t.total,
			Goal:        goal.DailyGoal,
			IntakeCount: t.count,
		})
	}
	return out
}
