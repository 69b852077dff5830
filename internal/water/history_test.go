// ABOUTME: Tests for the History Aggregator and the pure progress helpers.
// ABOUTME: Checks window shape, per-day totals, progress tiers, and weekly stats.
package water

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/aurofit/internal/logging"
	"github.com/harperreed/aurofit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyHistoryShape(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	days := e.history.WeeklyHistory(ctx)
	require.Len(t, days, 7)
	assert.Equal(t, "2026-03-08", days[0].Date)
	assert.Equal(t, "2026-03-14", days[6].Date)
	for _, d := range days {
		assert.Zero(t, d.TotalIntake)
		assert.Zero(t, d.IntakeCount)
		assert.Equal(t, models.DefaultDailyGoal, d.Goal)
	}
}

func TestWeeklyHistoryTotals(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	now := e.clock.Now()
	e.seed(t,
		intakeAt("a", 250, now),
		intakeAt("b", 250, now.Add(-time.Hour)),
		intakeAt("c", 400, now.AddDate(0, 0, -3)),
		intakeAt("d", 900, now.AddDate(0, 0, -10)),
	)
	_, err := e.goals.SaveGoal(ctx, models.GoalPatch{DailyGoal: intPtr(2400)})
	require.NoError(t, err)

	days := e.history.WeeklyHistory(ctx)
	require.Len(t, days, 7)
	assert.Equal(t, 500, days[6].TotalIntake)
	assert.Equal(t, 2, days[6].IntakeCount)
	assert.Equal(t, 400, days[3].TotalIntake)
	assert.Equal(t, 1, days[3].IntakeCount)

	sum := 0
	for _, d := range days {
		sum += d.TotalIntake
		assert.Equal(t, 2400, d.Goal)
	}
	assert.Equal(t, 900, sum)
}

func TestHistoryCustomWindow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	assert.Len(t, e.history.History(ctx, 30), 30)
	assert.Len(t, e.history.History(ctx, 0), 1)
}

func TestHistoryWindowIsCapped(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	days := e.history.History(ctx, 1<<60)
	require.Len(t, days, MaxHistoryDays)
	assert.Equal(t, "2026-03-14", days[MaxHistoryDays-1].Date)
}

func TestHistoryReadFailureIsEmpty(t *testing.T) {
	logger := logging.Discard()
	ledger := NewLedger(failingStore{}, nil, logger)
	h := NewHistory(ledger, NewGoalStore(failingStore{}, nil, logger))

	assert.Empty(t, h.WeeklyHistory(context.Background()))
}

func TestComputeProgress(t *testing.T) {
	goal := models.DefaultWaterGoal()

	tests := []struct {
		name    string
		total   int
		pct     float64
		glasses int
		left    int
		tier    Tier
	}{
		{"empty", 0, 0, 0, 8, TierLow},
		{"partial", 750, 37.5, 3, 5, TierLow},
		{"half", 1000, 50, 4, 4, TierNeedsWork},
		{"good", 1500, 75, 6, 2, TierGood},
		{"reached", 2000, 100, 8, 0, TierGoalReached},
		{"over", 2500, 100, 10, 0, TierGoalReached},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeProgress(tt.total, goal)
			assert.InDelta(t, tt.pct, p.Percentage, 0.001)
			assert.Equal(t, tt.glasses, p.Glasses)
			assert.Equal(t, tt.left, p.RemainingGlasses)
			assert.Equal(t, tt.tier, p.Tier)
		})
	}
}

func TestComputeProgressZeroGoal(t *testing.T) {
	p := ComputeProgress(500, models.WaterGoal{})
	assert.Zero(t, p.Percentage)
	assert.Zero(t, p.Glasses)
}

func TestComputeWeeklyStats(t *testing.T) {
	days := []models.WaterHistoryDay{
		{Date: "2026-03-08", TotalIntake: 0, Goal: 2000},
		{Date: "2026-03-09", TotalIntake: 2100, Goal: 2000},
		{Date: "2026-03-10", TotalIntake: 1400, Goal: 2000},
		{Date: "2026-03-11", TotalIntake: 2100, Goal: 2000},
		{Date: "2026-03-12", TotalIntake: 0, Goal: 2000},
		{Date: "2026-03-13", TotalIntake: 2000, Goal: 2000},
		{Date: "2026-03-14", TotalIntake: 400, Goal: 2000},
	}

	s := ComputeWeeklyStats(days)
	assert.Equal(t, 8000, s.Total)
	assert.InDelta(t, 8000.0/7, s.DailyAverage, 0.001)
	assert.Equal(t, 3, s.GoalDays)
	require.NotNil(t, s.BestDay)
	assert.Equal(t, "2026-03-09", s.BestDay.Date)
}

func TestComputeWeeklyStatsEmpty(t *testing.T) {
	s := ComputeWeeklyStats(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.DailyAverage)
	assert.Nil(t, s.BestDay)
}
