// ABOUTME: Tracker state container combining the goal, ledger, and history.
// ABOUTME: Loads a snapshot concurrently and keeps it current as intake changes.
package water

import (
	"context"
	"fmt"
	"sync"

	"github.com/harperreed/aurofit/internal/models"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the view of hydration state shown to a user.
type Snapshot struct {
	CurrentIntake int                      `json:"currentIntake"`
	Goal          *models.WaterGoal        `json:"goal,omitempty"`
	WeeklyHistory []models.WaterHistoryDay `json:"weeklyHistory"`
	Progress      Progress                 `json:"progress"`
	Stats         WeeklyStats              `json:"stats"`
}

// Tracker owns the in-memory snapshot and routes mutations to storage.
type Tracker struct {
	Goals   *GoalStore
	Ledger  *Ledger
	History *History

	mu    sync.Mutex
	state Snapshot
}

// NewTracker wires a tracker from its three stores.
func NewTracker(goals *GoalStore, ledger *Ledger, history *History) *Tracker {
	return &Tracker{
		Goals:   goals,
		Ledger:  ledger,
		History: history,
		state:   Snapshot{WeeklyHistory: []models.WaterHistoryDay{}},
	}
}

// Load reads today's total, the goal, and the weekly history concurrently.
func (t *Tracker) Load(ctx context.Context) (Snapshot, error) {
	var (
		total   int
		goal    models.WaterGoal
		history []models.WaterHistoryDay
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total = t.Ledger.TodayTotal(gctx)
		return nil
	})
	g.Go(func() error {
		goal = t.Goals.Goal(gctx)
		return nil
	})
	g.Go(func() error {
		history = t.History.WeeklyHistory(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("load water state: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Snapshot{CurrentIntake: total, Goal: &goal, WeeklyHistory: history}
	t.refresh()
	return t.snapshot(), nil
}

// State returns a copy of the current snapshot.
func (t *Tracker) State() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// AddGlass logs one glass of the goal's size. The goal must be loaded.
func (t *Tracker) AddGlass(ctx context.Context) (Snapshot, error) {
	t.mu.Lock()
	goal := t.state.Goal
	t.mu.Unlock()
	if goal == nil {
		return Snapshot{}, ErrNoGoal
	}
	return t.add(ctx, goal.GlassSize, goal.GlassSize)
}

// AddAmount logs ml of water using the goal's glass size as the vessel.
func (t *Tracker) AddAmount(ctx context.Context, ml int) (Snapshot, error) {
	t.mu.Lock()
	glass := models.DefaultGlassSize
	if t.state.Goal != nil {
		glass = t.state.Goal.GlassSize
	}
	t.mu.Unlock()
	return t.add(ctx, ml, glass)
}

func (t *Tracker) add(ctx context.Context, amount, glass int) (Snapshot, error) {
	if _, err := t.Ledger.AddIntake(ctx, amount, glass); err != nil {
		return Snapshot{}, err
	}
	return t.reloadToday(ctx), nil
}

// RemoveGlass undoes today's most recent intake.
func (t *Tracker) RemoveGlass(ctx context.Context) (Snapshot, error) {
	if err := t.Ledger.RemoveLastIntake(ctx); err != nil {
		return Snapshot{}, err
	}
	return t.reloadToday(ctx), nil
}

// UpdateGoal saves patch and applies the stored goal to the snapshot.
func (t *Tracker) UpdateGoal(ctx context.Context, patch models.GoalPatch) (Snapshot, error) {
	goal, err := t.Goals.SaveGoal(ctx, patch)
	if err != nil {
		return Snapshot{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Goal = &goal
	for i := range t.state.WeeklyHistory {
		t.state.WeeklyHistory[i].Goal = goal.DailyGoal
	}
	t.refresh()
	return t.snapshot(), nil
}

// reloadToday rereads today's events and patches today's history row,
// rebuilding the window first when the date has rolled over.
func (t *Tracker) reloadToday(ctx context.Context) Snapshot {
	today := t.Ledger.Today()
	intakes := t.Ledger.TodayIntakes(ctx)

	// Past midnight the cached window no longer ends on today.
	t.mu.Lock()
	week := t.state.WeeklyHistory
	stale := len(week) == 0 || week[len(week)-1].Date != today
	t.mu.Unlock()
	var fresh []models.WaterHistoryDay
	if stale {
		fresh = t.History.WeeklyHistory(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(fresh) > 0 {
		t.state.WeeklyHistory = fresh
	}
	t.state.CurrentIntake = sumAmounts(intakes)
	for i := range t.state.WeeklyHistory {
		if t.state.WeeklyHistory[i].Date == today {
			t.state.WeeklyHistory[i].TotalIntake = t.state.CurrentIntake
			t.state.WeeklyHistory[i].IntakeCount = len(intakes)
		}
	}
	t.refresh()
	return t.snapshot()
}

// refresh recomputes derived fields. Callers hold mu.
func (t *Tracker) refresh() {
	goal := models.DefaultWaterGoal()
	if t.state.Goal != nil {
		goal = *t.state.Goal
	}
	t.state.Progress = ComputeProgress(t.state.CurrentIntake, goal)
	t.state.Stats = ComputeWeeklyStats(t.state.WeeklyHistory)
}

// snapshot copies state so callers cannot mutate it. Callers hold mu.
func (t *Tracker) snapshot() Snapshot {
	s := t.state
	s.WeeklyHistory = make([]models.WaterHistoryDay, len(t.state.WeeklyHistory))
	copy(s.WeeklyHistory, t.state.WeeklyHistory)
	if t.state.Goal != nil {
		g := *t.state.Goal
		s.Goal = &g
	}
	if t.state.Stats.BestDay != nil {
		b := *t.state.Stats.BestDay
		s.Stats.BestDay = &b
	}
	return s
}
