// ABOUTME: Intake Ledger of timestamped water events across all dates.
// ABOUTME: Appends events, undoes today's latest one, and answers today's totals.
package water

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/models"
)

var (
	// ErrInvalidAmount is returned when an intake amount is not positive.
	ErrInvalidAmount = errors.New("intake amount must be positive")
	// ErrNoGoal is returned when a glass is added before a goal is loaded.
	ErrNoGoal = errors.New("no goal set")
)

// Clock returns the current instant. Tests inject fixed clocks.
type Clock func() time.Time

// Ledger stores every intake event under a single key.
type Ledger struct {
	events *kv.Collection[models.WaterIntake]
	now    Clock
	logger *log.Logger
}

// NewLedger creates a ledger over store. A nil clock uses time.Now.
func NewLedger(store kv.Store, now Clock, logger *log.Logger) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		events: kv.NewCollection[models.WaterIntake](store, kv.KeyWaterIntake),
		now:    now,
		logger: logger,
	}
}

// Today returns today's calendar date in the ledger's clock.
func (l *Ledger) Today() string {
	return l.now().Format(models.DateLayout)
}

// AddIntake records amount ml drunk from a glass of glassSize ml.
func (l *Ledger) AddIntake(ctx context.Context, amount, glassSize int) (models.WaterIntake, error) {
	if amount <= 0 {
		return models.WaterIntake{}, fmt.Errorf("add intake of %d ml: %w", amount, ErrInvalidAmount)
	}
	if glassSize <= 0 {
		glassSize = models.DefaultGlassSize
	}

	intake := models.NewWaterIntake(amount, glassSize, l.now())
	_, err := l.events.Update(ctx, func(items []models.WaterIntake) ([]models.WaterIntake, error) {
		return append(items, intake), nil
	})
	if err != nil {
		return models.WaterIntake{}, fmt.Errorf("add intake: %w", err)
	}
	return intake, nil
}

// RemoveLastIntake removes today's chronologically last event. It is a
// no-op when nothing has been logged today.
func (l *Ledger) RemoveLastIntake(ctx context.Context) error {
	today := l.Today()
	_, err := l.events.Update(ctx, func(items []models.WaterIntake) ([]models.WaterIntake, error) {
		last := -1
		for i, in := range items {
			if in.Date != today {
				continue
			}
			if last < 0 || !in.Timestamp.Before(items[last].Timestamp) {
				last = i
			}
		}
		if last < 0 {
			return nil, kv.ErrNoChange
		}
		return append(items[:last:last], items[last+1:]...), nil
	})
	if err != nil {
		return fmt.Errorf("remove last intake: %w", err)
	}
	return nil
}

// All returns every stored event. Read failures are logged and yield nil.
func (l *Ledger) All(ctx context.Context) []models.WaterIntake {
	items, err := l.events.Load(ctx)
	if err != nil {
		l.logger.Warn("reading water intake", "err", err)
		return nil
	}
	return items
}

// IntakesOn returns the events logged on date (YYYY-MM-DD).
func (l *Ledger) IntakesOn(ctx context.Context, date string) []models.WaterIntake {
	return filterByDate(l.All(ctx), date)
}

// TodayIntakes returns the events logged today.
func (l *Ledger) TodayIntakes(ctx context.Context) []models.WaterIntake {
	return l.IntakesOn(ctx, l.Today())
}

// TodayTotal returns the ml logged today.
func (l *Ledger) TodayTotal(ctx context.Context) int {
	return sumAmounts(l.TodayIntakes(ctx))
}

// Clear removes every stored event.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.events.Clear(ctx); err != nil {
		return fmt.Errorf("clear water intake: %w", err)
	}
	return nil
}

func filterByDate(items []models.WaterIntake, date string) []models.WaterIntake {
	var out []models.WaterIntake
	for _, in := range items {
		if in.Date == date {
			out = append(out, in)
		}
	}
	return out
}

func sumAmounts(items []models.WaterIntake) int {
	total := 0
	for _, in := range items {
		total += in.Amount
	}
	return total
}
