// ABOUTME: Service bundle wiring storage, logging, reminders, and domain stores.
// ABOUTME: Shared by the CLI, the MCP server, and the HTTP API.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/aurofit/internal/favorites"
	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/reminder"
	"github.com/harperreed/aurofit/internal/water"
	"github.com/harperreed/aurofit/internal/workouts"
)

// App holds every service built over one store.
type App struct {
	Store     kv.Store
	Logger    *log.Logger
	Reminders *reminder.Scheduler
	Water     *water.Tracker
	Favorites *favorites.Store
	Workouts  *workouts.Store
	Now       func() time.Time
}

// Option customises New.
type Option func(*options)

type options struct {
	now          func() time.Time
	reminderOpts []reminder.Option
}

// WithClock replaces time.Now for every service.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithReminderOptions passes options through to the reminder scheduler.
func WithReminderOptions(opts ...reminder.Option) Option {
	return func(o *options) { o.reminderOpts = append(o.reminderOpts, opts...) }
}

// New wires services over store. notifier receives hydration reminders.
func New(store kv.Store, notifier reminder.Notifier, logger *log.Logger, opts ...Option) *App {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	reminderOpts := append([]reminder.Option{reminder.WithClock(o.now)}, o.reminderOpts...)
	scheduler := reminder.New(store, notifier, logger.WithPrefix("reminder"), reminderOpts...)

	goals := water.NewGoalStore(store, scheduler, logger.WithPrefix("water"))
	ledger := water.NewLedger(store, o.now, logger.WithPrefix("water"))
	history := water.NewHistory(ledger, goals)

	return &App{
		Store:     store,
		Logger:    logger,
		Reminders: scheduler,
		Water:     water.NewTracker(goals, ledger, history),
		Favorites: favorites.New(store, logger.WithPrefix("favorites")),
		Workouts:  workouts.New(store, o.now, logger.WithPrefix("workouts")),
		Now:       o.now,
	}
}

// StartReminders resumes any persisted reminder schedule for the lifetime of ctx.
func (a *App) StartReminders(ctx context.Context) error {
	return a.Reminders.Init(ctx)
}

// Close stops reminders and closes the store.
func (a *App) Close() error {
	a.Reminders.Shutdown()
	return a.Store.Close()
}
