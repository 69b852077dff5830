// ABOUTME: Hydration reminder scheduler driven by the water goal's reminder settings.
// ABOUTME: Runs a ticker goroutine per schedule and persists its settings in the store.
package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/models"
)

// SnoozeDelay is how many interval units a snoozed reminder waits.
const SnoozeDelay = 30

// Settings is the persisted reminder state.
type Settings struct {
	Enabled       bool       `json:"enabled"`
	Interval      int        `json:"interval"`
	LastScheduled *time.Time `json:"lastScheduled"`
}

// DefaultSettings returns reminders switched off at the default interval.
func DefaultSettings() Settings {
	return Settings{Interval: models.DefaultReminderInterval}
}

// Reminder is one notification to deliver.
type Reminder struct {
	Title  string
	Body   string
	Snooze bool
}

var (
	hydrateReminder = Reminder{Title: "Time to Hydrate!", Body: "Stay hydrated! Drink a glass of water now."}
	snoozeReminder  = Reminder{Title: "Hydration Reminder", Body: "Remember to drink water!", Snooze: true}
)

// Notifier delivers reminders to the user.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithUnit sets the duration of one interval unit. Defaults to a minute.
func WithUnit(d time.Duration) Option {
	return func(s *Scheduler) { s.unit = d }
}

// WithClock sets the clock used for LastScheduled.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// Scheduler fires reminders on the configured interval until shut down.
type Scheduler struct {
	store    kv.Store
	notifier Notifier
	logger   *log.Logger
	unit     time.Duration
	now      func() time.Time

	mu       sync.Mutex
	base     context.Context
	settings Settings
	stop     context.CancelFunc
	snooze   *time.Timer
	wg       sync.WaitGroup
}

// New creates a scheduler. Call Init before use and Shutdown when done.
func New(store kv.Store, notifier Notifier, logger *log.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:    store,
		notifier: notifier,
		logger:   logger,
		unit:     time.Minute,
		now:      time.Now,
		base:     context.Background(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads persisted settings and resumes reminders if they were enabled.
// ctx bounds the lifetime of every schedule started afterwards.
func (s *Scheduler) Init(ctx context.Context) error {
	settings, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("loading reminder settings", "err", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = ctx
	s.settings = settings
	if settings.Enabled {
		return s.scheduleLocked(ctx)
	}
	return nil
}

// Settings returns a copy of the current settings.
func (s *Scheduler) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Running reports whether a recurring schedule is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// UpdateSettings applies goal's reminder fields: switching on schedules,
// switching off cancels, and staying on reschedules at the new interval.
func (s *Scheduler) UpdateSettings(ctx context.Context, goal models.WaterGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasEnabled := s.settings.Enabled
	s.settings.Enabled = goal.ReminderEnabled
	s.settings.Interval = goal.ReminderInterval
	if err := s.saveLocked(ctx); err != nil {
		return err
	}

	switch {
	case goal.ReminderEnabled:
		return s.scheduleLocked(ctx)
	case wasEnabled:
		s.cancelLocked()
		s.logger.Info("water reminders cancelled")
	}
	return nil
}

// Snooze delivers a single reminder after SnoozeDelay units, replacing any
// pending snooze.
func (s *Scheduler) Snooze(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snooze != nil {
		s.snooze.Stop()
	}
	base := s.base
	s.snooze = time.AfterFunc(SnoozeDelay*s.unit, func() {
		s.deliver(base, snoozeReminder)
	})
	s.logger.Debug("water reminder snoozed", "delay", SnoozeDelay*s.unit)
}

// Shutdown stops every pending reminder and waits for the ticker goroutine.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	s.cancelLocked()
	if s.snooze != nil {
		s.snooze.Stop()
		s.snooze = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Scheduler) scheduleLocked(ctx context.Context) error {
	s.cancelLocked()

	interval := time.Duration(s.settings.Interval) * s.unit
	if interval <= 0 {
		return fmt.Errorf("invalid reminder interval %d", s.settings.Interval)
	}

	loopCtx, stop := context.WithCancel(s.base)
	s.stop = stop
	s.wg.Add(1)
	go s.run(loopCtx, interval)

	now := s.now()
	s.settings.LastScheduled = &now
	if err := s.saveLocked(ctx); err != nil {
		s.logger.Warn("saving reminder schedule", "err", err)
	}
	s.logger.Info("water reminders scheduled", "every", interval)
	return nil
}

func (s *Scheduler) cancelLocked() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *Scheduler) run(ctx context.Context, interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.deliver(ctx, hydrateReminder)
		}
	}
}

func (s *Scheduler) deliver(ctx context.Context, r Reminder) {
	if err := s.notifier.Notify(ctx, r); err != nil {
		s.logger.Error("delivering water reminder", "err", err)
	}
}

func (s *Scheduler) load(ctx context.Context) (Settings, error) {
	settings := DefaultSettings()
	data, err := s.store.Get(ctx, kv.KeyNotificationSettings)
	if errors.Is(err, kv.ErrNotFound) {
		return settings, nil
	}
	if err != nil {
		return settings, err
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("decode reminder settings: %w", err)
	}
	return settings, nil
}

func (s *Scheduler) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("encode reminder settings: %w", err)
	}
	unlock := kv.LockKey(s.store, kv.KeyNotificationSettings)
	defer unlock()
	if err := s.store.Set(ctx, kv.KeyNotificationSettings, data); err != nil {
		return fmt.Errorf("save reminder settings: %w", err)
	}
	return nil
}
