// ABOUTME: Notifier implementations for hydration reminders.
// ABOUTME: LogNotifier writes reminders to a structured logger for headless runs.
package reminder

import (
	"context"

	"github.com/charmbracelet/log"
)

// LogNotifier reports reminders through a logger.
type LogNotifier struct {
	Logger *log.Logger
}

// Notify logs r at info level.
func (n LogNotifier) Notify(_ context.Context, r Reminder) error {
	n.Logger.Info(r.Title, "body", r.Body, "snooze", r.Snooze)
	return nil
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, r Reminder) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, r Reminder) error {
	return f(ctx, r)
}
