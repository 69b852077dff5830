// ABOUTME: CLI command running hydration reminders in the foreground.
// ABOUTME: Prints reminders to the terminal; typing "s" snoozes the next one.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/aurofit/internal/reminder"
	"github.com/spf13/cobra"
)

var remindSnooze bool

// terminalNotifier prints reminders with a terminal bell.
type terminalNotifier struct{}

func (terminalNotifier) Notify(_ context.Context, r reminder.Reminder) error {
	return writeReminder(os.Stdout, r, time.Now())
}

func writeReminder(w io.Writer, r reminder.Reminder, at time.Time) error {
	title := color.New(color.FgCyan, color.Bold).Sprintf("💧 %s", r.Title)
	_, err := fmt.Fprintf(w, "\a%s %s\n   %s\n",
		color.New(color.Faint).Sprint(at.Format("15:04")), title, r.Body)
	return err
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run hydration reminders in the foreground",
	Long: `Run hydration reminders until interrupted.

Reminders follow the goal settings. Turn them on first:

  aurofit water goal --reminders --interval 60

While running, type "s" and Enter to snooze: one extra reminder arrives
30 minutes later. Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		if err := svc.StartReminders(ctx); err != nil {
			return fmt.Errorf("failed to start reminders: %w", err)
		}

		settings := svc.Reminders.Settings()
		if !settings.Enabled {
			color.Yellow("Reminders are off.")
			fmt.Println("Turn them on with: aurofit water goal --reminders")
			return nil
		}

		fmt.Printf("Reminding every %d min. Type \"s\" to snooze, Ctrl+C to stop.\n", settings.Interval)
		if remindSnooze {
			svc.Reminders.Snooze(ctx)
		}

		go readSnoozeCommands(ctx, os.Stdin, svc.Reminders)

		<-ctx.Done()
		fmt.Println()
		return nil
	},
}

// readSnoozeCommands snoozes once per "s" line read from r.
func readSnoozeCommands(ctx context.Context, r io.Reader, scheduler *reminder.Scheduler) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if strings.EqualFold(strings.TrimSpace(scanner.Text()), "s") {
			scheduler.Snooze(ctx)
			color.New(color.Faint).Printf("Snoozed for %d min\n", reminder.SnoozeDelay)
		}
	}
}

func init() {
	remindCmd.Flags().BoolVar(&remindSnooze, "snooze", false, "also schedule one snoozed reminder at start")
	rootCmd.AddCommand(remindCmd)
}
