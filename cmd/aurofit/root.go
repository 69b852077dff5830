// ABOUTME: Root Cobra command for aurofit CLI.
// ABOUTME: Opens the configured store and services via PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harperreed/aurofit/internal/app"
	"github.com/harperreed/aurofit/internal/config"
	"github.com/harperreed/aurofit/internal/logging"
	"github.com/harperreed/aurofit/internal/reminder"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	svc    *app.App
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aurofit",
	Short: "Hydration and workout tracker",
	Long: `Aurofit tracks daily water intake against a goal and keeps a log of
your workouts and favorite exercises.

QUICK START:

  $ aurofit water add                  # Log one glass
  $ aurofit water add 500              # Log 500 ml
  $ aurofit water status               # Today's progress
  $ aurofit water history              # Last 7 days
  $ aurofit water goal --daily 2500    # Change the daily goal

WORKOUTS:

  $ aurofit workout log "Push Up" --sets 3 --reps 12
  $ aurofit workout list
  $ aurofit workout stats

FAVORITES:

  $ aurofit fav add "Plank" --muscle abdominals
  $ aurofit fav list

STORAGE:

  Data lives in a key-value store selected by the "backend" config field or
  AUROFIT_BACKEND: badger (default), sqlite, redis, or charm (cloud sync).
  Config is read from ~/.config/aurofit/config.json and a .env file.

SERVERS:

  $ aurofit mcp       # Model Context Protocol server on stdio
  $ aurofit serve     # JSON HTTP API
  $ aurofit remind    # Foreground hydration reminders`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store init for commands that don't need it
		if skipsStore(cmd) {
			return nil
		}
		return openServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeServices()
	},
}

func skipsStore(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	if cmd.Parent() == nil {
		return false
	}
	switch cmd.Parent().Name() {
	case "config":
		return true
	case "sync":
		// These work on the Charm database by name and need its lock free.
		switch cmd.Name() {
		case "link", "unlink", "repair", "wipe":
			return true
		}
	}
	return false
}

func openServices(cmd *cobra.Command) error {
	ctx := cmd.Context()
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger = logging.Default(cfg.GetLogLevel())

	store, err := cfg.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.GetBackend(), err)
	}
	svc = app.New(store, notifierFor(cmd), logger)
	return nil
}

// notifierFor keeps reminders off stdout for commands that own it.
func notifierFor(cmd *cobra.Command) reminder.Notifier {
	switch cmd.Name() {
	case "mcp", "serve":
		return reminder.LogNotifier{Logger: logger}
	}
	return terminalNotifier{}
}

func closeServices() error {
	if svc == nil {
		return nil
	}
	err := svc.Close()
	svc = nil
	return err
}

// Execute runs the root command. Services are closed even when a command fails.
func Execute() error {
	defer func() { _ = closeServices() }()
	return rootCmd.ExecuteContext(context.Background())
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
