// ABOUTME: CLI command for starting the JSON HTTP API.
// ABOUTME: Serves until interrupted, with hydration reminders running alongside.
package main

import (
	"fmt"

	"github.com/harperreed/aurofit/internal/api"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve the JSON HTTP API until interrupted.

ROUTES:

  GET    /health
  GET    /api/water                 Today's snapshot
  POST   /api/water/intakes         {"amount": ml}, one glass when omitted
  DELETE /api/water/intakes/last    Undo today's last intake
  GET    /api/water/history?days=7
  GET    /api/water/goal
  PUT    /api/water/goal            Partial goal update
  GET    /api/favorites
  POST   /api/favorites/toggle
  DELETE /api/favorites/{key}
  GET    /api/workouts?type=&limit=
  POST   /api/workouts
  DELETE /api/workouts/{id}
  GET    /api/workouts/stats

The address defaults to listen_addr from the config, or :8080.
Hydration reminders configured on the goal are logged while serving.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetListenAddr()
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		if err := svc.StartReminders(ctx); err != nil {
			return fmt.Errorf("failed to start reminders: %w", err)
		}

		return api.New(svc).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: config listen_addr or :8080)")
	rootCmd.AddCommand(serveCmd)
}
