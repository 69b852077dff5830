// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server over the configured store.
package main

import (
	"github.com/harperreed/aurofit/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server.

The server communicates via stdin/stdout. Logs go to stderr.

CLIENT CONFIGURATION:

  {
    "mcpServers": {
      "aurofit": {
        "command": "aurofit",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_water        Log water (one glass by default)
  remove_water     Undo today's last intake
  water_status     Today's progress and weekly stats
  water_history    Daily totals for the last N days
  get_goal         Show the water goal
  set_goal         Change the water goal or reminders
  list_favorites   List favorite exercises
  toggle_favorite  Add or remove a favorite exercise
  log_workout      Log a workout
  list_workouts    List recent workouts
  delete_workout   Delete a workout by ID or prefix
  workout_stats    Workout counts and minutes per exercise

AVAILABLE RESOURCES:

  aurofit://water/today      Today's intake and progress
  aurofit://water/week       Last 7 days with stats
  aurofit://workouts/recent  Recent workouts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
