// ABOUTME: CLI commands for viewing and editing aurofit configuration.
// ABOUTME: Runs without opening the store so a broken backend can be fixed.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/aurofit/internal/config"
	"github.com/harperreed/aurofit/internal/storage"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show or change the configuration stored in ~/.config/aurofit/config.json.

AUROFIT_* environment variables and a .env file override the file.

KEYS:

  backend         badger, sqlite, redis, or charm
  data_dir        local data directory
  redis_addr      Redis address (host:port)
  redis_password  Redis password
  redis_db        Redis database number
  log_level       debug, info, warn, or error
  listen_addr     address for 'aurofit serve'`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}

		dataDir := c.GetDataDir()
		hasData, err := storage.IsDirNonEmpty(dataDir)
		if err != nil {
			return err
		}
		state := color.New(color.Faint).Sprint("(empty)")
		if hasData {
			state = color.GreenString("(has data)")
		}

		fmt.Println("Config file:", config.GetConfigPath())
		fmt.Println("Backend:    ", c.GetBackend())
		fmt.Println("Data dir:   ", dataDir, state)
		if c.GetBackend() == config.BackendRedis {
			fmt.Println("Redis:      ", c.GetRedisAddr())
		}
		fmt.Println("Log level:  ", c.GetLogLevel())
		fmt.Println("Listen addr:", c.GetListenAddr())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Long: `Change a configuration value and save the file.

Switching backends does not move data. Use 'aurofit migrate' for that.

Examples:
  aurofit config set backend sqlite
  aurofit config set listen_addr :9090`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Only the file is edited so env overrides are not persisted.
		path := config.GetConfigPath()
		c, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := c.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ %s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
