// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies every aurofit key from the configured backend to another one.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/aurofit/internal/config"
	"github.com/harperreed/aurofit/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateForce  bool
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy every aurofit record from the configured backend to another backend.

BACKENDS:

  badger   Local Badger database in <data_dir>/badger
  sqlite   Local SQLite database at <data_dir>/aurofit.db
  redis    Redis server at redis_addr
  charm    Charm KV with encrypted cloud sync

The destination must be empty unless --force is given. Existing keys in the
destination are overwritten. After migrating, switch backends with:

  aurofit config set backend <backend>

USAGE:

  aurofit migrate --to sqlite --dry-run   # Preview what would be migrated
  aurofit migrate --to sqlite             # Perform the migration
  aurofit migrate --from sqlite --to badger`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := validateBackend(migrateTo); err != nil {
			return err
		}

		src := svc.Store
		from := cfg.GetBackend()
		if migrateFrom != "" && migrateFrom != from {
			if err := validateBackend(migrateFrom); err != nil {
				return err
			}
			opened, err := cfg.OpenBackend(ctx, migrateFrom)
			if err != nil {
				return fmt.Errorf("failed to open %s store: %w", migrateFrom, err)
			}
			defer func() { _ = opened.Close() }()
			src, from = opened, migrateFrom
		}
		if migrateTo == from {
			return fmt.Errorf("source and destination are both %s", from)
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			data, err := storage.GetAllData(ctx, src, svc.Now())
			if err != nil {
				return fmt.Errorf("failed to read %s store: %w", from, err)
			}
			fmt.Printf("Would copy from %s to %s:\n", from, migrateTo)
			fmt.Printf("  %d intakes, %d favorites, %d workouts\n",
				len(data.Intakes), len(data.Favorites), len(data.Workouts))
			return nil
		}

		// The configured store is already open and may hold a file lock.
		dst := svc.Store
		if migrateTo != cfg.GetBackend() {
			opened, err := cfg.OpenBackend(ctx, migrateTo)
			if err != nil {
				return fmt.Errorf("failed to open %s store: %w", migrateTo, err)
			}
			defer func() { _ = opened.Close() }()
			dst = opened
		}

		empty, err := storage.IsStoreEmpty(ctx, dst)
		if err != nil {
			return fmt.Errorf("failed to inspect %s store: %w", migrateTo, err)
		}
		if !empty && !migrateForce {
			return fmt.Errorf("%s store already has data; use --force to overwrite", migrateTo)
		}

		summary, err := storage.MigrateData(ctx, src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %d keys from %s to %s", summary.Keys, from, migrateTo)
		fmt.Printf("  %d intakes, %d favorites, %d workouts\n",
			summary.Intakes, summary.Favorites, summary.Workouts)
		return nil
	},
}

func validateBackend(name string) error {
	switch name {
	case config.BackendBadger, config.BackendSQLite, config.BackendRedis, config.BackendCharm:
		return nil
	}
	return fmt.Errorf("unknown backend: %q (use badger, sqlite, redis, or charm)", name)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (default: configured backend)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite a non-empty destination")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
