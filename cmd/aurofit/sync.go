// ABOUTME: CLI commands for Charm Cloud sync.
// ABOUTME: Supports link, unlink, status, now, repair, reset, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/storage"
	"github.com/spf13/cobra"
)

var (
	syncYes         bool
	syncRepairForce bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync data across devices with Charm Cloud",
	Long: `Sync water, favorites, and workout data across devices using Charm Cloud.

Sync needs the charm backend:

  aurofit config set backend charm

Data is encrypted with your SSH key before upload and syncs automatically
after every write.

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show account info and local record counts
  now         Pull and push changes immediately
  repair      Repair database corruption
  reset       Replace local data with the cloud copy (destructive)
  wipe        Delete cloud and local data (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		color.Green("\n✓ Device linked to Charm")
		fmt.Println("Data syncs on the next aurofit command.")
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long: `Disconnect this device from Charm. Local data is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		color.Green("✓ Device unlinked from Charm")
		fmt.Println("Your local data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := charmStore()
		if err != nil {
			return err
		}

		id, err := store.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'aurofit sync link' to connect to Charm.")
			return nil
		}

		fmt.Println("Charm ID:", id)
		fmt.Println("Server:", os.Getenv("CHARM_HOST"))
		if store.IsReadOnly() {
			color.Yellow("⚠ Read-only: another process holds the database lock")
		}
		fmt.Println()

		data, err := storage.GetAllData(cmd.Context(), svc.Store, svc.Now())
		if err != nil {
			return err
		}
		color.Green("✓ Connected to Charm")
		fmt.Printf("  Intakes:   %d\n", len(data.Intakes))
		fmt.Printf("  Favorites: %d\n", len(data.Favorites))
		fmt.Printf("  Workouts:  %d\n", len(data.Workouts))
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := charmStore()
		if err != nil {
			return err
		}
		if store.IsReadOnly() {
			return kv.ErrReadOnly
		}
		if err := store.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		color.Green("✓ Synced")
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption",
	Long: `Repair database corruption by checkpointing the WAL, removing SHM files,
checking integrity, and vacuuming.

Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Repairing aurofit database...")
		result, err := charmkv.Repair(kv.CharmDBName, syncRepairForce)

		if result.WalCheckpointed {
			color.Green("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			color.Green("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			color.Green("  ✓ Database vacuumed")
		}

		if err != nil {
			if !syncRepairForce {
				color.Yellow("\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}
		color.Green("\n✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace local data with the cloud copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := charmStore()
		if err != nil {
			return err
		}
		if !confirm("This will DELETE all local aurofit data and restore from cloud.\nContinue? [y/N]: ", "y", "Y") {
			fmt.Println("Canceled.")
			return nil
		}
		if err := store.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		color.Green("✓ Local data reset and restored from cloud")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("This will PERMANENTLY DELETE all cloud backups and local aurofit data.\nType 'wipe' to confirm: ", "wipe") {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := charmkv.Wipe(kv.CharmDBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		color.Green("✓ Data wiped successfully")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

// charmStore returns the open store when it is the Charm backend.
func charmStore() (*kv.CharmStore, error) {
	store, ok := svc.Store.(*kv.CharmStore)
	if !ok {
		return nil, fmt.Errorf("sync requires the charm backend (current: %s); run 'aurofit config set backend charm'", cfg.GetBackend())
	}
	return store, nil
}

func runCharm(arg string) error {
	charmCmd := exec.Command("charm", arg)
	charmCmd.Stdin = os.Stdin
	charmCmd.Stdout = os.Stdout
	charmCmd.Stderr = os.Stderr
	return charmCmd.Run()
}

// confirm prompts on stdout unless --yes was given.
func confirm(prompt string, accept ...string) bool {
	if syncYes {
		return true
	}
	fmt.Print(prompt)
	var answer string
	_, _ = fmt.Scanln(&answer)
	for _, a := range accept {
		if answer == a {
			return true
		}
	}
	return false
}

func init() {
	syncRepairCmd.Flags().BoolVar(&syncRepairForce, "force", false, "attempt recovery even if integrity checks fail")
	syncResetCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "skip the confirmation prompt")
	syncWipeCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "skip the confirmation prompt")

	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
