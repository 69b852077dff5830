// ABOUTME: CLI commands for favorite exercises.
// ABOUTME: Supports list, add, remove, and toggle subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/aurofit/internal/models"
	"github.com/spf13/cobra"
)

var favExercise models.Exercise

var favCmd = &cobra.Command{
	Use:     "fav",
	Aliases: []string{"favorites", "f"},
	Short:   "Manage favorite exercises",
	Long: `Keep a list of favorite exercises, newest first.

An exercise is identified by its ID or its name. Adding an exercise that is
already a favorite (same ID or same name) does nothing.

Examples:
  aurofit fav add "Push Up" --muscle chest --type strength
  aurofit fav toggle "Push Up"
  aurofit fav remove "Push Up"
  aurofit fav list`,
}

var favListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List favorite exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		favs := svc.Favorites.List(cmd.Context())
		if len(favs) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range favs {
			detail := ""
			if e.Muscle != "" {
				detail = faint.Sprintf(" (%s)", e.Muscle)
			}
			fmt.Printf("%s %s%s %s\n",
				faint.Sprint(padRight(truncate(e.ID, 12), 12)),
				padRight(e.Name, 24),
				detail,
				faint.Sprint(e.Difficulty))
		}
		return nil
	},
}

var favAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a favorite exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item := exerciseFromArgs(args[0])
		if err := svc.Favorites.Add(cmd.Context(), item); err != nil {
			return fmt.Errorf("failed to add favorite: %w", err)
		}
		color.Green("★ %s", item.Name)
		return nil
	},
}

var favRemoveCmd = &cobra.Command{
	Use:     "remove <id-or-name>",
	Aliases: []string{"rm"},
	Short:   "Remove a favorite exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if !svc.Favorites.IsFavorite(ctx, args[0]) {
			return fmt.Errorf("not a favorite: %s", args[0])
		}
		if err := svc.Favorites.Remove(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to remove favorite: %w", err)
		}
		color.Yellow("☆ %s", args[0])
		return nil
	},
}

var favToggleCmd = &cobra.Command{
	Use:   "toggle <name>",
	Short: "Add or remove a favorite exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item := exerciseFromArgs(args[0])
		on, err := svc.Favorites.Toggle(cmd.Context(), item)
		if err != nil {
			return fmt.Errorf("failed to toggle favorite: %w", err)
		}
		if on {
			color.Green("★ %s", item.Name)
		} else {
			color.Yellow("☆ %s", item.Name)
		}
		return nil
	},
}

// exerciseFromArgs builds an exercise from the name argument and flags.
// The name doubles as the ID when --id is not given.
func exerciseFromArgs(name string) models.Exercise {
	item := favExercise
	item.Name = name
	if item.ID == "" {
		item.ID = name
	}
	return item
}

func init() {
	for _, c := range []*cobra.Command{favAddCmd, favToggleCmd} {
		c.Flags().StringVar(&favExercise.ID, "id", "", "exercise ID (defaults to the name)")
		c.Flags().StringVarP(&favExercise.Type, "type", "t", "", "exercise type")
		c.Flags().StringVarP(&favExercise.Muscle, "muscle", "m", "", "primary muscle group")
		c.Flags().StringVar(&favExercise.Equipment, "equipment", "", "equipment needed")
		c.Flags().StringVar(&favExercise.Difficulty, "difficulty", "", "beginner, intermediate or expert")
		c.Flags().StringVar(&favExercise.Instructions, "instructions", "", "how to perform it")
	}

	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favAddCmd)
	favCmd.AddCommand(favRemoveCmd)
	favCmd.AddCommand(favToggleCmd)
	rootCmd.AddCommand(favCmd)
}
