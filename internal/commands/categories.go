package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gastos/internal/core"
	"gastos/internal/storage"
)

func newCategoriesCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage spending categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range app().Store.Categories(cmd.Context()) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-14s %s\n", c.ID, c.Name, c.Color)
			}
			return nil
		},
	}

	cmd.AddCommand(
		newCategoryAddCommand(app),
		newCategoryUpdateCommand(app),
		newCategoryDeleteCommand(app),
	)

	return cmd
}

func newCategoryAddCommand(app func() *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := core.Category{ID: uuid.NewString(), Name: args[0], Color: color}
			if err := c.Validate(); err != nil {
				return err
			}
			if err := app().Store.AddCategory(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", core.FallbackColor, "hex color, e.g. #FF6B6B")

	return cmd
}

func newCategoryUpdateCommand(app func() *App) *cobra.Command {
	var (
		name  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or recolor a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch storage.CategoryPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("color") {
				if !core.IsHexColor(color) {
					return fmt.Errorf("invalid color %q", color)
				}
				patch.Color = &color
			}
			if err := app().Store.UpdateCategory(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated category %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&color, "color", "", "new hex color")

	return cmd
}

func newCategoryDeleteCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app().Store.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
			return nil
		},
	}
}
