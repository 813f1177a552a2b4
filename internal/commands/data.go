package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSyncCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the salary transaction with the settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := app()

			changed, err := a.Salary.SyncWithSettings(ctx)
			if err != nil {
				return err
			}
			if changed {
				fmt.Fprintln(cmd.OutOrStdout(), "Salary transaction synchronized.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Already in sync.")
			}

			if next := a.Salary.NextInfo(ctx); next != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Next salary: %s (in %d days)\n",
					next.Date.Format("2006-01-02"), next.DaysUntil)
			}
			return nil
		},
	}
}

func newExportCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export all data as a JSON snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app().Store.ExportData(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore data from a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}
			if err := app().Store.ImportData(cmd.Context(), data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
			return nil
		},
	}
}

func newClearCommand(app func() *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all transactions and reset settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			if err := app().Store.ClearAllData(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	return cmd
}

func newStatsCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show storage statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := app().Store.Stats(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transactions: %d\n", stats.Transactions)
			fmt.Fprintf(out, "Categories:   %d\n", stats.Categories)
			if stats.LastUpdate != nil {
				fmt.Fprintf(out, "Last update:  %s\n", stats.LastUpdate.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newMigrateCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and repair legacy salary dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := app()
			out := cmd.OutOrStdout()

			// Opening the sqlite backend already applied any pending
			// schema migrations.
			if a.Config.DataBackend == "sqlite" {
				fmt.Fprintln(out, "Migrations applied.")
			}

			fixed, err := a.Salary.NormalizeLegacyDates(ctx)
			if err != nil {
				return err
			}
			if fixed {
				fmt.Fprintln(out, "Normalized legacy salary dates.")
			} else {
				fmt.Fprintln(out, "Salary dates already consistent.")
			}
			return nil
		},
	}
}
