package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSettingsCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app().Store.Settings(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Salary:              %s\n", s.Salary.StringFixed(2))
			fmt.Fprintf(out, "Salary day:          %d\n", s.SalaryDay)
			fmt.Fprintf(out, "Credit card due day: %d\n", s.CreditCardDueDay)
			fmt.Fprintf(out, "Categories:          %d\n", len(s.Categories))
			return nil
		},
	}

	cmd.AddCommand(newSettingsSetCommand(app))

	return cmd
}

func newSettingsSetCommand(app func() *App) *cobra.Command {
	var (
		salary           string
		salaryDay        int
		creditCardDueDay int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings and resync the salary transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := app()
			settings := a.Store.Settings(ctx)

			if cmd.Flags().Changed("salary") {
				parsed, err := decimal.NewFromString(salary)
				if err != nil {
					return fmt.Errorf("parsing salary %q: %w", salary, err)
				}
				settings.Salary = parsed
			}
			if cmd.Flags().Changed("salary-day") {
				settings.SalaryDay = salaryDay
			}
			if cmd.Flags().Changed("credit-card-due-day") {
				settings.CreditCardDueDay = creditCardDueDay
			}

			if err := settings.Validate(); err != nil {
				return err
			}
			if err := a.Store.SaveSettings(ctx, settings); err != nil {
				return err
			}

			// Settings changes drive the salary transaction.
			changed, err := a.Salary.SyncWithSettings(ctx)
			if err != nil {
				return err
			}
			if changed {
				fmt.Fprintln(cmd.OutOrStdout(), "Settings saved, salary transaction updated.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Settings saved.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&salary, "salary", "", "monthly salary amount")
	cmd.Flags().IntVar(&salaryDay, "salary-day", 0, "day of month the salary lands")
	cmd.Flags().IntVar(&creditCardDueDay, "credit-card-due-day", 0, "credit card due day")

	return cmd
}
