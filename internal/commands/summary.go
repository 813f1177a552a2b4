package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gastos/internal/core"
	"gastos/internal/reports"
)

func newSummaryCommand(app func() *App) *cobra.Command {
	var (
		month  string
		months int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the monthly summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			ctx := cmd.Context()

			if _, err := a.Salary.SyncWithSettings(ctx); err != nil {
				a.Log.WarnContext(ctx, "salary sync failed", "error", err)
			}

			list := a.Store.Transactions(ctx)
			settings := a.Store.Settings(ctx)
			out := cmd.OutOrStdout()

			if months > 0 {
				for _, s := range reports.LastMonths(list, time.Now(), months) {
					fmt.Fprintf(out, "%s  income %10s  expenses %10s  balance %10s\n",
						s.Month, s.Income.StringFixed(2), s.Expenses.StringFixed(2), s.Balance.StringFixed(2))
				}
				return nil
			}

			if month == "" {
				month = core.CurrentMonthKey(time.Now())
			}
			s := reports.Summary(list, month)

			fmt.Fprintf(out, "Month:        %s\n", s.Month)
			fmt.Fprintf(out, "Income:       %s\n", s.Income.StringFixed(2))
			fmt.Fprintf(out, "Expenses:     %s\n", s.Expenses.StringFixed(2))
			fmt.Fprintf(out, "Balance:      %s\n", s.Balance.StringFixed(2))
			fmt.Fprintf(out, "Credit card:  %s\n", reports.CreditCardExpenses(list, month).StringFixed(2))
			fmt.Fprintf(out, "Savings rate: %s%%\n", reports.SavingsRate(list, month).StringFixed(1))
			fmt.Fprintf(out, "Daily avg:    %s\n", reports.AverageDailyExpense(list, month).StringFixed(2))

			if largest := reports.LargestExpense(list, month); largest != nil {
				fmt.Fprintf(out, "Largest:      %s (%s)\n", largest.Description, largest.Amount.Abs().StringFixed(2))
			}
			if day := reports.HighestExpenseDay(list, month); day != nil {
				fmt.Fprintf(out, "Top day:      %s (%s)\n", day.Date, day.TotalExpenses.StringFixed(2))
			}

			breakdown := reports.ExpensesByCategory(list, month, settings)
			if len(breakdown) > 0 {
				fmt.Fprintln(out, "\nExpenses by category:")
				for _, c := range breakdown {
					fmt.Fprintf(out, "  %-14s %10s  %5s%%\n", c.Category, c.Amount.StringFixed(2), c.Percentage.StringFixed(1))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default current)")
	cmd.Flags().IntVar(&months, "months", 0, "show a trend over the last N months instead")

	return cmd
}
