package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"gastos/internal/core"
	"gastos/internal/storage"
)

func newAddCommand(app func() *App) *cobra.Command {
	var (
		category   string
		date       string
		creditCard bool
	)

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record a transaction (negative amount for expenses)",
		// pflag reads "-120.50" as a run of shorthand flags, so parsing is
		// manual here: dash-prefixed numbers are pulled out as positionals
		// before the remaining tokens go through the flag set.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, rest := splitNumericArgs(args)
			if err := cmd.Flags().Parse(rest); err != nil {
				return err
			}
			if help, _ := cmd.Flags().GetBool("help"); help {
				return cmd.Help()
			}

			positional := append(cmd.Flags().Args(), numbers...)
			if len(positional) != 2 {
				return fmt.Errorf("expected <description> <amount>, got %d arguments", len(positional))
			}

			amount, err := decimal.NewFromString(positional[1])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", positional[1], err)
			}
			if date == "" {
				date = core.FormatDate(time.Now())
			}

			t := core.Transaction{
				ID:           uuid.NewString(),
				Description:  positional[0],
				Amount:       amount,
				Category:     category,
				Date:         date,
				IsCreditCard: creditCard,
				CreatedAt:    time.Now(),
			}
			if err := t.Validate(); err != nil {
				return err
			}
			if err := app().Store.AddTransaction(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s (%s)\n", t.ID, t.Description, t.Amount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "Outros", "category name")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&creditCard, "credit-card", false, "mark as a credit card purchase")

	return cmd
}

// splitNumericArgs separates dash-prefixed numbers from the tokens that
// belong to the flag parser. "-120.50" is an amount, "-c" is a flag.
func splitNumericArgs(args []string) (numbers, rest []string) {
	for _, arg := range args {
		if len(arg) > 1 && arg[0] == '-' {
			if _, err := decimal.NewFromString(arg); err == nil {
				numbers = append(numbers, arg)
				continue
			}
		}
		rest = append(rest, arg)
	}
	return numbers, rest
}

func newListCommand(app func() *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, optionally filtered by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			ctx := cmd.Context()

			// Mirror on-load behavior: reconcile the salary row before
			// showing data, best effort.
			if _, err := a.Salary.SyncWithSettings(ctx); err != nil {
				a.Log.WarnContext(ctx, "salary sync failed", "error", err)
			}

			list := a.Store.Transactions(ctx)
			if month != "" {
				filtered := list[:0:0]
				for _, t := range list {
					if t.InMonth(month) {
						filtered = append(filtered, t)
					}
				}
				list = filtered
			}
			sort.SliceStable(list, func(i, j int) bool {
				return list[i].Date < list[j].Date
			})

			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions.")
				return nil
			}
			for _, t := range list {
				flag := " "
				if t.IsCreditCard {
					flag = "C"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %s  %10s  %-14s %s\n",
					t.ID, t.Date, flag, t.Amount.StringFixed(2), t.Category, t.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "filter by month as YYYY-MM")

	return cmd
}

func newUpdateCommand(app func() *App) *cobra.Command {
	var (
		description string
		amount      string
		category    string
		date        string
		creditCard  bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch storage.TransactionPatch
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("amount") {
				parsed, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("parsing amount %q: %w", amount, err)
				}
				patch.Amount = &parsed
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("date") {
				patch.Date = &date
			}
			if cmd.Flags().Changed("credit-card") {
				patch.IsCreditCard = &creditCard
			}

			if err := app().Store.UpdateTransaction(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new date as YYYY-MM-DD")
	cmd.Flags().BoolVar(&creditCard, "credit-card", false, "mark as a credit card purchase")

	return cmd
}

func newDeleteCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app().Store.DeleteTransaction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
