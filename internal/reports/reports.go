// Package reports computes the monthly and per-category aggregates shown
// on the dashboard. Every function is pure: transaction list and settings
// in, numbers out, no hidden state.
package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

var hundred = decimal.NewFromInt(100)

// MonthlySummary is the per-month rollup.
type MonthlySummary struct {
	Month            string          `json:"month"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
}

// CategorySummary is one row of the expense breakdown.
type CategorySummary struct {
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	Color            string          `json:"color"`
	Percentage       decimal.Decimal `json:"percentage"`
	TransactionCount int             `json:"transactionCount"`
}

// DaySummary is the rollup for a single calendar day.
type DaySummary struct {
	Date             string          `json:"date"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TransactionCount int             `json:"transactionCount"`
}

// MonthTransactions filters the list down to the given month key.
func MonthTransactions(list []core.Transaction, month string) []core.Transaction {
	out := make([]core.Transaction, 0, len(list))
	for _, t := range list {
		if t.InMonth(month) {
			out = append(out, t)
		}
	}
	return out
}

// Income sums the positive amounts.
func Income(list []core.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range list {
		if t.IsIncome() {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// Expenses sums the absolute values of the negative amounts.
func Expenses(list []core.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range list {
		if t.IsExpense() {
			sum = sum.Add(t.Amount.Abs())
		}
	}
	return sum
}

// Balance is income minus expenses.
func Balance(list []core.Transaction) decimal.Decimal {
	return Income(list).Sub(Expenses(list))
}

// ExpensesByCategory groups the month's expenses by category name, sorted
// descending by amount. Colors resolve through the settings; percentage is
// of the month's total expenses, zero when there are none.
func ExpensesByCategory(list []core.Transaction, month string, settings core.Settings) []CategorySummary {
	return categoryBreakdown(expensesOf(MonthTransactions(list, month)), settings)
}

// CreditCardExpenses sums the month's credit-card expenses.
func CreditCardExpenses(list []core.Transaction, month string) decimal.Decimal {
	return Expenses(creditCardExpensesOf(MonthTransactions(list, month)))
}

// CreditCardExpensesByCategory is ExpensesByCategory restricted to
// credit-card transactions; percentages are of the credit-card total.
func CreditCardExpensesByCategory(list []core.Transaction, month string, settings core.Settings) []CategorySummary {
	return categoryBreakdown(creditCardExpensesOf(MonthTransactions(list, month)), settings)
}

// SavingsRate is (income - expenses) / income * 100, zero when there is no
// income.
func SavingsRate(list []core.Transaction, month string) decimal.Decimal {
	monthTx := MonthTransactions(list, month)
	income := Income(monthTx)
	if income.IsZero() {
		return decimal.Zero
	}
	return income.Sub(Expenses(monthTx)).Div(income).Mul(hundred)
}

// AverageDailyExpense divides the month's expenses by its calendar day
// count. An unparseable month key yields zero.
func AverageDailyExpense(list []core.Transaction, month string) decimal.Decimal {
	days := core.DaysInMonth(month)
	if days == 0 {
		return decimal.Zero
	}
	return Expenses(MonthTransactions(list, month)).Div(decimal.NewFromInt(int64(days)))
}

// LargestExpense returns the month's expense with the greatest absolute
// value, or nil when the month has none. On ties the first one in list
// order wins.
func LargestExpense(list []core.Transaction, month string) *core.Transaction {
	var largest *core.Transaction
	for _, t := range MonthTransactions(list, month) {
		if !t.IsExpense() {
			continue
		}
		if largest == nil || t.Amount.Abs().GreaterThan(largest.Amount.Abs()) {
			found := t
			largest = &found
		}
	}
	return largest
}

// HighestExpenseDay returns the date with the greatest summed expenses, or
// nil when the month has none. Days are grouped by exact date string; on
// equal totals the day first encountered in list order wins.
func HighestExpenseDay(list []core.Transaction, month string) *DaySummary {
	var order []string
	days := make(map[string]*DaySummary)
	for _, t := range MonthTransactions(list, month) {
		if !t.IsExpense() {
			continue
		}
		day, ok := days[t.Date]
		if !ok {
			day = &DaySummary{Date: t.Date, TotalExpenses: decimal.Zero}
			days[t.Date] = day
			order = append(order, t.Date)
		}
		day.TotalExpenses = day.TotalExpenses.Add(t.Amount.Abs())
		day.TransactionCount++
	}

	var highest *DaySummary
	for _, date := range order {
		day := days[date]
		if highest == nil || day.TotalExpenses.GreaterThan(highest.TotalExpenses) {
			highest = day
		}
	}
	return highest
}

// Summary builds the month's rollup.
func Summary(list []core.Transaction, month string) MonthlySummary {
	monthTx := MonthTransactions(list, month)
	income := Income(monthTx)
	expenses := Expenses(monthTx)
	return MonthlySummary{
		Month:            month,
		Income:           income,
		Expenses:         expenses,
		Balance:          income.Sub(expenses),
		TransactionCount: len(monthTx),
	}
}

// LastMonths returns summaries for the n calendar months ending at now's
// month, oldest first.
func LastMonths(list []core.Transaction, now time.Time, n int) []MonthlySummary {
	keys := core.LastNMonthKeys(now, n)
	out := make([]MonthlySummary, len(keys))
	for i, key := range keys {
		out[i] = Summary(list, key)
	}
	return out
}

func expensesOf(list []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(list))
	for _, t := range list {
		if t.IsExpense() {
			out = append(out, t)
		}
	}
	return out
}

func creditCardExpensesOf(list []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(list))
	for _, t := range list {
		if t.IsCreditCard && t.IsExpense() {
			out = append(out, t)
		}
	}
	return out
}

// categoryBreakdown groups pre-filtered expense transactions by category
// name. Grouping keeps first-encountered order so the final descending
// sort is deterministic under stable sorting.
func categoryBreakdown(expenses []core.Transaction, settings core.Settings) []CategorySummary {
	total := Expenses(expenses)

	var order []string
	buckets := make(map[string]*CategorySummary)
	for _, t := range expenses {
		bucket, ok := buckets[t.Category]
		if !ok {
			bucket = &CategorySummary{
				Category: t.Category,
				Amount:   decimal.Zero,
				Color:    settings.CategoryColor(t.Category),
			}
			buckets[t.Category] = bucket
			order = append(order, t.Category)
		}
		bucket.Amount = bucket.Amount.Add(t.Amount.Abs())
		bucket.TransactionCount++
	}

	out := make([]CategorySummary, 0, len(order))
	for _, name := range order {
		bucket := buckets[name]
		if total.IsPositive() {
			bucket.Percentage = bucket.Amount.Div(total).Mul(hundred)
		} else {
			bucket.Percentage = decimal.Zero
		}
		out = append(out, *bucket)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}
