package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The persisted envelopes and exports carry amounts as JSON numbers,
	// matching the historical data format. Readers of either form work;
	// writers must emit numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	// SalaryCategoryName is the category that tags recurring salary rows.
	SalaryCategoryName = "Salário"

	// SalaryCategoryColor is the fixed color used when the salary category
	// has to be created on the fly.
	SalaryCategoryColor = "#4ade80"
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrZeroAmount       = errors.New("amount cannot be zero")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
)

// Transaction is a single income or expense record. The sign of Amount
// carries the type: positive is income, negative is expense. There is no
// separate type field; every aggregate branches on the sign.
type Transaction struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Date         string          `json:"date"` // local calendar date, YYYY-MM-DD
	IsCreditCard bool            `json:"isCreditCard"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (t Transaction) IsIncome() bool  { return t.Amount.IsPositive() }
func (t Transaction) IsExpense() bool { return t.Amount.IsNegative() }

// MonthKey returns the YYYY-MM prefix of the transaction date, or "" when
// the date is too short to carry one.
func (t Transaction) MonthKey() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// InMonth reports whether the transaction belongs to the given month key.
// Membership is a plain string-prefix match on the date, so a malformed
// date that happens to share the prefix still counts.
func (t Transaction) InMonth(month string) bool {
	return month != "" && strings.HasPrefix(t.Date, month)
}

// IsSalary reports whether this is a salary-tagged transaction. Either the
// category or the description can carry the signal; historical data uses
// both spellings, so this stays an OR match over the two fields.
func (t Transaction) IsSalary() bool {
	if !t.Amount.IsPositive() {
		return false
	}
	return t.Category == SalaryCategoryName ||
		strings.ToLower(t.Description) == "salário"
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.Amount.IsZero() {
		return ErrZeroAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if _, err := ParseDate(t.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
