package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// FallbackColor is used when a transaction references a category name that
// no longer exists in the settings. The reference is a soft string key, so
// this drift is expected rather than an error.
const FallbackColor = "#000000"

var (
	ErrEmptyCategoryName = errors.New("empty category name")
	ErrInvalidColor      = errors.New("invalid color")
	ErrNegativeSalary    = errors.New("salary cannot be negative")
	ErrInvalidDay        = errors.New("day must be between 1 and 31")
)

// Category is a display label plus color. Transactions reference it by
// name, not by ID; renaming does not cascade.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	if !IsHexColor(c.Color) {
		return ErrInvalidColor
	}
	return nil
}

// Settings is the singleton configuration record, one per installation.
// It is always read and written wholesale.
type Settings struct {
	Salary           decimal.Decimal `json:"salary"`
	SalaryDay        int             `json:"salaryDay"`
	CreditCardDueDay int             `json:"creditCardDueDay"`
	Categories       []Category      `json:"categories"`
}

const (
	DefaultSalaryDay        = 1
	DefaultCreditCardDueDay = 10
)

// DefaultSettings returns the factory configuration: no salary and the five
// built-in categories.
func DefaultSettings() Settings {
	return Settings{
		Salary:           decimal.Zero,
		SalaryDay:        DefaultSalaryDay,
		CreditCardDueDay: DefaultCreditCardDueDay,
		Categories: []Category{
			{ID: "1", Name: "Alimentação", Color: "#FF6B6B"},
			{ID: "2", Name: "Transporte", Color: "#4ECDC4"},
			{ID: "3", Name: "Lazer", Color: "#45B7D1"},
			{ID: "4", Name: "Saúde", Color: "#96CEB4"},
			{ID: "5", Name: "Outros", Color: "#FFEAA7"},
		},
	}
}

// DefaultCategoryCount is the size of the factory category set.
const DefaultCategoryCount = 5

// HasSalary reports whether a recurring salary is configured. Zero means
// "not configured".
func (s Settings) HasSalary() bool {
	return s.Salary.IsPositive()
}

// CategoryColor resolves a category name to its configured color. With
// duplicate names the first match wins; unknown names get FallbackColor.
func (s Settings) CategoryColor(name string) string {
	for _, c := range s.Categories {
		if c.Name == name {
			return c.Color
		}
	}
	return FallbackColor
}

func (s Settings) Validate() error {
	if s.Salary.IsNegative() {
		return ErrNegativeSalary
	}
	if s.SalaryDay < 1 || s.SalaryDay > 31 {
		return ErrInvalidDay
	}
	if s.CreditCardDueDay < 1 || s.CreditCardDueDay > 31 {
		return ErrInvalidDay
	}
	for _, c := range s.Categories {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsHexColor reports whether v is a #RGB or #RRGGBB hex color.
func IsHexColor(v string) bool {
	if len(v) != 4 && len(v) != 7 {
		return false
	}
	if v[0] != '#' {
		return false
	}
	for _, r := range v[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
