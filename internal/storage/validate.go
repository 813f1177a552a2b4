package storage

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

// The persisted shape is never trusted: storage can be hand-edited or
// partially corrupted. Records that fail the structural check are dropped
// silently rather than failing the whole load.

// rawTransaction mirrors core.Transaction with optional fields so missing
// or mistyped fields can be detected per record.
type rawTransaction struct {
	ID           *string          `json:"id"`
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	Category     *string          `json:"category"`
	Date         *string          `json:"date"`
	IsCreditCard *bool            `json:"isCreditCard"`
	CreatedAt    *time.Time       `json:"createdAt"`
}

// ValidateTransactions filters arbitrary deserialized input down to the
// structurally complete transactions, preserving their relative order.
func ValidateTransactions(raw json.RawMessage) []core.Transaction {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []core.Transaction{}
	}

	out := make([]core.Transaction, 0, len(items))
	for _, item := range items {
		var rt rawTransaction
		if err := json.Unmarshal(item, &rt); err != nil {
			continue
		}
		if rt.ID == nil || rt.Description == nil || rt.Amount == nil ||
			rt.Category == nil || rt.Date == nil || rt.IsCreditCard == nil ||
			rt.CreatedAt == nil {
			continue
		}
		out = append(out, core.Transaction{
			ID:           *rt.ID,
			Description:  *rt.Description,
			Amount:       *rt.Amount,
			Category:     *rt.Category,
			Date:         *rt.Date,
			IsCreditCard: *rt.IsCreditCard,
			CreatedAt:    *rt.CreatedAt,
		})
	}
	return out
}

// ValidateSettings rebuilds a fully populated Settings from arbitrary
// input, falling back to the documented default for every field that is
// missing or mistyped.
func ValidateSettings(raw json.RawMessage) core.Settings {
	s := core.DefaultSettings()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s
	}

	if v, ok := fields["salary"]; ok {
		var d decimal.Decimal
		if err := json.Unmarshal(v, &d); err == nil && !d.IsNegative() {
			s.Salary = d
		}
	}
	if v, ok := fields["salaryDay"]; ok {
		var day int
		if err := json.Unmarshal(v, &day); err == nil && day >= 1 && day <= 31 {
			s.SalaryDay = day
		}
	}
	if v, ok := fields["creditCardDueDay"]; ok {
		var day int
		if err := json.Unmarshal(v, &day); err == nil && day >= 1 && day <= 31 {
			s.CreditCardDueDay = day
		}
	}
	if v, ok := fields["categories"]; ok {
		var cats []core.Category
		if err := json.Unmarshal(v, &cats); err == nil && len(cats) > 0 {
			s.Categories = cats
		}
	}
	return s
}
