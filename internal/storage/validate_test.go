package storage

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateTransactions_FiltersMalformed(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"t1","description":"mercado","amount":-50,"category":"Alimentação","date":"2025-03-01","isCreditCard":false,"createdAt":"2025-03-01T10:00:00Z"},
		{"id":"broken","description":"sem amount","category":"Outros","date":"2025-03-02","isCreditCard":false,"createdAt":"2025-03-02T10:00:00Z"},
		{"id":42,"description":"id errado","amount":-10,"category":"Outros","date":"2025-03-03","isCreditCard":false,"createdAt":"2025-03-03T10:00:00Z"},
		"not even an object",
		{"id":"t2","description":"uber","amount":-25.5,"category":"Transporte","date":"2025-03-04","isCreditCard":true,"createdAt":"2025-03-04T10:00:00Z"}
	]`)

	got := ValidateTransactions(raw)

	if len(got) != 2 {
		t.Fatalf("kept %d records, want 2", len(got))
	}
	// Relative order of the well-formed subset is preserved.
	if got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("order = [%s %s], want [t1 t2]", got[0].ID, got[1].ID)
	}
	if !got[1].Amount.Equal(decimal.NewFromFloat(-25.5)) {
		t.Errorf("amount = %s, want -25.5", got[1].Amount)
	}
	if !got[1].IsCreditCard {
		t.Error("isCreditCard lost in validation")
	}
}

func TestValidateTransactions_NonArray(t *testing.T) {
	for _, raw := range []string{`{"not":"an array"}`, `null`, `garbage`} {
		got := ValidateTransactions(json.RawMessage(raw))
		if len(got) != 0 {
			t.Errorf("ValidateTransactions(%s) kept %d records, want 0", raw, len(got))
		}
	}
}

func TestValidateSettings_FieldwiseDefaults(t *testing.T) {
	raw := json.RawMessage(`{"salary":5000,"salaryDay":"not a number","creditCardDueDay":15}`)
	got := ValidateSettings(raw)

	if !got.Salary.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("salary = %s, want 5000", got.Salary)
	}
	if got.SalaryDay != 1 {
		t.Errorf("salaryDay = %d, want default 1", got.SalaryDay)
	}
	if got.CreditCardDueDay != 15 {
		t.Errorf("creditCardDueDay = %d, want 15", got.CreditCardDueDay)
	}
	if len(got.Categories) != 5 {
		t.Errorf("categories = %d, want the 5 defaults", len(got.Categories))
	}
}

func TestValidateSettings_Garbage(t *testing.T) {
	for _, raw := range []string{`[]`, `null`, `"text"`, `not json`} {
		got := ValidateSettings(json.RawMessage(raw))
		if got.SalaryDay != 1 || got.CreditCardDueDay != 10 || len(got.Categories) != 5 {
			t.Errorf("ValidateSettings(%s) did not return full defaults: %+v", raw, got)
		}
	}
}

func TestValidateSettings_EmptyCategoriesGetDefaults(t *testing.T) {
	got := ValidateSettings(json.RawMessage(`{"categories":[]}`))
	if len(got.Categories) != 5 {
		t.Errorf("categories = %d, want the 5 defaults", len(got.Categories))
	}
}

func TestValidateSettings_CustomCategoriesKept(t *testing.T) {
	raw := json.RawMessage(`{"categories":[{"id":"9","name":"Pets","color":"#123456"}]}`)
	got := ValidateSettings(raw)
	if len(got.Categories) != 1 || got.Categories[0].Name != "Pets" {
		t.Errorf("categories = %+v, want the single custom one", got.Categories)
	}
}
