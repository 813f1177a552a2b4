package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if !s.Salary.IsZero() {
		t.Errorf("default salary = %s, want 0", s.Salary)
	}
	if s.SalaryDay != 1 {
		t.Errorf("default salaryDay = %d, want 1", s.SalaryDay)
	}
	if s.CreditCardDueDay != 10 {
		t.Errorf("default creditCardDueDay = %d, want 10", s.CreditCardDueDay)
	}

	want := map[string]string{
		"Alimentação": "#FF6B6B",
		"Transporte":  "#4ECDC4",
		"Lazer":       "#45B7D1",
		"Saúde":       "#96CEB4",
		"Outros":      "#FFEAA7",
	}
	if len(s.Categories) != len(want) {
		t.Fatalf("default categories = %d, want %d", len(s.Categories), len(want))
	}
	for _, c := range s.Categories {
		if want[c.Name] != c.Color {
			t.Errorf("category %s color = %s, want %s", c.Name, c.Color, want[c.Name])
		}
	}
}

func TestSettings_CategoryColor(t *testing.T) {
	s := Settings{Categories: []Category{
		{ID: "1", Name: "Lazer", Color: "#45B7D1"},
		{ID: "2", Name: "Lazer", Color: "#FFFFFF"}, // duplicate name, first wins
	}}

	if got := s.CategoryColor("Lazer"); got != "#45B7D1" {
		t.Errorf("CategoryColor(Lazer) = %s, want #45B7D1", got)
	}
	if got := s.CategoryColor("Inexistente"); got != FallbackColor {
		t.Errorf("CategoryColor(Inexistente) = %s, want %s", got, FallbackColor)
	}
}

func TestSettings_HasSalary(t *testing.T) {
	s := DefaultSettings()
	if s.HasSalary() {
		t.Error("HasSalary() on defaults = true, want false")
	}
	s.Salary = decimal.NewFromInt(5000)
	if !s.HasSalary() {
		t.Error("HasSalary() with salary = false, want true")
	}
}

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#FF6B6B", true},
		{"#4ade80", true},
		{"#abc", true},
		{"FF6B6B", false},
		{"#GGGGGG", false},
		{"#FF6B6", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsHexColor(tt.in); got != tt.want {
			t.Errorf("IsHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSettings_Validate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() on defaults = %v, want nil", err)
	}

	s.SalaryDay = 32
	if err := s.Validate(); err != ErrInvalidDay {
		t.Errorf("Validate() with salaryDay 32 = %v, want %v", err, ErrInvalidDay)
	}

	s = DefaultSettings()
	s.Salary = decimal.NewFromInt(-1)
	if err := s.Validate(); err != ErrNegativeSalary {
		t.Errorf("Validate() with negative salary = %v, want %v", err, ErrNegativeSalary)
	}

	s = DefaultSettings()
	s.Categories = append(s.Categories, Category{ID: "6", Name: "Pets", Color: "azul"})
	if err := s.Validate(); err != ErrInvalidColor {
		t.Errorf("Validate() with bad color = %v, want %v", err, ErrInvalidColor)
	}
}
