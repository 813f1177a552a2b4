package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransaction_AmountMarshalsAsNumber(t *testing.T) {
	tx := Transaction{
		ID:          "t1",
		Description: "mercado",
		Amount:      decimal.RequireFromString("-50.25"),
		Category:    "Alimentação",
		Date:        "2025-03-01",
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"amount":-50.25`) {
		t.Errorf("amount must be a JSON number, got %s", data)
	}

	var back Transaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Amount.Equal(tx.Amount) {
		t.Errorf("round trip amount = %s, want %s", back.Amount, tx.Amount)
	}
}

func TestTransaction_IsSalary(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want bool
	}{
		{
			name: "category match",
			tx:   Transaction{Category: "Salário", Description: "pagamento", Amount: decimal.NewFromInt(5000)},
			want: true,
		},
		{
			name: "description match case insensitive",
			tx:   Transaction{Category: "Outros", Description: "SALÁRIO", Amount: decimal.NewFromInt(5000)},
			want: true,
		},
		{
			name: "negative amount never salary",
			tx:   Transaction{Category: "Salário", Description: "Salário", Amount: decimal.NewFromInt(-100)},
			want: false,
		},
		{
			name: "zero amount never salary",
			tx:   Transaction{Category: "Salário", Description: "Salário", Amount: decimal.Zero},
			want: false,
		},
		{
			name: "neither field matches",
			tx:   Transaction{Category: "Alimentação", Description: "mercado", Amount: decimal.NewFromInt(50)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.IsSalary(); got != tt.want {
				t.Errorf("IsSalary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransaction_InMonth(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		month string
		want  bool
	}{
		{name: "match", date: "2025-03-15", month: "2025-03", want: true},
		{name: "different month", date: "2025-04-01", month: "2025-03", want: false},
		{name: "prefix match beats date validity", date: "2025-03-99", month: "2025-03", want: true},
		{name: "empty month never matches", date: "2025-03-15", month: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{Date: tt.date}
			if got := tx.InMonth(tt.month); got != tt.want {
				t.Errorf("InMonth(%q) = %v, want %v", tt.month, got, tt.want)
			}
		})
	}
}

func TestTransaction_MonthKey(t *testing.T) {
	tx := Transaction{Date: "2025-03-15"}
	if got := tx.MonthKey(); got != "2025-03" {
		t.Errorf("MonthKey() = %q, want %q", got, "2025-03")
	}
	short := Transaction{Date: "2025"}
	if got := short.MonthKey(); got != "" {
		t.Errorf("MonthKey() on short date = %q, want empty", got)
	}
}

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{
		ID:          "t1",
		Description: "mercado",
		Amount:      decimal.NewFromInt(-50),
		Category:    "Alimentação",
		Date:        "2025-03-15",
		CreatedAt:   time.Now(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{name: "blank description", mutate: func(tx *Transaction) { tx.Description = "   " }, wantErr: ErrEmptyDescription},
		{name: "zero amount", mutate: func(tx *Transaction) { tx.Amount = decimal.Zero }, wantErr: ErrZeroAmount},
		{name: "blank category", mutate: func(tx *Transaction) { tx.Category = "" }, wantErr: ErrEmptyCategory},
		{name: "bad date", mutate: func(tx *Transaction) { tx.Date = "15/03/2025" }, wantErr: ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
