package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want decimal.Decimal
	}{
		{
			name: "income is positive",
			tx:   Transaction{Amount: decimal.NewFromInt(100), Type: EntryTypeIncome},
			want: decimal.NewFromInt(100),
		},
		{
			name: "expense is negative",
			tx:   Transaction{Amount: decimal.NewFromInt(100), Type: EntryTypeExpense},
			want: decimal.NewFromInt(-100),
		},
		{
			name: "fractional expense",
			tx:   Transaction{Amount: decimal.RequireFromString("0.01"), Type: EntryTypeExpense},
			want: decimal.RequireFromString("-0.01"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tx.SignedAmount()
			if !got.Equal(tt.want) {
				t.Errorf("SignedAmount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAccount_ApplyDelta(t *testing.T) {
	a := &Account{Balance: decimal.NewFromInt(150)}

	got := a.ApplyDelta(decimal.NewFromInt(-150))
	if !got.Equal(decimal.Zero) {
		t.Errorf("ApplyDelta(-150) = %s, want 0", got)
	}

	// ApplyDelta must not mutate the account itself
	if !a.Balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("balance mutated to %s", a.Balance)
	}
}

func TestEntryType_Valid(t *testing.T) {
	if !EntryTypeIncome.Valid() || !EntryTypeExpense.Valid() {
		t.Error("expected income and expense to be valid")
	}
	if EntryType("transfer").Valid() {
		t.Error("expected unknown type to be invalid")
	}
}
