package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a transaction or category as income or expense.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// Valid reports whether the entry type is one of the known values.
func (t EntryType) Valid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// Transaction represents a single income or expense posted against an account.
// CategoryID is empty when the transaction is uncategorized.
type Transaction struct {
	ID          string
	AccountID   string
	CategoryID  string
	Amount      decimal.Decimal
	Type        EntryType
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

// SignedAmount returns the amount with its sign determined by the type:
// positive for income, negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == EntryTypeIncome {
		return t.Amount
	}

	return t.Amount.Neg()
}
