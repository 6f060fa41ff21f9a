package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a user's money account with a cached running balance.
// The balance is derived state: at rest it always equals the signed sum of
// the account's transactions. The transaction set is the source of truth.
type Account struct {
	ID        string
	OwnerID   string
	Name      string
	Currency  string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyDelta returns the balance after applying a signed adjustment.
func (a *Account) ApplyDelta(delta decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(delta)
}
