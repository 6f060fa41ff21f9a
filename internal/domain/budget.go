package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit for one category. Budgets are read-only
// with respect to account balances.
type Budget struct {
	ID          string
	OwnerID     string
	CategoryID  string
	PeriodStart time.Time
	LimitAmount decimal.Decimal
}

// NormalizePeriod truncates a date to the first day of its month in UTC.
func NormalizePeriod(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
