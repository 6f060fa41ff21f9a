package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/infrastructure/metrics"
)

// DefaultTrendMonths is the length of the trailing monthly series when the
// caller does not ask for a specific window.
const DefaultTrendMonths = 6

// Summary is the aggregate view over an owner's transactions in a range.
// Everything here is computed from transaction rows; cached account balances
// are never consulted, so the numbers stay correct even if a balance were
// transiently inconsistent.
type Summary struct {
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpense      decimal.Decimal `json:"total_expense"`
	Net               decimal.Decimal `json:"net"`
	IncomeByCategory  []CategorySum   `json:"income_by_category"`
	ExpenseByCategory []CategorySum   `json:"expense_by_category"`
	Monthly           []MonthlyTotal  `json:"monthly"`
}

// AnalyticsUseCase handles the read-only reporting rollups.
type AnalyticsUseCase struct {
	analyticsRepo AnalyticsRepository
	cache         Cache
	cacheTTL      time.Duration
	metrics       *metrics.Metrics
}

// NewAnalyticsUseCase creates a new AnalyticsUseCase.
func NewAnalyticsUseCase(analyticsRepo AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// WithCache enables caching of summaries. Entries are invalidated wholesale
// per owner via a generation counter that every mutation increments.
func (uc *AnalyticsUseCase) WithCache(cache Cache, ttl time.Duration) *AnalyticsUseCase {
	uc.cache = cache
	uc.cacheTTL = ttl
	return uc
}

// WithMetrics enables cache hit/miss counters.
func (uc *AnalyticsUseCase) WithMetrics(m *metrics.Metrics) *AnalyticsUseCase {
	uc.metrics = m
	return uc
}

// SummaryInput represents input for computing a summary.
type SummaryInput struct {
	OwnerID string
	From    time.Time
	To      time.Time
	Months  int
}

// GetSummary computes total income/expense, net, per-category breakdowns and
// a trailing monthly series for the owner. Ranges with no transactions
// produce zero totals and empty breakdowns, not errors.
func (uc *AnalyticsUseCase) GetSummary(ctx context.Context, input SummaryInput) (*Summary, error) {
	if input.Months <= 0 {
		input.Months = DefaultTrendMonths
	}

	now := time.Now().UTC()

	if input.To.IsZero() {
		input.To = now
	}

	if input.From.IsZero() {
		input.From = domain.NormalizePeriod(now)
	}

	cacheKey, cached := uc.lookupCache(ctx, input)
	if cached != nil {
		return cached, nil
	}

	income, expense, err := uc.analyticsRepo.TotalsByType(ctx, input.OwnerID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	incomeByCategory, err := uc.analyticsRepo.SumByCategory(ctx, input.OwnerID, domain.EntryTypeIncome, input.From, input.To)
	if err != nil {
		return nil, err
	}

	expenseByCategory, err := uc.analyticsRepo.SumByCategory(ctx, input.OwnerID, domain.EntryTypeExpense, input.From, input.To)
	if err != nil {
		return nil, err
	}

	monthly, err := uc.monthlySeries(ctx, input.OwnerID, now, input.Months)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		From:              input.From,
		To:                input.To,
		TotalIncome:       income,
		TotalExpense:      expense,
		Net:               income.Sub(expense),
		IncomeByCategory:  incomeByCategory,
		ExpenseByCategory: expenseByCategory,
		Monthly:           monthly,
	}

	uc.storeCache(ctx, cacheKey, summary)

	return summary, nil
}

// monthlySeries builds a trailing series of exactly `months` entries ending
// with the current month. Months without transactions are zero-filled.
func (uc *AnalyticsUseCase) monthlySeries(ctx context.Context, ownerID string, now time.Time, months int) ([]MonthlyTotal, error) {
	currentMonth := domain.NormalizePeriod(now)
	from := currentMonth.AddDate(0, -(months - 1), 0)
	to := currentMonth.AddDate(0, 1, 0)

	rows, err := uc.analyticsRepo.MonthlyTotals(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[time.Time]MonthlyTotal, len(rows))
	for _, row := range rows {
		byMonth[domain.NormalizePeriod(row.Month)] = row
	}

	series := make([]MonthlyTotal, 0, months)
	for month := from; month.Before(to); month = month.AddDate(0, 1, 0) {
		if row, ok := byMonth[month]; ok {
			series = append(series, MonthlyTotal{Month: month, Income: row.Income, Expense: row.Expense})
			continue
		}
		series = append(series, MonthlyTotal{Month: month, Income: decimal.Zero, Expense: decimal.Zero})
	}

	return series, nil
}

func (uc *AnalyticsUseCase) lookupCache(ctx context.Context, input SummaryInput) (string, *Summary) {
	if uc.cache == nil {
		return "", nil
	}

	gen, err := uc.cache.Get(ctx, analyticsGenKey(input.OwnerID))
	if err != nil {
		gen = "0"
	}

	key := fmt.Sprintf("analytics:summary:%s:%s:%d:%d:%d",
		input.OwnerID, gen, input.From.Unix(), input.To.Unix(), input.Months)

	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.countCache(false)
		return key, nil
	}

	var summary Summary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		uc.countCache(false)
		return key, nil
	}

	uc.countCache(true)

	return key, &summary
}

func (uc *AnalyticsUseCase) countCache(hit bool) {
	if uc.metrics == nil {
		return
	}

	if hit {
		uc.metrics.AnalyticsCacheHits.Inc()
		return
	}
	uc.metrics.AnalyticsCacheMisses.Inc()
}

func (uc *AnalyticsUseCase) storeCache(ctx context.Context, key string, summary *Summary) {
	if uc.cache == nil || key == "" {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}

	_ = uc.cache.Set(ctx, key, string(raw), uc.cacheTTL)
}

// analyticsGenKey is the per-owner cache generation counter. Transaction
// mutations bump it, which orphans every summary cached under the old
// generation.
func analyticsGenKey(ownerID string) string {
	return "analytics:gen:" + ownerID
}
