package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// ReconciliationUseCase verifies the balance invariant: every account's
// cached balance must equal the signed sum of its transactions.
type ReconciliationUseCase struct {
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(accountRepo AccountRepository, transactionRepo TransactionRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// ReconciliationResult reports one account's cached balance against the
// balance recomputed from its transactions.
type ReconciliationResult struct {
	AccountID         string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	CheckedAt         time.Time
}

// ReconcileAccount recomputes one account's balance from its transaction set
// and compares it with the cached value.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, ownerID, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	calculated, err := uc.transactionRepo.SumSignedByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	difference := account.Balance.Sub(calculated)

	return &ReconciliationResult{
		AccountID:         account.ID,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        difference,
		IsReconciled:      difference.IsZero(),
		CheckedAt:         time.Now().UTC(),
	}, nil
}

// ReconcileAllAccounts checks the invariant for every account of the owner.
func (uc *ReconciliationUseCase) ReconcileAllAccounts(ctx context.Context, ownerID string) ([]*ReconciliationResult, error) {
	limit, offset := domain.ValidatePagination(1000, 0)

	accounts, err := uc.accountRepo.List(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	results := make([]*ReconciliationResult, 0, len(accounts))
	for _, account := range accounts {
		result, err := uc.ReconcileAccount(ctx, ownerID, account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile account %s: %w", account.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}
