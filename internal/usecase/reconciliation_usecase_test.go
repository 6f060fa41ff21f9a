package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/usecase"
	"fintrack/internal/usecase/mocks"
)

func TestReconciliationUseCase_ReconcileAccount(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	txns := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(accounts, txns)

	accounts.Accounts["acc-1"] = &domain.Account{
		ID: "acc-1", OwnerID: testOwner, Balance: decimal.NewFromInt(130),
	}
	txns.Transactions["txn-1"] = &domain.Transaction{
		ID: "txn-1", AccountID: "acc-1", Amount: decimal.NewFromInt(150), Type: domain.EntryTypeIncome,
	}
	txns.Transactions["txn-2"] = &domain.Transaction{
		ID: "txn-2", AccountID: "acc-1", Amount: decimal.NewFromInt(20), Type: domain.EntryTypeExpense,
	}

	t.Run("consistent account reconciles", func(t *testing.T) {
		result, err := uc.ReconcileAccount(context.Background(), testOwner, "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.IsReconciled {
			t.Errorf("expected reconciled, difference = %s", result.Difference)
		}
		if !result.CalculatedBalance.Equal(decimal.NewFromInt(130)) {
			t.Errorf("calculated = %s, want 130", result.CalculatedBalance)
		}
	})

	t.Run("drifted balance reports the difference", func(t *testing.T) {
		accounts.Accounts["acc-1"].Balance = decimal.NewFromInt(200)

		result, err := uc.ReconcileAccount(context.Background(), testOwner, "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.IsReconciled {
			t.Error("expected drift to be reported")
		}
		if !result.Difference.Equal(decimal.NewFromInt(70)) {
			t.Errorf("difference = %s, want 70", result.Difference)
		}
	})

	t.Run("foreign account reads as not found", func(t *testing.T) {
		_, err := uc.ReconcileAccount(context.Background(), "owner-2", "acc-1")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestReconciliationUseCase_ReconcileAllAccounts(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	txns := mocks.NewMockTransactionRepository()
	uc := usecase.NewReconciliationUseCase(accounts, txns)

	accounts.Accounts["acc-1"] = &domain.Account{ID: "acc-1", OwnerID: testOwner, Balance: decimal.Zero}
	accounts.Accounts["acc-2"] = &domain.Account{ID: "acc-2", OwnerID: testOwner, Balance: decimal.NewFromInt(5)}
	accounts.Accounts["acc-3"] = &domain.Account{ID: "acc-3", OwnerID: "owner-2", Balance: decimal.Zero}

	results, err := uc.ReconcileAllAccounts(context.Background(), testOwner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results (foreign account excluded), got %d", len(results))
	}

	drifted := 0
	for _, r := range results {
		if !r.IsReconciled {
			drifted++
		}
	}
	if drifted != 1 {
		t.Errorf("expected exactly 1 drifted account, got %d", drifted)
	}
}
