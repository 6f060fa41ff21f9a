package usecase_test

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/domain"
	"fintrack/internal/usecase"
	"fintrack/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateAccountInput
		wantErr error
	}{
		{
			name:  "creates an account with a zero balance",
			input: usecase.CreateAccountInput{OwnerID: testOwner, Name: "Checking", Currency: "USD"},
		},
		{
			name:  "currency is normalized to upper case",
			input: usecase.CreateAccountInput{OwnerID: testOwner, Name: "Checking", Currency: "eur"},
		},
		{
			name:    "empty name rejected",
			input:   usecase.CreateAccountInput{OwnerID: testOwner, Name: "   ", Currency: "USD"},
			wantErr: domain.ErrInvalidAccountName,
		},
		{
			name:    "unknown currency rejected",
			input:   usecase.CreateAccountInput{OwnerID: testOwner, Name: "Checking", Currency: "XXX"},
			wantErr: domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAccountRepository()
			uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				if len(repo.Accounts) != 0 {
					t.Error("no account should be persisted on validation failure")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !account.Balance.IsZero() {
				t.Errorf("new account balance = %s, want 0", account.Balance)
			}
			if account.Currency != "USD" && account.Currency != "EUR" {
				t.Errorf("currency not normalized: %s", account.Currency)
			}
			if _, ok := repo.Accounts[account.ID]; !ok {
				t.Error("account not persisted")
			}
		})
	}
}

func TestAccountUseCase_RenameAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

	repo.Accounts["acc-1"] = &domain.Account{ID: "acc-1", OwnerID: testOwner, Name: "Old"}

	renamed, err := uc.RenameAccount(context.Background(), testOwner, "acc-1", "  New  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renamed.Name != "New" {
		t.Errorf("name = %q, want %q", renamed.Name, "New")
	}

	if _, err := uc.RenameAccount(context.Background(), "owner-2", "acc-1", "Theirs"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("foreign owner should read as not found, got %v", err)
	}
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

	repo.Accounts["acc-1"] = &domain.Account{ID: "acc-1", OwnerID: testOwner}

	if err := uc.DeleteAccount(context.Background(), testOwner, "acc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.Accounts["acc-1"]; ok {
		t.Error("account still present after delete")
	}

	if err := uc.DeleteAccount(context.Background(), testOwner, "acc-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

	repo.Accounts["acc-1"] = &domain.Account{ID: "acc-1", OwnerID: testOwner}
	repo.Accounts["acc-2"] = &domain.Account{ID: "acc-2", OwnerID: "owner-2"}

	accounts, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{OwnerID: testOwner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 1 || accounts[0].ID != "acc-1" {
		t.Errorf("expected only the owner's account, got %+v", accounts)
	}
}
