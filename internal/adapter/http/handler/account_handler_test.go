package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fintrack/internal/adapter/http/dto"
	"fintrack/internal/adapter/http/middleware"
	"fintrack/internal/domain"
	"fintrack/internal/usecase"
)

type accountServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn    func(ctx context.Context, ownerID, id string) (*domain.Account, error)
	renameFn func(ctx context.Context, ownerID, id, name string) (*domain.Account, error)
	deleteFn func(ctx context.Context, ownerID, id string) error
	listFn   func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	return s.getFn(ctx, ownerID, id)
}

func (s *accountServiceStub) RenameAccount(ctx context.Context, ownerID, id, name string) (*domain.Account, error) {
	return s.renameFn(ctx, ownerID, id, name)
}

func (s *accountServiceStub) DeleteAccount(ctx context.Context, ownerID, id string) error {
	return s.deleteFn(ctx, ownerID, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

// withOwner attaches an authenticated owner to the request, the way the auth
// middleware would.
func withOwner(req *http.Request, ownerID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.OwnerContextKey, ownerID)
	return req.WithContext(ctx)
}

// withURLParam attaches a chi route parameter to the request.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAccountHandler_Create(t *testing.T) {
	stub := &accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			if input.OwnerID != "owner-1" {
				t.Fatalf("expected owner from context, got %q", input.OwnerID)
			}
			return &domain.Account{
				ID:       "acc-1",
				OwnerID:  input.OwnerID,
				Name:     input.Name,
				Currency: input.Currency,
				Balance:  decimal.Zero,
			}, nil
		},
	}
	h := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.CreateAccountRequest{Name: "Checking", Currency: "USD"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	req = withOwner(req, "owner-1")
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" || resp.Name != "Checking" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_Create_InvalidBody(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader([]byte("{not json")))
	req = withOwner(req, "owner-1")
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestAccountHandler_Create_NoOwner(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{})

	body, _ := json.Marshal(dto.CreateAccountRequest{Name: "Checking", Currency: "USD"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without owner, got %d", rr.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	stub := &accountServiceStub{
		getFn: func(ctx context.Context, ownerID, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-404", nil)
	req = withOwner(req, "owner-1")
	req = withURLParam(req, "id", "acc-404")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAccountHandler_Rename(t *testing.T) {
	stub := &accountServiceStub{
		renameFn: func(ctx context.Context, ownerID, id, name string) (*domain.Account, error) {
			if ownerID != "owner-1" || id != "acc-1" {
				t.Fatalf("unexpected args: owner=%q id=%q", ownerID, id)
			}
			return &domain.Account{ID: id, OwnerID: ownerID, Name: name, Currency: "USD"}, nil
		},
	}
	h := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.RenameAccountRequest{Name: "Emergency Fund"})
	req := httptest.NewRequest(http.MethodPatch, "/accounts/acc-1", bytes.NewReader(body))
	req = withOwner(req, "owner-1")
	req = withURLParam(req, "id", "acc-1")
	rr := httptest.NewRecorder()

	h.Rename(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "Emergency Fund" {
		t.Fatalf("expected renamed account, got %+v", resp)
	}
}

func TestAccountHandler_Delete(t *testing.T) {
	deleted := false
	stub := &accountServiceStub{
		deleteFn: func(ctx context.Context, ownerID, id string) error {
			deleted = true
			return nil
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/accounts/acc-1", nil)
	req = withOwner(req, "owner-1")
	req = withURLParam(req, "id", "acc-1")
	rr := httptest.NewRecorder()

	h.Delete(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if !deleted {
		t.Fatal("expected delete to be called")
	}
}

func TestAccountHandler_List(t *testing.T) {
	stub := &accountServiceStub{
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			if input.Limit != 10 {
				t.Fatalf("expected limit=10, got %d", input.Limit)
			}
			return []*domain.Account{
				{ID: "acc-1", OwnerID: input.OwnerID, Name: "Checking", Currency: "USD"},
				{ID: "acc-2", OwnerID: input.OwnerID, Name: "Savings", Currency: "USD"},
			}, nil
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=10", nil)
	req = withOwner(req, "owner-1")
	rr := httptest.NewRecorder()

	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %+v", resp)
	}
}
