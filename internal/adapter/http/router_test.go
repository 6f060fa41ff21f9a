package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/adapter/http/handler"
	"fintrack/internal/adapter/http/middleware"
	"fintrack/internal/domain"
	"fintrack/internal/infrastructure/auth"
	"fintrack/internal/usecase"
)

type accountListerStub struct{}

func (accountListerStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc-1", OwnerID: input.OwnerID, Name: input.Name, Currency: input.Currency}, nil
}

func (accountListerStub) GetAccount(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	return &domain.Account{ID: id, OwnerID: ownerID, Name: "Checking", Currency: "USD"}, nil
}

func (accountListerStub) RenameAccount(ctx context.Context, ownerID, id, name string) (*domain.Account, error) {
	return &domain.Account{ID: id, OwnerID: ownerID, Name: name, Currency: "USD"}, nil
}

func (accountListerStub) DeleteAccount(ctx context.Context, ownerID, id string) error {
	return nil
}

func (accountListerStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return []*domain.Account{{ID: "acc-1", OwnerID: input.OwnerID, Name: "Checking", Currency: "USD"}}, nil
}

func newTestRouter(authEnabled bool, jwtManager *auth.JWTManager) http.Handler {
	return NewRouter(RouterConfig{
		AccountHandler: handler.NewAccountHandler(accountListerStub{}),
		HealthHandler:  handler.NewHealthHandler(nil, nil),
		JWTManager:     jwtManager,
		AuthEnabled:    authEnabled,
	})
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(false, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRouter_StaticOwnerWhenAuthDisabled(t *testing.T) {
	router := newTestRouter(false, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with implicit owner, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRouter_AuthRequired(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router := newTestRouter(true, jwtManager)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}
}

func TestRouter_AuthWithValidToken(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router := newTestRouter(true, jwtManager)

	token, err := jwtManager.Generate("owner-1", "owner@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(false, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint, got %d", rr.Code)
	}
}

func TestGetOwnerFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.OwnerContextKey, "owner-1")
	ownerID, ok := middleware.GetOwnerFromContext(ctx)
	if !ok || ownerID != "owner-1" {
		t.Fatalf("expected owner-1, got %q (ok=%v)", ownerID, ok)
	}

	_, ok = middleware.GetOwnerFromContext(context.Background())
	if ok {
		t.Fatal("expected no owner in empty context")
	}
}
