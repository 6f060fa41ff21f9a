package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"fintrack/internal/adapter/http/handler"
	"fintrack/internal/adapter/http/middleware"
	"fintrack/internal/infrastructure/auth"
)

// DefaultOwnerID identifies the implicit owner when authentication is
// disabled, such as a single-user local install.
const DefaultOwnerID = "local"

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	TransactionHandler    *handler.TransactionHandler
	CategoryHandler       *handler.CategoryHandler
	BudgetHandler         *handler.BudgetHandler
	AnalyticsHandler      *handler.AnalyticsHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler

	JWTManager  *auth.JWTManager
	AuthEnabled bool
	Logger      zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled && cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		} else {
			r.Use(middleware.StaticOwner(DefaultOwnerID))
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Patch("/{id}", cfg.AccountHandler.Rename)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Post("/{id}/reconcile", cfg.ReconciliationHandler.CheckAccount)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.CategoryHandler.Create)
			r.Get("/", cfg.CategoryHandler.List)
			r.Get("/{id}", cfg.CategoryHandler.Get)
			r.Put("/{id}", cfg.CategoryHandler.Update)
			r.Delete("/{id}", cfg.CategoryHandler.Delete)
			r.Get("/{id}/parent-candidates", cfg.CategoryHandler.ListParentCandidates)
		})

		// Budgets
		r.Route("/budgets", func(r chi.Router) {
			r.Post("/", cfg.BudgetHandler.Create)
			r.Get("/", cfg.BudgetHandler.List)
			r.Get("/{id}", cfg.BudgetHandler.Get)
			r.Put("/{id}", cfg.BudgetHandler.Update)
			r.Delete("/{id}", cfg.BudgetHandler.Delete)
			r.Get("/{id}/progress", cfg.BudgetHandler.Progress)
		})

		// Analytics
		r.Get("/analytics/summary", cfg.AnalyticsHandler.Summary)

		// Reconciliation across all accounts
		r.Post("/reconcile", cfg.ReconciliationHandler.CheckAll)
	})

	return r
}
