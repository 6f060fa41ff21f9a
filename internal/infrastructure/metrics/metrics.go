package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. Request-level HTTP metrics live in
// the router middleware; everything here is incremented by the usecases and
// handlers that own the corresponding operation.
type Metrics struct {
	// Transaction metrics
	TransactionsCreated prometheus.Counter
	TransactionsUpdated prometheus.Counter
	TransactionsDeleted prometheus.Counter
	TransactionAmount   prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter

	// Reconciliation metrics
	ReconciliationChecks     prometheus.Counter
	ReconciliationMismatches prometheus.Counter

	// Budget metrics
	BudgetsCreated  prometheus.Counter
	BudgetsExceeded prometheus.Counter

	// Analytics metrics
	AnalyticsCacheHits   prometheus.Counter
	AnalyticsCacheMisses prometheus.Counter

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_transactions_created_total",
			Help: "Total number of transactions created",
		}),
		TransactionsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_transactions_updated_total",
			Help: "Total number of transactions updated",
		}),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fintrack_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),

		// Reconciliation metrics
		ReconciliationChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_reconciliation_checks_total",
			Help: "Total number of balance reconciliation checks",
		}),
		ReconciliationMismatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_reconciliation_mismatches_total",
			Help: "Total number of accounts found with a drifted balance",
		}),

		// Budget metrics
		BudgetsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_budgets_created_total",
			Help: "Total number of budgets created",
		}),
		BudgetsExceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_budgets_exceeded_total",
			Help: "Total number of budget progress reads over the limit",
		}),

		// Analytics metrics
		AnalyticsCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_analytics_cache_hits_total",
			Help: "Total analytics summary cache hits",
		}),
		AnalyticsCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_analytics_cache_misses_total",
			Help: "Total analytics summary cache misses",
		}),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
