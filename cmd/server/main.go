package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "fintrack/internal/adapter/http"
	"fintrack/internal/adapter/http/handler"
	postgresRepo "fintrack/internal/adapter/repository/postgres"
	redisRepo "fintrack/internal/adapter/repository/redis"
	"fintrack/internal/infrastructure/auth"
	"fintrack/internal/infrastructure/config"
	"fintrack/internal/infrastructure/logger"
	"fintrack/internal/infrastructure/metrics"
	"fintrack/internal/infrastructure/postgres"
	"fintrack/internal/infrastructure/redis"
	"fintrack/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics registry
	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	budgetRepo := postgresRepo.NewBudgetRepository(pool)
	analyticsRepo := postgresRepo.NewAnalyticsRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log.Logger)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen).
		WithMetrics(m)
	transactionUC := usecase.NewTransactionUseCase(txManager, accountRepo, categoryRepo, transactionRepo, idGen).
		WithAudit(auditRepo).
		WithCache(cache).
		WithRetrier(retrier).
		WithMetrics(m)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen)
	budgetUC := usecase.NewBudgetUseCase(budgetRepo, categoryRepo, analyticsRepo, idGen).
		WithMetrics(m)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo).
		WithCache(cache, cfg.AnalyticsCacheTTL).
		WithMetrics(m)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, transactionRepo)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	budgetHandler := handler.NewBudgetHandler(budgetUC)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUC)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Optional JWT auth
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("authentication enabled")
	} else {
		log.Info().Str("owner", httpAdapter.DefaultOwnerID).Msg("authentication disabled, using implicit owner")
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:        accountHandler,
		TransactionHandler:    transactionHandler,
		CategoryHandler:       categoryHandler,
		BudgetHandler:         budgetHandler,
		AnalyticsHandler:      analyticsHandler,
		ReconciliationHandler: reconciliationHandler,
		HealthHandler:         healthHandler,
		JWTManager:            jwtManager,
		AuthEnabled:           cfg.AuthEnabled && jwtManager != nil,
		Logger:                log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
