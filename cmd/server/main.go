package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/splittab/internal/adapter/http"
	"github.com/iho/splittab/internal/adapter/http/handler"
	postgresRepo "github.com/iho/splittab/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/splittab/internal/adapter/repository/redis"
	"github.com/iho/splittab/internal/domain"
	"github.com/iho/splittab/internal/infrastructure/config"
	"github.com/iho/splittab/internal/infrastructure/logger"
	"github.com/iho/splittab/internal/infrastructure/metrics"
	"github.com/iho/splittab/internal/infrastructure/postgres"
	"github.com/iho/splittab/internal/infrastructure/redis"
	"github.com/iho/splittab/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	// Validate roster
	roster := cfg.RosterMembers()
	if err := domain.ValidateRoster(roster); err != nil {
		log.Fatal().Err(err).Msg("invalid roster configuration")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize metrics
	appMetrics := metrics.New()

	// Initialize repositories
	txRepo := postgresRepo.NewTransactionRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(txRepo, roster, appMetrics)
	transactionUC := usecase.NewTransactionUseCase(txRepo, idGen, retrier, roster, appMetrics)

	// Initialize handlers
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		LedgerHandler:      ledgerHandler,
		TransactionHandler: transactionHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             appLogger,
		RateLimit:          cfg.RateLimit,
		RateBurst:          cfg.RateBurst,
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
		log.Info().Str("port", cfg.HTTPPort).Int("roster_size", len(roster)).Msg("starting server")
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
