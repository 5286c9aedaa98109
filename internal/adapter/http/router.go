package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/splittab/internal/adapter/http/handler"
	"github.com/iho/splittab/internal/adapter/http/middleware"
	"github.com/iho/splittab/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LedgerHandler      *handler.LedgerHandler
	TransactionHandler *handler.TransactionHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	Logger             zerolog.Logger
	RateLimit          float64
	RateBurst          int
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

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		r.Use(limiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Balance views
		r.Route("/members", func(r chi.Router) {
			r.Get("/", cfg.LedgerHandler.ListMembers)
			r.Get("/{member}/balance", cfg.LedgerHandler.GetBalance)
			r.Get("/{member}/history", cfg.LedgerHandler.GetHistory)
		})
		r.Get("/summary", cfg.LedgerHandler.GetSummary)

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Settle-up
		r.Post("/settlements", cfg.TransactionHandler.SettleUp)
	})

	return r
}
