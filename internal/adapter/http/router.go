package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sproutfi/stash/internal/adapter/http/handler"
	"github.com/sproutfi/stash/internal/adapter/http/middleware"
	"github.com/sproutfi/stash/internal/infrastructure/auth"
	"github.com/sproutfi/stash/internal/infrastructure/metrics"
	"github.com/sproutfi/stash/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PlanHandler        *handler.PlanHandler
	WithdrawalHandler  *handler.WithdrawalHandler
	WalletHandler      *handler.WalletHandler
	TransactionHandler *handler.TransactionHandler
	AuthHandler        *handler.AuthHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	AuthEnabled        bool
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Metrics            *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		if cfg.AuthHandler != nil {
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		r.Group(func(r chi.Router) {
			if cfg.JWTManager != nil {
				if cfg.AuthEnabled {
					r.Use(middleware.AuthMiddleware(cfg.JWTManager))
				} else {
					r.Use(middleware.OptionalAuth(cfg.JWTManager))
				}
			}

			if cfg.AuthHandler != nil {
				r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)
			}

			// Savings plans
			r.Route("/plans", func(r chi.Router) {
				r.Post("/", cfg.PlanHandler.Create)
				r.Get("/", cfg.PlanHandler.List)
				r.Get("/{id}", cfg.PlanHandler.Get)
				r.Get("/{id}/progress", cfg.PlanHandler.Progress)
				r.Post("/{id}/contribute", cfg.PlanHandler.Contribute)
				r.Post("/{id}/pause", cfg.PlanHandler.Pause)
				r.Post("/{id}/resume", cfg.PlanHandler.Resume)
				r.Post("/{id}/cancel", cfg.PlanHandler.Cancel)
				r.Post("/{id}/withdraw", cfg.WithdrawalHandler.Withdraw)
			})

			// Wallet and history
			r.Get("/wallet", cfg.WalletHandler.Get)
			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", cfg.TransactionHandler.List)
				r.Get("/lookup", cfg.TransactionHandler.GetByReference)
			})
		})
	})

	return r
}
