package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hermanas/caja/internal/adapter/http/handler"
	"github.com/hermanas/caja/internal/adapter/http/middleware"
	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/infrastructure/auth"
	"github.com/hermanas/caja/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EventHandler     *handler.EventHandler
	RegisterHandler  *handler.RegisterHandler
	CashCountHandler *handler.CashCountHandler
	AuthHandler      *handler.AuthHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	Logger           zerolog.Logger
	AllowedOrigins   []string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IdempotencyKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Login is the only unauthenticated API endpoint
	r.Post("/api/v1/auth/login", cfg.AuthHandler.Login)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)
		r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/auth/users", cfg.AuthHandler.CreateUser)

		// Events cash
		r.Route("/events", func(r chi.Router) {
			r.Post("/", cfg.EventHandler.Create)
			r.Get("/", cfg.EventHandler.List)
			r.Get("/{id}", cfg.EventHandler.Get)
			r.Post("/{id}/entries", cfg.EventHandler.AppendEntry)
			r.Get("/{id}/entries", cfg.EventHandler.ListEntries)
			r.Get("/{id}/summary", cfg.EventHandler.GetSummary)
		})

		// Cash registers (general, shop, deco)
		r.Route("/registers/{register}", func(r chi.Router) {
			r.Post("/entries", cfg.RegisterHandler.CreateEntry)
			r.Get("/entries", cfg.RegisterHandler.ListEntries)
			r.Get("/summary", cfg.RegisterHandler.Summary)
		})

		// Register entries addressed directly
		r.Route("/entries/{id}", func(r chi.Router) {
			r.Get("/", cfg.RegisterHandler.GetEntry)
			r.Post("/approve", cfg.RegisterHandler.Approve)
			r.Post("/reject", cfg.RegisterHandler.Reject)
		})

		// Shop sales
		r.Post("/sales", cfg.RegisterHandler.RecordSale)

		// Cash counts
		r.Route("/cash-counts", func(r chi.Router) {
			r.Post("/", cfg.CashCountHandler.Create)
			r.Get("/", cfg.CashCountHandler.List)
			r.Get("/{id}", cfg.CashCountHandler.Get)
		})
	})

	return r
}
