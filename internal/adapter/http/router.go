package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bancodemo/api/internal/adapter/http/handler"
	"github.com/bancodemo/api/internal/adapter/http/middleware"
	"github.com/bancodemo/api/internal/infrastructure/auth"
	"github.com/bancodemo/api/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	AccountHandler   *handler.AccountHandler
	TransferHandler  *handler.TransferHandler
	CardHandler      *handler.CardHandler
	AutoDebitHandler *handler.AutoDebitHandler
	HealthHandler    *handler.HealthHandler

	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics.HTTPRequests, cfg.Metrics.HTTPDuration).Wrap)
	}

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		if cfg.Metrics != nil {
			limiter.Hits = cfg.Metrics.RateLimitHits
		}
		r.Use(limiter.Limit)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Public auth endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Get("/verify-email", cfg.AuthHandler.VerifyEmail)
		r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
		r.Post("/reset-password", cfg.AuthHandler.ResetPassword)
	})

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		r.Get("/me", cfg.UserHandler.Me)
		r.Get("/users", cfg.UserHandler.List)
		r.Get("/users/activity", cfg.UserHandler.Activity)

		r.Get("/accounts/{id}", cfg.AccountHandler.Get)
		r.Get("/transactions", cfg.AccountHandler.ListTransactions)
		r.Post("/transfer", cfg.TransferHandler.Create)

		r.Get("/card", cfg.CardHandler.Get)
		r.Post("/card/pay", cfg.CardHandler.Pay)

		r.Get("/auto-debit", cfg.AutoDebitHandler.Get)
		r.Put("/auto-debit", cfg.AutoDebitHandler.Set)
	})

	return r
}
