package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/chatriver/internal/api/conversations"
	"github.com/good-yellow-bee/chatriver/internal/api/events"
	"github.com/good-yellow-bee/chatriver/internal/api/middleware"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Create rate limiter
	ipLimiter := middleware.NewRateLimiter(s.config.RateLimitPerIP)

	// Global middleware
	r.Use(middleware.RequestLogger(s.config.Verbose))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.PrometheusMiddleware)
	r.Use(middleware.Recoverer)

	convHandler := conversations.NewHandler(s.store, s.namer, s.broker)
	eventsHandler := events.NewHandler(s.broker, s.config.StreamMaxDuration, s.config.StreamKeepalive)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/conversations", func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ipLimiter))

			r.Post("/", convHandler.Create)
			r.Get("/", convHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", convHandler.GetByID)
				r.Delete("/", convHandler.Delete)
				r.Put("/name", convHandler.Rename)
				r.Get("/messages", convHandler.ListMessages)
				r.Post("/messages", convHandler.AppendMessage)
			})
		})

		// Event stream is long-lived; it carries its own lifetime bound
		// instead of the rate limiter.
		r.Get("/events", eventsHandler.Stream)
	})

	// Health checks (public, no rate limit)
	r.Get("/health", s.healthHandler.Health)
	r.Get("/health/live", s.healthHandler.Live)
	r.Get("/health/ready", s.healthHandler.Ready)

	// Consistent error envelope for unknown routes and methods.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		JSONError(w, ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		JSONError(w, ErrMethodNotAllowed)
	})

	return r
}
