// Package api provides the HTTP REST API server.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/good-yellow-bee/chatriver/internal/api/events"
	"github.com/good-yellow-bee/chatriver/internal/api/health"
	"github.com/good-yellow-bee/chatriver/internal/naming"
	"github.com/good-yellow-bee/chatriver/internal/store"
)

// Config contains HTTP API server configuration.
type Config struct {
	Address           string
	RateLimitPerIP    int           // requests per minute per client IP
	StreamMaxDuration time.Duration // max lifetime for event stream connections
	StreamKeepalive   time.Duration // keepalive comment interval for event streams
	Verbose           bool
}

// SetDefaults applies default values for missing configuration.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.RateLimitPerIP == 0 {
		c.RateLimitPerIP = 120 // 120 requests per minute
	}
	if c.StreamMaxDuration == 0 {
		c.StreamMaxDuration = 30 * time.Minute
	}
	if c.StreamKeepalive == 0 {
		c.StreamKeepalive = 15 * time.Second
	}
}

// Server is the HTTP API server.
type Server struct {
	config        *Config
	store         store.Store
	namer         *naming.Engine
	broker        *events.Broker
	server        *http.Server
	healthHandler *health.Handler
}

// New creates a new API server.
func New(cfg *Config, st store.Store) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}

	cfg.SetDefaults()

	s := &Server{
		config:        cfg,
		store:         st,
		namer:         naming.New(),
		broker:        events.NewBroker(),
		healthHandler: health.NewHandler(),
	}

	router := s.setupRouter()

	s.server = &http.Server{
		Addr:        cfg.Address,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout is intentionally 0 (disabled) because the server
		// supports SSE streams that can last up to 30 minutes. A global
		// WriteTimeout would prematurely kill those long-lived connections.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		log.Printf("HTTP API listening on %s", s.config.Address)
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down HTTP API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.config.Address
}

// RegisterHealthChecker adds a health checker to the server.
func (s *Server) RegisterHealthChecker(c health.Checker) {
	if s.healthHandler != nil {
		s.healthHandler.RegisterChecker(c)
	}
}
