// Package apiserver provides the JSON API HTTP server implementation
package apiserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mealkit/v1/internal/infrastructure/config"
	"github.com/mealkit/v1/internal/infrastructure/http/handlers"
	"github.com/mealkit/v1/internal/infrastructure/http/middleware"
	"github.com/mealkit/v1/internal/ports/inbound"
	"github.com/mealkit/v1/pkg/healthcheck"
)

// APIServer serves the meal plan JSON API
type APIServer struct {
	config      *config.Config
	logger      *zap.Logger
	server      *http.Server
	router      *chi.Mux
	planService inbound.PlanService
	health      *healthcheck.HealthCheck
}

// NewAPIServer creates a new API server instance
func NewAPIServer(cfg *config.Config, log *zap.Logger, planService inbound.PlanService, health *healthcheck.HealthCheck) *APIServer {
	server := &APIServer{
		config:      cfg,
		logger:      log,
		planService: planService,
		health:      health,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())

	h := handlers.NewPlanHandlers(s.planService, s.logger)

	// Health check endpoints
	r.Get("/health", s.health.Handler())
	r.Get("/health/live", s.health.LivenessHandler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", h.ListPlans)
			r.Post("/generate", h.GeneratePlan)
			r.Get("/{id}", h.GetPlan)
			r.Put("/{id}", h.UpdatePlan)
			r.Delete("/{id}", h.DeletePlan)
		})
	})

	return r
}

// Router returns the configured router, mainly for tests
func (s *APIServer) Router() *chi.Mux {
	return s.router
}

// Start starts the API HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting JSON API server",
		zap.String("address", s.server.Addr),
	)

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the API server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	shutdownCtx := ctx
	if s.config.Server.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()
	}

	return s.server.Shutdown(shutdownCtx)
}
