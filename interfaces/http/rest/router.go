// Package rest wires the chi router, middleware stack and handlers.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mindmap-backend/application/services"
	"mindmap-backend/infrastructure/config"
	"mindmap-backend/interfaces/http/rest/handlers"
	"mindmap-backend/interfaces/http/rest/middleware"
	"mindmap-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg     *config.Config
	nodes   *services.NodeService
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	nodes *services.NodeService,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:     cfg,
		nodes:   nodes,
		metrics: metrics,
		logger:  logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:8000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Requested-With"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.cfg.EnableMetrics {
		router.Handle("/metrics", promhttp.HandlerFor(rt.metrics.Registry, promhttp.HandlerOpts{}))
	}

	router.Route("/api", func(r chi.Router) {
		// Node endpoints
		r.Route("/nodes", func(r chi.Router) {
			nodeHandler := handlers.NewNodeHandler(rt.nodes, rt.logger)
			r.Post("/save", nodeHandler.SaveNode)
			r.Post("/ai-request", nodeHandler.AIRequest)
			r.Get("/ai-providers", nodeHandler.ListProviders)

			r.Post("/", nodeHandler.AddChild)
			r.Put("/{nodeID}", nodeHandler.UpdateNode)
			r.Delete("/{nodeID}", nodeHandler.RemoveSubtree)
		})

		// Graph data endpoint for visualization
		r.Get("/graph-data", handlers.NewGraphHandler(rt.nodes, rt.logger).GetGraphData)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
