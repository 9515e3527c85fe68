package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"sales-intel/cache"
	"sales-intel/config"
	"sales-intel/database/aggregates"
	"sales-intel/notifications"
	"sales-intel/realtime"
)

// Server handles HTTP API requests
type Server struct {
	repo      *aggregates.Repository
	redis     *cache.RedisClient
	broker    *realtime.Broker
	webhookMq *notifications.WebhookManager
	refresher Refresher
	cfg       *config.Config
}

// Refresher triggers a full pipeline recomputation on demand.
type Refresher interface {
	RunOnce(now time.Time) error
}

// NewServer creates a new API server instance
func NewServer(repo *aggregates.Repository, redis *cache.RedisClient, broker *realtime.Broker, webhookMq *notifications.WebhookManager, cfg *config.Config) *Server {
	return &Server{
		repo:      repo,
		redis:     redis,
		broker:    broker,
		webhookMq: webhookMq,
		cfg:       cfg,
	}
}

// SetRefresher injects the pipeline trigger for the manual refresh endpoint.
func (s *Server) SetRefresher(r Refresher) {
	s.refresher = r
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	// Register routes
	mux.Handle("GET /api/events", s.broker) // SSE Endpoint

	// Per-client aggregate routes
	mux.HandleFunc("GET /api/clients/{id}/profile", s.handleGetClientProfile)
	mux.HandleFunc("GET /api/clients/{id}/trade-summary", s.handleGetTradeSummary)
	mux.HandleFunc("GET /api/clients/{id}/call-pattern", s.handleGetCallPattern)
	mux.HandleFunc("GET /api/clients/{id}/topics", s.handleGetTopicSignal)
	mux.HandleFunc("GET /api/clients/{id}/position-hints", s.handleGetPositionHints)
	mux.HandleFunc("GET /api/clients/{id}/portfolio-risk", s.handleGetPortfolioRisk)
	mux.HandleFunc("GET /api/clients/{id}/momentum", s.handleGetEngagementMomentum)
	mux.HandleFunc("GET /api/clients/{id}/conviction", s.handleGetConviction)
	mux.HandleFunc("GET /api/clients/{id}/readership", s.handleGetReadershipIntel)
	mux.HandleFunc("GET /api/clients/{id}/risk", s.handleGetRiskComposite)

	// Market-wide routes
	mux.HandleFunc("GET /api/sectors/momentum", s.handleGetSectorMomentum)

	// Pipeline control
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)

	// Webhook Management Routes
	mux.HandleFunc("GET /api/config/webhooks", s.handleGetWebhooks)
	mux.HandleFunc("POST /api/config/webhooks", s.handleCreateWebhook)
	mux.HandleFunc("DELETE /api/config/webhooks/{id}", s.handleDeleteWebhook)

	mux.HandleFunc("GET /health", s.handleHealth)

	// Add middleware
	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API Server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, handler)
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// Handlers are distributed across multiple files:
// - handlers_clients.go: Per-client aggregate and profile lookups
// - handlers_pipeline.go: Sector momentum and manual refresh
// - handlers_config.go: Webhook management, health check
