package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/raaihank/redact-sentinel/internal/cache"
	"github.com/raaihank/redact-sentinel/internal/config"
	"github.com/raaihank/redact-sentinel/internal/logger"
	"github.com/raaihank/redact-sentinel/internal/redact"
	"github.com/raaihank/redact-sentinel/internal/security"
	"github.com/raaihank/redact-sentinel/internal/websocket"
	"go.uber.org/zap"
)

// Server is the HTTP shell around the redaction engine.
type Server struct {
	config  *config.Config
	logger  *logger.Logger
	engine  *redact.Engine
	cache   *cache.ResultCache
	limiter *security.RateLimiter
	router  *mux.Router
	server  *http.Server
	wsHub   *websocket.Hub
}

// New creates a new server instance
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	engine := redact.New(redact.Options{
		MinTextLength:       cfg.Redaction.MinTextLength,
		ContextWindowTokens: cfg.Redaction.ContextWindowTokens,
		ExtraVocabulary:     cfg.Redaction.ExtraVocabulary,
	}, log.WithComponent("redact"))

	wsHub := websocket.NewHub(&websocket.HubConfig{
		BroadcastRedactions:  cfg.WebSocket.Events.BroadcastRedactions,
		BroadcastRequests:    cfg.WebSocket.Events.BroadcastRequests,
		BroadcastSystem:      cfg.WebSocket.Events.BroadcastSystem,
		BroadcastConnections: cfg.WebSocket.Events.BroadcastConnections,
		AllowedOrigins:       cfg.WebSocket.AllowedOrigins,
	}, log.WithComponent("websocket").Logger)

	server := &Server{
		config:  cfg,
		logger:  log.WithComponent("server"),
		engine:  engine,
		limiter: security.NewRateLimiter(&cfg.Security),
		router:  mux.NewRouter(),
		wsHub:   wsHub,
	}

	if cfg.Cache.Enabled {
		resultCache, err := cache.NewResultCache(&cache.Config{
			RedisURL:   cfg.Cache.RedisURL,
			KeyPrefix:  cfg.Cache.KeyPrefix,
			DefaultTTL: cfg.Cache.DefaultTTL,
			PoolSize:   cfg.Cache.PoolSize,
		}, log.WithComponent("cache").Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		server.cache = resultCache
	}

	server.setupRoutes()

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Info endpoint
	s.router.HandleFunc("/info", s.handleInfo).Methods("GET")

	// WebSocket endpoint for live redaction events
	if s.config.WebSocket.Enabled {
		s.router.HandleFunc(s.config.WebSocket.Path, s.handleWebSocket).Methods("GET")
	}

	// Redaction API
	api := s.router.PathPrefix("/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.Use(s.rateLimitMiddleware)
	api.HandleFunc("/redact", s.handleRedact).Methods("POST")
	api.HandleFunc("/vocabulary", s.handleVocabulary).Methods("GET")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting redact-sentinel server",
		zap.Int("port", s.config.Server.Port),
		zap.Bool("cache_enabled", s.config.Cache.Enabled),
		zap.Bool("websocket_enabled", s.config.WebSocket.Enabled),
	)

	if s.config.WebSocket.Enabled {
		go s.wsHub.Run()
	}
	s.limiter.StartCleanupRoutine()

	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping redact-sentinel server")

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("Failed to close result cache", zap.Error(err))
		}
	}

	return s.server.Shutdown(ctx)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}

// handleInfo handles info requests
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{
		"name":"redact-sentinel",
		"version":"0.1.0",
		"cache_enabled":%t,
		"vocabulary_terms":%d,
		"connected_clients":%d
	}`, s.config.Cache.Enabled, len(redact.Vocabulary()), s.wsHub.ActiveConnections())
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
