package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"analyzer/internal/analyzer"
	"analyzer/internal/config"
	"analyzer/internal/monitoring"
	"analyzer/internal/storage"

	"go.uber.org/zap"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	config       *config.Config
	router       http.Handler
	httpServer   *http.Server
	pipeline     *analyzer.Pipeline
	orchestrator *analyzer.Orchestrator
	pgStore      *storage.PostgresStore
	redisStore   *storage.RedisStore
	metrics      *monitoring.Metrics
	logger       *zap.Logger
}

// NewServer wires the analysis pipeline into the HTTP layer. pgStore and
// redisStore may be nil when the service runs stateless.
func NewServer(cfg *config.Config, p *analyzer.Pipeline, o *analyzer.Orchestrator,
	ps *storage.PostgresStore, rs *storage.RedisStore, m *monitoring.Metrics, l *zap.Logger) *Server {
	s := &Server{
		config:       cfg,
		pipeline:     p,
		orchestrator: o,
		pgStore:      ps,
		redisStore:   rs,
		metrics:      m,
		logger:       l,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
