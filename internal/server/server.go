// Package server provides the HTTP API for Keiyaku.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/keiyaku/internal/analyzer"
	"github.com/hyperjump/keiyaku/internal/config"
	"github.com/hyperjump/keiyaku/internal/export"
	"github.com/hyperjump/keiyaku/internal/extract"
	"github.com/hyperjump/keiyaku/internal/qa"
	"github.com/hyperjump/keiyaku/internal/session"
)

// Server is the HTTP server for the Keiyaku API.
type Server struct {
	store     *session.Store
	extractor *extract.Extractor
	analyzer  *analyzer.Analyzer
	qa        *qa.Service
	exporter  *export.Exporter
	exportDir string
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	store *session.Store,
	extractor *extract.Extractor,
	an *analyzer.Analyzer,
	qaSvc *qa.Service,
	exporter *export.Exporter,
	exportDir string,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		store:     store,
		extractor: extractor,
		analyzer:  an,
		qa:        qaSvc,
		exporter:  exporter,
		exportDir: exportDir,
		config:    cfg,
		logger:    logger,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Generation round-trips can take minutes
	r.Use(middleware.Timeout(300 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/documents", s.handleUploadDocument)
	r.Post("/api/v1/analyze", s.handleAnalyze)
	r.Post("/api/v1/ask", s.handleAsk)
	r.Post("/api/v1/export", s.handleExport)
	r.Get("/api/v1/report", s.handleReport)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
