// Package server exposes the HTTP surface: receipt upload and parsing,
// expense CRUD with correction memory, catalog listing, CSV export, and
// first-run API key setup. The categorization and extraction logic lives in
// the core packages; handlers here only orchestrate and translate errors to
// status codes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/expenserule/expenserule/internal/catalog"
	"github.com/expenserule/expenserule/internal/categorize"
	"github.com/expenserule/expenserule/internal/common"
	"github.com/expenserule/expenserule/internal/config"
	"github.com/expenserule/expenserule/internal/ingest"
	"github.com/expenserule/expenserule/internal/llm"
	"github.com/expenserule/expenserule/internal/service"
)

// Config holds server configuration.
type Config struct {
	Addr    string
	DataDir string
	LLM     llm.Config
}

// Server is the HTTP application server.
type Server struct {
	cfg     Config
	storage service.Storage
	catalog *catalog.Catalog
	logger  *slog.Logger

	mu           sync.Mutex
	orchestrator *ingest.Orchestrator
	resolver     *categorize.Resolver
	pipelineKey  string

	httpServer *http.Server
}

// New creates a server over the given storage.
func New(cfg Config, storage service.Storage, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		storage: storage,
		catalog: catalog.Default(),
		logger:  logger,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /upload/parse", s.handleUploadParse)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /export.csv", s.handleExportCSV)
	mux.HandleFunc("POST /setup", s.handleSetup)

	return s.withLogging(mux)
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// pipeline returns the ingestion orchestrator and resolver, building them on
// first use and rebuilding when the stored API key changes (e.g. after
// /setup). Returns common.ErrMissingAPIKey until a key is configured.
func (s *Server) pipeline() (*ingest.Orchestrator, *categorize.Resolver, error) {
	key, err := config.LoadAPIKey(s.cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.orchestrator != nil && s.pipelineKey == key {
		return s.orchestrator, s.resolver, nil
	}

	llmCfg := s.cfg.LLM
	llmCfg.APIKey = key
	client, err := llm.NewClient(llmCfg)
	if err != nil {
		return nil, nil, err
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  llmCfg.MaxRetries,
		InitialDelay: llmCfg.RetryDelay,
	}

	classifier := llm.NewClassifier(client, s.catalog, s.logger, retryOpts)
	extractor := llm.NewExtractor(client, s.logger, retryOpts)
	resolver := categorize.NewResolver(s.storage, s.catalog, classifier, s.logger)

	s.orchestrator = ingest.NewOrchestrator(extractor, resolver, s.logger)
	s.resolver = resolver
	s.pipelineKey = key

	return s.orchestrator, s.resolver, nil
}

// withLogging logs each request with method, path, status, and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// mapStorageError translates storage errors to status codes.
func mapStorageError(w http.ResponseWriter, err error, logger *slog.Logger) {
	if errors.Is(err, common.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	logger.Error("storage error", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
