// Package web provides the HTTP server and handlers for the bulk import API.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shulebus/shulebus/internal/config"
	"github.com/shulebus/shulebus/internal/importer"
	"github.com/shulebus/shulebus/internal/metrics"
	"github.com/shulebus/shulebus/internal/store"
)

// JobStore persists import job history. *store.Store satisfies it; tests
// provide a stub.
type JobStore interface {
	RecordJob(ctx context.Context, report *importer.Report) (store.ImportJob, error)
	ListJobs(ctx context.Context, entityType importer.EntityType, limit int) ([]store.ImportJob, error)
	GetJob(ctx context.Context, id uuid.UUID) (store.ImportJob, error)
}

// Server is the HTTP server for the import API.
type Server struct {
	cfg     *config.Config
	creator importer.RecordCreator
	jobs    JobStore
	limiter *importer.Limiter
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, creator importer.RecordCreator, jobs JobStore) *Server {
	s := &Server{
		cfg:     cfg,
		creator: creator,
		jobs:    jobs,
		limiter: importer.NewLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime),
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(metrics.Middleware)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/import/entity-types", s.handleListEntityTypes)

		r.Post("/import/{entityType}", s.handleImport)
		r.Post("/import/{entityType}/dry-run", s.handleDryRun)

		r.Get("/import/jobs", s.handleListJobs)
		r.Get("/import/jobs/{jobID}", s.handleGetJob)
	})
}

// Start begins listening for HTTP requests. It blocks until the server
// stops.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"active_imports": s.limiter.Active(),
		"time":           time.Now().UTC().Format(time.RFC3339),
	})
}

// handleListEntityTypes returns the entity types available for import,
// with the fields each accepts. Admin UIs use it to build upload forms.
func (s *Server) handleListEntityTypes(w http.ResponseWriter, r *http.Request) {
	type entityInfo struct {
		Type      string   `json:"type"`
		Label     string   `json:"label"`
		Mandatory []string `json:"mandatory_fields"`
		Optional  []string `json:"optional_fields,omitempty"`
	}

	specs := importer.Specs()
	out := make([]entityInfo, 0, len(specs))
	for _, spec := range specs {
		info := entityInfo{
			Type:      string(spec.Type),
			Label:     spec.Label,
			Mandatory: spec.Mandatory,
		}
		mandatory := make(map[string]bool, len(spec.Mandatory))
		for _, f := range spec.Mandatory {
			mandatory[f] = true
		}
		for field := range spec.Aliases {
			if !mandatory[field] {
				info.Optional = append(info.Optional, field)
			}
		}
		sort.Strings(info.Optional)
		out = append(out, info)
	}

	writeJSON(w, http.StatusOK, map[string]any{"entity_types": out})
}

// writeJSON encodes v as JSON with the given status code.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}
