// Package server implements the fsgraph HTTP API.
//
// The API exposes filesystem scanning and snapshot management over JSON:
//   - POST /api/scan: scan a directory and persist the result as a snapshot
//   - GET /api/snapshots: list stored snapshots (newest first)
//   - GET /api/snapshots/{id}: fetch a single snapshot including its graph
//   - DELETE /api/snapshots/{id}: remove a snapshot
//   - GET /healthz: liveness check
//
// Errors are returned as JSON objects carrying a machine-readable code:
//
//	{"error": {"code": "SNAPSHOT_NOT_FOUND", "message": "no snapshot with id abc"}}
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/fsgraph/pkg/store"
)

// Server holds the shared state for all HTTP handlers.
type Server struct {
	store  store.Store
	logger *log.Logger
}

// New creates a Server backed by the given snapshot store.
func New(st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, logger: logger}
}

// Router builds the chi router with all routes and middleware registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/scan", s.handleScan)
		r.Get("/snapshots", s.handleListSnapshots)
		r.Get("/snapshots/{id}", s.handleGetSnapshot)
		r.Delete("/snapshots/{id}", s.handleDeleteSnapshot)
	})

	return r
}

// requestLogger logs each request with method, path, status, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}
