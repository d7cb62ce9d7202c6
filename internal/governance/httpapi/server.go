// Package httpapi is the read-only governance HTTP surface
// (SPEC_FULL.md §4 supplemented feature 4): it serves the capability
// lockfile, a server's digest, and the governance manifest (§6) as JSON.
// It is not the MCP protocol, tool dispatch, or the presenter/UI layer —
// it only exposes artifacts this module already produces, mirroring the
// teacher's chi-based internal/httpapi server but scoped to read-only
// governance endpoints.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/lockfile"
)

// Controller is the read-only governance state this server exposes.
type Controller interface {
	CurrentLockfile() (lockfile.CapabilityLockfile, bool)
	ServerDigest() (interface{}, bool)
	Manifest() (interface{}, bool)
}

// Server is the governance toolkit's read-only HTTP API.
type Server struct {
	controller Controller
	logger     *zap.SugaredLogger
	router     *chi.Mux
}

// NewServer builds a governance HTTP API server bound to controller.
func NewServer(controller Controller, logger *zap.SugaredLogger) *Server {
	s := &Server{controller: controller, logger: logger, router: chi.NewRouter()}
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Timeout(10 * time.Second))

	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Route("/api/v1/governance", func(r chi.Router) {
		r.Get("/lockfile", s.handleGetLockfile)
		r.Get("/digest", s.handleGetDigest)
		r.Get("/manifest", s.handleGetManifest)
	})
}

func (s *Server) handleGetLockfile(w http.ResponseWriter, _ *http.Request) {
	lock, ok := s.controller.CurrentLockfile()
	if !ok {
		s.writeError(w, http.StatusNotFound, "no lockfile has been generated yet")
		return
	}
	s.writeJSON(w, http.StatusOK, lock)
}

func (s *Server) handleGetDigest(w http.ResponseWriter, _ *http.Request) {
	digest, ok := s.controller.ServerDigest()
	if !ok {
		s.writeError(w, http.StatusNotFound, "no digest has been computed yet")
		return
	}
	s.writeJSON(w, http.StatusOK, digest)
}

func (s *Server) handleGetManifest(w http.ResponseWriter, _ *http.Request) {
	manifest, ok := s.controller.Manifest()
	if !ok {
		s.writeError(w, http.StatusNotFound, "no manifest is available yet")
		return
	}
	s.writeJSON(w, http.StatusOK, manifest)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorw("failed to encode governance HTTP response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
