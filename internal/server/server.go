// Package server exposes the HTTP surface: health, prometheus metrics,
// and the error-counter snapshot and reset endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vietddude/triage/internal/metrics"
)

// Server provides HTTP endpoints over a Recorder.
type Server struct {
	recorder metrics.Recorder
	server   *http.Server
	log      *slog.Logger
}

// NewServer creates a new HTTP server on the given port.
func NewServer(recorder metrics.Recorder, port int, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	mux := http.NewServeMux()
	s := &Server{
		recorder: recorder,
		log:      log,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/errors", s.handleSnapshot)
	mux.HandleFunc("POST /v1/errors/reset", s.handleReset)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Handler exposes the route table, mainly for tests and embedding hosts.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.recorder.Snapshot(r.Context())
	if err != nil {
		s.log.Error("Snapshot failed", "error", err)
		http.Error(w, `{"error":"snapshot unavailable"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.recorder.Reset(r.Context()); err != nil {
		s.log.Error("Reset failed", "error", err)
		http.Error(w, `{"error":"reset failed"}`, http.StatusInternalServerError)
		return
	}

	s.log.Info("Error counters reset")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "reset"})
}
