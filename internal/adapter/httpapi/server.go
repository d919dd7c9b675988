// Package httpapi exposes the forecast pipeline over HTTP for the
// long-running service mode, alongside health and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/surfapp/forecast-engine/internal/domain"
	"github.com/surfapp/forecast-engine/internal/pipeline"
)

// runTimeout bounds one pipeline run triggered over HTTP.
const runTimeout = 60 * time.Second

// Runner executes a forecast pipeline run.
type Runner interface {
	Run(ctx context.Context, locations []domain.Location, skill domain.SkillLevel, rank bool) []pipeline.SpotForecast
}

// Server exposes forecast, health, readiness, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	runner     Runner
	locations  []domain.Location
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1/forecasts, /healthz, /readyz,
// and /metrics routes.
func NewServer(addr string, runner Runner, locations []domain.Location, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: runTimeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		runner:    runner,
		locations: locations,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /v1/forecasts", s.handleForecasts)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if len(s.locations) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "no spots configured",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleForecasts(w http.ResponseWriter, r *http.Request) {
	skill := domain.SkillLevel(r.URL.Query().Get("skill"))
	rank := r.URL.Query().Get("rank") == "true"

	ctx, cancel := context.WithTimeout(r.Context(), runTimeout)
	defer cancel()

	spots := s.runner.Run(ctx, s.locations, skill, rank)
	writeJSON(w, http.StatusOK, pipeline.Response{Spots: spots})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
