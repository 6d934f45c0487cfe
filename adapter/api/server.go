// Package api serves the telemetry endpoints of a running session.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Server is the HTTP telemetry server.
type Server struct {
	mux    *http.ServeMux
	server *http.Server
	logger *slog.Logger

	metrics http.Handler
	health  http.Handler
}

// ServerConfig holds configuration for the telemetry server.
type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:              "127.0.0.1:9090",
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// NewServer creates a server exposing metrics at /metrics and the health
// report at /healthz.
func NewServer(cfg ServerConfig, metrics, health http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		metrics: metrics,
		health:  health,
	}
	s.registerRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

func (s *Server) registerRoutes() {
	s.mux.Handle("GET /metrics", s.metrics)
	s.mux.Handle("GET /healthz", s.health)
	s.mux.HandleFunc("/", s.handleNotFound)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error":   http.StatusText(http.StatusNotFound),
		"message": "unknown path " + r.URL.Path,
	})
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start binds the listener and serves in the background. Bind errors are
// returned immediately.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("telemetry server starting", "addr", ln.Addr().String())

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("telemetry server error", "error", err)
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down telemetry server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}
