package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fd1az/arbitrage-lens/internal/logger"
)

// Server exposes a Checker over plain HTTP for process supervisors.
type Server struct {
	port    int
	checker *Checker
	log     logger.LoggerInterface
	server  *http.Server
}

// NewServer creates a health server on port.
func NewServer(port int, checker *Checker, log logger.LoggerInterface) *Server {
	return &Server{port: port, checker: checker, log: log}
}

// Handler serves /health (full report), /ready and /live.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		report := s.checker.Run(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(StatusCode(report))
		json.NewEncoder(w).Encode(report)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if !s.checker.Run(r.Context()).Healthy() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	mux.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("alive"))
	})
	return mux
}

// StatusCode maps a report to 200 or 503.
func StatusCode(r Report) int {
	if r.Healthy() {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// Start listens in the background. Listen failures are logged, not fatal.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Warn(context.Background(), "health server stopped", "error", err)
		}
	}()

	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
