package server

import (
	"context"
	"net/http"
	"time"

	"github.com/primpoly/factorcalc/internal/logging"
)

// Server serves /metrics and /healthz on a dedicated listener. It runs
// alongside the CLI; Shutdown drains in-flight requests.
type Server struct {
	httpServer *http.Server
	metrics    *Metrics
	security   SecurityConfig
	log        logging.Logger
}

// New creates a Server listening on addr with the given metrics and
// security configuration.
func New(addr string, m *Metrics, security SecurityConfig, log logging.Logger) *Server {
	s := &Server{metrics: m, security: security, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(security, s.metricsMiddleware(s.handleHealth)))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown or a listener
// error. http.ErrServerClosed is filtered out as the normal stop signal.
func (s *Server) ListenAndServe() error {
	s.log.Info("metrics server listening", logging.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// metricsMiddleware tracks in-flight and total requests around next.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
