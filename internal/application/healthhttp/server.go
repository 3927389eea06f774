// Package healthhttp implements the Health HTTP Listener (C6): the single
// admin-facing HTTP server exposing liveness, readiness, metrics, and the
// shutdown trigger.
package healthhttp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	domainlogging "github.com/kodflow/hostd/internal/domain/logging"
)

const shutdownTimeout = 5 * time.Second

// StatusSource reports aggregate plugin health; implemented by the Host
// Orchestrator.
type StatusSource interface {
	// Status reports the aggregate health of every registered probe.
	Status() (bool, map[string]bool)
}

// Killer is notified when the admin /kill route is hit; implemented by the
// Shutdown Coordinator.
type Killer interface {
	// Kill signals the shutdown coordinator.
	Kill()
}

// MetricsHandler serves the metrics exposition format for whichever
// exporter backend is configured (A4).
type MetricsHandler interface {
	http.Handler
}

// Server is the Health HTTP Listener. /alive reflects the Host
// Orchestrator's liveness probe status and /ready its distinct readiness
// probe status, each as JSON {name: valid, ...}, 200 when overall is valid
// and 408 Request Timeout otherwise; /metrics proxies to the configured
// exporter; /kill replies 200 "OK" and triggers shutdown, idempotently.
type Server struct {
	basePath  string
	liveness  StatusSource
	readiness StatusSource
	killer    Killer
	metrics   MetricsHandler
	logger    domainlogging.Logger

	srv *http.Server
}

// New builds the Health HTTP Listener bound to addr, rooted at basePath
// (e.g. "/health").
//
// Params:
//   - addr: the "host:port" the listener binds to.
//   - basePath: the route prefix every health route is served under.
//   - liveness: the liveness health source, served from /alive.
//   - readiness: the readiness health source, served from /ready.
//   - killer: the shutdown trigger (the Shutdown Coordinator).
//   - metrics: the metrics exposition handler, may be nil to disable /metrics.
//   - logger: the structured event logger.
//
// Returns:
//   - *Server: a constructed, not-yet-serving listener.
func New(addr, basePath string, liveness, readiness StatusSource, killer Killer, metrics MetricsHandler, logger domainlogging.Logger) *Server {
	s := &Server{basePath: basePath, liveness: liveness, readiness: readiness, killer: killer, metrics: metrics, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc(basePath+"/alive", s.handleAlive)
	mux.HandleFunc(basePath+"/ready", s.handleReady)
	mux.HandleFunc(basePath+"/kill", s.handleKill)
	if metrics != nil {
		mux.Handle(basePath+"/metrics", metrics)
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the listener's routed handler, for tests that want to
// exercise the routes without binding a real socket.
//
// Returns:
//   - http.Handler: the server's mux.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then gracefully shuts the listener
// down. Matches the task.Func signature so it can be spawned directly on
// the host's task set.
//
// Params:
//   - ctx: cancelled to trigger graceful shutdown.
func (s *Server) Run(ctx context.Context) {
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			s.logger.Error("", "health_listener_failed", err.Error(), nil)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("", "health_listener_shutdown_error", err.Error(), nil)
	}
}

func (s *Server) handleAlive(w http.ResponseWriter, _ *http.Request) {
	overall, details := s.liveness.Status()
	writeStatus(w, overall, details)
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	overall, details := s.readiness.Status()
	writeStatus(w, overall, details)
}

// writeStatus writes the {name: valid, ...} body, 200 when overall is
// valid, 408 Request Timeout otherwise (a stale probe is, semantically, a
// timed-out tick).
func writeStatus(w http.ResponseWriter, overall bool, details map[string]bool) {
	w.Header().Set("Content-Type", "application/json")
	if !overall {
		w.WriteHeader(http.StatusRequestTimeout)
	}
	_ = json.NewEncoder(w).Encode(details)
}

func (s *Server) handleKill(w http.ResponseWriter, _ *http.Request) {
	s.logger.Info("", "kill_requested", "shutdown requested via /kill", nil)
	s.killer.Kill()
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
