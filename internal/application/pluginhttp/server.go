// Package pluginhttp implements the Plugin HTTP Listener (C7): an optional,
// per-plugin HTTP surface that invokes the plugin's Process entry point.
package pluginhttp

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	domainlogging "github.com/kodflow/hostd/internal/domain/logging"
)

const shutdownTimeout = 5 * time.Second

// Processor is the subset of plugin.Handle the listener invokes; Process
// must be safe for concurrent invocation, since the listener does not
// serialize calls into it.
type Processor interface {
	// Process invokes the plugin's per-request compute hook.
	Process(arg int32) (int32, error)
}

// Server is a single plugin's dedicated HTTP surface, serving one route
// that forwards the request into the plugin's Process entry point.
type Server struct {
	plugin Processor
	name   string
	logger domainlogging.Logger
	srv    *http.Server
}

// New builds a Plugin HTTP Listener bound to addr, serving route on behalf
// of the named plugin.
//
// Params:
//   - addr: the "host:port" the listener binds to.
//   - route: the path the plugin's request handler is served under, e.g.
//     "/sample01/process".
//   - name: the plugin's logical name, used in log output.
//   - plugin: the plugin's Process entry point.
//   - logger: the structured event logger.
//
// Returns:
//   - *Server: a constructed, not-yet-serving listener.
func New(addr, route, name string, plugin Processor, logger domainlogging.Logger) *Server {
	s := &Server{plugin: plugin, name: name, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc(route, s.handleProcess)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the listener's routed handler, for tests that want to
// exercise it without binding a real socket.
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
			s.logger.Error(s.name, "plugin_listener_failed", err.Error(), nil)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn(s.name, "plugin_listener_shutdown_error", err.Error(), nil)
	}
}

// handleProcess forwards the "arg" query parameter, parsed as an int32
// request argument (see readArg), into the plugin's Process entry point. A panic recovered by
// the plugin handle surfaces here as a 500 with the recovered error's
// text; it does not crash the listener goroutine.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	arg, err := readArg(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.plugin.Process(arg)
	if err != nil {
		s.logger.Error(s.name, "plugin_process_failed", err.Error(), nil)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	_, _ = io.WriteString(w, strconv.Itoa(int(result)))
}

// readArg extracts the int32 request argument from the query string's
// "arg" parameter, defaulting to 0 when absent.
func readArg(r *http.Request) (int32, error) {
	raw := r.URL.Query().Get("arg")
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(parsed), nil
}
