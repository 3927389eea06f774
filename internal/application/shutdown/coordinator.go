// Package shutdown implements the Shutdown Coordinator (C8): the single
// select loop that watches every shutdown source and reports the first one
// to fire exactly once.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	domainlogging "github.com/kodflow/hostd/internal/domain/logging"
)

// watchedSignals are the OS signals the coordinator polls for. SIGHUP is
// the reload convention, not a shutdown trigger; it stays in the watch set
// but Run hands it to the onReload callback and keeps waiting.
var watchedSignals = []os.Signal{syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP, syscall.SIGINT}

// Coordinator is the sole initiator of graceful shutdown. Tasks must never
// self-terminate the host; they signal the coordinator instead. A plugin
// panic recovered by the domain plugin package's invocation wrapper is
// returned to its caller as plugin.ErrPanic and logged there; no caller
// turns it into a call to Stop, so a plugin panic does not shut the host
// down.
type Coordinator struct {
	logger domainlogging.Logger

	killCh chan struct{}
	stopCh chan struct{}

	once sync.Once
}

// New creates a Coordinator with its one-shot trigger channels ready.
//
// Params:
//   - logger: the structured event logger the coordinator logs the
//     triggering source to.
//
// Returns:
//   - *Coordinator: a coordinator ready for Run.
func New(logger domainlogging.Logger) *Coordinator {
	return &Coordinator{
		logger: logger,
		killCh: make(chan struct{}, 1),
		stopCh: make(chan struct{}, 1),
	}
}

// Kill is the admin HTTP /kill route's trigger: a non-blocking write to a
// capacity-1 channel, safe to call more than once.
func (c *Coordinator) Kill() {
	select {
	case c.killCh <- struct{}{}:
	default:
	}
}

// Stop is the programmatic shutdown trigger used by the Host Orchestrator
// or the FFI surface. Non-blocking and safe to call more than once.
func (c *Coordinator) Stop() {
	select {
	case c.stopCh <- struct{}{}:
	default:
	}
}

// Run blocks until the first shutdown source fires, then returns the name
// of the source that triggered it. Every subsequent signal after the first
// is released back to the OS default disposition (signal.Stop), so a
// second SIGTERM hard-kills as normal. onReload is invoked in place,
// without unblocking Run, every time SIGHUP arrives.
//
// Params:
//   - ctx: cancelling ctx counts as a "context" shutdown source.
//   - onReload: called synchronously on every SIGHUP.
//
// Returns:
//   - string: the name of the source that triggered shutdown.
func (c *Coordinator) Run(ctx context.Context, onReload func()) string {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, watchedSignals...)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				c.logger.Info("", "config_reload_signal", "SIGHUP received", nil)
				if onReload != nil {
					onReload()
				}
				continue
			}
			return c.trigger(sig.String())
		case <-c.killCh:
			return c.trigger("http_kill")
		case <-c.stopCh:
			return c.trigger("programmatic")
		case <-ctx.Done():
			return c.trigger("context")
		}
	}
}

// trigger logs the winning source exactly once; Run's caller already
// guarantees it is called at most once per Coordinator, but the guard
// keeps the log line single-fire even if Run is ever called concurrently.
func (c *Coordinator) trigger(source string) string {
	c.once.Do(func() {
		c.logger.Info("", "shutdown_triggered", "shutdown initiated", map[string]any{"source": source})
	})
	return source
}
