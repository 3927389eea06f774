// Package host implements the Host Orchestrator (C9): the top-level state
// machine that owns every loaded plugin, the health check registry, and the
// task set their worker loops and listeners run on.
package host

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kodflow/hostd/internal/domain/healthprobe"
	domainlogging "github.com/kodflow/hostd/internal/domain/logging"
	"github.com/kodflow/hostd/internal/domain/plugin"
	"github.com/kodflow/hostd/internal/domain/task"
)

// State represents the Host Orchestrator's lifecycle state.
type State int

// Host states, matching the Constructed -> Started -> Draining -> Stopped
// table.
const (
	StateConstructed State = iota
	StateStarted
	StateDraining
	StateStopped
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateStarted:
		return "started"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Errors for host operations.
var (
	// ErrAlreadyStarted is returned when Start is called more than once.
	ErrAlreadyStarted = errors.New("host: already started")
	// ErrAlreadyRunning is returned by RegisterPlugin once Start has begun;
	// Go has no link-time equivalent of a compile error for this case.
	ErrAlreadyRunning = errors.New("host: plugin registration closed, already running")
	// ErrPluginNotFound is returned when a plugin name has no registered handle.
	ErrPluginNotFound = errors.New("host: plugin not found")
)

// entry pairs a registered plugin's handle with its health probe, kept in
// registration order so Start calls Init in the order plugins were added.
type entry struct {
	name   string
	handle *plugin.Handle
	probe  *healthprobe.Probe
}

// Host owns every loaded plugin handle, the aggregate health check, and the
// task set their background work runs on. It is the single place that knows
// the overall process state.
type Host struct {
	mu        sync.RWMutex
	state     State
	order     []*entry
	byName    map[string]*entry
	liveness  *healthprobe.Check
	readiness *healthprobe.Check
	tasks     *task.Set
	logger    domainlogging.Logger
	stopped   chan struct{}
	stopOne   sync.Once
}

// New creates a Host in the Constructed state.
//
// Params:
//   - logger: the daemon-level event logger.
//
// Returns:
//   - *Host: a newly constructed, not-yet-started host.
func New(logger domainlogging.Logger) *Host {
	return &Host{
		state:     StateConstructed,
		byName:    make(map[string]*entry),
		liveness:  healthprobe.NewCheck("liveness"),
		readiness: healthprobe.NewCheck("readiness"),
		logger:    logger,
		stopped:   make(chan struct{}),
	}
}

// RegisterPlugin adds a loaded plugin handle and a health probe for it to
// the host, keyed by the plugin's logical name. Plugins registered before
// Start have their Init called in registration order; registering after
// Start has begun fails with ErrAlreadyRunning.
//
// Params:
//   - name: the logical plugin name.
//   - handle: the resolved plugin handle.
//   - margin: the staleness margin for the plugin's health probe.
//
// Returns:
//   - *healthprobe.Probe: the probe the plugin's worker loop must tick.
//   - error: ErrAlreadyRunning if called after Start.
func (h *Host) RegisterPlugin(name string, handle *plugin.Handle, margin time.Duration) (*healthprobe.Probe, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateConstructed {
		return nil, ErrAlreadyRunning
	}
	probe := healthprobe.NewProbe(name, margin)
	e := &entry{name: name, handle: handle, probe: probe}
	h.order = append(h.order, e)
	h.byName[name] = e
	h.liveness.Add(probe)
	h.readiness.Add(probe)
	return probe, nil
}

// Plugin returns the registered handle for name.
//
// Params:
//   - name: the logical plugin name.
//
// Returns:
//   - *plugin.Handle: the handle, or nil if not found.
//   - error: ErrPluginNotFound if name is not registered.
func (h *Host) Plugin(name string) (*plugin.Handle, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.byName[name]
	if !ok {
		return nil, ErrPluginNotFound
	}
	return e.handle, nil
}

// Plugins returns every registered plugin's logical name, in registration
// order.
//
// Returns:
//   - []string: the registered plugin names.
func (h *Host) Plugins() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.order))
	for _, e := range h.order {
		names = append(names, e.name)
	}
	return names
}

// Tasks returns the host's task set for spawning background work (worker
// loops, HTTP listeners) bound to the host's lifetime. Only valid once
// Start has begun.
//
// Returns:
//   - *task.Set: the host's task set, nil before Start.
func (h *Host) Tasks() *task.Set {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tasks
}

// Status reports the host's liveness: the aggregate health of every
// registered plugin probe, with no regard for the host's own lifecycle
// state. Implements healthhttp.StatusSource for the /alive route.
//
// Returns:
//   - bool: true if every probe is valid (AND-reduced, true on empty set).
//   - map[string]bool: per-plugin validity.
func (h *Host) Status() (bool, map[string]bool) {
	return h.liveness.Status()
}

// Readiness returns a StatusSource reflecting whether the host is ready to
// take traffic: every registered plugin probe fresh AND the host in the
// Started state, which Start enters before its plugin Init pass. A host
// still in Constructed or Draining is never ready even if its probes happen
// to be fresh.
//
// Returns:
//   - *ReadinessView: pass directly to healthhttp.New as the /ready source.
func (h *Host) Readiness() *ReadinessView {
	return &ReadinessView{h: h}
}

// ReadinessView adapts Host's readiness Check to the single-method
// Status() (bool, map[string]bool) shape the Health HTTP Listener expects,
// since Host itself already implements that shape for liveness.
type ReadinessView struct {
	h *Host
}

// Status reports overall readiness: the AND of every registered probe's
// freshness and the host currently being in the Started state.
//
// Returns:
//   - bool: true only while the host is Started and every probe is fresh.
//   - map[string]bool: per-plugin validity.
func (r *ReadinessView) Status() (bool, map[string]bool) {
	overall, details := r.h.readiness.Status()
	if r.h.State() != StateStarted {
		overall = false
	}
	return overall, details
}

// State returns the host's current lifecycle state.
//
// Returns:
//   - State: the current state.
func (h *Host) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Start builds the runtime (task set), calls Init on every registered
// plugin in registration order, and then blocks until Stop is called from
// another goroutine (typically the Shutdown Coordinator). It returns only
// after the host reaches Stopped.
//
// Params:
//   - ctx: the parent context for every background task the host spawns;
//     cancelling ctx has the same effect as calling Stop.
//
// Returns:
//   - error: ErrAlreadyStarted if called more than once.
func (h *Host) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.state != StateConstructed {
		h.mu.Unlock()
		return ErrAlreadyStarted
	}
	h.tasks = task.NewSet(ctx)
	h.state = StateStarted
	entries := make([]*entry, len(h.order))
	copy(entries, h.order)
	h.mu.Unlock()

	h.logger.Info("", "host_started", "host orchestrator started", nil)

	for _, e := range entries {
		if _, err := e.handle.Init(0); err != nil {
			h.logger.Error("", "plugin_init_failed", err.Error(), map[string]any{"plugin": e.name})
		}
	}

	select {
	case <-h.stopped:
	case <-ctx.Done():
	}

	h.mu.Lock()
	h.state = StateDraining
	tasks := h.tasks
	h.mu.Unlock()
	h.logger.Info("", "host_draining", "host orchestrator draining", nil)

	tasks.Shutdown()
	tasks.Join()

	h.mu.Lock()
	h.state = StateStopped
	h.mu.Unlock()
	h.logger.Info("", "host_stopped", "host orchestrator stopped", nil)
	return nil
}

// Stop is the programmatic shutdown trigger: it unblocks a pending Start
// exactly once. Calling Stop before Start or after Stopped is a no-op: the
// state check runs under the host's mutex before the channel is ever
// touched, so a premature Stop can't pre-arm the close for a Start that
// hasn't happened yet.
func (h *Host) Stop() {
	h.mu.Lock()
	if h.state != StateStarted {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	h.stopOne.Do(func() {
		close(h.stopped)
	})
}
