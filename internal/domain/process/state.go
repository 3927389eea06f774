// Package process provides the small lifecycle-state value type the
// operator TUI renders per registered plugin. A plugin has no OS process
// of its own (it runs in-process, loaded via the Go plugin package), but
// the dashboard still distinguishes the same five phases a supervised
// process would go through, mapped onto a plugin's registration and
// worker-loop lifecycle: not yet registered, registering, ticking its
// probe normally, draining on shutdown, or restart-exhausted.
package process

// State represents the observed lifecycle state of a registered plugin,
// as surfaced to the operator dashboard.
type State int

// Plugin state constants.
const (
	// StateStopped indicates the plugin is not yet registered, or has been
	// freed.
	StateStopped State = iota
	// StateStarting indicates the plugin's Init hook is running.
	StateStarting
	// StateRunning indicates the plugin's worker loop is ticking its probe
	// normally.
	StateRunning
	// StateStopping indicates the host is draining and the plugin's worker
	// loop is winding down.
	StateStopping
	// StateFailed indicates the plugin's worker loop exhausted its restart
	// policy and stopped retrying.
	StateFailed
)

// String returns the string representation of the State.
//
// Returns:
//   - string: human-readable state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the state is terminal (stopped or failed).
//
// Returns:
//   - bool: true if the plugin has reached a terminal state.
func (s State) IsTerminal() bool {
	return s == StateStopped || s == StateFailed
}

// IsActive returns true if the plugin is starting or running.
//
// Returns:
//   - bool: true if the plugin is currently active.
func (s State) IsActive() bool {
	return s == StateStarting || s == StateRunning
}
