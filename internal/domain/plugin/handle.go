package plugin

import (
	"fmt"
	"sync"
)

// Capabilities is the capability record produced at load time: a fixed
// set of function values resolved from the plugin's symbol table. Every
// call into the plugin goes through this struct rather than a
// language-level interface, since the boundary is a fixed function-pointer
// ABI, not a Go interface (see SPEC_FULL §9, "Dynamic dispatch across the
// plugin boundary").
type Capabilities struct {
	Name       func() string
	Version    func() string
	InitLogger func(LogParam)
	Init       func(int32) int32
	Process    func(int32) int32
}

// Handle owns one loaded plugin: its logical name and resolved
// Capabilities. The underlying library object (a *plugin.Plugin, kept by
// the infrastructure loader) is not referenced here; the domain layer only
// ever sees the resolved function values, matching the "symbols are
// validity-tied to the library, carried together" invariant from SPEC_FULL
// §4.3 — the infrastructure package is the one place that holds both.
type Handle struct {
	name string
	caps Capabilities

	mu              sync.Mutex
	loggerInstalled bool
}

// NewHandle wraps a resolved capability record for a named plugin.
//
// Params:
//   - name: the logical name the plugin was registered under.
//   - caps: the fully resolved capability record.
//
// Returns:
//   - *Handle: a ready-to-use plugin handle.
func NewHandle(name string, caps Capabilities) *Handle {
	return &Handle{name: name, caps: caps}
}

// Name returns the plugin's registered logical name (not the name reported
// by the plugin's own Name() capability, which may differ).
//
// Returns:
//   - string: the logical registration name.
func (h *Handle) Name() string {
	return h.name
}

// InstallLogger installs the log bridge exactly once per handle. A second
// call is a no-op that returns ErrAlreadyLogging so the caller can log a
// complaint; it never panics and never re-installs.
//
// Params:
//   - param: the bridge to install.
//
// Returns:
//   - error: ErrAlreadyLogging on a repeat call, otherwise nil.
func (h *Handle) InstallLogger(param LogParam) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	// Idempotent-with-warning per SPEC_FULL §4.2.
	if h.loggerInstalled {
		return ErrAlreadyLogging
	}
	h.caps.InitLogger(param)
	h.loggerInstalled = true
	return nil
}

// Init invokes the plugin's lifecycle init hook, recovering any panic and
// translating it into ErrPanic so a caller can trigger a coordinated
// shutdown instead of taking the whole process down uncontrolled.
//
// Params:
//   - arg: the opaque init argument.
//
// Returns:
//   - int32: the plugin's reported status code.
//   - error: ErrPanic if the plugin panicked.
func (h *Handle) Init(arg int32) (result int32, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: plugin %q Init(%d): %v", ErrPanic, h.name, arg, r)
		}
	}()
	return h.caps.Init(arg), nil
}

// Process invokes the plugin's per-request compute hook under the same
// panic-recovery discipline as Init. Process must be safe for concurrent
// invocation; the host does not serialize calls into it.
//
// Params:
//   - arg: the opaque request argument.
//
// Returns:
//   - int32: the plugin's reported result.
//   - error: ErrPanic if the plugin panicked.
func (h *Handle) Process(arg int32) (result int32, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: plugin %q Process(%d): %v", ErrPanic, h.name, arg, r)
		}
	}()
	return h.caps.Process(arg), nil
}

// PluginName returns the identifier the plugin itself reports via its Name
// capability, distinct from the logical registration name.
//
// Returns:
//   - string: the plugin-reported name.
func (h *Handle) PluginName() string {
	return h.caps.Name()
}

// PluginVersion returns the version the plugin itself reports.
//
// Returns:
//   - string: the plugin-reported version.
func (h *Handle) PluginVersion() string {
	return h.caps.Version()
}
