// Package pluginhost resolves logical plugin names to shared-library paths,
// opens them with the standard library's plugin package, and resolves the
// required symbol table into a domain plugin.Handle.
package pluginhost

import (
	goplugin "plugin"
	"runtime"

	"fmt"

	domainplugin "github.com/kodflow/hostd/internal/domain/plugin"
)

// libraryFilename maps a logical plugin name to a platform-specific shared
// library filename. Windows .dll plugins are not supported by the Go
// plugin package and are out of scope (SPEC_FULL §4.3).
//
// Params:
//   - logicalName: the plugin's logical name as registered by the caller.
//
// Returns:
//   - string: the expected shared library filename.
func libraryFilename(logicalName string) string {
	switch runtime.GOOS {
	case "darwin":
		return fmt.Sprintf("lib%s.dylib", logicalName)
	default:
		return fmt.Sprintf("lib%s.so", logicalName)
	}
}

// Loader opens Go-native plugin shared libraries and resolves their
// required symbol table into domain plugin.Handle values.
type Loader struct{}

// NewLoader creates a plugin Loader.
//
// Returns:
//   - *Loader: a ready-to-use loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load opens the shared library at libraryPath (or, if empty, the file
// derived from logicalName under the default search convention) and
// resolves the five required symbols into a capability record. Resolution
// failure of any required symbol fails the whole load; no partial handle
// is ever returned.
//
// Params:
//   - logicalName: the name to register the plugin under.
//   - libraryPath: explicit path to the shared library, or "" to derive one
//     from logicalName via libraryFilename.
//
// Returns:
//   - *domainplugin.Handle: the loaded, fully resolved plugin handle.
//   - error: wraps domainplugin.ErrLibraryOpen or domainplugin.ErrSymbolMissing.
func (l *Loader) Load(logicalName, libraryPath string) (*domainplugin.Handle, error) {
	path := libraryPath
	if path == "" {
		path = libraryFilename(logicalName)
	}

	lib, err := goplugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %v", domainplugin.ErrLibraryOpen, path, err)
	}

	caps, err := resolveCapabilities(lib)
	if err != nil {
		// No partial handle: a symbol-resolution failure discards the library
		// reference entirely (the handle is never constructed).
		return nil, err
	}

	return domainplugin.NewHandle(logicalName, caps), nil
}

// resolveCapabilities looks up and type-asserts every required symbol.
//
// Params:
//   - lib: the opened plugin library.
//
// Returns:
//   - domainplugin.Capabilities: the fully resolved capability record.
//   - error: wraps domainplugin.ErrSymbolMissing naming the first missing
//     or mistyped symbol.
func resolveCapabilities(lib *goplugin.Plugin) (domainplugin.Capabilities, error) {
	name, err := lookupFunc[func() string](lib, "Name")
	if err != nil {
		return domainplugin.Capabilities{}, err
	}
	version, err := lookupFunc[func() string](lib, "Version")
	if err != nil {
		return domainplugin.Capabilities{}, err
	}
	initLogger, err := lookupFunc[func(domainplugin.LogParam)](lib, "InitLogger")
	if err != nil {
		return domainplugin.Capabilities{}, err
	}
	initFn, err := lookupFunc[func(int32) int32](lib, "Init")
	if err != nil {
		return domainplugin.Capabilities{}, err
	}
	process, err := lookupFunc[func(int32) int32](lib, "Process")
	if err != nil {
		return domainplugin.Capabilities{}, err
	}

	return domainplugin.Capabilities{
		Name:       name,
		Version:    version,
		InitLogger: initLogger,
		Init:       initFn,
		Process:    process,
	}, nil
}

// lookupFunc resolves symbolName from lib and type-asserts it to T. A
// missing symbol or a type mismatch are both reported as SymbolMissing,
// since a mistyped export is just as unusable to the host as an absent
// one.
func lookupFunc[T any](lib *goplugin.Plugin, symbolName string) (T, error) {
	var zero T
	sym, err := lib.Lookup(symbolName)
	if err != nil {
		return zero, fmt.Errorf("%w: %s: %v", domainplugin.ErrSymbolMissing, symbolName, err)
	}
	fn, ok := sym.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s: unexpected type %T", domainplugin.ErrSymbolMissing, symbolName, sym)
	}
	return fn, nil
}
