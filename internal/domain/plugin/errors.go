package plugin

import "errors"

// Error kind sentinels, matching the numeric error-kind table of SPEC_FULL
// §7. Each is wrapped with context at the call site via fmt.Errorf("%w").
var (
	// ErrBadArgument indicates a null or malformed argument from the driver.
	ErrBadArgument = errors.New("plugin: bad argument")
	// ErrLibraryOpen indicates the shared library could not be found or opened.
	ErrLibraryOpen = errors.New("plugin: library open failed")
	// ErrSymbolMissing indicates a required symbol is absent or mistyped.
	ErrSymbolMissing = errors.New("plugin: required symbol missing")
	// ErrPanic indicates plugin code panicked across the invocation boundary.
	ErrPanic = errors.New("plugin: panic recovered across boundary")
	// ErrLoggerSetup indicates the log bridge failed to install.
	ErrLoggerSetup = errors.New("plugin: logger bridge install failed")
	// ErrAlreadyLogging indicates a second log bridge install was attempted.
	ErrAlreadyLogging = errors.New("plugin: log bridge already installed")
)

// Code returns the stable numeric error-kind code for err, or 0 if err does
// not match any known kind (the caller treats 0 as "uncategorized", never
// as success, since success is communicated by a nil error separately).
//
// Params:
//   - err: the error to classify.
//
// Returns:
//   - int32: the SPEC_FULL §7 error-kind code.
func Code(err error) int32 {
	switch {
	case errors.Is(err, ErrBadArgument):
		return 1
	case errors.Is(err, ErrLibraryOpen):
		return 2
	case errors.Is(err, ErrSymbolMissing):
		return 3
	case errors.Is(err, ErrPanic):
		return 5
	case errors.Is(err, ErrLoggerSetup):
		return 6
	default:
		return 0
	}
}
