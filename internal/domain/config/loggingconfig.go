// Package config provides domain value objects for host configuration.
package config

// LoggingConfig defines global logging defaults.
// It specifies the base directory and default settings inherited by the
// daemon's own writers (console, JSON, file) configured in
// internal/infrastructure/observability/logging/daemon.
type LoggingConfig struct {
	// Defaults specifies default logging settings inherited by writers.
	Defaults LogDefaults
	// BaseDir specifies the base directory for all log files.
	BaseDir string
}

// DefaultLoggingConfig returns a LoggingConfig with sensible defaults.
//
// Returns:
//   - LoggingConfig: a configuration with base directory and default settings.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		BaseDir: "/var/log/hostd",
		Defaults: LogDefaults{
			TimestampFormat: "iso8601",
			Rotation:        DefaultRotationConfig(),
		},
	}
}
