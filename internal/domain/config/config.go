// Package config provides domain value objects for host configuration.
package config

import "github.com/kodflow/hostd/internal/domain/shared"

const (
	// defaultMaxLogFiles is the default number of rotated log files to keep.
	defaultMaxLogFiles int = 10
	// defaultHealthPort is the default port for the health HTTP listener (C6).
	defaultHealthPort int = 7979
	// defaultHealthBasePath is the default route prefix for the health listener.
	defaultHealthBasePath string = "/health"
	// defaultMarginSeconds is the default probe staleness margin, in seconds.
	defaultMarginSeconds int = 5
)

// Config represents the root configuration structure.
// It contains global settings, logging configuration, health listener
// settings, metrics settings, and the plugin list to load at startup.
type Config struct {
	// Version specifies the configuration schema version for compatibility.
	Version string
	// Logging defines global logging defaults for the daemon's own writers.
	Logging LoggingConfig
	// Health defines the health HTTP listener's basepath, port, and default
	// staleness margin (C6).
	Health HealthConfig
	// Metrics defines the metrics exporter and environment label (A4).
	Metrics MetricsConfig
	// Plugins contains the ordered list of plugins to load at startup.
	Plugins []PluginConfig
	// ConfigPath stores the path from which this configuration was loaded.
	ConfigPath string
}

// HealthConfig configures the health HTTP listener (C6).
type HealthConfig struct {
	// BasePath is the route prefix under which /alive, /ready, /metrics, and
	// /kill are served.
	BasePath string
	// Port is the TCP port the listener binds to.
	Port int
	// DefaultMargin is the staleness margin applied to a probe that does not
	// specify its own.
	DefaultMargin shared.Duration
}

// MetricsConfig configures the metrics exporter (A4).
type MetricsConfig struct {
	// Exporter names the metrics exporter backend (e.g. "prometheus").
	Exporter string
	// Env is the environment label attached to exported metric series.
	Env string
}

// PluginConfig describes one plugin to load and serve.
type PluginConfig struct {
	// Name is the logical name the plugin is registered and served under.
	Name string
	// LibraryPath is the path to the shared library implementing the plugin.
	// If empty, the loader derives a path from Name.
	LibraryPath string
	// HTTPPort is the port of the per-plugin HTTP listener (C7).
	HTTPPort int
	// Route is the HTTP path segment the plugin's Process hook is served
	// under, appended after its logical name.
	Route string
	// Restart governs whether a crashed worker loop for this plugin is
	// respawned (A5).
	Restart RestartConfig
}

// FindPlugin returns a plugin configuration by logical name.
//
// Params:
//   - name: plugin name to find
//
// Returns:
//   - *PluginConfig: plugin configuration or nil if not found
func (c *Config) FindPlugin(name string) *PluginConfig {
	// search plugins by name
	for i := range c.Plugins {
		// check if plugin name matches
		if c.Plugins[i].Name == name {
			// return matching plugin
			return &c.Plugins[i]
		}
	}
	// no match found
	return nil
}

// Validate validates the configuration.
//
// Returns:
//   - error: validation error if any
func (c *Config) Validate() error {
	// delegate to validation function
	return Validate(c)
}

// GetPluginLogPath returns the full path for a plugin's log file.
//
// Params:
//   - pluginName: name of the plugin
//   - logFile: name of the log file
//
// Returns:
//   - string: full path to the plugin log file
func (c *Config) GetPluginLogPath(pluginName, logFile string) string {
	// construct path from base directory, plugin name, and log file
	return c.Logging.BaseDir + "/" + pluginName + "/" + logFile
}

// NewConfig creates a new Config with the provided plugins.
//
// Params:
//   - plugins: list of plugin configurations to load.
//
// Returns:
//   - *Config: configuration with the provided plugins and default settings.
func NewConfig(plugins []PluginConfig) *Config {
	// create config with version 1 and defaults
	return &Config{
		Version: "1",
		Logging: DefaultLoggingConfig(),
		Health:  DefaultHealthConfig(),
		Metrics: DefaultMetricsConfig(),
		Plugins: plugins,
	}
}

// DefaultHealthConfig returns a HealthConfig with sensible defaults.
//
// Returns:
//   - HealthConfig: the default health listener configuration.
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		BasePath:      defaultHealthBasePath,
		Port:          defaultHealthPort,
		DefaultMargin: shared.Seconds(defaultMarginSeconds),
	}
}

// DefaultMetricsConfig returns a MetricsConfig with sensible defaults.
//
// Returns:
//   - MetricsConfig: the default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Exporter: "prometheus",
		Env:      "development",
	}
}

// DefaultConfig returns a new Config with default values.
//
// Returns:
//   - *Config: configuration with sensible defaults for logging, health, and metrics.
func DefaultConfig() *Config {
	// return config with default values
	return &Config{
		Version: "1",
		Logging: LoggingConfig{
			BaseDir: "/var/log/hostd",
			Defaults: LogDefaults{
				TimestampFormat: "iso8601",
				Rotation: RotationConfig{
					MaxSize:  "100MB",
					MaxFiles: defaultMaxLogFiles,
				},
			},
		},
		Health:  DefaultHealthConfig(),
		Metrics: DefaultMetricsConfig(),
	}
}
