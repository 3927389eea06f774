// Package yaml provides YAML configuration loading infrastructure.
package yaml

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kodflow/hostd/internal/domain/config"
)

// Default configuration values.
const (
	// defaultVersion is the default configuration schema version.
	defaultVersion string = "1"
	// defaultBaseDir is the default base directory for log files.
	defaultBaseDir string = "/var/log/hostd"
	// defaultTimestampFormat is the default timestamp format for logs.
	defaultTimestampFormat string = "iso8601"
	// defaultMaxSize is the default maximum log file size.
	defaultMaxSize string = "100MB"
	// defaultMaxFiles is the default maximum number of rotated log files.
	defaultMaxFiles int = 10
	// defaultMaxRetries is the default maximum restart retries.
	defaultMaxRetries int = 3
	// defaultRestartDelay is the default delay between restart attempts.
	defaultRestartDelay string = "5s"
	// defaultHealthBasePath is the default route prefix for the health listener.
	defaultHealthBasePath string = "/health"
	// defaultHealthPort is the default port for the health HTTP listener.
	defaultHealthPort int = 7979
	// defaultHealthMargin is the default probe staleness margin.
	defaultHealthMargin string = "5s"
	// defaultMetricsExporter is the default metrics exporter backend.
	defaultMetricsExporter string = "prometheus"
)

// ErrNoConfigurationLoaded is returned when Reload is called without a prior Load.
var ErrNoConfigurationLoaded error = errors.New("no configuration loaded")

// Loader loads configuration from YAML files.
// It maintains state about the last loaded configuration path so that
// Reload can re-read it; the daemon's SIGHUP handler does not call Reload.
type Loader struct {
	lastPath string
}

// New creates a new YAML configuration loader.
//
// Returns:
//   - *Loader: a new loader instance ready to load configurations
func New() *Loader {
	// Initialize and return a new loader with default state.
	return &Loader{}
}

// Load reads and parses a configuration file from the given path.
//
// Params:
//   - path: absolute or relative path to the YAML configuration file
//
// Returns:
//   - *config.Config: parsed and validated configuration
//   - error: any error during reading, parsing, or validation
func (l *Loader) Load(path string) (*config.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - config path is trusted input
	// Check if file reading failed.
	if err != nil {
		// Return wrapped error for context.
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Parse the YAML data into domain configuration.
	cfg, err := l.Parse(data)
	// Check if parsing failed.
	if err != nil {
		// Return the parse error as-is.
		return nil, err
	}

	// Store the config path in the configuration and loader state.
	cfg.ConfigPath = path
	l.lastPath = path

	// Return the successfully parsed configuration.
	return cfg, nil
}

// Parse parses configuration from YAML bytes.
//
// Params:
//   - data: raw YAML configuration bytes
//
// Returns:
//   - *config.Config: parsed and validated configuration
//   - error: any error during parsing or validation
func (l *Loader) Parse(data []byte) (*config.Config, error) {
	var dto ConfigDTO

	// Unmarshal YAML data into the DTO structure.
	if err := yaml.Unmarshal(data, &dto); err != nil {
		// Return wrapped error for context.
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	// Apply default values to unset fields.
	applyDefaults(&dto)

	// Convert DTO to domain model.
	cfg := dto.ToDomain("")

	// Validate the configuration against domain rules.
	if err := config.Validate(cfg); err != nil {
		// Return wrapped validation error.
		return nil, fmt.Errorf("validating config: %w", err)
	}

	// Return the validated configuration.
	return cfg, nil
}

// Reload reloads configuration from the last loaded path.
//
// Returns:
//   - *config.Config: reloaded and validated configuration
//   - error: error if no configuration was previously loaded or reload fails
func (l *Loader) Reload() (*config.Config, error) {
	// Check if a configuration was previously loaded.
	if l.lastPath == "" {
		// Return error when no previous load exists.
		return nil, fmt.Errorf("%w", ErrNoConfigurationLoaded)
	}
	// Reload from the stored path.
	return l.Load(l.lastPath)
}

// applyDefaults sets default values for unset configuration options.
//
// Params:
//   - cfg: configuration DTO to apply defaults to
func applyDefaults(cfg *ConfigDTO) {
	// Set default version if not specified.
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}

	// Set default logging base directory if not specified.
	if cfg.Logging.BaseDir == "" {
		cfg.Logging.BaseDir = defaultBaseDir
	}

	// Set default timestamp format if not specified.
	if cfg.Logging.Defaults.TimestampFormat == "" {
		cfg.Logging.Defaults.TimestampFormat = defaultTimestampFormat
	}

	// Set default maximum log file size if not specified.
	if cfg.Logging.Defaults.Rotation.MaxSize == "" {
		cfg.Logging.Defaults.Rotation.MaxSize = defaultMaxSize
	}

	// Set default maximum rotated files if not specified.
	if cfg.Logging.Defaults.Rotation.MaxFiles == 0 {
		cfg.Logging.Defaults.Rotation.MaxFiles = defaultMaxFiles
	}

	applyHealthDefaults(&cfg.Health)
	applyMetricsDefaults(&cfg.Metrics)

	// Apply defaults to each plugin configuration.
	for i := range cfg.Plugins {
		applyPluginDefaults(&cfg.Plugins[i])
	}
}

// applyHealthDefaults sets default values for the health listener configuration.
//
// Params:
//   - health: health configuration DTO to apply defaults to
func applyHealthDefaults(health *HealthConfigDTO) {
	// Set default basepath if not specified.
	if health.BasePath == "" {
		health.BasePath = defaultHealthBasePath
	}
	// Set default port if not specified.
	if health.Port == 0 {
		health.Port = defaultHealthPort
	}
	// Set default staleness margin if not specified.
	if health.DefaultMargin == 0 {
		parsed, _ := parseDuration(defaultHealthMargin)
		health.DefaultMargin = parsed
	}
}

// applyMetricsDefaults sets default values for the metrics exporter configuration.
//
// Params:
//   - metrics: metrics configuration DTO to apply defaults to
func applyMetricsDefaults(metrics *MetricsConfigDTO) {
	// Set default exporter if not specified.
	if metrics.Exporter == "" {
		metrics.Exporter = defaultMetricsExporter
	}
}

// applyPluginDefaults applies default values to a plugin configuration.
//
// Params:
//   - plugin: plugin configuration DTO to apply defaults to
func applyPluginDefaults(plugin *PluginConfigDTO) {
	// Apply restart configuration defaults.
	applyRestartDefaults(&plugin.Restart)
}

// applyRestartDefaults applies default values to restart configuration.
//
// Params:
//   - restart: restart configuration DTO to apply defaults to
func applyRestartDefaults(restart *RestartConfigDTO) {
	// Set default restart policy if not specified.
	if restart.Policy == "" {
		restart.Policy = string(config.RestartOnFailure)
	}

	// Set default maximum retries if not specified.
	if restart.MaxRetries == 0 {
		restart.MaxRetries = defaultMaxRetries
	}

	// Set default restart delay if not specified.
	if restart.Delay == 0 {
		parsed, _ := parseDuration(defaultRestartDelay)
		restart.Delay = parsed
	}
}

// parseDuration parses a duration string.
//
// Params:
//   - s: duration string in Go duration format (e.g., "5s", "1m30s")
//
// Returns:
//   - Duration: parsed duration value
//   - error: any error during parsing
func parseDuration(s string) (Duration, error) {
	var duration Duration
	// Use UnmarshalYAML to parse the duration string.
	err := duration.UnmarshalYAML(func(v any) error {
		// Set the string value for parsing.
		if sp, ok := v.(*string); ok {
			*sp = s
		}
		// Return nil to indicate successful unmarshaling.
		return nil
	})
	// Return the parsed duration and any error.
	return duration, err
}
