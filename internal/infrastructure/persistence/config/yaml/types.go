// Package yaml provides YAML configuration loading infrastructure.
// It handles parsing and conversion of YAML configuration files to domain objects.
package yaml

import (
	"time"

	"github.com/kodflow/hostd/internal/domain/config"
	"github.com/kodflow/hostd/internal/domain/shared"
)

// Duration is a wrapper around time.Duration for YAML serialization.
// It enables parsing of human-readable duration strings like "30s" or "5m" from YAML files.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
// It parses a string duration value from YAML into a Duration type.
//
// Params:
//   - unmarshal: callback function to unmarshal the YAML value
//
// Returns:
//   - error: parsing error if the duration string is invalid
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string

	// Unmarshal the YAML value into a string
	if err := unmarshal(&s); err != nil {
		// Return error if unmarshaling fails
		return err
	}

	parsed, err := time.ParseDuration(s)

	// Check if duration parsing was successful
	if err != nil {
		// Return parsing error
		return err
	}

	*d = Duration(parsed)

	// Return nil on success
	return nil
}

// MarshalText implements encoding.TextMarshaler for Duration.
// It converts a Duration back to a byte slice for serialization.
// This approach is used instead of yaml.Marshaler to avoid returning interface{}.
//
// Returns:
//   - []byte: the duration as a formatted string in bytes
//   - error: always nil for this implementation
func (d *Duration) MarshalText() ([]byte, error) {
	// Return the duration as a formatted string in bytes
	return []byte(time.Duration(*d).String()), nil
}

// ConfigDTO is the YAML representation of the root configuration.
// It serves as the data transfer object for parsing the main configuration file.
type ConfigDTO struct {
	Version string           `yaml:"version"`
	Logging LoggingConfigDTO `yaml:"logging"`
	Health  HealthConfigDTO  `yaml:"health"`
	Metrics MetricsConfigDTO `yaml:"metrics"`
	Plugins []PluginConfigDTO `yaml:"plugins"`
}

// HealthConfigDTO is the YAML representation of the health listener configuration.
type HealthConfigDTO struct {
	BasePath      string   `yaml:"base_path,omitempty"`
	Port          int      `yaml:"port,omitempty"`
	DefaultMargin Duration `yaml:"default_margin,omitempty"`
}

// MetricsConfigDTO is the YAML representation of the metrics exporter configuration.
type MetricsConfigDTO struct {
	Exporter string `yaml:"exporter,omitempty"`
	Env      string `yaml:"env,omitempty"`
}

// PluginConfigDTO is the YAML representation of a single plugin entry.
type PluginConfigDTO struct {
	Name        string           `yaml:"name"`
	LibraryPath string           `yaml:"library_path,omitempty"`
	HTTPPort    int              `yaml:"http_port,omitempty"`
	Route       string           `yaml:"route,omitempty"`
	Restart     RestartConfigDTO `yaml:"restart,omitempty"`
}

// RestartConfigDTO is the YAML representation of restart configuration.
// It defines the restart policy and timing parameters for worker-loop recovery.
type RestartConfigDTO struct {
	Policy     string   `yaml:"policy"`
	MaxRetries int      `yaml:"max_retries,omitempty"`
	Delay      Duration `yaml:"delay,omitempty"`
	DelayMax   Duration `yaml:"delay_max,omitempty"`
}

// LoggingConfigDTO is the YAML representation of logging configuration.
// It contains global logging settings including defaults and base directory.
type LoggingConfigDTO struct {
	Defaults LogDefaultsDTO `yaml:"defaults"`
	BaseDir  string         `yaml:"base_dir"`
}

// LogDefaultsDTO is the YAML representation of logging defaults.
// It defines default timestamp format and rotation settings for all log streams.
type LogDefaultsDTO struct {
	TimestampFormat string            `yaml:"timestamp_format"`
	Rotation        RotationConfigDTO `yaml:"rotation"`
}

// RotationConfigDTO is the YAML representation of rotation configuration.
// It specifies log file rotation parameters like size limits and retention.
type RotationConfigDTO struct {
	MaxSize  string `yaml:"max_size"`
	MaxAge   string `yaml:"max_age"`
	MaxFiles int    `yaml:"max_files"`
	Compress bool   `yaml:"compress"`
}

// ToDomain converts ConfigDTO to domain Config.
// It transforms the YAML data transfer object into the domain model.
//
// Params:
//   - configPath: the filesystem path of the loaded configuration file
//
// Returns:
//   - *config.Config: the converted domain configuration object
func (c *ConfigDTO) ToDomain(configPath string) *config.Config {
	plugins := make([]config.PluginConfig, 0, len(c.Plugins))

	// Convert each plugin configuration to domain model
	for i := range c.Plugins {
		plugins = append(plugins, c.Plugins[i].ToDomain())
	}

	// Return the fully converted configuration
	return &config.Config{
		Version:    c.Version,
		ConfigPath: configPath,
		Logging:    c.Logging.ToDomain(),
		Health:     c.Health.ToDomain(),
		Metrics:    c.Metrics.ToDomain(),
		Plugins:    plugins,
	}
}

// ToDomain converts HealthConfigDTO to domain HealthConfig.
//
// Returns:
//   - config.HealthConfig: the converted domain health listener configuration
func (h *HealthConfigDTO) ToDomain() config.HealthConfig {
	return config.HealthConfig{
		BasePath:      h.BasePath,
		Port:          h.Port,
		DefaultMargin: shared.FromTimeDuration(time.Duration(h.DefaultMargin)),
	}
}

// ToDomain converts MetricsConfigDTO to domain MetricsConfig.
//
// Returns:
//   - config.MetricsConfig: the converted domain metrics configuration
func (m *MetricsConfigDTO) ToDomain() config.MetricsConfig {
	return config.MetricsConfig{
		Exporter: m.Exporter,
		Env:      m.Env,
	}
}

// ToDomain converts PluginConfigDTO to domain PluginConfig.
//
// Returns:
//   - config.PluginConfig: the converted domain plugin configuration
func (p *PluginConfigDTO) ToDomain() config.PluginConfig {
	return config.PluginConfig{
		Name:        p.Name,
		LibraryPath: p.LibraryPath,
		HTTPPort:    p.HTTPPort,
		Route:       p.Route,
		Restart:     p.Restart.ToDomain(),
	}
}

// ToDomain converts RestartConfigDTO to domain RestartConfig.
// It transforms restart policy settings to the domain model format.
//
// Returns:
//   - config.RestartConfig: the converted domain restart configuration
func (r *RestartConfigDTO) ToDomain() config.RestartConfig {
	// Return the converted restart configuration with policy and timing
	return config.RestartConfig{
		Policy:     config.RestartPolicy(r.Policy),
		MaxRetries: r.MaxRetries,
		Delay:      shared.FromTimeDuration(time.Duration(r.Delay)),
		DelayMax:   shared.FromTimeDuration(time.Duration(r.DelayMax)),
	}
}

// ToDomain converts LoggingConfigDTO to domain LoggingConfig.
// It transforms global logging settings to the domain model format.
//
// Returns:
//   - config.LoggingConfig: the converted domain logging configuration
func (l *LoggingConfigDTO) ToDomain() config.LoggingConfig {
	// Return the converted logging configuration with base directory and defaults
	return config.LoggingConfig{
		BaseDir:  l.BaseDir,
		Defaults: l.Defaults.ToDomain(),
	}
}

// ToDomain converts LogDefaultsDTO to domain LogDefaults.
// It maps default logging parameters to the domain model format.
//
// Returns:
//   - config.LogDefaults: the converted domain log defaults
func (l *LogDefaultsDTO) ToDomain() config.LogDefaults {
	// Return the converted log defaults with format and rotation settings
	return config.LogDefaults{
		TimestampFormat: l.TimestampFormat,
		Rotation:        l.Rotation.ToDomain(),
	}
}

// ToDomain converts RotationConfigDTO to domain RotationConfig.
// It transforms log rotation settings to the domain model format.
//
// Returns:
//   - config.RotationConfig: the converted domain rotation configuration
func (r *RotationConfigDTO) ToDomain() config.RotationConfig {
	// Return the converted rotation configuration with size and retention limits
	return config.RotationConfig{
		MaxSize:  r.MaxSize,
		MaxAge:   r.MaxAge,
		MaxFiles: r.MaxFiles,
		Compress: r.Compress,
	}
}
