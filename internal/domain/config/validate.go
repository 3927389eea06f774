// Package config provides domain value objects for host configuration.
package config

import (
	"errors"
	"fmt"
)

// maxTCPPort is the highest valid TCP port number.
const maxTCPPort int = 65535

// Validation errors.
var (
	// ErrNoPlugins indicates no plugins are configured.
	ErrNoPlugins error = errors.New("no plugins configured")
	// ErrEmptyPluginName indicates a plugin has no name.
	ErrEmptyPluginName error = errors.New("plugin name is required")
	// ErrDuplicatePluginName indicates duplicate plugin names.
	ErrDuplicatePluginName error = errors.New("duplicate plugin name")
	// ErrInvalidHTTPPort indicates a plugin's HTTP port is out of range.
	ErrInvalidHTTPPort error = errors.New("plugin http port must be between 1 and 65535")
	// ErrInvalidHealthPort indicates the health listener's port is out of range.
	ErrInvalidHealthPort error = errors.New("health port must be between 1 and 65535")
)

// Validate validates the configuration.
//
// Params:
//   - cfg: configuration to validate
//
// Returns:
//   - error: validation error if any
func Validate(cfg *Config) error {
	// Check if at least one plugin is configured.
	if len(cfg.Plugins) == 0 {
		// Return error when no plugins are defined.
		return ErrNoPlugins
	}

	// Validate the health listener port.
	if cfg.Health.Port <= 0 || cfg.Health.Port > maxTCPPort {
		return ErrInvalidHealthPort
	}

	seen := make(map[string]bool, len(cfg.Plugins))

	// Iterate through all plugins to validate each one.
	for i := range cfg.Plugins {
		plg := &cfg.Plugins[i]

		// Validate the plugin configuration.
		if err := validatePlugin(plg); err != nil {
			// Return wrapped error with plugin name context.
			return fmt.Errorf("plugin %q: %w", plg.Name, err)
		}

		// Check for duplicate plugin names.
		if seen[plg.Name] {
			// Return error for duplicate plugin name.
			return fmt.Errorf("%w: %s", ErrDuplicatePluginName, plg.Name)
		}
		seen[plg.Name] = true
	}

	// Return nil when all validations pass.
	return nil
}

// validatePlugin validates a single plugin configuration.
//
// Params:
//   - plg: plugin configuration to validate
//
// Returns:
//   - error: validation error if any
func validatePlugin(plg *PluginConfig) error {
	// Check if plugin name is provided.
	if plg.Name == "" {
		// Return error when plugin name is empty.
		return ErrEmptyPluginName
	}

	// Check if the plugin's HTTP port is in range. Zero means "no per-plugin
	// listener for this plugin", which is valid.
	if plg.HTTPPort != 0 && (plg.HTTPPort < 0 || plg.HTTPPort > maxTCPPort) {
		// Return error when HTTP port is out of range.
		return ErrInvalidHTTPPort
	}

	// Return nil when all validations pass.
	return nil
}
