// Package bootstrap provides Wire dependency injection for the daemon.
// This file contains custom providers that require conditional logic
// or special handling beyond simple constructor calls.
package bootstrap

import (
	appconfig "github.com/kodflow/hostd/internal/application/config"
	domainconfig "github.com/kodflow/hostd/internal/domain/config"
	domainlogging "github.com/kodflow/hostd/internal/domain/logging"
	domainmetrics "github.com/kodflow/hostd/internal/domain/metrics"
	"github.com/kodflow/hostd/internal/infrastructure/metrics"
	"github.com/kodflow/hostd/internal/infrastructure/metrics/scratch"
	"github.com/kodflow/hostd/internal/infrastructure/observability/logging/daemon"
	"github.com/kodflow/hostd/internal/infrastructure/pluginhost"
)

// LoadConfig loads configuration from the given path using the provided loader.
//
// Params:
//   - loader: the configuration loader interface.
//   - configPath: the path to the configuration file.
//
// Returns:
//   - *domainconfig.Config: the loaded configuration.
//   - error: any error during loading.
func LoadConfig(loader appconfig.Loader, configPath string) (*domainconfig.Config, error) {
	return loader.Load(configPath)
}

// ProvideDaemonLogger builds the daemon's own event logger. Writer
// configuration for the daemon logger is not yet exposed through the YAML
// schema, so it always builds from DefaultDaemonLogging, writing any
// file/json sinks relative to the loaded config's log base directory. The
// console writer's level follows the -v/--verbose flag.
//
// Params:
//   - cfg: the loaded configuration.
//
// Returns:
//   - domainlogging.Logger: the daemon event logger.
//   - error: any error constructing a configured writer.
func ProvideDaemonLogger(cfg *domainconfig.Config) (domainlogging.Logger, error) {
	daemonCfg := domainconfig.DefaultDaemonLogging()
	if verbose {
		for i := range daemonCfg.Writers {
			daemonCfg.Writers[i].Level = "debug"
		}
	}
	return daemon.BuildLogger(daemonCfg, cfg.Logging.BaseDir)
}

// ProvidePluginLoader constructs the infrastructure plugin loader (C3).
//
// Returns:
//   - *pluginhost.Loader: ready to Load shared libraries.
func ProvidePluginLoader() *pluginhost.Loader {
	return pluginhost.NewLoader()
}

// ProvideSystemCollector constructs the stdlib-only /proc collector the
// metrics registry samples for host-wide CPU and memory gauges.
//
// Returns:
//   - domainmetrics.SystemCollector: the collector.
func ProvideSystemCollector() domainmetrics.SystemCollector {
	return scratch.NewScratchProbe()
}

// ProvideMetricsRegistry builds the process-wide metrics registry (A4).
//
// Params:
//   - cfg: the loaded configuration, supplying the env label.
//   - collector: the system metrics collector.
//
// Returns:
//   - *metrics.Registry: the registry.
//   - error: non-nil if the exporter could not be constructed.
func ProvideMetricsRegistry(cfg *domainconfig.Config, collector domainmetrics.SystemCollector) (*metrics.Registry, error) {
	return metrics.NewRegistry(cfg.Metrics.Env, collector)
}
