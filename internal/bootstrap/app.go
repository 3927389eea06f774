// Package bootstrap provides dependency injection wiring using Google Wire.
// It isolates all dependency construction from the main entry point,
// allowing for a minimal main.go and better testability.
package bootstrap

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kodflow/hostd/internal/application/healthhttp"
	"github.com/kodflow/hostd/internal/application/host"
	"github.com/kodflow/hostd/internal/application/pluginhttp"
	"github.com/kodflow/hostd/internal/application/shutdown"
	"github.com/kodflow/hostd/internal/application/workerloop"
	domainconfig "github.com/kodflow/hostd/internal/domain/config"
	"github.com/kodflow/hostd/internal/domain/healthprobe"
	domainlogging "github.com/kodflow/hostd/internal/domain/logging"
	domainplugin "github.com/kodflow/hostd/internal/domain/plugin"
	"github.com/kodflow/hostd/internal/infrastructure/metrics"
	"github.com/kodflow/hostd/internal/infrastructure/pluginhost"
)

// version is the application version, set at build time via ldflags.
var version string = "dev"

// verbose is set by the -v/--verbose flag; ProvideDaemonLogger reads it to
// pick the console writer's minimum level.
var verbose bool

// defaultLibraryName is the plugin logical name --library falls back to
// when neither a flag nor a configured plugin list supplies one.
const defaultLibraryName = "sample01"

// startedPollInterval is how often Run polls Host.State while waiting for
// it to reach StateStarted, mirroring the wait the Host Orchestrator's own
// tests use around Start.
const startedPollInterval = time.Millisecond

// App holds every dependency Wire injects plus the plugins loaded from
// configuration. It is the root object of the dependency graph.
type App struct {
	Config       *domainconfig.Config
	Logger       domainlogging.Logger
	PluginLoader *pluginhost.Loader
	Metrics      *metrics.Registry
	Host         *host.Host
	Shutdown     *shutdown.Coordinator

	probes map[string]*healthprobe.Probe
}

// NewApp assembles the App struct from Wire-injected dependencies. This is
// the final provider in the dependency graph.
//
// Returns:
//   - *App: the assembled application, not yet running.
func NewApp(cfg *domainconfig.Config, logger domainlogging.Logger, loader *pluginhost.Loader, registry *metrics.Registry, h *host.Host, coordinator *shutdown.Coordinator) *App {
	return &App{
		Config:       cfg,
		Logger:       logger,
		PluginLoader: loader,
		Metrics:      registry,
		Host:         h,
		Shutdown:     coordinator,
		probes:       make(map[string]*healthprobe.Probe),
	}
}

// Run is the main entry point called from cmd/hostd/main.go. It dispatches
// on the start/validate/version subcommand, parses the shared flag set, and
// runs the selected action.
//
// Returns:
//   - int: exit code (0 for success, 1 for error).
func Run() int {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hostd <start|validate|version> [flags]")
		return 1
	}
	cmd := os.Args[1]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", "/etc/hostd/config.yaml", "path to configuration file")
	library := fs.String("library", "", "plugin logical name to load when no config plugin list is given")
	tuiMode := fs.Bool("tui", false, "enable interactive TUI mode")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	fs.BoolVar(&verbose, "verbose", false, "verbose logging")
	_ = fs.Parse(os.Args[2:])

	switch cmd {
	case "version":
		fmt.Printf("hostd %s\n", version)
		return 0
	case "validate":
		if err := validateConfig(*configPath, *library); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Println("config OK")
		return 0
	case "start":
		if err := run(*configPath, *library, *tuiMode); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q; usage: hostd <start|validate|version> [flags]\n", cmd)
		return 1
	}
}

// validateConfig loads and validates configuration without starting the
// host, for the `hostd validate` subcommand.
func validateConfig(configPath, library string) error {
	app, err := InitializeApp(configPath)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	applyLibraryOverride(app.Config, library)
	return app.Config.Validate()
}

// applyLibraryOverride applies --library: when set, it either replaces the
// first configured plugin's name (clearing any explicit library path so it
// is re-derived from the new name) or, if no plugins are configured at
// all, constructs a single plugin entry under that name so `hostd start
// --library foo` works against an otherwise-empty configuration.
func applyLibraryOverride(cfg *domainconfig.Config, library string) {
	if library == "" {
		if len(cfg.Plugins) != 0 {
			return
		}
		library = defaultLibraryName
	}
	if len(cfg.Plugins) == 0 {
		cfg.Plugins = []domainconfig.PluginConfig{{
			Name:    library,
			Restart: domainconfig.DefaultRestartConfig(),
		}}
		return
	}
	cfg.Plugins[0].Name = library
	cfg.Plugins[0].LibraryPath = ""
}

// run wires the application, registers every configured plugin, starts the
// Host Orchestrator and its listeners, and blocks until the Shutdown
// Coordinator reports a trigger.
//
// Params:
//   - configPath: the path to the YAML configuration file.
//   - library: the --library override, or "" to use the configured plugin list as-is.
//   - tuiMode: when true, run the interactive operator dashboard alongside the host instead of blocking silently.
//
// Returns:
//   - error: any error during wiring, plugin loading, or orchestration.
func run(configPath, library string, tuiMode bool) error {
	app, err := InitializeApp(configPath)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	applyLibraryOverride(app.Config, library)
	defer func() { _ = app.Logger.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.registerPlugins(); err != nil {
		return fmt.Errorf("registering plugins: %w", err)
	}

	started := make(chan struct{})
	stopped := make(chan error, 1)
	go func() {
		stopped <- app.Host.Start(ctx)
	}()
	go app.waitForStarted(started)

	select {
	case <-started:
	case err := <-stopped:
		return fmt.Errorf("host exited before reaching started: %w", err)
	}

	app.spawnListeners()
	app.spawnWorkerLoops()
	if tuiMode {
		app.spawnTUI()
	}

	source := app.Shutdown.Run(ctx, app.reload)
	app.Logger.Info("", "shutting_down", "shutdown triggered, draining host", map[string]any{"source": source})

	app.Host.Stop()
	<-stopped

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := app.Metrics.Shutdown(shutdownCtx); err != nil {
		app.Logger.Warn("", "metrics_shutdown_error", err.Error(), nil)
	}
	return nil
}

// waitForStarted polls Host.State until it reaches StateStarted, then
// closes started. It returns early without closing anything once the host
// leaves StateConstructed in any other direction (Start failed outright).
func (a *App) waitForStarted(started chan struct{}) {
	ticker := time.NewTicker(startedPollInterval)
	defer ticker.Stop()
	for range ticker.C {
		switch a.Host.State() {
		case host.StateConstructed:
			continue
		case host.StateStarted:
			close(started)
		}
		return
	}
}

// reload is the Shutdown Coordinator's SIGHUP handler. Config reload support
// is limited to logging the signal for now; live plugin reconfiguration is
// not implemented.
func (a *App) reload() {
	a.Logger.Info("", "config_reload_requested", "SIGHUP reload is not yet implemented", nil)
}

// registerPlugins loads every configured plugin's shared library and
// registers it with the Host Orchestrator, in configuration order.
//
// Returns:
//   - error: the first plugin load or registration failure encountered.
func (a *App) registerPlugins() error {
	for _, pc := range a.Config.Plugins {
		handle, err := a.PluginLoader.Load(pc.Name, pc.LibraryPath)
		if err != nil {
			return fmt.Errorf("plugin %q: %w", pc.Name, err)
		}

		if err := handle.InstallLogger(buildLogBridge(pc.Name, a.Logger)); err != nil {
			a.Logger.Warn(pc.Name, "log_bridge_install_failed", err.Error(), nil)
		}

		probe, err := a.Host.RegisterPlugin(pc.Name, handle, a.Config.Health.DefaultMargin.Duration())
		if err != nil {
			return fmt.Errorf("plugin %q: %w", pc.Name, err)
		}
		a.probes[pc.Name] = probe
	}
	return nil
}

// spawnListeners spawns the Health HTTP Listener and every configured
// Plugin HTTP Listener onto the host's task set.
func (a *App) spawnListeners() {
	healthSrv := healthhttp.New(
		fmt.Sprintf(":%d", a.Config.Health.Port),
		a.Config.Health.BasePath,
		a.Host,
		a.Host.Readiness(),
		a.Shutdown,
		a.Metrics.Handler(),
		a.Logger,
	)
	if err := a.Host.Tasks().Spawn(healthSrv.Run); err != nil {
		a.Logger.Error("", "health_listener_spawn_failed", err.Error(), nil)
	}

	for _, pc := range a.Config.Plugins {
		if pc.HTTPPort == 0 {
			continue
		}
		handle, err := a.Host.Plugin(pc.Name)
		if err != nil {
			a.Logger.Error(pc.Name, "plugin_listener_skip", err.Error(), nil)
			continue
		}
		srv := pluginhttp.New(fmt.Sprintf(":%d", pc.HTTPPort), pc.Route, pc.Name, handle, a.Logger)
		if err := a.Host.Tasks().Spawn(srv.Run); err != nil {
			a.Logger.Error(pc.Name, "plugin_listener_spawn_failed", err.Error(), nil)
		}
	}
}

// spawnWorkerLoops spawns one restart-supervised worker loop per configured
// plugin, ticking its health probe on every successful Process call.
func (a *App) spawnWorkerLoops() {
	for _, pc := range a.Config.Plugins {
		handle, err := a.Host.Plugin(pc.Name)
		if err != nil {
			a.Logger.Error(pc.Name, "worker_loop_skip", err.Error(), nil)
			continue
		}

		probe, ok := a.probes[pc.Name]
		if !ok {
			a.Logger.Error(pc.Name, "worker_loop_skip", "no probe registered", nil)
			continue
		}

		interval := a.Config.Health.DefaultMargin.Duration() / 2
		loop := workerloop.New(pc.Name, probe, interval, pc.Restart, func(ctx context.Context) error {
			_, procErr := handle.Process(0)
			return procErr
		}, a.Logger)

		if err := a.Host.Tasks().Spawn(loop.Run); err != nil {
			a.Logger.Error(pc.Name, "worker_loop_spawn_failed", err.Error(), nil)
		}
	}
}

// spawnTUI spawns the interactive operator dashboard onto the host's task
// set, wired against this App's live plugin state and log stream. It exits
// with the rest of the host's tasks on drain, same as any other listener.
func (a *App) spawnTUI() {
	t := a.buildTUI()
	if err := a.Host.Tasks().Spawn(func(ctx context.Context) {
		if err := t.Run(ctx); err != nil {
			a.Logger.Error("", "tui_exited", err.Error(), nil)
		}
	}); err != nil {
		a.Logger.Error("", "tui_spawn_failed", err.Error(), nil)
	}
}

// buildLogBridge adapts the daemon's event logger into the plugin
// boundary's LogParam shape, routing every plugin-originated record through
// Logger.Log tagged with the plugin's logical name.
//
// Params:
//   - name: the plugin's logical name.
//   - logger: the daemon event logger.
//
// Returns:
//   - domainplugin.LogParam: the bridge to install on the plugin handle.
func buildLogBridge(name string, logger domainlogging.Logger) domainplugin.LogParam {
	return domainplugin.LogParam{
		Enabled: func(domainplugin.Metadata) bool { return true },
		Log: func(rec domainplugin.Record) {
			level := bridgeLevel(rec.Level)
			logger.Log(domainlogging.LogEvent{
				Timestamp: time.Now(),
				Level:     level,
				Service:   name,
				EventType: "plugin_log",
				Message:   rec.Message,
				Metadata:  map[string]any{"target": rec.Target},
			})
		},
		Flush: func() {},
		Level: domainplugin.LevelDebug,
	}
}

// bridgeLevel translates a plugin boundary Level into the domain logging
// Level the daemon's event logger understands.
func bridgeLevel(l domainplugin.Level) domainlogging.Level {
	switch l {
	case domainplugin.LevelDebug:
		return domainlogging.LevelDebug
	case domainplugin.LevelWarn:
		return domainlogging.LevelWarn
	case domainplugin.LevelError:
		return domainlogging.LevelError
	default:
		return domainlogging.LevelInfo
	}
}
