package bootstrap

import (
	"time"

	domainlogging "github.com/kodflow/hostd/internal/domain/logging"
	"github.com/kodflow/hostd/internal/domain/process"
	"github.com/kodflow/hostd/internal/infrastructure/transport/tui"
)

// writerAdder is implemented by loggers that can take on an additional
// writer after construction, such as daemon.MultiLogger.
type writerAdder interface {
	AddWriter(w domainlogging.Writer)
}

// tuiSnapshotProvider adapts App into tui.TUISnapshotser, mapping each
// registered plugin onto the five-state lifecycle the dashboard renders.
// Plugins run in-process rather than as supervised OS processes, so PID is
// always 0 and Uptime is tracked from the moment the plugin was registered
// rather than from an exec(2) timestamp.
type tuiSnapshotProvider struct {
	app          *App
	registeredAt map[string]time.Time
}

func newTUISnapshotProvider(app *App) *tuiSnapshotProvider {
	registeredAt := make(map[string]time.Time, len(app.probes))
	now := time.Now()
	for name := range app.probes {
		registeredAt[name] = now
	}
	return &tuiSnapshotProvider{app: app, registeredAt: registeredAt}
}

// TUISnapshots returns one entry per registered plugin, in configuration
// order.
//
// Returns:
//   - []tui.TUISnapshotData: the current snapshot of every registered plugin.
func (p *tuiSnapshotProvider) TUISnapshots() []tui.TUISnapshotData {
	result := make([]tui.TUISnapshotData, 0, len(p.app.Config.Plugins))
	for _, pc := range p.app.Config.Plugins {
		probe, ok := p.app.probes[pc.Name]
		result = append(result, tui.TUISnapshotData{
			Name:   pc.Name,
			State:  p.state(ok, probe),
			PID:    0,
			Uptime: int64(time.Since(p.registeredAt[pc.Name]).Seconds()),
		})
	}
	return result
}

// state derives a dashboard lifecycle state from whether a plugin's probe
// is still within its staleness margin. Host shutdown is not distinguished
// here; the dashboard exits along with the rest of the process during
// drain, so StateStopping never surfaces through this provider.
func (p *tuiSnapshotProvider) state(registered bool, probe interface{ Valid() bool }) process.State {
	if !registered {
		return process.StateStopped
	}
	if probe.Valid() {
		return process.StateRunning
	}
	return process.StateFailed
}

// buildTUI assembles a tui.TUI wired against this App's live plugin and log
// state. The caller is responsible for calling Run on the host's task set.
//
// Returns:
//   - *tui.TUI: ready to Run, pre-wired with service/metrics/health providers.
func (a *App) buildTUI() *tui.TUI {
	cfg := tui.DefaultConfig(version)
	cfg.Mode = tui.ModeInteractive

	t := tui.New(cfg)
	t.SetServiceProvider(tui.NewDynamicServiceProvider(newTUISnapshotProvider(a)))
	t.SetMetricsProvider(tui.NewSystemMetricsAdapter())

	logAdapter := tui.NewLogAdapter()
	if adder, ok := a.Logger.(writerAdder); ok {
		adder.AddWriter(tui.NewTUILogWriter(logAdapter))
	}
	t.SetHealthProvider(logAdapter)
	t.SetConfigPath(a.Config.ConfigPath)
	return t
}
