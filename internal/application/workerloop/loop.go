// Package workerloop runs a plugin's background heartbeat under a
// restart policy: a ticking loop that keeps a health probe fresh, wrapped
// in panic recovery and the same restart/delay bookkeeping the teacher
// used to supervise OS processes, here repurposed to respawn a crashed
// in-process goroutine instead.
package workerloop

import (
	"context"
	"time"

	"github.com/kodflow/hostd/internal/domain/config"
	"github.com/kodflow/hostd/internal/domain/healthprobe"
	domainlogging "github.com/kodflow/hostd/internal/domain/logging"
)

// TickFunc is the work performed on every interval. A non-nil return (or a
// panic, which Run translates into an error the same way) is treated as a
// worker crash and evaluated against the restart policy.
type TickFunc func(ctx context.Context) error

// defaultStabilityWindow is used when a RestartConfig leaves
// StabilityWindow unset (the zero shared.Duration).
const defaultStabilityWindow = 5 * time.Minute

// Loop drives one plugin's heartbeat: it calls TickFunc on a fixed
// interval, ticking the probe after each successful call, and restarts
// itself according to RestartConfig when TickFunc errors or panics.
type Loop struct {
	name     string
	probe    *healthprobe.Probe
	interval time.Duration
	restart  config.RestartConfig
	tick     TickFunc
	logger   domainlogging.Logger
}

// New constructs a Loop.
//
// Params:
//   - name: the plugin's logical name, used only for logging.
//   - probe: the health probe this loop keeps fresh.
//   - interval: the delay between successful ticks.
//   - restart: the restart policy governing respawn after a crash.
//   - tick: the work to perform on every interval.
//   - logger: the daemon event logger.
//
// Returns:
//   - *Loop: ready to Run.
func New(name string, probe *healthprobe.Probe, interval time.Duration, restart config.RestartConfig, tick TickFunc, logger domainlogging.Logger) *Loop {
	return &Loop{
		name:     name,
		probe:    probe,
		interval: interval,
		restart:  restart,
		tick:     tick,
		logger:   logger,
	}
}

// Run drives the heartbeat until ctx is canceled or the restart policy
// gives up after a crash. A policy give-up leaves the probe stale: Run
// simply stops ticking it and returns, rather than forcing it invalid,
// since Probe has no such operation and none is needed — the next
// Status() call will observe the margin elapsing on its own.
//
// Params:
//   - ctx: canceled to stop the loop; cancellation is never treated as a crash.
func (l *Loop) Run(ctx context.Context) {
	attempts := 0
	for {
		startedAt := time.Now()
		err := l.runOnce(ctx)

		if ctx.Err() != nil {
			return
		}

		if time.Since(startedAt) >= l.stabilityWindow() {
			attempts = 0
		}

		l.logCrash(err, attempts)

		if !l.restart.ShouldRestartOnExit(1, attempts) {
			l.logGiveUp(attempts)
			return
		}
		attempts++

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.restart.Delay.Duration()):
		}
	}
}

// runOnce ticks the probe and calls tick on every interval until ctx is
// done or tick fails. Panics inside tick are recovered and reported the
// same way as an ordinary error.
func (l *Loop) runOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(l.name, r)
		}
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if tickErr := l.tick(ctx); tickErr != nil {
				return tickErr
			}
			l.probe.Tick()
		}
	}
}

func (l *Loop) stabilityWindow() time.Duration {
	if l.restart.StabilityWindow.Duration() == 0 {
		return defaultStabilityWindow
	}
	return l.restart.StabilityWindow.Duration()
}

func (l *Loop) logCrash(err error, attempts int) {
	if l.logger == nil {
		return
	}
	l.logger.Warn(l.name, "worker_loop_crash", "plugin worker loop crashed", map[string]any{
		"error":    err.Error(),
		"attempts": attempts,
	})
}

func (l *Loop) logGiveUp(attempts int) {
	if l.logger == nil {
		return
	}
	l.logger.Error(l.name, "worker_loop_abandoned", "restart policy exhausted, probe left stale", map[string]any{
		"attempts": attempts,
	})
}
