// Package healthprobe provides a lock-free ticking freshness primitive and
// its aggregation into named liveness/readiness checks.
package healthprobe

import (
	"sync/atomic"
	"time"
)

// Probe is a ticking freshness token shared between the worker that ticks
// it and any number of Checks that read it. The last-tick timestamp is
// stored as a UnixNano int64 behind an atomic so reads never block.
type Probe struct {
	name     string
	margin   time.Duration
	lastTick atomic.Int64
}

// NewProbe creates a Probe that is valid from the moment of creation:
// construction itself counts as an initial tick.
//
// Params:
//   - name: identifier for this probe, unique only within a Check it joins.
//   - margin: the freshness deadline; Valid() is false once this much time
//     has elapsed since the last Tick.
//
// Returns:
//   - *Probe: a freshly ticked probe.
func NewProbe(name string, margin time.Duration) *Probe {
	p := &Probe{name: name, margin: margin}
	p.Tick()
	return p
}

// Name returns the probe's identifier.
//
// Returns:
//   - string: the probe name.
func (p *Probe) Name() string {
	return p.name
}

// Tick sets the probe's last-tick timestamp to the current wall-clock time,
// stored as UnixNano. The monotonic clock reading is not kept, so a step of
// the wall clock shifts the age that Valid computes.
func (p *Probe) Tick() {
	// Store now as UnixNano; sequentially consistent by default for atomic.Int64.
	p.lastTick.Store(time.Now().UnixNano())
}

// Valid reports whether the probe has been ticked within its margin of now.
//
// Returns:
//   - bool: true if now - last_tick <= margin.
func (p *Probe) Valid() bool {
	last := time.Unix(0, p.lastTick.Load())
	return time.Since(last) <= p.margin
}
