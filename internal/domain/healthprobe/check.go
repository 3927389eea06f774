package healthprobe

import "sync"

// Check is a named aggregation of probes reporting liveness or readiness.
// The probe list is mutated rarely (startup / plugin teardown) and read on
// every health request; a mutex guards the slice but readers never block
// on a probe's own read path, since Probe.Valid is lock-free.
type Check struct {
	name string

	mu     sync.Mutex
	probes []*Probe
}

// NewCheck creates a named, empty Check.
//
// Params:
//   - name: identifier for this check, e.g. "liveness" or "readyness".
//
// Returns:
//   - *Check: an empty check.
func NewCheck(name string) *Check {
	return &Check{name: name}
}

// Name returns the check's identifier.
//
// Returns:
//   - string: the check name.
func (c *Check) Name() string {
	return c.name
}

// Add appends a shared view of the probe to the check. The check shares
// ownership of the probe's underlying timestamp with its producer; ticking
// one view is observable by all.
//
// Params:
//   - p: the probe to enroll.
func (c *Check) Add(p *Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes = append(c.probes, p)
}

// Remove removes a probe by identity (pointer equality), not by name.
//
// Params:
//   - p: the probe to remove.
func (c *Check) Remove(p *Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Filter by identity; keep relative order of the rest.
	kept := c.probes[:0]
	for _, existing := range c.probes {
		if existing != p {
			kept = append(kept, existing)
		}
	}
	c.probes = kept
}

// Status snapshots every enrolled probe once and returns the overall
// validity and a name-to-valid mapping. A check with zero probes reports
// overall=true with an empty mapping. If two probes share a name, the
// mapping holds only the last-inserted (Go map assignment semantics).
//
// Returns:
//   - bool: overall = AND over every probe's Valid().
//   - map[string]bool: per-probe name to validity.
func (c *Check) Status() (bool, map[string]bool) {
	c.mu.Lock()
	snapshot := make([]*Probe, len(c.probes))
	copy(snapshot, c.probes)
	c.mu.Unlock()

	details := make(map[string]bool, len(snapshot))
	overall := true
	for _, p := range snapshot {
		valid := p.Valid()
		details[p.Name()] = valid
		if !valid {
			overall = false
		}
	}
	return overall, details
}
