// Package metrics provides domain types for system-wide metrics collection.
package metrics

import "context"

// SystemCollector composes the host-wide collectors the metrics exporter's
// observable gauges sample on each collection pass. It reports host-wide
// figures only, never per-PID ones.
type SystemCollector interface {
	// CollectCPU collects system-wide CPU metrics.
	CollectCPU(ctx context.Context) (SystemCPU, error)
	// CollectMemory collects system-wide memory metrics.
	CollectMemory(ctx context.Context) (SystemMemory, error)
}
