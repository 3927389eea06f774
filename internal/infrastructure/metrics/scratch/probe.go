// Package scratch provides a minimal, always-available SystemCollector
// fallback: best-effort on Linux (reading /proc/stat and /proc/meminfo),
// and the Go runtime's own memory statistics everywhere else.
package scratch

import (
	"bufio"
	"context"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/kodflow/hostd/internal/domain/metrics"
)

// ScratchProbe is the platform-agnostic fallback SystemCollector. It never
// errors: a read it cannot perform on the current platform degrades to a
// zero-valued field rather than failing the whole sample.
type ScratchProbe struct{}

// NewScratchProbe constructs the fallback collector.
//
// Returns:
//   - *ScratchProbe: ready to use, no setup required.
func NewScratchProbe() *ScratchProbe {
	return &ScratchProbe{}
}

// CollectCPU reads /proc/stat's aggregate "cpu" line when present; on
// platforms without /proc it reports a zero-valued sample carrying only
// the timestamp.
//
// Params:
//   - ctx: unused; present to satisfy the domain SystemCollector port. The
//     read is a single non-blocking file read, not worth making
//     cancellable.
//
// Returns:
//   - metrics.SystemCPU: the sampled (or zero-valued) CPU metrics.
//   - error: always nil; a missing /proc/stat degrades silently.
func (p *ScratchProbe) CollectCPU(_ context.Context) (metrics.SystemCPU, error) {
	params := &metrics.SystemCPUParams{Timestamp: time.Now()}
	readProcStatCPU(params)
	return *metrics.NewSystemCPU(params), nil
}

// CollectMemory reads /proc/meminfo when present, otherwise reports the Go
// runtime's own heap statistics as a lower bound on memory in use.
//
// Params:
//   - ctx: unused; see CollectCPU.
//
// Returns:
//   - metrics.SystemMemory: the sampled (or runtime-derived) memory metrics.
//   - error: always nil.
func (p *ScratchProbe) CollectMemory(_ context.Context) (metrics.SystemMemory, error) {
	input := &metrics.SystemMemoryInput{}
	if !readProcMeminfo(input) {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		input.Total = ms.Sys
		input.Available = ms.Sys - ms.HeapInuse
		input.Free = input.Available
	}
	return *metrics.NewSystemMemory(input), nil
}

// readProcStatCPU parses /proc/stat's "cpu" summary line into params.
// Returns without modifying params when /proc/stat is unavailable.
func readProcStatCPU(params *metrics.SystemCPUParams) {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < 8 || fields[0] != "cpu" {
		return
	}
	values := make([]uint64, len(fields)-1)
	for i, field := range fields[1:] {
		values[i], _ = strconv.ParseUint(field, 10, 64)
	}
	assignCPUFields(params, values)
}

// assignCPUFields maps /proc/stat's positional jiffy counters onto params.
func assignCPUFields(params *metrics.SystemCPUParams, v []uint64) {
	fieldSetters := []*uint64{
		&params.User, &params.Nice, &params.System, &params.Idle,
		&params.IOWait, &params.IRQ, &params.SoftIRQ, &params.Steal,
		&params.Guest, &params.GuestNice,
	}
	for i, setter := range fieldSetters {
		if i >= len(v) {
			break
		}
		*setter = v[i]
	}
}

// readProcMeminfo parses the fields of /proc/meminfo needed by
// metrics.SystemMemoryInput. Returns false when /proc/meminfo is
// unavailable.
func readProcMeminfo(input *metrics.SystemMemoryInput) bool {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return false
	}
	defer f.Close()

	fieldsByKey := map[string]*uint64{
		"MemTotal":     &input.Total,
		"MemAvailable": &input.Available,
		"MemFree":      &input.Free,
		"Cached":       &input.Cached,
		"Buffers":      &input.Buffers,
		"SwapTotal":    &input.SwapTotal,
		"SwapFree":     &input.SwapFree,
		"Shmem":        &input.Shared,
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseMeminfoLine(scanner.Text())
		if !ok {
			continue
		}
		if target, known := fieldsByKey[key]; known {
			*target = value * 1024 // /proc/meminfo reports kB
		}
	}
	input.SwapUsed = input.SwapTotal - input.SwapFree
	return true
}

// parseMeminfoLine splits a "Key:    12345 kB" line into its key and
// numeric value.
func parseMeminfoLine(line string) (key string, value uint64, ok bool) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return "", 0, false
	}
	fields := strings.Fields(parts[1])
	if len(fields) == 0 {
		return "", 0, false
	}
	n, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return parts[0], n, true
}
