// Package tui provides terminal user interface for superviz.io.
package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kodflow/hostd/internal/infrastructure/transport/tui/ansi"
	"github.com/kodflow/hostd/internal/infrastructure/transport/tui/model"
)

const (
	floatPrecision int     = 1
	floatBitSize   int     = 64
	bytesDivisor   float64 = 1024

	percentWarnThreshold     float64 = 70
	percentCriticalThreshold float64 = 90
)

var byteUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// RawRenderer renders a plain-text snapshot of system and service state, one
// line per metric. It replaces a full interactive widget tree with direct,
// unboxed ANSI-colored output: there is no layout engine, just a fixed line
// order that degrades gracefully when a field is zero-valued.
type RawRenderer struct {
	out   io.Writer
	theme ansi.Theme
}

// NewRawRenderer creates a raw renderer writing to out.
//
// Params:
//   - out: writer for output.
//
// Returns:
//   - *RawRenderer: new raw renderer instance.
func NewRawRenderer(out io.Writer) *RawRenderer {
	return &RawRenderer{out: out, theme: ansi.DefaultTheme()}
}

// Render writes the full snapshot: header, system metrics, sandboxes, and
// one line per service.
//
// Params:
//   - snap: snapshot containing system and service data.
//
// Returns:
//   - error: write error if output fails.
func (r *RawRenderer) Render(snap *model.Snapshot) error {
	var sb strings.Builder
	sb.WriteString(r.renderHeader(snap))
	sb.WriteString(r.renderSystem(snap.System))
	if len(snap.Sandboxes) > 0 {
		sb.WriteString(r.renderSandboxes(snap.Sandboxes))
	}
	sb.WriteString(r.renderServices(snap.Services))
	_, err := fmt.Fprint(r.out, sb.String())
	return err
}

// RenderCompact writes a header plus one line per service, skipping system
// and sandbox detail for narrow terminals.
//
// Params:
//   - snap: snapshot containing system and service data.
//
// Returns:
//   - error: write error if output fails.
func (r *RawRenderer) RenderCompact(snap *model.Snapshot) error {
	var sb strings.Builder
	sb.WriteString(r.renderHeaderCompact(snap))
	sb.WriteString(r.renderServices(snap.Services))
	_, err := fmt.Fprint(r.out, sb.String())
	return err
}

func (r *RawRenderer) renderHeader(snap *model.Snapshot) string {
	ctx := snap.Context
	version := ctx.Version
	if version != "" && version[0] != 'v' {
		version = "v" + version
	}
	logo := r.theme.Primary + "superviz" + ansi.Reset + r.theme.Accent + ".io " + version + ansi.Reset

	runtime := ctx.Mode.String()
	if ctx.ContainerRuntime != "" {
		runtime = runtime + " (" + ctx.ContainerRuntime + ")"
	}
	configPath := ctx.ConfigPath
	if configPath == "" {
		configPath = "/etc/supervizio/config.yaml"
	}

	var sb strings.Builder
	sb.WriteString(logo + "\n")
	sb.WriteString(r.field("Host", ctx.Hostname))
	sb.WriteString(r.field("Platform", ctx.OS+"/"+ctx.Arch))
	sb.WriteString(r.field("Runtime", runtime))
	sb.WriteString(r.field("Config", configPath))
	sb.WriteString(r.field("Started", ctx.StartTime.Format("2006-01-02T15:04:05Z")))
	return sb.String()
}

func (r *RawRenderer) renderHeaderCompact(snap *model.Snapshot) string {
	ctx := snap.Context
	mode := ctx.Mode.String()
	if ctx.ContainerRuntime != "" {
		mode = ctx.ContainerRuntime
	}
	return fmt.Sprintf("%s v%s | %s | %s | %s\n", r.theme.Primary+"superviz.io"+ansi.Reset, ctx.Version, ctx.Hostname, mode, ctx.StartTime.Format("15:04:05"))
}

func (r *RawRenderer) field(label, value string) string {
	return "  " + r.theme.Muted + label + ansi.Reset + ": " + value + "\n"
}

func (r *RawRenderer) renderSystem(sys model.SystemMetrics) string {
	var sb strings.Builder
	sb.WriteString(r.theme.Header + "System" + ansi.Reset + "\n")
	sb.WriteString(r.metricLine("CPU", sys.CPUPercent) + "\n")
	sb.WriteString(r.metricLine("RAM", sys.MemoryPercent) + "  " + formatBytes(sys.MemoryUsed) + "/" + formatBytes(sys.MemoryTotal) + "\n")
	sb.WriteString(r.metricLine("Swap", sys.SwapPercent) + "  " + formatBytes(sys.SwapUsed) + "/" + formatBytes(sys.SwapTotal) + "\n")
	sb.WriteString(r.metricLine("Disk", sys.DiskPercent) + "  " + formatBytes(sys.DiskUsed) + "/" + formatBytes(sys.DiskTotal) + "\n")
	sb.WriteString(r.field("Load", strconv.FormatFloat(sys.LoadAvg1, 'f', floatPrecision, floatBitSize)+" "+
		strconv.FormatFloat(sys.LoadAvg5, 'f', floatPrecision, floatBitSize)+" "+
		strconv.FormatFloat(sys.LoadAvg15, 'f', floatPrecision, floatBitSize)))
	return sb.String()
}

func (r *RawRenderer) metricLine(label string, percent float64) string {
	color := r.theme.Success
	switch {
	case percent >= percentCriticalThreshold:
		color = r.theme.Error
	case percent >= percentWarnThreshold:
		color = r.theme.Warning
	}
	return "  " + r.theme.Muted + label + ansi.Reset + " " + color + strconv.FormatFloat(percent, 'f', floatPrecision, floatBitSize) + "%" + ansi.Reset
}

func (r *RawRenderer) renderSandboxes(sandboxes []model.SandboxInfo) string {
	var sb strings.Builder
	sb.WriteString(r.theme.Header + "Sandboxes" + ansi.Reset + "\n")
	for _, s := range sandboxes {
		status := r.theme.Muted + "not detected" + ansi.Reset
		if s.Detected {
			status = r.theme.Success + s.Endpoint + ansi.Reset
		}
		sb.WriteString("  " + s.Name + "  " + status + "\n")
	}
	return sb.String()
}

func (r *RawRenderer) renderServices(services []model.ServiceSnapshot) string {
	var sb strings.Builder
	sb.WriteString(r.theme.Header + "Services" + ansi.Reset + "\n")
	for _, s := range services {
		color := r.theme.Success
		if s.State.String() != "running" {
			color = r.theme.Error
		}
		sb.WriteString("  " + color + s.Name + ansi.Reset + " (" + s.State.String() + ")\n")
	}
	return sb.String()
}

// formatBytes renders a byte count using binary (1024-based) units, matching
// the collectors' own scaling.
func formatBytes(n uint64) string {
	value := float64(n)
	unit := 0
	for value >= bytesDivisor && unit < len(byteUnits)-1 {
		value /= bytesDivisor
		unit++
	}
	return strconv.FormatFloat(value, 'f', floatPrecision, floatBitSize) + byteUnits[unit]
}
