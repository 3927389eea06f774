package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	domainmetrics "github.com/kodflow/hostd/internal/domain/metrics"
)

// Environment attribute key shared by the response_code and response_time
// instruments below.
const envAttrKey = "env"

var (
	registerOnce sync.Once
	registry     *Registry
)

// Registry is the process-wide OpenTelemetry metrics surface. It owns the
// MeterProvider and the Prometheus exporter that backs the /metrics HTTP
// route, plus the handful of instruments the rest of the daemon writes to.
type Registry struct {
	provider *sdkmetric.MeterProvider
	exporter *prometheus.Exporter
	meter    metric.Meter

	incomingRequests metric.Int64Counter
	responseCode     metric.Int64Counter
	responseTime     metric.Float64Histogram

	env string
}

// NewRegistry builds the MeterProvider, registers the Prometheus exporter as
// its reader, creates the request/response instruments, and wires an
// observable gauge callback that samples collector on every collection pass.
//
// Registration is guarded by a package-level sync.Once: a daemon process
// only ever wants one Prometheus registration. A second call in the same
// process reuses the first Registry instead of attempting (and failing) a
// duplicate collector registration, logging at debug level when the
// requested env differs from the one the Registry was built with.
//
// Params:
//   - env: the environment label attached to response_code/response_time samples.
//   - collector: the SystemCollector sampled by the CPU/memory observable gauges.
//
// Returns:
//   - *Registry: the process-wide registry.
//   - error: non-nil if the exporter or an instrument could not be created on the first call.
func NewRegistry(env string, collector domainmetrics.SystemCollector) (*Registry, error) {
	var err error
	registerOnce.Do(func() {
		registry, err = buildRegistry(env, collector)
	})
	if err != nil {
		return nil, err
	}
	if registry.env != env {
		slog.Debug("metrics registry already initialized under a different env, reusing it", "initialized_env", registry.env, "requested_env", env)
	}
	return registry, nil
}

func buildRegistry(env string, collector domainmetrics.SystemCollector) (*Registry, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter("hostd")

	r := &Registry{
		provider: provider,
		exporter: exporter,
		meter:    meter,
		env:      env,
	}

	if err := r.buildInstruments(collector); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) buildInstruments(collector domainmetrics.SystemCollector) error {
	var err error

	r.incomingRequests, err = r.meter.Int64Counter(
		"incoming_requests",
		metric.WithDescription("count of HTTP requests accepted by the daemon's listeners"),
	)
	if err != nil {
		return err
	}

	r.responseCode, err = r.meter.Int64Counter(
		"response_code",
		metric.WithDescription("count of HTTP responses by status code and listener type"),
	)
	if err != nil {
		return err
	}

	r.responseTime, err = r.meter.Float64Histogram(
		"response_time",
		metric.WithDescription("HTTP response latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	return r.registerSystemGauges(collector)
}

// registerSystemGauges wires an Int64ObservableGauge callback that samples
// the given SystemCollector on every collection pass, reporting host-wide
// CPU usage percent and memory used bytes. A collection error is logged and
// skipped rather than failing the whole scrape.
func (r *Registry) registerSystemGauges(collector domainmetrics.SystemCollector) error {
	cpuGauge, err := r.meter.Int64ObservableGauge(
		"system_cpu_usage_percent",
		metric.WithDescription("host-wide CPU usage percentage"),
	)
	if err != nil {
		return err
	}

	memGauge, err := r.meter.Int64ObservableGauge(
		"system_memory_used_bytes",
		metric.WithDescription("host-wide memory in use, in bytes"),
	)
	if err != nil {
		return err
	}

	_, err = r.meter.RegisterCallback(
		func(ctx context.Context, obs metric.Observer) error {
			r.observeSystemGauges(ctx, obs, collector, cpuGauge, memGauge)
			return nil
		},
		cpuGauge, memGauge,
	)
	return err
}

func (r *Registry) observeSystemGauges(
	ctx context.Context,
	obs metric.Observer,
	collector domainmetrics.SystemCollector,
	cpuGauge, memGauge metric.Int64Observable,
) {
	if cpu, err := collector.CollectCPU(ctx); err == nil {
		obs.ObserveInt64(cpuGauge, int64(cpu.UsagePercent))
	} else {
		slog.Debug("system CPU collection failed", "error", err)
	}

	if mem, err := collector.CollectMemory(ctx); err == nil {
		obs.ObserveInt64(memGauge, int64(mem.Used))
	} else {
		slog.Debug("system memory collection failed", "error", err)
	}
}

// RecordRequest increments incoming_requests by one.
//
// Params:
//   - ctx: the request context.
func (r *Registry) RecordRequest(ctx context.Context) {
	r.incomingRequests.Add(ctx, 1)
}

// RecordResponse increments response_code for the given status code and
// listener type, and records the elapsed latency in response_time.
//
// Params:
//   - ctx: the request context.
//   - statusCode: the HTTP status code returned.
//   - listenerType: "health" or "plugin", identifying which listener served the request.
//   - elapsedSeconds: request latency in seconds.
func (r *Registry) RecordResponse(ctx context.Context, statusCode int, listenerType string, elapsedSeconds float64) {
	attrs := metric.WithAttributes(
		attribute.String(envAttrKey, r.env),
		attribute.Int("statuscode", statusCode),
		attribute.String("type", listenerType),
	)
	r.responseCode.Add(ctx, 1, attrs)
	r.responseTime.Record(ctx, elapsedSeconds, metric.WithAttributes(attribute.String(envAttrKey, r.env)))
}

// Handler returns the Prometheus scrape handler to mount at /metrics.
//
// Returns:
//   - http.Handler: suitable for healthhttp.Server's MetricsHandler field.
func (r *Registry) Handler() http.Handler {
	return promhttp.Handler()
}

// Shutdown flushes and shuts down the underlying MeterProvider.
//
// Params:
//   - ctx: bounds how long shutdown may block.
//
// Returns:
//   - error: propagated from the MeterProvider's own Shutdown.
func (r *Registry) Shutdown(ctx context.Context) error {
	return r.provider.Shutdown(ctx)
}
