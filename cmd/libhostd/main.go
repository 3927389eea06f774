//go:build cgo

// Command libhostd exposes the Host Orchestrator through a stable C ABI
// (C10), built with -buildmode=c-shared for embedding by a non-Go driver
// binary. It is the out-of-process equivalent of cmd/hostd: the same
// Host, Shutdown Coordinator and plugin loader wired through cgo exports
// instead of a CLI composition root.
package main

/*
#include <stdint.h>
#include <stdbool.h>
#include <stdlib.h>

typedef struct Metadata {
    int32_t level;
    const char* target;
} Metadata;

typedef struct Record {
    int32_t level;
    const char* target;
    const char* message;
} Record;

typedef struct LogParam {
    bool (*enabled)(const Metadata*);
    void (*log)(const Record*);
    void (*flush)(void);
    int32_t level;
} LogParam;

// Trampolines: cgo cannot call a C function pointer directly from Go, so
// each callback field is invoked through a small static wrapper.
static inline bool call_enabled(LogParam *p, Metadata *m) {
    return p->enabled(m);
}
static inline void call_log(LogParam *p, Record *r) {
    p->log(r);
}
static inline void call_flush(LogParam *p) {
    p->flush();
}
*/
import "C"

import (
	"context"
	"fmt"
	"runtime/cgo"
	"sync"
	"time"
	"unsafe"

	"github.com/kodflow/hostd/internal/application/healthhttp"
	"github.com/kodflow/hostd/internal/application/host"
	"github.com/kodflow/hostd/internal/application/pluginhttp"
	"github.com/kodflow/hostd/internal/application/shutdown"
	"github.com/kodflow/hostd/internal/application/workerloop"
	domainconfig "github.com/kodflow/hostd/internal/domain/config"
	"github.com/kodflow/hostd/internal/domain/healthprobe"
	domainlogging "github.com/kodflow/hostd/internal/domain/logging"
	domainplugin "github.com/kodflow/hostd/internal/domain/plugin"
	"github.com/kodflow/hostd/internal/domain/shared"
	"github.com/kodflow/hostd/internal/infrastructure/metrics"
	"github.com/kodflow/hostd/internal/infrastructure/metrics/scratch"
	"github.com/kodflow/hostd/internal/infrastructure/observability/logging/daemon"
	"github.com/kodflow/hostd/internal/infrastructure/persistence/config/yaml"
	"github.com/kodflow/hostd/internal/infrastructure/pluginhost"
)

func main() {}

// Error-kind codes, stable across the FFI boundary (SPEC_FULL §7).
const (
	errBadArgument   int32 = 1
	errLibraryOpen   int32 = 2
	errSymbolMiss    int32 = 3
	errAlreadyRun    int32 = 4
	errPluginPanic   int32 = 5
	errLoggerSetup   int32 = 6
	errConfigInvalid int32 = 7
)

const defaultHealthMargin = 5 * time.Second

// lastError is a mutex-guarded, process-wide pending-error slot. The
// original system keeps one pending error per calling thread; Go exposes
// no equivalent of thread-local storage, so this collapses to one pending
// error per process, documented as a deliberate simplification.
var (
	lastErrMu sync.Mutex
	lastErr   string
)

func setLastError(kind int32, format string, args ...any) int32 {
	lastErrMu.Lock()
	lastErr = fmt.Sprintf(format, args...)
	lastErrMu.Unlock()
	return kind
}

//export hostd_last_error_length
func hostd_last_error_length() C.int32_t {
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	return C.int32_t(len(lastErr))
}

//export hostd_copy_last_error
func hostd_copy_last_error(buf *C.char, length C.int32_t) C.int32_t {
	if buf == nil || length <= 0 {
		return -1
	}
	lastErrMu.Lock()
	msg := lastErr
	lastErrMu.Unlock()

	n := len(msg)
	if int(length) < n {
		n = int(length)
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(buf)), length)
	copy(dst, msg[:n])
	return C.int32_t(n)
}

// Library is the handle returned by so_library_register: a plugin opened
// and symbol-resolved independently of any UService, mirroring the
// dlopen-handle-plus-function-pointers pairing the original system kept
// together so a library is never unloaded while a resolved symbol might
// still be reachable.
type Library struct {
	handle *domainplugin.Handle
}

//export so_library_register
func so_library_register(name *C.char) unsafe.Pointer {
	if name == nil {
		setLastError(errBadArgument, "so_library_register: name is null")
		return nil
	}
	h, err := pluginhost.NewLoader().Load(C.GoString(name), "")
	if err != nil {
		setLastError(libraryErrCode(err), "so_library_register: %v", err)
		return nil
	}
	handle := cgo.NewHandle(&Library{handle: h})
	return unsafe.Pointer(uintptr(handle))
}

//export so_library_free
func so_library_free(lib unsafe.Pointer) {
	if lib == nil {
		return
	}
	cgo.Handle(uintptr(lib)).Delete()
}

// pluginEntry tracks one plugin registered into a UService, so
// pservice_free can drop our bookkeeping for it. The underlying *plugin.Plugin
// stays mapped for the process lifetime (Go's plugin package has no
// dlclose equivalent); pservice_free releases only the UService's own
// reference to the handle and probe.
type pluginEntry struct {
	handle *domainplugin.Handle
	probe  *healthprobe.Probe
}

// UService is the FFI-surface's runtime object: one Host Orchestrator plus
// the daemon logger, shutdown coordinator, and plugin loader it was built
// with. Registered via uservice_init, started via uservice_start, torn
// down via uservice_free.
type UService struct {
	mu sync.Mutex

	name       string
	logger     domainlogging.Logger
	host       *host.Host
	coord      *shutdown.Coordinator
	loader     *pluginhost.Loader
	registry   *metrics.Registry
	cfg        *domainconfig.Config
	pluginLog  *domainplugin.LogParam
	plugins    map[string]*pluginEntry

	cancel  context.CancelFunc
	started bool
}

// defaultLogParam is the C LogParam installed by uservice_logger_init,
// consumed by the next uservice_init call to build that UService's
// daemon-level event logger. Left unset, uservice_init falls back to
// daemon.NewSilentLogger, which writes nothing.
var (
	defaultLogParamMu sync.Mutex
	defaultLogParam   *C.LogParam
)

//export uservice_logger_init
func uservice_logger_init(param C.LogParam) {
	defaultLogParamMu.Lock()
	defer defaultLogParamMu.Unlock()
	p := param
	defaultLogParam = &p
}

//export uservice_init
func uservice_init(name *C.char) unsafe.Pointer {
	if name == nil {
		setLastError(errBadArgument, "uservice_init: name is null")
		return nil
	}
	logicalName := C.GoString(name)

	defaultLogParamMu.Lock()
	cParam := defaultLogParam
	defaultLogParamMu.Unlock()

	var logger domainlogging.Logger
	if cParam != nil {
		logger = newCLogBridge(logicalName, cParam)
	} else {
		logger = daemon.NewSilentLogger()
	}

	collector := scratch.NewScratchProbe()
	registry, err := metrics.NewRegistry(logicalName, collector)
	if err != nil {
		setLastError(errConfigInvalid, "uservice_init: metrics registry: %v", err)
		return nil
	}

	svc := &UService{
		name:    logicalName,
		logger:  logger,
		host:    host.New(logger),
		coord:   shutdown.New(logger),
		loader:  pluginhost.NewLoader(),
		registry: registry,
		cfg:     &domainconfig.Config{Health: domainconfig.HealthConfig{DefaultMargin: shared.Seconds(int(defaultHealthMargin.Seconds()))}},
		plugins: make(map[string]*pluginEntry),
	}
	handle := cgo.NewHandle(svc)
	return unsafe.Pointer(uintptr(handle))
}

//export uservice_free
func uservice_free(svc unsafe.Pointer) C.uint32_t {
	s, ok := resolveUService(svc)
	if !ok {
		return C.uint32_t(setLastError(errBadArgument, "uservice_free: invalid handle"))
	}
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.host.Stop()
	s.mu.Unlock()
	_ = s.logger.Close()
	cgo.Handle(uintptr(svc)).Delete()
	return 0
}

//export uservice_start
func uservice_start(svc unsafe.Pointer) C.uint32_t {
	s, ok := resolveUService(svc)
	if !ok {
		return C.uint32_t(setLastError(errBadArgument, "uservice_start: invalid handle"))
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return C.uint32_t(setLastError(errAlreadyRun, "uservice_start: already started"))
	}
	s.started = true
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	go s.waitAndSpawn(ctx)
	go func() {
		source := s.coord.Run(ctx, s.reload)
		s.logger.Info("", "shutting_down", "shutdown triggered, draining host", map[string]any{"source": source})
		s.host.Stop()
	}()

	if err := s.host.Start(ctx); err != nil {
		return C.uint32_t(setLastError(errAlreadyRun, "uservice_start: %v", err))
	}
	return 0
}

//export uservice_stop
func uservice_stop(svc unsafe.Pointer) C.uint32_t {
	s, ok := resolveUService(svc)
	if !ok {
		return C.uint32_t(setLastError(errBadArgument, "uservice_stop: invalid handle"))
	}
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return 0
	}
	s.coord.Stop()
	return 0
}

//export pservices_logger_init
func pservices_logger_init(svc unsafe.Pointer, param C.LogParam) C.uint32_t {
	s, ok := resolveUService(svc)
	if !ok {
		return C.uint32_t(setLastError(errBadArgument, "pservices_logger_init: invalid handle"))
	}
	p := param
	bridge := domainplugin.LogParam{
		Enabled: func(m domainplugin.Metadata) bool {
			cm := C.Metadata{level: C.int32_t(m.Level), target: C.CString(m.Target)}
			defer C.free(unsafe.Pointer(cm.target))
			return bool(C.call_enabled(&p, &cm))
		},
		Log: func(r domainplugin.Record) {
			target := C.CString(r.Target)
			message := C.CString(r.Message)
			defer C.free(unsafe.Pointer(target))
			defer C.free(unsafe.Pointer(message))
			cr := C.Record{level: C.int32_t(r.Level), target: target, message: message}
			C.call_log(&p, &cr)
		},
		Flush: func() { C.call_flush(&p) },
		Level: domainplugin.Level(p.level),
	}
	s.mu.Lock()
	s.pluginLog = &bridge
	s.mu.Unlock()
	return 0
}

//export pservices_init
func pservices_init(svc unsafe.Pointer, configYAML *C.char) C.uint32_t {
	s, ok := resolveUService(svc)
	if !ok {
		return C.uint32_t(setLastError(errBadArgument, "pservices_init: invalid handle"))
	}
	if configYAML == nil {
		return C.uint32_t(setLastError(errBadArgument, "pservices_init: configYAML is null"))
	}
	cfg, err := yaml.New().Parse([]byte(C.GoString(configYAML)))
	if err != nil {
		return C.uint32_t(setLastError(errConfigInvalid, "pservices_init: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		return C.uint32_t(setLastError(errConfigInvalid, "pservices_init: %v", err))
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return 0
}

//export pservice_register
func pservice_register(svc unsafe.Pointer, name *C.char, libraryName *C.char) C.int32_t {
	s, ok := resolveUService(svc)
	if !ok {
		return C.int32_t(setLastError(errBadArgument, "pservice_register: invalid handle"))
	}
	if name == nil || libraryName == nil {
		setLastError(errBadArgument, "pservice_register: name or libraryName is null")
		return -1
	}
	logicalName := C.GoString(name)
	path := C.GoString(libraryName)

	handle, err := s.loader.Load(logicalName, path)
	if err != nil {
		setLastError(libraryErrCode(err), "pservice_register: %v", err)
		return -2
	}

	s.mu.Lock()
	bridge := s.pluginLog
	margin := s.cfg.Health.DefaultMargin.Duration()
	s.mu.Unlock()
	if margin == 0 {
		margin = defaultHealthMargin
	}
	if bridge != nil {
		if instErr := handle.InstallLogger(*bridge); instErr != nil {
			s.logger.Warn(logicalName, "log_bridge_install_failed", instErr.Error(), nil)
		}
	}

	probe, err := s.host.RegisterPlugin(logicalName, handle, margin)
	if err != nil {
		setLastError(errAlreadyRun, "pservice_register: %v", err)
		return -2
	}

	s.mu.Lock()
	s.plugins[logicalName] = &pluginEntry{handle: handle, probe: probe}
	s.mu.Unlock()
	return 0
}

//export pservice_free
func pservice_free(svc unsafe.Pointer, name *C.char) C.uint32_t {
	s, ok := resolveUService(svc)
	if !ok {
		return C.uint32_t(setLastError(errBadArgument, "pservice_free: invalid handle"))
	}
	if name == nil {
		return C.uint32_t(setLastError(errBadArgument, "pservice_free: name is null"))
	}
	logicalName := C.GoString(name)
	s.mu.Lock()
	delete(s.plugins, logicalName)
	s.mu.Unlock()
	return 0
}

// resolveUService recovers a *UService from an opaque handle pointer
// produced by uservice_init. An invalid or stale handle is reported as
// BadArgument rather than causing undefined behavior.
func resolveUService(svc unsafe.Pointer) (*UService, bool) {
	if svc == nil {
		return nil, false
	}
	defer func() { recover() }()
	v := cgo.Handle(uintptr(svc)).Value()
	s, ok := v.(*UService)
	return s, ok
}

func (s *UService) reload() {
	s.logger.Info("", "config_reload_requested", "SIGHUP reload is not yet implemented", nil)
}

// waitAndSpawn mirrors cmd/hostd's waitForStarted: it polls until the host
// leaves Constructed, then spawns the health listener, every registered
// plugin's worker loop, and a Plugin HTTP Listener for any plugin whose
// config carries an HTTPPort, onto the host's task set.
func (s *UService) waitAndSpawn(ctx context.Context) {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if s.host.State() != host.StateConstructed {
			break
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}

	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	healthSrv := healthhttp.New(
		fmt.Sprintf(":%d", cfg.Health.Port),
		cfg.Health.BasePath,
		s.host, s.host.Readiness(), s.coord, s.registry.Handler(), s.logger,
	)
	if err := s.host.Tasks().Spawn(healthSrv.Run); err != nil {
		s.logger.Error("", "health_listener_spawn_failed", err.Error(), nil)
	}

	pluginCfg := make(map[string]domainconfig.PluginConfig, len(cfg.Plugins))
	for _, pc := range cfg.Plugins {
		pluginCfg[pc.Name] = pc
	}

	s.mu.Lock()
	entries := make(map[string]*pluginEntry, len(s.plugins))
	for k, v := range s.plugins {
		entries[k] = v
	}
	s.mu.Unlock()

	for name, e := range entries {
		handle := e.handle
		loop := workerloop.New(name, e.probe, defaultHealthMargin/2, domainconfig.DefaultRestartConfig(), func(ctx context.Context) error {
			_, procErr := handle.Process(0)
			return procErr
		}, s.logger)
		if err := s.host.Tasks().Spawn(loop.Run); err != nil {
			s.logger.Error(name, "worker_loop_spawn_failed", err.Error(), nil)
		}

		if pc, ok := pluginCfg[name]; ok && pc.HTTPPort != 0 {
			pluginSrv := pluginhttp.New(fmt.Sprintf(":%d", pc.HTTPPort), pc.Route, name, handle, s.logger)
			if err := s.host.Tasks().Spawn(pluginSrv.Run); err != nil {
				s.logger.Error(name, "plugin_listener_spawn_failed", err.Error(), nil)
			}
		}
	}
}

// libraryErrCode maps a pluginhost load error to its FFI error-kind code.
func libraryErrCode(err error) int32 {
	switch code := domainplugin.Code(err); code {
	case 0:
		return errLibraryOpen
	default:
		return code
	}
}

// newCLogBridge adapts a C LogParam into the daemon's domainlogging.Logger
// interface, for the process-wide daemon event logger installed via
// uservice_logger_init.
func newCLogBridge(service string, p *C.LogParam) domainlogging.Logger {
	return &cLogBridge{service: service, param: p}
}

type cLogBridge struct {
	mu      sync.Mutex
	service string
	param   *C.LogParam
}

func (b *cLogBridge) Log(e domainlogging.LogEvent) {
	b.write(cLevel(e.Level), e.Service, e.Message)
}

func (b *cLogBridge) Debug(service, eventType, message string, meta map[string]any) {
	b.write(C.int32_t(domainplugin.LevelDebug), service, message)
}

func (b *cLogBridge) Info(service, eventType, message string, meta map[string]any) {
	b.write(C.int32_t(domainplugin.LevelInfo), service, message)
}

func (b *cLogBridge) Warn(service, eventType, message string, meta map[string]any) {
	b.write(C.int32_t(domainplugin.LevelWarn), service, message)
}

func (b *cLogBridge) Error(service, eventType, message string, meta map[string]any) {
	b.write(C.int32_t(domainplugin.LevelError), service, message)
}

func (b *cLogBridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	C.call_flush(b.param)
	return nil
}

func (b *cLogBridge) write(level C.int32_t, target, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cTarget := C.CString(target)
	cMessage := C.CString(message)
	defer C.free(unsafe.Pointer(cTarget))
	defer C.free(unsafe.Pointer(cMessage))

	meta := C.Metadata{level: level, target: cTarget}
	if !bool(C.call_enabled(b.param, &meta)) {
		return
	}
	record := C.Record{level: level, target: cTarget, message: cMessage}
	C.call_log(b.param, &record)
}

func cLevel(l domainlogging.Level) C.int32_t {
	switch l {
	case domainlogging.LevelDebug:
		return C.int32_t(domainplugin.LevelDebug)
	case domainlogging.LevelWarn:
		return C.int32_t(domainplugin.LevelWarn)
	case domainlogging.LevelError:
		return C.int32_t(domainplugin.LevelError)
	default:
		return C.int32_t(domainplugin.LevelInfo)
	}
}
