// Package main is the sample01 plugin: a minimal Go-native plugin built
// with -buildmode=plugin, exporting the five symbols the host resolves at
// load time (Name, Version, InitLogger, Init, Process).
package main

import (
	"fmt"
	"os"

	domainplugin "github.com/kodflow/hostd/internal/domain/plugin"
)

const (
	pluginName    = "sample01"
	pluginVersion = "0.1.0"
)

var (
	logBridge       domainplugin.LogParam
	loggerInstalled bool
)

// Name reports the plugin's own identity, distinct from whatever logical
// name the host registered it under.
func Name() string { return pluginName }

// Version reports the plugin's build version.
func Version() string { return pluginVersion }

// InitLogger installs the host's log bridge as this plugin's process-wide
// log sink.
func InitLogger(param domainplugin.LogParam) {
	logBridge = param
	loggerInstalled = true
	logLine(domainplugin.LevelInfo, fmt.Sprintf(
		"logging at %s registered for %s:%s (pid %d) using the host bridge",
		pluginName, pluginName, pluginVersion, os.Getpid()))
}

// Init runs once at host start-up, in plugin registration order.
func Init(arg int32) int32 {
	logLine(domainplugin.LevelInfo, fmt.Sprintf("init called with %d", arg))
	return 12
}

// Process runs once per request dispatched to this plugin.
func Process(arg int32) int32 {
	logLine(domainplugin.LevelInfo, fmt.Sprintf("process called with %d", arg))
	return 17
}

func logLine(level domainplugin.Level, msg string) {
	if !loggerInstalled || logBridge.Enabled == nil || logBridge.Log == nil {
		return
	}
	meta := domainplugin.Metadata{Level: level, Target: pluginName}
	if !logBridge.Enabled(meta) {
		return
	}
	logBridge.Log(domainplugin.Record{Level: level, Target: pluginName, Message: msg})
}

func main() {}
