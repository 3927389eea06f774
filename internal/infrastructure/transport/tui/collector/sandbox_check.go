// Package collector provides data collectors for TUI snapshot.
package collector

// sandboxCheck is a private helper struct for SandboxCollector.
type sandboxCheck struct {
	name      string
	endpoints []string
}
