// Package tui provides terminal user interface for superviz.io.
package tui

import "time"

// defaultRefreshInterval is the interactive mode's update frequency (10 FPS).
const defaultRefreshInterval = 100 * time.Millisecond
