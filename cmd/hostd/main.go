// Command hostd is the plugin host daemon: it loads one or more Go-native
// plugins, serves health/metrics/admin HTTP routes, and supervises each
// plugin's worker loop under a restart policy.
package main

import (
	"os"

	"github.com/kodflow/hostd/internal/bootstrap"
)

func main() {
	os.Exit(bootstrap.Run())
}
