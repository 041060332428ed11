// Package version provides build-time version information for pattoo
// tooling. Variables are injected at build time via ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	return fmt.Sprintf("pattoo-shared %s %s/%s %s (commit %s, built %s)",
		Version, runtime.GOOS, runtime.GOARCH, runtime.Version(), GitCommit, BuildDate)
}

// Short returns just the version string (e.g., "0.1.0" or "dev").
func Short() string {
	return Version
}
