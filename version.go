package yamljson

import (
	"fmt"
	"runtime"
)

//nolint:gochecknoglobals // set via ldflags at build time.
var (
	// Version is the application version.
	Version = "dev"
	// Commit is the source revision.
	Commit = "unknown"
	// CompiledAt is the build timestamp.
	CompiledAt = "unknown"
)

// BuildInfo describes the running binary on one line.
func BuildInfo() string {
	return fmt.Sprintf("yamljson %s (commit %s, built %s, %s %s/%s)",
		Version, Commit, CompiledAt, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
