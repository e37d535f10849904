// Package build provides version and build information for claude-notify.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// UserAgent is sent with every push-backend HTTP request.
func UserAgent() string {
	return "claude-notify/" + Version
}

// Info renders the multi-line output of --version.
func Info() string {
	return fmt.Sprintf("claude-notify version %s\nBuilt from commit: %s\nBuild date: %s\nGo version: %s\n",
		Version, Commit, BuildDate, runtime.Version())
}
