// Package version carries the build metadata reported by the matchtuner
// command line tools.
package version

// Overridden at build time through -ldflags, e.g.
// -X matchtuner/internal/version.GitCommit=$(git rev-parse --short HEAD).
var (
	// Version is the semantic version of the tools.
	Version = "0.1.0"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// GitCommit is the abbreviated commit hash the build was made from.
	GitCommit = "unknown"
)
