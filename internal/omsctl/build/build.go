// Package build holds build information set via -ldflags at link time.
package build

var (
	ReleaseVersion = "dev"
	GitCommit      = "unknown"
	GoVersion      = "unknown"
	BuildTime      = "unknown"
)
