// Package version holds build metadata injected via ldflags.
package version

// Set at build time, e.g.
//
//	go build -ldflags "-X <module>/internal/version.Version=v1.0.0 -X <module>/internal/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version = "dev"
	Commit  = "unknown"
)
