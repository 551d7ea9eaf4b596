// Package version holds build information injected at link time, e.g.
//
//	go build -ldflags "-X github.com/arthur-debert/mixconf/internal/version.Version=v0.3.0"
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
