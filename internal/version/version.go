// Package version carries build metadata stamped in with -ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/docsite/internal/version.Version=v1.0.0"
package version

import "fmt"

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("docsite %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
