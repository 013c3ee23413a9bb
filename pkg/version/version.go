// Package version holds build metadata injected with -ldflags.
package version

import "runtime/debug"

// Build metadata. Overridden at link time:
//
//	-X github.com/Sumatoshi-tech/reloadstats/pkg/version.Version=v1.2.3
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const (
	develVersion  = "(devel)"
	vcsRevision   = "vcs.revision"
	vcsTime       = "vcs.time"
	shortHashSize = 12
)

// InitBinaryVersion fills unset metadata from the embedded build info, so
// `go install` builds still report a module version and VCS revision.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	apply(info)
}

func apply(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != develVersion {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case vcsRevision:
			if Commit == "none" {
				Commit = setting.Value
				if len(Commit) > shortHashSize {
					Commit = Commit[:shortHashSize]
				}
			}
		case vcsTime:
			if Date == "unknown" {
				Date = setting.Value
			}
		}
	}
}
