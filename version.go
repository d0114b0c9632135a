package metasonic

import "runtime"

// Version is the semantic version of the metasonic library. The metasonic
// command reports it unless its own version is set at build time.
const Version = "0.1.0"

// VersionInfo describes the build of the library.
type VersionInfo struct {
	Version   string
	GitCommit string // -ldflags, "unknown" otherwise
	BuildTime string // -ldflags, "unknown" otherwise
	GoVersion string
}

// GetVersionInfo returns the library version and build details.
//
//	go build -ldflags="-X github.com/112RG/metasonic.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/112RG/metasonic.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/metasonic
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
