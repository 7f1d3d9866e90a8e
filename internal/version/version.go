// Package version exposes build-time version information.
//
// The variables below are populated at build time via ldflags, e.g:
//
//	go build -ldflags "-X github.com/information-sharing-networks/esign-gateway/app/internal/version.version=v1.2.0 \
//	  -X github.com/information-sharing-networks/esign-gateway/app/internal/version.gitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/information-sharing-networks/esign-gateway/app/internal/version.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Info describes the build of the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// Get returns the build information for the running binary.
func Get() Info {
	return Info{
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
	}
}
