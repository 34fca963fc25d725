// Package version exposes the build version of prodsensor-action.
package version

import (
	"runtime/debug"
)

// Version is the release version. Set via -ldflags for release
// builds; development builds fall back to the VCS revision.
var Version = "dev"

func init() {
	if Version != "dev" {
		return
	}
	Version = vcsRevision()
}

// vcsRevision returns the short git revision embedded by the Go
// toolchain, or "dev" when no VCS info is available.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return "dev"
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if modified {
		revision += "-dirty"
	}
	return revision
}

// String returns the version string.
func String() string {
	return Version
}

// UserAgent returns the User-Agent header value sent on every
// analysis API request.
func UserAgent() string {
	return "prodsensor-action/" + Version
}
