// Package version reports build metadata stamped in with -ldflags
package version

import "runtime/debug"

// BuildInfo describes the running binary
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// set via -ldflags "-X 'rapih/internal/core/version.version=v0.1.0' -X ..."
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns build info for service. An unstamped commit falls back to the
// VCS revision the toolchain recorded.
func Info(service string) BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok && info != nil {
		bi.GoVersion = info.GoVersion
		if bi.Commit == "none" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					bi.Commit = s.Value
				}
			}
		}
	}
	return bi
}

// String is the one line form printed by -version flags
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}
