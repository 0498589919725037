package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo tags connections so system.query_log shows which rapih
// binary and role ran a query. role is e.g. "api" or "corpus".
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	type product = struct{ Name, Version string }
	return clickhouse.ClientInfo{
		Products: []product{
			{Name: "rapih", Version: orUnknown(tag)},
			{Name: "role", Version: orUnknown(role)},
			{Name: "go", Version: runtime.Version()},
			{Name: "commit", Version: vcsShortSHA()},
			{Name: "host", Version: orUnknown(host)},
		},
	}
}

func vcsShortSHA() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
