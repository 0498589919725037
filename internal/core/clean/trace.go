package clean

import "strings"

// TraceEntry records one stage that changed the token sequence
type TraceEntry struct {
	Stage  string `json:"stage"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// sameTokens compares whitespace separated tokens, so spacing-only edits count as no change
func sameTokens(a, b string) bool {
	if a == b {
		return true
	}
	fa, fb := strings.Fields(a), strings.Fields(b)
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if fa[i] != fb[i] {
			return false
		}
	}
	return true
}
