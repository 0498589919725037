// Package strings provides small string helpers shared across packages
package strings

import (
	std "strings"
	"unicode/utf8"
)

// MustString returns s when it has non blank content and panics otherwise.
// name is used in the panic message.
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a route prefix to a single leading slash and no
// trailing slash. It panics on an empty or root prefix.
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Truncate cuts s to at most n runes, appending an ellipsis when it cut
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i, count := 0, 0
	for i = range s {
		if count == n {
			break
		}
		count++
	}
	return s[:i] + "…"
}

// SQLNull returns nil for blank s so it binds as NULL
func SQLNull(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// FirstNonEmpty returns the first argument with non blank content
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if std.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
