// Package middleware wraps chi middleware and adds the access log and panic
// recovery used by every service.
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the standard net/http middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID propagates X-Request-ID or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache disables client and proxy caching
func NoCache() Middleware { return chimw.NoCache }

// Compress gzips or deflates responses at level
func Compress(level int) Middleware {
	c := chimw.NewCompressor(level, "application/json", "text/plain")
	return c.Handler
}

// StripSlashes drops a trailing slash from the path
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Throttle caps concurrent requests, queueing up to backlog for ttl
func Throttle(limit, backlog int, ttl time.Duration) Middleware {
	return chimw.ThrottleBacklog(limit, backlog, ttl)
}

// CORSOptions is the part of go-chi/cors the services configure
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	defaultCORSMethods = []string{"GET", "POST", "OPTIONS"}
	defaultCORSHeaders = []string{"Accept", "Content-Type", "X-Request-ID"}
)

// CORS applies o, filling empty method and header lists with defaults
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   orDefault(o.AllowedMethods, defaultCORSMethods),
		AllowedHeaders:   orDefault(o.AllowedHeaders, defaultCORSHeaders),
		ExposedHeaders:   orDefault(o.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// Defaults is the stack every API mounts first. RecoverJSON sits inside
// RequestID so panic bodies carry the id.
func Defaults(slow time.Duration) []Middleware {
	return []Middleware{
		RealIP(),
		RequestID(),
		AccessLog(AccessLogOptions{Slow: slow}),
		RecoverJSON,
		Compress(flate.DefaultCompression),
		NoCache(),
	}
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
