package httpkit

import (
	"net/http"
	"time"

	"rapih/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration
	CORSOrigins []string
	// MaxInFlight caps concurrent API requests; 0 disables the throttle
	MaxInFlight int
}

// CommonStack is the per API middleware set mounted under /api/v1. The
// outer request id, access log and recovery live on the root router.
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	mws := []func(http.Handler) http.Handler{
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
	if len(o.CORSOrigins) > 0 {
		mws = append(mws, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	if o.MaxInFlight > 0 {
		mws = append(mws, middleware.Throttle(o.MaxInFlight, o.MaxInFlight*4, o.Timeout))
	}
	return mws
}
