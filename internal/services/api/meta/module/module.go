// Package module wires meta endpoints into the API
package module

import (
	"net/http"
	"time"

	"rapih/internal/modkit"
	"rapih/internal/modkit/httpkit"
	str "rapih/internal/platform/strings"

	metahttp "rapih/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)

	startedAt time.Time
}

var _ modkit.Module = (*Module)(nil)

// New constructs a meta module under /meta
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	d := metahttp.Deps{
		ServiceName: deps.Cfg.MayString("SERVICE_NAME", "rapih-api"),
		StartedAt:   m.startedAt,
		PingTimeout: deps.Cfg.MayDuration("META_PING_TIMEOUT", 2*time.Second),
		PG:          pinger(deps.PG),
		CH:          pinger(deps.CH),
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, d)
		external(r)
	}
	return m
}

func pinger(v any) metahttp.Pinger {
	if p, ok := v.(metahttp.Pinger); ok {
		return p
	}
	return nil
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	modkit.Mount(r, str.MustPrefix(m.prefix), m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
