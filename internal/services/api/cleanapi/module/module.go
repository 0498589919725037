// Package module wires the clean API into the router using modkit
package module

import (
	"net/http"

	"rapih/internal/core/clean"
	"rapih/internal/modkit"
	"rapih/internal/modkit/httpkit"
	str "rapih/internal/platform/strings"
	cleanhttp "rapih/internal/services/api/cleanapi/http"
	"rapih/internal/services/clean/domain"
	cleansvc "rapih/internal/services/clean/service"
)

// Ports is what the clean module offers other modules
type Ports struct {
	Service domain.ServicePort
	Values  domain.ValuesPort
}

// Module implements modkit.Module
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)
	ports    Ports
}

var _ modkit.Module = (*Module)(nil)

// New builds the module over p. Service options come from deps.Cfg.
func New(deps modkit.Deps, p *clean.Pipeline, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("clean")}, opts...)...)

	opt := cleansvc.FromConfig(deps.Cfg)
	opt.Service = deps.Cfg.MayString("SERVICE_NAME", "rapih-api")
	svc := cleansvc.New(p, opt)

	m := &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Service: svc, Values: svc},
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		cleanhttp.Register(r, svc)
		external(r)
	}
	deps.Logger("clean").Info().
		Int("workers", svc.Options().Workers).
		Int("max_batch", svc.Options().MaxBatch).
		Str("default_profile", svc.Options().DefaultProfile.String()).
		Msg("clean module ready")
	return m
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) { modkit.Mount(r, m.prefix, m.mws, m.register) }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Name implements modkit.Module
func (m *Module) Name() string { return str.MustString(m.name, "module name") }
