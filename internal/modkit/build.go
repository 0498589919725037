package modkit

import (
	"net/http"

	phttp "rapih/internal/platform/net/http"
)

// Built is the resolved option set
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies opts in order. Register defaults to a no-op and Mw is a copy.
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount routes a module under prefix with its middleware, then calls each
// register function in order
func Mount(r phttp.Router, prefix string, mw []func(http.Handler) http.Handler, register ...func(phttp.Router)) {
	mount := func(rr phttp.Router) {
		if len(mw) > 0 {
			rr.Use(mw...)
		}
		for _, reg := range register {
			if reg != nil {
				reg(rr)
			}
		}
	}
	if prefix == "" || prefix == "/" {
		r.Group(mount)
		return
	}
	r.Route(prefix, mount)
}
