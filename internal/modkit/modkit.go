// Package modkit is the wiring kit API modules are built with
package modkit

import (
	phttp "rapih/internal/platform/net/http"
)

// Module mounts routes and exposes a port set other modules can consume
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
