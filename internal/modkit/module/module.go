// Package module holds the port lookup helpers used while composing modules
package module

import (
	phttp "rapih/internal/platform/net/http"
)

// Module is the contract modkit modules satisfy. It lives here as well so
// a module package can export its own Ports type without an import cycle.
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
