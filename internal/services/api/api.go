// Package api composes the HTTP API out of modules
package api

import (
	"time"

	"rapih/internal/core/clean"
	"rapih/internal/core/version"
	"rapih/internal/platform/config"
	"rapih/internal/platform/logger"
	phttp "rapih/internal/platform/net/http"
	"rapih/internal/platform/net/middleware"
	"rapih/internal/platform/store"

	"rapih/internal/modkit"
	"rapih/internal/modkit/httpkit"
	"rapih/internal/modkit/module"
	"rapih/internal/modkit/swaggerkit"

	cleanmod "rapih/internal/services/api/cleanapi/module"
	metamod "rapih/internal/services/api/meta/module"
)

// Options are the API options. Store may be nil when no backend is enabled.
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Pipeline       *clean.Pipeline
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API onto r. It must run before any other route is added
// because the root middleware goes on first.
func Mount(r phttp.Router, opt Options) {
	cfg := opt.Config
	deps := modkit.Deps{Log: opt.Logger, Cfg: cfg}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	r.Use(middleware.Defaults(cfg.MayDuration("API_SLOW", 500*time.Millisecond))...)
	r.Use(middleware.Heartbeat("/ping"))

	mods := []modkit.Module{
		metamod.New(deps),
		cleanmod.New(deps, opt.Pipeline),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout:     cfg.MayDuration("API_TIMEOUT", 30*time.Second),
		CORSOrigins: cfg.MayCSV("API_CORS_ORIGINS", nil),
		MaxInFlight: cfg.MayInt("API_MAX_INFLIGHT", 0),
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// ports are looked up by module name
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger, swaggerkit.WithVersion(version.Info("").Version))
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
}
