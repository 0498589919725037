// Package module wires the corpus job. It mounts no routes.
package module

import (
	"rapih/internal/modkit"
	"rapih/internal/modkit/httpkit"
	"rapih/internal/modkit/repokit"
	"rapih/internal/services/corpus/domain"
	"rapih/internal/services/corpus/repo"
	"rapih/internal/services/corpus/service"
	"rapih/internal/services/corpus/sink"

	cleandom "rapih/internal/services/clean/domain"
)

// Ports exposed by the corpus module
type Ports struct {
	Runner domain.RunnerPort
	// Sink is nil when ClickHouse is disabled or CORE_CORPUS_SINK is off
	Sink *sink.ClickHouse
}

// Module implements modkit.Module
type Module struct {
	ports Ports
}

var _ modkit.Module = (*Module)(nil)

// New builds the corpus module. deps.PG is required.
func New(deps modkit.Deps, cleaner cleandom.ValuesPort) *Module {
	opts := FromConfig(deps.Cfg)
	if deps.PG == nil {
		panic("corpus module requires Postgres")
	}

	var sk *sink.ClickHouse
	var sp domain.SinkPort
	if opts.Sink && deps.CH != nil {
		sk = sink.New(deps.CH)
		sp = sk
	}

	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(opts.StatementTimeout))
	svc := service.New(db, repo.NewPG(), cleaner, sp, service.Config{
		PageSize:       opts.PageSize,
		DefaultProfile: opts.Profile,
	})

	deps.Logger("corpus").Info().
		Int("page_size", svc.Cfg.PageSize).
		Str("profile", svc.Cfg.DefaultProfile.String()).
		Bool("sink", sk != nil).
		Msg("corpus module ready")
	return &Module{ports: Ports{Runner: svc, Sink: sk}}
}

// Name implements modkit.Module
func (m *Module) Name() string { return "corpus" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
