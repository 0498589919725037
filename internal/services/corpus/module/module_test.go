package module

import (
	"context"
	"testing"
	"time"

	"rapih/internal/core/clean"
	"rapih/internal/modkit"
	"rapih/internal/platform/config"
	"rapih/internal/platform/logger"
	"rapih/internal/platform/store"
	"rapih/internal/platform/testkit"
	cleandom "rapih/internal/services/clean/domain"
)

type fakePG struct{ store.TxRunner }

type fakeCH struct{ store.Clickhouse }

type fakeCleaner struct{}

func (fakeCleaner) CleanValues(context.Context, clean.Profile, []any, bool) ([]cleandom.Record, error) {
	return nil, nil
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_CORPUS_PAGE_SIZE", "50")
	t.Setenv("CORE_CORPUS_PROFILE", "Analysis")
	t.Setenv("CORE_CORPUS_SINK", "false")
	t.Setenv("CORE_CORPUS_STATEMENT_TIMEOUT", "5s")
	o := FromConfig(config.New())
	if o.PageSize != 50 || o.Profile != clean.Analysis || o.Sink || o.StatementTimeout != 5*time.Second {
		t.Fatalf("opts = %+v", o)
	}
}

func TestNew(t *testing.T) {
	deps := modkit.Deps{Cfg: config.New(), Log: logger.Nop(), PG: fakePG{}, CH: fakeCH{}}
	m := New(deps, fakeCleaner{})
	p := m.Ports().(Ports)
	if m.Name() != "corpus" || p.Runner == nil || p.Sink == nil {
		t.Fatalf("ports = %+v", p)
	}

	deps.CH = nil
	if p := New(deps, fakeCleaner{}).Ports().(Ports); p.Sink != nil {
		t.Fatalf("sink without ClickHouse")
	}

	deps.PG = nil
	testkit.MustPanic(t, func() { New(deps, fakeCleaner{}) })
}
