package pg

import (
	"context"
	"strings"

	"rapih/internal/platform/logger"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives every statement the store adapter runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements through log. Failures log at error, slow ones at warn.
func Tracer(log *logger.Logger) QueryTracer {
	l := log.With().Str("component", "pg").Logger()
	return &zlTracer{log: &l}
}

type zlTracer struct{ log *logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Debug()
	switch {
	case ev.Err != nil:
		evt = z.log.Error().Err(ev.Err)
	case ev.Slow:
		evt = z.log.Warn()
	}
	evt.Ctx(ctx).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Int("args", len(ev.Args)).
		Msg("pg query")
}

// compact folds whitespace runs into single spaces
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
