package sink

import (
	"context"
	"strings"
	"testing"
	"time"

	"rapih/internal/platform/store"
	"rapih/internal/platform/testkit"
	"rapih/internal/services/corpus/domain"
)

type fakeCH struct {
	store.Clickhouse
	table string
	cols  []string
	rows  [][]any
	exec  string
}

func (f *fakeCH) Insert(_ context.Context, table string, cols []string, rows [][]any) error {
	f.table, f.cols, f.rows = table, cols, rows
	return nil
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.exec = sql
	return nil
}

func TestAppend(t *testing.T) {
	f := &fakeCH{}
	s := New(f)
	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	err := s.Append(context.Background(), []domain.CleanRow{
		{ReviewID: 7, Profile: "model", Clean: "bagus", Tokens: 1, RunID: "r1", CleanedAt: at},
		{ReviewID: 8, Profile: "model", Dropped: true, RunID: "r1"},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if f.table != Table || len(f.cols) != 9 || len(f.rows) != 2 {
		t.Fatalf("insert = %s %v %d", f.table, f.cols, len(f.rows))
	}
	for _, r := range f.rows {
		if len(r) != len(f.cols) {
			t.Fatalf("row width %d", len(r))
		}
	}
	if f.rows[0][4] != int32(1) || f.rows[0][8] != at {
		t.Fatalf("row0 = %v", f.rows[0])
	}
	if f.rows[1][8].(time.Time).IsZero() {
		t.Fatalf("missing cleaned_at default")
	}

	f = &fakeCH{}
	if err := New(f).Append(context.Background(), nil); err != nil || f.table != "" {
		t.Fatalf("empty append inserted")
	}
}

func TestEnsure(t *testing.T) {
	f := &fakeCH{}
	if err := New(f).Ensure(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	testkit.MustContain(t, f.exec, "ReplacingMergeTree")
	if !strings.Contains(f.exec, Table) {
		t.Fatalf("exec = %s", f.exec)
	}
	testkit.MustPanic(t, func() { New(nil) })
}
