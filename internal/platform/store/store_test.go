package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"rapih/internal/platform/config"
	perr "rapih/internal/platform/errors"
	"rapih/internal/platform/logger"
	"rapih/internal/platform/testkit"
)

// fakeRows serves a fixed int column
type fakeRows struct {
	vals []int
	i    int
	err  error
}

func (f *fakeRows) Next() bool { f.i++; return f.i <= len(f.vals) }
func (f *fakeRows) Scan(dst ...any) error {
	*(dst[0].(*int)) = f.vals[f.i-1]
	return nil
}
func (f *fakeRows) Err() error        { return f.err }
func (f *fakeRows) Close()            {}
func (f *fakeRows) Columns() []string { return []string{"n"} }

type fakeTag int64

func (t fakeTag) String() string      { return "UPDATE" }
func (t fakeTag) RowsAffected() int64 { return int64(t) }

type fakeRow struct{ v int }

func (r fakeRow) Scan(dst ...any) error { *(dst[0].(*int)) = r.v; return nil }

type fakeQ struct {
	vals    []int
	execErr error
	lastSQL string
}

func (f *fakeQ) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.lastSQL = sql
	return fakeTag(3), f.execErr
}
func (f *fakeQ) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	f.lastSQL = sql
	return &fakeRows{vals: f.vals}, nil
}
func (f *fakeQ) QueryRow(_ context.Context, sql string, _ ...any) Row {
	f.lastSQL = sql
	return fakeRow{v: 42}
}

func scanInt(r Row) (int, error) {
	var n int
	err := r.Scan(&n)
	return n, err
}

func TestHelpers(t *testing.T) {
	ctx := context.Background()
	q := &fakeQ{vals: []int{1, 2, 3}}

	n, err := Scalar[int](ctx, q, "SELECT 42")
	if err != nil || n != 42 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}

	all, err := Many(ctx, q, scanInt, "SELECT n")
	if err != nil || len(all) != 3 || all[2] != 3 {
		t.Fatalf("Many = %v, %v", all, err)
	}

	if _, err := One(ctx, q, scanInt, "SELECT n"); err == nil {
		t.Fatalf("One over 3 rows should fail")
	}
	q.vals = nil
	if _, err := One(ctx, q, scanInt, "SELECT n"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("One over 0 rows = %v", err)
	}
	q.vals = []int{7}
	if v, err := One(ctx, q, scanInt, "SELECT n"); err != nil || v != 7 {
		t.Fatalf("One = %d, %v", v, err)
	}

	aff, err := ExecAffected(ctx, q, "UPDATE t")
	if err != nil || aff != 3 {
		t.Fatalf("ExecAffected = %d, %v", aff, err)
	}
	q.execErr = errors.New("down")
	if _, err := ExecAffected(ctx, q, "UPDATE t"); err == nil {
		t.Fatalf("expected exec error")
	}
}

type fakePinger struct {
	err    error
	closed bool
}

func (f *fakePinger) Ping(context.Context) error { return f.err }
func (f *fakePinger) Close() error               { f.closed = true; return nil }

type pingTx struct {
	*fakeQ
	*fakePinger
}

func (pingTx) Tx(context.Context, func(RowQuerier) error) error { return nil }

type pingCH struct{ *fakePinger }

func (pingCH) Insert(context.Context, string, []string, [][]any) error { return nil }
func (pingCH) Query(context.Context, string, ...any) (Rows, error)     { return &fakeRows{}, nil }
func (pingCH) Exec(context.Context, string, ...any) error              { return nil }

func TestOpen_NothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("backends should be nil")
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("guard: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestGuardAndClose(t *testing.T) {
	pgp := &fakePinger{err: errors.New("pg down")}
	chp := &fakePinger{err: errors.New("ch down")}
	s := &Store{PG: pingTx{&fakeQ{}, pgp}, CH: pingCH{chp}}

	err := s.Guard(context.Background())
	if err == nil {
		t.Fatalf("expected guard error")
	}
	testkit.MustContain(t, err.Error(), "pg: pg down")
	testkit.MustContain(t, err.Error(), "ch: ch down")

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !pgp.closed || !chp.closed {
		t.Fatalf("close not propagated")
	}

	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatalf("nil store guard should fail")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("STORE_PG_ENABLED", "true")
	t.Setenv("STORE_PG_URL", "postgres://x")
	t.Setenv("STORE_PG_MAX_CONNS", "3")
	t.Setenv("STORE_PG_PING_TIMEOUT", "1s")
	t.Setenv("STORE_CH_DATABASE", "analytics")

	c := FromEnv(config.New(), "rapih-corpus")
	if !c.PG.Enabled || c.PG.URL != "postgres://x" || c.PG.MaxConns != 3 || c.PG.PingTimeout != time.Second {
		t.Fatalf("pg = %+v", c.PG)
	}
	if c.CH.Enabled || c.CH.Database != "analytics" || c.CH.URL != "" {
		t.Fatalf("ch = %+v", c.CH)
	}
	if c.AppName != "rapih-corpus" {
		t.Fatalf("app = %q", c.AppName)
	}
}

func TestFromEnv_EnabledNeedsURL(t *testing.T) {
	t.Setenv("STORE_CH_ENABLED", "1")
	testkit.MustPanic(t, func() { FromEnv(config.New(), "x") })
}

func TestOpenPG_BadURL(t *testing.T) {
	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "://bad"}}, WithLogger(logger.Nop()))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenPG_GivesUpOnCancel(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &sleep, func(context.Context, time.Duration) error { return context.Canceled })

	cfg := Config{PG: PGConfig{
		Enabled:        true,
		URL:            "postgres://u:p@127.0.0.1:1/db?connect_timeout=1",
		ConnectRetries: 5,
		PingTimeout:    time.Second,
	}}
	_, err := Open(context.Background(), cfg, WithLogger(logger.Nop()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if strings.Contains(err.Error(), "attempts") {
		t.Fatalf("should stop before exhausting attempts")
	}
}
