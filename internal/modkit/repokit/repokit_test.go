package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"rapih/internal/platform/testkit"
)

type fakeQ struct{ execs []string }

func (f *fakeQ) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.execs = append(f.execs, sql)
	return nil, nil
}

func (f *fakeQ) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }

func (f *fakeQ) QueryRow(context.Context, string, ...any) Row { return nil }

type fakeTx struct {
	fakeQ
	txs int
}

func (f *fakeTx) Tx(_ context.Context, fn func(q Queryer) error) error {
	f.txs++
	return fn(&f.fakeQ)
}

func TestBinder(t *testing.T) {
	b := BindFunc[string](func(Queryer) string { return "ok" })
	if got := MustBind[string](b, &fakeQ{}); got != "ok" {
		t.Fatalf("MustBind = %q", got)
	}
	testkit.MustPanic(t, func() { MustBind[string](b, nil) })
}

func TestWithBeginHooks(t *testing.T) {
	inner := &fakeTx{}
	var order []string
	hook := func(name string, err error) BeginHook {
		return func(context.Context, Queryer) error {
			order = append(order, name)
			return err
		}
	}

	tx := WithBeginHooks(inner, hook("a", nil), StatementTimeout(1500*time.Millisecond), hook("b", nil))
	err := WithTx(context.Background(), tx, func(Queryer) error {
		order = append(order, "fn")
		return nil
	})
	if err != nil || inner.txs != 1 {
		t.Fatalf("err = %v txs = %d", err, inner.txs)
	}
	if strings.Join(order, ",") != "a,b,fn" {
		t.Fatalf("order = %v", order)
	}
	if len(inner.execs) != 1 || inner.execs[0] != "SET LOCAL statement_timeout = 1500" {
		t.Fatalf("execs = %v", inner.execs)
	}

	boom := errors.New("boom")
	tx = WithBeginHooks(inner, hook("x", boom))
	ran := false
	if err := tx.Tx(context.Background(), func(Queryer) error { ran = true; return nil }); !errors.Is(err, boom) || ran {
		t.Fatalf("hook error not propagated: %v ran=%v", err, ran)
	}
}

func TestStatementTimeout_Zero(t *testing.T) {
	q := &fakeQ{}
	if err := StatementTimeout(0)(context.Background(), q); err != nil || len(q.execs) != 0 {
		t.Fatalf("zero timeout should not exec: %v", q.execs)
	}
}

type guard struct{ err error }

func (g guard) Guard(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("no deadline")
	}
	return g.err
}

func TestMustGuard(t *testing.T) {
	testkit.MustNotPanic(t, func() { MustGuard(context.Background(), guard{}) })
	testkit.MustPanic(t, func() { MustGuard(context.Background(), guard{err: errors.New("down")}) })
}
