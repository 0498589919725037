package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"rapih/internal/core/clean"
	"rapih/internal/core/lexicon"
	"rapih/internal/modkit/repokit"
	perr "rapih/internal/platform/errors"
	"rapih/internal/platform/testkit"
	cleansvc "rapih/internal/services/clean/service"
	"rapih/internal/services/corpus/domain"
	"rapih/internal/services/corpus/repo"
)

type memStore struct {
	reviews  []domain.Review
	upserted map[int64]domain.CleanRow
	pages    int
	failPage int
}

func (m *memStore) Page(_ context.Context, after, to int64, limit int) ([]domain.Review, error) {
	m.pages++
	if m.failPage > 0 && m.pages == m.failPage {
		return nil, errors.New("conn reset")
	}
	var out []domain.Review
	for _, r := range m.reviews {
		if r.ID <= after || (to > 0 && r.ID > to) {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) Upsert(_ context.Context, rows []domain.CleanRow) (int64, error) {
	for _, r := range rows {
		m.upserted[r.ReviewID] = r
	}
	return int64(len(rows)), nil
}

type memTx struct{ txs int }

func (t *memTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (t *memTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (t *memTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (t *memTx) Tx(_ context.Context, fn func(repokit.Queryer) error) error {
	t.txs++
	return fn(t)
}

type memSink struct{ rows []domain.CleanRow }

func (s *memSink) Append(_ context.Context, rows []domain.CleanRow) error {
	s.rows = append(s.rows, rows...)
	return nil
}

func str(s string) *string { return &s }

func fixture(t *testing.T, n int) (*Service, *memStore, *memSink) {
	t.Helper()
	lex, err := lexicon.Default()
	if err != nil {
		t.Fatalf("lexicon: %v", err)
	}
	p, err := clean.New(lex)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	texts := []string{"Barangnyaaa bagusss bangett", "ok", "pengiriman cepat mantap"}
	ms := &memStore{upserted: map[int64]domain.CleanRow{}}
	for i := 1; i <= n; i++ {
		r := domain.Review{ID: int64(i * 10)}
		if i%4 != 0 {
			r.Body = str(texts[i%len(texts)])
		}
		ms.reviews = append(ms.reviews, r)
	}
	sk := &memSink{}
	b := repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return ms })
	svc := New(&memTx{}, b, cleansvc.New(p, cleansvc.Options{Workers: 3}), sk, Config{PageSize: 4})
	svc.newID = func() string { return "11111111-1111-1111-1111-111111111111" }
	return svc, ms, sk
}

func TestRun_AllPages(t *testing.T) {
	svc, ms, sk := fixture(t, 10)
	st, err := svc.Run(context.Background(), domain.RunInput{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if st.Pages != 3 || st.Read != 10 || st.Written != 10 || st.Sunk != 10 || st.LastID != 100 {
		t.Fatalf("stats = %+v", st)
	}
	if st.Invalid != 2 || st.Profile != "model" || st.RunID == "" {
		t.Fatalf("stats = %+v", st)
	}
	if len(ms.upserted) != 10 || len(sk.rows) != 10 {
		t.Fatalf("upserted %d sunk %d", len(ms.upserted), len(sk.rows))
	}
	if got := ms.upserted[20].Clean; got != "pengiriman cepat mantap" {
		t.Fatalf("review 20 = %q", got)
	}
	if r := ms.upserted[40]; !r.InvalidInput || !r.Dropped {
		t.Fatalf("null body should be invalid: %+v", r)
	}
	ids := make([]int64, len(sk.rows))
	for i, r := range sk.rows {
		ids[i] = r.ReviewID
	}
	if !sort.SliceIsSorted(ids, func(i, j int) bool { return ids[i] < ids[j] }) {
		t.Fatalf("sink order = %v", ids)
	}
}

func TestRun_RangeAndMaxRows(t *testing.T) {
	svc, ms, _ := fixture(t, 10)
	st, err := svc.Run(context.Background(), domain.RunInput{Range: domain.Range{From: 30, To: 80}, MaxRows: 5})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if st.Read != 5 || st.LastID != 70 {
		t.Fatalf("stats = %+v", st)
	}
	if _, ok := ms.upserted[20]; ok {
		t.Fatalf("row before range written")
	}
	if _, ok := ms.upserted[30]; !ok {
		t.Fatalf("from is inclusive")
	}
}

func TestRun_DryRun(t *testing.T) {
	svc, ms, sk := fixture(t, 6)
	st, err := svc.Run(context.Background(), domain.RunInput{DryRun: true, Profile: "tokenizer"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if st.Read != 6 || st.Written != 0 || st.Sunk != 0 || !st.DryRun || st.Profile != "tokenizer" {
		t.Fatalf("stats = %+v", st)
	}
	if len(ms.upserted) != 0 || len(sk.rows) != 0 {
		t.Fatalf("dry run wrote rows")
	}
}

func TestRun_Errors(t *testing.T) {
	svc, _, _ := fixture(t, 3)
	cases := []struct {
		name string
		in   domain.RunInput
		code perr.ErrorCode
	}{
		{"profile", domain.RunInput{Profile: "semantic"}, perr.ErrorCodeInvalidArgument},
		{"range", domain.RunInput{Range: domain.Range{From: 9, To: 2}}, perr.ErrorCodeInvalidArgument},
	}
	for _, tc := range cases {
		if _, err := svc.Run(context.Background(), tc.in); perr.CodeOf(err) != tc.code {
			t.Fatalf("%s: err = %v", tc.name, err)
		}
	}

	svc, ms, _ := fixture(t, 10)
	ms.failPage = 2
	st, err := svc.Run(context.Background(), domain.RunInput{})
	if perr.CodeOf(err) != perr.ErrorCodeDB || st.Pages != 1 || st.Written != 4 {
		t.Fatalf("page failure: %+v %v", st, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Run(ctx, domain.RunInput{}); perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("cancelled: %v", err)
	}
}

func TestNew_Guards(t *testing.T) {
	b := repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return nil })
	testkit.MustPanic(t, func() { New(nil, b, nil, nil, Config{}) })
	testkit.MustPanic(t, func() { New(&memTx{}, b, nil, nil, Config{}) })

	svc, _, _ := fixture(t, 1)
	svc = New(svc.DB, svc.Binder, svc.Cleaner, nil, Config{PageSize: 1 << 20, DefaultProfile: clean.Profile(99)})
	if svc.Cfg.PageSize != MaxPageSize || svc.Cfg.DefaultProfile != clean.Model {
		t.Fatalf("cfg = %+v", svc.Cfg)
	}
}
