// Package repo reads source reviews and upserts cleaned rows in Postgres
package repo

import (
	"context"
	"fmt"
	"strings"

	"rapih/internal/modkit/repokit"
	"rapih/internal/services/corpus/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs the Postgres binder
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: repokit.RequireQueryer(q)} }

// Storage is the corpus repository
type Storage interface {
	// Page returns up to limit reviews with id > after, ordered by id
	Page(ctx context.Context, after int64, to int64, limit int) ([]domain.Review, error)
	// Upsert writes rows keyed by (review_id, profile) and reports rows touched
	Upsert(ctx context.Context, rows []domain.CleanRow) (int64, error)
}

// Page implements Storage. to <= 0 leaves the range open.
func (s *pg) Page(ctx context.Context, after int64, to int64, limit int) ([]domain.Review, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString("SELECT id, body FROM reviews WHERE id > " + arg(after) + "\n")
	if to > 0 {
		sb.WriteString("  AND id <= " + arg(to) + "\n")
	}
	sb.WriteString("ORDER BY id\nLIMIT " + arg(limit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Review, 0, limit)
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.Body); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const upsertCols = 8

// Upsert implements Storage
func (s *pg) Upsert(ctx context.Context, xs []domain.CleanRow) (int64, error) {
	if len(xs) == 0 {
		return 0, nil
	}
	sql, args := upsertSQL(xs)
	tag, err := s.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func upsertSQL(xs []domain.CleanRow) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO reviews_clean
		(review_id, profile, clean, dropped, tokens, latin_share, invalid_input, run_id) VALUES `)

	args := make([]any, 0, len(xs)*upsertCols)
	for i, r := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*upsertCols + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d::uuid)",
			base, base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args,
			r.ReviewID, r.Profile, r.Clean, r.Dropped,
			r.Tokens, r.LatinShare, r.InvalidInput, r.RunID,
		)
	}
	// rerunning a profile replaces the earlier result
	sb.WriteString(` ON CONFLICT (review_id, profile) DO UPDATE SET
		clean = EXCLUDED.clean,
		dropped = EXCLUDED.dropped,
		tokens = EXCLUDED.tokens,
		latin_share = EXCLUDED.latin_share,
		invalid_input = EXCLUDED.invalid_input,
		run_id = EXCLUDED.run_id,
		cleaned_at = now()`)
	return sb.String(), args
}
