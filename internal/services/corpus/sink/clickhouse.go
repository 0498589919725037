// Package sink appends cleaned rows to ClickHouse
package sink

import (
	"context"
	"fmt"
	"time"

	"rapih/internal/platform/store"
	"rapih/internal/services/corpus/domain"
)

// Table is the ClickHouse target
const Table = "reviews_clean"

var columns = []string{
	"review_id", "profile", "clean", "dropped", "tokens",
	"latin_share", "invalid_input", "run_id", "cleaned_at",
}

// ClickHouse implements domain.SinkPort
type ClickHouse struct {
	ch store.Clickhouse
}

var _ domain.SinkPort = (*ClickHouse)(nil)

// New wraps ch. A nil ch panics.
func New(ch store.Clickhouse) *ClickHouse {
	if ch == nil {
		panic("sink requires a ClickHouse backend")
	}
	return &ClickHouse{ch: ch}
}

// Ensure creates the table when missing. ReplacingMergeTree keeps the newest
// cleaned_at per (profile, review_id), matching the Postgres upsert.
func (s *ClickHouse) Ensure(ctx context.Context) error {
	return s.ch.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		review_id     Int64,
		profile       LowCardinality(String),
		clean         String,
		dropped       Bool,
		tokens        Int32,
		latin_share   Float64,
		invalid_input Bool,
		run_id        String,
		cleaned_at    DateTime64(3, 'UTC')
	) ENGINE = ReplacingMergeTree(cleaned_at)
	ORDER BY (profile, review_id)`, Table))
}

// Append implements domain.SinkPort
func (s *ClickHouse) Append(ctx context.Context, rows []domain.CleanRow) error {
	if len(rows) == 0 {
		return nil
	}
	return s.ch.Insert(ctx, Table, columns, toValues(rows, time.Now().UTC()))
}

func toValues(rows []domain.CleanRow, now time.Time) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		at := r.CleanedAt
		if at.IsZero() {
			at = now
		}
		out[i] = []any{
			r.ReviewID, r.Profile, r.Clean, r.Dropped, int32(r.Tokens),
			r.LatinShare, r.InvalidInput, r.RunID, at,
		}
	}
	return out
}
