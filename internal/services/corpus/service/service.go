// Package service runs the corpus job: page reviews from Postgres, clean
// each page in parallel, upsert the results and optionally sink them
package service

import (
	"context"
	"math"
	"time"

	"rapih/internal/core/clean"
	"rapih/internal/modkit/repokit"
	perr "rapih/internal/platform/errors"
	"rapih/internal/platform/logger"
	cleandom "rapih/internal/services/clean/domain"
	"rapih/internal/services/corpus/domain"
	"rapih/internal/services/corpus/repo"

	"github.com/google/uuid"
)

// MaxPageSize keeps the upsert under the Postgres bind parameter cap
const MaxPageSize = 5000

// Config for the corpus service
type Config struct {
	// PageSize rows per keyset page; <=0 -> 500, capped at MaxPageSize
	PageSize int
	// DefaultProfile applies when RunInput names none
	DefaultProfile clean.Profile
}

// Service implements domain.RunnerPort
type Service struct {
	DB      repokit.TxRunner
	Binder  repokit.Binder[repo.Storage]
	Cleaner cleandom.ValuesPort
	// Sink is optional
	Sink domain.SinkPort
	Cfg  Config

	now   func() time.Time
	newID func() string
}

var _ domain.RunnerPort = (*Service)(nil)

// New constructs the service. db and cleaner are required.
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], cleaner cleandom.ValuesPort, sink domain.SinkPort, cfg Config) *Service {
	if db == nil {
		panic("corpus.Service requires a non nil TxRunner")
	}
	if b == nil || cleaner == nil {
		panic("corpus.Service requires a binder and a cleaner")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 500
	}
	if cfg.PageSize > MaxPageSize {
		cfg.PageSize = MaxPageSize
	}
	if !cfg.DefaultProfile.Valid() {
		cfg.DefaultProfile = clean.Model
	}
	return &Service{
		DB: db, Binder: b, Cleaner: cleaner, Sink: sink, Cfg: cfg,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Run implements domain.RunnerPort. Pages are processed one after another;
// the rows of a page are cleaned with the cleaner's worker pool. A failed
// page stops the run and the stats cover the pages written before it.
func (s *Service) Run(ctx context.Context, in domain.RunInput) (domain.RunStats, error) {
	profile := s.Cfg.DefaultProfile
	if in.Profile != "" {
		p, err := clean.ParseProfile(in.Profile)
		if err != nil {
			return domain.RunStats{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "unknown profile"), "profile")
		}
		profile = p
	}
	if in.Range.To > 0 && in.Range.From > in.Range.To {
		return domain.RunStats{}, perr.InvalidArgf("range from %d is past to %d", in.Range.From, in.Range.To)
	}

	st := domain.RunStats{RunID: s.newID(), Profile: profile.String(), DryRun: in.DryRun}
	ctx = logger.WithRun(ctx, st.RunID)
	log := logger.C(ctx)
	start := s.now()

	log.Info().
		Str("profile", st.Profile).
		Int64("from", in.Range.From).
		Int64("to", in.Range.To).
		Bool("dry_run", in.DryRun).
		Int("page_size", s.Cfg.PageSize).
		Msg("corpus run started")

	after := int64(math.MinInt64)
	if in.Range.From != 0 {
		after = in.Range.From - 1
	}
	for {
		if err := ctx.Err(); err != nil {
			return s.finish(st, start), perr.Wrap(err, perr.ErrorCodeUnavailable, "corpus run cancelled")
		}
		limit := s.Cfg.PageSize
		if in.MaxRows > 0 {
			left := in.MaxRows - st.Read
			if left <= 0 {
				break
			}
			limit = min(limit, left)
		}

		page, err := s.page(ctx, after, in.Range.To, limit)
		if err != nil {
			return s.finish(st, start), err
		}
		if len(page) == 0 {
			break
		}
		if err := s.process(ctx, profile, st.RunID, in.DryRun, page, &st); err != nil {
			return s.finish(st, start), err
		}
		after = page[len(page)-1].ID
		st.LastID = after

		log.Debug().Int("page", st.Pages).Int("rows", len(page)).Int64("last_id", after).Msg("page done")
		if len(page) < limit {
			break
		}
	}

	st = s.finish(st, start)
	log.Info().
		Int("pages", st.Pages).
		Int("read", st.Read).
		Int64("written", st.Written).
		Int("sunk", st.Sunk).
		Int("dropped", st.Dropped).
		Int("invalid", st.Invalid).
		Dur("elapsed", st.Elapsed).
		Msg("corpus run finished")
	return st, nil
}

func (s *Service) finish(st domain.RunStats, start time.Time) domain.RunStats {
	st.Elapsed = s.now().Sub(start)
	return st
}

func (s *Service) page(ctx context.Context, after, to int64, limit int) ([]domain.Review, error) {
	var out []domain.Review
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = repokit.MustBind(s.Binder, q).Page(ctx, after, to, limit)
		return err
	})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "read reviews page")
	}
	return out, nil
}

func (s *Service) process(ctx context.Context, p clean.Profile, runID string, dry bool, page []domain.Review, st *domain.RunStats) error {
	values := make([]any, len(page))
	for i, r := range page {
		if r.Body != nil {
			values[i] = *r.Body
		}
	}
	recs, err := s.Cleaner.CleanValues(ctx, p, values, false)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	rows := make([]domain.CleanRow, len(page))
	for i, rec := range recs {
		rows[i] = domain.CleanRow{
			ReviewID:     page[i].ID,
			Profile:      p.String(),
			Clean:        rec.Clean,
			Dropped:      rec.Dropped,
			Tokens:       rec.Tokens,
			LatinShare:   rec.LatinShare,
			InvalidInput: rec.InvalidInput,
			RunID:        runID,
			CleanedAt:    now,
		}
		if rec.Dropped {
			st.Dropped++
		}
		if rec.InvalidInput {
			st.Invalid++
		}
	}
	st.Pages++
	st.Read += len(page)
	if dry {
		return nil
	}

	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		n, err := repokit.MustBind(s.Binder, q).Upsert(ctx, rows)
		st.Written += n
		return err
	})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "upsert cleaned reviews")
	}
	if s.Sink != nil {
		if err := s.Sink.Append(ctx, rows); err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "sink cleaned reviews")
		}
		st.Sunk += len(rows)
	}
	return nil
}
