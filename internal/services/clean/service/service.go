// Package service runs the normalization pipeline for requests and batches
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"rapih/internal/core/clean"
	"rapih/internal/core/langhint"
	"rapih/internal/core/version"
	perr "rapih/internal/platform/errors"
	"rapih/internal/platform/logger"
	"rapih/internal/services/clean/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service is the full clean contract
type Service interface {
	domain.ServicePort
	domain.ValuesPort
}

// Svc implements Service over one shared pipeline
type Svc struct {
	p   *clean.Pipeline
	opt Options
}

var _ Service = (*Svc)(nil)

// New panics on a nil pipeline; it is a wiring error
func New(p *clean.Pipeline, opt Options) *Svc {
	if p == nil {
		panic("clean.Service requires a non nil pipeline")
	}
	return &Svc{p: p, opt: opt.withDefaults()}
}

// Options returns the effective options
func (s *Svc) Options() Options { return s.opt }

// Clean normalizes one text
func (s *Svc) Clean(_ context.Context, in domain.CleanRequest) (domain.Record, error) {
	p, err := s.profile(in.Profile)
	if err != nil {
		return domain.Record{}, err
	}
	return s.record(p, in.Text, false), nil
}

// Explain normalizes one text and keeps the stage trace
func (s *Svc) Explain(_ context.Context, in domain.CleanRequest) (domain.Record, error) {
	p, err := s.profile(in.Profile)
	if err != nil {
		return domain.Record{}, err
	}
	return s.record(p, in.Text, true), nil
}

// CleanBatch decodes each raw item and cleans the lot in input order
func (s *Svc) CleanBatch(ctx context.Context, in domain.BatchRequest) (domain.BatchResult, error) {
	p, err := s.profile(in.Profile)
	if err != nil {
		return domain.BatchResult{}, err
	}
	if len(in.Texts) > s.opt.MaxBatch {
		return domain.BatchResult{}, perr.WithField(
			perr.TooLargef("batch holds %d texts, limit is %d", len(in.Texts), s.opt.MaxBatch), "texts")
	}

	id := uuid.NewString()
	ctx = logger.WithBatch(ctx, id)
	start := time.Now()

	vals := make([]any, len(in.Texts))
	for i, raw := range in.Texts {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return domain.BatchResult{}, perr.WithField(perr.JSONErrf("texts[%d]: %v", i, err), "texts")
		}
		vals[i] = v
	}

	recs, err := s.CleanValues(ctx, p, vals, in.Explain)
	if err != nil {
		return domain.BatchResult{}, err
	}
	res := domain.BatchResult{BatchID: id, Profile: p.String(), Records: recs}
	for _, r := range recs {
		if r.Dropped {
			res.Dropped++
		}
		if r.InvalidInput {
			res.Invalid++
		}
	}
	logger.C(ctx).Debug().
		Int("texts", len(recs)).
		Int("dropped", res.Dropped).
		Int("invalid", res.Invalid).
		Dur("elapsed", time.Since(start)).
		Msg("batch cleaned")
	return res, nil
}

// CleanValues cleans values with at most Workers goroutines. Output order
// matches input order. Cancellation is checked before each item starts.
func (s *Svc) CleanValues(ctx context.Context, profile clean.Profile, values []any, explain bool) ([]domain.Record, error) {
	if !profile.Valid() {
		return nil, perr.InvalidArgf("unknown profile %d", profile)
	}
	out := make([]domain.Record, len(values))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opt.Workers)
	for i, v := range values {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.record(profile, v, explain)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, cancelled(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}
	return out, nil
}

// Profiles lists every profile and its stages
func (s *Svc) Profiles() []domain.ProfileInfo {
	ps := clean.Profiles()
	out := make([]domain.ProfileInfo, 0, len(ps))
	for _, p := range ps {
		ids := p.Stages()
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = id.String()
		}
		out = append(out, domain.ProfileInfo{Name: p.String(), Stages: names})
	}
	return out
}

// Lexicon reports table sizes and build info
func (s *Svc) Lexicon() domain.LexiconInfo {
	return domain.LexiconInfo{Stats: s.p.Lexicon().Stats(), Build: version.Info(s.opt.Service)}
}

func (s *Svc) profile(name string) (clean.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return s.opt.DefaultProfile, nil
	}
	p, err := clean.ParseProfile(name)
	if err != nil {
		return 0, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "unknown profile"), "profile")
	}
	return p, nil
}

func (s *Svc) record(p clean.Profile, v any, explain bool) domain.Record {
	text, ok := v.(string)
	if !ok {
		_, err := s.p.CleanValue(p, v)
		rec := domain.Record{Dropped: true, InvalidInput: true}
		if errors.Is(err, clean.ErrInvalidInput) {
			rec.Error = perr.ErrorCodeInvalidInput.String()
		}
		return rec
	}

	rec := domain.Record{Text: text, LatinShare: langhint.LatinShare(text)}
	if explain {
		rec.Clean, rec.Trace = s.p.Explain(p, text)
	} else {
		rec.Clean = s.p.Clean(p, text)
	}
	rec.Tokens = len(strings.Fields(rec.Clean))
	rec.Dropped = rec.Clean == ""
	return rec
}

func cancelled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "clean cancelled")
	}
	return err
}
