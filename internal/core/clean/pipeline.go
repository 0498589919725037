// Package clean is the text normalization engine.
//
// A Pipeline runs one of three fixed stage sequences over a text:
//
//	tokenizer  unicode, lowercase, links, punctuation, split_number
//	analysis   tokenizer + laughter, emoji, stretch, compound
//	model      analysis + typo, slang, fuzzy, negation, stopwords, whitespace, low_info
//
// Every stage is a pure function over the text and a shared read-only
// lexicon, so a single Pipeline serves any number of goroutines.
package clean

import (
	"errors"
	"fmt"

	"rapih/internal/core/lexicon"
	"rapih/internal/core/similarity"
)

// ErrInvalidInput is returned by CleanValue for anything that is not a string
var ErrInvalidInput = errors.New("clean: input is not a string")

// Option configures a Pipeline
type Option func(*Pipeline)

// WithScorer swaps the fuzzy similarity function
func WithScorer(f similarity.Func) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.score = f
		}
	}
}

// WithFuzzyThreshold sets the lowest accepted fuzzy score
func WithFuzzyThreshold(th float64) Option {
	return func(p *Pipeline) { p.threshold = th }
}

// Pipeline binds the stages to one lexicon
type Pipeline struct {
	lex       *lexicon.Store
	score     similarity.Func
	threshold float64
	stages    [numStages]stageFunc
}

// New builds a pipeline over lex
func New(lex *lexicon.Store, opts ...Option) (*Pipeline, error) {
	if lex == nil {
		return nil, errors.New("clean: nil lexicon")
	}
	p := &Pipeline{
		lex:       lex,
		score:     similarity.Ratio,
		threshold: DefaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(p)
	}
	if p.threshold < 0 || p.threshold > 100 {
		return nil, fmt.Errorf("clean: fuzzy threshold %v outside 0..100", p.threshold)
	}

	p.stages = [numStages]stageFunc{
		StageUnicode:     NormalizeUnicode,
		StageLowercase:   func(s string) string { return Lowercase(lex, s) },
		StageLinks:       StripLinksAndEmails,
		StagePunctuation: func(s string) string { return StripPunctuation(lex, s) },
		StageSplitNumber: func(s string) string { return SplitWordNumber(lex, s) },
		StageLaughter:    func(s string) string { return NormalizeLaughter(lex, s) },
		StageEmoji:       func(s string) string { return MapEmoji(lex, s) },
		StageStretch:     func(s string) string { return NormalizeStretch(lex, s) },
		StageCompound:    func(s string) string { return SegmentCompounds(lex, s) },
		StageTypo:        func(s string) string { return SubstituteTypo(lex, s) },
		StageSlang:       func(s string) string { return SubstituteSlang(lex, s) },
		StageFuzzy:       func(s string) string { return FuzzyNormalize(lex, p.score, p.threshold, s) },
		StageNegation:    func(s string) string { return NormalizeNegation(lex, s) },
		StageStopwords:   func(s string) string { return RemoveStopwords(lex, s) },
		StageWhitespace:  CollapseWhitespace,
		StageLowInfo:     DropLowInfo,
	}
	for id, fn := range p.stages {
		if fn == nil {
			return nil, fmt.Errorf("clean: stage %s has no implementation", StageID(id))
		}
	}
	return p, nil
}

// Lexicon returns the store the pipeline reads
func (p *Pipeline) Lexicon() *lexicon.Store { return p.lex }

// Clean runs profile over text
func (p *Pipeline) Clean(profile Profile, text string) string {
	return p.run(profile, text, nil)
}

// Explain runs profile over text and also returns every stage that changed
// the token sequence, in order.
func (p *Pipeline) Explain(profile Profile, text string) (string, []TraceEntry) {
	trace := []TraceEntry{}
	out := p.run(profile, text, &trace)
	return out, trace
}

// CleanValue cleans v when it is a string. Anything else yields "" and
// ErrInvalidInput; callers that only want the text may ignore the error.
func (p *Pipeline) CleanValue(profile Profile, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", ErrInvalidInput
	}
	return p.Clean(profile, s), nil
}

// RunStage applies a single stage, mostly useful for tooling and tests
func (p *Pipeline) RunStage(id StageID, text string) string {
	if id >= numStages {
		return text
	}
	return p.stages[id](text)
}

func (p *Pipeline) run(profile Profile, text string, trace *[]TraceEntry) string {
	if !profile.Valid() {
		return ""
	}
	for _, id := range profileStages[profile] {
		next := p.stages[id](text)
		if trace != nil && !sameTokens(text, next) {
			*trace = append(*trace, TraceEntry{Stage: id.String(), Before: text, After: next})
		}
		text = next
	}
	return text
}
