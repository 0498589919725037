package clean

import (
	"rapih/internal/core/lexicon"
	"rapih/internal/core/similarity"
	"rapih/internal/core/token"
)

// DefaultFuzzyThreshold is the lowest accepted similarity score
const DefaultFuzzyThreshold = 85

// SubstituteTypo replaces known misspellings
func SubstituteTypo(lex *lexicon.Store, text string) string {
	return token.MapFields(text, func(w string) string {
		if v, ok := lex.Typo(w); ok {
			return v
		}
		return w
	})
}

// SubstituteSlang replaces slang with its canonical form
func SubstituteSlang(lex *lexicon.Store, text string) string {
	return token.MapFields(text, func(w string) string {
		if v, ok := lex.Slang(w); ok {
			return v
		}
		return w
	})
}

// FuzzyNormalize maps near misses onto fuzzy targets. The best score over
// every candidate wins, ties go to the first canonical in table order, and
// nothing changes below threshold.
func FuzzyNormalize(lex *lexicon.Store, score similarity.Func, threshold float64, text string) string {
	return token.MapFields(text, func(w string) string {
		return fuzzyWord(lex, score, threshold, w)
	})
}

func fuzzyWord(lex *lexicon.Store, score similarity.Func, threshold float64, w string) string {
	if lex.Whitelisted(w) || token.IsBracketed(w) || token.IsNumeric(w) {
		return w
	}
	best, top := "", -1.0
	lex.EachFuzzyCandidate(func(canon, cand string) {
		if s := score(w, cand); s > top {
			best, top = canon, s
		}
	})
	if best != "" && top >= threshold {
		return best
	}
	return w
}

// NormalizeNegation rewrites every negation word to the canonical negation
func NormalizeNegation(lex *lexicon.Store, text string) string {
	return token.MapFields(text, func(w string) string {
		if lex.IsNegation(w) {
			return lex.NegationCanonical()
		}
		return w
	})
}
