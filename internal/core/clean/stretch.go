package clean

import (
	"strings"

	"rapih/internal/core/lexicon"
	"rapih/internal/core/token"
)

var noiseSubstrings = []string{"ga", "gk", "pls"}

// whitelist prefixes shorter than this are too ambiguous to trust
const minPrefixRunes = 3

// NormalizeStretch undoes emphasis stretching token by token
func NormalizeStretch(lex *lexicon.Store, text string) string {
	return token.MapFields(text, func(w string) string { return stretchWord(lex, w) })
}

// stretchWord tries the run-length-2 form, then the run-length-1 form,
// against the lexicon. On a double miss a word with segmentation triggers
// falls back to its longest whitelisted prefix, anything else to the
// run-length-1 form.
func stretchWord(lex *lexicon.Store, w string) string {
	if token.IsBracketed(w) || token.IsNumeric(w) {
		return w
	}
	two := token.ReduceRepeats(w, 2)
	if v, ok := canonical(lex, two); ok {
		return v
	}
	one := token.ReduceRepeats(w, 1)
	if one != two {
		if v, ok := canonical(lex, one); ok {
			return v
		}
	}
	if hasSegmentTrigger(w) {
		if p := token.LongestPrefix(one, minPrefixRunes, lex.Whitelisted); p != "" {
			return p
		}
	}
	return one
}

// canonical looks w up in whitelist, slang, typo and negation order
func canonical(lex *lexicon.Store, w string) (string, bool) {
	if lex.Whitelisted(w) {
		return w, true
	}
	if v, ok := lex.Slang(w); ok {
		return v, true
	}
	if v, ok := lex.Typo(w); ok {
		return v, true
	}
	if lex.IsNegation(w) {
		return lex.NegationCanonical(), true
	}
	return "", false
}

func hasSegmentTrigger(w string) bool {
	if token.HasRun(w, 3) || token.HasDigitLetterBoundary(w) {
		return true
	}
	for _, s := range noiseSubstrings {
		if strings.Contains(w, s) {
			return true
		}
	}
	return false
}
