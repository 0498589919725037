package clean

import (
	"regexp"
	"strings"

	"rapih/internal/core/lexicon"
	"rapih/internal/core/token"
)

var laughPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:wk|kw)+[wk]?$`),
	regexp.MustCompile(`^(?:h[aeiou]){2,}h?$`),
	regexp.MustCompile(`^(?:x[aeiou]){2,}x?$`),
	regexp.MustCompile(`^(?:a?wok)+$`),
}

// markers that pick wkwk over haha
var kwFamily = []string{"wk", "kw", "awok", "kekw", "ngak"}

const (
	laughLetters  = "haeiuokw"
	laughDensity  = 0.6
	minLaughRunes = 3
)

// IsLaughter reports whether tok reads as onomatopoeic laughter.
// Pattern and density checks look at the stretch-reduced token so that
// "hahahaaaa" and "hahaha" are judged the same way.
func IsLaughter(lex *lexicon.Store, tok string) bool {
	if token.Len(tok) < minLaughRunes {
		return false
	}
	reduced := token.ReduceRepeats(tok, 1)
	if protected(lex, tok) || protected(lex, reduced) {
		return false
	}
	if lex.HasLaughterMarker(tok) || lex.HasLaughterMarker(reduced) {
		return true
	}
	for _, re := range laughPatterns {
		if re.MatchString(reduced) {
			return true
		}
	}
	return density(reduced) >= laughDensity
}

func protected(lex *lexicon.Store, w string) bool {
	if lex.Whitelisted(w) {
		return true
	}
	_, ok := lex.Slang(w)
	return ok
}

func density(w string) float64 {
	n, hit := 0, 0
	for _, r := range w {
		n++
		if strings.ContainsRune(laughLetters, r) {
			hit++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(hit) / float64(n)
}

// laughMarker picks the canonical marker for a laughter token
func laughMarker(tok string) string {
	for _, m := range kwFamily {
		if strings.Contains(tok, m) {
			return lexicon.LaughKW
		}
	}
	return lexicon.Laugh
}

// NormalizeLaughter rewrites laughter tokens to haha or wkwk. Words and
// markers are followed by a space, punctuation is glued on as is.
func NormalizeLaughter(lex *lexicon.Store, text string) string {
	toks := token.Tokenize(text)
	if len(toks) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text) + len(toks))
	for _, t := range toks {
		switch t.Kind {
		case token.Punct:
			b.WriteString(t.Text)
		case token.Marker:
			b.WriteString(t.Text)
			b.WriteByte(' ')
		default:
			w := t.Text
			if IsLaughter(lex, w) {
				w = laughMarker(token.ReduceRepeats(w, 1))
			}
			b.WriteString(w)
			b.WriteByte(' ')
		}
	}
	return b.String()
}
