package clean

import (
	"strings"
	"unicode"

	"rapih/internal/core/lexicon"
	"rapih/internal/core/token"
)

// StripPunctuation turns every rune that is not a letter, digit, space or
// emoji into a space. Labels the pipeline emits survive, padded with spaces
// so they never stay glued to a word. Any other bracketed text is stripped.
func StripPunctuation(lex *lexicon.Store, text string) string {
	spans := token.LabelSpans(text, labels(lex))
	if len(spans) == 0 {
		return stripPunct(text)
	}
	var b strings.Builder
	b.Grow(len(text) + 2*len(spans))
	prev := 0
	for _, sp := range spans {
		b.WriteString(stripPunct(text[prev:sp[0]]))
		b.WriteByte(' ')
		b.WriteString(text[sp[0]:sp[1]])
		b.WriteByte(' ')
		prev = sp[1]
	}
	b.WriteString(stripPunct(text[prev:]))
	return b.String()
}

func stripPunct(s string) string {
	if strings.IndexFunc(s, func(r rune) bool { return !keepRune(r) }) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if keepRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func keepRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || IsEmoji(r)
}

// SplitWordNumber separates letters from digits inside every run of letters
// and digits, so an emoji glued to a word does not hide the word:
//
//	kata2     -> kata kata      (reduplication)
//	hati2nya  -> hati hati nya  (reduplication inside a longer run)
//	covid19   -> covid          (meaningless numeric suffix)
//	covid19😂 -> covid😂
//	2hari     -> 2 hari         (quantity kept)
//	a1b3      -> a 1 b 3        (every other boundary split)
func SplitWordNumber(lex *lexicon.Store, text string) string {
	keep := labels(lex)
	return token.MapFields(text, func(f string) string {
		return token.MapOutsideLabels(f, keep, splitAlnumRuns)
	})
}

// splitAlnumRuns applies splitWordNumber to each maximal letter and digit
// run of s, copying every other rune through.
func splitAlnumRuns(s string) string {
	var b strings.Builder
	start := -1
	flush := func(end int) {
		if start >= 0 {
			b.WriteString(splitWordNumber(s[start:end]))
			start = -1
		}
	}
	for i, r := range s {
		if token.IsWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		b.WriteRune(r)
	}
	flush(len(s))
	return b.String()
}

type run struct {
	text  string
	digit bool
}

// splitWordNumber expects tok to hold only letters and digits
func splitWordNumber(tok string) string {
	if !token.HasDigitLetterBoundary(tok) {
		return tok
	}
	runs := alnumRuns(tok)
	if len(runs) == 2 {
		head, tail := runs[0], runs[1]
		if !head.digit {
			if tail.text == "2" {
				return head.text + " " + head.text
			}
			return head.text
		}
		return head.text + " " + tail.text
	}
	parts := make([]string, 0, len(runs)+1)
	for i := 0; i < len(runs); i++ {
		r := runs[i]
		if !r.digit && i+1 < len(runs) && runs[i+1].text == "2" {
			parts = append(parts, r.text, r.text)
			i++
			continue
		}
		parts = append(parts, r.text)
	}
	return strings.Join(parts, " ")
}

// alnumRuns splits tok into alternating letter and digit runs
func alnumRuns(tok string) []run {
	var (
		out   []run
		start = 0
		digit bool
	)
	for i, r := range tok {
		d := unicode.IsDigit(r)
		if i > 0 && d != digit {
			out = append(out, run{text: tok[start:i], digit: digit})
			start = i
		}
		digit = d
	}
	return append(out, run{text: tok[start:], digit: digit})
}
