// Package token holds the pure single-token helpers shared by the cleaning stages:
// tokenization, stretch reduction, shape checks, prefix lookup and compound segmentation.
package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a Token
type Kind uint8

const (
	Word   Kind = iota // maximal run of letters and digits
	Marker             // bracketed label such as [EMOJI_LAUGH]
	Punct              // one punctuation or symbol rune
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Marker:
		return "marker"
	case Punct:
		return "punct"
	}
	return "unknown"
}

// Token is a piece of text with its class; position is its index in the slice
type Token struct {
	Text string
	Kind Kind
}

// IsWordRune reports whether r belongs inside a Word token
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize splits s into words, markers and single punctuation runes.
// Whitespace separates tokens and is not returned.
func Tokenize(s string) []Token {
	if s == "" {
		return nil
	}
	out := make([]Token, 0, len(s)/4+1)
	for i := 0; i < len(s); {
		if n := markerLen(s[i:]); n > 0 {
			out = append(out, Token{Text: s[i : i+n], Kind: Marker})
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case IsWordRune(r):
			j := i + size
			for j < len(s) {
				r2, sz := utf8.DecodeRuneInString(s[j:])
				if !IsWordRune(r2) {
					break
				}
				j += sz
			}
			out = append(out, Token{Text: s[i:j], Kind: Word})
			i = j
		default:
			out = append(out, Token{Text: s[i : i+size], Kind: Punct})
			i += size
		}
	}
	return out
}

// markerLen returns the byte length of a [UPPER_SNAKE] marker at the start of s, or 0
func markerLen(s string) int {
	if len(s) < 3 || s[0] != '[' || s[1] < 'A' || s[1] > 'Z' {
		return 0
	}
	for i := 2; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ']':
			return i + 1
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return 0
		}
	}
	return 0
}

// IsMarker reports whether s is exactly one [UPPER_SNAKE] marker
func IsMarker(s string) bool {
	n := markerLen(s)
	return n > 0 && n == len(s)
}

// MarkerSpans returns the byte ranges of every marker in s
func MarkerSpans(s string) [][2]int { return LabelSpans(s, nil) }

// LabelSpans returns the byte ranges of the markers in s accepted by keep.
// A nil keep accepts every marker.
func LabelSpans(s string, keep func(string) bool) [][2]int {
	var spans [][2]int
	for i := 0; i < len(s); {
		j := strings.IndexByte(s[i:], '[')
		if j < 0 {
			break
		}
		i += j
		if n := markerLen(s[i:]); n > 0 && (keep == nil || keep(s[i:i+n])) {
			spans = append(spans, [2]int{i, i + n})
			i += n
			continue
		}
		i++
	}
	return spans
}

// MapOutsideMarkers applies fn to every stretch of s that is not a marker,
// leaving markers byte-for-byte intact.
func MapOutsideMarkers(s string, fn func(string) string) string {
	return MapOutsideLabels(s, nil, fn)
}

// MapOutsideLabels is MapOutsideMarkers for the markers keep accepts. Any
// other bracketed text goes through fn like ordinary text.
func MapOutsideLabels(s string, keep func(string) bool, fn func(string) string) string {
	spans := LabelSpans(s, keep)
	if len(spans) == 0 {
		return fn(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	prev := 0
	for _, sp := range spans {
		b.WriteString(fn(s[prev:sp[0]]))
		b.WriteString(s[sp[0]:sp[1]])
		prev = sp[1]
	}
	b.WriteString(fn(s[prev:]))
	return b.String()
}

// IsBracketed reports whether s is wrapped in square brackets
func IsBracketed(s string) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']'
}

// MapFields applies fn to each whitespace separated field and re-joins the
// non-empty results with single spaces.
func MapFields(s string, fn func(string) string) string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if v := fn(f); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, " ")
}
