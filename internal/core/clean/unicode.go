package clean

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"rapih/internal/core/lexicon"
	"rapih/internal/core/token"
)

// transformers are stateful, so each call borrows its own chain
var unicodePool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // ZWJ, ZWNJ, BOM, bidi controls
			runes.Remove(runes.In(unicode.Mn)), // leftover combining marks, variation selectors
		)
	},
}

var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Indonesian)
		return &c
	},
}

// NormalizeUnicode repairs UTF-8, turns control characters into spaces and
// applies NFKC so stylized and full-width letters collapse to plain ones.
func NormalizeUnicode(text string) string {
	if text == "" {
		return ""
	}
	text = sanitize(text)

	tr := unicodePool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, text)
	tr.Reset()
	unicodePool.Put(tr)
	if err != nil {
		return text
	}
	return out
}

// Lowercase lowercases everything except the emoji labels of lex
func Lowercase(lex *lexicon.Store, text string) string {
	return token.MapOutsideLabels(text, labels(lex), lower)
}

func lower(s string) string {
	if s == "" {
		return s
	}
	c := lowerPool.Get().(*cases.Caser)
	out := c.String(s)
	lowerPool.Put(c)
	return out
}

// sanitize drops invalid UTF-8 and maps C0/C1 controls other than
// tab, newline and carriage return to a space so words stay apart.
// The clean prefix is returned untouched when nothing needs fixing.
func sanitize(s string) string {
	i := 0
	for i < len(s) {
		c := s[i]
		if c < utf8.RuneSelf {
			if isControl(rune(c)) {
				break
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || isControl(r) {
			break
		}
		i += size
	}
	if i == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
		case isControl(r):
			b.WriteByte(' ')
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func isControl(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20 || r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}
