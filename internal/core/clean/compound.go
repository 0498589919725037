package clean

import (
	"strings"

	"rapih/internal/core/lexicon"
	"rapih/internal/core/token"
)

// SegmentCompounds splits glued words ("harusdijual") into known words
func SegmentCompounds(lex *lexicon.Store, text string) string {
	return token.MapFields(text, func(w string) string { return segmentWord(lex, w) })
}

func segmentWord(lex *lexicon.Store, w string) string {
	if !token.IsAlpha(w) || lex.Known(w) {
		return w
	}
	parts, ok := token.Segment(w, lex.Known)
	if !ok {
		return w
	}
	return strings.Join(parts, " ")
}
