package clean

import (
	"strings"

	"rapih/internal/core/lexicon"
	"rapih/internal/core/token"
)

// minInfoTokens is the shortest text worth keeping
const minInfoTokens = 2

// RemoveStopwords drops stopwords and keeps the rest in order
func RemoveStopwords(lex *lexicon.Store, text string) string {
	return token.MapFields(text, func(w string) string {
		if lex.IsStopword(w) {
			return ""
		}
		return w
	})
}

// CollapseWhitespace joins tokens with single spaces and trims the ends
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// DropLowInfo returns "" for texts with fewer than two tokens
func DropLowInfo(text string) string {
	t := strings.TrimSpace(text)
	if len(strings.Fields(t)) < minInfoTokens {
		return ""
	}
	return t
}
