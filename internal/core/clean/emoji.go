package clean

import (
	"strings"
	"unicode"

	"rapih/internal/core/lexicon"
)

// EmojiMisc labels emoji the lexicon has no entry for
const EmojiMisc = "[EMOJI_MISC]"

// emojiBlocks: misc symbols, dingbats, regional indicators, pictographs,
// emoticons, transport, supplemental symbols and symbols extended-A
var emojiBlocks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1},
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1},
	},
}

// IsEmoji reports whether r falls in one of the emoji blocks
func IsEmoji(r rune) bool {
	return r >= 0x2600 && unicode.Is(emojiBlocks, r)
}

// labels accepts the markers MapEmoji emits for lex
func labels(lex *lexicon.Store) func(string) bool {
	return func(w string) bool { return w == EmojiMisc || lex.IsLabel(w) }
}

func isSkinTone(r rune) bool { return r >= 0x1F3FB && r <= 0x1F3FF }

// MapEmoji replaces each emoji with " label " from the lexicon, falling back
// to [EMOJI_MISC]. Skin tone modifiers are dropped.
func MapEmoji(lex *lexicon.Store, text string) string {
	i := strings.IndexFunc(text, IsEmoji)
	if i < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 16)
	b.WriteString(text[:i])
	for _, r := range text[i:] {
		if !IsEmoji(r) {
			b.WriteRune(r)
			continue
		}
		if isSkinTone(r) {
			continue
		}
		label, ok := lex.Emoji(r)
		if !ok {
			label = EmojiMisc
		}
		b.WriteByte(' ')
		b.WriteString(label)
		b.WriteByte(' ')
	}
	return b.String()
}
