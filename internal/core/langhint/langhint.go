// Package langhint gives coarse script statistics for cleaned text
package langhint

import "unicode"

// Hint summarizes the letters of a text
type Hint struct {
	Letters    int     `json:"letters"`
	Latin      int     `json:"latin"`
	LatinShare float64 `json:"latin_share"`
	// Script is the dominant script name, "" when there are no letters
	Script string `json:"script,omitempty"`
}

var scripts = []struct {
	name  string
	table *unicode.RangeTable
}{
	{"Latin", unicode.Latin},
	{"Arabic", unicode.Arabic},
	{"Han", unicode.Han},
	{"Hiragana", unicode.Hiragana},
	{"Katakana", unicode.Katakana},
	{"Hangul", unicode.Hangul},
	{"Thai", unicode.Thai},
	{"Cyrillic", unicode.Cyrillic},
	{"Greek", unicode.Greek},
	{"Devanagari", unicode.Devanagari},
}

// Detect counts letters per script. Bracketed markers such as [EMOJI_LAUGH]
// are skipped so labels do not inflate the Latin share.
func Detect(s string) Hint {
	counts := make([]int, len(scripts))
	var h Hint
	inMarker := false
	for _, r := range s {
		switch {
		case r == '[':
			inMarker = true
			continue
		case r == ']':
			inMarker = false
			continue
		case inMarker || !unicode.IsLetter(r):
			continue
		}
		h.Letters++
		for i, sc := range scripts {
			if unicode.Is(sc.table, r) {
				counts[i]++
				break
			}
		}
	}
	if h.Letters == 0 {
		return h
	}
	h.Latin = counts[0]
	h.LatinShare = float64(h.Latin) / float64(h.Letters)

	best := -1
	for i, c := range counts {
		if c > 0 && (best < 0 || c > counts[best]) {
			best = i
		}
	}
	if best >= 0 {
		h.Script = scripts[best].name
	}
	return h
}

// LatinShare is Detect(s).LatinShare
func LatinShare(s string) float64 { return Detect(s).LatinShare }
