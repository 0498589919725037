package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ReduceRepeats collapses every run of 3 or more identical runes to maxRun runes.
// Runs shorter than 3 are kept as they are. maxRun below 1 is treated as 1.
//
//	ReduceRepeats("baaaangettt", 2) == "baangett"
//	ReduceRepeats("baaaangettt", 1) == "banget"
func ReduceRepeats(word string, maxRun int) string {
	if maxRun < 1 {
		maxRun = 1
	}
	if !HasRun(word, 3) {
		return word
	}
	var b strings.Builder
	b.Grow(len(word))
	var (
		prev rune = -1
		n    int
	)
	flush := func() {
		keep := n
		if n >= 3 && n > maxRun {
			keep = maxRun
		}
		for i := 0; i < keep; i++ {
			b.WriteRune(prev)
		}
	}
	for _, r := range word {
		if r == prev {
			n++
			continue
		}
		if n > 0 {
			flush()
		}
		prev, n = r, 1
	}
	if n > 0 {
		flush()
	}
	return b.String()
}

// HasRun reports whether s contains n or more consecutive identical runes
func HasRun(s string, n int) bool {
	if n <= 1 {
		return s != ""
	}
	var (
		prev rune = -1
		run  int
	)
	for _, r := range s {
		if r == prev {
			run++
			if run >= n {
				return true
			}
			continue
		}
		prev, run = r, 1
	}
	return false
}

// IsNumeric reports whether s is non-empty and all decimal digits
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsAlpha reports whether s is non-empty and all letters
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// HasDigitLetterBoundary reports whether a letter sits next to a digit anywhere in s
func HasDigitLetterBoundary(s string) bool {
	prev := 0 // 0 other, 1 letter, 2 digit
	for _, r := range s {
		cur := 0
		switch {
		case unicode.IsLetter(r):
			cur = 1
		case unicode.IsDigit(r):
			cur = 2
		}
		if cur != 0 && prev != 0 && cur != prev {
			return true
		}
		prev = cur
	}
	return false
}

// Len is the rune length of s
func Len(s string) int { return utf8.RuneCountInString(s) }

// LongestPrefix returns the longest prefix of s, at least minLen runes long,
// for which has returns true. It returns "" when none qualifies.
func LongestPrefix(s string, minLen int, has func(string) bool) string {
	if minLen < 1 {
		minLen = 1
	}
	bounds := runeBounds(s)
	for n := len(bounds) - 1; n >= minLen; n-- {
		if p := s[:bounds[n]]; has(p) {
			return p
		}
	}
	return ""
}

// runeBounds returns the byte offset after each rune, with a leading 0,
// so s[:b[n]] is the n-rune prefix.
func runeBounds(s string) []int {
	b := make([]int, 1, len(s)+1)
	for i := range s {
		if i > 0 {
			b = append(b, i)
		}
	}
	if s != "" {
		b = append(b, len(s))
	}
	return b
}
