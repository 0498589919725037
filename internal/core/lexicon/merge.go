package lexicon

import (
	"sort"
	"strings"
)

// Merge folds fragments into one Tables value. Sets are unioned, map entries
// from later fragments override earlier ones, fuzzy targets are merged by
// canonical keeping first appearance order, and the negation canonical of
// the last fragment that sets one wins. Set outputs are sorted so packed
// files diff cleanly.
func Merge(fragments ...Tables) Tables {
	out := Tables{
		Version:           FormatVersion,
		Slang:             map[string]string{},
		Typo:              map[string]string{},
		PrefixSuffixRules: map[string]string{},
		Emoji:             map[string]string{},
		POS:               map[string]string{},
	}
	var (
		white, neg, stop = set{}, set{}, set{}
		laughSeen        = set{}
		fuzzyIdx         = map[string]int{}
	)
	for _, f := range fragments {
		copyInto(out.Slang, f.Slang)
		copyInto(out.Typo, f.Typo)
		copyInto(out.PrefixSuffixRules, f.PrefixSuffixRules)
		copyInto(out.POS, f.POS)
		for k, v := range f.Emoji {
			out.Emoji[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
		addAll(white, f.Whitelist)
		addAll(neg, f.Negation.Words)
		addAll(stop, f.Stopwords)
		if c := clean(f.Negation.Canonical); c != "" {
			out.Negation.Canonical = c
		}
		for _, m := range f.Laughter {
			if m = clean(m); m != "" && !laughSeen.has(m) {
				laughSeen[m] = struct{}{}
				out.Laughter = append(out.Laughter, m)
			}
		}
		for _, ft := range f.Fuzzy {
			c := clean(ft.Canonical)
			if c == "" {
				continue
			}
			i, ok := fuzzyIdx[c]
			if !ok {
				i = len(out.Fuzzy)
				fuzzyIdx[c] = i
				out.Fuzzy = append(out.Fuzzy, FuzzyTarget{Canonical: c})
			}
			for _, v := range ft.Variants {
				if v = clean(v); v != "" && !contains(out.Fuzzy[i].Variants, v) {
					out.Fuzzy[i].Variants = append(out.Fuzzy[i].Variants, v)
				}
			}
		}
	}
	out.Whitelist = sorted(white)
	out.Negation.Words = sorted(neg)
	out.Stopwords = sorted(stop)
	return out
}

func copyInto(dst, src map[string]string) {
	for k, v := range src {
		if k = clean(k); k != "" {
			dst[k] = clean(v)
		}
	}
}

func addAll(dst set, words []string) {
	for _, w := range words {
		if w = clean(w); w != "" {
			dst[w] = struct{}{}
		}
	}
}

func sorted(s set) []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
