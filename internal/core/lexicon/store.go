// Package lexicon holds the immutable word tables consulted by every cleaning stage.
//
// A Store is built once from Tables and never changes afterwards, so one
// instance can be shared by any number of goroutines without locking.
// Construction closes the tables over their own outputs:
//   - slang and typo chains are followed to a fixed point
//   - every canonical output, POS word and stopword becomes a whitelisted word
//   - whitelisted words are removed from the rewrite tables
//
// so text that is already normalized stays normalized on a second pass.
package lexicon

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"rapih/internal/core/token"
)

// Canonical laughter markers emitted by the laughter stage
const (
	Laugh   = "haha"
	LaughKW = "wkwk"
)

// DefaultNegation is used when Tables.Negation.Canonical is empty
const DefaultNegation = "tidak"

type set map[string]struct{}

func (s set) has(w string) bool {
	_, ok := s[w]
	return ok
}

// Store is the read-only lexicon
type Store struct {
	version int

	slang map[string]string
	typo  map[string]string
	rules map[string]string
	pos   map[string]string
	emoji map[rune]string

	labels    set
	whitelist set
	negation  set
	stopwords set
	known     set

	negCanon string
	laughter []string
	fuzzy    []FuzzyTarget
}

// New validates t and returns an immutable Store
func New(t Tables) (*Store, error) {
	s := &Store{
		version:   t.Version,
		slang:     lowerMap(t.Slang),
		typo:      lowerMap(t.Typo),
		rules:     lowerMap(t.PrefixSuffixRules),
		pos:       lowerMap(t.POS),
		emoji:     make(map[rune]string, len(t.Emoji)),
		labels:    set{},
		whitelist: lowerSet(t.Whitelist),
		negation:  lowerSet(t.Negation.Words),
		stopwords: lowerSet(t.Stopwords),
		negCanon:  clean(t.Negation.Canonical),
	}
	if s.negCanon == "" {
		s.negCanon = DefaultNegation
	}

	for k, label := range t.Emoji {
		r, size := utf8.DecodeRuneInString(k)
		if r == utf8.RuneError || size != len(k) {
			return nil, fmt.Errorf("lexicon: emoji key %q must be a single code point", k)
		}
		label = strings.TrimSpace(label)
		if !token.IsMarker(label) {
			return nil, fmt.Errorf("lexicon: emoji label %q for %q is not a [UPPER_SNAKE] marker", label, k)
		}
		s.emoji[r] = label
		s.labels[label] = struct{}{}
	}

	seen := set{}
	for _, m := range t.Laughter {
		m = clean(m)
		if m == "" || seen.has(m) {
			continue
		}
		seen[m] = struct{}{}
		s.laughter = append(s.laughter, m)
	}

	byCanon := map[string]int{}
	for i, ft := range t.Fuzzy {
		c := clean(ft.Canonical)
		if c == "" {
			return nil, fmt.Errorf("lexicon: fuzzy target %d has empty canonical", i)
		}
		idx, ok := byCanon[c]
		if !ok {
			idx = len(s.fuzzy)
			byCanon[c] = idx
			s.fuzzy = append(s.fuzzy, FuzzyTarget{Canonical: c})
		}
		for _, v := range ft.Variants {
			if v = clean(v); v != "" && v != c && !contains(s.fuzzy[idx].Variants, v) {
				s.fuzzy[idx].Variants = append(s.fuzzy[idx].Variants, v)
			}
		}
	}

	s.resolveChains()
	s.closeWhitelist()

	s.known = make(set, len(s.whitelist)+len(s.slang)+len(s.typo)+len(s.negation)+len(s.pos))
	for _, src := range []set{s.whitelist, s.negation} {
		for w := range src {
			s.known[w] = struct{}{}
		}
	}
	for _, src := range []map[string]string{s.slang, s.typo, s.pos} {
		for w := range src {
			s.known[w] = struct{}{}
		}
	}
	return s, nil
}

// resolveChains rewrites slang and typo values that are themselves keys so a
// single lookup yields the final form. A cycle stops at its first repeat.
func (s *Store) resolveChains() {
	follow := func(v string) string {
		visited := set{v: {}}
		for {
			next, ok := s.slang[v]
			if !ok {
				next, ok = s.typo[v]
			}
			if !ok || visited.has(next) {
				return v
			}
			visited[next] = struct{}{}
			v = next
		}
	}
	for k, v := range s.slang {
		s.slang[k] = follow(v)
	}
	for k, v := range s.typo {
		s.typo[k] = follow(v)
	}
}

func (s *Store) closeWhitelist() {
	// multi word outputs whitelist each of their words
	add := func(w string) {
		for _, f := range strings.Fields(w) {
			s.whitelist[f] = struct{}{}
		}
	}
	for _, v := range s.slang {
		add(v)
	}
	for _, v := range s.typo {
		add(v)
	}
	for _, ft := range s.fuzzy {
		add(ft.Canonical)
	}
	for w := range s.pos {
		add(w)
	}
	for w := range s.stopwords {
		add(w)
	}
	add(s.negCanon)
	add(Laugh)
	add(LaughKW)

	for w := range s.whitelist {
		delete(s.slang, w)
		delete(s.typo, w)
	}
}

// Version of the tables the store was built from
func (s *Store) Version() int { return s.version }

// Whitelisted reports whether w must never be rewritten
func (s *Store) Whitelisted(w string) bool { return s.whitelist.has(w) }

// Slang returns the canonical form of a slang word
func (s *Store) Slang(w string) (string, bool) {
	v, ok := s.slang[w]
	return v, ok
}

// Typo returns the correction for a known misspelling
func (s *Store) Typo(w string) (string, bool) {
	v, ok := s.typo[w]
	return v, ok
}

// IsNegation reports whether w is a negation word
func (s *Store) IsNegation(w string) bool { return s.negation.has(w) }

// NegationCanonical is the form every negation word normalizes to
func (s *Store) NegationCanonical() string { return s.negCanon }

// IsStopword reports whether w is dropped by stopword removal
func (s *Store) IsStopword(w string) bool { return s.stopwords.has(w) }

// Known reports membership in the segmentation vocabulary:
// whitelist, slang keys, typo keys, negation words and POS keys.
func (s *Store) Known(w string) bool { return s.known.has(w) }

// POS returns the part-of-speech tag of w
func (s *Store) POS(w string) (string, bool) {
	v, ok := s.pos[w]
	return v, ok
}

// Rule returns an advisory prefix/suffix segmentation hint
func (s *Store) Rule(pattern string) (string, bool) {
	v, ok := s.rules[pattern]
	return v, ok
}

// Emoji returns the label registered for r
func (s *Store) Emoji(r rune) (string, bool) {
	v, ok := s.emoji[r]
	return v, ok
}

// IsLabel reports whether w is one of the emoji labels
func (s *Store) IsLabel(w string) bool { return s.labels.has(w) }

// HasLaughterMarker reports whether w contains any configured laughter substring
func (s *Store) HasLaughterMarker(w string) bool {
	for _, m := range s.laughter {
		if strings.Contains(w, m) {
			return true
		}
	}
	return false
}

// EachFuzzyCandidate calls fn for every canonical with each string it should be
// scored against, the canonical itself first, in table order.
func (s *Store) EachFuzzyCandidate(fn func(canonical, candidate string)) {
	for _, ft := range s.fuzzy {
		fn(ft.Canonical, ft.Canonical)
		for _, v := range ft.Variants {
			fn(ft.Canonical, v)
		}
	}
}

// Stats reports table sizes
func (s *Store) Stats() Stats {
	variants := 0
	for _, ft := range s.fuzzy {
		variants += len(ft.Variants)
	}
	return Stats{
		Version:    s.version,
		Slang:      len(s.slang),
		Typo:       len(s.typo),
		Whitelist:  len(s.whitelist),
		Fuzzy:      len(s.fuzzy),
		Variants:   variants,
		Rules:      len(s.rules),
		Emoji:      len(s.emoji),
		Laughter:   len(s.laughter),
		Negation:   len(s.negation),
		Stopwords:  len(s.stopwords),
		POS:        len(s.pos),
		KnownWords: len(s.known),
	}
}

// Whitelist returns the closed whitelist sorted, mostly for tooling
func (s *Store) Whitelist() []string {
	out := make([]string, 0, len(s.whitelist))
	for w := range s.whitelist {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func clean(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func lowerMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		k, v = clean(k), clean(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func lowerSet(in []string) set {
	out := make(set, len(in))
	for _, w := range in {
		if w = clean(w); w != "" {
			out[w] = struct{}{}
		}
	}
	return out
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
