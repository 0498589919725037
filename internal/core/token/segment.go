package token

// Segment splits a glued word into known sub-words by taking the longest
// known prefix, then continuing on the remainder. A single trailing rune
// with no known prefix is dropped as noise. When any longer remainder has
// no known prefix the split fails and ok is false.
func Segment(word string, known func(string) bool) (parts []string, ok bool) {
	parts, ok, _ = segment(word, known)
	return parts, ok
}

// segment also reports how many prefix lookups ran. Every step consumes at
// least one rune, so steps never exceeds the rune count of word.
func segment(word string, known func(string) bool) ([]string, bool, int) {
	var (
		parts []string
		steps int
		rest  = word
	)
	for rest != "" {
		steps++
		p := LongestPrefix(rest, 1, known)
		if p == "" {
			if Len(rest) == 1 {
				return parts, len(parts) > 0, steps
			}
			return nil, false, steps
		}
		parts = append(parts, p)
		rest = rest[len(p):]
	}
	return parts, len(parts) > 0, steps
}
