// Package similarity scores how close two strings are on a 0..100 scale.
//
// Ratio is the normalized Indel similarity: 100 * 2*LCS / (len(a)+len(b)),
// computed over runes. It is symmetric and rises as fewer insertions and
// deletions separate the two strings.
package similarity

// Func scores a against b on [0,100]. Implementations must be symmetric and
// safe for concurrent use.
type Func func(a, b string) float64

// Ratio is the default scorer
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	return 100 * float64(2*lcs(ra, rb)) / float64(total)
}

// Distance is the Indel edit distance: insertions plus deletions turning a into b
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	return len(ra) + len(rb) - 2*lcs(ra, rb)
}

// lcs is the longest common subsequence length with two rolling rows
func lcs(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
