package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowers the input and strips diacritical marks so "Motörhead" and
// "motorhead" compare equal.
func Fold(value string) string {
	folded, _, err := transform.String(foldTransformer, value)
	if err != nil {
		folded = value
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ContainsFold reports whether haystack contains needle after folding both.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// Similarity returns a ratio in [0, 1] describing how similar two strings
// are after folding. Identical strings score 1.0; disjoint strings score 0.
func Similarity(a, b string) float64 {
	ra := []rune(Fold(a))
	rb := []rune(Fold(b))
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matches := matchingBlockLength(ra, rb)
	return 2.0 * float64(matches) / float64(total)
}

// matchingBlockLength sums the lengths of matching blocks: the longest common
// substring is located, then the regions to its left and right are matched
// recursively.
func matchingBlockLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	aStart, bStart, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	matched := size
	matched += matchingBlockLength(a[:aStart], b[:bStart])
	matched += matchingBlockLength(a[aStart+size:], b[bStart+size:])
	return matched
}

func longestCommonSubstring(a, b []rune) (aStart, bStart, size int) {
	// lengths[j] holds the match length ending at a[i-1], b[j-1] for the
	// current row; a single row is enough since we scan i ascending.
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prevDiagonal := 0
		for j := 1; j <= len(b); j++ {
			current := lengths[j]
			if a[i-1] == b[j-1] {
				length := prevDiagonal + 1
				lengths[j] = length
				if length > size {
					size = length
					aStart = i - length
					bStart = j - length
				}
			} else {
				lengths[j] = 0
			}
			prevDiagonal = current
		}
	}
	return aStart, bStart, size
}
