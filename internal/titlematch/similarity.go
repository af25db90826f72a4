package titlematch

import (
	"math"
	"sort"
	"strings"
)

// Similarity computes a token-order-insensitive similarity score between two
// strings on a 0-100 scale. Tokens are sorted before comparison, then scored
// by normalized indel distance, so Similarity(a, b) == Similarity(b, a) and
// Similarity(a, a) == 100.
func Similarity(a, b string) int {
	sa := sortTokens(a)
	sb := sortTokens(b)
	if sa == sb {
		return 100
	}
	if sa == "" || sb == "" {
		return 0
	}
	ra := []rune(sa)
	rb := []rune(sb)
	common := lcsLength(ra, rb)
	total := len(ra) + len(rb)
	return int(math.Round(100 * 2 * float64(common) / float64(total)))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// lcsLength returns the length of the longest common subsequence using a
// two-row dynamic program.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
