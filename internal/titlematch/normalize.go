package titlematch

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	yearSuffixPattern = regexp.MustCompile(`\s*\(\d{4}\)`)
	joinerPattern     = regexp.MustCompile(`\s+(&|and)\s+`)
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// diacriticFold strips combining marks so accented and plain spellings of the
// same title agree across catalogs.
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize reduces a title to its comparison key: the release-year suffix is
// dropped, the string is lowercased, "&" and "and" collapse to a single
// joiner token, diacritics are folded, and everything that is not a letter or
// digit is removed. The function is pure and total.
func Normalize(title string) string {
	t := yearSuffixPattern.ReplaceAllString(title, "")
	t = strings.ToLower(t)
	t = joinerPattern.ReplaceAllString(t, " and ")
	if folded, _, err := transform.String(diacriticFold, t); err == nil {
		t = folded
	}
	t = nonWordPattern.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}
