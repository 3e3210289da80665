package dedup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const epsilon = 1e-9

// NormalizeTitle lowercases a title, strips punctuation and collapses whitespace.
func NormalizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Similarity is the normalized Levenshtein similarity of two strings,
// 1 - distance/max(len), measured in runes.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	maxLen := max(la, lb)
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

// similar reports whether two normalized titles meet the threshold. The
// length ratio bounds the similarity from above, so most pairs are rejected
// without computing the distance.
func similar(a, b string, threshold float64) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if float64(min(la, lb))/float64(max(la, lb)) < threshold-epsilon {
		return false
	}
	return Similarity(a, b) >= threshold-epsilon
}
