// Package textsim wraps the matchr string-distance primitives behind the
// 0-100 similarity scores the matcher and metrics layers work in.
package textsim

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Ratio returns a normalized similarity between a and b on a 0-100 scale,
// derived from Levenshtein distance over the longer string's length. Two
// empty strings are identical and score 100.
func Ratio(a, b string) float64 {
	if a == b {
		return 100
	}

	maxLen := max(len(a), len(b))
	distance := matchr.Levenshtein(a, b)

	return 100 * (1 - float64(distance)/float64(maxLen))
}

// JaroWinkler returns the Jaro-Winkler similarity of a and b in [0, 1].
func JaroWinkler(a, b string) float64 {
	return matchr.JaroWinkler(a, b, false)
}

// PhoneticCodes returns the primary and secondary Double Metaphone codes for
// s. Multi-word strings are encoded word by word and the codes concatenated,
// so "Jon Smith" and "John Smyth" produce comparable codes.
func PhoneticCodes(s string) (primary, secondary string) {
	var p, sec strings.Builder
	for _, word := range strings.Fields(s) {
		pc, sc := matchr.DoubleMetaphone(word)
		p.WriteString(pc)
		sec.WriteString(sc)
	}
	return p.String(), sec.String()
}

// PhoneticSimilarity scores how alike a and b sound: the better of the
// slot-wise Ratio over their Double Metaphone codes. An absent code compares
// as the empty string.
func PhoneticSimilarity(a, b string) float64 {
	aPrimary, aSecondary := PhoneticCodes(a)
	bPrimary, bSecondary := PhoneticCodes(b)

	return max(Ratio(aPrimary, bPrimary), Ratio(aSecondary, bSecondary))
}
