package metrics

import "strings"

// WordErrorRate computes the standard word error rate between a reference and
// a hypothesis: word-level edit distance divided by the number of reference
// words. Both strings are split on whitespace; callers are expected to
// normalize them first. An empty reference scores 0 against an empty
// hypothesis and one error per hypothesis word otherwise.
func WordErrorRate(reference, hypothesis string) float64 {
	refWords := strings.Fields(reference)
	hypWords := strings.Fields(hypothesis)

	if len(refWords) == 0 {
		return float64(len(hypWords))
	}

	return float64(editDistance(refWords, hypWords)) / float64(len(refWords))
}

// editDistance is the Levenshtein distance over word tokens, computed with a
// two-row dynamic program.
func editDistance(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
