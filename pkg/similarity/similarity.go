// Package similarity provides a normalized fuzzy-match scorer between two
// strings, used to compare extracted party names against case file identity.
package similarity

// Score computes the normalized edit-distance similarity between a and b as
// an integer in [0, 100]. The underlying ratio weights substitutions at twice
// the cost of insertions and deletions, and the result is truncated toward
// zero, not rounded. Two empty strings score 100. Comparison is rune-based
// and case-sensitive; callers normalize case when they need to.
func Score(a, b string) int {
	return int(Ratio(a, b) * 100)
}

// Ratio returns the similarity ratio between a and b in [0.0, 1.0].
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	return float64(total-distance(ra, rb)) / float64(total)
}

// distance computes the weighted Levenshtein distance between two rune
// slices with insertion and deletion cost 1 and substitution cost 2. Under
// this weighting the distance equals len(a)+len(b)-2*LCS(a,b), which is what
// the normalized ratio is defined over. Single-row dynamic programming keeps
// allocation at O(len(b)).
func distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i

		for j := 1; j <= len(b); j++ {
			cost := 2
			if a[i-1] == b[j-1] {
				cost = 0
			}

			current := min(
				row[j]+1,   // deletion
				row[j-1]+1, // insertion
				prev+cost,  // substitution
			)

			prev = row[j]
			row[j] = current
		}
	}

	return row[len(b)]
}
