package match

// Distance returns the Levenshtein edit distance between a and b, counting
// runes rather than bytes. Insertions, deletions and substitutions cost 1.
//
// Only two rows of the DP table are kept, sized by the shorter input, so
// memory is O(min(len(a), len(b))).
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = min(
				prev[j+1]+1, // deletion
				curr[j]+1,   // insertion
				prev[j]+cost,
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Similarity returns 1 - Distance(a, b)/max(len(a), len(b)) over runes.
// Two empty strings are treated as identical.
func Similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(Distance(a, b))/float64(maxLen)
}
