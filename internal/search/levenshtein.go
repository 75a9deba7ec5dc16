package search

// Distance calculates the Levenshtein distance between two strings.
// This is the minimum number of single-character edits (insertions, deletions, or substitutions)
// required to change one string into another. Callers are expected to lowercase both sides.
func Distance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	len1, len2 := len(r1), len(r2)

	// Create a 2D slice for dynamic programming
	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	// Initialize first row and column
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len1][len2]
}

// withinDistance reports whether word is a tolerable typo of term: the rune
// lengths differ by at most maxDelta and the edit distance is at most maxDist.
func withinDistance(term, word string, maxDelta, maxDist int) bool {
	delta := runeLen(term) - runeLen(word)
	if delta < 0 {
		delta = -delta
	}
	if delta > maxDelta {
		return false
	}
	return Distance(term, word) <= maxDist
}
