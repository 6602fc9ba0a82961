package rules

// levenshtein calculates the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change a into b.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows are enough
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
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Suggest returns the rule ID or name in the registry closest to input,
// if it is close enough to be a plausible typo.
func (r *Registry) Suggest(input string) (string, bool) {
	var candidates []string
	for _, rule := range r.All() {
		candidates = append(candidates, rule.ID(), rule.Name())
	}

	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := levenshtein(input, c)
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return "", false
	}

	// Accept at most one edit per three characters of the candidate
	if bestDist*3 > len(best) {
		return "", false
	}
	return best, true
}
