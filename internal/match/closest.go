package match

import (
	"strings"
)

// DefaultThreshold is the minimum similarity for a suggestion.
const DefaultThreshold = 0.6

// Normalize lowercases s and drops '_', '-', '.' and spaces.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', '.', ' ':
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Closest returns the candidate most similar to name after normalization.
// Ties keep the earliest candidate. ok is false when nothing reaches
// threshold or when name itself is among the candidates.
func Closest(name string, candidates []string, threshold float64) (best string, ok bool) {
	norm := Normalize(name)
	bestScore := -1.0

	for _, c := range candidates {
		if c == name {
			return "", false
		}

		score := Similarity(norm, Normalize(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < threshold {
		return "", false
	}

	return best, true
}
