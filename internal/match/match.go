// Package match resolves free-text names against a tenant's catalog.
package match

import (
	"strings"

	"github.com/agext/levenshtein"
)

// exactScore is the similarity score (0-100) above which a fuzzy hit is
// treated as if the user had typed the name exactly.
const exactScore = 90

// Named is any entity that can be matched by name.
type Named interface {
	EntityName() string
}

// Resolve finds the candidate best matching query. It tries a
// case-insensitive exact match first; when exactly one candidate matches,
// that candidate is returned with exact=true. Otherwise every candidate is
// scored with a normalized Levenshtein ratio and the highest scorer wins,
// with exact=true only when its score exceeds 90. Ties keep the first
// candidate in the given order.
//
// The candidate set must be non-empty; callers guard.
func Resolve[T Named](query string, candidates []T) (T, bool) {
	if len(candidates) == 0 {
		panic("match: Resolve called with empty candidate set")
	}

	lowered := strings.ToLower(query)
	for _, c := range candidates {
		if strings.ToLower(c.EntityName()) == lowered {
			return c, true
		}
	}

	best := candidates[0]
	bestScore := Score(query, best.EntityName())
	for _, c := range candidates[1:] {
		if s := Score(query, c.EntityName()); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore > exactScore
}

// Score returns the case-insensitive similarity of two names as an integer
// ratio from 0 to 100.
func Score(a, b string) int {
	sim := levenshtein.Similarity(strings.ToLower(a), strings.ToLower(b), nil)
	return int(sim * 100)
}
