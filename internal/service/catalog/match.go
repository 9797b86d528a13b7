package catalog

import (
	"sort"
	"strings"

	"github.com/bangla-ai/platform/internal/domain"
)

// matchThreshold is the minimum similarity score (0-100) for a fuzzy match
// to count as a hit. Below it the query reports "not found" instead of
// guessing.
const matchThreshold = 60

// ratio is a Levenshtein-based similarity score scaled to 0-100. Case
// insensitive. 100 means identical, 0 means nothing in common.
func ratio(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 100
	}
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	d := levenshtein([]rune(a), []rune(b))
	return (la + lb - 2*d) * 100 / (la + lb)
}

func levenshtein(a, b []rune) int {
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
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// bestMatch scans active products for the name closest to the candidate
// phrase. Returns nil when the best score is below the threshold.
func bestMatch(candidate string, products []domain.Product) *domain.Product {
	var best *domain.Product
	bestScore := -1
	for i := range products {
		if !products[i].IsActive {
			continue
		}
		if s := ratio(candidate, products[i].Name); s > bestScore {
			bestScore = s
			best = &products[i]
		}
	}
	if bestScore < matchThreshold {
		return nil
	}
	return best
}

// rankSubstringHits orders substring hits by catalog relevance: featured
// first, then name-alphabetical.
func rankSubstringHits(products []domain.Product) []domain.Product {
	ranked := make([]domain.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].IsFeatured != ranked[j].IsFeatured {
			return ranked[i].IsFeatured
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}
