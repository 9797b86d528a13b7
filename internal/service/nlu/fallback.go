package nlu

import (
	"strings"

	"github.com/bangla-ai/platform/internal/domain"
)

const (
	// noMatchConfidence is reported when no keyword scores at all.
	noMatchConfidence = 0.3
	// baseConfidence + perMatch*n, capped, when keywords do match.
	baseConfidence = 0.4
	perMatch       = 0.1
	maxConfidence  = 0.9
)

// classifyByKeywords is the deterministic fallback classifier: count keyword
// hits per intent, pick the argmax. Ties break in taxonomy order so the
// result is stable.
func classifyByKeywords(table KeywordTable, text string) (domain.IntentTag, float64) {
	lower := strings.ToLower(text)

	best := domain.IntentFallback
	bestScore := 0
	for _, tag := range domain.AllIntents {
		score := 0
		for _, kw := range table[tag] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = tag
			bestScore = score
		}
	}

	if bestScore == 0 {
		return domain.IntentFallback, noMatchConfidence
	}

	confidence := baseConfidence + perMatch*float64(bestScore)
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return best, confidence
}
