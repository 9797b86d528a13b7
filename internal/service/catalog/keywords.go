package catalog

import (
	"regexp"
	"strings"
)

// queryKind is the commerce query category. Classification is ordered,
// first match wins; anything unmatched falls through to general search.
type queryKind int

const (
	kindPrice queryKind = iota
	kindAvailability
	kindInfo
	kindCategory
	kindRecommendation
	kindPurchase
	kindGeneral
)

// classifierRules pair each kind with its trigger phrases across the
// supported languages. Order matters: price outranks availability, which
// outranks the rest.
var classifierRules = []struct {
	kind     queryKind
	keywords []string
}{
	{kindPrice, []string{"price", "dam", "koto", "rate", "cost", "মূল্য", "দাম", "কত"}},
	{kindAvailability, []string{"available", "stock", "have", "ache", "স্টক", "আছে"}},
	{kindInfo, []string{"about", "details", "info", "বর্ণনা", "তথ্য"}},
	{kindCategory, []string{"category", "type", "ধরন", "ক্যাটাগরি"}},
	{kindRecommendation, []string{"recommend", "suggest", "ভালো", "রেকমেন্ড"}},
	{kindPurchase, []string{"order", "buy", "purchase", "অর্ডার", "কিনতে"}},
}

func classify(query string) queryKind {
	q := strings.ToLower(query)
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.kind
			}
		}
	}
	return kindGeneral
}

// namePatterns pull a candidate product phrase out of the raw query when no
// entity provided one. English, romanized Bengali and Bengali-script forms.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)price of (.+)`),
	regexp.MustCompile(`(?i)dam (.+)`),
	regexp.MustCompile(`(?i)about (.+)`),
	regexp.MustCompile(`(?i)(.+) er dam`),
	regexp.MustCompile(`(?i)(.+) er price`),
	regexp.MustCompile(`(.+) এর দাম`),
	regexp.MustCompile(`(.+) এর মূল্য`),
	regexp.MustCompile(`(.+) দাম`),
}

var fillerWords = regexp.MustCompile(`(?i)\b(of|er|the|a|an|ta|ki)\b`)

// extractProductName prefers an explicit entity, then the extraction
// patterns, then the query with trigger keywords stripped.
func extractProductName(query string, entities map[string]string) string {
	if name, ok := entities["product"]; ok && name != "" {
		return name
	}
	if name, ok := entities["product_name"]; ok && name != "" {
		return name
	}

	for _, p := range namePatterns {
		if m := p.FindStringSubmatch(query); m != nil {
			if name := cleanCandidate(m[1]); name != "" {
				return name
			}
		}
	}

	// Last resort: drop the trigger phrases and treat the remainder as the
	// candidate ("iPhone 15 Pro price" -> "iPhone 15 Pro").
	remainder := query
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			remainder = removeWord(remainder, kw)
		}
	}
	return cleanCandidate(remainder)
}

func cleanCandidate(s string) string {
	s = fillerWords.ReplaceAllString(s, " ")
	s = strings.Trim(s, " ?!.,؟।")
	return strings.Join(strings.Fields(s), " ")
}

func removeWord(s, word string) string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if strings.EqualFold(strings.Trim(f, "?!.,؟।"), word) {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
