package nlu

import "regexp"

// Regex fallback for entity extraction. Each pattern's first capture group
// (or the whole match when there is none) becomes the entity value.
var entityPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"order_id", regexp.MustCompile(`(?i)(?:order|অর্ডার|#)\s*([A-Z]{0,3}-?\d+)`)},
	{"phone", regexp.MustCompile(`(?:\+?88)?01[3-9]\d{8}`)},
	{"amount", regexp.MustCompile(`(?i)(?:৳|টাকা|taka|tk)\s*(\d+(?:\.\d+)?)`)},
	{"email", regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)},
	{"date", regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2})\b`)},
	{"quantity", regexp.MustCompile(`(?i)(\d+)\s*(?:pcs|pieces|piece|ta|পিস|টা)`)},
	{"payment_method", regexp.MustCompile(`(?i)\b(bkash|nagad|rocket|card|cod|cash on delivery|বিকাশ|নগদ|রকেট)\b`)},
}

// extractEntitiesByPattern applies the fixed regex set to the raw text. It
// never fails; unmatched entity types are simply absent.
func extractEntitiesByPattern(text string) map[string]string {
	entities := make(map[string]string)
	for _, ep := range entityPatterns {
		m := ep.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 && m[1] != "" {
			value = m[1]
		}
		entities[ep.name] = value
	}
	return entities
}
