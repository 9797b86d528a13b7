package language

import (
	"strings"
	"unicode"

	"github.com/bangla-ai/platform/internal/domain"
)

// Detector infers the probable language of an utterance from Unicode script
// ranges and high-frequency function words. It is a pure function holder:
// Detect has no side effects and always returns a value.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// scriptRatioThreshold is the share of non-whitespace characters a script
// must reach before it decides the language.
const scriptRatioThreshold = 0.30

// Function words used to disambiguate languages sharing a script, and to
// recognize romanized Bengali written in Latin script.
var functionWords = map[domain.Language][]string{
	domain.LanguageArabic: {"هذا", "هل", "ماذا", "في", "من", "على", "انا"},
	domain.LanguageUrdu:   {"کیا", "ہے", "میں", "آپ", "کا", "نہیں", "اور"},
	domain.LanguageHindi:  {"क्या", "है", "मैं", "आप", "का", "नहीं", "और"},
	domain.LanguageBengali: {
		// Romanized Bengali ("banglish") high-frequency words.
		"ami", "amar", "apni", "apnar", "kothay", "koto", "ache", "nai",
		"kemon", "keno", "korbo", "korchi", "bolun", "dam", "taka",
	},
}

// Devanagari-script Urdu function words (transliterated Urdu occasionally
// arrives in Devanagari from upstream transliteration layers).
var devanagariUrduWords = []string{"क्या", "है", "मे", "तुम", "नही"}

// Detect returns the probable language of text. Decision order: a non-Latin
// script whose character ratio exceeds the threshold wins, with shared-script
// pairs (Arabic: ar/ur, Devanagari: hi/ur) split on function-word counts;
// Latin text dominated by romanized-Bengali function words maps to bn;
// everything else defaults to English.
func (d *Detector) Detect(text string) domain.Language {
	var bengali, arabic, devanagari, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case r >= 0x0980 && r <= 0x09FF:
			bengali++
		case r >= 0x0600 && r <= 0x06FF:
			arabic++
		case r >= 0x0900 && r <= 0x097F:
			devanagari++
		}
	}

	if total == 0 {
		return domain.DefaultLanguage
	}

	ratio := func(n int) float64 { return float64(n) / float64(total) }

	switch {
	case ratio(bengali) > scriptRatioThreshold:
		return domain.LanguageBengali
	case ratio(arabic) > scriptRatioThreshold:
		// Arabic script carries both Arabic and Urdu.
		if countWords(text, functionWords[domain.LanguageUrdu]) > countWords(text, functionWords[domain.LanguageArabic]) {
			return domain.LanguageUrdu
		}
		return domain.LanguageArabic
	case ratio(devanagari) > scriptRatioThreshold:
		if countWords(text, devanagariUrduWords) > countWords(text, functionWords[domain.LanguageHindi]) {
			return domain.LanguageUrdu
		}
		return domain.LanguageHindi
	}

	// Latin script: romanized Bengali is common on chat channels.
	if countWords(strings.ToLower(text), functionWords[domain.LanguageBengali]) >= 2 {
		return domain.LanguageBengali
	}

	return domain.DefaultLanguage
}

func countWords(text string, words []string) int {
	fields := strings.Fields(text)
	count := 0
	for _, f := range fields {
		f = strings.Trim(f, ".,!?।؟")
		for _, w := range words {
			if f == w {
				count++
				break
			}
		}
	}
	return count
}
