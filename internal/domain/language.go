package domain

// Language is a two-letter tag for the languages the platform serves.
type Language string

const (
	LanguageBengali Language = "bn"
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
	LanguageUrdu    Language = "ur"
	LanguageHindi   Language = "hi"
)

// DefaultLanguage is the fallback used whenever a template or detector has no
// better answer.
const DefaultLanguage = LanguageEnglish

// SupportedLanguages are the tags templates may be registered under.
var SupportedLanguages = []Language{
	LanguageBengali,
	LanguageEnglish,
	LanguageArabic,
	LanguageUrdu,
	LanguageHindi,
}

func ValidLanguage(l Language) bool {
	for _, s := range SupportedLanguages {
		if s == l {
			return true
		}
	}
	return false
}
