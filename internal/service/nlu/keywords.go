package nlu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bangla-ai/platform/internal/domain"
)

// KeywordTable maps each intent to its trigger fragments across the
// supported languages. The built-in table can be replaced wholesale from a
// YAML file at startup so tenants can tune matching without a rebuild.
type KeywordTable map[domain.IntentTag][]string

// defaultKeywords is the built-in fallback classifier data. Fragments are
// matched as case-insensitive substrings of the utterance.
var defaultKeywords = KeywordTable{
	domain.IntentOrderStatus:         {"order status", "my order", "অর্ডার", "kothay", "কোথায়", "where is my order", "track order"},
	domain.IntentReturnRequest:       {"return", "রিটার্ন", "ফেরত", "ferot", "refund", "রিফান্ড"},
	domain.IntentPriceInquiry:        {"price", "dam", "koto", "cost", "rate", "দাম", "মূল্য", "কত"},
	domain.IntentAvailabilityInquiry: {"available", "in stock", "ache", "স্টক", "আছে"},
	domain.IntentProductInfo:         {"details", "specification", "about the", "বর্ণনা", "তথ্য"},
	domain.IntentRecommendation:      {"recommend", "suggest", "best", "ভালো", "রেকমেন্ড"},
	domain.IntentPurchaseIntent:      {"buy", "purchase", "kinbo", "কিনতে", "কিনবো", "order korbo"},
	domain.IntentCategoryBrowse:      {"category", "categories", "ধরন", "ক্যাটাগরি"},
	domain.IntentProductInquiry:      {"product", "প্রোডাক্ট", "item"},
	domain.IntentPaymentIssue:        {"payment", "পেমেন্ট", "bkash", "বিকাশ", "nagad", "নগদ", "charged", "টাকা কেটে"},
	domain.IntentDeliveryTracking:    {"delivery", "ডেলিভারি", "courier", "কুরিয়ার", "shipment", "parcel"},
	domain.IntentComplaint:           {"complaint", "অভিযোগ", "problem", "সমস্যা", "somossha", "broken", "ভাঙা", "damaged", "kharap", "খারাপ"},
	domain.IntentGreeting:            {"hello", "hi ", "hey", "salam", "সালাম", "আসসালামু", "good morning", "kemon achen"},
}

// LoadKeywordTable reads a YAML override of the fallback keyword table. Keys
// must be members of the intent taxonomy.
func LoadKeywordTable(path string) (KeywordTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword file: %w", err)
	}

	var parsed map[string][]string
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse keyword file: %w", err)
	}

	table := make(KeywordTable, len(parsed))
	for key, words := range parsed {
		tag := domain.IntentTag(key)
		if !domain.ValidIntent(tag) {
			return nil, fmt.Errorf("unknown intent %q in keyword file", key)
		}
		table[tag] = words
	}
	return table, nil
}

// DefaultKeywordTable returns a copy of the built-in table.
func DefaultKeywordTable() KeywordTable {
	table := make(KeywordTable, len(defaultKeywords))
	for tag, words := range defaultKeywords {
		table[tag] = append([]string(nil), words...)
	}
	return table
}
