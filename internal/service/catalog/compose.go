package catalog

import (
	"fmt"
	"strings"

	"github.com/bangla-ai/platform/internal/domain"
)

// labelSet holds the per-language fragments the composers stitch around
// product fields. Languages without a set fall back to English.
type labelSet struct {
	price         string
	category      string
	brand         string
	stock         string
	inStock       string
	lowStock      string
	outOfStock    string
	pieces        string
	plenty        string
	limited       string
	urgent        string
	restock       string
	orderHint     string
	moreInfo      string
	categoriesTop string
	whichCategory string
	recommended   string
	whichBuy      string
	orderSteps    string
	found         string
	foundMany     string
	whichOne      string
	tags          string
	description   string
}

var labels = map[domain.Language]labelSet{
	domain.LanguageEnglish: {
		price:         "Price",
		category:      "Category",
		brand:         "Brand",
		stock:         "Stock",
		inStock:       "In stock",
		lowStock:      "Low stock",
		outOfStock:    "Out of stock",
		pieces:        "pcs",
		plenty:        "Plenty in stock",
		limited:       "Stock is limited",
		urgent:        "Almost gone - order fast!",
		restock:       "Expected back within 3-5 business days.",
		orderHint:     "To order, say: 'I want to buy this product'",
		moreInfo:      "Anything else you would like to know?",
		categoriesTop: "Our product categories:",
		whichCategory: "Which category would you like to see?",
		recommended:   "Recommended products:",
		whichBuy:      "Which one would you like to buy?",
		orderSteps:    "Please tell me your name, address and quantity. I will process your order.",
		found:         "Found it!",
		foundMany:     "products found:",
		whichOne:      "Which one would you like to see?",
		tags:          "Tags",
		description:   "",
	},
	domain.LanguageBengali: {
		price:         "দাম",
		category:      "ক্যাটাগরি",
		brand:         "ব্র্যান্ড",
		stock:         "স্টক",
		inStock:       "স্টকে আছে",
		lowStock:      "স্টকে কম",
		outOfStock:    "স্টকে নেই",
		pieces:        "পিস",
		plenty:        "পর্যাপ্ত স্টক আছে",
		limited:       "স্টক সীমিত",
		urgent:        "শেষ হয়ে যাচ্ছে - দ্রুত অর্ডার করুন!",
		restock:       "৩-৫ কার্যদিবসের মধ্যে স্টকে আসবে।",
		orderHint:     "অর্ডার করতে বলুন: 'আমি এই প্রোডাক্ট কিনতে চাই'",
		moreInfo:      "আর কিছু জানতে চান?",
		categoriesTop: "আমাদের প্রোডাক্ট ক্যাটাগরি:",
		whichCategory: "কোন ক্যাটাগরি দেখতে চান?",
		recommended:   "রেকমেন্ডেড প্রোডাক্টস:",
		whichBuy:      "কোনটা কিনতে চান?",
		orderSteps:    "আপনার নাম, ঠিকানা, এবং পরিমাণ বলুন। আমি আপনার অর্ডার প্রসেস করব।",
		found:         "খুঁজে পেলাম!",
		foundMany:     "টি প্রোডাক্ট খুঁজে পেলাম:",
		whichOne:      "কোনটা দেখতে চান?",
		tags:          "ট্যাগ",
		description:   "",
	},
}

func labelsFor(lang domain.Language) labelSet {
	if l, ok := labels[lang]; ok {
		return l
	}
	return labels[domain.DefaultLanguage]
}

func formatPrice(p *domain.Product) string {
	return fmt.Sprintf("%s %.2f", p.Currency, p.Price)
}

// stockLine renders the tier and its refinement for the product.
func stockLine(p *domain.Product, l labelSet) string {
	switch p.Tier() {
	case domain.StockTierOut:
		return l.outOfStock
	case domain.StockTierLow:
		return fmt.Sprintf("%s (%d %s)", l.lowStock, p.StockQuantity, l.pieces)
	default:
		var refinement string
		switch p.Refinement() {
		case domain.StockRefinementUrgent:
			refinement = l.urgent
		case domain.StockRefinementLimited:
			refinement = l.limited
		default:
			refinement = l.plenty
		}
		return fmt.Sprintf("%s (%d %s) - %s", l.inStock, p.StockQuantity, l.pieces, refinement)
	}
}

func composePrice(p *domain.Product, lang domain.Language) string {
	l := labelsFor(lang)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Name)
	fmt.Fprintf(&b, "%s: %s\n", l.price, formatPrice(p))
	if p.Category != "" {
		fmt.Fprintf(&b, "%s: %s\n", l.category, p.Category)
	}
	if p.Brand != "" {
		fmt.Fprintf(&b, "%s: %s\n", l.brand, p.Brand)
	}
	fmt.Fprintf(&b, "%s: %s\n", l.stock, stockLine(p, l))
	fmt.Fprintf(&b, "\n%s", l.orderHint)
	return b.String()
}

func composeAvailability(p *domain.Product, lang domain.Language) string {
	l := labelsFor(lang)
	var b strings.Builder
	if p.Tier() == domain.StockTierOut {
		fmt.Fprintf(&b, "%s - %s\n", p.Name, l.outOfStock)
		fmt.Fprintf(&b, "%s", l.restock)
		return b.String()
	}
	fmt.Fprintf(&b, "%s - %s\n", p.Name, stockLine(p, l))
	fmt.Fprintf(&b, "%s: %s\n", l.price, formatPrice(p))
	fmt.Fprintf(&b, "\n%s", l.orderHint)
	return b.String()
}

func composeInfo(p *domain.Product, lang domain.Language) string {
	l := labelsFor(lang)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	fmt.Fprintf(&b, "%s: %s\n", l.price, formatPrice(p))
	if p.Category != "" {
		fmt.Fprintf(&b, "%s: %s\n", l.category, p.Category)
	}
	if p.Brand != "" {
		fmt.Fprintf(&b, "%s: %s\n", l.brand, p.Brand)
	}
	fmt.Fprintf(&b, "%s: %s\n", l.stock, stockLine(p, l))
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "%s: %s\n", l.tags, strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(&b, "\n%s", l.moreInfo)
	return b.String()
}

func composeCategories(categories []string, lang domain.Language) string {
	l := labelsFor(lang)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", l.categoriesTop)
	for i, c := range categories {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	fmt.Fprintf(&b, "\n%s", l.whichCategory)
	return b.String()
}

func composeRecommendations(products []domain.Product, lang domain.Language) string {
	l := labelsFor(lang)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", l.recommended)
	for i := range products {
		p := &products[i]
		fmt.Fprintf(&b, "- %s: %s", p.Name, formatPrice(p))
		if p.Category != "" {
			fmt.Fprintf(&b, " (%s)", p.Category)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%s", l.whichBuy)
	return b.String()
}

func composePurchase(p *domain.Product, lang domain.Language) string {
	l := labelsFor(lang)
	var b strings.Builder
	if p != nil {
		fmt.Fprintf(&b, "%s - %s: %s\n\n", p.Name, l.price, formatPrice(p))
	}
	b.WriteString(l.orderSteps)
	return b.String()
}

func composeSearchResults(products []domain.Product, lang domain.Language) string {
	l := labelsFor(lang)
	var b strings.Builder
	if len(products) == 1 {
		p := &products[0]
		fmt.Fprintf(&b, "%s - %s\n", p.Name, l.found)
		fmt.Fprintf(&b, "%s: %s\n", l.price, formatPrice(p))
		fmt.Fprintf(&b, "%s: %s\n", l.stock, stockLine(p, l))
		fmt.Fprintf(&b, "\n%s", l.moreInfo)
		return b.String()
	}
	fmt.Fprintf(&b, "%d %s\n\n", len(products), l.foundMany)
	for i := range products {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, products[i].Name, formatPrice(&products[i]))
	}
	fmt.Fprintf(&b, "\n%s", l.whichOne)
	return b.String()
}
