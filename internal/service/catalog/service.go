package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

// Service answers commerce-flavored queries from the product catalog. It is
// read-only: the only side effect is the repository lookup.
type Service struct {
	products ports.ProductRepository
	loc      ports.Localizer
	log      *zap.Logger
}

func NewService(products ports.ProductRepository, loc ports.Localizer, log *zap.Logger) *Service {
	return &Service{
		products: products,
		loc:      loc,
		log:      log,
	}
}

// AnswerCommerceQuery classifies the query, extracts a candidate product
// name, matches it against the catalog and composes a deterministic reply.
// Repository failures surface as errors so the caller can escalate.
func (s *Service) AnswerCommerceQuery(ctx context.Context, query string, entities map[string]string, lang domain.Language) (*ports.CatalogAnswer, error) {
	if query == "" {
		return s.clarify(ctx, "clarify_message", lang, "message"), nil
	}

	switch classify(query) {
	case kindPrice:
		return s.answerPrice(ctx, query, entities, lang)
	case kindAvailability:
		return s.answerAvailability(ctx, query, entities, lang)
	case kindInfo:
		return s.answerInfo(ctx, query, entities, lang)
	case kindCategory:
		return s.answerCategories(ctx, lang)
	case kindRecommendation:
		return s.answerRecommendations(ctx, lang)
	case kindPurchase:
		return s.answerPurchase(ctx, query, entities, lang)
	default:
		return s.answerGeneral(ctx, query, lang)
	}
}

func (s *Service) answerPrice(ctx context.Context, query string, entities map[string]string, lang domain.Language) (*ports.CatalogAnswer, error) {
	name := extractProductName(query, entities)
	if name == "" {
		return s.clarify(ctx, "clarify_product", lang, "product_name"), nil
	}

	product, err := s.findProduct(ctx, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return s.notFound(ctx, name, lang), nil
	}

	return &ports.CatalogAnswer{
		Text:   composePrice(product, lang),
		Action: domain.ActionRespond,
		Metadata: map[string]interface{}{
			"product_found": product.Name,
			"price":         product.Price,
			"currency":      product.Currency,
			"in_stock":      product.StockQuantity > 0,
		},
	}, nil
}

func (s *Service) answerAvailability(ctx context.Context, query string, entities map[string]string, lang domain.Language) (*ports.CatalogAnswer, error) {
	name := extractProductName(query, entities)
	if name == "" {
		return s.clarify(ctx, "clarify_product", lang, "product_name"), nil
	}

	product, err := s.findProduct(ctx, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return s.notFound(ctx, name, lang), nil
	}

	return &ports.CatalogAnswer{
		Text:   composeAvailability(product, lang),
		Action: domain.ActionRespond,
		Metadata: map[string]interface{}{
			"product":        product.Name,
			"available":      product.StockQuantity > 0,
			"stock_quantity": product.StockQuantity,
			"stock_tier":     string(product.Tier()),
		},
	}, nil
}

func (s *Service) answerInfo(ctx context.Context, query string, entities map[string]string, lang domain.Language) (*ports.CatalogAnswer, error) {
	name := extractProductName(query, entities)
	if name == "" {
		return s.clarify(ctx, "clarify_product", lang, "product_name"), nil
	}

	product, err := s.findProduct(ctx, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return s.notFound(ctx, name, lang), nil
	}

	return &ports.CatalogAnswer{
		Text:     composeInfo(product, lang),
		Action:   domain.ActionRespond,
		Metadata: map[string]interface{}{"product_info": product.Name},
	}, nil
}

func (s *Service) answerCategories(ctx context.Context, lang domain.Language) (*ports.CatalogAnswer, error) {
	categories, err := s.products.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return s.notFound(ctx, "category", lang), nil
	}

	return &ports.CatalogAnswer{
		Text:     composeCategories(categories, lang),
		Action:   domain.ActionRespond,
		Metadata: map[string]interface{}{"categories_shown": len(categories)},
	}, nil
}

func (s *Service) answerRecommendations(ctx context.Context, lang domain.Language) (*ports.CatalogAnswer, error) {
	featured, err := s.products.ListFeatured(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("list featured: %w", err)
	}
	if len(featured) == 0 {
		// Any active products beat an empty answer.
		featured, err = s.products.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active: %w", err)
		}
		if len(featured) > 5 {
			featured = featured[:5]
		}
	}
	if len(featured) == 0 {
		return s.notFound(ctx, "recommendation", lang), nil
	}

	return &ports.CatalogAnswer{
		Text:     composeRecommendations(featured, lang),
		Action:   domain.ActionRespond,
		Metadata: map[string]interface{}{"recommendations_count": len(featured)},
	}, nil
}

func (s *Service) answerPurchase(ctx context.Context, query string, entities map[string]string, lang domain.Language) (*ports.CatalogAnswer, error) {
	name := extractProductName(query, entities)

	var product *domain.Product
	if name != "" {
		var err error
		product, err = s.findProduct(ctx, name)
		if err != nil {
			return nil, err
		}
	}

	meta := map[string]interface{}{"intent": "purchase"}
	if product != nil {
		meta["product"] = product.Name
	}

	return &ports.CatalogAnswer{
		Text:     composePurchase(product, lang),
		Action:   domain.ActionRespond,
		Metadata: meta,
	}, nil
}

func (s *Service) answerGeneral(ctx context.Context, query string, lang domain.Language) (*ports.CatalogAnswer, error) {
	hits, err := s.products.FindBySubstring(ctx, query, 10)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	if len(hits) == 0 {
		all, err := s.products.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active: %w", err)
		}
		if p := bestMatch(query, all); p != nil {
			hits = []domain.Product{*p}
		}
	}
	if len(hits) == 0 {
		return s.notFound(ctx, query, lang), nil
	}

	return &ports.CatalogAnswer{
		Text:     composeSearchResults(rankSubstringHits(hits), lang),
		Action:   domain.ActionRespond,
		Metadata: map[string]interface{}{"products_found": len(hits)},
	}, nil
}

// findProduct resolves a candidate name to the single best catalog item:
// substring hits ranked by relevance first, fuzzy match over the full active
// catalog as the fallback.
func (s *Service) findProduct(ctx context.Context, name string) (*domain.Product, error) {
	hits, err := s.products.FindBySubstring(ctx, name, 5)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	if len(hits) > 0 {
		ranked := rankSubstringHits(hits)
		return &ranked[0], nil
	}

	all, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active: %w", err)
	}
	return bestMatch(name, all), nil
}

func (s *Service) clarify(ctx context.Context, key string, lang domain.Language, missing string) *ports.CatalogAnswer {
	return &ports.CatalogAnswer{
		Text:     s.loc.Localize(ctx, key, lang, nil),
		Action:   domain.ActionClarify,
		Metadata: map[string]interface{}{"missing": missing},
	}
}

func (s *Service) notFound(ctx context.Context, name string, lang domain.Language) *ports.CatalogAnswer {
	s.log.Debug("No catalog match", zap.String("candidate", name))
	return &ports.CatalogAnswer{
		Text:   s.loc.Localize(ctx, "product_not_found", lang, map[string]interface{}{"product_name": name}),
		Action: domain.ActionRespond,
		Metadata: map[string]interface{}{
			"product_not_found": name,
		},
	}
}
