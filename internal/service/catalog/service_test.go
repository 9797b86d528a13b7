package catalog

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
	"github.com/bangla-ai/platform/internal/service/localization"
)

type productRepoMock struct {
	FindBySubstringFunc func(ctx context.Context, name string, limit int) ([]domain.Product, error)
	ListActiveFunc      func(ctx context.Context) ([]domain.Product, error)
	ListFeaturedFunc    func(ctx context.Context, limit int) ([]domain.Product, error)
	ListCategoriesFunc  func(ctx context.Context) ([]string, error)
}

func (m *productRepoMock) Save(ctx context.Context, p *domain.Product) error { return nil }

func (m *productRepoMock) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	return nil, nil
}

func (m *productRepoMock) FindBySubstring(ctx context.Context, name string, limit int) ([]domain.Product, error) {
	if m.FindBySubstringFunc != nil {
		return m.FindBySubstringFunc(ctx, name, limit)
	}
	return nil, nil
}

func (m *productRepoMock) ListActive(ctx context.Context) ([]domain.Product, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *productRepoMock) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	if m.ListFeaturedFunc != nil {
		return m.ListFeaturedFunc(ctx, limit)
	}
	return nil, nil
}

func (m *productRepoMock) ListByCategory(ctx context.Context, category string, limit int) ([]domain.Product, error) {
	return nil, nil
}

func (m *productRepoMock) ListCategories(ctx context.Context) ([]string, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *productRepoMock) Delete(ctx context.Context, id uint) error { return nil }

var iphone = domain.Product{
	ID:            1,
	Name:          "iPhone 15 Pro",
	Price:         1299.99,
	Currency:      "BDT",
	Category:      "Phones",
	StockQuantity: 25,
	MinStockLevel: 5,
	IsActive:      true,
}

func newTestService(repo ports.ProductRepository) *Service {
	loc := localization.NewEngine(nil, zap.NewNop())
	return NewService(repo, loc, zap.NewNop())
}

func TestAnswerCommerceQuery_PriceWithStockTier(t *testing.T) {
	// Arrange
	repo := &productRepoMock{
		FindBySubstringFunc: func(ctx context.Context, name string, limit int) ([]domain.Product, error) {
			if strings.Contains(strings.ToLower(name), "iphone") {
				return []domain.Product{iphone}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(repo)

	// Act
	answer, err := svc.AnswerCommerceQuery(context.Background(), "iPhone 15 Pro price", nil, domain.LanguageEnglish)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if answer.Action != domain.ActionRespond {
		t.Errorf("Expected respond action, got %s", answer.Action)
	}
	if !strings.Contains(answer.Text, "1299.99") {
		t.Errorf("Expected price in response, got %q", answer.Text)
	}
	if !strings.Contains(answer.Text, "Plenty") {
		t.Errorf("Expected plenty stock refinement for 25 units, got %q", answer.Text)
	}
	if answer.Metadata["product_found"] != "iPhone 15 Pro" {
		t.Errorf("Expected product_found metadata, got %v", answer.Metadata)
	}
}

func TestAnswerCommerceQuery_BelowThresholdReportsNotFound(t *testing.T) {
	// Arrange
	repo := &productRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{iphone}, nil
		},
	}
	svc := newTestService(repo)

	// Act
	answer, err := svc.AnswerCommerceQuery(context.Background(), "XKPQ999", nil, domain.LanguageEnglish)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if answer.Metadata["product_not_found"] != "XKPQ999" {
		t.Errorf("Expected product_not_found metadata, got %v", answer.Metadata)
	}
	if !strings.Contains(answer.Text, "XKPQ999") {
		t.Errorf("Expected candidate name in response, got %q", answer.Text)
	}
}

func TestAnswerCommerceQuery_BengaliAvailability(t *testing.T) {
	// Arrange
	repo := &productRepoMock{
		FindBySubstringFunc: func(ctx context.Context, name string, limit int) ([]domain.Product, error) {
			if strings.Contains(strings.ToLower(name), "iphone") {
				return []domain.Product{iphone}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(repo)

	// Act
	answer, err := svc.AnswerCommerceQuery(context.Background(), "iPhone 15 Pro আছে?", nil, domain.LanguageBengali)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(answer.Text, "স্টকে আছে") {
		t.Errorf("Expected Bengali in-stock label, got %q", answer.Text)
	}
	if answer.Metadata["stock_tier"] != "sufficient" {
		t.Errorf("Expected sufficient tier, got %v", answer.Metadata["stock_tier"])
	}
}

func TestAnswerCommerceQuery_LowStockTier(t *testing.T) {
	// Arrange
	low := iphone
	low.StockQuantity = 3
	repo := &productRepoMock{
		FindBySubstringFunc: func(ctx context.Context, name string, limit int) ([]domain.Product, error) {
			return []domain.Product{low}, nil
		},
	}
	svc := newTestService(repo)

	// Act
	answer, err := svc.AnswerCommerceQuery(context.Background(), "is iPhone available in stock", nil, domain.LanguageEnglish)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(answer.Text, "Low stock") {
		t.Errorf("Expected low stock label for 3 of min 5, got %q", answer.Text)
	}
	if answer.Metadata["stock_tier"] != "low" {
		t.Errorf("Expected low tier, got %v", answer.Metadata["stock_tier"])
	}
}

func TestAnswerCommerceQuery_EntityOverridesExtraction(t *testing.T) {
	// Arrange
	var asked string
	repo := &productRepoMock{
		FindBySubstringFunc: func(ctx context.Context, name string, limit int) ([]domain.Product, error) {
			asked = name
			return []domain.Product{iphone}, nil
		},
	}
	svc := newTestService(repo)

	// Act
	_, err := svc.AnswerCommerceQuery(context.Background(), "koto dam?", map[string]string{"product": "iPhone 15 Pro"}, domain.LanguageBengali)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if asked != "iPhone 15 Pro" {
		t.Errorf("Expected entity product name to drive the lookup, got %q", asked)
	}
}

func TestAnswerCommerceQuery_PriceWithoutProductClarifies(t *testing.T) {
	// Arrange
	svc := newTestService(&productRepoMock{})

	// Act
	answer, err := svc.AnswerCommerceQuery(context.Background(), "koto dam?", nil, domain.LanguageBengali)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if answer.Action != domain.ActionClarify {
		t.Errorf("Expected clarify when no product name is extractable, got %s", answer.Action)
	}
	if answer.Metadata["missing"] != "product_name" {
		t.Errorf("Expected missing product_name metadata, got %v", answer.Metadata)
	}
}

func TestAnswerCommerceQuery_Categories(t *testing.T) {
	// Arrange
	repo := &productRepoMock{
		ListCategoriesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Phones", "Laptops", "Accessories"}, nil
		},
	}
	svc := newTestService(repo)

	// Act
	answer, err := svc.AnswerCommerceQuery(context.Background(), "show me the product category list", nil, domain.LanguageEnglish)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if answer.Metadata["categories_shown"] != 3 {
		t.Errorf("Expected 3 categories, got %v", answer.Metadata)
	}
	if !strings.Contains(answer.Text, "Laptops") {
		t.Errorf("Expected category listing, got %q", answer.Text)
	}
}

func TestAnswerCommerceQuery_RecommendationsFallBackToActive(t *testing.T) {
	// Arrange
	repo := &productRepoMock{
		ListFeaturedFunc: func(ctx context.Context, limit int) ([]domain.Product, error) {
			return nil, nil
		},
		ListActiveFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{iphone}, nil
		},
	}
	svc := newTestService(repo)

	// Act
	answer, err := svc.AnswerCommerceQuery(context.Background(), "recommend me something", nil, domain.LanguageEnglish)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if answer.Metadata["recommendations_count"] != 1 {
		t.Errorf("Expected 1 recommendation, got %v", answer.Metadata)
	}
	if !strings.Contains(answer.Text, "iPhone 15 Pro") {
		t.Errorf("Expected active product as recommendation, got %q", answer.Text)
	}
}

func TestRatio_Threshold(t *testing.T) {
	// Arrange / Act / Assert
	if got := ratio("iPhone 15 Pro", "iphone 15 pro"); got != 100 {
		t.Errorf("Expected case-insensitive identity to score 100, got %d", got)
	}
	if got := ratio("XKPQ999", "iPhone 15 Pro"); got >= matchThreshold {
		t.Errorf("Expected unrelated strings below threshold, got %d", got)
	}
	if got := ratio("iphone 15", "iPhone 15 Pro"); got < matchThreshold {
		t.Errorf("Expected near match above threshold, got %d", got)
	}
}

func TestRankSubstringHits_FeaturedFirst(t *testing.T) {
	// Arrange
	plain := domain.Product{Name: "Alpha Case", IsActive: true}
	featured := domain.Product{Name: "Zeta Case", IsActive: true, IsFeatured: true}

	// Act
	ranked := rankSubstringHits([]domain.Product{plain, featured})

	// Assert
	if ranked[0].Name != "Zeta Case" {
		t.Errorf("Expected featured product first, got %s", ranked[0].Name)
	}
}
