package mocks

import (
	"context"
	"strings"

	"github.com/bangla-ai/platform/internal/domain"
)

// MockProductRepository implements ports.ProductRepository over a slice.
type MockProductRepository struct {
	Products            []domain.Product
	SaveFunc            func(ctx context.Context, p *domain.Product) error
	FindByIDFunc        func(ctx context.Context, id uint) (*domain.Product, error)
	FindBySubstringFunc func(ctx context.Context, name string, limit int) ([]domain.Product, error)
	ListActiveFunc      func(ctx context.Context) ([]domain.Product, error)
	ListFeaturedFunc    func(ctx context.Context, limit int) ([]domain.Product, error)
	ListByCategoryFunc  func(ctx context.Context, category string, limit int) ([]domain.Product, error)
	ListCategoriesFunc  func(ctx context.Context) ([]string, error)
	DeleteFunc          func(ctx context.Context, id uint) error
}

func NewMockProductRepository(products ...domain.Product) *MockProductRepository {
	return &MockProductRepository{Products: products}
}

func (m *MockProductRepository) Save(ctx context.Context, p *domain.Product) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, p)
	}
	m.Products = append(m.Products, *p)
	return nil
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	for i := range m.Products {
		if m.Products[i].ID == id {
			return &m.Products[i], nil
		}
	}
	return nil, nil
}

func (m *MockProductRepository) FindBySubstring(ctx context.Context, name string, limit int) ([]domain.Product, error) {
	if m.FindBySubstringFunc != nil {
		return m.FindBySubstringFunc(ctx, name, limit)
	}
	var hits []domain.Product
	for _, p := range m.Products {
		if p.IsActive && containsFold(p.Name, name) {
			hits = append(hits, p)
			if len(hits) == limit {
				break
			}
		}
	}
	return hits, nil
}

func (m *MockProductRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	var active []domain.Product
	for _, p := range m.Products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (m *MockProductRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	if m.ListFeaturedFunc != nil {
		return m.ListFeaturedFunc(ctx, limit)
	}
	var featured []domain.Product
	for _, p := range m.Products {
		if p.IsActive && p.IsFeatured {
			featured = append(featured, p)
			if len(featured) == limit {
				break
			}
		}
	}
	return featured, nil
}

func (m *MockProductRepository) ListByCategory(ctx context.Context, category string, limit int) ([]domain.Product, error) {
	if m.ListByCategoryFunc != nil {
		return m.ListByCategoryFunc(ctx, category, limit)
	}
	var hits []domain.Product
	for _, p := range m.Products {
		if p.IsActive && containsFold(p.Category, category) {
			hits = append(hits, p)
			if len(hits) == limit {
				break
			}
		}
	}
	return hits, nil
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	seen := make(map[string]bool)
	var categories []string
	for _, p := range m.Products {
		if p.IsActive && p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	for i := range m.Products {
		if m.Products[i].ID == id {
			m.Products = append(m.Products[:i], m.Products[i+1:]...)
			return nil
		}
	}
	return nil
}

// MockTemplateRepository implements ports.TemplateRepository over a slice.
type MockTemplateRepository struct {
	Templates     []domain.Template
	SaveFunc      func(ctx context.Context, t *domain.Template) error
	FindByKeyFunc func(ctx context.Context, key string, lang domain.Language) (*domain.Template, error)
	FindAllFunc   func(ctx context.Context) ([]domain.Template, error)
	DeleteFunc    func(ctx context.Context, key string, lang domain.Language) error
}

func NewMockTemplateRepository(templates ...domain.Template) *MockTemplateRepository {
	return &MockTemplateRepository{Templates: templates}
}

func (m *MockTemplateRepository) Save(ctx context.Context, t *domain.Template) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	for i := range m.Templates {
		if m.Templates[i].Key == t.Key && m.Templates[i].Language == t.Language {
			m.Templates[i] = *t
			return nil
		}
	}
	m.Templates = append(m.Templates, *t)
	return nil
}

func (m *MockTemplateRepository) FindByKey(ctx context.Context, key string, lang domain.Language) (*domain.Template, error) {
	if m.FindByKeyFunc != nil {
		return m.FindByKeyFunc(ctx, key, lang)
	}
	for i := range m.Templates {
		if m.Templates[i].Key == key && m.Templates[i].Language == lang {
			return &m.Templates[i], nil
		}
	}
	return nil, nil
}

func (m *MockTemplateRepository) FindAll(ctx context.Context) ([]domain.Template, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return m.Templates, nil
}

func (m *MockTemplateRepository) Delete(ctx context.Context, key string, lang domain.Language) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key, lang)
	}
	for i := range m.Templates {
		if m.Templates[i].Key == key && m.Templates[i].Language == lang {
			m.Templates = append(m.Templates[:i], m.Templates[i+1:]...)
			return nil
		}
	}
	return nil
}

// MockConversationRepository implements ports.ConversationRepository in memory.
type MockConversationRepository struct {
	Conversations map[string]*domain.Conversation
	Turns         map[string][]domain.Turn
	SaveFunc      func(ctx context.Context, c *domain.Conversation) error
	SaveTurnFunc  func(ctx context.Context, t *domain.Turn) error
}

func NewMockConversationRepository() *MockConversationRepository {
	return &MockConversationRepository{
		Conversations: make(map[string]*domain.Conversation),
		Turns:         make(map[string][]domain.Turn),
	}
}

func (m *MockConversationRepository) Save(ctx context.Context, c *domain.Conversation) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	m.Conversations[c.ID] = c
	return nil
}

func (m *MockConversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	return m.Conversations[id], nil
}

func (m *MockConversationRepository) FindByCustomer(ctx context.Context, tenantID, customerID string) ([]domain.Conversation, error) {
	var found []domain.Conversation
	for _, c := range m.Conversations {
		if c.TenantID == tenantID && c.CustomerID == customerID {
			found = append(found, *c)
		}
	}
	return found, nil
}

func (m *MockConversationRepository) SaveTurn(ctx context.Context, t *domain.Turn) error {
	if m.SaveTurnFunc != nil {
		return m.SaveTurnFunc(ctx, t)
	}
	m.Turns[t.ConversationID] = append(m.Turns[t.ConversationID], *t)
	return nil
}

func (m *MockConversationRepository) FindTurns(ctx context.Context, conversationID string, limit int) ([]domain.Turn, error) {
	turns := m.Turns[conversationID]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
