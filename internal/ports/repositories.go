package ports

import (
	"context"
	"time"

	"github.com/bangla-ai/platform/internal/domain"
)

// ProductRepository is the read-mostly catalog surface the resolver scans.
type ProductRepository interface {
	Save(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	FindBySubstring(ctx context.Context, name string, limit int) ([]domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id uint) error
}

type TemplateRepository interface {
	Save(ctx context.Context, t *domain.Template) error
	FindByKey(ctx context.Context, key string, lang domain.Language) (*domain.Template, error)
	FindAll(ctx context.Context) ([]domain.Template, error)
	Delete(ctx context.Context, key string, lang domain.Language) error
}

type ConversationRepository interface {
	Save(ctx context.Context, c *domain.Conversation) error
	FindByID(ctx context.Context, id string) (*domain.Conversation, error)
	FindByCustomer(ctx context.Context, tenantID, customerID string) ([]domain.Conversation, error)
	SaveTurn(ctx context.Context, t *domain.Turn) error
	FindTurns(ctx context.Context, conversationID string, limit int) ([]domain.Turn, error)
}

// Cache is the generic cache surface backed by Redis or local memory.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
