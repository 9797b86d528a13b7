package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

type ConversationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewConversationRepository(db *gorm.DB, log *zap.Logger) ports.ConversationRepository {
	return &ConversationRepository{
		db:  db,
		log: log,
	}
}

func (r *ConversationRepository) Save(ctx context.Context, c *domain.Conversation) error {
	result := r.db.WithContext(ctx).Save(c)
	if result.Error != nil {
		r.log.Error("Failed to save conversation",
			zap.String("id", c.ID),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	var c domain.Conversation
	result := r.db.WithContext(ctx).First(&c, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &c, nil
}

func (r *ConversationRepository) FindByCustomer(ctx context.Context, tenantID, customerID string) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("updated_at DESC").
		Find(&conversations)
	if result.Error != nil {
		return nil, result.Error
	}
	return conversations, nil
}

func (r *ConversationRepository) SaveTurn(ctx context.Context, t *domain.Turn) error {
	result := r.db.WithContext(ctx).Create(t)
	if result.Error != nil {
		r.log.Error("Failed to save turn",
			zap.String("conversation_id", t.ConversationID),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *ConversationRepository) FindTurns(ctx context.Context, conversationID string, limit int) ([]domain.Turn, error) {
	var turns []domain.Turn
	result := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&turns)
	if result.Error != nil {
		return nil, result.Error
	}
	return turns, nil
}
