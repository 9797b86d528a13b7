package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

type TemplateRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTemplateRepository(db *gorm.DB, log *zap.Logger) ports.TemplateRepository {
	return &TemplateRepository{
		db:  db,
		log: log,
	}
}

func (r *TemplateRepository) Save(ctx context.Context, t *domain.Template) error {
	result := r.db.WithContext(ctx).Save(t)
	if result.Error != nil {
		r.log.Error("Failed to save template",
			zap.String("key", t.Key),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *TemplateRepository) FindByKey(ctx context.Context, key string, lang domain.Language) (*domain.Template, error) {
	var t domain.Template
	result := r.db.WithContext(ctx).First(&t, "key = ? AND language = ?", key, lang)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &t, nil
}

func (r *TemplateRepository) FindAll(ctx context.Context) ([]domain.Template, error) {
	var templates []domain.Template
	result := r.db.WithContext(ctx).Find(&templates)
	if result.Error != nil {
		return nil, result.Error
	}
	return templates, nil
}

func (r *TemplateRepository) Delete(ctx context.Context, key string, lang domain.Language) error {
	result := r.db.WithContext(ctx).Delete(&domain.Template{}, "key = ? AND language = ?", key, lang)
	return result.Error
}
