package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

type ProductRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProductRepository(db *gorm.DB, log *zap.Logger) ports.ProductRepository {
	return &ProductRepository{
		db:  db,
		log: log,
	}
}

func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	result := r.db.WithContext(ctx).Save(p)
	if result.Error != nil {
		r.log.Error("Failed to save product", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	result := r.db.WithContext(ctx).First(&p, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *ProductRepository) FindBySubstring(ctx context.Context, name string, limit int) ([]domain.Product, error) {
	var products []domain.Product
	result := r.db.WithContext(ctx).
		Where("is_active = ? AND name ILIKE ?", true, "%"+name+"%").
		Order("is_featured DESC, name ASC").
		Limit(limit).
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

func (r *ProductRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	result := r.db.WithContext(ctx).
		Where("is_active = ? AND is_featured = ?", true, true).
		Limit(limit).
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string, limit int) ([]domain.Product, error) {
	var products []domain.Product
	result := r.db.WithContext(ctx).
		Where("is_active = ? AND category ILIKE ?", true, "%"+category+"%").
		Limit(limit).
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

func (r *ProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	result := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("is_active = ? AND category <> ''", true).
		Distinct().
		Pluck("category", &categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	return result.Error
}
