package domain

import (
	"time"

	"github.com/lib/pq"
)

// StockTier classifies product stock relative to the minimum stock level.
type StockTier string

const (
	StockTierOut        StockTier = "out"
	StockTierLow        StockTier = "low"
	StockTierSufficient StockTier = "sufficient"
)

// StockRefinement further qualifies the sufficient tier by absolute quantity.
type StockRefinement string

const (
	StockRefinementUrgent  StockRefinement = "urgent"  // < 5 units
	StockRefinementLimited StockRefinement = "limited" // 5..10 units
	StockRefinementPlenty  StockRefinement = "plenty"  // > 10 units
)

type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	TenantID      string         `json:"tenant_id" gorm:"index"`
	Name          string         `json:"name" gorm:"index"`
	SKU           string         `json:"sku" gorm:"index"`
	Description   string         `json:"description,omitempty"`
	Price         float64        `json:"price"`
	Currency      string         `json:"currency" gorm:"default:BDT"`
	Category      string         `json:"category,omitempty" gorm:"index"`
	Brand         string         `json:"brand,omitempty"`
	StockQuantity int            `json:"stock_quantity"` // never negative
	MinStockLevel int            `json:"min_stock_level"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	IsFeatured    bool           `json:"is_featured" gorm:"default:false"`
	Tags          pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Tier derives the stock tier: out when empty, low when at or below the
// minimum stock level, sufficient otherwise.
func (p *Product) Tier() StockTier {
	switch {
	case p.StockQuantity == 0:
		return StockTierOut
	case p.StockQuantity <= p.MinStockLevel:
		return StockTierLow
	default:
		return StockTierSufficient
	}
}

// Refinement qualifies a sufficient tier by absolute units.
func (p *Product) Refinement() StockRefinement {
	switch {
	case p.StockQuantity < 5:
		return StockRefinementUrgent
	case p.StockQuantity <= 10:
		return StockRefinementLimited
	default:
		return StockRefinementPlenty
	}
}
