package domain

import (
	"time"

	"github.com/lib/pq"
)

// Template is one localized response body, keyed by (key, language).
type Template struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	TenantID  string         `json:"tenant_id" gorm:"index"`
	Key       string         `json:"key" gorm:"index:idx_templates_key_lang,unique"`
	Language  Language       `json:"language" gorm:"index:idx_templates_key_lang,unique"`
	Body      string         `json:"body"`
	Variables pq.StringArray `json:"variables,omitempty" gorm:"type:text[]"` // declared substitution names
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
