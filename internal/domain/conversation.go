package domain

import (
	"time"
)

type ConversationStatus string

const (
	ConversationStatusOpen      ConversationStatus = "open"
	ConversationStatusEscalated ConversationStatus = "escalated"
	ConversationStatusClosed    ConversationStatus = "closed"
)

// Conversation is the persisted record of one customer thread on one channel.
type Conversation struct {
	ID         string             `json:"id" gorm:"primaryKey"`
	TenantID   string             `json:"tenant_id" gorm:"index"`
	CustomerID string             `json:"customer_id" gorm:"index"`
	Channel    string             `json:"channel"`
	Language   Language           `json:"language"`
	Status     ConversationStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// Turn is one user message plus the decision the engine produced for it.
type Turn struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"index"`
	UserText       string    `json:"user_text"`
	Intent         IntentTag `json:"intent"`
	Confidence     float64   `json:"confidence"`
	Action         ActionTag `json:"action"`
	ResponseText   string    `json:"response_text"`
	Language       Language  `json:"language"`
	CreatedAt      time.Time `json:"created_at"`
}
