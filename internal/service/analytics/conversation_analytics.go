package analytics

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/adapter/queue"
	"github.com/bangla-ai/platform/internal/domain"
)

// DecisionEvent mirrors the event the orchestrator publishes per decision.
type DecisionEvent struct {
	TenantID       string           `json:"tenant_id"`
	ConversationID string           `json:"conversation_id"`
	Channel        string           `json:"channel"`
	Intent         domain.IntentTag `json:"intent"`
	Confidence     float64          `json:"confidence"`
	Action         domain.ActionTag `json:"action"`
	Language       domain.Language  `json:"language"`
	Timestamp      time.Time        `json:"timestamp"`
}

// TenantSummary is a point-in-time aggregate of one tenant's traffic.
type TenantSummary struct {
	TenantID      string                     `json:"tenant_id"`
	Messages      int64                      `json:"messages"`
	Handoffs      int64                      `json:"handoffs"`
	HandoffRate   float64                    `json:"handoff_rate"`
	AvgConfidence float64                    `json:"avg_confidence"`
	Intents       map[domain.IntentTag]int64 `json:"intents"`
	Actions       map[domain.ActionTag]int64 `json:"actions"`
	Languages     map[domain.Language]int64  `json:"languages"`
	Channels      map[string]int64           `json:"channels"`
	LastSeen      time.Time                  `json:"last_seen"`
}

type tenantCounters struct {
	messages      int64
	handoffs      int64
	confidenceSum float64
	intents       map[domain.IntentTag]int64
	actions       map[domain.ActionTag]int64
	languages     map[domain.Language]int64
	channels      map[string]int64
	lastSeen      time.Time
}

// Aggregator consumes decision events and keeps rolling per-tenant counters.
// Counters reset on restart; durable history lives in the turns table.
type Aggregator struct {
	mu      sync.RWMutex
	tenants map[string]*tenantCounters
	log     *zap.Logger
}

func NewAggregator(log *zap.Logger) *Aggregator {
	return &Aggregator{
		tenants: make(map[string]*tenantCounters),
		log:     log,
	}
}

// Start subscribes the aggregator to the decision feed.
func (a *Aggregator) Start(mq queue.MessageQueue, subject string) error {
	return mq.Subscribe(subject, a.Handle)
}

// Handle folds one raw decision event into the counters.
func (a *Aggregator) Handle(data []byte) error {
	var event DecisionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		a.log.Warn("Malformed decision event", zap.Error(err))
		return nil
	}
	if event.TenantID == "" {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	counters, ok := a.tenants[event.TenantID]
	if !ok {
		counters = &tenantCounters{
			intents:   make(map[domain.IntentTag]int64),
			actions:   make(map[domain.ActionTag]int64),
			languages: make(map[domain.Language]int64),
			channels:  make(map[string]int64),
		}
		a.tenants[event.TenantID] = counters
	}

	counters.messages++
	counters.confidenceSum += event.Confidence
	counters.intents[event.Intent]++
	counters.actions[event.Action]++
	counters.languages[event.Language]++
	counters.channels[event.Channel]++
	if event.Action == domain.ActionHandoff {
		counters.handoffs++
	}
	if event.Timestamp.After(counters.lastSeen) {
		counters.lastSeen = event.Timestamp
	}

	return nil
}

// Summary returns the current aggregate for one tenant. Unknown tenants get a
// zero-valued summary.
func (a *Aggregator) Summary(tenantID string) TenantSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	summary := TenantSummary{
		TenantID:  tenantID,
		Intents:   make(map[domain.IntentTag]int64),
		Actions:   make(map[domain.ActionTag]int64),
		Languages: make(map[domain.Language]int64),
		Channels:  make(map[string]int64),
	}

	counters, ok := a.tenants[tenantID]
	if !ok {
		return summary
	}

	summary.Messages = counters.messages
	summary.Handoffs = counters.handoffs
	summary.LastSeen = counters.lastSeen
	if counters.messages > 0 {
		summary.HandoffRate = float64(counters.handoffs) / float64(counters.messages)
		summary.AvgConfidence = counters.confidenceSum / float64(counters.messages)
	}
	for k, v := range counters.intents {
		summary.Intents[k] = v
	}
	for k, v := range counters.actions {
		summary.Actions[k] = v
	}
	for k, v := range counters.languages {
		summary.Languages[k] = v
	}
	for k, v := range counters.channels {
		summary.Channels[k] = v
	}

	return summary
}
