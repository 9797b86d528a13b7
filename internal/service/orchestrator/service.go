package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/adapter/queue"
	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/observability/telemetry"
	"github.com/bangla-ai/platform/internal/ports"
)

const (
	stateTTL = 30 * time.Minute

	// DecisionsSubject carries one event per decision for dashboards and
	// audit consumers.
	DecisionsSubject = "dialogue.decisions"
)

// Service runs the full pipeline for one inbound message: NLU resolution,
// state load, dialogue decision, fetch resolution, persistence and event
// publication. Turns for the same conversation are serialized; different
// conversations run concurrently.
type Service struct {
	nlu      ports.NLUService
	dialogue ports.DialogueService
	resolver ports.Resolver
	loc      ports.Localizer
	cache    ports.Cache
	convs    ports.ConversationRepository
	mq       queue.MessageQueue
	notifier ports.Notifier
	log      *zap.Logger

	locks sync.Map // conversation id -> *sync.Mutex
}

func NewService(
	nlu ports.NLUService,
	dialogue ports.DialogueService,
	resolver ports.Resolver,
	loc ports.Localizer,
	cache ports.Cache,
	convs ports.ConversationRepository,
	mq queue.MessageQueue,
	notifier ports.Notifier,
	log *zap.Logger,
) *Service {
	return &Service{
		nlu:      nlu,
		dialogue: dialogue,
		resolver: resolver,
		loc:      loc,
		cache:    cache,
		convs:    convs,
		mq:       mq,
		notifier: notifier,
		log:      log,
	}
}

// HandleMessage processes one inbound message end to end and returns the
// final decision. It only errors on caller contract violations; pipeline
// failures degrade into handoff decisions.
func (s *Service) HandleMessage(ctx context.Context, req ports.ChatRequest) (*domain.Decision, error) {
	if req.TenantID == "" || req.ConversationID == "" {
		return nil, fmt.Errorf("orchestrator: tenant and conversation ids are required")
	}

	start := time.Now()
	defer func() {
		telemetry.PipelineLatency.Observe(time.Since(start).Seconds())
	}()

	// Slot merges are not commutative, so turns for one conversation must
	// not interleave.
	mu := s.lockFor(req.ConversationID)
	mu.Lock()
	defer mu.Unlock()

	state := s.loadState(ctx, req)

	hints := map[string]string{}
	if req.Language != "" {
		hints["language"] = string(req.Language)
	}
	resolved := s.nlu.Resolve(ctx, req.Text, hints)

	telemetry.MessagesTotal.WithLabelValues(req.Channel, string(resolved.Language)).Inc()
	telemetry.IntentResolutionsTotal.WithLabelValues(
		string(resolved.Intent), resolved.Source, telemetry.ConfidenceBucket(resolved.Confidence)).Inc()

	dctx := domain.DialogueContext{
		TenantID:       req.TenantID,
		Channel:        req.Channel,
		CustomerID:     req.CustomerID,
		ConversationID: req.ConversationID,
		Message:        req.Text,
		Language:       req.Language,
	}

	decision := s.dialogue.Decide(ctx, resolved, dctx, state)

	if decision.Action == domain.ActionFetch {
		decision = s.runFetch(ctx, decision, dctx)
	}

	telemetry.DecisionsTotal.WithLabelValues(string(decision.Action)).Inc()
	if decision.Action == domain.ActionHandoff {
		reason, _ := decision.Metadata["reason"].(string)
		priority, _ := decision.Metadata["priority"].(string)
		telemetry.HandoffsTotal.WithLabelValues(reason, priority).Inc()
		s.notifyHandoff(ctx, dctx, decision)
	}

	s.saveState(ctx, req, state)
	s.persistTurn(ctx, req, resolved, decision)
	s.publishDecision(req, resolved, decision)

	return &decision, nil
}

func (s *Service) lockFor(conversationID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(conversationID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func stateKey(req ports.ChatRequest) string {
	return fmt.Sprintf("dialogue:state:%s:%s", req.TenantID, req.ConversationID)
}

func (s *Service) loadState(ctx context.Context, req ports.ChatRequest) *domain.DialogueState {
	state := domain.NewDialogueState()
	if s.cache == nil {
		return state
	}

	raw, err := s.cache.Get(ctx, stateKey(req))
	if err != nil || raw == "" {
		return state
	}
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		s.log.Warn("Discarding corrupt dialogue state",
			zap.String("conversation_id", req.ConversationID), zap.Error(err))
		return domain.NewDialogueState()
	}
	return state
}

func (s *Service) saveState(ctx context.Context, req ports.ChatRequest, state *domain.DialogueState) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, stateKey(req), string(raw), stateTTL); err != nil {
		s.log.Warn("Failed to save dialogue state",
			zap.String("conversation_id", req.ConversationID), zap.Error(err))
	}
}

// runFetch invokes the external resolver named by the decision and attaches
// its result. Resolver failures escalate instead of surfacing an error.
func (s *Service) runFetch(ctx context.Context, decision domain.Decision, dctx domain.DialogueContext) domain.Decision {
	name, _ := decision.Metadata["resolver"].(string)
	if s.resolver == nil || name == "" {
		return decision
	}

	result, err := s.resolver.Resolve(ctx, name, decision.Metadata)
	if err != nil {
		s.log.Error("Fetch resolver failed, escalating",
			zap.String("resolver", name),
			zap.String("conversation_id", dctx.ConversationID),
			zap.Error(err))
		return domain.Decision{
			Action:      domain.ActionHandoff,
			ResponseKey: "internal_error_handoff",
			Text:        s.loc.Localize(ctx, "internal_error_handoff", decision.Language, nil),
			Language:    decision.Language,
			Metadata: map[string]interface{}{
				"reason":   "internal_error",
				"priority": string(domain.HandoffPriorityNormal),
			},
		}
	}

	decision.Metadata["result"] = result
	return decision
}

func (s *Service) notifyHandoff(ctx context.Context, dctx domain.DialogueContext, decision domain.Decision) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyHandoff(ctx, dctx, decision); err != nil {
		s.log.Error("Handoff notification failed",
			zap.String("conversation_id", dctx.ConversationID), zap.Error(err))
	}
}

// persistTurn records the conversation and turn. Persistence is best-effort:
// a storage failure never blocks the reply.
func (s *Service) persistTurn(ctx context.Context, req ports.ChatRequest, resolved domain.ResolvedIntent, decision domain.Decision) {
	if s.convs == nil {
		return
	}

	status := domain.ConversationStatusOpen
	if decision.Action == domain.ActionHandoff {
		status = domain.ConversationStatusEscalated
	}

	conv := &domain.Conversation{
		ID:         req.ConversationID,
		TenantID:   req.TenantID,
		CustomerID: req.CustomerID,
		Channel:    req.Channel,
		Language:   decision.Language,
		Status:     status,
	}
	if err := s.convs.Save(ctx, conv); err != nil {
		s.log.Error("Failed to save conversation", zap.Error(err))
	}

	turn := &domain.Turn{
		ID:             uuid.NewString(),
		ConversationID: req.ConversationID,
		UserText:       req.Text,
		Intent:         resolved.Intent,
		Confidence:     resolved.Confidence,
		Action:         decision.Action,
		ResponseText:   decision.Text,
		Language:       decision.Language,
	}
	if err := s.convs.SaveTurn(ctx, turn); err != nil {
		s.log.Error("Failed to save turn", zap.Error(err))
	}
}

type decisionEvent struct {
	TenantID       string           `json:"tenant_id"`
	ConversationID string           `json:"conversation_id"`
	Channel        string           `json:"channel"`
	Intent         domain.IntentTag `json:"intent"`
	Confidence     float64          `json:"confidence"`
	Action         domain.ActionTag `json:"action"`
	Language       domain.Language  `json:"language"`
	Timestamp      time.Time        `json:"timestamp"`
}

func (s *Service) publishDecision(req ports.ChatRequest, resolved domain.ResolvedIntent, decision domain.Decision) {
	if s.mq == nil {
		return
	}

	event := decisionEvent{
		TenantID:       req.TenantID,
		ConversationID: req.ConversationID,
		Channel:        req.Channel,
		Intent:         resolved.Intent,
		Confidence:     resolved.Confidence,
		Action:         decision.Action,
		Language:       decision.Language,
		Timestamp:      time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.mq.Publish(DecisionsSubject, data); err != nil {
		s.log.Error("Failed to publish decision event", zap.Error(err))
	}
}
