package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/mocks"
	"github.com/bangla-ai/platform/internal/ports"
	"github.com/bangla-ai/platform/internal/service/dialogue"
	"github.com/bangla-ai/platform/internal/service/localization"
)

type catalogStub struct{}

func (catalogStub) AnswerCommerceQuery(ctx context.Context, query string, entities map[string]string, lang domain.Language) (*ports.CatalogAnswer, error) {
	return &ports.CatalogAnswer{Text: "ok", Action: domain.ActionRespond}, nil
}

type fixture struct {
	svc      *Service
	nlu      *mocks.MockNLUService
	cache    *mocks.MockCache
	convs    *mocks.MockConversationRepository
	mq       *mocks.MockMessageQueue
	notifier *mocks.MockNotifier
	resolver *mocks.MockResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zap.NewNop()
	loc := localization.NewEngine(nil, log)
	dlg, err := dialogue.NewService(catalogStub{}, loc, log)
	if err != nil {
		t.Fatalf("dialogue.NewService failed: %v", err)
	}

	f := &fixture{
		nlu:      &mocks.MockNLUService{},
		cache:    mocks.NewMockCache(),
		convs:    mocks.NewMockConversationRepository(),
		mq:       mocks.NewMockMessageQueue(),
		notifier: &mocks.MockNotifier{},
		resolver: &mocks.MockResolver{Results: map[string]map[string]interface{}{
			"order_status": {"status": "In Transit", "eta": "2026-09-01"},
		}},
	}
	f.svc = NewService(f.nlu, dlg, f.resolver, loc, f.cache, f.convs, f.mq, f.notifier, log)
	return f
}

func request(text string) ports.ChatRequest {
	return ports.ChatRequest{
		TenantID:       "t1",
		ConversationID: "conv-1",
		CustomerID:     "cust-1",
		Channel:        "webchat",
		Text:           text,
	}
}

func TestHandleMessage_FetchAttachesResolverResult(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.nlu.Result = domain.ResolvedIntent{
		Intent:     domain.IntentOrderStatus,
		Confidence: 0.85,
		Language:   domain.LanguageEnglish,
		Entities:   map[string]string{"order_id": "123"},
	}

	// Act
	decision, err := f.svc.HandleMessage(context.Background(), request("where is order 123"))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if decision.Action != domain.ActionFetch {
		t.Errorf("Expected fetch, got %s", decision.Action)
	}
	result, ok := decision.Metadata["result"].(map[string]interface{})
	if !ok || result["status"] != "In Transit" {
		t.Errorf("Expected resolver result attached, got %v", decision.Metadata)
	}
}

func TestHandleMessage_PublishesDecisionEvent(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.nlu.Result = domain.ResolvedIntent{
		Intent:     domain.IntentGreeting,
		Confidence: 0.95,
		Language:   domain.LanguageBengali,
	}

	// Act
	_, err := f.svc.HandleMessage(context.Background(), request("assalamu alaikum"))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	published := f.mq.GetPublishedMessages("dialogue.decisions")
	if len(published) != 1 {
		t.Fatalf("Expected one published event, got %d", len(published))
	}
	var event map[string]interface{}
	if err := json.Unmarshal(published[0], &event); err != nil {
		t.Fatalf("Expected valid JSON event: %v", err)
	}
	if event["intent"] != "greeting" || event["conversation_id"] != "conv-1" {
		t.Errorf("Unexpected event payload: %v", event)
	}
}

func TestHandleMessage_HandoffNotifiesAndEscalates(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.nlu.Result = domain.ResolvedIntent{
		Intent:     domain.IntentPaymentIssue,
		Confidence: 0.9,
		Language:   domain.LanguageBengali,
	}

	// Act
	decision, err := f.svc.HandleMessage(context.Background(), request("bkash e taka kete geche"))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if decision.Action != domain.ActionHandoff {
		t.Errorf("Expected handoff, got %s", decision.Action)
	}
	if len(f.notifier.Notifications) != 1 {
		t.Errorf("Expected one handoff notification, got %d", len(f.notifier.Notifications))
	}
	conv := f.convs.Conversations["conv-1"]
	if conv == nil || conv.Status != domain.ConversationStatusEscalated {
		t.Errorf("Expected escalated conversation, got %+v", conv)
	}
}

func TestHandleMessage_StateCarriesAcrossTurns(t *testing.T) {
	// Arrange: turn one lacks the order id, turn two supplies it
	f := newFixture(t)
	f.nlu.ResolveFunc = func(ctx context.Context, text string, hints map[string]string) domain.ResolvedIntent {
		entities := map[string]string{}
		if text == "order 555" {
			entities["order_id"] = "555"
		}
		return domain.ResolvedIntent{
			Intent:     domain.IntentOrderStatus,
			Confidence: 0.8,
			Language:   domain.LanguageEnglish,
			Entities:   entities,
		}
	}

	// Act
	first, err1 := f.svc.HandleMessage(context.Background(), request("where is my order"))
	second, err2 := f.svc.HandleMessage(context.Background(), request("order 555"))

	// Assert
	if err1 != nil || err2 != nil {
		t.Fatalf("Expected no errors, got %v / %v", err1, err2)
	}
	if first.Action != domain.ActionSlotFill {
		t.Errorf("Expected slot_fill on first turn, got %s", first.Action)
	}
	if second.Action != domain.ActionFetch {
		t.Errorf("Expected fetch on second turn, got %s", second.Action)
	}
	turns := f.convs.Turns["conv-1"]
	if len(turns) != 2 {
		t.Errorf("Expected two persisted turns, got %d", len(turns))
	}
}

func TestHandleMessage_ResolverFailureEscalates(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.resolver.ResolveFunc = func(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
		return nil, errors.New("integration down")
	}
	f.nlu.Result = domain.ResolvedIntent{
		Intent:     domain.IntentOrderStatus,
		Confidence: 0.85,
		Language:   domain.LanguageEnglish,
		Entities:   map[string]string{"order_id": "123"},
	}

	// Act
	decision, err := f.svc.HandleMessage(context.Background(), request("where is order 123"))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if decision.Action != domain.ActionHandoff {
		t.Errorf("Expected handoff on resolver failure, got %s", decision.Action)
	}
	if decision.Metadata["reason"] != "internal_error" {
		t.Errorf("Expected internal_error reason, got %v", decision.Metadata)
	}
}

func TestHandleMessage_RequiresIdentifiers(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.svc.HandleMessage(context.Background(), ports.ChatRequest{Text: "hello"})

	// Assert
	if err == nil {
		t.Error("Expected error for missing tenant and conversation ids")
	}
}
