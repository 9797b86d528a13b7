package notification

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
)

type providerMock struct {
	SendFunc func(ctx context.Context, to, subject, body string, isHTML bool) error
}

func (m *providerMock) Send(ctx context.Context, to, subject, body string, isHTML bool) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body, isHTML)
	}
	return nil
}

func TestNotifyHandoff_RendersEscalationEmail(t *testing.T) {
	// Arrange
	var gotTo, gotSubject, gotBody string
	var gotHTML bool
	svc, err := NewService(DefaultConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	svc.provider = &providerMock{
		SendFunc: func(ctx context.Context, to, subject, body string, isHTML bool) error {
			gotTo, gotSubject, gotBody, gotHTML = to, subject, body, isHTML
			return nil
		},
	}

	dctx := domain.DialogueContext{
		TenantID:       "t1",
		ConversationID: "conv-9",
		CustomerID:     "cust-2",
		Channel:        "whatsapp",
		Message:        "bkash e taka kete geche",
	}
	decision := domain.Decision{
		Action: domain.ActionHandoff,
		Text:   "Connecting you with our payment team.",
		Metadata: map[string]interface{}{
			"reason":   "payment_issue",
			"priority": "high",
		},
	}

	// Act
	if err := svc.NotifyHandoff(context.Background(), dctx, decision); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Assert
	if gotTo != "agents@bangla-ai.com" {
		t.Errorf("Expected agent address, got %q", gotTo)
	}
	if !strings.Contains(gotSubject, "high") || !strings.Contains(gotSubject, "conv-9") {
		t.Errorf("Expected priority and conversation in subject, got %q", gotSubject)
	}
	if !gotHTML {
		t.Error("Expected HTML body")
	}
	for _, want := range []string{"payment_issue", "whatsapp", "bkash e taka kete geche"} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("Expected %q in body, got %q", want, gotBody)
		}
	}
}

func TestNewService_UnknownProvider(t *testing.T) {
	// Arrange
	cfg := DefaultConfig()
	cfg.Provider = "carrier-pigeon"

	// Act
	_, err := NewService(cfg, zap.NewNop())

	// Assert
	if err == nil {
		t.Error("Expected error for unknown provider")
	}
}
