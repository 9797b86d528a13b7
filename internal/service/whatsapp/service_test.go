package whatsapp

import (
	"context"
	"strings"
	"testing"
	"text/template"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
)

// providerMock records outbound messages.
type providerMock struct {
	SentTo   []string
	SentBody []string
	SendErr  error
}

func (m *providerMock) SendMessage(ctx context.Context, to, body string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.SentTo = append(m.SentTo, to)
	m.SentBody = append(m.SentBody, body)
	return nil
}

func (m *providerMock) SendTemplate(ctx context.Context, to, templateName string, params map[string]string) error {
	return m.SendMessage(ctx, to, templateName)
}

func newTestService(provider Provider) *Service {
	s := &Service{
		provider:  provider,
		templates: make(map[string]*template.Template),
		log:       zap.NewNop(),
		fromPhone: "+8801700000000",
	}
	s.loadTemplates()
	return s
}

func TestService_SendReplyDeliversDecisionText(t *testing.T) {
	// Arrange
	provider := &providerMock{}
	s := newTestService(provider)
	decision := domain.Decision{
		Action:   domain.ActionRespond,
		Text:     "Apnar order ti pothe ache.",
		Language: domain.LanguageBengali,
	}

	// Act
	err := s.SendReply(context.Background(), "+8801712345678", decision)

	// Assert
	if err != nil {
		t.Fatalf("SendReply failed: %v", err)
	}
	if len(provider.SentBody) != 1 || provider.SentBody[0] != decision.Text {
		t.Errorf("Expected decision text to be sent, got %v", provider.SentBody)
	}
}

func TestService_SendReplySkipsEmpty(t *testing.T) {
	// Arrange
	provider := &providerMock{}
	s := newTestService(provider)

	// Act
	if err := s.SendReply(context.Background(), "", domain.Decision{Text: "hi"}); err != nil {
		t.Fatalf("Expected nil error for empty recipient: %v", err)
	}
	if err := s.SendReply(context.Background(), "+88017", domain.Decision{}); err != nil {
		t.Fatalf("Expected nil error for empty text: %v", err)
	}

	// Assert
	if len(provider.SentBody) != 0 {
		t.Errorf("Expected nothing sent, got %v", provider.SentBody)
	}
}

func TestService_SendHandoffNoticeRendersTemplate(t *testing.T) {
	// Arrange
	provider := &providerMock{}
	s := newTestService(provider)

	// Act
	err := s.SendHandoffNotice(context.Background(), "+8801712345678", "Rahim")

	// Assert
	if err != nil {
		t.Fatalf("SendHandoffNotice failed: %v", err)
	}
	if len(provider.SentBody) != 1 {
		t.Fatalf("Expected one message, got %d", len(provider.SentBody))
	}
	if !strings.Contains(provider.SentBody[0], "Rahim") {
		t.Errorf("Expected customer name in notice, got %q", provider.SentBody[0])
	}
	if !strings.Contains(provider.SentBody[0], "human agent") {
		t.Errorf("Expected handoff wording, got %q", provider.SentBody[0])
	}
}

func TestService_UnknownTemplateErrors(t *testing.T) {
	// Arrange
	s := newTestService(&providerMock{})

	// Act
	err := s.SendTemplate(context.Background(), "+88017", "no_such_template", nil)

	// Assert
	if err == nil {
		t.Fatal("Expected error for unknown template")
	}
}

func TestNewService_UnknownProviderRejected(t *testing.T) {
	// Arrange / Act
	_, err := NewService(Config{Provider: "carrier-pigeon"}, zap.NewNop())

	// Assert
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}
