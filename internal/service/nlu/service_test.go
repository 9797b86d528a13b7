package nlu

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/service/language"
)

type modelClientMock struct {
	CompleteFunc func(ctx context.Context, system, user string) (string, error)
}

func (m *modelClientMock) Complete(ctx context.Context, system, user string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, system, user)
	}
	return "", errors.New("not configured")
}

func newTestService(model *modelClientMock) *Service {
	return NewService(model, language.NewDetector(), nil, time.Second, zap.NewNop())
}

func TestResolve_ModelFailureProducesWellFormedResult(t *testing.T) {
	// Arrange
	model := &modelClientMock{
		CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
			return "", errors.New("connection reset")
		},
	}
	svc := newTestService(model)

	// Act
	resolved := svc.Resolve(context.Background(), "where is my order #123", nil)

	// Assert
	if !domain.ValidIntent(resolved.Intent) {
		t.Errorf("Expected intent from the taxonomy, got %q", resolved.Intent)
	}
	if resolved.Confidence < 0 || resolved.Confidence > 1 {
		t.Errorf("Expected confidence in [0,1], got %f", resolved.Confidence)
	}
	if resolved.Source != SourceFallback {
		t.Errorf("Expected fallback source, got %q", resolved.Source)
	}
	if resolved.Entities["order_id"] != "123" {
		t.Errorf("Expected regex order id extraction, got %v", resolved.Entities)
	}
}

func TestResolve_BengaliComplaintViaFallback(t *testing.T) {
	// Arrange
	model := &modelClientMock{
		CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
			return "", context.DeadlineExceeded
		},
	}
	svc := newTestService(model)

	// Act
	resolved := svc.Resolve(context.Background(), "আমার প্রোডাক্ট ভাঙা, বড় সমস্যা হয়েছে", nil)

	// Assert
	if resolved.Intent != domain.IntentComplaint {
		t.Errorf("Expected complaint intent, got %q", resolved.Intent)
	}
	if resolved.Confidence >= 0.9 {
		t.Errorf("Expected fallback confidence below 0.9, got %f", resolved.Confidence)
	}
	if resolved.Language != domain.LanguageBengali {
		t.Errorf("Expected Bengali detection, got %q", resolved.Language)
	}
}

func TestResolve_ModelClassification(t *testing.T) {
	// Arrange
	model := &modelClientMock{
		CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
			if strings.Contains(system, "intent classifier") {
				return "```json\n{\"intent\": \"payment_issue\", \"confidence\": 0.93, \"language\": \"bn\", \"reasoning\": \"payment complaint\"}\n```", nil
			}
			return `{"payment_method": "bkash", "amount": 500}`, nil
		},
	}
	svc := newTestService(model)

	// Act
	resolved := svc.Resolve(context.Background(), "bkash e taka kete geche kintu order hoy nai", nil)

	// Assert
	if resolved.Intent != domain.IntentPaymentIssue {
		t.Errorf("Expected payment_issue, got %q", resolved.Intent)
	}
	if resolved.Source != SourceModel {
		t.Errorf("Expected model source, got %q", resolved.Source)
	}
	if resolved.Language != domain.LanguageBengali {
		t.Errorf("Expected model-declared language, got %q", resolved.Language)
	}
	if resolved.Entities["payment_method"] != "bkash" || resolved.Entities["amount"] != "500" {
		t.Errorf("Expected model entities, got %v", resolved.Entities)
	}
}

func TestResolve_UnknownModelIntentFallsBack(t *testing.T) {
	// Arrange
	model := &modelClientMock{
		CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
			return `{"intent": "telepathy", "confidence": 0.99, "language": "en"}`, nil
		},
	}
	svc := newTestService(model)

	// Act
	resolved := svc.Resolve(context.Background(), "I want to return this for a refund", nil)

	// Assert
	if resolved.Source != SourceFallback {
		t.Errorf("Expected fallback after taxonomy violation, got %q", resolved.Source)
	}
	if resolved.Intent != domain.IntentReturnRequest {
		t.Errorf("Expected keyword classification, got %q", resolved.Intent)
	}
}

func TestResolve_MalformedJSONFallsBack(t *testing.T) {
	// Arrange
	model := &modelClientMock{
		CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
			return "Sure! The intent is probably order_status.", nil
		},
	}
	svc := newTestService(model)

	// Act
	resolved := svc.Resolve(context.Background(), "order kothay", nil)

	// Assert
	if resolved.Source != SourceFallback {
		t.Errorf("Expected fallback after malformed response, got %q", resolved.Source)
	}
}

func TestResolve_LanguageHintWins(t *testing.T) {
	// Arrange
	model := &modelClientMock{}
	svc := newTestService(model)

	// Act
	resolved := svc.Resolve(context.Background(), "hello there", map[string]string{"language": "ar"})

	// Assert
	if resolved.Language != domain.LanguageArabic {
		t.Errorf("Expected declared language to win, got %q", resolved.Language)
	}
}

func TestClassifyByKeywords_ConfidenceCap(t *testing.T) {
	// Arrange
	table := DefaultKeywordTable()

	// Act: six price fragments in one utterance
	intent, confidence := classifyByKeywords(table, "price dam koto cost rate দাম")

	// Assert
	if intent != domain.IntentPriceInquiry {
		t.Errorf("Expected price_inquiry, got %q", intent)
	}
	if confidence != 0.9 {
		t.Errorf("Expected capped confidence 0.9, got %f", confidence)
	}
}

func TestClassifyByKeywords_NoMatch(t *testing.T) {
	// Arrange / Act
	intent, confidence := classifyByKeywords(DefaultKeywordTable(), "xyzzy plugh")

	// Assert
	if intent != domain.IntentFallback {
		t.Errorf("Expected fallback intent, got %q", intent)
	}
	if confidence != 0.3 {
		t.Errorf("Expected no-match confidence 0.3, got %f", confidence)
	}
}

func TestExtractEntitiesByPattern(t *testing.T) {
	// Arrange / Act
	entities := extractEntitiesByPattern("order #ORD-4521, pay tk 500 via bkash, call 01712345678")

	// Assert
	if entities["order_id"] != "ORD-4521" {
		t.Errorf("Expected order id, got %v", entities)
	}
	if entities["amount"] != "500" {
		t.Errorf("Expected amount, got %v", entities)
	}
	if entities["payment_method"] != "bkash" {
		t.Errorf("Expected payment method, got %v", entities)
	}
	if entities["phone"] != "01712345678" {
		t.Errorf("Expected phone, got %v", entities)
	}
}

func TestStripCodeFence(t *testing.T) {
	// Arrange / Act / Assert
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"{\"a\":1}":               `{"a":1}`,
		"noise before {\"a\":1} noise after": `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripCodeFence(in); got != want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}
