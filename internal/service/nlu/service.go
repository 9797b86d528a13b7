package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

const (
	// SourceModel marks a resolution produced by the generative model.
	SourceModel = "model"
	// SourceFallback marks a resolution produced by keyword scoring.
	SourceFallback = "fallback"
)

var intentDescriptions = map[domain.IntentTag]string{
	domain.IntentOrderStatus:         "customer asks where their order is or its current status",
	domain.IntentReturnRequest:       "customer wants to return or refund a purchase",
	domain.IntentProductInquiry:      "general question about a product",
	domain.IntentPriceInquiry:        "customer asks the price or cost of a product",
	domain.IntentAvailabilityInquiry: "customer asks whether a product is in stock",
	domain.IntentProductInfo:         "customer asks for detailed product information or specifications",
	domain.IntentRecommendation:      "customer asks for a product recommendation or suggestion",
	domain.IntentPurchaseIntent:      "customer wants to buy or order a product",
	domain.IntentCategoryBrowse:      "customer asks what product categories or types exist",
	domain.IntentPaymentIssue:        "customer reports a payment problem, failed or double charge",
	domain.IntentDeliveryTracking:    "customer asks about delivery, courier or shipment progress",
	domain.IntentComplaint:           "customer complains about a product, service or experience",
	domain.IntentGreeting:            "customer greets or opens the conversation",
	domain.IntentFallback:            "none of the other intents apply",
}

// Service resolves free text into the closed intent taxonomy. The primary
// strategy is a generative-model completion behind a circuit breaker and
// timeout; every failure of that path degrades to the deterministic keyword
// fallback, so Resolve never errors.
type Service struct {
	model    ports.ModelClient
	detector ports.LanguageDetector
	table    KeywordTable
	breaker  *gobreaker.CircuitBreaker
	timeout  time.Duration
	log      *zap.Logger
}

func NewService(model ports.ModelClient, detector ports.LanguageDetector, table KeywordTable, timeout time.Duration, log *zap.Logger) *Service {
	if table == nil {
		table = DefaultKeywordTable()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nlu-model",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("NLU model breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Service{
		model:    model,
		detector: detector,
		table:    table,
		breaker:  breaker,
		timeout:  timeout,
		log:      log,
	}
}

// Resolve classifies the utterance and extracts entities. Language comes from
// the hint when the channel declared one, otherwise from the script detector.
func (s *Service) Resolve(ctx context.Context, text string, hints map[string]string) domain.ResolvedIntent {
	lang := s.language(text, hints)

	resolved, err := s.resolvePrimary(ctx, text, lang)
	if err != nil {
		s.log.Debug("Primary NLU strategy failed, using keyword fallback",
			zap.Error(err))
		return s.resolveFallback(ctx, text, lang)
	}
	return resolved
}

func (s *Service) language(text string, hints map[string]string) domain.Language {
	if hints != nil {
		if declared := domain.Language(hints["language"]); domain.ValidLanguage(declared) {
			return declared
		}
	}
	return s.detector.Detect(text)
}

type modelClassification struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
	Reasoning  string  `json:"reasoning"`
}

func (s *Service) resolvePrimary(ctx context.Context, text string, lang domain.Language) (domain.ResolvedIntent, error) {
	if s.model == nil {
		return domain.ResolvedIntent{}, fmt.Errorf("no model client configured")
	}

	raw, err := s.complete(ctx, classifySystemPrompt(), classifyUserPrompt(text))
	if err != nil {
		return domain.ResolvedIntent{}, err
	}

	var parsed modelClassification
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return domain.ResolvedIntent{}, fmt.Errorf("malformed model response: %w", err)
	}

	intent := domain.IntentTag(parsed.Intent)
	if !domain.ValidIntent(intent) {
		return domain.ResolvedIntent{}, fmt.Errorf("model returned unknown intent %q", parsed.Intent)
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	if declared := domain.Language(parsed.Language); domain.ValidLanguage(declared) {
		lang = declared
	}

	return domain.ResolvedIntent{
		Intent:     intent,
		Confidence: confidence,
		Language:   lang,
		Entities:   s.extractEntities(ctx, text),
		Source:     SourceModel,
	}, nil
}

func (s *Service) resolveFallback(ctx context.Context, text string, lang domain.Language) domain.ResolvedIntent {
	intent, confidence := classifyByKeywords(s.table, text)
	return domain.ResolvedIntent{
		Intent:     intent,
		Confidence: confidence,
		Language:   lang,
		Entities:   extractEntitiesByPattern(text),
		Source:     SourceFallback,
	}
}

// extractEntities asks the model for a JSON entity map, falling back to the
// fixed regex patterns. It never fails the overall resolution.
func (s *Service) extractEntities(ctx context.Context, text string) map[string]string {
	raw, err := s.complete(ctx, entitySystemPrompt(), text)
	if err != nil {
		return extractEntitiesByPattern(text)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return extractEntitiesByPattern(text)
	}

	entities := make(map[string]string, len(parsed))
	for k, v := range parsed {
		if v == nil {
			continue
		}
		if str := fmt.Sprint(v); str != "" {
			entities[k] = str
		}
	}
	return entities
}

// complete issues one time-bounded model call through the circuit breaker.
func (s *Service) complete(ctx context.Context, system, user string) (string, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.model.Complete(cctx, system, user)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func classifySystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an intent classifier for a customer support assistant. ")
	b.WriteString("Classify the user message into exactly one of these intents:\n\n")
	for _, tag := range domain.AllIntents {
		fmt.Fprintf(&b, "- %s: %s\n", tag, intentDescriptions[tag])
	}
	b.WriteString("\nRespond with a single JSON object and nothing else: ")
	b.WriteString(`{"intent": "...", "confidence": 0.0, "language": "bn|en|ar|ur|hi", "reasoning": "..."}`)
	return b.String()
}

func classifyUserPrompt(text string) string {
	return "Message: " + text
}

func entitySystemPrompt() string {
	return "Extract entities from the customer message. Respond with a single JSON object " +
		"and nothing else, using only these keys when present: order_id, product, phone, " +
		"amount, email, date, address, quantity, payment_method. Omit keys with no value."
}

// stripCodeFence unwraps ```json fenced responses and trims to the outermost
// JSON object.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	return s
}
