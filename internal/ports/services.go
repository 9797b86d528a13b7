package ports

import (
	"context"

	"github.com/bangla-ai/platform/internal/domain"
)

// NLUService resolves free text into a member of the closed intent taxonomy
// plus extracted entities. It never returns an error: every failure of the
// primary model strategy degrades to the deterministic keyword fallback.
type NLUService interface {
	Resolve(ctx context.Context, text string, hints map[string]string) domain.ResolvedIntent
}

// LanguageDetector infers the probable language of an utterance. Pure, total.
type LanguageDetector interface {
	Detect(text string) domain.Language
}

// DialogueService is the state machine turning a resolved intent into a
// decision. Deterministic in (intent, entities, dctx, state); never errors.
type DialogueService interface {
	Decide(ctx context.Context, intent domain.ResolvedIntent, dctx domain.DialogueContext, state *domain.DialogueState) domain.Decision
}

// CatalogAnswer is the composed reply for a commerce query.
type CatalogAnswer struct {
	Text     string
	Action   domain.ActionTag
	Metadata map[string]interface{}
}

// CatalogService answers commerce-flavored queries from the product catalog.
type CatalogService interface {
	AnswerCommerceQuery(ctx context.Context, query string, entities map[string]string, lang domain.Language) (*CatalogAnswer, error)
}

// Localizer resolves a response key and language into final text.
type Localizer interface {
	Localize(ctx context.Context, key string, lang domain.Language, vars map[string]interface{}) string
	ClearCache()
	Preload(ctx context.Context) error
}

// ChatRequest is one inbound message handed to the orchestrator by a channel
// adapter.
type ChatRequest struct {
	TenantID       string
	ConversationID string
	CustomerID     string
	Channel        string
	Text           string
	Language       domain.Language // declared by the channel, may be empty
}

// Orchestrator runs the full pipeline: language detection, NLU, state merge,
// dialogue decision, localization, event publication.
type Orchestrator interface {
	HandleMessage(ctx context.Context, req ChatRequest) (*domain.Decision, error)
}

// ModelClient is the outbound generative-model surface used by the NLU
// primary strategy. Calls must be time-bounded and cancellable.
type ModelClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Notifier delivers escalation alerts to human agents on handoff decisions.
type Notifier interface {
	NotifyHandoff(ctx context.Context, dctx domain.DialogueContext, decision domain.Decision) error
}

// Resolver fetches external data for fetch-action decisions (order status,
// delivery tracking, returns). Implementations live outside the core.
type Resolver interface {
	Resolve(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error)
}
