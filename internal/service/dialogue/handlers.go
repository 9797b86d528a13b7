package dialogue

import (
	"context"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
)

func (s *Service) buildRegistry() map[domain.IntentTag]handler {
	registry := map[domain.IntentTag]handler{
		domain.IntentOrderStatus: {
			requiredSlots: []string{"order_id"},
			run:           s.fetchHandler("order_status"),
		},
		domain.IntentReturnRequest: {
			requiredSlots: []string{"order_id"},
			run:           s.fetchHandler("return_request"),
		},
		domain.IntentDeliveryTracking: {
			requiredSlots: []string{"order_id"},
			run:           s.fetchHandler("delivery_tracking"),
		},
		domain.IntentPaymentIssue: {
			run: s.handoffHandler("payment_issue_handoff", "payment_issue", domain.HandoffPriorityHigh),
		},
		domain.IntentComplaint: {
			run: s.handoffHandler("complaint_handoff", "complaint", domain.HandoffPriorityHigh),
		},
		domain.IntentGreeting: {
			run: func(ctx context.Context, intent domain.ResolvedIntent, dctx domain.DialogueContext, state *domain.DialogueState) domain.Decision {
				return domain.Decision{
					Action:      domain.ActionRespond,
					ResponseKey: "greeting",
				}
			},
		},
		domain.IntentFallback: {
			run: s.handoffHandler("fallback_handoff", "low_confidence", domain.HandoffPriorityNormal),
		},
	}

	for _, tag := range domain.AllIntents {
		if tag.IsCommerce() {
			registry[tag] = handler{run: s.commerceHandler()}
		}
	}
	return registry
}

// fetchHandler answers intents whose data lives outside the core: the
// decision names the external resolver and carries the filled slots.
func (s *Service) fetchHandler(resolver string) func(context.Context, domain.ResolvedIntent, domain.DialogueContext, *domain.DialogueState) domain.Decision {
	return func(ctx context.Context, intent domain.ResolvedIntent, dctx domain.DialogueContext, state *domain.DialogueState) domain.Decision {
		metadata := map[string]interface{}{"resolver": resolver}
		for k, v := range state.Slots {
			metadata[k] = v
		}
		return domain.Decision{
			Action:      domain.ActionFetch,
			ResponseKey: resolver + "_fetch",
			Metadata:    metadata,
		}
	}
}

func (s *Service) handoffHandler(key, reason string, priority domain.HandoffPriority) func(context.Context, domain.ResolvedIntent, domain.DialogueContext, *domain.DialogueState) domain.Decision {
	return func(ctx context.Context, intent domain.ResolvedIntent, dctx domain.DialogueContext, state *domain.DialogueState) domain.Decision {
		return domain.Decision{
			Action:      domain.ActionHandoff,
			ResponseKey: key,
			Metadata: map[string]interface{}{
				"reason":   reason,
				"priority": string(priority),
			},
		}
	}
}

// commerceHandler routes catalog-answerable intents through the catalog
// resolver. A resolver failure is caught here and becomes a handoff.
func (s *Service) commerceHandler() func(context.Context, domain.ResolvedIntent, domain.DialogueContext, *domain.DialogueState) domain.Decision {
	return func(ctx context.Context, intent domain.ResolvedIntent, dctx domain.DialogueContext, state *domain.DialogueState) domain.Decision {
		answer, err := s.catalog.AnswerCommerceQuery(ctx, dctx.Message, state.Slots, dctx.Language)
		if err != nil {
			s.log.Error("Catalog query failed, escalating",
				zap.String("conversation_id", dctx.ConversationID),
				zap.Error(err))
			return domain.Decision{
				Action:      domain.ActionHandoff,
				ResponseKey: "internal_error_handoff",
				Metadata: map[string]interface{}{
					"reason":   "internal_error",
					"priority": string(domain.HandoffPriorityNormal),
				},
			}
		}
		return domain.Decision{
			Action:   answer.Action,
			Text:     answer.Text,
			Metadata: answer.Metadata,
		}
	}
}
