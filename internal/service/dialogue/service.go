package dialogue

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

// escalationThreshold is the fixed confidence floor below which a resolved
// intent is not trusted and the turn escalates to a human agent.
const escalationThreshold = 0.45

// handler produces a pre-localization decision for one intent. Required
// slots are checked by Decide before the handler runs.
type handler struct {
	requiredSlots []string
	run           func(ctx context.Context, intent domain.ResolvedIntent, dctx domain.DialogueContext, state *domain.DialogueState) domain.Decision
}

// Service is the dialogue state machine: a per-intent handler registry over
// the slot map. Decide is deterministic in its inputs and never errors;
// collaborator failures become handoff decisions.
type Service struct {
	registry map[domain.IntentTag]handler
	catalog  ports.CatalogService
	loc      ports.Localizer
	log      *zap.Logger
}

func NewService(catalog ports.CatalogService, loc ports.Localizer, log *zap.Logger) (*Service, error) {
	s := &Service{
		catalog: catalog,
		loc:     loc,
		log:     log,
	}
	s.registry = s.buildRegistry()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// validate is the startup check: a registry without a fallback entry cannot
// serve traffic.
func (s *Service) validate() error {
	if _, ok := s.registry[domain.IntentFallback]; !ok {
		return fmt.Errorf("dialogue registry has no fallback handler")
	}
	return nil
}

// Decide merges entities into the slot state, dispatches to the intent's
// handler and localizes the chosen response key.
func (s *Service) Decide(ctx context.Context, intent domain.ResolvedIntent, dctx domain.DialogueContext, state *domain.DialogueState) domain.Decision {
	if state == nil {
		state = domain.NewDialogueState()
	}
	state.Merge(intent.Entities)

	lang := dctx.Language
	if !domain.ValidLanguage(lang) {
		lang = intent.Language
	}
	if !domain.ValidLanguage(lang) {
		lang = domain.DefaultLanguage
	}

	tag := intent.Intent
	if !domain.ValidIntent(tag) || intent.Confidence < escalationThreshold {
		tag = domain.IntentFallback
	}

	h, ok := s.registry[tag]
	if !ok {
		h = s.registry[domain.IntentFallback]
	}

	if missing := state.Missing(h.requiredSlots); len(missing) > 0 {
		key := string(tag) + "_missing"
		return domain.Decision{
			Action:      domain.ActionSlotFill,
			ResponseKey: key,
			Text:        s.loc.Localize(ctx, key, lang, nil),
			Language:    lang,
			Metadata:    map[string]interface{}{"missing_slots": missing},
		}
	}

	decision := h.run(ctx, intent, withLanguage(dctx, lang), state)
	decision.Language = lang
	if decision.Text == "" && decision.ResponseKey != "" {
		decision.Text = s.loc.Localize(ctx, decision.ResponseKey, lang, slotVars(state))
	}
	return decision
}

func withLanguage(dctx domain.DialogueContext, lang domain.Language) domain.DialogueContext {
	dctx.Language = lang
	return dctx
}

func slotVars(state *domain.DialogueState) map[string]interface{} {
	vars := make(map[string]interface{}, len(state.Slots))
	for k, v := range state.Slots {
		vars[k] = v
	}
	return vars
}
