package mocks

import (
	"context"
	"errors"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

// MockNLUService returns a canned resolution unless overridden.
type MockNLUService struct {
	Result      domain.ResolvedIntent
	ResolveFunc func(ctx context.Context, text string, hints map[string]string) domain.ResolvedIntent
}

func (m *MockNLUService) Resolve(ctx context.Context, text string, hints map[string]string) domain.ResolvedIntent {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, text, hints)
	}
	return m.Result
}

// MockDialogueService returns a canned decision unless overridden.
type MockDialogueService struct {
	Decision   domain.Decision
	DecideFunc func(ctx context.Context, intent domain.ResolvedIntent, dctx domain.DialogueContext, state *domain.DialogueState) domain.Decision
}

func (m *MockDialogueService) Decide(ctx context.Context, intent domain.ResolvedIntent, dctx domain.DialogueContext, state *domain.DialogueState) domain.Decision {
	if m.DecideFunc != nil {
		return m.DecideFunc(ctx, intent, dctx, state)
	}
	return m.Decision
}

// MockModelClient is the generative-model stub.
type MockModelClient struct {
	Response     string
	Err          error
	CompleteFunc func(ctx context.Context, system, user string) (string, error)
}

func (m *MockModelClient) Complete(ctx context.Context, system, user string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, system, user)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response == "" {
		return "", errors.New("mock model: no response configured")
	}
	return m.Response, nil
}

// MockNotifier records handoff notifications.
type MockNotifier struct {
	Notifications []domain.Decision
	NotifyFunc    func(ctx context.Context, dctx domain.DialogueContext, decision domain.Decision) error
}

func (m *MockNotifier) NotifyHandoff(ctx context.Context, dctx domain.DialogueContext, decision domain.Decision) error {
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, dctx, decision)
	}
	m.Notifications = append(m.Notifications, decision)
	return nil
}

// MockResolver returns canned fetch results by resolver name.
type MockResolver struct {
	Results     map[string]map[string]interface{}
	ResolveFunc func(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error)
}

func (m *MockResolver) Resolve(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, name, args)
	}
	if result, ok := m.Results[name]; ok {
		return result, nil
	}
	return nil, errors.New("mock resolver: unknown name " + name)
}

var _ ports.NLUService = (*MockNLUService)(nil)
var _ ports.DialogueService = (*MockDialogueService)(nil)
var _ ports.ModelClient = (*MockModelClient)(nil)
var _ ports.Notifier = (*MockNotifier)(nil)
var _ ports.Resolver = (*MockResolver)(nil)
