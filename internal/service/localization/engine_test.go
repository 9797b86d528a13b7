package localization

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
)

type templateRepoMock struct {
	FindByKeyFunc func(ctx context.Context, key string, lang domain.Language) (*domain.Template, error)
	FindAllFunc   func(ctx context.Context) ([]domain.Template, error)
}

func (m *templateRepoMock) Save(ctx context.Context, t *domain.Template) error { return nil }

func (m *templateRepoMock) FindByKey(ctx context.Context, key string, lang domain.Language) (*domain.Template, error) {
	if m.FindByKeyFunc != nil {
		return m.FindByKeyFunc(ctx, key, lang)
	}
	return nil, nil
}

func (m *templateRepoMock) FindAll(ctx context.Context) ([]domain.Template, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *templateRepoMock) Delete(ctx context.Context, key string, lang domain.Language) error {
	return nil
}

func TestLocalize_SubstitutesVariables(t *testing.T) {
	// Arrange
	engine := NewEngine(nil, zap.NewNop())

	// Act
	got := engine.Localize(context.Background(), "order_status_fetch", domain.LanguageEnglish, map[string]interface{}{
		"order_id": "ORD-12345",
	})

	// Assert
	if !strings.Contains(got, "ORD-12345") {
		t.Errorf("Expected rendered text to contain order id, got %q", got)
	}
	if strings.Contains(got, "{") {
		t.Errorf("Expected no unresolved tokens, got %q", got)
	}
}

func TestLocalize_DefaultValueGrammar(t *testing.T) {
	// Arrange
	engine := NewEngine(nil, zap.NewNop())

	// Act: greeting uses {bot_name|your assistant}, no vars supplied
	got := engine.Localize(context.Background(), "greeting", domain.LanguageEnglish, nil)

	// Assert
	if !strings.Contains(got, "your assistant") {
		t.Errorf("Expected default value for bot_name, got %q", got)
	}

	// Act: supplied variable wins over the default
	got = engine.Localize(context.Background(), "greeting", domain.LanguageEnglish, map[string]interface{}{
		"bot_name": "Bangla Bot",
	})

	// Assert
	if !strings.Contains(got, "Bangla Bot") {
		t.Errorf("Expected supplied bot_name, got %q", got)
	}
}

func TestLocalize_UnresolvedTokenBecomesEmpty(t *testing.T) {
	// Arrange
	engine := NewEngine(nil, zap.NewNop())

	// Act: order_status_fetch references {order_id}, no vars supplied
	got := engine.Localize(context.Background(), "order_status_fetch", domain.LanguageEnglish, nil)

	// Assert
	if strings.Contains(got, "{order_id}") {
		t.Errorf("Expected token to be removed, got %q", got)
	}
	if !strings.Contains(got, "order #") {
		t.Errorf("Expected surrounding text to survive, got %q", got)
	}
}

func TestLocalize_UnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	// Arrange
	engine := NewEngine(nil, zap.NewNop())

	// Act
	got := engine.Localize(context.Background(), "thank_you", domain.Language("zz"), nil)
	want := engine.Localize(context.Background(), "thank_you", domain.LanguageEnglish, nil)

	// Assert
	if got != want {
		t.Errorf("Expected fallback to English body %q, got %q", want, got)
	}
}

func TestLocalize_PartialLanguageFallsBackPerKey(t *testing.T) {
	// Arrange: Arabic carries its own handoff body but no thank_you variant
	engine := NewEngine(nil, zap.NewNop())

	// Act
	handoff := engine.Localize(context.Background(), "payment_issue_handoff", domain.LanguageArabic, nil)
	thanks := engine.Localize(context.Background(), "thank_you", domain.LanguageArabic, nil)

	// Assert
	if handoff == defaultTemplates[domain.LanguageEnglish]["payment_issue_handoff"] {
		t.Error("Expected Arabic handoff body, got the English one")
	}
	if thanks != defaultTemplates[domain.LanguageEnglish]["thank_you"] {
		t.Errorf("Expected English fallback for uncovered key, got %q", thanks)
	}
}

func TestLocalize_UnknownKeyReturnsPlaceholder(t *testing.T) {
	// Arrange
	engine := NewEngine(nil, zap.NewNop())

	// Act
	got := engine.Localize(context.Background(), "no_such_key", domain.LanguageEnglish, nil)

	// Assert
	if got != "[missing template: no_such_key]" {
		t.Errorf("Expected missing-template placeholder, got %q", got)
	}
}

func TestLocalize_RepositoryOverridesDefaults(t *testing.T) {
	// Arrange
	repo := &templateRepoMock{
		FindAllFunc: func(ctx context.Context) ([]domain.Template, error) {
			return []domain.Template{
				{Key: "greeting", Language: domain.LanguageEnglish, Body: "Welcome to {shop}!"},
			}, nil
		},
	}
	engine := NewEngine(repo, zap.NewNop())
	if err := engine.Preload(context.Background()); err != nil {
		t.Fatalf("Preload failed: %v", err)
	}

	// Act
	got := engine.Localize(context.Background(), "greeting", domain.LanguageEnglish, map[string]interface{}{
		"shop": "Dhaka Gadgets",
	})

	// Assert
	if got != "Welcome to Dhaka Gadgets!" {
		t.Errorf("Expected stored template to override the default, got %q", got)
	}
}

func TestLocalize_RepositoryErrorFallsBackToDefaults(t *testing.T) {
	// Arrange
	repo := &templateRepoMock{
		FindByKeyFunc: func(ctx context.Context, key string, lang domain.Language) (*domain.Template, error) {
			return nil, errors.New("connection refused")
		},
	}
	engine := NewEngine(repo, zap.NewNop())

	// Act: defaults are cached at construction, repo is never consulted
	got := engine.Localize(context.Background(), "goodbye", domain.LanguageEnglish, nil)

	// Assert
	if strings.HasPrefix(got, "[missing template") {
		t.Errorf("Expected built-in body despite repo error, got %q", got)
	}
}

func TestClearCache_ReseedsDefaults(t *testing.T) {
	// Arrange
	repo := &templateRepoMock{
		FindAllFunc: func(ctx context.Context) ([]domain.Template, error) {
			return []domain.Template{
				{Key: "greeting", Language: domain.LanguageEnglish, Body: "Custom greeting"},
			}, nil
		},
	}
	engine := NewEngine(repo, zap.NewNop())
	if err := engine.Preload(context.Background()); err != nil {
		t.Fatalf("Preload failed: %v", err)
	}

	// Act
	engine.ClearCache()
	got := engine.Localize(context.Background(), "greeting", domain.LanguageEnglish, nil)

	// Assert
	if got == "Custom greeting" {
		t.Errorf("Expected override to be dropped after ClearCache, got %q", got)
	}
	if strings.HasPrefix(got, "[missing template") {
		t.Errorf("Expected built-in greeting after ClearCache, got %q", got)
	}
}
