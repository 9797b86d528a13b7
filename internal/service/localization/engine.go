package localization

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

// Engine resolves a response key plus language into final text, with
// {name} / {name|default} variable substitution and fallback to the default
// language. Resolved bodies are cached by (key, language); staleness is the
// caller's responsibility.
type Engine struct {
	repo  ports.TemplateRepository
	cache map[string]string
	mu    sync.RWMutex
	log   *zap.Logger
}

func NewEngine(repo ports.TemplateRepository, log *zap.Logger) *Engine {
	e := &Engine{
		repo:  repo,
		cache: make(map[string]string),
		log:   log,
	}
	e.loadDefaults()
	return e
}

var varPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Localize renders the template registered under (key, lang); when the
// requested language has no variant it falls back to the default language,
// and when the key is unknown entirely it returns a diagnostic placeholder.
// It never fails.
func (e *Engine) Localize(ctx context.Context, key string, lang domain.Language, vars map[string]interface{}) string {
	if lang == "" || !domain.ValidLanguage(lang) {
		lang = domain.DefaultLanguage
	}

	body, ok := e.lookup(ctx, key, lang)
	if !ok && lang != domain.DefaultLanguage {
		body, ok = e.lookup(ctx, key, domain.DefaultLanguage)
	}
	if !ok {
		e.log.Warn("Template not found", zap.String("key", key), zap.String("language", string(lang)))
		return fmt.Sprintf("[missing template: %s]", key)
	}

	return substitute(body, vars)
}

func (e *Engine) lookup(ctx context.Context, key string, lang domain.Language) (string, bool) {
	ck := cacheKey(key, lang)

	e.mu.RLock()
	body, ok := e.cache[ck]
	e.mu.RUnlock()
	if ok {
		return body, true
	}

	if e.repo != nil {
		tpl, err := e.repo.FindByKey(ctx, key, lang)
		if err != nil {
			e.log.Error("Template lookup failed", zap.String("key", key), zap.Error(err))
			return "", false
		}
		if tpl != nil {
			// Concurrent first-access may compute twice; last write wins,
			// both writes carry the same body.
			e.mu.Lock()
			e.cache[ck] = tpl.Body
			e.mu.Unlock()
			return tpl.Body, true
		}
	}

	return "", false
}

// substitute applies {name} and {name|default} tokens. Unresolvable tokens
// become the empty string, never an error.
func substitute(body string, vars map[string]interface{}) string {
	return varPattern.ReplaceAllStringFunc(body, func(match string) string {
		expr := match[1 : len(match)-1]

		name := expr
		def := ""
		if idx := strings.Index(expr, "|"); idx >= 0 {
			name = strings.TrimSpace(expr[:idx])
			def = strings.TrimSpace(expr[idx+1:])
		} else {
			name = strings.TrimSpace(name)
		}

		if v, ok := vars[name]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return def
	})
}

// ClearCache drops every cached body. Callers invalidate after template
// updates.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	e.cache = make(map[string]string)
	e.mu.Unlock()
	e.loadDefaults()
}

// Preload bulk-loads every stored template into the cache.
func (e *Engine) Preload(ctx context.Context) error {
	if e.repo == nil {
		return nil
	}
	templates, err := e.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("preload templates: %w", err)
	}

	e.mu.Lock()
	for _, t := range templates {
		e.cache[cacheKey(t.Key, t.Language)] = t.Body
	}
	e.mu.Unlock()

	e.log.Info("Templates preloaded", zap.Int("count", len(templates)))
	return nil
}

// loadDefaults seeds the built-in template set so the engine answers in every
// supported language before any store rows exist. Store rows override these
// on Preload.
func (e *Engine) loadDefaults() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for lang, set := range defaultTemplates {
		for key, body := range set {
			ck := cacheKey(key, lang)
			if _, exists := e.cache[ck]; !exists {
				e.cache[ck] = body
			}
		}
	}
}

func cacheKey(key string, lang domain.Language) string {
	return key + ":" + string(lang)
}
