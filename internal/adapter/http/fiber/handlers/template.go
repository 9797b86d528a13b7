package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

// TemplateHandler manages response template overrides. Writes invalidate the
// localization cache so the next render sees fresh bodies.
type TemplateHandler struct {
	templates ports.TemplateRepository
	localizer ports.Localizer
	log       *zap.Logger
}

func NewTemplateHandler(templates ports.TemplateRepository, localizer ports.Localizer, log *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		localizer: localizer,
		log:       log,
	}
}

func (h *TemplateHandler) List(c *fiber.Ctx) error {
	templates, err := h.templates.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(templates)
}

func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	lang := domain.Language(c.Query("language", string(domain.LanguageEnglish)))

	template, err := h.templates.FindByKey(c.Context(), key, lang)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if template == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	return c.JSON(template)
}

func (h *TemplateHandler) Upsert(c *fiber.Ctx) error {
	var template domain.Template
	if err := c.BodyParser(&template); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if template.Key == "" || template.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Key and body are required"})
	}
	if !domain.ValidLanguage(template.Language) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unsupported language"})
	}

	template.TenantID, _ = c.Locals("tenant_id").(string)
	if err := h.templates.Save(c.Context(), &template); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.localizer.ClearCache()
	return c.Status(fiber.StatusCreated).JSON(template)
}

func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	key := c.Params("key")
	lang := domain.Language(c.Query("language", string(domain.LanguageEnglish)))

	if err := h.templates.Delete(c.Context(), key, lang); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.localizer.ClearCache()
	return c.SendStatus(fiber.StatusNoContent)
}
