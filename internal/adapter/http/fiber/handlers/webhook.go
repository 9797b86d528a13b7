package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

// Replier pushes a decision back to the customer over the originating
// channel, out of band from the webhook response.
type Replier interface {
	SendReply(ctx context.Context, to string, decision domain.Decision) error
}

// WebhookHandler receives messages pushed by external channel providers
// (WhatsApp BSPs, Facebook pages). The channel name comes from the route.
type WebhookHandler struct {
	orchestrator ports.Orchestrator
	verifyToken  string
	replier      Replier // optional
	log          *zap.Logger
}

func NewWebhookHandler(orchestrator ports.Orchestrator, verifyToken string, replier Replier, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		orchestrator: orchestrator,
		verifyToken:  verifyToken,
		replier:      replier,
		log:          log,
	}
}

type webhookPayload struct {
	TenantID       string `json:"tenantId"`
	ConversationID string `json:"conversationId"`
	From           string `json:"from"` // customer identifier on the channel
	Text           string `json:"text"`
	Language       string `json:"language"`
}

// Verify answers the provider's subscription challenge.
func (h *WebhookHandler) Verify(c *fiber.Ctx) error {
	if c.Query("hub.verify_token") != h.verifyToken {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Verification token mismatch"})
	}
	return c.SendString(c.Query("hub.challenge"))
}

// Receive maps an inbound channel event to the pipeline. Providers retry on
// non-2xx, so pipeline failures are logged and acknowledged rather than
// bounced back.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	channel := c.Params("channel")

	var payload webhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if payload.Text == "" || payload.From == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Text and sender are required"})
	}

	conversationID := payload.ConversationID
	if conversationID == "" {
		// One rolling thread per customer per channel.
		conversationID = channel + ":" + payload.From
	}

	decision, err := h.orchestrator.HandleMessage(c.Context(), ports.ChatRequest{
		TenantID:       payload.TenantID,
		ConversationID: conversationID,
		CustomerID:     payload.From,
		Channel:        channel,
		Text:           payload.Text,
		Language:       domain.Language(payload.Language),
	})
	if err != nil {
		h.log.Error("Webhook message failed",
			zap.String("channel", channel),
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
		return c.SendStatus(fiber.StatusOK)
	}

	if h.replier != nil {
		go func(to string, decision domain.Decision) {
			if err := h.replier.SendReply(context.Background(), to, decision); err != nil {
				h.log.Warn("Out-of-band reply failed",
					zap.String("channel", channel),
					zap.Error(err),
				)
			}
		}(payload.From, *decision)
	}

	return c.JSON(fiber.Map{
		"conversationId": conversationID,
		"reply":          decision.Text,
		"action":         decision.Action,
	})
}
