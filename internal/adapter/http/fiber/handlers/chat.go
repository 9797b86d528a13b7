package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/ports"
)

type ChatHandler struct {
	orchestrator  ports.Orchestrator
	conversations ports.ConversationRepository
	log           *zap.Logger
}

func NewChatHandler(orchestrator ports.Orchestrator, conversations ports.ConversationRepository, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator:  orchestrator,
		conversations: conversations,
		log:           log,
	}
}

type ChatMessageRequest struct {
	ConversationID string `json:"conversationId"`
	CustomerID     string `json:"customerId"`
	Message        string `json:"message"`
	Language       string `json:"language"`
}

// Send runs one inbound message through the full pipeline and returns the
// decision. Conversation ID is minted when the client does not supply one.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}

	tenantID, _ := c.Locals("tenant_id").(string)
	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	decision, err := h.orchestrator.HandleMessage(c.Context(), ports.ChatRequest{
		TenantID:       tenantID,
		ConversationID: conversationID,
		CustomerID:     req.CustomerID,
		Channel:        "web",
		Text:           req.Message,
		Language:       domain.Language(req.Language),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"conversationId": conversationID,
		"decision":       decision,
	})
}

// History returns the most recent turns of a conversation, newest first.
func (h *ChatHandler) History(c *fiber.Ctx) error {
	id := c.Params("id")

	conversation, err := h.conversations.FindByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if conversation == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}
	if tenantID, _ := c.Locals("tenant_id").(string); conversation.TenantID != tenantID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}

	limit := c.QueryInt("limit", 50)
	turns, err := h.conversations.FindTurns(c.Context(), id, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"conversation": conversation,
		"turns":        turns,
	})
}
