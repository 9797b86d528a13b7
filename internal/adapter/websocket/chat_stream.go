package websocket

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
	"github.com/bangla-ai/platform/internal/observability/telemetry"
	"github.com/bangla-ai/platform/internal/ports"
)

// ChatStreamHandler serves the embedded webchat widget. Each connection is
// one conversation; messages run through the full pipeline and the decision
// comes straight back on the same socket.
type ChatStreamHandler struct {
	orchestrator ports.Orchestrator
	log          *zap.Logger
}

func NewChatStreamHandler(orchestrator ports.Orchestrator, log *zap.Logger) *ChatStreamHandler {
	return &ChatStreamHandler{
		orchestrator: orchestrator,
		log:          log,
	}
}

type inboundFrame struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

type outboundFrame struct {
	ConversationID string                 `json:"conversationId"`
	Text           string                 `json:"text"`
	Action         domain.ActionTag       `json:"action"`
	Language       domain.Language        `json:"language"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	Error          string                 `json:"error,omitempty"`
}

func (h *ChatStreamHandler) HandleChatStream(c *websocket.Conn) {
	tenantID := c.Query("tenantId")
	customerID := c.Query("customerId", "anonymous")
	conversationID := uuid.NewString()

	telemetry.WebsocketSessions.Inc()
	defer telemetry.WebsocketSessions.Dec()

	ctx := context.Background()

	for {
		var frame inboundFrame
		if err := c.ReadJSON(&frame); err != nil {
			break
		}
		if frame.Message == "" {
			continue
		}

		decision, err := h.orchestrator.HandleMessage(ctx, ports.ChatRequest{
			TenantID:       tenantID,
			ConversationID: conversationID,
			CustomerID:     customerID,
			Channel:        "webchat",
			Text:           frame.Message,
			Language:       domain.Language(frame.Language),
		})
		if err != nil {
			h.log.Error("Webchat message failed",
				zap.String("conversation_id", conversationID),
				zap.Error(err),
			)
			h.write(c, outboundFrame{ConversationID: conversationID, Error: err.Error()})
			continue
		}

		h.write(c, outboundFrame{
			ConversationID: conversationID,
			Text:           decision.Text,
			Action:         decision.Action,
			Language:       decision.Language,
			Metadata:       decision.Metadata,
		})
	}
}

func (h *ChatStreamHandler) write(c *websocket.Conn, frame outboundFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
		h.log.Warn("Webchat write failed", zap.Error(err))
	}
}

// SetupChatRoutes mounts the webchat websocket endpoint.
func SetupChatRoutes(app *fiber.App, handler *ChatStreamHandler) {
	app.Use("/ws/chat", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/chat", websocket.New(handler.HandleChatStream))
}
