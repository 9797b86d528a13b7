package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
)

// Config holds escalation notification settings.
type Config struct {
	// Provider type: "sendgrid" or "smtp"
	Provider string

	FromEmail string
	FromName  string

	// AgentEmail receives every handoff alert.
	AgentEmail string

	SendGridAPIKey string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
}

// DefaultConfig targets Mailhog for development.
func DefaultConfig() *Config {
	return &Config{
		Provider:   "smtp",
		FromEmail:  "noreply@bangla-ai.com",
		FromName:   "Bangla AI Platform",
		AgentEmail: "agents@bangla-ai.com",
		SMTPHost:   "localhost",
		SMTPPort:   1025,
		SMTPUseTLS: false,
	}
}

// Service emails human agents when a conversation escalates.
type Service struct {
	config   *Config
	provider Provider
	tmpl     *template.Template
	log      *zap.Logger
}

func NewService(config *Config, log *zap.Logger) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	s := &Service{
		config: config,
		tmpl:   template.Must(template.New("handoff").Parse(handoffTemplate)),
		log:    log,
	}

	switch config.Provider {
	case "sendgrid":
		if config.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SendGrid API key is required")
		}
		s.provider = NewSendGridProvider(config.SendGridAPIKey, config.FromEmail, config.FromName)
	case "smtp":
		s.provider = NewSMTPProvider(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.FromEmail,
			config.FromName,
			config.SMTPUseTLS,
		)
	default:
		return nil, fmt.Errorf("unknown notification provider: %s", config.Provider)
	}

	return s, nil
}

type handoffEmail struct {
	TenantID       string
	ConversationID string
	CustomerID     string
	Channel        string
	Message        string
	Reason         string
	Priority       string
	ReplyText      string
}

// NotifyHandoff sends one escalation alert per handoff decision.
func (s *Service) NotifyHandoff(ctx context.Context, dctx domain.DialogueContext, decision domain.Decision) error {
	reason, _ := decision.Metadata["reason"].(string)
	priority, _ := decision.Metadata["priority"].(string)

	data := handoffEmail{
		TenantID:       dctx.TenantID,
		ConversationID: dctx.ConversationID,
		CustomerID:     dctx.CustomerID,
		Channel:        dctx.Channel,
		Message:        dctx.Message,
		Reason:         reason,
		Priority:       priority,
		ReplyText:      decision.Text,
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render handoff email: %w", err)
	}

	subject := fmt.Sprintf("[%s] Conversation escalated: %s", priority, dctx.ConversationID)

	s.log.Info("Sending handoff notification",
		zap.String("conversation_id", dctx.ConversationID),
		zap.String("reason", reason),
		zap.String("priority", priority),
	)

	if err := s.provider.Send(ctx, s.config.AgentEmail, subject, body.String(), true); err != nil {
		s.log.Error("Failed to send handoff notification",
			zap.String("conversation_id", dctx.ConversationID),
			zap.Error(err),
		)
		return fmt.Errorf("send handoff notification: %w", err)
	}
	return nil
}

const handoffTemplate = `<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Conversation escalated to a human agent</h2>
	<table cellpadding="4">
		<tr><td><b>Tenant</b></td><td>{{.TenantID}}</td></tr>
		<tr><td><b>Conversation</b></td><td>{{.ConversationID}}</td></tr>
		<tr><td><b>Customer</b></td><td>{{.CustomerID}}</td></tr>
		<tr><td><b>Channel</b></td><td>{{.Channel}}</td></tr>
		<tr><td><b>Reason</b></td><td>{{.Reason}}</td></tr>
		<tr><td><b>Priority</b></td><td>{{.Priority}}</td></tr>
	</table>
	<h3>Last customer message</h3>
	<p>{{.Message}}</p>
	<h3>Reply already sent to the customer</h3>
	<p>{{.ReplyText}}</p>
</body>
</html>`
