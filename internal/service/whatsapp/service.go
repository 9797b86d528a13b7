package whatsapp

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/domain"
)

// Service implements outbound WhatsApp messaging. Inbound traffic arrives via
// the webhook handler; this is the return path.
type Service struct {
	provider  Provider
	templates map[string]*template.Template
	log       *zap.Logger
	fromPhone string
}

// Provider defines the WhatsApp provider interface
type Provider interface {
	SendMessage(ctx context.Context, to, body string) error
	SendTemplate(ctx context.Context, to, templateName string, params map[string]string) error
}

// Config holds WhatsApp service configuration
type Config struct {
	Provider    string // twilio, meta
	AccountSID  string // Twilio Account SID
	AuthToken   string // Twilio Auth Token
	FromPhone   string // Business WhatsApp number with country code
	MetaToken   string // Meta Business API token
	MetaPhoneID string // Meta Phone Number ID
}

// NewService creates a new WhatsApp service
func NewService(cfg Config, log *zap.Logger) (*Service, error) {
	var provider Provider
	var err error

	switch cfg.Provider {
	case "twilio":
		provider, err = NewTwilioProvider(cfg.AccountSID, cfg.AuthToken, cfg.FromPhone)
	case "meta":
		provider, err = NewMetaProvider(cfg.MetaToken, cfg.MetaPhoneID)
	default:
		return nil, fmt.Errorf("unknown WhatsApp provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create WhatsApp provider: %w", err)
	}

	s := &Service{
		provider:  provider,
		templates: make(map[string]*template.Template),
		log:       log,
		fromPhone: cfg.FromPhone,
	}

	s.loadTemplates()

	return s, nil
}

// loadTemplates loads message templates for out-of-band notices. Turn replies
// come already localized from the dialogue engine and skip these.
func (s *Service) loadTemplates() {
	templates := map[string]string{
		"handoff_notice": `Thanks for your patience, {{.CustomerName}}.

A human agent is joining this conversation to help you out. You can keep replying here as usual.`,

		"agent_joined": `Hi {{.CustomerName}}, this is {{.AgentName}} from the support team. I've read your conversation and I'm taking it from here.`,

		"order_update": `Update on your order {{.OrderID}}:

Status: {{.Status}}
{{if .ETA}}Expected delivery: {{.ETA}}{{end}}

Reply here if anything looks off.`,
	}

	for name, content := range templates {
		tmpl, err := template.New(name).Parse(content)
		if err != nil {
			s.log.Error("Failed to parse template",
				zap.String("template", name),
				zap.Error(err),
			)
			continue
		}
		s.templates[name] = tmpl
	}
}

// SendMessage sends a plain text message
func (s *Service) SendMessage(ctx context.Context, to, message string) error {
	if err := s.provider.SendMessage(ctx, to, message); err != nil {
		s.log.Error("Failed to send WhatsApp message",
			zap.String("to", to),
			zap.Error(err),
		)
		return err
	}

	s.log.Info("WhatsApp message sent",
		zap.String("to", to),
	)

	return nil
}

// SendReply delivers one decision's localized text back to the customer.
func (s *Service) SendReply(ctx context.Context, to string, decision domain.Decision) error {
	if to == "" || decision.Text == "" {
		return nil
	}
	return s.SendMessage(ctx, to, decision.Text)
}

// SendTemplate sends a templated message
func (s *Service) SendTemplate(ctx context.Context, to, templateName string, data map[string]interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template not found: %s", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.SendMessage(ctx, to, buf.String())
}

// SendHandoffNotice tells the customer a human is taking over.
func (s *Service) SendHandoffNotice(ctx context.Context, to, customerName string) error {
	if to == "" {
		return nil
	}
	if customerName == "" {
		customerName = "there"
	}

	return s.SendTemplate(ctx, to, "handoff_notice", map[string]interface{}{
		"CustomerName": customerName,
	})
}

// SendOrderUpdate pushes a proactive order status change to the customer.
func (s *Service) SendOrderUpdate(ctx context.Context, to, orderID, status, eta string) error {
	if to == "" {
		return nil
	}

	return s.SendTemplate(ctx, to, "order_update", map[string]interface{}{
		"OrderID": orderID,
		"Status":  status,
		"ETA":     eta,
	})
}
