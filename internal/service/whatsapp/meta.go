package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const metaGraphURL = "https://graph.facebook.com/v18.0"

// MetaProvider implements WhatsApp messaging via the Meta Business Cloud API
type MetaProvider struct {
	token   string
	phoneID string
	baseURL string
	client  *http.Client
}

type metaTextMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             metaText `json:"text"`
}

type metaText struct {
	Body string `json:"body"`
}

type metaTemplateMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Template         metaTemplate `json:"template"`
}

type metaTemplate struct {
	Name       string          `json:"name"`
	Language   metaLanguage    `json:"language"`
	Components []metaComponent `json:"components,omitempty"`
}

type metaLanguage struct {
	Code string `json:"code"`
}

type metaComponent struct {
	Type       string          `json:"type"`
	Parameters []metaParameter `json:"parameters"`
}

type metaParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type metaErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// NewMetaProvider creates a new Meta Cloud API WhatsApp provider
func NewMetaProvider(token, phoneID string) (*MetaProvider, error) {
	if token == "" || phoneID == "" {
		return nil, fmt.Errorf("token and phoneID are required")
	}

	return &MetaProvider{
		token:   token,
		phoneID: phoneID,
		baseURL: metaGraphURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// SendMessage sends a WhatsApp text message via the Cloud API
func (p *MetaProvider) SendMessage(ctx context.Context, to, body string) error {
	payload := metaTextMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             metaText{Body: body},
	}

	return p.post(ctx, payload)
}

// SendTemplate sends a pre-approved template message via the Cloud API
func (p *MetaProvider) SendTemplate(ctx context.Context, to, templateName string, params map[string]string) error {
	var parameters []metaParameter
	for _, value := range params {
		parameters = append(parameters, metaParameter{Type: "text", Text: value})
	}

	payload := metaTemplateMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: metaTemplate{
			Name:     templateName,
			Language: metaLanguage{Code: "en"},
			Components: []metaComponent{
				{Type: "body", Parameters: parameters},
			},
		},
	}

	return p.post(ctx, payload)
}

func (p *MetaProvider) post(ctx context.Context, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/messages", p.baseURL, p.phoneID)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var result metaErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && result.Error.Message != "" {
			return fmt.Errorf("meta error: %s (code: %d)", result.Error.Message, result.Error.Code)
		}
		return fmt.Errorf("meta error: status %d", resp.StatusCode)
	}

	return nil
}
