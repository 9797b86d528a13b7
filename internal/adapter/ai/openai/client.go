package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/infrastructure/circuitbreaker"
	"github.com/bangla-ai/platform/internal/observability/telemetry"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

// Client calls the OpenAI chat completions API. It implements
// ports.ModelClient for the intent resolver.
type Client struct {
	apiKey     string
	model      string
	httpClient *circuitbreaker.HTTPClient
	log        *zap.Logger
}

func NewClient(apiKey, model string, log *zap.Logger) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		httpClient: circuitbreaker.NewHTTPClient(circuitbreaker.DefaultSettings("openai"), log),
		log:        log,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete runs one completion with the given system and user messages.
// Temperature stays at zero: classification must be as deterministic as the
// model allows.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openai: API key not configured")
	}

	start := time.Now()
	defer func() {
		telemetry.ModelLatency.Observe(time.Since(start).Seconds())
	}()

	reqBody := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: API error status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}

	c.log.Debug("Completion finished",
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)

	return result.Choices[0].Message.Content, nil
}
