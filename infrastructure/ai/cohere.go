package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"mindmap-backend/application/ports"
)

const defaultCohereBaseURL = "https://api.cohere.com"

// CohereProvider talks to Cohere's chat API.
type CohereProvider struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewCohereProvider creates the Cohere adapter.
func NewCohereProvider(cfg Config) (*CohereProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("cohere API key required")
	}
	cfg = cfg.withDefaults(defaultCohereBaseURL, "")

	return &CohereProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
	}, nil
}

// Name implements ports.Provider.
func (p *CohereProvider) Name() string { return "cohere" }

type cohereRequest struct {
	Message     string   `json:"message"`
	Model       string   `json:"model,omitempty"`
	Stream      bool     `json:"stream"`
	ChatHistory []string `json:"chat_history"`
}

type cohereResponse struct {
	Text string `json:"text"`
}

// Complete implements ports.Provider.
func (p *CohereProvider) Complete(ctx context.Context, prompt string) (string, error) {
	req := cohereRequest{
		Message:     prompt,
		Model:       p.cfg.Model,
		Stream:      false,
		ChatHistory: []string{},
	}

	return completeWithRetry(ctx, p.limiter, p.cfg.MaxRetries, func(ctx context.Context) (string, error) {
		body, err := postJSON(ctx, p.httpClient, p.cfg.BaseURL+"/v1/chat", map[string]string{
			"Authorization": "Bearer " + p.cfg.APIKey,
		}, req)
		if err != nil {
			return "", err
		}

		var resp cohereResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		if resp.Text == "" {
			return "", fmt.Errorf("empty response from API")
		}
		return resp.Text, nil
	})
}

var _ ports.Provider = (*CohereProvider)(nil)
