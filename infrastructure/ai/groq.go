package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"mindmap-backend/application/ports"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama3-8b-8192"
)

// GroqProvider talks to Groq's OpenAI-compatible chat completions API.
type GroqProvider struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGroqProvider creates the Groq adapter.
func NewGroqProvider(cfg Config) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key required")
	}
	cfg = cfg.withDefaults(defaultGroqBaseURL, defaultGroqModel)

	return &GroqProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
	}, nil
}

// Name implements ports.Provider.
func (p *GroqProvider) Name() string { return "groq" }

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Messages []groqMessage `json:"messages"`
	Model    string        `json:"model"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements ports.Provider.
func (p *GroqProvider) Complete(ctx context.Context, prompt string) (string, error) {
	req := groqRequest{
		Messages: []groqMessage{{Role: "user", Content: prompt}},
		Model:    p.cfg.Model,
	}

	return completeWithRetry(ctx, p.limiter, p.cfg.MaxRetries, func(ctx context.Context) (string, error) {
		body, err := postJSON(ctx, p.httpClient, p.cfg.BaseURL+"/chat/completions", map[string]string{
			"Authorization": "Bearer " + p.cfg.APIKey,
		}, req)
		if err != nil {
			return "", err
		}

		var resp groqResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("empty response from API")
		}
		return resp.Choices[0].Message.Content, nil
	})
}

var _ ports.Provider = (*GroqProvider)(nil)
