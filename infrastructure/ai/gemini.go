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
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-2.0-flash"
)

// GeminiProvider talks to Google's generateContent API.
type GeminiProvider struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGeminiProvider creates the Gemini adapter.
func NewGeminiProvider(cfg Config) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key required")
	}
	cfg = cfg.withDefaults(defaultGeminiBaseURL, defaultGeminiModel)

	return &GeminiProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
	}, nil
}

// Name implements ports.Provider.
func (p *GeminiProvider) Name() string { return "gemini" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete implements ports.Provider.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.cfg.BaseURL, p.cfg.Model)

	return completeWithRetry(ctx, p.limiter, p.cfg.MaxRetries, func(ctx context.Context) (string, error) {
		body, err := postJSON(ctx, p.httpClient, url, map[string]string{
			"X-Goog-Api-Key": p.cfg.APIKey,
		}, req)
		if err != nil {
			return "", err
		}

		var resp geminiResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		if resp.Error != nil {
			return "", fmt.Errorf("API error: %s", resp.Error.Message)
		}
		if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("empty response from API")
		}
		return resp.Candidates[0].Content.Parts[0].Text, nil
	})
}

var _ ports.Provider = (*GeminiProvider)(nil)
