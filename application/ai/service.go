package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"mindmap-backend/application/ports"
	"mindmap-backend/domain/thesis"
	"mindmap-backend/domain/tree"
	apperrors "mindmap-backend/pkg/errors"
	"mindmap-backend/pkg/observability"
)

// ResponseType selects how a provider's raw output is interpreted.
type ResponseType string

const (
	ResponseText    ResponseType = "text"
	ResponseQnA     ResponseType = "simple_qna"
	ResponseExtract ResponseType = "thesis_extract"
)

// Valid reports whether t is a known response type.
func (t ResponseType) Valid() bool {
	return t == ResponseText || t == ResponseQnA || t == ResponseExtract
}

// ChatTurn is one prior exchange carried along with a text request.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is an AI round trip for one node.
type Request struct {
	Body         string              `json:"body"`
	Contexts     []tree.ContextEntry `json:"contexts"`
	NodeID       string              `json:"node_id"`
	ResponseType ResponseType        `json:"response_type"`
	ProviderName string              `json:"provider_name,omitempty"`
	ChatHistory  []ChatTurn          `json:"chat_history,omitempty"`
}

// Outcome is the interpreted result of one provider round trip. Only
// the field matching the request's response type is populated.
type Outcome struct {
	Provider   string
	Text       string
	Questions  []Question
	Extraction thesis.Extraction
}

// Response is the external envelope returned for every AI request.
// Response mirrors Text for older clients.
type Response struct {
	Status       string                 `json:"status"`
	Questions    []Question             `json:"questions"`
	Theses       []thesis.Thesis        `json:"theses"`
	Meta         map[string]interface{} `json:"meta"`
	Text         string                 `json:"text"`
	Response     string                 `json:"response"`
	NodeID       string                 `json:"node_id"`
	ResponseType ResponseType           `json:"response_type"`
}

// Service owns the provider registry and runs the prompt-assemble /
// dispatch / interpret cycle.
type Service struct {
	library  *Library
	language string
	logger   *zap.Logger
	metrics  *observability.Metrics

	mu        sync.RWMutex
	providers map[string]ports.Provider
	order     []string
}

// NewService creates a service with no providers registered yet.
// language selects the language modifier applied to every prompt.
func NewService(library *Library, language string, logger *zap.Logger, metrics *observability.Metrics) *Service {
	if language == "" {
		language = "ru"
	}
	return &Service{
		library:   library,
		language:  language,
		logger:    logger,
		metrics:   metrics,
		providers: make(map[string]ports.Provider),
	}
}

// RegisterProvider adds a provider. The first registration becomes the
// default for requests that do not name one.
func (s *Service) RegisterProvider(p ports.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.providers[p.Name()]; exists {
		return
	}
	s.providers[p.Name()] = p
	s.order = append(s.order, p.Name())
}

// ProviderNames returns the registered provider names in registration
// order.
func (s *Service) ProviderNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Handle runs one AI round trip and interprets the output according to
// the request's response type.
func (s *Service) Handle(ctx context.Context, req Request) (Outcome, error) {
	responseType := req.ResponseType
	if responseType == "" {
		responseType = ResponseText
	}
	if !responseType.Valid() {
		return Outcome{}, apperrors.NewValidationError(
			fmt.Sprintf("unknown response_type '%s'", responseType))
	}

	provider, err := s.provider(req.ProviderName)
	if err != nil {
		return Outcome{}, err
	}

	prompt, err := s.assemble(req, responseType, provider.Name())
	if err != nil {
		return Outcome{}, err
	}

	start := time.Now()
	raw, err := provider.Complete(ctx, prompt)
	elapsed := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.ObserveAIRequest(provider.Name(), string(responseType), status, elapsed.Seconds())

	if err != nil {
		s.logger.Warn("AI provider request failed",
			zap.String("provider", provider.Name()),
			zap.String("nodeID", req.NodeID),
			zap.String("responseType", string(responseType)),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		if apperrors.IsAppError(err) {
			return Outcome{}, err
		}
		return Outcome{}, apperrors.NewExternalError(provider.Name(), err)
	}

	s.logger.Debug("AI provider request completed",
		zap.String("provider", provider.Name()),
		zap.String("nodeID", req.NodeID),
		zap.String("responseType", string(responseType)),
		zap.Duration("duration", elapsed),
	)

	outcome := Outcome{Provider: provider.Name()}
	switch responseType {
	case ResponseQnA:
		outcome.Questions = ParseQuestions(raw)
	case ResponseExtract:
		// Unparseable payloads degrade to an empty extraction; the
		// caller falls back to local segmentation.
		outcome.Extraction = thesis.ParseExtraction(raw)
	default:
		outcome.Text = raw
	}
	return outcome, nil
}

// provider resolves a registry name, falling back to the first
// registered provider for an empty name.
func (s *Service) provider(name string) (ports.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return nil, apperrors.NewUnavailableError("ai")
	}
	if name == "" {
		return s.providers[s.order[0]], nil
	}
	p, ok := s.providers[name]
	if !ok {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("AI provider '%s' not found", name))
	}
	return p, nil
}

// assemble builds the final prompt for one request.
func (s *Service) assemble(req Request, responseType ResponseType, providerName string) (string, error) {
	userText := req.Body

	switch responseType {
	case ResponseExtract:
		// The extraction prompt carries body and contexts inside one
		// JSON object rather than as a priority block.
		payload, err := json.Marshal(struct {
			Text     string              `json:"text"`
			Contexts []tree.ContextEntry `json:"contexts"`
		}{Text: req.Body, Contexts: req.Contexts})
		if err != nil {
			return "", apperrors.NewInternalError("failed to encode extraction payload").WithCause(err)
		}
		return s.library.Build(string(payload), providerName).
			AddModifier("response_type", string(responseType)).
			AddModifier("language", s.language).
			String()

	case ResponseText:
		if len(req.ChatHistory) > 0 {
			userText = formatTranscript(req.ChatHistory) + "\n\n" + userText
		}
	}

	return s.library.Build(userText, providerName).
		WithContexts(req.Contexts).
		AddModifier("response_type", string(responseType)).
		AddModifier("language", s.language).
		String()
}

// formatTranscript renders prior turns as alternating User:/Assistant:
// lines.
func formatTranscript(history []ChatTurn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		speaker := "User"
		if strings.EqualFold(turn.Role, "assistant") {
			speaker = "Assistant"
		}
		lines = append(lines, speaker+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}
