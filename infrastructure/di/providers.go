// Package di wires the application's dependencies.
package di

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appai "mindmap-backend/application/ai"
	"mindmap-backend/application/ports"
	"mindmap-backend/application/services"
	"mindmap-backend/domain/tree"
	infraai "mindmap-backend/infrastructure/ai"
	"mindmap-backend/infrastructure/config"
	"mindmap-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Metrics     *observability.Metrics
	Store       *tree.Store
	AIService   *appai.Service
	NodeService *services.NodeService
}

// ProvideLogger creates the zap logger for the configured environment.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}

// ProvideMetrics creates the Prometheus collectors.
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

// ProvideStore creates the tree store with the configured layout
// policy and origin.
func ProvideStore(cfg *config.Config) *tree.Store {
	return tree.NewStore(
		tree.LayoutPolicy(cfg.LayoutPolicy),
		tree.Position{X: cfg.OriginX, Y: cfg.OriginY},
	)
}

// ProvidePromptLibrary creates the default modifier template library.
func ProvidePromptLibrary() *appai.Library {
	return appai.DefaultLibrary()
}

// ProvideAIService creates the AI service and registers every provider
// that has an API key configured, in a fixed order so the first one is
// the deployment default.
func ProvideAIService(
	cfg *config.Config,
	library *appai.Library,
	logger *zap.Logger,
	metrics *observability.Metrics,
) (*appai.Service, error) {
	service := appai.NewService(library, cfg.Language, logger, metrics)

	providerCfg := func(pc config.ProviderConfig) infraai.Config {
		return infraai.Config{
			APIKey:     pc.APIKey,
			BaseURL:    pc.BaseURL,
			Model:      pc.Model,
			Timeout:    time.Duration(cfg.AITimeoutSeconds) * time.Second,
			MaxRetries: cfg.AIMaxRetries,
			RateLimit:  cfg.AIRateLimit,
			Burst:      cfg.AIBurst,
		}
	}

	type factory struct {
		name string
		cfg  config.ProviderConfig
		make func(infraai.Config) (ports.Provider, error)
	}
	factories := []factory{
		{"groq", cfg.Groq, func(c infraai.Config) (ports.Provider, error) { return infraai.NewGroqProvider(c) }},
		{"gemini", cfg.Gemini, func(c infraai.Config) (ports.Provider, error) { return infraai.NewGeminiProvider(c) }},
		{"cohere", cfg.Cohere, func(c infraai.Config) (ports.Provider, error) { return infraai.NewCohereProvider(c) }},
	}

	// The first registered provider serves requests that do not name
	// one, so the configured default is registered ahead of the rest.
	if cfg.AIDefaultProvider != "" {
		for i, f := range factories {
			if f.name == cfg.AIDefaultProvider && i > 0 {
				factories = append([]factory{f}, append(factories[:i:i], factories[i+1:]...)...)
				break
			}
		}
	}

	for _, f := range factories {
		if f.cfg.APIKey == "" {
			if f.name == cfg.AIDefaultProvider {
				logger.Warn("Default AI provider has no API key configured",
					zap.String("provider", f.name))
			}
			continue
		}
		p, err := f.make(providerCfg(f.cfg))
		if err != nil {
			return nil, err
		}
		service.RegisterProvider(p)
	}

	names := service.ProviderNames()
	if len(names) == 0 {
		logger.Warn("No AI providers configured; ai-request will be unavailable")
	} else {
		logger.Info("AI providers registered", zap.Strings("providers", names))
	}

	return service, nil
}

// ProvideNodeService creates the orchestration service.
func ProvideNodeService(
	store *tree.Store,
	aiService *appai.Service,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *services.NodeService {
	return services.NewNodeService(store, aiService, logger, metrics)
}
