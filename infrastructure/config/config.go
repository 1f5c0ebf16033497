// Package config loads application configuration: hardcoded defaults
// overridden by environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// defaults is the baseline configuration. Every key can be overridden
// by the matching environment variable (first underscore becomes the
// section separator: GROQ_API_KEY -> groq.api_key).
var defaults = []byte(`
server:
  address: ":8080"
  environment: development
log:
  level: info
ai:
  language: ru
  default_provider: ""
  timeout_seconds: 60
  max_retries: 2
  rate_limit: 2
  burst: 4
layout:
  policy: sequential
  origin_x: 250
  origin_y: 50
features:
  cors: true
  metrics: true
groq:
  api_key: ""
  base_url: ""
  model: ""
gemini:
  api_key: ""
  base_url: ""
  model: ""
cohere:
  api_key: ""
  base_url: ""
  model: ""
`)

// ProviderConfig holds one AI provider's settings. A provider with an
// empty API key is not registered.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Logging
	LogLevel string

	// AI request behaviour
	Language          string
	AIDefaultProvider string
	AITimeoutSeconds  int
	AIMaxRetries      int
	AIRateLimit       float64
	AIBurst           int

	// Tree layout
	LayoutPolicy string
	OriginX      float64
	OriginY      float64

	// Feature flags
	EnableCORS    bool
	EnableMetrics bool

	// Providers
	Groq   ProviderConfig
	Gemini ProviderConfig
	Cohere ProviderConfig
}

// LoadConfig loads configuration from defaults and environment
// variables.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	cfg := &Config{
		ServerAddress: k.String("server.address"),
		Environment:   k.String("server.environment"),

		LogLevel: k.String("log.level"),

		Language:          k.String("ai.language"),
		AIDefaultProvider: k.String("ai.default_provider"),
		AITimeoutSeconds:  k.Int("ai.timeout_seconds"),
		AIMaxRetries:      k.Int("ai.max_retries"),
		AIRateLimit:       k.Float64("ai.rate_limit"),
		AIBurst:           k.Int("ai.burst"),

		LayoutPolicy: k.String("layout.policy"),
		OriginX:      k.Float64("layout.origin_x"),
		OriginY:      k.Float64("layout.origin_y"),

		EnableCORS:    k.Bool("features.cors"),
		EnableMetrics: k.Bool("features.metrics"),

		Groq: ProviderConfig{
			APIKey:  k.String("groq.api_key"),
			BaseURL: k.String("groq.base_url"),
			Model:   k.String("groq.model"),
		},
		Gemini: ProviderConfig{
			APIKey:  k.String("gemini.api_key"),
			BaseURL: k.String("gemini.base_url"),
			Model:   k.String("gemini.model"),
		},
		Cohere: ProviderConfig{
			APIKey:  k.String("cohere.api_key"),
			BaseURL: k.String("cohere.base_url"),
			Model:   k.String("cohere.model"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	switch c.LayoutPolicy {
	case "sequential", "centered":
	default:
		return fmt.Errorf("unknown layout policy %q", c.LayoutPolicy)
	}

	switch c.AIDefaultProvider {
	case "", "groq", "gemini", "cohere":
	default:
		return fmt.Errorf("unknown default provider %q", c.AIDefaultProvider)
	}

	if c.Environment == "production" {
		if c.Groq.APIKey == "" && c.Gemini.APIKey == "" && c.Cohere.APIKey == "" {
			return fmt.Errorf("at least one AI provider API key is required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// envKey maps an environment variable name onto a config key: the
// first underscore separates the section, the rest of the name is kept
// verbatim (GROQ_API_KEY -> groq.api_key).
func envKey(s string) string {
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}
