package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.Equal(t, "ru", cfg.Language)
	assert.Empty(t, cfg.AIDefaultProvider)
	assert.Equal(t, 60, cfg.AITimeoutSeconds)
	assert.Equal(t, 2, cfg.AIMaxRetries)
	assert.Equal(t, 2.0, cfg.AIRateLimit)
	assert.Equal(t, 4, cfg.AIBurst)

	assert.Equal(t, "sequential", cfg.LayoutPolicy)
	assert.Equal(t, 250.0, cfg.OriginX)
	assert.Equal(t, 50.0, cfg.OriginY)

	assert.True(t, cfg.EnableCORS)
	assert.True(t, cfg.EnableMetrics)

	assert.Empty(t, cfg.Groq.APIKey)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("LAYOUT_POLICY", "centered")
	t.Setenv("AI_LANGUAGE", "en")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "gsk-test", cfg.Groq.APIKey)
	assert.Equal(t, "centered", cfg.LayoutPolicy)
	assert.Equal(t, "en", cfg.Language)
}

func TestLoadConfigRejectsUnknownDefaultProvider(t *testing.T) {
	t.Setenv("AI_DEFAULT_PROVIDER", "skynet")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default provider")
}

func TestLoadConfigRejectsUnknownLayoutPolicy(t *testing.T) {
	t.Setenv("LAYOUT_POLICY", "spiral")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout policy")
}

func TestValidateProductionRequiresProviderKey(t *testing.T) {
	t.Setenv("SERVER_ENVIRONMENT", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")

	t.Setenv("GEMINI_API_KEY", "gm-test")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
