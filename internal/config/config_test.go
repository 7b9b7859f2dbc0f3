package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:         "gemini",
			Model:            "gemini-2.0-flash",
			Timeout:          60 * time.Second,
			APIKey:           "global-key",
			MaxRetries:       3,
			Temperature:      0.7,
			UseSystemPrompts: true,
		},
		Server: ServerConfig{
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
		},
	}
}

func TestGetRoadmapConfigAppliesGlobalDefaults(t *testing.T) {
	cfg := baseConfig()

	op := cfg.GetRoadmapConfig()

	assert.Equal(t, "gemini", op.Provider)
	assert.Equal(t, "gemini-2.0-flash", op.Model)
	assert.Equal(t, "global-key", op.APIKey)
	require.NotNil(t, op.Timeout)
	assert.Equal(t, 60*time.Second, *op.Timeout)
	require.NotNil(t, op.MaxRetries)
	assert.Equal(t, 3, *op.MaxRetries)
	require.NotNil(t, op.Temperature)
	assert.InDelta(t, 0.7, float64(*op.Temperature), 0.001)
	require.NotNil(t, op.UseSystemPrompts)
	assert.True(t, *op.UseSystemPrompts)
}

func TestOperationOverridesWin(t *testing.T) {
	cfg := baseConfig()
	timeout := 90 * time.Second
	retries := 1
	cfg.AI.Insights = OperationAIConfig{
		Model:      "gemini-2.5-pro",
		APIKey:     "insights-key",
		Timeout:    &timeout,
		MaxRetries: &retries,
	}

	op := cfg.GetInsightsConfig()

	assert.Equal(t, "gemini-2.5-pro", op.Model)
	assert.Equal(t, "insights-key", op.APIKey)
	assert.Equal(t, 90*time.Second, *op.Timeout)
	assert.Equal(t, 1, *op.MaxRetries)
	// Provider was not overridden and falls back to global
	assert.Equal(t, "gemini", op.Provider)
}

func TestOperationPromptFallback(t *testing.T) {
	cfg := baseConfig()
	cfg.AI.CustomPrompts.SystemPrompts.Interview = "global interview prompt"

	op := cfg.GetInterviewConfig()
	assert.Equal(t, "global interview prompt", op.CustomPrompts.SystemPrompts.Interview)

	cfg.AI.Interview.CustomPrompts.SystemPrompts.Interview = "operation interview prompt"
	op = cfg.GetInterviewConfig()
	assert.Equal(t, "operation interview prompt", op.CustomPrompts.SystemPrompts.Interview)
}

func TestValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, baseConfig().Validate())
	})

	t.Run("empty API key is valid", func(t *testing.T) {
		cfg := baseConfig()
		cfg.AI.APIKey = ""
		assert.NoError(t, cfg.Validate())
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := baseConfig()
		cfg.AI.Timeout = 0
		assert.ErrorContains(t, cfg.Validate(), "timeout must be positive")
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Server.Port = ""
		assert.ErrorContains(t, cfg.Validate(), "server port is required")
	})

	t.Run("unsupported default format", func(t *testing.T) {
		cfg := baseConfig()
		cfg.App.DefaultFormat = "yaml"
		assert.ErrorContains(t, cfg.Validate(), "invalid default format")
	})

	t.Run("storage enabled without path", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Storage = StorageConfig{Enabled: true}
		assert.ErrorContains(t, cfg.Validate(), "storage path is required")
	})
}

func TestHasAPIKey(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasAPIKey())

	cfg.AI.Interview.APIKey = "op-key"
	assert.True(t, cfg.HasAPIKey())

	cfg = &Config{}
	cfg.AI.APIKey = "global"
	assert.True(t, cfg.HasAPIKey())
}

func TestApplyStorageDefaults(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{Enabled: true}}
	cfg.applyStorageDefaults()
	assert.NotEmpty(t, cfg.Storage.Path)

	cfg = &Config{Storage: StorageConfig{Enabled: true, Path: "/tmp/custom.db"}}
	cfg.applyStorageDefaults()
	assert.Equal(t, "/tmp/custom.db", cfg.Storage.Path)

	cfg = &Config{Storage: StorageConfig{Enabled: false}}
	cfg.applyStorageDefaults()
	assert.Empty(t, cfg.Storage.Path)
}

func TestServerAPIKeyFallback(t *testing.T) {
	t.Setenv("CAREERPATH_SERVER_APIKEYS", "key-a, key-b ,key-c")

	cfg := &Config{}
	cfg.applyServerAPIKeyFallbacks()

	assert.Equal(t, []string{"key-a", "key-b", "key-c"}, cfg.Server.APIKeys)
}

func TestServerAPIKeyFallbackDoesNotOverride(t *testing.T) {
	t.Setenv("CAREERPATH_SERVER_APIKEYS", "env-key")

	cfg := &Config{Server: ServerConfig{APIKeys: []string{"configured"}}}
	cfg.applyServerAPIKeyFallbacks()

	assert.Equal(t, []string{"configured"}, cfg.Server.APIKeys)
}
