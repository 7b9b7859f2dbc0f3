package ai

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/errors"
	"careerpath/internal/types"
)

func timePtr(d time.Duration) *time.Duration { return &d }
func intPtr(i int) *int                      { return &i }
func float32Ptr(f float32) *float32          { return &f }
func boolPtr(b bool) *bool                   { return &b }

var testLogger = errors.NewLogger(slog.LevelDebug)

// TestOperationSpecificConfigDerivation verifies that operation-specific
// configurations are correctly derived, with fallbacks to the global configuration.
func TestOperationSpecificConfigDerivation(t *testing.T) {
	testConfig := &config.Config{
		AI: config.AIConfig{
			Provider:         "gemini",
			Model:            "global-model",
			Timeout:          60 * time.Second,
			APIKey:           "global-api-key",
			MaxRetries:       5,
			Temperature:      0.9,
			UseSystemPrompts: true,

			Roadmap: config.OperationAIConfig{
				Model:       "roadmap-specific-model",
				Timeout:     timePtr(90 * time.Second),
				Temperature: float32Ptr(0.3),
			},
			Insights: config.OperationAIConfig{
				Model:      "insights-specific-model",
				MaxRetries: intPtr(1),
			},
			// Interview has no overrides and should use all global values
		},
	}

	t.Run("roadmap overrides win", func(t *testing.T) {
		cfg := testConfig.GetRoadmapConfig()
		if cfg.Model != "roadmap-specific-model" {
			t.Errorf("expected override model, got %q", cfg.Model)
		}
		if *cfg.Timeout != 90*time.Second {
			t.Errorf("expected override timeout, got %v", *cfg.Timeout)
		}
		if *cfg.Temperature != 0.3 {
			t.Errorf("expected override temperature, got %f", *cfg.Temperature)
		}
		if cfg.APIKey != "global-api-key" {
			t.Errorf("expected global API key fallback, got %q", cfg.APIKey)
		}
		if *cfg.MaxRetries != 5 {
			t.Errorf("expected global max retries fallback, got %d", *cfg.MaxRetries)
		}
	})

	t.Run("insights partial overrides", func(t *testing.T) {
		cfg := testConfig.GetInsightsConfig()
		if cfg.Model != "insights-specific-model" {
			t.Errorf("expected override model, got %q", cfg.Model)
		}
		if *cfg.MaxRetries != 1 {
			t.Errorf("expected override max retries, got %d", *cfg.MaxRetries)
		}
		if *cfg.Timeout != 60*time.Second {
			t.Errorf("expected global timeout fallback, got %v", *cfg.Timeout)
		}
	})

	t.Run("interview uses globals", func(t *testing.T) {
		cfg := testConfig.GetInterviewConfig()
		if cfg.Model != "global-model" {
			t.Errorf("expected global model, got %q", cfg.Model)
		}
		if cfg.APIKey != "global-api-key" {
			t.Errorf("expected global API key, got %q", cfg.APIKey)
		}
		if !*cfg.UseSystemPrompts {
			t.Error("expected global UseSystemPrompts=true")
		}
	})
}

func fallbackOnlyConfig() *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider:         "gemini",
		Model:            "gemini-2.0-flash",
		Timeout:          timePtr(30 * time.Second),
		MaxRetries:       intPtr(1),
		Temperature:      float32Ptr(0.5),
		UseSystemPrompts: boolPtr(true), // NewService logs *UseSystemPrompts when an API key is set
	}
}

func TestServiceWithoutAPIKeyUsesFallback(t *testing.T) {
	svc, err := NewService(fallbackOnlyConfig(), "roadmap", testLogger)
	if err != nil {
		t.Fatalf("fallback-only service should build without error: %v", err)
	}
	if svc.IsAvailable() {
		t.Error("service without API key should not report an available provider")
	}

	ctx := context.Background()

	roadmap, usage, err := svc.GenerateRoadmap(ctx, types.RoadmapInput{Skills: []string{"python"}})
	if err != nil {
		t.Fatalf("fallback roadmap should not error: %v", err)
	}
	if usage != nil {
		t.Error("fallback roadmap should report no token usage")
	}
	if roadmap.Generated {
		t.Error("fallback roadmap should report Generated=false")
	}
	if roadmap.TargetRole != "Data Scientist" {
		t.Errorf("expected skill-driven target role, got %q", roadmap.TargetRole)
	}

	insights, _, err := svc.AnalyzeResume(ctx, types.InsightsInput{ResumeText: "text"})
	if err != nil {
		t.Fatalf("fallback insights should not error: %v", err)
	}
	if insights.OverallAssessment == "" {
		t.Error("fallback insights should carry an assessment")
	}

	tips, _, err := svc.GenerateInterviewTips(ctx, types.InterviewInput{JobDescription: "role"})
	if err != nil {
		t.Fatalf("fallback interview tips should not error: %v", err)
	}
	if len(tips.KeyTopics) == 0 {
		t.Error("fallback interview tips should carry key topics")
	}
}

func TestServiceFallbackModelInfo(t *testing.T) {
	svc, err := NewService(fallbackOnlyConfig(), "insights", testLogger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := svc.GetModelInfo(context.Background())
	if !info.Available || info.Name != "fallback" {
		t.Errorf("unexpected fallback model info: %+v", info)
	}
}

func TestServiceRejectsUnknownProvider(t *testing.T) {
	cfg := fallbackOnlyConfig()
	cfg.Provider = "openai"
	cfg.APIKey = "some-key"

	if _, err := NewService(cfg, "roadmap", testLogger); err == nil {
		t.Error("expected error for unsupported provider")
	}
}
