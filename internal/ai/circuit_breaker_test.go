package ai

import (
	"errors"
	"testing"
	"time"

	"careerpath/internal/config"

	"google.golang.org/genai"
)

func breakerConfig(enabled bool) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          enabled,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}
}

func TestIndependentCircuitBreakerInstances(t *testing.T) {
	roadmapCB := NewAICircuitBreaker("roadmap", breakerConfig(true), nil)
	insightsCB := NewAICircuitBreaker("insights", breakerConfig(true), nil)
	interviewCB := NewAICircuitBreaker("interview", breakerConfig(true), nil)

	cases := []struct {
		cb   *AICircuitBreaker
		name string
	}{
		{roadmapCB, "AI-roadmap"},
		{insightsCB, "AI-insights"},
		{interviewCB, "AI-interview"},
	}

	for _, tc := range cases {
		stats := tc.cb.GetStats()

		if name, _ := stats["name"].(string); name != tc.name {
			t.Errorf("expected circuit breaker name %q, got %q", tc.name, name)
		}
		if state, _ := stats["state"].(string); state != "closed" {
			t.Errorf("expected initial state 'closed' for %s, got %q", tc.name, state)
		}
		if enabled, _ := stats["enabled"].(bool); !enabled {
			t.Errorf("circuit breaker %s should be enabled", tc.name)
		}
		if !tc.cb.IsHealthy() {
			t.Errorf("circuit breaker %s should be healthy initially", tc.name)
		}
	}

	if roadmapCB == insightsCB || roadmapCB == interviewCB || insightsCB == interviewCB {
		t.Error("per-operation circuit breakers should be distinct instances")
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	cb := NewAICircuitBreaker("disabled", breakerConfig(false), nil)
	if cb != nil {
		t.Fatal("circuit breaker should be nil when disabled")
	}

	// Nil breaker passes calls through
	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("expected pass-through execution, got %v", err)
	}
	if !called {
		t.Error("function should have been executed directly")
	}

	stats := cb.GetStats()
	if enabled, _ := stats["enabled"].(bool); enabled {
		t.Error("disabled breaker stats should report enabled=false")
	}
	if !cb.IsHealthy() {
		t.Error("nil breaker should report healthy")
	}
}

func TestModelCircuitBreakerDisabled(t *testing.T) {
	cb := NewModelCircuitBreaker("disabled", breakerConfig(false), nil)
	if cb != nil {
		t.Fatal("model circuit breaker should be nil when disabled")
	}

	wantErr := errors.New("model lookup failed")
	_, err := cb.ExecuteModel(func() (*genai.Model, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected pass-through error, got %v", err)
	}
	if !cb.IsModelHealthy() {
		t.Error("nil model breaker should report healthy")
	}
}

func TestCircuitBreakerPropagatesErrors(t *testing.T) {
	cb := NewAICircuitBreaker("errors", breakerConfig(true), nil)

	wantErr := errors.New("generation failed")
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped error, got %v", err)
	}

	// A single failure below MinRequests must not trip the breaker
	if !cb.IsHealthy() {
		t.Error("breaker should stay closed below the minimum request threshold")
	}
}
