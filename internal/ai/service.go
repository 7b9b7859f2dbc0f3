package ai

import (
	"context"
	"fmt"

	"careerpath/internal/config"
	"careerpath/internal/errors"
	"careerpath/internal/types"
)

// Service handles AI operations for career analysis. When no provider is
// configured, or a provider call fails, operations degrade to deterministic
// fallback output instead of returning an error.
type Service struct {
	Provider AIProvider // Exported for access from server package; nil in fallback-only mode
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance with configuration for a specific operation.
// An empty API key yields a fallback-only service.
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	if cfg.APIKey == "" {
		logger.Info("No AI API key configured, using deterministic fallback",
			"operation_type", operationType)
		return &Service{config: cfg, logger: logger}, nil
	}

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	var provider AIProvider
	var err error

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// IsAvailable reports whether a live AI provider is configured
func (s *Service) IsAvailable() bool {
	return s.Provider != nil
}

// GenerateRoadmap produces a career roadmap, falling back to the
// deterministic plan when the provider is missing or fails.
func (s *Service) GenerateRoadmap(ctx context.Context, input types.RoadmapInput) (types.RoadmapOutput, *TokenUsage, error) {
	if s.Provider == nil {
		return FallbackRoadmap(input), nil, nil
	}

	output, usage, err := s.Provider.GenerateRoadmap(ctx, input)
	if err != nil {
		s.logger.Warn("AI roadmap generation failed, using fallback", "error", err.Error())
		return FallbackRoadmap(input), nil, nil
	}
	return output, usage, nil
}

// AnalyzeResume produces qualitative resume feedback, falling back to the
// deterministic assessment when the provider is missing or fails.
func (s *Service) AnalyzeResume(ctx context.Context, input types.InsightsInput) (types.InsightsOutput, *TokenUsage, error) {
	if s.Provider == nil {
		return FallbackInsights(input), nil, nil
	}

	output, usage, err := s.Provider.AnalyzeResume(ctx, input)
	if err != nil {
		s.logger.Warn("AI resume analysis failed, using fallback", "error", err.Error())
		return FallbackInsights(input), nil, nil
	}
	return output, usage, nil
}

// GenerateInterviewTips produces interview preparation guidance, falling back
// to the deterministic tips when the provider is missing or fails.
func (s *Service) GenerateInterviewTips(ctx context.Context, input types.InterviewInput) (types.InterviewTipsOutput, *TokenUsage, error) {
	if s.Provider == nil {
		return FallbackInterviewTips(input), nil, nil
	}

	output, usage, err := s.Provider.GenerateInterviewTips(ctx, input)
	if err != nil {
		s.logger.Warn("AI interview tip generation failed, using fallback", "error", err.Error())
		return FallbackInterviewTips(input), nil, nil
	}
	return output, usage, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	if s.Provider == nil {
		return &ModelInfo{Name: "fallback", Available: true, DisplayName: "Deterministic fallback"}
	}
	return s.Provider.GetModelInfo(ctx)
}
