package ai

import (
	"context"

	"careerpath/internal/types"
)

// AIProvider interface for different AI implementations.
// All methods return token usage information - callers can ignore it if not needed.
type AIProvider interface {
	GenerateRoadmap(ctx context.Context, input types.RoadmapInput) (types.RoadmapOutput, *TokenUsage, error)
	AnalyzeResume(ctx context.Context, input types.InsightsInput) (types.InsightsOutput, *TokenUsage, error)
	GenerateInterviewTips(ctx context.Context, input types.InterviewInput) (types.InterviewTipsOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
