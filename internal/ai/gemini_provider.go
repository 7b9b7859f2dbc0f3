package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"careerpath/internal/config"
	apperrors "careerpath/internal/errors"
	"careerpath/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// Prompt input limits carried over from the original prompt design
const (
	maxPromptSkills     = 20
	maxInsightSkills    = 15
	maxExperienceChars  = 500
	maxJobPromptChars   = 800
	maxResumePromptLen  = 1500
	maxInterviewJobLen  = 1000
	notSpecifiedMessage = "Not specified"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *apperrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *apperrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		circuitBreaker: NewAICircuitBreaker(operationType, cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(operationType, cfg, logger),
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	modelInfo.DisplayName = model.DisplayName
	modelInfo.Version = model.Version

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Network errors (timeouts, connection issues) are retryable
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Google API errors with transient HTTP status codes
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// executeAIOperation is a generic helper to run AI operations with common tracing, circuit breaker, and parsing logic.
func executeAIOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	tracer := otel.Tracer("careerpath.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, apperrors.NewAIError("AI_RESPONSE_PARSE_FAILED", "Failed to parse AI response for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return output, tokenUsage, nil
}

// GenerateRoadmap implements AIProvider interface for career roadmap generation
func (g *GeminiProvider) GenerateRoadmap(ctx context.Context, input types.RoadmapInput) (types.RoadmapOutput, *TokenUsage, error) {
	systemPrompt, userPrompt := g.buildRoadmapPrompts(input)
	genaiConfig := g.buildRoadmapSchema()

	output, tokenUsage, err := executeAIOperation[types.RoadmapOutput](
		g,
		ctx,
		"generate_roadmap",
		userPrompt,
		systemPrompt,
		genaiConfig,
		attribute.Int("input.skill_count", len(input.Skills)),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)

	if err != nil {
		return types.RoadmapOutput{}, nil, err
	}

	output.Generated = true
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.step_count", len(output.Steps)),
			attribute.String("output.target_role", output.TargetRole),
		)
	}

	return output, tokenUsage, nil
}

// AnalyzeResume implements AIProvider interface for qualitative resume feedback
func (g *GeminiProvider) AnalyzeResume(ctx context.Context, input types.InsightsInput) (types.InsightsOutput, *TokenUsage, error) {
	systemPrompt, userPrompt := g.buildInsightsPrompts(input)
	genaiConfig := g.buildInsightsSchema()

	output, tokenUsage, err := executeAIOperation[types.InsightsOutput](
		g,
		ctx,
		"analyze_resume",
		userPrompt,
		systemPrompt,
		genaiConfig,
		attribute.Int("input.resume_length", len(input.ResumeText)),
		attribute.Int("input.skill_count", len(input.Skills)),
	)

	if err != nil {
		return types.InsightsOutput{}, nil, err
	}

	output.Generated = true
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.tip_count", len(output.ImprovementTips)),
		)
	}

	return output, tokenUsage, nil
}

// GenerateInterviewTips implements AIProvider interface for interview preparation
func (g *GeminiProvider) GenerateInterviewTips(ctx context.Context, input types.InterviewInput) (types.InterviewTipsOutput, *TokenUsage, error) {
	systemPrompt, userPrompt := g.buildInterviewPrompts(input)
	genaiConfig := g.buildInterviewSchema()

	output, tokenUsage, err := executeAIOperation[types.InterviewTipsOutput](
		g,
		ctx,
		"generate_interview_tips",
		userPrompt,
		systemPrompt,
		genaiConfig,
		attribute.Int("input.job_length", len(input.JobDescription)),
		attribute.Int("input.skill_count", len(input.Skills)),
	)

	if err != nil {
		return types.InterviewTipsOutput{}, nil, err
	}

	output.Generated = true
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.question_count", len(output.PotentialQuestions)),
		)
	}

	return output, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	stats["overall_healthy"] = g.circuitBreaker.IsHealthy() && g.modelBreaker.IsModelHealthy()

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// buildRoadmapPrompts returns system and user prompts for roadmap generation
func (g *GeminiProvider) buildRoadmapPrompts(input types.RoadmapInput) (string, string) {
	systemPrompt := g.getSystemPrompt("roadmap")
	userPrompt := g.getUserPrompt("roadmap")

	skills := joinSkills(input.Skills, maxPromptSkills)
	experience := truncateOrDefault(input.Experience, maxExperienceChars, "Not provided")
	targetRole := input.TargetRole
	if targetRole == "" {
		targetRole = "Next career advancement"
	}
	jobDescription := truncateOrDefault(input.JobDescription, maxJobPromptChars, notSpecifiedMessage)

	return systemPrompt, fmt.Sprintf(userPrompt, skills, experience, targetRole, jobDescription)
}

// buildInsightsPrompts returns system and user prompts for resume analysis
func (g *GeminiProvider) buildInsightsPrompts(input types.InsightsInput) (string, string) {
	systemPrompt := g.getSystemPrompt("insights")
	userPrompt := g.getUserPrompt("insights")

	resumeText := truncateOrDefault(input.ResumeText, maxResumePromptLen, "Not provided")
	skills := joinSkillsOrDefault(input.Skills, maxInsightSkills, "None detected")

	return systemPrompt, fmt.Sprintf(userPrompt, resumeText, skills)
}

// buildInterviewPrompts returns system and user prompts for interview preparation
func (g *GeminiProvider) buildInterviewPrompts(input types.InterviewInput) (string, string) {
	systemPrompt := g.getSystemPrompt("interview")
	userPrompt := g.getUserPrompt("interview")

	jobDescription := truncateOrDefault(input.JobDescription, maxInterviewJobLen, notSpecifiedMessage)
	skills := joinSkillsOrDefault(input.Skills, maxInsightSkills, "General skills")

	return systemPrompt, fmt.Sprintf(userPrompt, jobDescription, skills)
}

// getSystemPrompt returns the appropriate system prompt
func (g *GeminiProvider) getSystemPrompt(promptType string) string {
	loaded := config.GetPromptsForOperation(promptType)
	configured := g.config.CustomPrompts.SystemPrompts

	switch promptType {
	case "roadmap":
		return resolvePrompt(loaded.SystemPrompts.Roadmap, configured.Roadmap, DefaultSystemPrompts.Roadmap)
	case "insights":
		return resolvePrompt(loaded.SystemPrompts.Insights, configured.Insights, DefaultSystemPrompts.Insights)
	case "interview":
		return resolvePrompt(loaded.SystemPrompts.Interview, configured.Interview, DefaultSystemPrompts.Interview)
	default:
		return ""
	}
}

// getUserPrompt returns the appropriate user prompt template
func (g *GeminiProvider) getUserPrompt(promptType string) string {
	loaded := config.GetPromptsForOperation(promptType)
	configured := g.config.CustomPrompts.UserPrompts

	switch promptType {
	case "roadmap":
		return resolvePrompt(loaded.UserPrompts.Roadmap, configured.Roadmap, DefaultUserPrompts.Roadmap)
	case "insights":
		return resolvePrompt(loaded.UserPrompts.Insights, configured.Insights, DefaultUserPrompts.Insights)
	case "interview":
		return resolvePrompt(loaded.UserPrompts.Interview, configured.Interview, DefaultUserPrompts.Interview)
	default:
		return ""
	}
}

// resolvePrompt selects the correct prompt string based on priority:
// file-loaded content, then configuration, then the built-in default.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}

// joinSkills joins up to limit skills with commas
func joinSkills(skills []string, limit int) string {
	return joinSkillsOrDefault(skills, limit, notSpecifiedMessage)
}

func joinSkillsOrDefault(skills []string, limit int, fallback string) string {
	if len(skills) == 0 {
		return fallback
	}
	if len(skills) > limit {
		skills = skills[:limit]
	}
	return strings.Join(skills, ", ")
}

// truncateOrDefault limits prompt input length, substituting fallback for empty text
func truncateOrDefault(s string, limit int, fallback string) string {
	if s == "" {
		return fallback
	}
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

// applyTemperature copies the configured temperature onto a request config
func (g *GeminiProvider) applyTemperature(cfg *genai.GenerateContentConfig) *genai.GenerateContentConfig {
	if *g.config.Temperature > 0 {
		cfg.Temperature = g.config.Temperature
	}
	return cfg
}

func stringArraySchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

// buildRoadmapSchema creates the response schema for roadmap requests
func (g *GeminiProvider) buildRoadmapSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"currentLevel": {Type: genai.TypeString},
				"targetRole":   {Type: genai.TypeString},
				"timeline":     {Type: genai.TypeString},
				"roadmapSteps": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"step":          {Type: genai.TypeInteger},
							"title":         {Type: genai.TypeString},
							"description":   {Type: genai.TypeString},
							"duration":      {Type: genai.TypeString},
							"skillsToLearn": stringArraySchema(),
							"resources":     stringArraySchema(),
						},
						Required: []string{"step", "title", "description", "duration", "skillsToLearn", "resources"},
					},
				},
				"portfolioIdeas": stringArraySchema(),
				"learningResources": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":  {Type: genai.TypeString},
							"type":  {Type: genai.TypeString},
							"focus": {Type: genai.TypeString},
						},
						Required: []string{"name", "type", "focus"},
					},
				},
				"nextRoles":          stringArraySchema(),
				"keySkillsToDevelop": stringArraySchema(),
				"salaryInsights":     {Type: genai.TypeString},
			},
			Required: []string{"currentLevel", "targetRole", "timeline", "roadmapSteps", "portfolioIdeas", "learningResources", "nextRoles", "keySkillsToDevelop", "salaryInsights"},
		},
	})
}

// buildInsightsSchema creates the response schema for resume analysis requests
func (g *GeminiProvider) buildInsightsSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"overallAssessment": {Type: genai.TypeString},
				"strengths":         stringArraySchema(),
				"weaknesses":        stringArraySchema(),
				"improvementTips": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"area":       {Type: genai.TypeString},
							"suggestion": {Type: genai.TypeString},
							"priority":   {Type: genai.TypeString},
						},
						Required: []string{"area", "suggestion", "priority"},
					},
				},
				"missingSkills":       stringArraySchema(),
				"industryFit":         stringArraySchema(),
				"roleRecommendations": stringArraySchema(),
			},
			Required: []string{"overallAssessment", "strengths", "weaknesses", "improvementTips", "missingSkills", "industryFit", "roleRecommendations"},
		},
	})
}

// buildInterviewSchema creates the response schema for interview tip requests
func (g *GeminiProvider) buildInterviewSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"keyTopics": stringArraySchema(),
				"potentialQuestions": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"question": {Type: genai.TypeString},
							"tip":      {Type: genai.TypeString},
						},
						Required: []string{"question", "tip"},
					},
				},
				"skillsToHighlight":   stringArraySchema(),
				"companyResearchTips": stringArraySchema(),
				"questionsToAsk":      stringArraySchema(),
			},
			Required: []string{"keyTopics", "potentialQuestions", "skillsToHighlight", "companyResearchTips", "questionsToAsk"},
		},
	})
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
