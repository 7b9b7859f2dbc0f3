package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"careerpath/internal/ai"
	"careerpath/internal/observability"
	"careerpath/internal/parser"
	"careerpath/internal/scoring"
	"careerpath/internal/store"
	"careerpath/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// ScoreResponse wraps a scoring result with the session it was stored under
type ScoreResponse struct {
	SessionID string          `json:"sessionId"`
	Result    types.ATSResult `json:"result"`
}

// MatchResponse wraps a match result with the session it was stored under
type MatchResponse struct {
	SessionID string            `json:"sessionId"`
	Result    types.MatchResult `json:"result"`
}

// AnalyzeResponse carries the parsed document summary alongside its score
type AnalyzeResponse struct {
	SessionID string            `json:"sessionId"`
	Skills    []string          `json:"skills"`
	WordCount int               `json:"wordCount"`
	Contact   types.ContactInfo `json:"contact"`
	Result    types.ATSResult   `json:"result"`
}

// RoadmapResponse wraps a roadmap with the session it was stored under
type RoadmapResponse struct {
	SessionID string              `json:"sessionId"`
	Result    types.RoadmapOutput `json:"result"`
}

// sessionOrNew returns the client-provided session ID or mints a fresh one
func sessionOrNew(sessionID string) string {
	if trimmed := strings.TrimSpace(sessionID); trimmed != "" {
		return trimmed
	}
	return store.NewSessionID()
}

// persistAnalysis stores a scoring result; storage failures never fail the request
func (s *Server) persistAnalysis(ctx context.Context, sessionID, filename string, result types.ATSResult) {
	if s.Store == nil {
		return
	}
	if _, err := s.Store.SaveAnalysis(ctx, sessionID, filename, result); err != nil {
		s.Logger.Warn("Failed to persist analysis", "session_id", sessionID, "error", err.Error())
	}
}

// persistMatch stores a match result; storage failures never fail the request
func (s *Server) persistMatch(ctx context.Context, sessionID, jobDescription string, result types.MatchResult) {
	if s.Store == nil {
		return
	}
	if _, err := s.Store.SaveMatch(ctx, sessionID, jobDescription, result); err != nil {
		s.Logger.Warn("Failed to persist match", "session_id", sessionID, "error", err.Error())
	}
}

// persistRoadmap stores a roadmap; storage failures never fail the request
func (s *Server) persistRoadmap(ctx context.Context, sessionID string, result types.RoadmapOutput) {
	if s.Store == nil {
		return
	}
	if _, err := s.Store.SaveRoadmap(ctx, sessionID, result); err != nil {
		s.Logger.Warn("Failed to persist roadmap", "session_id", sessionID, "error", err.Error())
	}
}

// createScoreHandler wraps the deterministic scoring engine with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerpath.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.skills_count", len(req.Skills)),
			attribute.Bool("request.has_job_description", strings.TrimSpace(req.JobDescription) != ""),
			attribute.String("operation", "score"),
		)

		result := scoring.ComputeATSScore(types.ScoreResumeInput{
			ResumeText:     req.ResumeText,
			Skills:         req.Skills,
			JobDescription: req.JobDescription,
		})

		sessionID := sessionOrNew(req.SessionID)
		s.persistAnalysis(ctx, sessionID, req.Filename, result)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
			attribute.Int("ats.score", result.TotalScore),
			attribute.String("ats.grade", result.Grade))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.TotalScore),
			attribute.String("ats.grade", result.Grade),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ScoreResponse{SessionID: sessionID, Result: result}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createMatchHandler wraps the job matcher with observability
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerpath.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "match"),
		)

		result := scoring.ComputeJobMatch(types.MatchJobInput{
			ResumeText:     req.ResumeText,
			Skills:         req.Skills,
			JobDescription: req.JobDescription,
		})

		sessionID := sessionOrNew(req.SessionID)
		s.persistMatch(ctx, sessionID, req.JobDescription, result)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "job_matched", true, om,
			attribute.Float64("match.overall", result.OverallMatch),
			attribute.String("match.level", result.MatchLevel))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("match.overall", result.OverallMatch),
			attribute.String("match.level", result.MatchLevel),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(MatchResponse{SessionID: sessionID, Result: result}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createAnalyzeHandler parses an uploaded document and scores the extracted text
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerpath.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Filename) == "" {
			err := fmt.Errorf("missing filename")
			span.RecordError(err)
			writeErrorResponse(w, "Missing filename", "filename field is required", http.StatusBadRequest)
			return
		}
		if req.Content == "" {
			err := fmt.Errorf("missing document content")
			span.RecordError(err)
			writeErrorResponse(w, "Missing document content", "content field is required (base64-encoded document bytes)", http.StatusBadRequest)
			return
		}

		data, err := base64.StdEncoding.DecodeString(req.Content)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid document content", "content must be base64-encoded", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.filename", req.Filename),
			attribute.Int("request.document_bytes", len(data)),
			attribute.String("operation", "analyze"),
		)

		metrics := om.GetMetrics()

		parsed, err := parser.ParseResume(data, req.Filename)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "parse"))
			metrics.RecordBusinessMetric(ctx, "document_parsed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to parse document", err.Error(), http.StatusUnprocessableEntity)
			return
		}
		metrics.RecordBusinessMetric(ctx, "document_parsed", true, om,
			attribute.Int("parsed.word_count", parsed.WordCount))

		result := scoring.ComputeATSScore(types.ScoreResumeInput{
			ResumeText:     parsed.RawText,
			Skills:         parsed.Skills,
			JobDescription: req.JobDescription,
		})

		sessionID := sessionOrNew(req.SessionID)
		s.persistAnalysis(ctx, sessionID, req.Filename, result)

		metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
			attribute.Int("ats.score", result.TotalScore),
			attribute.String("ats.grade", result.Grade))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("parsed.word_count", parsed.WordCount),
			attribute.Int("ats.score", result.TotalScore),
		)

		w.Header().Set("Content-Type", "application/json")
		response := AnalyzeResponse{
			SessionID: sessionID,
			Skills:    parsed.Skills,
			WordCount: parsed.WordCount,
			Contact:   parsed.Contact,
			Result:    result,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRoadmapHandler wraps the AI roadmap generator with observability
func (s *Server) createRoadmapHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerpath.api")
		ctx, span := tracer.Start(ctx, "api.roadmap")
		defer span.End()

		var req RoadmapRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if len(req.Skills) == 0 && strings.TrimSpace(req.TargetRole) == "" {
			err := fmt.Errorf("missing skills and target role")
			span.RecordError(err)
			writeErrorResponse(w, "Missing input", "at least one of skills or targetRole is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.skills_count", len(req.Skills)),
			attribute.String("request.target_role", req.TargetRole),
			attribute.String("operation", "roadmap"),
		)

		input := types.RoadmapInput{
			Skills:         req.Skills,
			Experience:     req.Experience,
			TargetRole:     req.TargetRole,
			JobDescription: req.JobDescription,
		}

		// Create AI service for roadmap operation
		roadmapConfig := s.AppConfig.GetRoadmapConfig()
		aiService, err := ai.NewService(&roadmapConfig, "roadmap", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		// Track AI operation with observability and token usage
		metrics := om.GetMetrics()
		var result types.RoadmapOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "roadmap", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.GenerateRoadmap(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "roadmap_generated", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to generate roadmap", err.Error(), http.StatusInternalServerError)
			return
		}

		sessionID := sessionOrNew(req.SessionID)
		s.persistRoadmap(ctx, sessionID, result)

		metrics.RecordBusinessMetric(ctx, "roadmap_generated", true, om,
			attribute.Bool("ai_generated", result.Generated),
			attribute.Int("steps_count", len(result.Steps)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("ai_generated", result.Generated),
			attribute.Int("steps_count", len(result.Steps)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(RoadmapResponse{SessionID: sessionID, Result: result}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
