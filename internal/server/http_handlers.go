package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"careerpath/internal/ai"
	"careerpath/internal/config"
	"careerpath/internal/store"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a comprehensive health check endpoint including AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "careerpath",
		"version": s.Version,
	}

	// Check AI model availability for all operations
	aiStatus := s.checkAIModelsHealth()
	response["ai_models"] = aiStatus

	// Check circuit breaker status
	circuitBreakerStatus := s.checkCircuitBreakerHealth()
	response["circuit_breakers"] = circuitBreakerStatus

	// Storage availability
	response["storage"] = map[string]any{
		"enabled": s.Store != nil,
	}

	// Check certificate status if certificate manager is available
	certStatus := s.checkCertificateHealth()
	if certStatus != nil {
		response["certificates"] = certStatus
	}

	// Determine overall health status
	overallHealthy := true
	for _, modelStatus := range aiStatus {
		switch info := modelStatus.(type) {
		case *ai.ModelInfo:
			if info != nil && !info.Available {
				overallHealthy = false
			}
		case map[string]any:
			if available, exists := info["available"]; exists {
				if avail, ok := available.(bool); ok && !avail {
					overallHealthy = false
				}
			}
		}
		if !overallHealthy {
			break
		}
	}

	// Check certificate health
	if certStatus != nil {
		if healthy, exists := certStatus["healthy"]; exists {
			if certHealthy, ok := healthy.(bool); ok && !certHealthy {
				overallHealthy = false
			}
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// aiOperationConfigs lists every AI-backed operation with its effective
// service configuration
func (s *Server) aiOperationConfigs() []struct {
	name string
	cfg  config.OperationAIConfig
} {
	return []struct {
		name string
		cfg  config.OperationAIConfig
	}{
		{"roadmap", s.AppConfig.GetRoadmapConfig()},
		{"insights", s.AppConfig.GetInsightsConfig()},
		{"interview", s.AppConfig.GetInterviewConfig()},
	}
}

// checkAIModelsHealth probes model availability for every AI operation
func (s *Server) checkAIModelsHealth() map[string]any {
	ctx, cancel := context.WithTimeout(context.Background(), s.getHealthCheckTimeout())
	defer cancel()

	aiStatus := make(map[string]any)
	for _, op := range s.aiOperationConfigs() {
		svc, err := ai.NewService(&op.cfg, op.name, s.Logger)
		if err != nil {
			aiStatus[op.name] = map[string]any{
				"available": false,
				"error":     fmt.Sprintf("Failed to create %s service: %v", op.name, err),
			}
			continue
		}
		aiStatus[op.name] = svc.GetModelInfo(ctx)
	}

	return aiStatus
}

// checkCircuitBreakerHealth reports breaker availability per AI operation
func (s *Server) checkCircuitBreakerHealth() map[string]any {
	circuitBreakerStatus := make(map[string]any)
	for _, op := range s.aiOperationConfigs() {
		if _, err := ai.NewService(&op.cfg, op.name, s.Logger); err != nil {
			circuitBreakerStatus[op.name] = map[string]any{
				"available": false,
				"error":     fmt.Sprintf("Failed to create %s service: %v", op.name, err),
			}
			continue
		}
		circuitBreakerStatus[op.name] = map[string]any{
			"available": true,
			"message":   fmt.Sprintf("Circuit breaker integrated with %s service", op.name),
		}
	}

	return circuitBreakerStatus
}

// checkCertificateHealth reports expiry, watcher and reload state for the
// loaded TLS certificates. Under 24 hours to expiry counts as unhealthy,
// under 7 days as a warning.
func (s *Server) checkCertificateHealth() map[string]any {
	cm := s.CertificateManager
	if cm == nil {
		return nil
	}

	timeToExpiry, err := cm.CheckExpiry()
	if err != nil {
		return map[string]any{
			"healthy": false,
			"error":   fmt.Sprintf("Failed to check certificate expiry: %v", err),
		}
	}

	certStatus := map[string]any{
		"time_to_expiry_hours": int(timeToExpiry.Hours()),
		"time_to_expiry":       timeToExpiry.String(),
	}

	var healthy bool
	var state, message string
	switch {
	case timeToExpiry <= 0:
		healthy, state, message = false, "expired", "Certificate has expired"
	case timeToExpiry <= 24*time.Hour:
		healthy, state, message = false, "critical", "Certificate expires within 24 hours"
	case timeToExpiry <= 7*24*time.Hour:
		healthy, state, message = true, "warning", "Certificate expires within 7 days"
	default:
		healthy, state, message = true, "ok", "Certificate is valid"
	}
	certStatus["healthy"] = healthy
	certStatus["status"] = state
	certStatus["message"] = message

	if !s.TLSConfig.AutoReload.Enabled {
		certStatus["auto_reload"] = map[string]any{"enabled": false}
	} else {
		autoReload := map[string]any{
			"enabled":               true,
			"file_watcher_enabled":  s.TLSConfig.AutoReload.FileWatcher.Enabled,
			"vault_watcher_enabled": s.TLSConfig.AutoReload.VaultWatcher.Enabled,
		}
		if cm.fileWatcher != nil {
			autoReload["file_watcher_running"] = cm.fileWatcher.IsRunning()
			autoReload["watched_files"] = cm.fileWatcher.GetWatchedFiles()
		}
		if cm.vaultWatcher != nil {
			autoReload["vault_watcher_status"] = cm.vaultWatcher.Status()
		}
		certStatus["auto_reload"] = autoReload
	}

	if metrics := cm.GetMetrics(); metrics != nil {
		certStatus["metrics"] = map[string]any{
			"reload_count":         metrics.ReloadCount,
			"reload_success_count": metrics.ReloadSuccessCount,
			"reload_failure_count": metrics.ReloadFailureCount,
			"last_reload_time":     metrics.LastReloadTime,
			"last_reload_success":  metrics.LastReloadSuccess,
			"last_reload_error":    metrics.LastReloadError,
		}
	}

	return certStatus
}

// statsHandler provides server statistics including rate limiting and history info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "careerpath",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	// Add history stats if storage is enabled
	if s.Store != nil {
		if stats, err := s.Store.Stats(r.Context()); err == nil {
			response["history"] = stats
		} else {
			s.Logger.Warn("Failed to read history stats", "error", err.Error())
			response["history"] = map[string]any{"error": "unavailable"}
		}
	} else {
		response["history"] = map[string]any{"enabled": false}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// HistoryResponse bundles the recent records stored for a session
type HistoryResponse struct {
	SessionID string                 `json:"sessionId"`
	Analyses  []store.AnalysisRecord `json:"analyses"`
	Matches   []store.MatchRecord    `json:"matches"`
	Roadmaps  []store.RoadmapRecord  `json:"roadmaps"`
}

// historyHandler returns the most recent stored results for a session.
// A disabled store yields an empty history rather than an error.
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := strings.TrimSpace(r.URL.Query().Get("session"))
	if sessionID == "" {
		writeErrorResponse(w, "Missing session", "session query parameter is required", http.StatusBadRequest)
		return
	}

	response := HistoryResponse{
		SessionID: sessionID,
		Analyses:  []store.AnalysisRecord{},
		Matches:   []store.MatchRecord{},
		Roadmaps:  []store.RoadmapRecord{},
	}

	if s.Store != nil {
		ctx := r.Context()

		if analyses, err := s.Store.RecentAnalyses(ctx, sessionID, store.DefaultHistoryLimit); err == nil {
			response.Analyses = analyses
		} else {
			s.Logger.Warn("Failed to read analysis history", "session_id", sessionID, "error", err.Error())
		}

		if matches, err := s.Store.RecentMatches(ctx, sessionID, store.DefaultHistoryLimit); err == nil {
			response.Matches = matches
		} else {
			s.Logger.Warn("Failed to read match history", "session_id", sessionID, "error", err.Error())
		}

		if roadmaps, err := s.Store.RecentRoadmaps(ctx, sessionID, store.DefaultHistoryLimit); err == nil {
			response.Roadmaps = roadmaps
		} else {
			s.Logger.Warn("Failed to read roadmap history", "session_id", sessionID, "error", err.Error())
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode history response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest decodes the request body into v, surfacing the
// MaxBytesReader limit as a readable error
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// writeErrorResponse emits a JSON ErrorResponse with the given status
func writeErrorResponse(w http.ResponseWriter, errText, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: errText, Message: message}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
