package server

import (
	"time"

	"careerpath/internal/config"
	apperrors "careerpath/internal/errors"
	"careerpath/internal/store"
)

// ScoreRequest represents the request body for the score endpoint
type ScoreRequest struct {
	ResumeText     string   `json:"resumeText"`
	Skills         []string `json:"skills,omitempty"`
	JobDescription string   `json:"jobDescription,omitempty"`
	Filename       string   `json:"filename,omitempty"`
	SessionID      string   `json:"sessionId,omitempty"`
}

// MatchRequest represents the request body for the match endpoint
type MatchRequest struct {
	ResumeText     string   `json:"resumeText"`
	Skills         []string `json:"skills,omitempty"`
	JobDescription string   `json:"jobDescription"`
	SessionID      string   `json:"sessionId,omitempty"`
}

// AnalyzeRequest represents the request body for the analyze endpoint.
// Document bytes are base64-encoded; the filename extension selects the
// extraction backend.
type AnalyzeRequest struct {
	Filename       string `json:"filename"`
	Content        string `json:"content"`
	JobDescription string `json:"jobDescription,omitempty"`
	SessionID      string `json:"sessionId,omitempty"`
}

// RoadmapRequest represents the request body for the roadmap endpoint
type RoadmapRequest struct {
	Skills         []string `json:"skills"`
	Experience     string   `json:"experience,omitempty"`
	TargetRole     string   `json:"targetRole,omitempty"`
	JobDescription string   `json:"jobDescription,omitempty"`
	SessionID      string   `json:"sessionId,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server carries everything the HTTP server needs to listen and handle
// requests: bind address, TLS and certificate management, authentication,
// rate limiting, and the history store.
type Server struct {
	Host    string
	Port    string
	Version string

	AppConfig *config.Config

	TLSConfig          config.TLSConfig
	CertificateManager *CertificateManager

	// Accepted API keys, keyed for O(1) lookup
	APIKeys map[string]bool

	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64

	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Store is nil when history persistence is disabled
	Store *store.Store

	Logger *apperrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer builds a Server from a ServerConfig. Empty API keys are
// ignored; the rate limiter is only constructed when rate limiting is
// enabled in the config.
func NewServer(appCfg *config.Config, cfg ServerConfig, st *store.Store, logger *apperrors.Logger) *Server {
	s := &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        make(map[string]bool, len(cfg.APIKeys)),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		Store:          st,
		Logger:         logger,
	}

	for _, key := range cfg.APIKeys {
		if key != "" {
			s.APIKeys[key] = true
		}
	}

	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		s.RateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return s
}
