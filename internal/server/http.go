package server

import (
	"sync/atomic"
	"time"

	"talentsift/internal/config"
	apperrors "talentsift/internal/errors"
	"talentsift/internal/tracker"
)

// MatchRequest is the request body for the match endpoint.
type MatchRequest struct {
	JobDescription string `json:"jobDescription"`
}

// AnalyzeRequest is the request body for the analyze endpoint.
type AnalyzeRequest struct {
	JobDescription string `json:"jobDescription"`
}

// ParseRequest is the JSON request body for the parse and sections
// endpoints; file uploads use multipart form data instead.
type ParseRequest struct {
	Content  string `json:"content"`
	FileName string `json:"fileName"`
}

// SectionsRequest selects a resume for line classification: inline text
// or the ID of a stored candidate.
type SectionsRequest struct {
	Content     string `json:"content"`
	CandidateID string `json:"candidateId"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// svc is the live pipeline service; the lexicon watcher swaps it
	// when the overrides file changes.
	svc atomic.Pointer[tracker.Service]

	// Logger
	Logger *apperrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, svc *tracker.Service, logger *apperrors.Logger) *Server {
	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	s := &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
	s.svc.Store(svc)
	return s
}

// Service returns the current pipeline service.
func (s *Server) Service() *tracker.Service {
	return s.svc.Load()
}

// SwapService atomically replaces the pipeline service. In-flight
// requests keep the instance they already loaded.
func (s *Server) SwapService(svc *tracker.Service) {
	s.svc.Store(svc)
}
