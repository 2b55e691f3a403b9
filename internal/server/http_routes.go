package server

import (
	"net/http"

	"talentsift/internal/observability"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Add middleware layers with observability
	rateLimitHandler := s.createRateLimitMiddleware(om)
	requestLimitHandler := s.requestSizeLimitMiddleware()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)

	mux.HandleFunc("POST /parse",
		rateLimitHandler(requestLimitHandler(s.createParseHandler(om))))
	mux.HandleFunc("GET /candidates",
		rateLimitHandler(s.createListHandler(om)))
	mux.HandleFunc("POST /candidates",
		rateLimitHandler(requestLimitHandler(s.createUploadHandler(om))))
	mux.HandleFunc("GET /candidates/{id}",
		rateLimitHandler(s.createGetHandler(om)))
	mux.HandleFunc("DELETE /candidates/{id}",
		rateLimitHandler(s.createDeleteHandler(om)))
	mux.HandleFunc("POST /match",
		rateLimitHandler(requestLimitHandler(s.createMatchHandler(om))))
	mux.HandleFunc("DELETE /match",
		rateLimitHandler(s.createClearMatchHandler(om)))
	mux.HandleFunc("POST /analyze",
		rateLimitHandler(requestLimitHandler(s.createAnalyzeHandler(om))))
	mux.HandleFunc("POST /sections",
		rateLimitHandler(requestLimitHandler(s.createSectionsHandler(om))))
	mux.HandleFunc("GET /export.csv",
		rateLimitHandler(s.createExportHandler(om)))

	if handler := om.PrometheusHandler(); handler != nil {
		mux.Handle("GET "+om.PrometheusEndpoint(), handler)
	}

	return mux
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				// Limit the request body size
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}

			next(w, r)
		}
	}
}
