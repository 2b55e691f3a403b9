package server

import (
	"fmt"

	"talentsift/internal/observability"
)

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo(om *observability.ObservabilityManager) {
	s.displayEndpoints()
	s.displayMetricsInfo(om)
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET    /health           - Health check")
	fmt.Println("  GET    /stats            - Server statistics")
	fmt.Println("  POST   /parse            - Parse a resume without storing it")
	fmt.Println("  GET    /candidates       - List stored candidates")
	fmt.Println("  POST   /candidates       - Parse and store a resume")
	fmt.Println("  GET    /candidates/{id}  - Get one candidate")
	fmt.Println("  DELETE /candidates/{id}  - Delete one candidate")
	fmt.Println("  POST   /match            - Score all candidates against a JD")
	fmt.Println("  DELETE /match            - Clear stored match results")
	fmt.Println("  POST   /analyze          - Analyze a job description")
	fmt.Println("  POST   /sections         - Classify resume lines into sections")
	fmt.Println("  GET    /export.csv       - Download candidates as CSV")
}

// displayMetricsInfo shows the Prometheus endpoint when enabled
func (s *Server) displayMetricsInfo(om *observability.ObservabilityManager) {
	if om.PrometheusHandler() != nil {
		fmt.Printf("Metrics: ENABLED at %s\n", om.PrometheusEndpoint())
	} else {
		fmt.Println("Metrics: DISABLED")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d, per client IP)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
	} else {
		fmt.Println("Rate limiting: DISABLED")
	}
}
