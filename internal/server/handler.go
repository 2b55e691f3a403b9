package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"talentsift/internal/export"
	"talentsift/internal/observability"
	"talentsift/internal/sections"
	"talentsift/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createParseHandler wraps the parse handler with observability. Parse
// decodes and extracts a resume without persisting it; POST /candidates
// is the persisting variant.
func (s *Server) createParseHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("talentsift.api")
		ctx, span := tracer.Start(ctx, "api.parse")
		defer span.End()

		data, fileName, err := readResumePayload(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.file_size", len(data)),
			attribute.String("request.file_name", fileName),
			attribute.String("operation", "parse"),
		)

		metrics := om.GetMetrics()
		candidate, err := s.Service().ParseBytes(data, fileName)
		metrics.RecordPipelineMetric(ctx, "resume_parsed", err == nil,
			attribute.String("file_name", fileName))
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "parse"))
			writeErrorResponse(w, "Failed to parse resume", err.Error(), http.StatusUnprocessableEntity)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.skill_count", len(candidate.SkillList())),
		)

		writeJSON(w, candidate)
	}
}

// createUploadHandler parses a resume and persists the candidate.
func (s *Server) createUploadHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("talentsift.api")
		ctx, span := tracer.Start(ctx, "api.upload")
		defer span.End()

		data, fileName, err := readResumePayload(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.file_size", len(data)),
			attribute.String("request.file_name", fileName),
			attribute.String("operation", "upload"),
		)

		metrics := om.GetMetrics()
		candidate, err := s.Service().IngestBytes(data, fileName)
		metrics.RecordPipelineMetric(ctx, "resume_parsed", err == nil,
			attribute.String("file_name", fileName))
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "parse"))
			writeErrorResponse(w, "Failed to ingest resume", err.Error(), http.StatusUnprocessableEntity)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("candidate.id", candidate.ID),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		writeJSONBody(w, candidate)
	}
}

// createListHandler returns stored candidates, filtered by the name,
// email, and skill query parameters.
func (s *Server) createListHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer("talentsift.api").Start(r.Context(), "api.list")
		defer span.End()

		filter := types.Filter{
			Name:  r.URL.Query().Get("name"),
			Email: r.URL.Query().Get("email"),
			Skill: r.URL.Query().Get("skill"),
		}

		candidates, err := s.Service().List(filter)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to list candidates", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(attribute.Int("response.count", len(candidates)))
		writeJSON(w, candidates)
	}
}

// createGetHandler returns one stored candidate by ID.
func (s *Server) createGetHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer("talentsift.api").Start(r.Context(), "api.get")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("candidate.id", id))

		candidate, err := s.Service().Get(id)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Candidate not found", err.Error(), http.StatusNotFound)
			return
		}

		writeJSON(w, candidate)
	}
}

// createDeleteHandler removes one stored candidate by ID.
func (s *Server) createDeleteHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer("talentsift.api").Start(r.Context(), "api.delete")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("candidate.id", id))

		if err := s.Service().Delete(id); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Candidate not found", err.Error(), http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// createMatchHandler scores every stored candidate against the posted
// job description and returns the ranked list.
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("talentsift.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "match"),
		)

		metrics := om.GetMetrics()
		analysis, ranked, err := s.Service().ApplyJD(req.JobDescription)
		metrics.RecordPipelineMetric(ctx, "match_run", err == nil)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to match candidates", err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.RecordCandidatesScored(ctx, len(ranked))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.candidates_scored", len(ranked)),
		)

		writeJSON(w, map[string]any{
			"analysis": analysis,
			"ranked":   ranked,
		})
	}
}

// createClearMatchHandler removes match fields from every stored
// candidate.
func (s *Server) createClearMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer("talentsift.api").Start(r.Context(), "api.clear_match")
		defer span.End()

		if err := s.Service().ClearJD(); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to clear match results", err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// createAnalyzeHandler runs JD analysis without touching the store.
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("talentsift.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "analyze"),
		)

		analysis := s.Service().AnalyzeJD(req.JobDescription)
		om.GetMetrics().RecordPipelineMetric(ctx, "job_analyzed", !analysis.IsEmpty())

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.skill_count", len(analysis.All)),
		)

		writeJSON(w, analysis)
	}
}

// createSectionsHandler classifies resume lines for a stored candidate
// or inline text.
func (s *Server) createSectionsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer("talentsift.api").Start(r.Context(), "api.sections")
		defer span.End()

		var req SectionsRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		content := req.Content
		if content == "" && req.CandidateID != "" {
			candidate, err := s.Service().Get(req.CandidateID)
			if err != nil {
				span.RecordError(err)
				writeErrorResponse(w, "Candidate not found", err.Error(), http.StatusNotFound)
				return
			}
			content = candidate.Content
		}
		if strings.TrimSpace(content) == "" {
			err := fmt.Errorf("missing resume content")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume content", "content or candidateId is required", http.StatusBadRequest)
			return
		}

		lines := sections.Classify(content)
		span.SetAttributes(attribute.Int("response.line_count", len(lines)))
		writeJSON(w, lines)
	}
}

// createExportHandler streams stored candidates as a CSV download.
func (s *Server) createExportHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer("talentsift.api").Start(r.Context(), "api.export")
		defer span.End()

		filter := types.Filter{
			Name:  r.URL.Query().Get("name"),
			Email: r.URL.Query().Get("email"),
			Skill: r.URL.Query().Get("skill"),
		}

		candidates, err := s.Service().List(filter)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to list candidates", err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="candidates.csv"`)
		if err := export.WriteCSV(w, candidates); err != nil {
			span.RecordError(err)
			s.Logger.LogError(err, "Failed to write CSV export")
			return
		}

		span.SetAttributes(attribute.Int("response.count", len(candidates)))
	}
}

// readResumePayload extracts resume bytes from a request: multipart form
// uploads use the "file" field, JSON bodies carry inline content.
func readResumePayload(r *http.Request) ([]byte, string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("missing file field: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return data, header.Filename, nil
	}

	var req ParseRequest
	if err := parseJSONRequest(r, &req); err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, "", fmt.Errorf("content field is required")
	}
	fileName := req.FileName
	if fileName == "" {
		fileName = "resume.txt"
	}
	return []byte(req.Content), fileName, nil
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				om.GetMetrics().RecordPipelineMetric(r.Context(), "rate_limit_hit", true,
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
