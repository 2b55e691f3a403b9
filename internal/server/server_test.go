package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talentsift/internal/config"
	"talentsift/internal/errors"
	"talentsift/internal/lexicon"
	"talentsift/internal/observability"
	"talentsift/internal/store"
	"talentsift/internal/tracker"
	"talentsift/internal/types"

	"github.com/spf13/afero"
)

func newTestServer(t *testing.T, rateLimit *config.RateLimitConfig) (*Server, http.Handler) {
	t.Helper()

	logger, err := errors.New("error")
	if err != nil {
		t.Fatal(err)
	}
	st := store.New(afero.NewMemMapFs(), "candidates.json", logger)
	svc := tracker.New(lexicon.Default(), st, logger)

	srv := NewServer(nil, ServerConfig{
		Host:           "localhost",
		Port:           "0",
		Version:        "test",
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		IdleTimeout:    5 * time.Second,
		MaxRequestSize: 1 << 20,
		RateLimit:      rateLimit,
	}, svc, logger)
	if srv.RateLimiter != nil {
		t.Cleanup(srv.RateLimiter.Close)
	}

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false})
	if err != nil {
		t.Fatal(err)
	}
	return srv, srv.setupRoutes(om)
}

func jsonRequest(method, target string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

const testResume = "Jane Doe\njane@x.com\n(415) 555-0199\nSenior Data Engineer\n5+ years of Python and SQL\n"

func uploadCandidate(t *testing.T, mux http.Handler, content string) types.Candidate {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/candidates", ParseRequest{Content: content}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}
	var c types.Candidate
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestHealthEndpoint(t *testing.T) {
	_, mux := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v", body["status"])
	}
	storeInfo, ok := body["store"].(map[string]any)
	if !ok || storeInfo["healthy"] != true {
		t.Errorf("store = %v", body["store"])
	}
}

func TestStatsEndpointRateLimitDisabled(t *testing.T) {
	_, mux := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	rl, ok := body["rate_limiting"].(map[string]any)
	if !ok || rl["enabled"] != false {
		t.Errorf("rate_limiting = %v", body["rate_limiting"])
	}
}

func TestParseEndpoint(t *testing.T) {
	_, mux := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/parse", ParseRequest{Content: testResume}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var c types.Candidate
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatal(err)
	}
	if c.Name != "Jane Doe" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.Email != "jane@x.com" {
		t.Errorf("Email = %q", c.Email)
	}

	// Parse must not persist.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/candidates", nil))
	var list []types.Candidate
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("parse stored %d candidates", len(list))
	}
}

func TestParseEndpointValidation(t *testing.T) {
	_, mux := newTestServer(t, nil)

	tests := []struct {
		name    string
		request func() *http.Request
	}{
		{
			name: "wrong content type",
			request: func() *http.Request {
				return httptest.NewRequest("POST", "/parse", strings.NewReader("{}"))
			},
		},
		{
			name: "empty content",
			request: func() *http.Request {
				return jsonRequest("POST", "/parse", ParseRequest{Content: "   "})
			},
		},
		{
			name: "malformed json",
			request: func() *http.Request {
				req := httptest.NewRequest("POST", "/parse", strings.NewReader("{not json"))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, tt.request())
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var errResp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
				t.Fatal(err)
			}
			if errResp.Error == "" {
				t.Error("error response has no error field")
			}
		})
	}
}

func TestParseEndpointMultipart(t *testing.T) {
	_, mux := newTestServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "jane.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(testResume)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var c types.Candidate
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatal(err)
	}
	if c.FileName != "jane.txt" {
		t.Errorf("FileName = %q", c.FileName)
	}
}

func TestUploadGetDelete(t *testing.T) {
	_, mux := newTestServer(t, nil)
	c := uploadCandidate(t, mux, testResume)
	if c.ID == "" {
		t.Fatal("upload returned no ID")
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/candidates/"+c.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got types.Candidate
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Jane Doe" {
		t.Errorf("Name = %q", got.Name)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/candidates/"+c.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/candidates/"+c.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestListEndpointFilter(t *testing.T) {
	_, mux := newTestServer(t, nil)
	uploadCandidate(t, mux, testResume)
	uploadCandidate(t, mux, "Bob Smith\nbob@x.com\nJava developer\n")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/candidates?skill=java", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list []types.Candidate
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Bob Smith" {
		t.Errorf("filtered list = %+v", list)
	}
}

func TestMatchEndpoint(t *testing.T) {
	_, mux := newTestServer(t, nil)
	uploadCandidate(t, mux, testResume)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/match", MatchRequest{
		JobDescription: "Data Engineer\n\nRequired Skills:\nPython, SQL\n",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Analysis struct {
			Required []string `json:"requiredSkills"`
		} `json:"analysis"`
		Ranked []struct {
			Candidate types.Candidate `json:"candidate"`
			Result    struct {
				Score int `json:"score"`
			} `json:"result"`
		} `json:"ranked"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Analysis.Required) == 0 {
		t.Error("analysis has no required skills")
	}
	if len(body.Ranked) != 1 {
		t.Fatalf("ranked %d candidates, want 1", len(body.Ranked))
	}
	if body.Ranked[0].Result.Score <= 0 {
		t.Errorf("score = %d", body.Ranked[0].Result.Score)
	}
}

func TestMatchEndpointMissingJD(t *testing.T) {
	_, mux := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/match", MatchRequest{JobDescription: "  "}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestClearMatchEndpoint(t *testing.T) {
	_, mux := newTestServer(t, nil)
	c := uploadCandidate(t, mux, testResume)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/match", MatchRequest{
		JobDescription: "Data Engineer\n\nRequired Skills:\nPython, SQL\n",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("match status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/match", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/candidates/"+c.ID, nil))
	var got types.Candidate
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.HasMatch() {
		t.Error("candidate still has match fields after clear")
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	_, mux := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/analyze", AnalyzeRequest{
		JobDescription: "Senior Data Engineer\n\nRequired Skills:\nPython, SQL, AWS\n",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var analysis struct {
		Title    string   `json:"jdTitle"`
		Required []string `json:"requiredSkills"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &analysis); err != nil {
		t.Fatal(err)
	}
	if analysis.Title == "" {
		t.Error("no title extracted")
	}
	if len(analysis.Required) != 3 {
		t.Errorf("required = %v", analysis.Required)
	}
}

func TestSectionsEndpoint(t *testing.T) {
	_, mux := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/sections", SectionsRequest{
		Content: "EXPERIENCE\n- Built pipelines\n",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var lines []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &lines); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Errorf("got %d lines", len(lines))
	}
}

func TestSectionsEndpointByCandidateID(t *testing.T) {
	_, mux := newTestServer(t, nil)
	c := uploadCandidate(t, mux, testResume)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/sections", SectionsRequest{CandidateID: c.ID}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/sections", SectionsRequest{CandidateID: "missing"}))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown candidate status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/sections", SectionsRequest{}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty request status = %d, want 400", rec.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	_, mux := newTestServer(t, nil)
	uploadCandidate(t, mux, testResume)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/export.csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "candidates.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "Jane Doe") {
		t.Errorf("CSV body:\n%s", rec.Body.String())
	}
}

func TestRequestSizeLimit(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	srv.MaxRequestSize = 64

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false})
	if err != nil {
		t.Fatal(err)
	}
	mux := srv.setupRoutes(om)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/parse", ParseRequest{
		Content: strings.Repeat("x", 1024),
	}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "too large") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRateLimitExceeded(t *testing.T) {
	_, mux := newTestServer(t, &config.RateLimitConfig{
		Enabled:        true,
		RequestsPerMin: 60,
		BurstCapacity:  1,
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/candidates", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/candidates", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}
}

func TestSwapServiceChangesLexicon(t *testing.T) {
	srv, mux := newTestServer(t, nil)
	uploadCandidate(t, mux, "Jane Doe\njane@x.com\nExpert in quantumscript\n")

	custom := lexicon.New(lexicon.Data{
		Skills:     []string{"quantumscript"},
		TitleRoles: []string{"engineer"},
	})
	srv.SwapService(srv.Service().WithLexicon(custom))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/parse", ParseRequest{
		Content: "Jane Doe\njane@x.com\nExpert in quantumscript\n",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var c types.Candidate
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(c.Skills, "quantumscript") {
		t.Errorf("Skills = %q, want the swapped lexicon to apply", c.Skills)
	}

	// Stored candidates survive the swap.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/candidates", nil))
	var list []types.Candidate
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("stored candidates after swap = %d", len(list))
	}
}
