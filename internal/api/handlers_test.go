package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"analyzer/internal/analyzer"
	"analyzer/internal/config"
	"analyzer/internal/domain"
	"analyzer/internal/fetch"
	"analyzer/internal/location"
	"analyzer/internal/monitoring"
	"analyzer/internal/reputation"
	"analyzer/internal/taxonomy"
	"analyzer/internal/website"

	"go.uber.org/zap"
)

// Prometheus collectors register globally, so the package shares one set.
var testMetrics = monitoring.NewMetrics()

func newTestServer(t *testing.T) *Server {
	t.Helper()
	tax, err := taxonomy.Load("")
	if err != nil {
		t.Fatalf("failed to load taxonomy: %v", err)
	}
	logger := zap.NewNop()
	fetcher := fetch.New(2*time.Second, 1024*1024, nil, logger)
	pipeline := analyzer.NewPipeline(
		fetcher,
		website.NewExtractor(tax, nil, logger),
		reputation.NewExtractor(nil, tax, logger),
		location.NewLookup(tax),
		nil, testMetrics, logger,
	)
	orchestrator := analyzer.NewOrchestrator(pipeline, 2, logger)
	cfg := &config.Config{ServerPort: "0"}
	return NewServer(cfg, pipeline, orchestrator, nil, nil, testMetrics, logger)
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/missing") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><head><title>Acme</title>
			<meta name="description" content="widgets"></head>
			<body><p>Climate action and renewable energy. ESG reporting.</p></body></html>`)
	}))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, s *Server, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestHandleAnalyzeInvalidJSON(t *testing.T) {
	s := newTestServer(t)
	rr := postJSON(t, s, s.handleAnalyze, `{"url": `)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHandleAnalyzeMissingURL(t *testing.T) {
	s := newTestServer(t)
	rr := postJSON(t, s, s.handleAnalyze, `{"company_name":"Acme"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp["error"] != "url or urls is required" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestHandleAnalyzeRejectsBadScheme(t *testing.T) {
	s := newTestServer(t)
	rr := postJSON(t, s, s.handleAnalyze, `{"url":"ftp://acme.example"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHandleAnalyzeSingle(t *testing.T) {
	backend := newBackend(t)
	s := newTestServer(t)

	body := fmt.Sprintf(`{"url":%q,"location":"Berlin, Germany"}`, backend.URL)
	rr := postJSON(t, s, s.handleAnalyze, body)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var result domain.AnalysisResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid result body: %v", err)
	}
	if result.URL != backend.URL {
		t.Errorf("url = %q, want %q", result.URL, backend.URL)
	}
	if result.Total < 0 || result.Total > 100 {
		t.Errorf("score = %d, out of range", result.Total)
	}
	if result.Summary == "" {
		t.Error("summary must not be empty")
	}
	if result.Raw.Website.Title != "Acme" {
		t.Errorf("raw title = %q, audit trail must carry extracted signals", result.Raw.Website.Title)
	}
}

func TestHandleAnalyzeSingleFetchFailure(t *testing.T) {
	backend := newBackend(t)
	s := newTestServer(t)

	body := fmt.Sprintf(`{"url":%q}`, backend.URL+"/missing")
	rr := postJSON(t, s, s.handleAnalyze, body)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}
	var failure domain.Failure
	if err := json.Unmarshal(rr.Body.Bytes(), &failure); err != nil {
		t.Fatalf("invalid failure body: %v", err)
	}
	if failure.URL != backend.URL+"/missing" {
		t.Errorf("failure url = %q", failure.URL)
	}
	if !strings.Contains(failure.Reason, "HTTP_4XX") {
		t.Errorf("failure reason = %q, want an HTTP_4XX classification", failure.Reason)
	}
}

func TestHandleAnalyzeBatchPartialFailure(t *testing.T) {
	backend := newBackend(t)
	s := newTestServer(t)

	body := fmt.Sprintf(`{"urls":[%q,%q]}`, backend.URL+"/ok", backend.URL+"/missing")
	rr := postJSON(t, s, s.handleAnalyze, body)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 on partial failure", rr.Code)
	}
	var payload []json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid batch body: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("entries = %d, want 2", len(payload))
	}

	var ok domain.AnalysisResult
	if err := json.Unmarshal(payload[0], &ok); err != nil || ok.Summary == "" {
		t.Errorf("entry 0 should be a full result, got %s", payload[0])
	}
	var failed domain.Failure
	if err := json.Unmarshal(payload[1], &failed); err != nil || failed.Reason == "" {
		t.Errorf("entry 1 should be a failure record, got %s", payload[1])
	}
	if failed.Reason != "HTTP_4XX" {
		t.Errorf("entry 1 reason = %q, want HTTP_4XX", failed.Reason)
	}
}

func TestHandleAnalyzeBatchAllFailed(t *testing.T) {
	backend := newBackend(t)
	s := newTestServer(t)

	body := fmt.Sprintf(`{"urls":[%q,%q]}`, backend.URL+"/missing/a", backend.URL+"/missing/b")
	rr := postJSON(t, s, s.handleAnalyze, body)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 when every entry failed", rr.Code)
	}
}

func TestHandleExportPDFEmpty(t *testing.T) {
	s := newTestServer(t)
	rr := postJSON(t, s, s.handleExportPDF, `{"results":[]}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty export", rr.Code)
	}
}

func TestHandleExportPDF(t *testing.T) {
	s := newTestServer(t)

	result := domain.AnalysisResult{
		URL:    "https://acme.example",
		Scores: domain.CategoryScores{Carbon: 85, Reputation: 50, Location: 80, Policy: 70},
		Total:  72,
		Highlights: []string{
			"Lightweight page with a low estimated carbon footprint",
		},
		Risks:   []string{"No negative press coverage reviewed"},
		Summary: "Overall moderate climate risk. Strongest signal: carbon.",
	}
	body, err := json.Marshal(ExportRequest{Results: []domain.AnalysisResult{result}})
	if err != nil {
		t.Fatal(err)
	}

	rr := postJSON(t, s, s.handleExportPDF, string(body))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "terratrust-report.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF document")
	}
}

func TestHandlePing(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	s.handlePing(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "pong" {
		t.Errorf("got %d %q, want 200 pong", rr.Code, rr.Body.String())
	}
}

func TestHandleHealthCheckStatelessMode(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.handleHealthCheck(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with stores disabled", rr.Code)
	}
	var status map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if status["postgres"] != "disabled" || status["redis"] != "disabled" {
		t.Errorf("status = %v, want both stores disabled", status)
	}
}
