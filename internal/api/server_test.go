package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdallahossam66/GRC-PROJECT/internal/industry"
	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
	"github.com/abdallahossam66/GRC-PROJECT/internal/narrative"
	"github.com/abdallahossam66/GRC-PROJECT/internal/report"
	"github.com/abdallahossam66/GRC-PROJECT/internal/resilience"
)

type cannedProvider struct{}

func (cannedProvider) Name() string { return "canned" }

func (cannedProvider) Complete(_ context.Context, p narrative.Prompt) (narrative.Completion, error) {
	text := map[string]string{
		narrative.SectionExecutiveSummary:  "# Executive Summary\n\nFrom the model.",
		narrative.SectionComplianceRoadmap: "# Roadmap\n\nFrom the model.",
		narrative.SectionRecommendations:   `{"recommendations": [{"title": "Write an IR plan", "category": "Risk Management", "priority": "High", "steps": ["Draft"]}]}`,
		narrative.SectionQuantifiedRisks:   `[{"risk": "Cloud Misconfiguration", "sle": 1000, "aro": 0.5, "ale": 500}]`,
	}[p.Section]
	return narrative.Completion{Text: text, Usage: model.TokenUsage{InputTokens: 10, OutputTokens: 5}}, nil
}

func (cannedProvider) Status(context.Context) narrative.Status {
	return narrative.Status{Provider: "canned", Model: "test", Ready: true}
}

func newTestRouter(t *testing.T, withLLM bool) http.Handler {
	t.Helper()
	var gen *narrative.Generator
	if withLLM {
		gen = narrative.NewGenerator(cannedProvider{}, narrative.Options{
			Timeout: time.Second,
			Retry:   resilience.Policy{Attempts: 1},
		})
	}
	tables := industry.Builtin()
	s := NewServer(report.NewAssembler(tables, gen), tables, Options{
		CORSOrigins:    []string{"*"},
		RequestTimeout: 5 * time.Second,
	})
	return s.Router()
}

func profileBody(t *testing.T, p model.Profile) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	rec := do(newTestRouter(t, false), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestNotFound(t *testing.T) {
	rec := do(newTestRouter(t, false), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", errorBody(t, rec))
}

func TestIndustries(t *testing.T) {
	rec := do(newTestRouter(t, false), httptest.NewRequest(http.MethodGet, "/v1/industries", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []IndustryInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	ids := make([]string, len(got))
	for i, in := range got {
		ids[i] = in.ID
		assert.Len(t, in.Dimensions, len(model.Dimensions), in.ID)
	}
	assert.Contains(t, ids, "saas")
	assert.Contains(t, ids, industry.Default)
	assert.Equal(t, industry.Builtin().Industries(), ids)
}

func TestScore(t *testing.T) {
	h := newTestRouter(t, false)

	rec := do(h, httptest.NewRequest(http.MethodPost, "/v1/score", profileBody(t, model.DefaultProfile())))
	require.Equal(t, http.StatusOK, rec.Code)

	var got report.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 76, got.Maturity.Overall)
	assert.Len(t, got.Gaps, 3)
	assert.Len(t, got.Risks, 4)
	assert.Equal(t, 76, got.Benchmarks.YourScore)
}

func TestScoreYAMLBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/score", bytes.NewBufferString("industry: healthcare\nemployees: 10\n"))
	req.Header.Set("Content-Type", "application/yaml")

	rec := do(newTestRouter(t, false), req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got report.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "healthcare", got.Maturity.Industry)
}

func TestScoreRejectsBadProfiles(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "empty profile"},
		{"not json", "industry=saas", "decode json profile"},
		{"unknown field", `{"industy": "saas"}`, "decode json profile"},
		{"negative", `{"employees": -5}`, "negative values for employees"},
	}
	h := newTestRouter(t, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, httptest.NewRequest(http.MethodPost, "/v1/score", bytes.NewBufferString(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, errorBody(t, rec), tt.want)
		})
	}
}

func TestScoreBodyReadErrors(t *testing.T) {
	tests := []struct {
		name string
		body io.Reader
		code int
		want string
	}{
		{"oversized", bytes.NewReader(bytes.Repeat([]byte(" "), maxBodyBytes+1)), http.StatusRequestEntityTooLarge, "request body too large"},
		{"broken stream", iotest.ErrReader(errors.New("connection reset")), http.StatusBadRequest, "read request body: connection reset"},
	}
	h := newTestRouter(t, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, httptest.NewRequest(http.MethodPost, "/v1/score", tt.body))
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.want, errorBody(t, rec))
		})
	}
}

func TestReportWithNarrative(t *testing.T) {
	rec := do(newTestRouter(t, true), httptest.NewRequest(http.MethodPost, "/v1/report", profileBody(t, model.DefaultProfile())))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.ExecutiveSummary, "From the model.")
	require.Len(t, got.Recommendations, 1)
	assert.Equal(t, 1, got.Recommendations[0].ID)
	assert.Equal(t, model.SourceLLM, got.Narrative[narrative.SectionExecutiveSummary].Source)
	assert.Equal(t, int64(40), got.Usage.InputTokens)
}

func TestReportWithoutAI(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/report?ai=false", profileBody(t, model.DefaultProfile()))
	rec := do(newTestRouter(t, true), req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.ExecutiveSummary, "Executive Summary")
	assert.NotEmpty(t, got.Recommendations)
	for name, origin := range got.Narrative {
		assert.Equal(t, model.SourceFallback, origin.Source, name)
	}
	assert.Zero(t, got.Usage.InputTokens)
}

func TestReportFormats(t *testing.T) {
	tests := []struct {
		query       string
		contentType string
		contains    string
	}{
		{"?format=markdown&ai=false", "text/markdown; charset=utf-8", "# GRC Maturity Report: Organization"},
		{"?format=yaml&ai=false", "application/yaml", "executiveSummary:"},
		{"?format=json&ai=false", "application/json", `"executiveSummary"`},
	}
	h := newTestRouter(t, false)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(h, httptest.NewRequest(http.MethodPost, "/v1/report"+tt.query, profileBody(t, model.DefaultProfile())))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestReportXLSX(t *testing.T) {
	rec := do(newTestRouter(t, false), httptest.NewRequest(http.MethodPost, "/v1/report?format=xlsx", profileBody(t, model.DefaultProfile())))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	// XLSX files are zip archives.
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestReportBadQuery(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"?format=pdf", "report: unknown format"},
		{"?ai=maybe", "ai must be a boolean"},
	}
	h := newTestRouter(t, false)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(h, httptest.NewRequest(http.MethodPost, "/v1/report"+tt.query, profileBody(t, model.DefaultProfile())))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, errorBody(t, rec), tt.want)
		})
	}
}

func TestNarrativeStatus(t *testing.T) {
	tests := []struct {
		name     string
		withLLM  bool
		provider string
		ready    bool
		breaker  string
	}{
		{"disabled", false, "none", false, ""},
		{"configured", true, "canned", true, "closed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newTestRouter(t, tt.withLLM), httptest.NewRequest(http.MethodGet, "/v1/narrative/status", nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var got narrative.Status
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.provider, got.Provider)
			assert.Equal(t, tt.ready, got.Ready)
			assert.Equal(t, tt.breaker, got.Breaker)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/score", nil)
	req.Header.Set("Origin", "https://grc.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := do(newTestRouter(t, false), req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	tables := industry.Builtin()
	s := NewServer(report.NewAssembler(tables, nil), tables, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, 0, time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
