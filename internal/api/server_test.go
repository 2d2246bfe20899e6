package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/outlooklabs/termrain/pkg/cache"
	"github.com/outlooklabs/termrain/pkg/corpus"
	"github.com/outlooklabs/termrain/pkg/pipeline"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	source := corpus.NewMemorySource([]corpus.Document{
		{Year: 2024, SourceLabel: "Alpha Capital", Text: "Inflation pressures persist while inflation expectations moderate."},
		{Year: 2024, SourceLabel: "Beta Partners", Text: "Earnings resilience supports equities despite inflation."},
		{Year: 2025, SourceLabel: "Gamma Advisors", Text: "Diversification matters as volatility returns."},
	})

	runner := pipeline.NewRunner(pipeline.Deps{
		Cache:  c,
		Source: source,
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	})
	return New(runner, log.NewWithOptions(io.Discard, log.Options{}))
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, testServer(t), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestWordCloudEndpoint(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/api/stats/wordcloud?year=2024&mode=words&scoring=frequency&limit=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var result pipeline.WordCloudResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Year != "2024" || result.Limit != 50 {
		t.Errorf("echoed params: %+v", result)
	}
	if result.TotalDocuments != 2 {
		t.Errorf("TotalDocuments = %d, want 2", result.TotalDocuments)
	}
	if len(result.Words) == 0 || result.Words[0].Term != "inflation" {
		t.Errorf("top term: %v", result.Words)
	}
}

func TestWordCloudCoercesBadParams(t *testing.T) {
	s := testServer(t)
	// Bogus knob values must never 4xx; they coerce to defaults.
	rec := get(t, s, "/api/stats/wordcloud?mode=sentences&scoring=magic&limit=7&year=banana")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result pipeline.WordCloudResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Mode != "words" || result.Scoring != "frequency" || result.Limit != 100 || result.Year != "all" {
		t.Errorf("coercion failed: %+v", result)
	}
}

func TestWordRainEndpoint(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/api/stats/wordrain?limit=100")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var result pipeline.WordRainResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.ServiceStatus != "fallback" {
		t.Errorf("serviceStatus = %q", result.ServiceStatus)
	}
	if len(result.Years) != 2 || len(result.Words) == 0 {
		t.Errorf("result: years=%v words=%d", result.Years, len(result.Words))
	}
}

func TestSentimentGet(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/api/stats/sentiment?term=bullish")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res struct {
		Label           string  `json:"label"`
		NormalizedScore float64 `json:"normalizedScore"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Label != "positive" || res.NormalizedScore != 0.95 {
		t.Errorf("got %+v", res)
	}

	// A missing term has no coercion: it is a validation error.
	rec = get(t, s, "/api/stats/sentiment")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty term status = %d, want 400", rec.Code)
	}
}

func TestSentimentBatch(t *testing.T) {
	s := testServer(t)

	body := `{"terms":["bullish","recession","  "]}`
	req := httptest.NewRequest(http.MethodPost, "/api/stats/sentiment", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var res sentimentBatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The blank term is filtered before resolution.
	if res.Count != 2 {
		t.Errorf("count = %d, want 2", res.Count)
	}
	if res.Results["recession"].NormalizedScore != -0.90 {
		t.Errorf("recession = %+v", res.Results["recession"])
	}
}

func TestSentimentBatchRejectsGarbage(t *testing.T) {
	s := testServer(t)

	for _, body := range []string{`not json`, `{"terms":[]}`, `{"terms":["   "]}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/stats/sentiment", strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}
