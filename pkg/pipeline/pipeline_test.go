package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/outlooklabs/termrain/pkg/cache"
	"github.com/outlooklabs/termrain/pkg/corpus"
	"github.com/outlooklabs/termrain/pkg/score"
)

func fixtureSource() *corpus.MemorySource {
	return corpus.NewMemorySource([]corpus.Document{
		{Year: 2024, SourceLabel: "Alpha Capital", Text: "Inflation pressures persist while inflation expectations moderate. Rate cuts remain the base case."},
		{Year: 2024, SourceLabel: "Beta Partners", Text: "Earnings resilience supports equities. Inflation cools but valuations stretch."},
		{Year: 2025, SourceLabel: "Alpha Capital", Text: "Artificial intelligence adoption accelerates. Earnings broaden beyond technology."},
		{Year: 2025, SourceLabel: "Gamma Advisors", Text: "Diversification matters as volatility returns. Rate cuts arrive slower than hoped."},
	})
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return NewRunner(Deps{Cache: c, Source: fixtureSource()})
}

func TestOptionsCoercion(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		wantMode    string
		wantScoring string
		wantLimit   int
	}{
		{"empty", Options{}, "words", "frequency", 100},
		{"valid", Options{Mode: "phrases", Scoring: "importance", Limit: 50}, "phrases", "importance", 50},
		{"bogus mode", Options{Mode: "sentences"}, "words", "frequency", 100},
		{"bogus scoring", Options{Scoring: "magic"}, "words", "frequency", 100},
		{"disallowed limit", Options{Limit: 75}, "words", "frequency", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.ValidateAndSetDefaults()
			if tt.opts.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", tt.opts.Mode, tt.wantMode)
			}
			if tt.opts.Scoring != tt.wantScoring {
				t.Errorf("Scoring = %q, want %q", tt.opts.Scoring, tt.wantScoring)
			}
			if tt.opts.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", tt.opts.Limit, tt.wantLimit)
			}
		})
	}

	t.Run("negative year scopes to all", func(t *testing.T) {
		o := Options{Year: -3}
		o.ValidateAndSetDefaults()
		if o.Scope() != ScopeAll {
			t.Errorf("Scope() = %q, want %q", o.Scope(), ScopeAll)
		}
	})

	t.Run("formats filtered", func(t *testing.T) {
		o := Options{Formats: []string{"png", "svg", "pdf"}}
		o.ValidateAndSetDefaults()
		if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
			t.Errorf("Formats = %v, want [svg]", o.Formats)
		}
	})

	t.Run("rain limit clamped", func(t *testing.T) {
		for n, want := range map[int]int{0: 300, 5: 20, 1000: 300, 100: 100} {
			o := Options{RainLimit: n}
			o.ValidateAndSetDefaults()
			if o.RainLimit != want {
				t.Errorf("RainLimit %d -> %d, want %d", n, o.RainLimit, want)
			}
		}
	})
}

func TestWordCloudFrequency(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()

	result, err := r.WordCloud(ctx, Options{})
	if err != nil {
		t.Fatalf("WordCloud: %v", err)
	}

	if result.Year != "all" || result.Mode != "words" || result.Scoring != "frequency" || result.Limit != 100 {
		t.Errorf("echoed params wrong: %+v", result)
	}
	if result.Cached {
		t.Error("first computation should not report cached")
	}
	if result.TotalDocuments != 4 {
		t.Errorf("TotalDocuments = %d, want 4", result.TotalDocuments)
	}
	if result.UniqueSources != 3 {
		t.Errorf("UniqueSources = %d, want 3", result.UniqueSources)
	}
	if len(result.AvailableYears) != 2 || result.AvailableYears[0] != 2025 {
		t.Errorf("AvailableYears = %v, want [2025 2024]", result.AvailableYears)
	}

	// "inflation" appears three times across the corpus and must rank first.
	if len(result.Words) == 0 || result.Words[0].Term != "inflation" {
		t.Fatalf("top term = %v, want inflation", result.Words)
	}
	if result.Words[0].Value != 3 {
		t.Errorf("inflation count = %v, want 3", result.Words[0].Value)
	}
}

func TestWordCloudYearScope(t *testing.T) {
	r := testRunner(t)
	result, err := r.WordCloud(context.Background(), Options{Year: 2025})
	if err != nil {
		t.Fatalf("WordCloud: %v", err)
	}
	if result.Year != "2025" {
		t.Errorf("Year = %q, want 2025", result.Year)
	}
	if result.TotalDocuments != 2 {
		t.Errorf("TotalDocuments = %d, want 2", result.TotalDocuments)
	}
	for _, w := range result.Words {
		if w.Term == "inflation" {
			t.Error("2025 scope should not contain 2024-only terms")
		}
	}
}

func TestWordCloudCacheRoundTrip(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()
	opts := Options{Mode: "words", Scoring: "importance", Limit: 50}

	first, err := r.WordCloud(ctx, opts)
	if err != nil {
		t.Fatalf("first WordCloud: %v", err)
	}
	second, err := r.WordCloud(ctx, opts)
	if err != nil {
		t.Fatalf("second WordCloud: %v", err)
	}

	if !second.Cached {
		t.Error("second call should be served from cache")
	}
	if second.CachedAt.IsZero() {
		t.Error("cached response should carry a timestamp")
	}
	if len(first.Words) != len(second.Words) {
		t.Fatalf("cached wordlist differs: %d vs %d", len(first.Words), len(second.Words))
	}
	for i := range first.Words {
		if first.Words[i] != second.Words[i] {
			t.Errorf("word %d differs: %+v vs %+v", i, first.Words[i], second.Words[i])
		}
	}

	// SkipCache bypasses the cached entry.
	opts.SkipCache = true
	fresh, err := r.WordCloud(ctx, opts)
	if err != nil {
		t.Fatalf("skip-cache WordCloud: %v", err)
	}
	if fresh.Cached {
		t.Error("SkipCache result should not report cached")
	}
}

func TestWordRainFallback(t *testing.T) {
	r := testRunner(t) // no positioner configured
	result, err := r.WordRain(context.Background(), Options{})
	if err != nil {
		t.Fatalf("WordRain: %v", err)
	}

	if result.ServiceStatus != "fallback" {
		t.Errorf("ServiceStatus = %q, want fallback", result.ServiceStatus)
	}
	if len(result.Years) != 2 || result.Years[0] != 2024 || result.Years[1] != 2025 {
		t.Errorf("Years = %v, want [2024 2025]", result.Years)
	}
	if len(result.Words) == 0 {
		t.Fatal("expected aggregated words")
	}

	for i, w := range result.Words {
		if w.SemanticX < 0 || w.SemanticX >= 1 {
			t.Errorf("%q semanticX out of range: %v", w.Text, w.SemanticX)
		}
		if i > 0 && result.Words[i-1].SemanticX > w.SemanticX {
			t.Errorf("words not sorted by semanticX at %d", i)
		}
		if len(w.YearData) == 0 {
			t.Errorf("%q has no year data", w.Text)
		}
		for year, stat := range w.YearData {
			if stat.Frequency <= 0 && stat.TFIDF <= 0 {
				t.Errorf("%q year %d has empty stats", w.Text, year)
			}
		}
	}

	// "inflation" occurs only in 2024; its yearData must say so.
	for _, w := range result.Words {
		if w.Text != "inflation" {
			continue
		}
		if _, ok := w.YearData[2025]; ok {
			t.Error("inflation should have no 2025 entry")
		}
		if stat := w.YearData[2024]; stat.Frequency != 3 {
			t.Errorf("inflation 2024 frequency = %d, want 3", stat.Frequency)
		}
		if w.AvgTFIDF <= 0 {
			t.Error("inflation avgTfidf should be positive")
		}
	}
}

func TestWordRainSentiment(t *testing.T) {
	r := testRunner(t)
	result, err := r.WordRain(context.Background(), Options{})
	if err != nil {
		t.Fatalf("WordRain: %v", err)
	}
	found := false
	for _, w := range result.Words {
		if w.Text == "diversification" {
			found = true
			if w.Sentiment <= 0 {
				t.Errorf("diversification sentiment = %v, want positive dictionary score", w.Sentiment)
			}
		}
	}
	if !found {
		t.Fatal("expected diversification in aggregation")
	}
}

func TestLayoutAndRender(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()

	rainResult, err := r.WordRain(ctx, Options{})
	if err != nil {
		t.Fatalf("WordRain: %v", err)
	}

	opts := Options{Formats: []string{"svg", "json"}, Seed: 7}
	placed, err := r.Layout(ctx, rainResult, opts)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(placed) == 0 {
		t.Fatal("expected placements")
	}

	// Second layout call must be served from cache and identical.
	again, err := r.Layout(ctx, rainResult, opts)
	if err != nil {
		t.Fatalf("Layout (cached): %v", err)
	}
	if len(again) != len(placed) {
		t.Errorf("cached layout differs: %d vs %d words", len(again), len(placed))
	}

	artifacts, err := r.Render(ctx, placed, "Outlooks", opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	svg, ok := artifacts["svg"]
	if !ok || !strings.Contains(string(svg), "<svg") {
		t.Error("missing svg artifact")
	}
	data, ok := artifacts["json"]
	if !ok {
		t.Fatal("missing json artifact")
	}
	var parsed struct {
		Words []json.RawMessage `json:"words"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("json artifact malformed: %v", err)
	}
	if len(parsed.Words) != len(placed) {
		t.Errorf("json artifact words = %d, want %d", len(parsed.Words), len(placed))
	}
}

func TestWordCloudImportanceRounded(t *testing.T) {
	r := testRunner(t)
	result, err := r.WordCloud(context.Background(), Options{Scoring: string(score.ScoringImportance)})
	if err != nil {
		t.Fatalf("WordCloud: %v", err)
	}
	for _, w := range result.Words {
		if round2(w.Value) != w.Value {
			t.Errorf("%q value %v not rounded to 2 decimals", w.Term, w.Value)
		}
	}
}
