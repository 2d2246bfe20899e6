// Package pipeline provides the core analytics pipeline for Termrain.
//
// This package implements the complete score → position → layout → render
// pipeline that can be used by CLI, API, and batch components. By
// centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Score: Extract and rank terms from the outlook corpus
//  2. Position: Resolve semantic x positions (projection service or fallback)
//  3. Layout: Place words on the three-zone canvas
//  4. Render: Generate output artifacts (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each expensive stage caches its result.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(pipeline.Deps{
//	    Cache:      cache,
//	    Source:     source,
//	    Positioner: positioner,
//	    Logger:     logger,
//	})
//	opts := pipeline.Options{Mode: "words", Scoring: "frequency"}
//	cloud, err := runner.WordCloud(ctx, opts)
//
// Request parameters are coerced, never rejected: an unknown mode falls
// back to words, an unknown scoring to frequency, a disallowed limit to the
// default. The response always reports the effective values.
package pipeline

import (
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/outlooklabs/termrain/pkg/cache"
	"github.com/outlooklabs/termrain/pkg/rain"
	"github.com/outlooklabs/termrain/pkg/score"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Batch
// =============================================================================

const (
	// DefaultRainLimit is the word budget for the word-rain aggregation.
	DefaultRainLimit = 300

	// MinRainLimit and MaxRainLimit bound the word-rain budget; out-of-range
	// requests are clamped, not rejected.
	MinRainLimit = 20
	MaxRainLimit = 300

	// DefaultStartYear and DefaultEndYear bound the word-rain year window.
	DefaultStartYear = 2019
	DefaultEndYear   = 2026
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// ScopeAll is the scope label for corpus-wide requests.
const ScopeAll = "all"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the analytics pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Score options. Year zero means the whole corpus.
	Year      int    `json:"year,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Scoring   string `json:"scoring,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	SkipCache bool   `json:"skip_cache,omitempty"`

	// Word-rain options
	RainLimit int `json:"rain_limit,omitempty"`
	StartYear int `json:"start_year,omitempty"`
	EndYear   int `json:"end_year,omitempty"`

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Seed   int64   `json:"seed,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults coerces request parameters to their closed sets and
// applies defaults. It never fails: out-of-range values are mapped to
// defaults per the endpoint contract. The method is idempotent.
func (o *Options) ValidateAndSetDefaults() {
	if o.validated {
		return
	}

	o.Mode = string(score.NormalizeMode(o.Mode))
	o.Scoring = string(score.NormalizeScoring(o.Scoring))
	o.Limit = score.NormalizeLimit(o.Limit)
	if o.Year < 0 {
		o.Year = 0
	}

	if o.RainLimit == 0 {
		o.RainLimit = DefaultRainLimit
	}
	o.RainLimit = min(max(o.RainLimit, MinRainLimit), MaxRainLimit)
	if o.StartYear == 0 {
		o.StartYear = DefaultStartYear
	}
	if o.EndYear == 0 {
		o.EndYear = DefaultEndYear
	}

	if o.Width <= 0 {
		o.Width = rain.DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = rain.DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = rain.DefaultSeed
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	valid := o.Formats[:0]
	for _, f := range o.Formats {
		if ValidFormats[f] {
			valid = append(valid, f)
		}
	}
	if len(valid) == 0 {
		valid = append(valid, FormatJSON)
	}
	o.Formats = valid

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
}

// Scope returns the scope label for this request: "all" or the year.
func (o *Options) Scope() string {
	if o.Year == 0 {
		return ScopeAll
	}
	return strconv.Itoa(o.Year)
}

// ModeValue returns the coerced extraction mode.
func (o *Options) ModeValue() score.Mode { return score.Mode(o.Mode) }

// ScoringValue returns the coerced scoring method.
func (o *Options) ScoringValue() score.Scoring { return score.Scoring(o.Scoring) }

// WordlistKeyOpts returns cache key options for the scored wordlist.
func (o *Options) WordlistKeyOpts() cache.WordlistKeyOpts {
	return cache.WordlistKeyOpts{
		Scope:   o.Scope(),
		Mode:    o.Mode,
		Scoring: o.Scoring,
		Limit:   o.Limit,
	}
}

// RainKeyOpts returns cache key options for the word-rain aggregation. The
// rain path always extracts single words and weighs by TF-IDF; its key
// varies only by year window and budget.
func (o *Options) RainKeyOpts() cache.WordlistKeyOpts {
	return cache.WordlistKeyOpts{
		Scope:   strconv.Itoa(o.StartYear) + "-" + strconv.Itoa(o.EndYear),
		Mode:    string(score.ModeWords),
		Scoring: string(score.ScoringImportance),
		Limit:   o.RainLimit,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Seed:   o.Seed,
	}
}

// =============================================================================
// Results
// =============================================================================

// WordCloudResult is the scored wordlist with corpus metadata.
type WordCloudResult struct {
	Year           string             `json:"year"` // "all" or the year
	Limit          int                `json:"limit"`
	Mode           string             `json:"mode"`
	Scoring        string             `json:"scoring"`
	WordCount      int                `json:"wordCount"`
	TotalDocuments int                `json:"totalDocuments"`
	UniqueSources  int                `json:"uniqueSources"`
	Words          []score.ScoredTerm `json:"words"`
	AvailableYears []int              `json:"availableYears"`
	Cached         bool               `json:"cached"`
	CachedAt       time.Time          `json:"cachedAt,omitempty"`
}

// YearStat is one term's per-year measurement.
type YearStat struct {
	Frequency int     `json:"frequency"`
	TFIDF     float64 `json:"tfidf"`
}

// RainWord is one term in the word-rain aggregation: its semantic position,
// cross-year average weight, resolved sentiment, and per-year stats.
type RainWord struct {
	Text      string           `json:"text"`
	SemanticX float64          `json:"semanticX"`
	AvgTFIDF  float64          `json:"avgTfidf"`
	Sentiment float64          `json:"sentiment"`
	YearData  map[int]YearStat `json:"yearData"`
}

// WordRainResult is the cross-year aggregation, sorted by semantic position.
type WordRainResult struct {
	Years         []int      `json:"years"`
	Words         []RainWord `json:"words"`
	ServiceStatus string     `json:"serviceStatus"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TermCount    int
	ScoreTime    time.Duration
	PositionTime time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// round2 matches the response rounding of the scoring layer: two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
