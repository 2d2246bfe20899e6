package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/outlooklabs/termrain/pkg/cache"
	"github.com/outlooklabs/termrain/pkg/corpus"
	"github.com/outlooklabs/termrain/pkg/observability"
	"github.com/outlooklabs/termrain/pkg/rain"
	"github.com/outlooklabs/termrain/pkg/render"
	"github.com/outlooklabs/termrain/pkg/score"
	"github.com/outlooklabs/termrain/pkg/semantic"
	"github.com/outlooklabs/termrain/pkg/sentiment"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache      cache.Cache
	Keyer      cache.Keyer
	Logger     *log.Logger
	Source     corpus.Source
	Scorer     *score.Scorer
	Resolver   *sentiment.Resolver
	Positioner *semantic.Positioner
}

// Deps wires the runner's collaborators. Cache, Keyer, Scorer, Resolver and
// Logger may be nil; sensible defaults apply. Source is required for any
// corpus-backed operation; Positioner is required for the word-rain path.
type Deps struct {
	Cache      cache.Cache
	Keyer      cache.Keyer
	Logger     *log.Logger
	Source     corpus.Source
	Scorer     *score.Scorer
	Resolver   *sentiment.Resolver
	Positioner *semantic.Positioner
}

// NewRunner creates a runner from deps, applying defaults for nil fields.
func NewRunner(deps Deps) *Runner {
	if deps.Keyer == nil {
		deps.Keyer = cache.NewDefaultKeyer()
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewNullCache()
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Scorer == nil {
		deps.Scorer = &score.Scorer{}
	}
	if deps.Resolver == nil {
		deps.Resolver = sentiment.NewResolver(sentiment.Config{Logger: deps.Logger})
	}
	return &Runner{
		Cache:      deps.Cache,
		Keyer:      deps.Keyer,
		Logger:     deps.Logger,
		Source:     deps.Source,
		Scorer:     deps.Scorer,
		Resolver:   deps.Resolver,
		Positioner: deps.Positioner,
	}
}

// cachedWordlist is the stored form of a scored wordlist: the words plus
// the corpus metadata that was true when they were computed.
type cachedWordlist struct {
	Words          []score.ScoredTerm `json:"words"`
	TotalDocuments int                `json:"totalDocuments"`
	UniqueSources  int                `json:"uniqueSources"`
	CachedAt       time.Time          `json:"cachedAt"`
}

// WordCloud computes the scored wordlist for the requested scope with
// read/write-through caching.
func (r *Runner) WordCloud(ctx context.Context, opts Options) (*WordCloudResult, error) {
	r.applyLogger(&opts)
	opts.ValidateAndSetDefaults()
	logger := opts.Logger

	result := &WordCloudResult{
		Year:    opts.Scope(),
		Limit:   opts.Limit,
		Mode:    opts.Mode,
		Scoring: opts.Scoring,
	}

	key := r.Keyer.WordlistKey(opts.WordlistKeyOpts())

	if !opts.SkipCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached cachedWordlist
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "wordlist")
				years, err := r.Source.Years(ctx)
				if err != nil {
					return nil, fmt.Errorf("list years: %w", err)
				}
				result.Words = cached.Words
				result.WordCount = len(cached.Words)
				result.TotalDocuments = cached.TotalDocuments
				result.UniqueSources = cached.UniqueSources
				result.AvailableYears = years
				result.Cached = true
				result.CachedAt = cached.CachedAt
				return result, nil
			}
			// Malformed entry: recompute and overwrite.
		}
		observability.Cache().OnCacheMiss(ctx, "wordlist")
	}

	start := time.Now()
	observability.Pipeline().OnScoreStart(ctx, opts.Scope(), opts.Mode)

	filter := corpus.Filter{}
	if opts.Year != 0 {
		year := opts.Year
		filter.Year = &year
	}
	docs, err := r.Source.List(ctx, filter)
	if err != nil {
		observability.Pipeline().OnScoreComplete(ctx, opts.Scope(), opts.Mode, 0, time.Since(start), err)
		return nil, fmt.Errorf("list documents: %w", err)
	}

	words := r.Scorer.Score(docs, opts.ModeValue(), opts.ScoringValue(), opts.Limit)
	if opts.ScoringValue() == score.ScoringImportance {
		for i := range words {
			words[i].Value = round2(words[i].Value)
		}
	}
	observability.Pipeline().OnScoreComplete(ctx, opts.Scope(), opts.Mode, len(words), time.Since(start), nil)

	years, err := r.Source.Years(ctx)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}

	result.Words = words
	result.WordCount = len(words)
	result.TotalDocuments = len(docs)
	result.UniqueSources = corpus.UniqueSources(docs)
	result.AvailableYears = years

	logger.Info("scored corpus",
		"scope", opts.Scope(),
		"mode", opts.Mode,
		"scoring", opts.Scoring,
		"terms", len(words),
		"documents", len(docs),
		"duration", time.Since(start))

	payload, err := json.Marshal(cachedWordlist{
		Words:          words,
		TotalDocuments: result.TotalDocuments,
		UniqueSources:  result.UniqueSources,
		CachedAt:       time.Now().UTC(),
	})
	if err == nil {
		if err := r.Cache.Set(ctx, key, payload, cache.TTLWordlist); err != nil {
			logger.Debug("wordlist cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "wordlist", len(payload))
		}
	}

	return result, nil
}

// yearCorpus holds one year's tokenized documents and derived term maps.
type yearCorpus struct {
	year    int
	weights map[string]float64
	counts  map[string]float64
}

// WordRain computes the cross-year aggregation: globally top terms by
// summed TF-IDF, each with per-year stats, a semantic x position, and a
// resolved sentiment. Sentiment resolution and semantic positioning run
// concurrently; either degrades independently.
func (r *Runner) WordRain(ctx context.Context, opts Options) (*WordRainResult, error) {
	r.applyLogger(&opts)
	opts.ValidateAndSetDefaults()
	logger := opts.Logger

	key := r.Keyer.RainKey(opts.RainKeyOpts())
	if !opts.SkipCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached WordRainResult
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "rain")
				return &cached, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "rain")
	}

	start := time.Now()
	observability.Pipeline().OnScoreStart(ctx, opts.RainKeyOpts().Scope, opts.Mode)

	allYears, err := r.Source.Years(ctx)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	var years []int
	for _, y := range allYears {
		if y >= opts.StartYear && y <= opts.EndYear {
			years = append(years, y)
		}
	}
	sort.Ints(years)

	// Per-year tokenization and term maps.
	yearly := make([]yearCorpus, 0, len(years))
	totals := make(map[string]float64)
	for _, year := range years {
		y := year
		docs, err := r.Source.List(ctx, corpus.Filter{Year: &y})
		if err != nil {
			return nil, fmt.Errorf("list documents for %d: %w", year, err)
		}
		tokenized := make([][]string, 0, len(docs))
		for _, d := range docs {
			if d.Text == "" {
				continue
			}
			tokenized = append(tokenized, r.Scorer.Tokenize(d.Text, score.ModeWords))
		}

		yc := yearCorpus{
			year:    year,
			weights: score.TermWeights(tokenized),
			counts:  score.TermCounts(tokenized),
		}
		yearly = append(yearly, yc)
		for term, w := range yc.weights {
			totals[term] += w
		}
	}

	topTerms := topByValue(totals, opts.RainLimit)
	observability.Pipeline().OnScoreComplete(ctx, opts.RainKeyOpts().Scope, opts.Mode, len(topTerms), time.Since(start), nil)

	// Positioning and sentiment are independent; run them concurrently.
	var (
		wg         sync.WaitGroup
		positions  map[string]float64
		status     semantic.Status
		sentiments map[string]sentiment.Result
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		posStart := time.Now()
		observability.Pipeline().OnPositionStart(ctx, len(topTerms))
		positions, status = r.Positions(ctx, topTerms)
		observability.Pipeline().OnPositionComplete(ctx, string(status), time.Since(posStart))
	}()
	go func() {
		defer wg.Done()
		sentiments = r.Resolver.ResolveBatch(ctx, topTerms)
	}()
	wg.Wait()

	words := make([]RainWord, 0, len(topTerms))
	for _, term := range topTerms {
		yearData := make(map[int]YearStat)
		totalWeight := 0.0
		yearCount := 0
		for _, yc := range yearly {
			weight := yc.weights[term]
			freq := int(yc.counts[term])
			if freq > 0 || weight > 0 {
				yearData[yc.year] = YearStat{Frequency: freq, TFIDF: round2(weight)}
				totalWeight += weight
				yearCount++
			}
		}

		avg := 0.0
		if yearCount > 0 {
			avg = round2(totalWeight / float64(yearCount))
		}

		x, ok := positions[term]
		if !ok {
			x = 0.5
		}

		words = append(words, RainWord{
			Text:      term,
			SemanticX: x,
			AvgTFIDF:  avg,
			Sentiment: sentiments[term].NormalizedScore,
			YearData:  yearData,
		})
	}

	// Display order follows the semantic axis.
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].SemanticX < words[j].SemanticX
	})

	result := &WordRainResult{
		Years:         years,
		Words:         words,
		ServiceStatus: string(status),
	}

	logger.Info("aggregated word rain",
		"years", len(years),
		"terms", len(words),
		"status", result.ServiceStatus,
		"duration", time.Since(start))

	if payload, err := json.Marshal(result); err == nil {
		if err := r.Cache.Set(ctx, key, payload, cache.TTLRain); err != nil {
			logger.Debug("rain cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "rain", len(payload))
		}
	}

	return result, nil
}

// Positions resolves semantic positions, falling back deterministically
// when no positioner is configured.
func (r *Runner) Positions(ctx context.Context, terms []string) (map[string]float64, semantic.Status) {
	if r.Positioner == nil {
		return semantic.FallbackPositions(terms), semantic.StatusFallback
	}
	return r.Positioner.Positions(ctx, terms)
}

// Layout places the word-rain terms on the canvas, caching by the content
// hash of the aggregation plus canvas options.
func (r *Runner) Layout(ctx context.Context, rainResult *WordRainResult, opts Options) ([]rain.PlacedWord, error) {
	opts.ValidateAndSetDefaults()

	input := make([]rain.Word, 0, len(rainResult.Words))
	for _, w := range rainResult.Words {
		input = append(input, rain.Word{Text: w.Text, Value: w.AvgTFIDF, SemanticX: w.SemanticX})
	}

	rainData, err := json.Marshal(rainResult)
	if err != nil {
		return nil, fmt.Errorf("serialize aggregation for cache key: %w", err)
	}
	key := r.Keyer.LayoutKey(cache.Hash(rainData), opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var cached []rain.PlacedWord
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(input))
	placed := rain.Layout(input, rain.Options{Width: opts.Width, Height: opts.Height, Seed: opts.Seed})
	observability.Pipeline().OnLayoutComplete(ctx, len(placed), time.Since(start))

	if data, err := json.Marshal(placed); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return placed, nil
}

// Render produces the requested artifact formats from a placed layout,
// caching each by the layout content hash plus format.
func (r *Runner) Render(ctx context.Context, placed []rain.PlacedWord, title string, opts Options) (map[string][]byte, error) {
	opts.ValidateAndSetDefaults()

	layoutData, err := json.Marshal(placed)
	if err != nil {
		return nil, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache.
	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{Format: format})
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			rendered[format] = render.SVG(placed,
				render.WithTitle(title),
				render.WithSize(opts.Width, opts.Height))
		case FormatJSON:
			data, err := render.JSON(placed,
				render.WithJSONTitle(title),
				render.WithJSONSize(opts.Width, opts.Height),
				render.WithJSONSeed(opts.Seed))
			if err != nil {
				observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
				return nil, fmt.Errorf("render json: %w", err)
			}
			rendered[format] = data
		}
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{Format: format})
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// topByValue returns the keys with the highest values, descending, ties
// broken lexically for determinism.
func topByValue(values map[string]float64, limit int) []string {
	terms := make([]string, 0, len(values))
	for term := range values {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if values[terms[i]] != values[terms[j]] {
			return values[terms[i]] > values[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
