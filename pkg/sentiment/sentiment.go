// Package sentiment resolves a normalized sentiment score per term.
//
// Resolution runs through an ordered cascade of tiers, each consulted only
// when the previous one has no answer:
//
//  1. Process-local LRU cache (O(1), bounded)
//  2. Curated finance dictionary (exact match)
//  3. Persistent cross-process store (placeholder entries excluded)
//  4. External classifier (best-effort; write-through on success)
//
// Resolve never fails: any classifier error degrades to a neutral default.
// Tiers are modeled as an ordered list so adding, removing, or reordering
// them is mechanical and each tier is testable in isolation.
package sentiment

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Label is a sentiment polarity class.
type Label string

// Sentiment labels.
const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// Result is a resolved sentiment. Score is the classifier (or curated)
// confidence in [0,1]; NormalizedScore rescales polarity to [-1,1], where
// positive labels map to +score, negative to -score, and neutral usually
// (curated exceptions aside) to 0.
type Result struct {
	Term            string  `json:"term,omitempty" bson:"term,omitempty"`
	Label           Label   `json:"label" bson:"label"`
	Score           float64 `json:"score" bson:"score"`
	NormalizedScore float64 `json:"normalizedScore" bson:"normalized_score"`
}

// Neutral is the degraded-mode default returned when no tier can answer.
func Neutral(term string) Result {
	return Result{Term: term, Label: LabelNeutral, Score: 0.5, NormalizedScore: 0}
}

// Tier is one stage of the resolution cascade. Lookup returns the result
// and true when the tier has an answer; tiers swallow their own backend
// errors and report a miss instead.
type Tier interface {
	Name() string
	Lookup(ctx context.Context, term string) (Result, bool)
}

// Batch processing parameters. Batches run sequentially with a fixed delay
// to respect classifier rate limits; terms within a batch resolve in
// parallel.
const (
	BatchSize       = 10
	BatchDelay      = 100 * time.Millisecond
	MaxBatchTerms   = 150
	defaultCacheCap = 4096
)

// Resolver runs the cascade. Construct with NewResolver.
type Resolver struct {
	tiers  []Tier
	memory *MemoryCache
	store  Store
	logger *log.Logger
}

// Config wires the optional cascade tiers. Memory and dictionary tiers are
// always present; Store and Classifier tiers join when non-nil.
type Config struct {
	Store      Store       // persistent cross-process cache (optional)
	Classifier *Classifier // external classifier (optional)
	CacheSize  int         // process-local LRU capacity (default 4096)
	Logger     *log.Logger
}

// NewResolver builds the cascade in fixed order:
// memory, dictionary, store, classifier.
func NewResolver(cfg Config) *Resolver {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheCap
	}

	mem := NewMemoryCache(cfg.CacheSize)
	tiers := []Tier{mem, dictionaryTier{}}
	if cfg.Store != nil {
		tiers = append(tiers, storeTier{store: cfg.Store, memory: mem, logger: cfg.Logger})
	}
	if cfg.Classifier != nil {
		tiers = append(tiers, classifierTier{
			classifier: cfg.Classifier,
			memory:     mem,
			store:      cfg.Store,
			logger:     cfg.Logger,
		})
	}

	return &Resolver{tiers: tiers, memory: mem, store: cfg.Store, logger: cfg.Logger}
}

// Resolve returns the sentiment for a single term. It never returns an
// error: when every tier misses, the neutral default is returned.
func (r *Resolver) Resolve(ctx context.Context, term string) Result {
	normalized := Normalize(term)

	for _, tier := range r.tiers {
		if res, ok := tier.Lookup(ctx, normalized); ok {
			res.Term = normalized
			return res
		}
	}

	return Neutral(normalized)
}

// ResolveBatch resolves terms in fixed-size batches with an inter-batch
// delay. Terms within one batch resolve concurrently; batches run
// sequentially. At most MaxBatchTerms terms are processed.
func (r *Resolver) ResolveBatch(ctx context.Context, terms []string) map[string]Result {
	if len(terms) > MaxBatchTerms {
		terms = terms[:MaxBatchTerms]
	}

	results := make(map[string]Result, len(terms))

	for start := 0; start < len(terms); start += BatchSize {
		end := min(start+BatchSize, len(terms))
		batch := terms[start:end]

		type resolved struct {
			term string
			res  Result
		}
		ch := make(chan resolved, len(batch))
		for _, term := range batch {
			go func(t string) {
				ch <- resolved{term: t, res: r.Resolve(ctx, t)}
			}(term)
		}
		for range batch {
			rv := <-ch
			results[rv.term] = rv.res
		}

		if end < len(terms) {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(BatchDelay):
			}
		}
	}

	return results
}

// CachedCount returns the number of entries in the process-local cache.
func (r *Resolver) CachedCount() int { return r.memory.Len() }

// Normalize canonicalizes a term for cache and dictionary keys.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
