// Package corpus provides access to the outlook document corpus.
//
// A Document is one short financial-outlook text published by an institution
// for a given year. Documents are immutable once ingested; every downstream
// structure (scored terms, placements) is derived fresh from them.
//
// The package defines the Source interface consumed by the scoring pipeline,
// with two implementations:
//   - MongoSource: production store backed by MongoDB
//   - MemorySource: in-memory fixture store for tests and local development
package corpus

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

// ErrUnavailable is returned when the corpus backend cannot be reached.
// Corpus failures are fatal for a computation: there is no degraded mode
// without documents.
var ErrUnavailable = errors.New("corpus unavailable")

// Document is one outlook text. SourceLabel identifies the publishing
// institution (canonical name).
type Document struct {
	ID          string `bson:"_id" json:"id"`
	Year        int    `bson:"year" json:"year"`
	SourceLabel string `bson:"source_label" json:"sourceLabel"`
	Text        string `bson:"text" json:"text"`
}

// Filter narrows a document listing. A nil Year means all years.
type Filter struct {
	Year  *int
	Limit int
}

// Source lists documents from the corpus. Implementations must be safe for
// concurrent use.
type Source interface {
	// List returns documents matching the filter. An empty result is not an
	// error; backend failures are.
	List(ctx context.Context, f Filter) ([]Document, error)

	// Years returns the distinct years present in the corpus, descending.
	Years(ctx context.Context) ([]int, error)
}

// MemorySource is an in-memory Source for tests and fixtures.
type MemorySource struct {
	docs []Document
}

// NewMemorySource creates a source over the given documents. Documents
// without an ID are assigned one.
func NewMemorySource(docs []Document) *MemorySource {
	out := make([]Document, len(docs))
	copy(out, docs)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return &MemorySource{docs: out}
}

// List returns matching documents in insertion order.
func (s *MemorySource) List(ctx context.Context, f Filter) ([]Document, error) {
	var out []Document
	for _, d := range s.docs {
		if f.Year != nil && d.Year != *f.Year {
			continue
		}
		out = append(out, d)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

// Years returns distinct years, descending.
func (s *MemorySource) Years(ctx context.Context) ([]int, error) {
	seen := make(map[int]bool)
	var years []int
	for _, d := range s.docs {
		if !seen[d.Year] {
			seen[d.Year] = true
			years = append(years, d.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// UniqueSources counts distinct source labels among the given documents.
func UniqueSources(docs []Document) int {
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		seen[d.SourceLabel] = true
	}
	return len(seen)
}

var _ Source = (*MemorySource)(nil)
