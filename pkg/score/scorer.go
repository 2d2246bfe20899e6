package score

import (
	"sort"

	"github.com/outlooklabs/termrain/pkg/corpus"
	"github.com/outlooklabs/termrain/pkg/text"
)

// Scorer ranks terms across a document scope. The zero value is usable;
// Chunker optionally provides grammatical phrase spans in phrase mode.
type Scorer struct {
	Chunker text.Chunker
}

// Score extracts terms from the documents per mode, ranks them per scoring,
// and truncates to limit. An empty scope yields an empty (non-nil) list.
// The limit is assumed pre-normalized by the caller (see NormalizeLimit).
func (s *Scorer) Score(docs []corpus.Document, mode Mode, scoring Scoring, limit int) []ScoredTerm {
	tokenized := s.tokenizeAll(docs, mode)

	var values map[string]float64
	if scoring == ScoringImportance {
		values = newTFIDFCorpus(tokenized).aggregate()
	} else {
		values = countAll(tokenized)
	}

	return rank(values, firstSeen(tokenized), limit)
}

// ScoreTokens ranks pre-tokenized documents. Used by the word-rain path
// which tokenizes once and scores per year.
func (s *Scorer) ScoreTokens(tokenized [][]string, scoring Scoring, limit int) []ScoredTerm {
	var values map[string]float64
	if scoring == ScoringImportance {
		values = newTFIDFCorpus(tokenized).aggregate()
	} else {
		values = countAll(tokenized)
	}
	return rank(values, firstSeen(tokenized), limit)
}

// Tokenize applies the mode's extractor to one document text.
func (s *Scorer) Tokenize(raw string, mode Mode) []string {
	if mode == ModePhrases {
		return text.ExtractPhrases(raw, s.Chunker)
	}
	return text.Tokenize(raw)
}

func (s *Scorer) tokenizeAll(docs []corpus.Document, mode Mode) [][]string {
	out := make([][]string, 0, len(docs))
	for _, d := range docs {
		if d.Text == "" {
			continue
		}
		out = append(out, s.Tokenize(d.Text, mode))
	}
	return out
}

// TermWeights returns the aggregated TF-IDF weight of every term in the
// tokenized corpus, without ranking or truncation. The word-rain path uses
// this to build per-year weight maps for terms chosen globally.
func TermWeights(tokenized [][]string) map[string]float64 {
	return newTFIDFCorpus(tokenized).aggregate()
}

// TermCounts returns the raw occurrence count of every term in the
// tokenized corpus.
func TermCounts(tokenized [][]string) map[string]float64 {
	return countAll(tokenized)
}

// countAll sums raw occurrences across all documents.
func countAll(docs [][]string) map[string]float64 {
	counts := make(map[string]float64)
	for _, tokens := range docs {
		for _, tok := range tokens {
			counts[tok]++
		}
	}
	return counts
}

// firstSeen records the global first-occurrence index of each term, used as
// the deterministic tie-breaker when values are equal.
func firstSeen(docs [][]string) map[string]int {
	order := make(map[string]int)
	i := 0
	for _, tokens := range docs {
		for _, tok := range tokens {
			if _, ok := order[tok]; !ok {
				order[tok] = i
				i++
			}
		}
	}
	return order
}

// rank sorts terms descending by value, breaking ties by first-seen order,
// and truncates to limit.
func rank(values map[string]float64, order map[string]int, limit int) []ScoredTerm {
	terms := make([]ScoredTerm, 0, len(values))
	for term, v := range values {
		terms = append(terms, ScoredTerm{Term: term, Value: v})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Value != terms[j].Value {
			return terms[i].Value > terms[j].Value
		}
		return order[terms[i].Term] < order[terms[j].Term]
	})

	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
