// Package score turns document sets into ranked term lists.
//
// Two extraction modes (words, phrases) combine with two scoring methods
// (frequency, importance). Frequency counts raw occurrences across the
// scope; importance aggregates per-document TF-IDF weights. Both produce a
// ScoredTerm list sorted descending by value, ties broken by first-seen
// order, truncated to one of the allowed limits.
//
// Mode and Scoring are closed enumerations. Out-of-range request parameters
// are coerced to defaults rather than rejected, matching the caller-facing
// contract of the analytics endpoints.
package score

// Mode selects the term kind to extract.
type Mode string

// Extraction modes.
const (
	ModeWords   Mode = "words"
	ModePhrases Mode = "phrases"
)

// Scoring selects the ranking method.
type Scoring string

// Scoring methods.
const (
	ScoringFrequency  Scoring = "frequency"
	ScoringImportance Scoring = "importance"
)

// Allowed word limits. Requests outside this set coerce to DefaultLimit.
var AllowedLimits = []int{50, 100, 150}

// DefaultLimit is applied when a requested limit is absent or not allowed.
const DefaultLimit = 100

// NormalizeMode coerces an arbitrary string to a valid Mode.
// Anything other than "phrases" means words.
func NormalizeMode(s string) Mode {
	if Mode(s) == ModePhrases {
		return ModePhrases
	}
	return ModeWords
}

// NormalizeScoring coerces an arbitrary string to a valid Scoring.
// Anything other than "importance" means frequency.
func NormalizeScoring(s string) Scoring {
	if Scoring(s) == ScoringImportance {
		return ScoringImportance
	}
	return ScoringFrequency
}

// NormalizeLimit coerces a requested limit to the allowed set.
func NormalizeLimit(n int) int {
	for _, l := range AllowedLimits {
		if n == l {
			return n
		}
	}
	return DefaultLimit
}

// ScoredTerm is one ranked term. Value is a raw occurrence count in
// frequency mode or an aggregated TF-IDF weight in importance mode.
type ScoredTerm struct {
	Term  string  `json:"text"`
	Value float64 `json:"value"`
}
