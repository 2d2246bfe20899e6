// Package cache provides the result cache shared by the CLI and the API
// server.
//
// # Architecture
//
// The pipeline caches each expensive stage under a composite key: scored
// wordlists by their request parameters, layouts by wordlist hash plus
// canvas options, artifacts by layout hash plus format. Backends are
// pluggable behind the [Cache] interface:
//
//   - [RedisCache] for the server deployment (shared, TTL-evicted)
//   - [FileCache] for CLI usage (persistent across runs)
//   - [NullCache] to disable caching entirely
//
// Keys are produced by a [Keyer] so every caller composes them the same
// way. Option structs are hashed into the key, which keeps distinct
// parameter combinations on distinct entries.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TTLs per stage. Wordlists and rain aggregations follow the corpus, which
// changes at most a few times a day; layouts and artifacts are derived data
// and can live longer. Sentiments never go stale (terms keep their tone) so
// they are stored without expiration.
const (
	TTLWordlist  = 24 * time.Hour
	TTLRain      = 24 * time.Hour
	TTLLayout    = 7 * 24 * time.Hour
	TTLArtifact  = 7 * 24 * time.Hour
	TTLSentiment = time.Duration(0)
)

// Cache is the storage interface for computed results.
type Cache interface {
	// Get retrieves data for a key. The bool reports whether the key was
	// present; an expired or malformed entry counts as a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under a key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// WordlistKeyOpts identify a scored wordlist request.
type WordlistKeyOpts struct {
	Scope   string `json:"scope"`
	Mode    string `json:"mode"`
	Scoring string `json:"scoring"`
	Limit   int    `json:"limit"`
}

// LayoutKeyOpts identify a layout computed from a wordlist.
type LayoutKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Seed   int64   `json:"seed"`
}

// ArtifactKeyOpts identify a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// WordlistKey keys a scored wordlist by its normalized request
	// parameters.
	WordlistKey(opts WordlistKeyOpts) string

	// RainKey keys a per-year word-rain aggregation.
	RainKey(opts WordlistKeyOpts) string

	// LayoutKey keys a computed layout by the wordlist content hash and
	// canvas options.
	LayoutKey(wordlistHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout content hash and
	// output format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// SentimentKey keys a resolved sentiment by normalized term.
	SentimentKey(term string) string
}

// DefaultKeyer hashes option structs into stage-prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// WordlistKey generates a key for a scored wordlist.
func (k *DefaultKeyer) WordlistKey(opts WordlistKeyOpts) string {
	return hashKey("wordlist", opts)
}

// RainKey generates a key for a word-rain aggregation.
func (k *DefaultKeyer) RainKey(opts WordlistKeyOpts) string {
	return hashKey("rain", opts)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(wordlistHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", wordlistHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// SentimentKey generates a key for a resolved sentiment. Terms are short
// and already normalized, so the key stays readable instead of hashed.
func (k *DefaultKeyer) SentimentKey(term string) string {
	return "sentiment:" + term
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// hashKey builds a stage-prefixed key from option payloads: the parts are
// marshaled and hashed, so any field change lands on a new entry. The full
// SHA-256 digest is kept; truncating it would let near-identical option
// structs collide.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data. The pipeline hashes stage outputs
// with it to key derived entries: layouts by their wordlist bytes,
// artifacts by their layout bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
