package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple deployments can share
// one backend without key collisions.
//
// Example usage:
//
//	// Environment-specific keys on a shared Redis
//	stagingKeyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// WordlistKey generates a prefixed wordlist key.
func (k *ScopedKeyer) WordlistKey(opts WordlistKeyOpts) string {
	return k.prefix + k.inner.WordlistKey(opts)
}

// RainKey generates a prefixed word-rain key.
func (k *ScopedKeyer) RainKey(opts WordlistKeyOpts) string {
	return k.prefix + k.inner.RainKey(opts)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(wordlistHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(wordlistHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// SentimentKey generates a prefixed sentiment key.
func (k *ScopedKeyer) SentimentKey(term string) string {
	return k.prefix + k.inner.SentimentKey(term)
}
