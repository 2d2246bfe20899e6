package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "wordlist:abc")
	if err != nil || hit {
		t.Fatalf("expected clean miss, hit=%v err=%v", hit, err)
	}

	// Round trip
	want := []byte(`{"words":[]}`)
	if err := c.Set(ctx, "wordlist:abc", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "wordlist:abc")
	if err != nil || !hit {
		t.Fatalf("expected hit, hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}

	// Expired entries are misses
	if err := c.Set(ctx, "expiring", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "expiring"); hit {
		t.Error("expired entry should be a miss")
	}

	// Delete
	if err := c.Delete(ctx, "wordlist:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "wordlist:abc"); hit {
		t.Error("deleted entry should be a miss")
	}
	if err := c.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Distinct request parameters must land on distinct keys.
	base := WordlistKeyOpts{Scope: "all", Mode: "words", Scoring: "frequency", Limit: 100}
	variants := []WordlistKeyOpts{
		{Scope: "2025", Mode: "words", Scoring: "frequency", Limit: 100},
		{Scope: "all", Mode: "phrases", Scoring: "frequency", Limit: 100},
		{Scope: "all", Mode: "words", Scoring: "importance", Limit: 100},
		{Scope: "all", Mode: "words", Scoring: "frequency", Limit: 50},
	}
	baseKey := k.WordlistKey(base)
	for _, v := range variants {
		if k.WordlistKey(v) == baseKey {
			t.Errorf("opts %+v collides with base", v)
		}
	}

	// Same parameters, same key.
	if k.WordlistKey(base) != baseKey {
		t.Error("WordlistKey should be deterministic")
	}

	// Stage prefixes keep wordlist and rain entries apart.
	if k.RainKey(base) == k.WordlistKey(base) {
		t.Error("RainKey should not collide with WordlistKey")
	}

	// LayoutKey varies with canvas options.
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Width: 900, Height: 750, Seed: 42})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Width: 900, Height: 750, Seed: 7})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}

	// ArtifactKey varies with format.
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "json"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}

	// SentimentKey stays readable.
	if got := k.SentimentKey("rate cuts"); got != "sentiment:rate cuts" {
		t.Errorf("SentimentKey unexpected: %s", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	// All keys should be prefixed
	key := scoped.SentimentKey("bullish")
	if key != "staging:sentiment:bullish" {
		t.Errorf("ScopedKeyer SentimentKey unexpected: %s", key)
	}

	wk := scoped.WordlistKey(WordlistKeyOpts{Scope: "all", Mode: "words", Scoring: "frequency", Limit: 100})
	if len(wk) < 15 || wk[:8] != "staging:" {
		t.Errorf("ScopedKeyer WordlistKey should be prefixed: %s", wk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.SentimentKey("ai")
	if key != "prefix:sentiment:ai" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) must stay nil")
	}

	errDown := errors.New("connection refused")
	wrapped := Retryable(errDown)
	if !IsRetryable(wrapped) {
		t.Error("wrapped error must report retryable")
	}
	if wrapped.Error() != errDown.Error() {
		t.Errorf("message lost in wrapping: %q", wrapped.Error())
	}
	if !errors.Is(wrapped, errDown) {
		t.Error("wrapped error must unwrap to the original")
	}
	if IsRetryable(errDown) {
		t.Error("bare error must not report retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on the first try: exactly one call.
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("RetryWithBackoff: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	// Unmarked errors abort immediately.
	errBadKey := errors.New("malformed key")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errBadKey
	})
	if !errors.Is(err, errBadKey) {
		t.Errorf("err = %v, want the unmarked error back", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, unmarked errors must not retry", calls)
	}

	// Transient errors get another attempt.
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("connection refused"))
		}
		return nil
	})
	if err != nil {
		t.Errorf("should recover after one retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("connection refused"))
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
