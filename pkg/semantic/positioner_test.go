package semantic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestPositionsConnected(t *testing.T) {
	var gotReq projectRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := json.NewDecoder(req.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"positions":{"inflation":0.12,"recession":0.87}}`)
	}))
	defer srv.Close()

	p := NewPositioner(srv.URL, WithLogger(quietLogger()))
	terms := []string{"inflation", "recession", "equities"}
	positions, status := p.Positions(context.Background(), terms)

	if status != StatusConnected {
		t.Fatalf("status = %q, want connected", status)
	}
	if positions["inflation"] != 0.12 || positions["recession"] != 0.87 {
		t.Errorf("positions = %v", positions)
	}
	// Terms the service skipped land at the midpoint.
	if positions["equities"] != 0.5 {
		t.Errorf("skipped term position = %v, want 0.5", positions["equities"])
	}

	if gotReq.Perplexity != 2 {
		t.Errorf("perplexity = %d, want 2 for 3 samples", gotReq.Perplexity)
	}
	if gotReq.Iterations != Iterations {
		t.Errorf("n_iter = %d, want %d", gotReq.Iterations, Iterations)
	}
	if len(gotReq.Words) != 3 {
		t.Errorf("words = %v", gotReq.Words)
	}
}

func TestPositionsFallbackPaths(t *testing.T) {
	terms := []string{"inflation", "recession"}

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"malformed json", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"positions":`)
		}},
		{"missing positions", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{}`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := NewPositioner(srv.URL, WithLogger(quietLogger()))
			positions, status := p.Positions(context.Background(), terms)

			if status != StatusFallback {
				t.Fatalf("status = %q, want fallback", status)
			}
			want := FallbackPositions(terms)
			for term, x := range want {
				if positions[term] != x {
					t.Errorf("%q = %v, want fallback %v", term, positions[term], x)
				}
			}
		})
	}
}

func TestPositionsEmptyURLSkipsService(t *testing.T) {
	p := NewPositioner("", WithLogger(quietLogger()))
	positions, status := p.Positions(context.Background(), []string{"alpha", "beta"})
	if status != StatusFallback {
		t.Errorf("status = %q, want fallback", status)
	}
	if len(positions) != 2 {
		t.Errorf("positions = %v", positions)
	}
}

func TestPositionsTooFewSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("service should not be called for a single sample")
	}))
	defer srv.Close()

	p := NewPositioner(srv.URL, WithLogger(quietLogger()))
	_, status := p.Positions(context.Background(), []string{"solo"})
	if status != StatusFallback {
		t.Errorf("status = %q, want fallback", status)
	}
}

func TestClampPerplexity(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{2, 2},
		{3, 2},
		{10, 9},
		{31, 30},
		{300, 30},
	}
	for _, tt := range tests {
		if got := clampPerplexity(tt.n); got != tt.want {
			t.Errorf("clampPerplexity(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestFallbackPositions(t *testing.T) {
	terms := []string{"inflation", "recession", "ai"}

	first := FallbackPositions(terms)
	second := FallbackPositions(terms)

	for _, term := range terms {
		x := first[term]
		if x < 0 || x >= 1 {
			t.Errorf("%q position %v out of [0,1)", term, x)
		}
		if second[term] != x {
			t.Errorf("%q position not stable: %v vs %v", term, x, second[term])
		}
	}

	// Pinned: "ai" is 'a'(97)+'i'(105) = 202 -> 0.202.
	if first["ai"] != 0.202 {
		t.Errorf(`position("ai") = %v, want 0.202`, first["ai"])
	}
}
