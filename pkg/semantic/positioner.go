// Package semantic maps terms to 1-D positions on the semantic axis.
//
// The primary path asks an external projection service to embed and reduce
// the terms to a scalar in [0,1]. When the service is unreachable, slow, or
// returns garbage, a pure deterministic fallback keeps the pipeline moving:
// the caller always gets a position for every term, plus a status flag
// saying which path produced it.
package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/outlooklabs/termrain/pkg/observability"
)

// Status reports which path produced the positions.
type Status string

// Position statuses.
const (
	StatusConnected Status = "connected"
	StatusFallback  Status = "fallback"
)

// Projection service parameters. Perplexity must stay strictly below the
// sample count, so it is clamped to [MinPerplexity, min(MaxPerplexity, n-1)].
const (
	MinPerplexity  = 2
	MaxPerplexity  = 30
	Iterations     = 500
	DefaultTimeout = 30 * time.Second
)

// Positioner resolves semantic x positions for term lists.
type Positioner struct {
	url     string
	client  *http.Client
	timeout time.Duration
	logger  *log.Logger
}

// Option customizes a Positioner.
type Option func(*Positioner)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Positioner) { p.client = c }
}

// WithTimeout overrides the projection call timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Positioner) { p.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Positioner) { p.logger = l }
}

// NewPositioner creates a positioner for the given projection service URL.
// An empty URL skips the service entirely and always uses the fallback.
func NewPositioner(url string, opts ...Option) *Positioner {
	p := &Positioner{
		url:     url,
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Positions returns an x in [0,1] for every input term and the status of
// the resolution. It never fails: service problems degrade to the
// deterministic fallback.
func (p *Positioner) Positions(ctx context.Context, terms []string) (map[string]float64, Status) {
	if p.url != "" && len(terms) >= MinPerplexity {
		if positions, err := p.project(ctx, terms); err == nil {
			// Terms the service skipped land at the axis midpoint.
			for _, t := range terms {
				if _, ok := positions[t]; !ok {
					positions[t] = 0.5
				}
			}
			return positions, StatusConnected
		} else {
			p.logger.Warn("projection service unavailable, using fallback positions", "err", err)
		}
	}
	return FallbackPositions(terms), StatusFallback
}

type projectRequest struct {
	Words      []string `json:"words"`
	Perplexity int      `json:"perplexity"`
	Iterations int      `json:"n_iter"`
}

type projectResponse struct {
	Positions map[string]float64 `json:"positions"`
}

func (p *Positioner) project(ctx context.Context, terms []string) (map[string]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	body, err := json.Marshal(projectRequest{
		Words:      terms,
		Perplexity: clampPerplexity(len(terms)),
		Iterations: Iterations,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	observability.HTTP().OnRequest(ctx, http.MethodPost, req.URL.Host, req.URL.Path)
	resp, err := p.client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodPost, req.URL.Host, req.URL.Path, err)
		return nil, fmt.Errorf("projection request: %w", err)
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodPost, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("projection status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("projection body: %w", err)
	}

	var parsed projectResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("projection response: %w", err)
	}
	if parsed.Positions == nil {
		return nil, fmt.Errorf("projection response missing positions")
	}
	return parsed.Positions, nil
}

// clampPerplexity keeps perplexity valid for n samples.
func clampPerplexity(n int) int {
	p := min(MaxPerplexity, n-1)
	return max(MinPerplexity, p)
}

// FallbackPositions derives a pure pseudo-position for each term: the sum
// of its character codes modulo 1000, scaled into [0,1). The mapping is
// stable across runs and requires no I/O.
func FallbackPositions(terms []string) map[string]float64 {
	positions := make(map[string]float64, len(terms))
	for _, term := range terms {
		sum := 0
		for _, r := range term {
			sum += int(r)
		}
		positions[term] = float64(sum%1000) / 1000
	}
	return positions
}
