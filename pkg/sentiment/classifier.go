package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/outlooklabs/termrain/pkg/observability"
)

// DefaultClassifierTimeout bounds each classifier call. The upstream
// scoring layer left this call unbounded, which let one stuck request stall
// every following batch; 15s is generous for a hosted inference endpoint.
const DefaultClassifierTimeout = 15 * time.Second

// Classification is one label/confidence pair from the external model.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier calls an external FinBERT-style text-classification endpoint.
// The endpoint is treated as untrusted and best-effort: malformed responses
// and transport failures surface as errors the cascade degrades from.
type Classifier struct {
	url     string
	token   string
	client  *http.Client
	timeout time.Duration
}

// ClassifierOption customizes a Classifier.
type ClassifierOption func(*Classifier)

// WithHTTPClient overrides the HTTP client (tests inject httptest clients).
func WithHTTPClient(c *http.Client) ClassifierOption {
	return func(cl *Classifier) { cl.client = c }
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) ClassifierOption {
	return func(cl *Classifier) { cl.timeout = d }
}

// WithToken sets the bearer token sent to the inference endpoint.
func WithToken(token string) ClassifierOption {
	return func(cl *Classifier) { cl.token = token }
}

// NewClassifier creates a classifier client for the given endpoint URL.
func NewClassifier(url string, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		url:     url,
		client:  http.DefaultClient,
		timeout: DefaultClassifierTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify sends the context text to the endpoint and returns its label
// scores, highest confidence first.
func (c *Classifier) Classify(ctx context.Context, contextText string) ([]Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"inputs": contextText})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, http.MethodPost, req.URL.Host, req.URL.Path)
	resp, err := c.client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodPost, req.URL.Host, req.URL.Path, err)
		return nil, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodPost, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("classifier body: %w", err)
	}

	return parseClassifications(data)
}

// parseClassifications accepts both response shapes the inference API
// produces: a flat list of classifications or a singleton-wrapped list.
func parseClassifications(data []byte) ([]Classification, error) {
	var flat []Classification
	if err := json.Unmarshal(data, &flat); err == nil && len(flat) > 0 && flat[0].Label != "" {
		return flat, nil
	}

	var nested [][]Classification
	if err := json.Unmarshal(data, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	return nil, fmt.Errorf("classifier: unrecognized response %q", truncate(data, 120))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// ContextSentence embeds a bare term into a short sentence the classifier
// can score meaningfully.
func ContextSentence(term string) string {
	verb := "focused on"
	if strings.Contains(term, " ") {
		verb = "discussing"
	}
	return fmt.Sprintf("Analysts are %s %s. The sentiment is", verb, term)
}

// classifierTier runs the external call and writes successful results
// through to the memory cache and the persistent store. Any failure is a
// miss: the cascade falls through to the neutral default and the error is
// never propagated.
type classifierTier struct {
	classifier *Classifier
	memory     *MemoryCache
	store      Store
	logger     *log.Logger
}

func (t classifierTier) Name() string { return "classifier" }

func (t classifierTier) Lookup(ctx context.Context, term string) (Result, bool) {
	out, err := t.classifier.Classify(ctx, ContextSentence(term))
	if err != nil || len(out) == 0 {
		t.logger.Debug("sentiment classification failed", "term", term, "err", err)
		return Result{}, false
	}

	res := fromClassification(term, out[0])
	t.memory.Put(term, res)

	if t.store != nil {
		entry := Entry{
			Term:            term,
			Label:           res.Label,
			Score:           res.Score,
			NormalizedScore: res.NormalizedScore,
			Source:          SourceClassifier,
		}
		if err := t.store.Upsert(ctx, entry); err != nil {
			t.logger.Debug("sentiment store write failed", "term", term, "err", err)
		}
	}

	return res, true
}

// fromClassification maps the top classifier label to a normalized result:
// positive -> +score, negative -> -score, anything else -> neutral 0.
func fromClassification(term string, c Classification) Result {
	res := Result{Term: term, Score: c.Score}
	switch Label(strings.ToLower(c.Label)) {
	case LabelPositive:
		res.Label = LabelPositive
		res.NormalizedScore = c.Score
	case LabelNegative:
		res.Label = LabelNegative
		res.NormalizedScore = -c.Score
	default:
		res.Label = LabelNeutral
		res.NormalizedScore = 0
	}
	return res
}

var _ Tier = classifierTier{}
