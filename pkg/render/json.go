package render

import (
	"encoding/json"

	"github.com/outlooklabs/termrain/pkg/rain"
)

// JSONOption configures JSON rendering via [JSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	width  float64
	height float64
	seed   int64
	title  string
	status string
}

// WithJSONTitle records the panel title in the output.
func WithJSONTitle(title string) JSONOption { return func(r *jsonRenderer) { r.title = title } }

// WithJSONSize records the canvas dimensions the layout was computed for.
func WithJSONSize(width, height float64) JSONOption {
	return func(r *jsonRenderer) {
		r.width = width
		r.height = height
	}
}

// WithJSONSeed records the layout seed, enabling reproducible re-rendering
// with the same jitter.
func WithJSONSeed(seed int64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

// WithJSONStatus records which path produced the semantic positions
// ("connected" or "fallback").
func WithJSONStatus(status string) JSONOption { return func(r *jsonRenderer) { r.status = status } }

type jsonOutput struct {
	Width  float64           `json:"width"`
	Height float64           `json:"height"`
	Seed   int64             `json:"seed,omitempty"`
	Title  string            `json:"title,omitempty"`
	Status string            `json:"status,omitempty"`
	Words  []rain.PlacedWord `json:"words"`
}

// JSON exports the placed layout as a pretty-printed JSON document for
// external visualization clients. It returns an error only if marshaling
// fails and is safe to call concurrently.
func JSON(placed []rain.PlacedWord, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{width: rain.DefaultWidth, height: rain.DefaultHeight}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:  r.width,
		Height: r.height,
		Seed:   r.seed,
		Title:  r.title,
		Status: r.status,
		Words:  placed,
	}
	if out.Words == nil {
		out.Words = []rain.PlacedWord{}
	}

	return json.MarshalIndent(out, "", "  ")
}
