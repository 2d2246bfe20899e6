package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/outlooklabs/termrain/pkg/rain"
)

func samplePlacement() []rain.PlacedWord {
	return rain.Layout([]rain.Word{
		{Text: "inflation", Value: 12, SemanticX: 0.2},
		{Text: "rate cuts", Value: 8, SemanticX: 0.5},
		{Text: "ai", Value: 20, SemanticX: 0.9},
	}, rain.Options{Seed: 42})
}

func TestSVGStructure(t *testing.T) {
	placed := samplePlacement()
	svg := string(SVG(placed, WithTitle("2025 Outlooks")))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatalf("missing svg root element: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("unterminated svg document")
	}
	if !strings.Contains(svg, ">2025 Outlooks</text>") {
		t.Error("missing title text")
	}
	if !strings.Contains(svg, `stroke-dasharray="4,4"`) {
		t.Error("missing zone separator")
	}
	for _, w := range placed {
		if !strings.Contains(svg, ">"+w.Text+"</text>") {
			t.Errorf("missing word %q", w.Text)
		}
	}
	if got, want := strings.Count(svg, "<circle"), len(placed); got != want {
		t.Errorf("bar dot count = %d, want %d", got, want)
	}
}

func TestSVGEscapesText(t *testing.T) {
	placed := []rain.PlacedWord{{Text: "m&a <deals>", X: 100, Y: 400, BarTop: 60, FontSize: 12, Color: "rgb(80, 140, 200)"}}
	svg := string(SVG(placed))
	if strings.Contains(svg, "m&a <deals>") {
		t.Error("text not escaped")
	}
	if !strings.Contains(svg, "m&amp;a &lt;deals&gt;") {
		t.Error("escaped text missing")
	}
}

func TestSVGDeterministic(t *testing.T) {
	placed := samplePlacement()
	a := SVG(placed, WithTitle("t"), WithSize(900, 750))
	b := SVG(placed, WithTitle("t"), WithSize(900, 750))
	if !bytes.Equal(a, b) {
		t.Error("identical layouts rendered differently")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	placed := samplePlacement()
	data, err := JSON(placed,
		WithJSONTitle("2025 Outlooks"),
		WithJSONSeed(42),
		WithJSONStatus("fallback"),
	)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out struct {
		Width  float64           `json:"width"`
		Height float64           `json:"height"`
		Seed   int64             `json:"seed"`
		Title  string            `json:"title"`
		Status string            `json:"status"`
		Words  []rain.PlacedWord `json:"words"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Width != rain.DefaultWidth || out.Height != rain.DefaultHeight {
		t.Errorf("dimensions = %vx%v", out.Width, out.Height)
	}
	if out.Seed != 42 || out.Title != "2025 Outlooks" || out.Status != "fallback" {
		t.Errorf("metadata not preserved: %+v", out)
	}
	if len(out.Words) != len(placed) {
		t.Errorf("word count = %d, want %d", len(out.Words), len(placed))
	}
}

func TestJSONEmptyLayout(t *testing.T) {
	data, err := JSON(nil)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(string(data), `"words": []`) {
		t.Errorf("nil layout should serialize as empty array: %s", data)
	}
}
