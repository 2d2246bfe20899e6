// Package rain places scored, semantically positioned terms onto a bounded
// canvas without overlap.
//
// The canvas is a vertical stack of three zones: a fixed-height title zone,
// a bar zone (top third of the remaining height) holding importance bars,
// and a word zone where terms cascade downward. Placement is greedy: terms
// are laid out most-important-first, each pushed down and jittered until
// its padded bounding box clears every earlier placement. Terms that still
// collide after the attempt cap are dropped, not errored.
//
// All randomness comes from an injected seeded generator, so a layout is
// reproducible for a given input and seed.
package rain

import (
	"math"
	"math/rand"
	"sort"
)

// Canvas geometry defaults, in user units (SVG pixels).
const (
	DefaultWidth  = 900.0
	DefaultHeight = 750.0
	DefaultSeed   = int64(42)

	titleHeight   = 40.0
	barZoneRatio  = 0.33
	sideMargin    = 35.0
	bottomMargin  = 20.0
	minFontSize   = 6.0
	maxFontSize   = 32.0
	charWidthRate = 0.52
	lineHeight    = 1.15
	padding       = 6.0
	yRangeRatio   = 0.85
	pushDownRate  = 0.7
	maxAttempts   = 60
)

// Word is a layout input: a term with its importance value and semantic x
// position in [0,1].
type Word struct {
	Text      string
	Value     float64
	SemanticX float64
}

// PlacedWord is a term placed on the canvas. X is the text anchor center,
// Y the top of the text box, BarTop the upper end of the importance bar.
type PlacedWord struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	BarTop   float64 `json:"barTop"`
	FontSize float64 `json:"fontSize"`
	Color    string  `json:"color"`
}

// Options configures a layout run.
type Options struct {
	Width  float64
	Height float64
	Seed   int64
}

// setDefaults fills zero fields.
func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// rect is an axis-aligned padded bounding box.
type rect struct {
	x1, y1, x2, y2 float64
}

func (r rect) intersects(o rect) bool {
	return r.x1 < o.x2 && r.x2 > o.x1 && r.y1 < o.y2 && r.y2 > o.y1
}

// Layout places words onto the canvas. Words that cannot be placed within
// the attempt cap are silently dropped; the output preserves descending
// importance order of the survivors.
func Layout(words []Word, opts Options) []PlacedWord {
	opts.setDefaults()
	if len(words) == 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	// Zone boundaries.
	barZoneHeight := opts.Height * barZoneRatio
	wordZoneTop := titleHeight + barZoneHeight
	wordZoneHeight := opts.Height - wordZoneTop - bottomMargin
	innerWidth := opts.Width - 2*sideMargin

	// Most important first; ties by text for determinism.
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].Text < sorted[j].Text
	})

	maxValue := sorted[0].Value
	if maxValue <= 0 {
		maxValue = 1
	}

	fontCap := min(maxFontSize, opts.Width/30)

	placed := make([]PlacedWord, 0, len(sorted))
	occupied := make([]rect, 0, len(sorted))

	for _, w := range sorted {
		norm := logNorm(w.Value, maxValue)
		fontSize := minFontSize + norm*(fontCap-minFontSize)

		// Heuristic bounding box from character count.
		textWidth := float64(len(w.Text)) * charWidthRate * fontSize
		textHeight := fontSize * lineHeight

		clampX := func(x float64) float64 {
			lo := sideMargin + textWidth/2 + 5
			hi := opts.Width - sideMargin - textWidth/2 - 5
			return math.Max(lo, math.Min(hi, x))
		}

		x := clampX(sideMargin + w.SemanticX*innerWidth)

		// Higher importance starts nearer the top of the word zone.
		baseY := wordZoneTop + (1-norm)*wordZoneHeight*yRangeRatio
		y := baseY

		// Taller bars for higher importance: the bar top climbs toward the
		// top of the bar zone.
		barTopMin := titleHeight + 10
		barTopMax := wordZoneTop - 5
		barTop := barTopMin + (1-norm)*(barTopMax-barTopMin)

		attempts := 0
		for attempts < maxAttempts {
			candidate := rect{
				x1: x - textWidth/2 - padding,
				y1: y - padding,
				x2: x + textWidth/2 + padding,
				y2: y + textHeight + padding,
			}

			collides := false
			for _, r := range occupied {
				if candidate.intersects(r) {
					collides = true
					break
				}
			}
			if !collides {
				break
			}

			y += textHeight * pushDownRate

			// Fallen out of the word zone: reset near the baseline with
			// horizontal jitter and keep trying.
			if y > opts.Height-30-textHeight {
				y = baseY + rng.Float64()*textHeight*0.5
				dir := 1.0
				if rng.Float64() <= 0.5 {
					dir = -1.0
				}
				x = clampX(x + dir*textWidth*0.4)
			}

			attempts++
		}

		if attempts >= maxAttempts || y > opts.Height-25-textHeight {
			continue // drop: no retry at smaller font
		}

		placed = append(placed, PlacedWord{
			Text:     w.Text,
			X:        x,
			Y:        y,
			BarTop:   barTop,
			FontSize: fontSize,
			Color:    SemanticColor(w.SemanticX),
		})
		occupied = append(occupied, rect{
			x1: x - textWidth/2 - padding/2,
			y1: y - padding/2,
			x2: x + textWidth/2 + padding/2,
			y2: y + textHeight + padding/2,
		})
	}

	return placed
}

// logNorm maps a value onto [0,1] on a log scale against the set maximum.
func logNorm(v, maxValue float64) float64 {
	if v < 0 {
		v = 0
	}
	n := math.Log(v+1) / math.Log(maxValue+1)
	return math.Max(0, math.Min(1, n))
}

// WordZoneTop returns the y coordinate separating the bar zone from the
// word zone for the given canvas height. The renderer draws the zone
// separator here.
func WordZoneTop(height float64) float64 {
	return titleHeight + height*barZoneRatio
}
