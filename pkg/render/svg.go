package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/outlooklabs/termrain/pkg/rain"
)

// SVGOption configures SVG rendering via [SVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width  float64
	height float64
	title  string
}

// WithTitle draws a centered title in the title zone.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithSize sets the canvas dimensions. They must match the dimensions the
// layout was computed for or bars and words drift out of their zones.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) {
		r.width = width
		r.height = height
	}
}

// SVG renders a placed layout as a standalone SVG document. Bars are drawn
// behind words so text stays legible in dense regions.
func SVG(placed []rain.PlacedWord, opts ...SVGOption) []byte {
	r := svgRenderer{width: rain.DefaultWidth, height: rain.DefaultHeight}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)

	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.0f" height="%.0f" fill="white"/>`+"\n", r.width, r.height)

	// Separator between the bar zone and the word zone.
	sep := rain.WordZoneTop(r.height)
	fmt.Fprintf(&buf, `  <line x1="30" x2="%.0f" y1="%.1f" y2="%.1f" stroke="#e2e8f0" stroke-width="1" stroke-dasharray="4,4" opacity="0.5"/>`+"\n",
		r.width-30, sep, sep)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="26" text-anchor="middle" font-size="15" font-weight="600" fill="#1e293b">%s</text>`+"\n",
			r.width/2, escape(r.title))
	}

	for _, w := range placed {
		fmt.Fprintf(&buf, `  <g><line x1="%.1f" x2="%.1f" y1="%.1f" y2="%.1f" stroke="%s" stroke-width="0.8" stroke-opacity="0.65"/>`,
			w.X, w.X, w.Y+2, w.BarTop, w.Color)
		fmt.Fprintf(&buf, `<circle cx="%.1f" cy="%.1f" r="1.5" fill="%s" fill-opacity="0.85"/></g>`+"\n",
			w.X, w.BarTop, w.Color)
	}

	for _, w := range placed {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.1f" fill="%s" font-family="system-ui, sans-serif">%s</text>`+"\n",
			w.X, w.Y+w.FontSize*0.85, w.FontSize, w.Color, escape(w.Text))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }
