package rain

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Semantic axis color ramp endpoints. The ramp runs through three linear
// RGB segments so nearby terms on the axis share a hue family.
var (
	rampBlue    = colorful.Color{R: 80 / 255.0, G: 140 / 255.0, B: 200 / 255.0}
	rampCyan    = colorful.Color{R: 120 / 255.0, G: 220 / 255.0, B: 170 / 255.0}
	rampOlive   = colorful.Color{R: 150 / 255.0, G: 180 / 255.0, B: 120 / 255.0}
	rampMagenta = colorful.Color{R: 250 / 255.0, G: 100 / 255.0, B: 255 / 255.0}
)

// SemanticColor maps an x position in [0,1] onto the three-segment ramp
// blue -> cyan -> olive -> magenta and returns a CSS rgb() string.
func SemanticColor(x float64) string {
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}

	var c colorful.Color
	switch {
	case x < 0.33:
		c = rampBlue.BlendRgb(rampCyan, x/0.33)
	case x < 0.66:
		c = rampCyan.BlendRgb(rampOlive, (x-0.33)/0.33)
	default:
		c = rampOlive.BlendRgb(rampMagenta, (x-0.66)/0.34)
	}

	r, g, b := c.RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}
