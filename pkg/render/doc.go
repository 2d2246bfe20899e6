// Package render turns placed word layouts into output artifacts.
//
// # Overview
//
// This package contains the final pipeline stage that transforms a computed
// word-rain layout into serialized outputs. It provides:
//
//   - SVG documents (title zone, importance bars, cascading words)
//   - JSON documents for external visualization clients
//
// # Usage
//
//	placed := rain.Layout(words, rain.Options{Seed: 42})
//	svg := render.SVG(placed, render.WithTitle("2025 Outlooks"))
//	data, err := render.JSON(placed, render.WithJSONTitle("2025 Outlooks"))
//
// Both sinks are pure functions of the layout plus options: rendering the
// same layout twice yields byte-identical output.
package render
