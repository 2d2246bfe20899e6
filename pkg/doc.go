// Package pkg provides the core libraries for Termrain outlook analytics.
//
// # Overview
//
// Termrain turns a corpus of annual financial-outlook documents into a word
// rain: the most important terms placed on a canvas, positioned by semantic
// similarity, sized by importance, and colored along the semantic axis. The
// pkg directory is organized into four main areas:
//
//  1. Extraction - [text] (tokenizer, phrase extractor) and [score]
//     (frequency and TF-IDF ranking) over the [corpus] document store
//  2. Enrichment - [sentiment] (tiered resolution cascade) and [semantic]
//     (projection client with deterministic fallback)
//  3. Presentation - [rain] (collision layout, color ramp) and [render]
//     (SVG/JSON emitters)
//  4. Infrastructure - [cache] (file/Redis/null backends with composite
//     keys), [pipeline] (orchestration), [errors], [observability],
//     [buildinfo]
//
// # Architecture
//
// The typical data flow through Termrain:
//
//	Outlook Corpus (MongoDB)
//	         ↓
//	    [text] + [score] (extract and rank terms)
//	         ↓
//	    [semantic] ∥ [sentiment] (position and classify)
//	         ↓
//	    [rain] (place words on the canvas)
//	         ↓
//	    [render] (SVG / JSON artifacts)
//
// Each expensive stage reads and writes through [cache]; [pipeline.Runner]
// ties the stages together for the CLI and the HTTP API.
//
// # Quick Start
//
// Compute and render a word rain:
//
//	runner := pipeline.NewRunner(pipeline.Deps{
//	    Cache:  fileCache,
//	    Source: source,
//	})
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	agg, _ := runner.WordRain(ctx, opts)
//	placed, _ := runner.Layout(ctx, agg, opts)
//	artifacts, _ := runner.Render(ctx, placed, "Outlooks", opts)
//
// [text]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/text
// [score]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/score
// [corpus]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/corpus
// [sentiment]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/sentiment
// [semantic]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/semantic
// [rain]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/rain
// [render]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/render
// [cache]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/errors
// [observability]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/buildinfo
// [pipeline.Runner]: https://pkg.go.dev/github.com/outlooklabs/termrain/pkg/pipeline#Runner
package pkg
