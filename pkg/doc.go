// Package pkg provides the core libraries for drawing kolam patterns.
//
// # Overview
//
// A kolam is a South Indian floor drawing: a lattice of dots with strokes
// looping around them. This module builds the dot lattice and a symmetric
// stroke pattern from a small set of parameters, stacks the pattern into
// translucent layers, and renders the result to SVG, PNG, PDF or scene JSON.
// Richer design families and photo analysis are delegated to a remote
// design service.
//
// # Architecture
//
// The data flow of a local render:
//
//	Params (grid, rows, columns, spacing, stroke, symmetry, iterations)
//	         ↓
//	    [kolam] BuildLattice + Synthesize (dots and stroke paths)
//	         ↓
//	    [kolam] Layers (FadeStack or Spiral)
//	         ↓
//	    [render] Compose onto a canvas
//	         ↓
//	    [render/sink] SVG / PNG / PDF / JSON
//
// A remote design skips the first three steps: the service returns SVG
// markup, which the [pipeline] emits verbatim or converts to PNG and PDF.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Params:  kolam.DefaultParams(),
//	    Formats: []string{"svg", "png"},
//	})
//	os.WriteFile("kolam.svg", res.Artifacts["svg"], 0o644)
//
// # Main Packages
//
// [kolam] - Parameters, lattice rules, pattern synthesis per symmetry class
// and layer transforms. Pure geometry with no I/O.
//
// [render] - Stroke styles, composition onto a [render.Canvas] and SVG
// conversion. [render/sink] holds the output formats.
//
// [pipeline] - Validation, scene building, rendering and caching behind a
// single [pipeline.Runner], shared by the CLI and the HTTP server.
//
// [design] - Design family configurations (L-system, suzhi, kambi, group
// theory) and the generation request body.
//
// [integrations] - The shared HTTP client; [integrations/kolamkar] talks to
// the design service.
//
// [studio] - Interactive session state: edited parameters, the last
// generated markup or error, and a file store for saved sessions.
//
// [io] - Parameter documents in JSON and TOML.
//
// [config] - User settings, environment overrides and cache backend
// selection.
//
// [cache] - File, Redis and null caches with scoped keys.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
//	go test ./...
//	go test -run Example ./pkg/...
//
// [kolam]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/kolam
// [render]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/render
// [render.Canvas]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/render#Canvas
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/pipeline#Runner
// [design]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/design
// [integrations]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/integrations
// [integrations/kolamkar]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/integrations/kolamkar
// [studio]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/studio
// [io]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/kolam/pkg/errors
package pkg
