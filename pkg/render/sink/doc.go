// Package sink provides output format renderers for kolam scenes.
//
// # Overview
//
// A "sink" transforms a computed [kolam.Scene] into a final output format.
// This package provides renderers for:
//
//   - PNG: Raster image drawn with fogleman/gg
//   - SVG: Vector document written with ajstarks/svgo
//   - PDF: Print-ready output (SVG converted by rsvg-convert)
//   - JSON: Scene geometry export for external tools
//
// PNG and SVG implement [render.Canvas] and are driven by [render.Compose],
// so both formats show exactly the same lattice, stroke style and layers.
//
//	png, err := sink.RenderPNG(scene, sink.WithScale(2))
//	svg := sink.RenderSVG(scene, sink.WithTitle("Kolam"))
//	pdf, err := sink.RenderPDF(scene)
//	data, err := sink.RenderJSON(scene)
//
// PDF output requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [kolam.Scene]: github.com/matzehuels/kolam/pkg/kolam.Scene
// [render.Canvas]: github.com/matzehuels/kolam/pkg/render.Canvas
// [render.Compose]: github.com/matzehuels/kolam/pkg/render.Compose
package sink
