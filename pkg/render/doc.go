// Package render draws kolam scenes onto drawing surfaces.
//
// # Overview
//
// The layered compositor, [Compose], is the final stage of the kolam
// pipeline. It is written against the small [Canvas] interface so the same
// drawing sequence produces raster and vector output:
//
//   - Raster: a fogleman/gg canvas (in the [sink] subpackage)
//   - Vector: an SVG canvas built with ajstarks/svgo (in [sink])
//
// Compose issues calls in a fixed, non-interleaved order: clear the
// background, draw every lattice point as a disc, configure the stroke once,
// then stroke each layer of the pattern at its opacity.
//
//	scene := kolam.NewScene(params, 400, 400, nil)
//	c := sink.NewPNGCanvas(400, 400)
//	render.Compose(c, scene, render.DefaultTheme())
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They back the PDF sink and
// the rasterisation of remotely generated markup.
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/kolam/pkg/render/sink
package render
