package render

import (
	"image/color"

	"github.com/matzehuels/kolam/pkg/kolam"
)

// Canvas is a drawing surface [Compose] paints onto.
//
// Implementations own their surface; Compose never retains a Canvas.
type Canvas interface {
	// Clear fills the whole surface with bg.
	Clear(bg color.Color)
	// FillDisc draws a filled circle.
	FillDisc(center kolam.Point, r float64, fill color.Color)
	// SetStroke configures the pen for every following StrokePath call.
	SetStroke(s Stroke)
	// BeginLayer starts a pattern layer drawn at the given opacity.
	BeginLayer(index int, opacity float64)
	// StrokePath strokes one path with the current pen.
	StrokePath(p kolam.Path)
	// EndLayer closes the layer opened by BeginLayer.
	EndLayer()
}

// Compose draws scene onto c in a fixed order:
//
//  1. clear to the theme background;
//  2. every lattice point as a filled disc;
//  3. configure the stroke once from the scene's stroke type;
//  4. for each layer, stroke its paths at the layer opacity.
//
// Compose has no error conditions. Degenerate scenes (empty lattice, no
// paths, zero layers) still clear the surface.
func Compose(c Canvas, scene kolam.Scene, theme Theme) {
	c.Clear(theme.Background)

	for _, p := range scene.Lattice {
		c.FillDisc(p, theme.DotRadius, theme.Ink)
	}

	c.SetStroke(StrokeFor(scene.Params.StrokeType, theme.Ink))

	for _, l := range scene.Layers {
		c.BeginLayer(l.Index, l.Opacity)
		for _, p := range l.Paths {
			c.StrokePath(p)
		}
		c.EndLayer()
	}
}
