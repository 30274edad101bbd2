package render

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/kolam/pkg/kolam"
)

// Stroke width and dash settings.
const (
	StandardWidth = 2.0
	ThickWidth    = 3.0
	DotRadius     = 2.0
)

var (
	dashedPattern = []float64{5, 5}
	dottedPattern = []float64{2, 3}
)

// Theme holds the colours and dot size used by [Compose].
type Theme struct {
	Background color.Color
	Ink        color.Color
	DotRadius  float64
}

// DefaultTheme is white paper with dark teal ink.
func DefaultTheme() Theme {
	return Theme{
		Background: color.White,
		Ink:        color.RGBA{R: 0x16, G: 0x4e, B: 0x63, A: 0xff},
		DotRadius:  DotRadius,
	}
}

// Stroke is the pen configuration applied to every pattern path.
type Stroke struct {
	Color color.Color
	Width float64
	// Dash alternates on/off lengths; nil means solid.
	Dash []float64
}

// StrokeFor maps a stroke type to its width and dash pattern.
func StrokeFor(t kolam.StrokeType, ink color.Color) Stroke {
	s := Stroke{Color: ink, Width: StandardWidth}
	switch t {
	case kolam.StrokeThick:
		s.Width = ThickWidth
	case kolam.StrokeDashed:
		s.Dash = dashedPattern
	case kolam.StrokeDotted:
		s.Dash = dottedPattern
	case kolam.StrokeContinuous:
	}
	return s
}

// Hex formats c as #rrggbb, ignoring alpha.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
