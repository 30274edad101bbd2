package kolam

import (
	"math"

	"github.com/matzehuels/kolam/pkg/errors"
)

// OpacityStep is the opacity lost by each successive layer.
const OpacityStep = 0.2

// Layer is one pass of the stroke pattern at a given opacity.
type Layer struct {
	Index   int
	Opacity float64
	Paths   []Path
}

// Opacity returns the opacity of layer i: max(0, 1 - 0.2*i).
func Opacity(i int) float64 {
	return math.Max(0, 1-float64(i)*OpacityStep)
}

// LayerTransform decides how the geometry of each layer relates to the base
// path set. Implementations must be pure.
type LayerTransform interface {
	// Name identifies the strategy in options and cache keys.
	Name() string
	// Mapping returns the point mapping applied to layer i around center,
	// or nil to reuse the base paths unchanged.
	Mapping(i int, center Point) func(Point) Point
}

// FadeStack strokes the same geometry on every layer; only opacity changes.
type FadeStack struct{}

func (FadeStack) Name() string                         { return "fade" }
func (FadeStack) Mapping(int, Point) func(Point) Point { return nil }

// Spiral rotates each layer by Angle radians and scales it by (1-Shrink)
// relative to the previous one, both around the pattern centre.
type Spiral struct {
	Angle  float64
	Shrink float64
}

// DefaultSpiral turns each layer by 15 degrees and shrinks it by 15%.
var DefaultSpiral = Spiral{Angle: math.Pi / 12, Shrink: 0.15}

func (Spiral) Name() string { return "spiral" }

func (s Spiral) Mapping(i int, c Point) func(Point) Point {
	if i == 0 {
		return nil
	}
	theta := s.Angle * float64(i)
	scale := math.Pow(1-s.Shrink, float64(i))
	sin, cos := math.Sincos(theta)
	return func(p Point) Point {
		d := p.Sub(c)
		return Point{
			X: c.X + scale*(d.X*cos-d.Y*sin),
			Y: c.Y + scale*(d.X*sin+d.Y*cos),
		}
	}
}

// ParseTransform resolves a layer strategy by name. The empty string selects
// [FadeStack].
func ParseTransform(name string) (LayerTransform, error) {
	switch name {
	case "", "fade":
		return FadeStack{}, nil
	case "spiral":
		return DefaultSpiral, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "invalid layer transform: %q (must be one of: fade, spiral)", name)
}

// Layers expands paths into iterations layers with opacity [Opacity](i).
// A nil transform behaves like [FadeStack]. Exactly max(iterations, 0)
// layers are returned; layers past the fifth are fully transparent.
func Layers(paths []Path, iterations int, center Point, t LayerTransform) []Layer {
	if t == nil {
		t = FadeStack{}
	}
	layers := make([]Layer, 0, max(iterations, 0))
	for i := range max(iterations, 0) {
		lp := paths
		if fn := t.Mapping(i, center); fn != nil {
			lp = make([]Path, len(paths))
			for j, p := range paths {
				lp[j] = p.Map(fn)
			}
		}
		layers = append(layers, Layer{Index: i, Opacity: Opacity(i), Paths: lp})
	}
	return layers
}
