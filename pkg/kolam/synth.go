package kolam

import "math"

const (
	// spokeCount is the number of spokes in the radial pattern.
	spokeCount = 8

	// reachDivisor sizes the rotational and radial patterns: their rays reach
	// a third of the smaller grid extent.
	reachDivisor = 3.0

	// boxDivisor sizes the fallback box: its half-size is a quarter of the
	// smaller grid extent, so the box spans half of it.
	boxDivisor = 4.0
)

// Synthesis is the output of [Synthesize].
type Synthesis struct {
	// Paths are the strokes in drawing order.
	Paths []Path
	// Radius is the pattern radius the paths were built with.
	Radius float64
	// Fallback is true when the symmetry class has no dedicated rule and the
	// fallback box-and-diagonals shape was substituted.
	Fallback bool
}

// Radius returns the pattern radius for a symmetry class:
// min(rows, cols) * spacing / divisor, where the divisor is 3 for 4-fold and
// radial patterns and 4 for the fallback box.
func Radius(sym Symmetry, rows, cols int, spacing float64) float64 {
	extent := float64(min(rows, cols)) * spacing
	switch sym {
	case Symmetry4Fold, SymmetryRadial:
		return extent / reachDivisor
	case Symmetry2Fold, Symmetry6Fold, Symmetry8Fold, SymmetryBilateral:
		return extent / boxDivisor
	}
	return extent / boxDivisor
}

// Synthesize builds the stroke paths for a symmetry class around center.
//
//   - 4-fold: four paths center -> ray(k*pi/2) -> ray(k*pi/2 + pi/2), k = 0..3.
//     Each path draws two rays 90 degrees apart, eight ray segments in total.
//   - radial: eight spokes at 2*pi/8 intervals, then one ring per multiple of
//     spacing up to the radius (floor(radius/spacing) rings).
//   - every other class: a closed square of half-size radius plus its two
//     diagonals, with Fallback set.
//
// Synthesize is pure and never fails.
func Synthesize(sym Symmetry, center Point, rows, cols int, spacing float64) Synthesis {
	r := Radius(sym, rows, cols, spacing)
	switch sym {
	case Symmetry4Fold:
		return Synthesis{Paths: pinwheel(center, r), Radius: r}
	case SymmetryRadial:
		return Synthesis{Paths: radial(center, r, spacing), Radius: r}
	case Symmetry2Fold, Symmetry6Fold, Symmetry8Fold, SymmetryBilateral:
		return Synthesis{Paths: boxCross(center, r), Radius: r, Fallback: true}
	}
	return Synthesis{Paths: boxCross(center, r), Radius: r, Fallback: true}
}

func pinwheel(c Point, r float64) []Path {
	paths := make([]Path, 0, 4)
	for k := range 4 {
		angle := float64(k) * math.Pi / 2
		paths = append(paths, Polyline(c, Polar(c, r, angle), Polar(c, r, angle+math.Pi/2)))
	}
	return paths
}

func radial(c Point, r, spacing float64) []Path {
	paths := make([]Path, 0, spokeCount)
	for i := range spokeCount {
		angle := float64(i) * 2 * math.Pi / spokeCount
		paths = append(paths, Polyline(c, Polar(c, r, angle)))
	}
	for _, ring := range RingRadii(r, spacing) {
		paths = append(paths, Circle(c, ring))
	}
	return paths
}

// RingRadii returns the concentric ring radii of the radial pattern:
// spacing, 2*spacing, ... up to and including r. Non-positive or
// non-finite inputs yield no rings.
func RingRadii(r, spacing float64) []float64 {
	if !finite(r) || !finite(spacing) || spacing <= 0 || r < spacing {
		return nil
	}
	n := int(math.Floor(r / spacing))
	rings := make([]float64, n)
	for k := range n {
		rings[k] = float64(k+1) * spacing
	}
	return rings
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func boxCross(c Point, s float64) []Path {
	tl := Point{c.X - s, c.Y - s}
	tr := Point{c.X + s, c.Y - s}
	br := Point{c.X + s, c.Y + s}
	bl := Point{c.X - s, c.Y + s}
	return []Path{
		Polygon(tl, tr, br, bl),
		Polyline(tl, br),
		Polyline(tr, bl),
	}
}
