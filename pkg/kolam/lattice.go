package kolam

import "math"

// BuildLattice returns the dot coordinates for a grid centred on center.
//
// The square rule walks offsets i in [-rows/2, rows/2] and j in
// [-cols/2, cols/2] in unit steps starting from the (possibly half-integer)
// lower bound, emitting (center.X + i*spacing, center.Y + j*spacing). For
// non-negative integer extents that is (rows+1)*(cols+1) points, symmetric
// about both axes through center.
//
// Triangular grids offset alternate rows by half a spacing, hexagonal grids
// thin the triangular lattice to honeycomb vertices, and circular grids place
// points on concentric rings.
//
// BuildLattice never fails. Negative extents yield an empty lattice, zero
// extents or zero spacing collapse to a zero-area lattice.
func BuildLattice(grid GridType, rows, cols int, spacing float64, center Point) []Point {
	switch grid {
	case GridSquare:
		return squareLattice(rows, cols, spacing, center)
	case GridTriangular:
		return triangularLattice(rows, cols, spacing, center, false)
	case GridHexagonal:
		return triangularLattice(rows, cols, spacing, center, true)
	case GridCircular:
		return circularLattice(rows, cols, spacing, center)
	}
	return nil
}

func squareLattice(rows, cols int, spacing float64, c Point) []Point {
	var pts []Point
	hr, hc := float64(rows)/2, float64(cols)/2
	for i := -hr; i <= hr; i++ {
		for j := -hc; j <= hc; j++ {
			pts = append(pts, Point{c.X + i*spacing, c.Y + j*spacing})
		}
	}
	return pts
}

// triangularLattice stacks rows of columns+1 points spacing*sqrt(3)/2 apart,
// shifting alternate rows by half a spacing. With honeycomb set it drops every
// third point of each row (phase-shifted per row), leaving the vertices of a
// hexagonal tiling.
//
// Rows are indexed like the square rule so the lattice stays centred on
// center; the half-spacing shift is split +-spacing/4 so the bounding box is
// centred too.
func triangularLattice(rows, cols int, spacing float64, c Point, honeycomb bool) []Point {
	var pts []Point
	rowStep := spacing * math.Sqrt(3) / 2
	hr, hc := float64(rows)/2, float64(cols)/2

	row := 0
	for i := -hr; i <= hr; i++ {
		shift := spacing / 4
		if row%2 == 1 {
			shift = -shift
		}
		col := 0
		for j := -hc; j <= hc; j++ {
			if !honeycomb || (col+row)%3 != 2 {
				pts = append(pts, Point{c.X + j*spacing + shift, c.Y + i*rowStep})
			}
			col++
		}
		row++
	}
	return pts
}

// circularLattice places concentric rings k = 0..min(rows, cols)/2 at radius
// k*spacing. Ring k holds 6k evenly spaced points starting at angle 0; ring 0
// is the single centre point.
func circularLattice(rows, cols int, spacing float64, c Point) []Point {
	n := min(rows, cols)
	if n < 0 {
		return nil
	}
	pts := []Point{c}
	for k := 1; k <= n/2; k++ {
		count := 6 * k
		r := float64(k) * spacing
		for i := range count {
			pts = append(pts, Polar(c, r, 2*math.Pi*float64(i)/float64(count)))
		}
	}
	return pts
}
