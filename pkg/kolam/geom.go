package kolam

import "math"

// Point is a 2-D coordinate in surface pixels. Y grows downwards, as on
// every drawing surface the renderers target.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Polar returns the point at distance r from c in direction angle (radians).
func Polar(c Point, r, angle float64) Point {
	return Point{c.X + math.Cos(angle)*r, c.Y + math.Sin(angle)*r}
}

// PathKind distinguishes polyline strokes from circles.
type PathKind int

const (
	// PathPolyline is an ordered run of straight segments through Points.
	PathPolyline PathKind = iota
	// PathCircle is a full circle around Center with Radius.
	PathCircle
)

// String returns the JSON name of the kind.
func (k PathKind) String() string {
	if k == PathCircle {
		return "circle"
	}
	return "polyline"
}

// Path is one continuous pen stroke.
//
// Polyline paths list their vertices in pen order; Closed adds the segment
// from the last vertex back to the first. Circle paths use Center and Radius
// and leave Points empty.
type Path struct {
	Kind   PathKind
	Points []Point
	Closed bool
	Center Point
	Radius float64
}

// Polyline returns an open polyline path through pts.
func Polyline(pts ...Point) Path {
	return Path{Kind: PathPolyline, Points: pts}
}

// Polygon returns a closed polyline path through pts.
func Polygon(pts ...Point) Path {
	return Path{Kind: PathPolyline, Points: pts, Closed: true}
}

// Circle returns a circle path.
func Circle(c Point, r float64) Path {
	return Path{Kind: PathCircle, Center: c, Radius: r}
}

// Segments returns the number of straight segments drawn by a polyline, or 0
// for a circle.
func (p Path) Segments() int {
	if p.Kind != PathPolyline || len(p.Points) < 2 {
		return 0
	}
	n := len(p.Points) - 1
	if p.Closed {
		n++
	}
	return n
}

// Map returns a copy of p with fn applied to every coordinate. Circle radii
// are scaled by the distance fn maps a unit offset to, so uniform scaling
// and rotation keep circles consistent.
func (p Path) Map(fn func(Point) Point) Path {
	out := Path{Kind: p.Kind, Closed: p.Closed}
	if p.Kind == PathCircle {
		out.Center = fn(p.Center)
		edge := fn(Point{p.Center.X + p.Radius, p.Center.Y})
		out.Radius = math.Hypot(edge.X-out.Center.X, edge.Y-out.Center.Y)
		return out
	}
	out.Points = make([]Point, len(p.Points))
	for i, pt := range p.Points {
		out.Points[i] = fn(pt)
	}
	return out
}
