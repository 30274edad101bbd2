package design

import (
	"maps"
	"unicode/utf8"

	"github.com/matzehuels/kolam/pkg/errors"
)

// MaxExpansions bounds L-system rewriting. Each pass multiplies the string
// length, so deeper expansions produce unusably large drawings.
const MaxExpansions = 6

// LSystem draws the expansion of a rewrite system with turtle graphics.
type LSystem struct {
	Axiom      string            `json:"axiom" toml:"axiom"`
	Rules      map[string]string `json:"rules" toml:"rules"`
	Angle      int               `json:"angle" toml:"angle"`
	DotSize    int               `json:"dot_size" toml:"dot_size"`
	Iterations int               `json:"iterations" toml:"iterations"`
}

// DefaultLSystem returns the generator's default L-system.
func DefaultLSystem() LSystem {
	return LSystem{
		Axiom:      "FBFBFBFB",
		Rules:      map[string]string{"A": "AFBFA", "B": "AFBFBFBFA"},
		Angle:      45,
		DotSize:    10,
		Iterations: 2,
	}
}

func (LSystem) Family() Family { return FamilyLSystem }

func (l LSystem) Validate() error {
	if l.Axiom == "" {
		return errors.New(errors.ErrCodeInvalidDesign, "axiom cannot be empty")
	}
	for k := range l.Rules {
		if utf8.RuneCountInString(k) != 1 {
			return errors.New(errors.ErrCodeInvalidDesign, "rule key %q must be a single symbol", k)
		}
	}
	if err := checkRange("angle", l.Angle, 1, 359); err != nil {
		return err
	}
	if err := checkRange("dot_size", l.DotSize, 1, 100); err != nil {
		return err
	}
	return checkRange("iterations", l.Iterations, 0, MaxExpansions)
}

func (l LSystem) fields() map[string]any {
	return map[string]any{
		"axiom":      l.Axiom,
		"rules":      maps.Clone(l.Rules),
		"angle":      l.Angle,
		"dot_size":   l.DotSize,
		"iterations": l.Iterations,
	}
}

// Suzhi is the looping variant of the L-system family. It takes the same
// fields.
type Suzhi struct {
	LSystem
}

func (Suzhi) Family() Family { return FamilySuzhi }

// Kambi draws rhombus chains around the dots.
type Kambi struct {
	RhombusSize int `json:"rhombus_size" toml:"rhombus_size"`
	DotSize     int `json:"dot_size" toml:"dot_size"`
}

// DefaultKambi returns the generator's default kambi settings.
func DefaultKambi() Kambi {
	return Kambi{RhombusSize: 5, DotSize: 10}
}

func (Kambi) Family() Family { return FamilyKambi }

func (k Kambi) Validate() error {
	if err := checkRange("rhombus_size", k.RhombusSize, 1, 10); err != nil {
		return err
	}
	return checkRange("dot_size", k.DotSize, 1, 100)
}

func (k Kambi) fields() map[string]any {
	return map[string]any{
		"rhombus_size": k.RhombusSize,
		"dot_size":     k.DotSize,
	}
}

// Polygon is a regular polygon in grid units.
type Polygon struct {
	Sides  int `json:"sides" toml:"sides"`
	Radius int `json:"radius" toml:"radius"`
}

// GroupTheory tiles two regular polygons over a square grid.
type GroupTheory struct {
	GridSize int     `json:"grid_size" toml:"grid_size"`
	Polygon1 Polygon `json:"polygon1" toml:"polygon1"`
	Polygon2 Polygon `json:"polygon2" toml:"polygon2"`
}

// DefaultGroupTheory returns a hexagon/octagon tiling on an 8x8 grid.
func DefaultGroupTheory() GroupTheory {
	return GroupTheory{
		GridSize: 8,
		Polygon1: Polygon{Sides: 6, Radius: 3},
		Polygon2: Polygon{Sides: 8, Radius: 2},
	}
}

func (GroupTheory) Family() Family { return FamilyGroupTheory }

func (g GroupTheory) Validate() error {
	checks := []struct {
		name   string
		v      int
		lo, hi int
	}{
		{"grid_size", g.GridSize, 1, 20},
		{"polygon1_sides", g.Polygon1.Sides, 3, 10},
		{"polygon1_radius", g.Polygon1.Radius, 1, 10},
		{"polygon2_sides", g.Polygon2.Sides, 3, 10},
		{"polygon2_radius", g.Polygon2.Radius, 1, 10},
	}
	for _, c := range checks {
		if err := checkRange(c.name, c.v, c.lo, c.hi); err != nil {
			return err
		}
	}
	return nil
}

func (g GroupTheory) fields() map[string]any {
	return map[string]any{
		"grid_size":       g.GridSize,
		"polygon1_sides":  g.Polygon1.Sides,
		"polygon1_radius": g.Polygon1.Radius,
		"polygon2_sides":  g.Polygon2.Sides,
		"polygon2_radius": g.Polygon2.Radius,
	}
}

var (
	_ Config = LSystem{}
	_ Config = Suzhi{}
	_ Config = Kambi{}
	_ Config = GroupTheory{}
)
