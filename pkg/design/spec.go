package design

import (
	"github.com/matzehuels/kolam/pkg/errors"
)

// Spec is the flat form of a design configuration used in params files and
// HTTP requests. Unset fields keep the family default. Setting a field the
// chosen family does not read is an error.
type Spec struct {
	Type           string            `json:"design_type,omitempty" toml:"type,omitempty"`
	Axiom          *string           `json:"axiom,omitempty" toml:"axiom,omitempty"`
	Rules          map[string]string `json:"rules,omitempty" toml:"rules,omitempty"`
	Angle          *int              `json:"angle,omitempty" toml:"angle,omitempty"`
	DotSize        *int              `json:"dot_size,omitempty" toml:"dot_size,omitempty"`
	Iterations     *int              `json:"iterations,omitempty" toml:"iterations,omitempty"`
	RhombusSize    *int              `json:"rhombus_size,omitempty" toml:"rhombus_size,omitempty"`
	GridSize       *int              `json:"grid_size,omitempty" toml:"grid_size,omitempty"`
	Polygon1Sides  *int              `json:"polygon1_sides,omitempty" toml:"polygon1_sides,omitempty"`
	Polygon1Radius *int              `json:"polygon1_radius,omitempty" toml:"polygon1_radius,omitempty"`
	Polygon2Sides  *int              `json:"polygon2_sides,omitempty" toml:"polygon2_sides,omitempty"`
	Polygon2Radius *int              `json:"polygon2_radius,omitempty" toml:"polygon2_radius,omitempty"`
}

// Config resolves the spec into its family's configuration and validates it.
func (s Spec) Config() (Config, error) {
	f, err := ParseFamily(s.Type)
	if err != nil {
		return nil, err
	}

	var c Config
	switch f {
	case FamilyLSystem, FamilySuzhi:
		if err := s.only(f, "axiom", "rules", "angle", "dot_size", "iterations"); err != nil {
			return nil, err
		}
		l := DefaultLSystem()
		setString(&l.Axiom, s.Axiom)
		if s.Rules != nil {
			l.Rules = s.Rules
		}
		setInt(&l.Angle, s.Angle)
		setInt(&l.DotSize, s.DotSize)
		setInt(&l.Iterations, s.Iterations)
		c = l
		if f == FamilySuzhi {
			c = Suzhi{LSystem: l}
		}
	case FamilyKambi:
		if err := s.only(f, "rhombus_size", "dot_size"); err != nil {
			return nil, err
		}
		k := DefaultKambi()
		setInt(&k.RhombusSize, s.RhombusSize)
		setInt(&k.DotSize, s.DotSize)
		c = k
	case FamilyGroupTheory:
		if err := s.only(f, "grid_size", "polygon1_sides", "polygon1_radius", "polygon2_sides", "polygon2_radius"); err != nil {
			return nil, err
		}
		g := DefaultGroupTheory()
		setInt(&g.GridSize, s.GridSize)
		setInt(&g.Polygon1.Sides, s.Polygon1Sides)
		setInt(&g.Polygon1.Radius, s.Polygon1Radius)
		setInt(&g.Polygon2.Sides, s.Polygon2Sides)
		setInt(&g.Polygon2.Radius, s.Polygon2Radius)
		c = g
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SpecOf returns the fully populated spec of c.
func SpecOf(c Config) Spec {
	s := Spec{Type: string(c.Family())}
	switch v := c.(type) {
	case LSystem:
		s.fillLSystem(v)
	case Suzhi:
		s.fillLSystem(v.LSystem)
	case Kambi:
		s.RhombusSize, s.DotSize = ptr(v.RhombusSize), ptr(v.DotSize)
	case GroupTheory:
		s.GridSize = ptr(v.GridSize)
		s.Polygon1Sides, s.Polygon1Radius = ptr(v.Polygon1.Sides), ptr(v.Polygon1.Radius)
		s.Polygon2Sides, s.Polygon2Radius = ptr(v.Polygon2.Sides), ptr(v.Polygon2.Radius)
	}
	return s
}

func (s *Spec) fillLSystem(l LSystem) {
	s.Axiom = ptr(l.Axiom)
	s.Rules = l.Rules
	s.Angle, s.DotSize, s.Iterations = ptr(l.Angle), ptr(l.DotSize), ptr(l.Iterations)
}

// only fails if any field outside allowed is set.
func (s Spec) only(f Family, allowed ...string) error {
	set := map[string]bool{
		"axiom":           s.Axiom != nil,
		"rules":           s.Rules != nil,
		"angle":           s.Angle != nil,
		"dot_size":        s.DotSize != nil,
		"iterations":      s.Iterations != nil,
		"rhombus_size":    s.RhombusSize != nil,
		"grid_size":       s.GridSize != nil,
		"polygon1_sides":  s.Polygon1Sides != nil,
		"polygon1_radius": s.Polygon1Radius != nil,
		"polygon2_sides":  s.Polygon2Sides != nil,
		"polygon2_radius": s.Polygon2Radius != nil,
	}
	for _, a := range allowed {
		delete(set, a)
	}
	for _, name := range []string{
		"axiom", "rules", "angle", "dot_size", "iterations", "rhombus_size",
		"grid_size", "polygon1_sides", "polygon1_radius", "polygon2_sides", "polygon2_radius",
	} {
		if set[name] {
			return errors.New(errors.ErrCodeInvalidDesign, "field %s does not apply to design type %s", name, f)
		}
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func ptr[T any](v T) *T { return &v }
