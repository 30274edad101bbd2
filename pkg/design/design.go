// Package design models the parameter sets accepted by the remote kolam
// generator.
//
// Each design family has its own configuration type carrying only the fields
// that family reads, with its own defaults and validation:
//
//   - [LSystem] and [Suzhi]: axiom, rewrite rules, turn angle, dot size and
//     expansion depth
//   - [Kambi]: rhombus size and dot size
//   - [GroupTheory]: grid size and two regular polygons
//
// [Request] merges the common pattern parameters with one family's fields
// into the JSON body of a generation request, so a field of one family can
// never leak into another's request.
package design

import (
	"strings"

	"github.com/matzehuels/kolam/pkg/errors"
)

// Family names a remote generation algorithm.
type Family string

const (
	FamilyLSystem     Family = "lsystem"
	FamilySuzhi       Family = "suzhi"
	FamilyKambi       Family = "kambi"
	FamilyGroupTheory Family = "grouptheory"
)

// Families lists every design family in display order.
var Families = []Family{FamilyLSystem, FamilySuzhi, FamilyKambi, FamilyGroupTheory}

// DefaultFamily is the family selected when none is given.
const DefaultFamily = FamilyLSystem

// Title returns the human-readable family name.
func (f Family) Title() string {
	switch f {
	case FamilyLSystem:
		return "L-System Kolam"
	case FamilySuzhi:
		return "Suzhi Kolam"
	case FamilyKambi:
		return "Kambi Kolam"
	case FamilyGroupTheory:
		return "Group Theory Kolam"
	}
	return string(f)
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	switch f {
	case FamilyLSystem, FamilySuzhi, FamilyKambi, FamilyGroupTheory:
		return true
	}
	return false
}

// ParseFamily parses a family name, case-insensitively. The empty string
// selects [DefaultFamily].
func ParseFamily(s string) (Family, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultFamily, nil
	}
	f := Family(s)
	if !f.Valid() {
		names := make([]string, len(Families))
		for i, f := range Families {
			names[i] = string(f)
		}
		return "", errors.New(errors.ErrCodeInvalidDesign, "invalid design type: %q (must be one of: %s)", s, strings.Join(names, ", "))
	}
	return f, nil
}

// Config is the family-specific part of a generation request.
type Config interface {
	// Family identifies the algorithm the remote service runs.
	Family() Family
	// Validate checks the family's own field ranges.
	Validate() error
	// fields returns the family's wire fields keyed by JSON name.
	fields() map[string]any
}

// Default returns the default configuration of f.
func Default(f Family) (Config, error) {
	switch f {
	case FamilyLSystem:
		return DefaultLSystem(), nil
	case FamilySuzhi:
		return Suzhi{LSystem: DefaultLSystem()}, nil
	case FamilyKambi:
		return DefaultKambi(), nil
	case FamilyGroupTheory:
		return DefaultGroupTheory(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidDesign, "invalid design type: %q", f)
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return errors.New(errors.ErrCodeInvalidDesign, "%s must be between %d and %d, got %d", field, lo, hi, v)
	}
	return nil
}
