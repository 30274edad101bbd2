// Package kolam computes the geometry of parametric Kolam patterns.
//
// A Kolam is a South Indian floor drawing built on a grid of dots. This package
// approximates the tradition with a small parametric generator: a dot lattice
// plus a family of symmetric stroke patterns anchored on it.
//
// # Stages
//
// The geometry is produced in two pure stages:
//
//  1. [BuildLattice] turns grid parameters into dot coordinates.
//  2. [Synthesize] turns a symmetry class into a set of stroke [Path] values.
//
// [Layers] then expands the path set into the faded layer stack that the
// compositor in package render draws. Nothing here touches a drawing surface.
//
// # Variants
//
// Grid types and symmetry classes are closed sets ([GridType], [Symmetry]).
// Every variant is handled by an explicit case; symmetry classes without a
// dedicated rule resolve to the fallback shape and report it through
// [Synthesis.Fallback] so callers can log the substitution.
//
// # Determinism
//
// All functions are pure: identical parameters always yield identical
// lattices, paths and layers. There is no shared state, so concurrent calls
// are safe.
package kolam
