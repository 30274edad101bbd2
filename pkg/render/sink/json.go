package sink

import (
	"encoding/json"

	"github.com/matzehuels/kolam/pkg/kolam"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	omitLattice bool
}

// WithoutLattice leaves the dot coordinates out of the export.
func WithoutLattice() JSONOption { return func(r *jsonRenderer) { r.omitLattice = true } }

type jsonOutput struct {
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Center    kolam.Point   `json:"center"`
	Params    kolam.Params  `json:"params"`
	Transform string        `json:"transform"`
	Radius    float64       `json:"radius"`
	Fallback  bool          `json:"fallback,omitempty"`
	DotCount  int           `json:"dotCount"`
	Lattice   []kolam.Point `json:"lattice,omitempty"`
	Layers    []jsonLayer   `json:"layers"`
}

type jsonLayer struct {
	Index   int        `json:"index"`
	Opacity float64    `json:"opacity"`
	Paths   []jsonPath `json:"paths"`
}

type jsonPath struct {
	Kind   string        `json:"kind"`
	Points []kolam.Point `json:"points,omitempty"`
	Closed bool          `json:"closed,omitempty"`
	Center *kolam.Point  `json:"center,omitempty"`
	Radius float64       `json:"radius,omitempty"`
}

// RenderJSON exports the scene geometry as a pretty-printed JSON document:
// surface size, parameters, lattice points and every layer's paths.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify the scene and is safe to call concurrently.
func RenderJSON(scene kolam.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:     scene.Width,
		Height:    scene.Height,
		Center:    scene.Center,
		Params:    scene.Params,
		Transform: scene.Transform,
		Radius:    scene.Synthesis.Radius,
		Fallback:  scene.Synthesis.Fallback,
		DotCount:  len(scene.Lattice),
		Layers:    make([]jsonLayer, 0, len(scene.Layers)),
	}
	if !r.omitLattice {
		out.Lattice = scene.Lattice
	}

	for _, l := range scene.Layers {
		jl := jsonLayer{Index: l.Index, Opacity: l.Opacity, Paths: make([]jsonPath, 0, len(l.Paths))}
		for _, p := range l.Paths {
			jp := jsonPath{Kind: p.Kind.String(), Closed: p.Closed}
			if p.Kind == kolam.PathCircle {
				c := p.Center
				jp.Center, jp.Radius = &c, p.Radius
			} else {
				jp.Points = p.Points
			}
			jl.Paths = append(jl.Paths, jp)
		}
		out.Layers = append(out.Layers, jl)
	}

	return json.MarshalIndent(out, "", "  ")
}
