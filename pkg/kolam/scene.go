package kolam

// Scene is the complete geometry of one render: the lattice and the layered
// stroke pattern on a surface of the given size. Scenes are produced by
// [NewScene] and are read-only afterwards.
type Scene struct {
	Width, Height float64
	Center        Point
	Params        Params
	Lattice       []Point
	Synthesis     Synthesis
	Layers        []Layer
	Transform     string
}

// NewScene runs the lattice builder and pattern synthesizer for p on a
// width x height surface and expands the result into layers with t (nil
// selects [FadeStack]).
func NewScene(p Params, width, height float64, t LayerTransform) Scene {
	if t == nil {
		t = FadeStack{}
	}
	c := Point{width / 2, height / 2}
	syn := Synthesize(p.Symmetry, c, p.Rows, p.Columns, p.DotSpacing)
	return Scene{
		Width:     width,
		Height:    height,
		Center:    c,
		Params:    p,
		Lattice:   BuildLattice(p.GridType, p.Rows, p.Columns, p.DotSpacing, c),
		Synthesis: syn,
		Layers:    Layers(syn.Paths, p.Iterations, c, t),
		Transform: t.Name(),
	}
}
