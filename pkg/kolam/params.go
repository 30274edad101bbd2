package kolam

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/kolam/pkg/errors"
)

// GridType selects the lattice rule.
type GridType string

const (
	GridSquare     GridType = "square"
	GridTriangular GridType = "triangular"
	GridHexagonal  GridType = "hexagonal"
	GridCircular   GridType = "circular"
)

// GridTypes lists every grid type in display order.
var GridTypes = []GridType{GridSquare, GridTriangular, GridHexagonal, GridCircular}

// StrokeType selects stroke width and dash pattern. It never changes geometry.
type StrokeType string

const (
	StrokeContinuous StrokeType = "continuous"
	StrokeDashed     StrokeType = "dashed"
	StrokeDotted     StrokeType = "dotted"
	StrokeThick      StrokeType = "thick"
)

// StrokeTypes lists every stroke type in display order.
var StrokeTypes = []StrokeType{StrokeContinuous, StrokeDashed, StrokeDotted, StrokeThick}

// Symmetry selects the stroke-path rule.
type Symmetry string

const (
	Symmetry2Fold     Symmetry = "2-fold"
	Symmetry4Fold     Symmetry = "4-fold"
	Symmetry6Fold     Symmetry = "6-fold"
	Symmetry8Fold     Symmetry = "8-fold"
	SymmetryRadial    Symmetry = "radial"
	SymmetryBilateral Symmetry = "bilateral"
)

// Symmetries lists every symmetry class in display order.
var Symmetries = []Symmetry{
	Symmetry2Fold, Symmetry4Fold, Symmetry6Fold, Symmetry8Fold, SymmetryRadial, SymmetryBilateral,
}

// MaxIterations caps the number of composited layers. Beyond it every
// additional layer would be fully transparent.
const MaxIterations = 5

// MaxExtent caps rows and columns. The lattice grows with their product.
const MaxExtent = 200

// Default parameter values, matching the designer's initial form state.
const (
	DefaultRows       = 8
	DefaultColumns    = 8
	DefaultDotSpacing = 20.0
	DefaultIterations = 1
)

// Params is the full input of one render. It is treated as immutable: every
// function in this package takes it by value.
type Params struct {
	GridType   GridType   `json:"gridType" toml:"grid_type"`
	Rows       int        `json:"rows" toml:"rows"`
	Columns    int        `json:"columns" toml:"columns"`
	DotSpacing float64    `json:"dotSpacing" toml:"dot_spacing"`
	StrokeType StrokeType `json:"strokeType" toml:"stroke_type"`
	Symmetry   Symmetry   `json:"symmetryType" toml:"symmetry_type"`
	Iterations int        `json:"iterations" toml:"iterations"`
}

// DefaultParams returns the parameters the designer starts with.
func DefaultParams() Params {
	return Params{
		GridType:   GridSquare,
		Rows:       DefaultRows,
		Columns:    DefaultColumns,
		DotSpacing: DefaultDotSpacing,
		StrokeType: StrokeContinuous,
		Symmetry:   Symmetry4Fold,
		Iterations: DefaultIterations,
	}
}

// WithDefaults fills zero-valued enum fields and iteration count from
// [DefaultParams]. Numeric extents are left alone: zero rows or spacing is a
// degenerate but valid request.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.GridType == "" {
		p.GridType = d.GridType
	}
	if p.StrokeType == "" {
		p.StrokeType = d.StrokeType
	}
	if p.Symmetry == "" {
		p.Symmetry = d.Symmetry
	}
	if p.Iterations == 0 {
		p.Iterations = d.Iterations
	}
	return p
}

// Validate checks that every enum field names a known variant and that the
// iteration count is within [1, MaxIterations].
//
// Extents and spacing are deliberately not checked: non-positive values
// produce an empty or zero-area lattice rather than an error.
func (p Params) Validate() error {
	if !p.GridType.Valid() {
		return errors.New(errors.ErrCodeInvalidGrid, "invalid grid type: %q (must be one of: %s)", p.GridType, join(GridTypes))
	}
	if !p.StrokeType.Valid() {
		return errors.New(errors.ErrCodeInvalidStroke, "invalid stroke type: %q (must be one of: %s)", p.StrokeType, join(StrokeTypes))
	}
	if !p.Symmetry.Valid() {
		return errors.New(errors.ErrCodeInvalidSymmetry, "invalid symmetry type: %q (must be one of: %s)", p.Symmetry, join(Symmetries))
	}
	if p.Rows > MaxExtent || p.Columns > MaxExtent {
		return errors.New(errors.ErrCodeInvalidInput, "rows and columns must be at most %d, got %dx%d", MaxExtent, p.Rows, p.Columns)
	}
	if math.IsInf(p.DotSpacing, 0) || math.IsNaN(p.DotSpacing) {
		return errors.New(errors.ErrCodeInvalidInput, "dot spacing must be finite, got %g", p.DotSpacing)
	}
	if p.Iterations < 1 || p.Iterations > MaxIterations {
		return errors.New(errors.ErrCodeInvalidInput, "iterations must be between 1 and %d, got %d", MaxIterations, p.Iterations)
	}
	return nil
}

// Valid reports whether g is a known grid type.
func (g GridType) Valid() bool {
	switch g {
	case GridSquare, GridTriangular, GridHexagonal, GridCircular:
		return true
	}
	return false
}

// Valid reports whether s is a known stroke type.
func (s StrokeType) Valid() bool {
	switch s {
	case StrokeContinuous, StrokeDashed, StrokeDotted, StrokeThick:
		return true
	}
	return false
}

// Valid reports whether s is a known symmetry class.
func (s Symmetry) Valid() bool {
	switch s {
	case Symmetry2Fold, Symmetry4Fold, Symmetry6Fold, Symmetry8Fold, SymmetryRadial, SymmetryBilateral:
		return true
	}
	return false
}

// ParseGridType parses a grid type name, case-insensitively.
func ParseGridType(s string) (GridType, error) {
	g := GridType(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", errors.New(errors.ErrCodeInvalidGrid, "invalid grid type: %q (must be one of: %s)", s, join(GridTypes))
	}
	return g, nil
}

// ParseStrokeType parses a stroke type name, case-insensitively.
func ParseStrokeType(s string) (StrokeType, error) {
	st := StrokeType(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", errors.New(errors.ErrCodeInvalidStroke, "invalid stroke type: %q (must be one of: %s)", s, join(StrokeTypes))
	}
	return st, nil
}

// ParseSymmetry parses a symmetry class name, case-insensitively.
func ParseSymmetry(s string) (Symmetry, error) {
	sym := Symmetry(strings.ToLower(strings.TrimSpace(s)))
	if !sym.Valid() {
		return "", errors.New(errors.ErrCodeInvalidSymmetry, "invalid symmetry type: %q (must be one of: %s)", s, join(Symmetries))
	}
	return sym, nil
}

func join[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// String implements fmt.Stringer for log output.
func (p Params) String() string {
	return fmt.Sprintf("%s %dx%d spacing=%g stroke=%s symmetry=%s iterations=%d",
		p.GridType, p.Rows, p.Columns, p.DotSpacing, p.StrokeType, p.Symmetry, p.Iterations)
}
