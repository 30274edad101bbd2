package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kolam/pkg/design"
	"github.com/matzehuels/kolam/pkg/io"
	"github.com/matzehuels/kolam/pkg/kolam"
)

// paramFlags holds the pattern flags shared by render and generate.
// Only flags the user sets override the params file and configuration.
type paramFlags struct {
	grid       string
	rows       int
	columns    int
	spacing    float64
	stroke     string
	symmetry   string
	iterations int
	design     string
}

func (f *paramFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.grid, "grid", "", "grid type: "+joinNames(kolam.GridTypes))
	fl.IntVar(&f.rows, "rows", 0, "lattice rows")
	fl.IntVar(&f.columns, "cols", 0, "lattice columns")
	fl.Float64Var(&f.spacing, "spacing", 0, "dot spacing in pixels")
	fl.StringVar(&f.stroke, "stroke", "", "stroke type: "+joinNames(kolam.StrokeTypes))
	fl.StringVar(&f.symmetry, "symmetry", "", "symmetry type: "+joinNames(kolam.Symmetries))
	fl.IntVar(&f.iterations, "iterations", 0, fmt.Sprintf("layer count, 1-%d", kolam.MaxIterations))

	_ = cmd.RegisterFlagCompletionFunc("grid", fixedCompletion(kolam.GridTypes))
	_ = cmd.RegisterFlagCompletionFunc("stroke", fixedCompletion(kolam.StrokeTypes))
	_ = cmd.RegisterFlagCompletionFunc("symmetry", fixedCompletion(kolam.Symmetries))
}

func (f *paramFlags) registerDesign(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.design, "design", "", "design family: lsystem, suzhi, kambi, grouptheory (family defaults)")
	_ = cmd.RegisterFlagCompletionFunc("design", fixedCompletion(design.Families))
}

// apply overrides p with every flag set on cmd.
func (f *paramFlags) apply(cmd *cobra.Command, p kolam.Params) (kolam.Params, error) {
	fl := cmd.Flags()
	if fl.Changed("grid") {
		g, err := kolam.ParseGridType(f.grid)
		if err != nil {
			return p, err
		}
		p.GridType = g
	}
	if fl.Changed("rows") {
		p.Rows = f.rows
	}
	if fl.Changed("cols") {
		p.Columns = f.columns
	}
	if fl.Changed("spacing") {
		p.DotSpacing = f.spacing
	}
	if fl.Changed("stroke") {
		s, err := kolam.ParseStrokeType(f.stroke)
		if err != nil {
			return p, err
		}
		p.StrokeType = s
	}
	if fl.Changed("symmetry") {
		s, err := kolam.ParseSymmetry(f.symmetry)
		if err != nil {
			return p, err
		}
		p.Symmetry = s
	}
	if fl.Changed("iterations") {
		p.Iterations = f.iterations
	}
	p = p.WithDefaults()
	return p, p.Validate()
}

// designConfig resolves --design, falling back to the params file's design
// section. nil selects the service default.
func (f *paramFlags) designConfig(doc *io.Document) (design.Config, error) {
	if f.design != "" {
		fam, err := design.ParseFamily(f.design)
		if err != nil {
			return nil, err
		}
		return design.Default(fam)
	}
	if doc != nil {
		return doc.DesignConfig()
	}
	return nil, nil
}

// loadDocument reads a params file, or returns nil when path is empty.
func loadDocument(path string) (*io.Document, error) {
	if path == "" {
		return nil, nil
	}
	doc, err := io.Import(path)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func joinNames[T ~string](vs []T) string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

func fixedCompletion[T ~string](vs []T) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(vs))
		for i, v := range vs {
			names[i] = string(v)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
