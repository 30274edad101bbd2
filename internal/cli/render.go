package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kolam/pkg/config"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/io"
	"github.com/matzehuels/kolam/pkg/pipeline"
)

// defaultBase names output files when neither -o nor a params file is given.
const defaultBase = "kolam"

// renderOpts holds the flags of the render command.
type renderOpts struct {
	params    paramFlags
	output    string
	formats   string
	width     int
	height    int
	transform string
	scale     float64
	maxSize   int
	title     string
	markup    string
	export    string
	noCache   bool
	refresh   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [params-file]",
		Short: "Draw a kolam locally",
		Long: `Draw a kolam from parameters given as flags or in a .json/.toml params file.

With --markup the SVG file is used as-is: it becomes the SVG output byte for
byte and PNG/PDF outputs are converted from it.`,
		Example: `  kolam render --symmetry radial --iterations 3 -f svg,png
  kolam render festival.toml -o out/festival
  kolam render --markup design.svg -f png --max-size 512`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd, input, &opts)
		},
	}

	opts.register(cmd)
	return cmd
}

// register adds the render flags to cmd.
func (o *renderOpts) register(cmd *cobra.Command) {
	o.params.register(cmd)
	fl := cmd.Flags()
	fl.StringVarP(&o.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
	fl.StringVarP(&o.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fl.IntVar(&o.width, "width", 0, "surface width in pixels")
	fl.IntVar(&o.height, "height", 0, "surface height in pixels")
	fl.StringVar(&o.transform, "transform", "", "layer transform: fade (default), spiral")
	fl.Float64Var(&o.scale, "scale", 0, "PNG pixel density")
	fl.IntVar(&o.maxSize, "max-size", 0, "bound the longer PNG side in pixels")
	fl.StringVar(&o.title, "title", "", "document title for SVG and PDF")
	fl.StringVar(&o.markup, "markup", "", "render this SVG file instead of computing a pattern")
	fl.StringVar(&o.export, "export", "", "also write the resolved parameters to a .json/.toml file")
	fl.BoolVar(&o.noCache, "no-cache", false, "disable the artifact cache")
	fl.BoolVar(&o.refresh, "refresh", false, "re-render even when cached")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("transform", cobra.FixedCompletions([]string{"fade", "spiral"}, cobra.ShellCompDirectiveNoFileComp))
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}

	popts, err := buildRenderOptions(cmd, cfg, doc, opts)
	if err != nil {
		return err
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	if opts.export != "" {
		exported := io.Document{
			Params:    popts.Params,
			Width:     popts.Width,
			Height:    popts.Height,
			Transform: popts.Transform,
		}
		if doc != nil {
			exported.Design = doc.Design
		}
		if err := io.Export(opts.export, exported); err != nil {
			return err
		}
		c.Logger.Debug("exported params", "path", opts.export)
	}

	runner := c.newRunner(ctx, cfg, opts.noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done("Rendered kolam")

	if result.Fallback() {
		printWarning("No dedicated pattern for %s symmetry; drew the fallback shape", popts.Params.Symmetry)
	}

	paths, err := writeArtifacts(ctx, result.Artifacts, popts.Formats, outputBase(opts.output, input, popts.Formats))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}
	printSuccess("Rendered %s", strings.Join(popts.Formats, ", "))
	fmt.Println(renderStatsLine(result.Stats.Points, result.Stats.Paths, result.Stats.Layers, result.CacheInfo.RenderHit))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// buildRenderOptions layers configuration, params file and flags.
func buildRenderOptions(cmd *cobra.Command, cfg config.Config, doc *io.Document, opts *renderOpts) (pipeline.Options, error) {
	popts := cfg.PipelineOptions()
	if doc != nil {
		popts.Params = doc.Params
		if doc.Width != 0 {
			popts.Width = doc.Width
		}
		if doc.Height != 0 {
			popts.Height = doc.Height
		}
		if doc.Transform != "" {
			popts.Transform = doc.Transform
		}
	}

	p, err := opts.params.apply(cmd, popts.Params)
	if err != nil {
		return popts, err
	}
	popts.Params = p

	fl := cmd.Flags()
	if fl.Changed("width") {
		popts.Width = opts.width
	}
	if fl.Changed("height") {
		popts.Height = opts.height
	}
	if fl.Changed("transform") {
		popts.Transform = opts.transform
	}
	if fl.Changed("scale") {
		popts.Scale = opts.scale
	}
	popts.MaxSize = opts.maxSize
	popts.Title = opts.title
	popts.Refresh = opts.refresh
	popts.Logger = loggerFromContext(cmd.Context())

	if opts.formats != "" {
		formats, err := pipeline.ParseFormats(opts.formats)
		if err != nil {
			return popts, err
		}
		popts.Formats = formats
	}

	if opts.markup != "" {
		if err := errors.ValidatePath(opts.markup); err != nil {
			return popts, err
		}
		data, err := os.ReadFile(opts.markup)
		if err != nil {
			return popts, errors.Wrap(errors.ErrCodeInvalidPath, err, "read markup")
		}
		popts.Markup = string(data)
	}
	return popts, nil
}

// outputBase derives the base output path. With one format an explicit
// output is used as given.
func outputBase(output, input string, formats []string) string {
	switch {
	case output == "-":
		return output
	case output != "":
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	case input != "":
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return defaultBase
}

// writeArtifacts writes one file per format as base.<format>, or the single
// artifact to stdout when base is "-". It returns the written paths.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	logger := loggerFromContext(ctx)

	if base == "-" {
		if len(formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format, got %d", len(formats))
		}
		_, err := os.Stdout.Write(artifacts[formats[0]])
		return nil, err
	}

	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(artifacts[format]))
		paths = append(paths, path)
	}
	return paths, nil
}
