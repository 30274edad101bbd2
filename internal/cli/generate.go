package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/integrations/kolamkar"
	"github.com/matzehuels/kolam/pkg/io"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/pipeline"
)

type generateOpts struct {
	params  paramFlags
	image   string
	output  string
	formats string
	url     string
	maxSize int
	noCache bool
	refresh bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [params-file]",
		Short: "Generate a design with the kolam design service",
		Long: `Send parameters and a design family to the design service and save the SVG
it returns. With --image the design is derived from a photo instead.

The request is sent once. If the service fails, its message is shown as-is.`,
		Example: `  kolam generate --design kambi --rows 6 -o kambi.svg
  kolam generate festival.toml -f svg,png
  kolam generate --image rangoli.jpg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runGenerate(cmd, input, &opts)
		},
	}

	opts.params.register(cmd)
	opts.params.registerDesign(cmd)
	fl := cmd.Flags()
	fl.StringVar(&opts.image, "image", "", "derive the design from this photo")
	fl.StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
	fl.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	fl.StringVar(&opts.url, "url", "", "design service base URL (overrides config)")
	fl.IntVar(&opts.maxSize, "max-size", kolamkar.DefaultMaxImageSize, "shrink photos to this many pixels before upload")
	fl.BoolVar(&opts.noCache, "no-cache", false, "disable the response cache")
	fl.BoolVar(&opts.refresh, "refresh", false, "ask the service again even when cached")
	cmd.MarkFlagsMutuallyExclusive("image", "design")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, input string, opts *generateOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}

	formats := []string{pipeline.FormatSVG}
	if opts.formats != "" {
		if formats, err = pipeline.ParseFormats(opts.formats); err != nil {
			return err
		}
	}

	client, err := c.newRemote(ctx, cfg, opts.url, opts.noCache)
	if err != nil {
		return err
	}
	defer client.Close()

	var markup string
	if opts.image != "" {
		markup, err = c.generateFromImage(cmd, client, opts)
	} else {
		markup, err = c.generateFromParams(cmd, client, cfg.Params, doc, opts)
	}
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, cfg, opts.noCache)
	defer runner.Close()
	result, err := runner.Execute(ctx, pipeline.Options{
		Markup:  markup,
		Formats: formats,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(ctx, result.Artifacts, formats, outputBase(opts.output, input, formats))
	if err != nil || len(paths) == 0 {
		return err
	}
	printSuccess("Generated design (%d bytes of SVG)", len(markup))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

func (c *CLI) generateFromParams(cmd *cobra.Command, client *kolamkar.Client, defaults kolam.Params, doc *io.Document, opts *generateOpts) (string, error) {
	params := defaults
	if doc != nil {
		params = doc.Params
	}
	params, err := opts.params.apply(cmd, params)
	if err != nil {
		return "", err
	}
	cfg, err := opts.params.designConfig(doc)
	if err != nil {
		return "", err
	}

	family := "default"
	if cfg != nil {
		family = string(cfg.Family())
	}
	c.Logger.Debug("requesting design", "params", params, "design", family, "url", client.BaseURL())

	spin := newSpinner(cmd.Context(), "Generating "+family+" design")
	spin.Start()
	markup, err := client.Generate(cmd.Context(), params, cfg, opts.refresh)
	spin.Stop()
	return markup, err
}

func (c *CLI) generateFromImage(cmd *cobra.Command, client *kolamkar.Client, opts *generateOpts) (string, error) {
	dataURL, err := readImage(opts.image, opts.maxSize)
	if err != nil {
		return "", err
	}
	spin := newSpinner(cmd.Context(), "Generating design from "+opts.image)
	spin.Start()
	markup, err := client.GenerateFromImage(cmd.Context(), dataURL, opts.refresh)
	spin.Stop()
	return markup, err
}

// readImage loads a photo and prepares it for upload.
func readImage(path string, maxSize int) (string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeNotFound, err, "image %s", path)
		}
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return kolamkar.PrepareImage(data, maxSize)
}
