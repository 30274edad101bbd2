package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kolam/pkg/integrations/kolamkar"
)

type analyzeOpts struct {
	url     string
	maxSize int
	asJSON  bool
	noCache bool
	refresh bool
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze <photo>",
		Short: "Describe the kolam in a photo",
		Long: `Upload a photo to the design service and print its analysis: symmetry,
grid system, complexity, measurements and drawing steps.

Large photos are shrunk to --max-size pixels before upload.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, args[0], &opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&opts.url, "url", "", "design service base URL (overrides config)")
	fl.IntVar(&opts.maxSize, "max-size", kolamkar.DefaultMaxImageSize, "shrink photos to this many pixels before upload")
	fl.BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	fl.BoolVar(&opts.noCache, "no-cache", false, "disable the response cache")
	fl.BoolVar(&opts.refresh, "refresh", false, "ask the service again even when cached")

	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, path string, opts *analyzeOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	dataURL, err := readImage(path, opts.maxSize)
	if err != nil {
		return err
	}
	c.Logger.Debug("prepared image", "path", path, "bytes", len(dataURL))

	client, err := c.newRemote(ctx, cfg, opts.url, opts.noCache)
	if err != nil {
		return err
	}
	defer client.Close()

	spin := newSpinner(ctx, "Analyzing "+path)
	spin.Start()
	report, err := client.Analyze(ctx, dataURL, opts.refresh)
	spin.Stop()
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(report)
	return nil
}
