package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/kolam/internal/server"
)

type serveOpts struct {
	addr     string
	url      string
	noRemote bool
	noCache  bool
}

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendering and the design service over HTTP",
		Long: `Start an HTTP server exposing local rendering and the remote design service.

Routes:
  GET  /healthz
  POST /render           parameters or markup to svg, png, pdf or json
  POST /generate         parameters and design family to SVG markup
  POST /generate/image   photo to SVG markup
  POST /analyze          photo to a structured report

The server stops gracefully on interrupt.`,
		Example: `  kolam serve --addr :9000
  kolam serve --no-remote`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	fl.StringVar(&opts.url, "url", "", "design service base URL (overrides config)")
	fl.BoolVar(&opts.noRemote, "no-remote", false, "serve local rendering only")
	fl.BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	runner := c.newRunner(ctx, cfg, opts.noCache)
	defer runner.Close()

	var remote server.Remote
	if !opts.noRemote {
		client, err := c.newRemote(ctx, cfg, opts.url, opts.noCache)
		if err != nil {
			return err
		}
		defer client.Close()
		remote = client
		printKeyValue("Design service", client.BaseURL())
	}

	printInfo("Listening on %s", StyleHighlight.Render(addr))
	return server.New(addr, runner, remote, c.Logger).Run(ctx)
}
