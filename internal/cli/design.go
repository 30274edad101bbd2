package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/pipeline"
	"github.com/matzehuels/kolam/pkg/studio"
)

type designOpts struct {
	session string
	list    bool
	output  string
	formats string
	url     string
	noCache bool
}

// designCommand creates the interactive design command.
func (c *CLI) designCommand() *cobra.Command {
	var opts designOpts

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Edit parameters interactively and generate designs",
		Long: `Open an interactive editor for the lattice parameters and the design family.

Press g to send the current parameters to the design service. If the service
fails its message replaces the previous result. With --session the state can
be saved (s) and is restored on the next start. Enter renders the result.`,
		Example: `  kolam design --session festival
  kolam design --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDesign(cmd, &opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&opts.session, "session", "", "save and restore the editor state under this name")
	fl.BoolVar(&opts.list, "list", false, "list saved sessions and exit")
	fl.StringVarP(&opts.output, "output", "o", "", "output base path for the accepted design")
	fl.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	fl.StringVar(&opts.url, "url", "", "design service base URL (overrides config)")
	fl.BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runDesign(cmd *cobra.Command, opts *designOpts) error {
	ctx := cmd.Context()

	store, err := studio.NewFileStore("")
	if err != nil {
		return err
	}
	if opts.list {
		return listSessions(store)
	}

	cfg, err := c.loadConfig()
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
	runner := c.newRunner(ctx, cfg, opts.noCache)
	defer runner.Close()

	s, err := c.openStudio(client, runner, store, opts.session, cfg.Params)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(NewDesignModel(ctx, s, store, opts.session), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	fm, ok := final.(DesignModel)
	if !ok || !fm.Done {
		printDetail("No design accepted")
		return nil
	}

	result, err := s.Render(ctx, formats)
	if err != nil {
		return err
	}
	base := opts.output
	if base == "" {
		base = defaultBase
		if opts.session != "" {
			base = opts.session
		}
	}
	paths, err := writeArtifacts(ctx, result.Artifacts, formats, outputBase(base, "", formats))
	if err != nil || len(paths) == 0 {
		return err
	}

	if s.State().HasResult() {
		printSuccess("Saved generated design")
	} else {
		printSuccess("Saved local drawing")
	}
	for _, p := range paths {
		printFile(p)
	}
	if opts.session == "" {
		printNextStep("Keep this design between runs", "kolam design --session <name>")
	}
	return nil
}

// openStudio restores the named session, or starts a fresh studio from the
// configured parameters when the session does not exist yet.
func (c *CLI) openStudio(gen studio.Generator, runner *pipeline.Runner, store *studio.FileStore, name string, params kolam.Params) (*studio.Studio, error) {
	if name != "" {
		st, err := store.Get(name)
		switch {
		case err == nil:
			c.Logger.Debug("restored session", "name", name, "updated", st.UpdatedAt)
			return studio.Restore(gen, runner, st)
		case !errors.Is(err, errors.ErrCodeNotFound):
			return nil, err
		}
		c.Logger.Debug("starting new session", "name", name)
	}
	s := studio.New(gen, runner)
	if err := s.SetParams(params); err != nil {
		return nil, err
	}
	return s, nil
}

func listSessions(store *studio.FileStore) error {
	names, err := store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		printDetail("No saved sessions in %s", store.Path())
		return nil
	}
	for _, name := range names {
		st, err := store.Get(name)
		if err != nil {
			printWarning("%s: %s", name, errors.UserMessage(err))
			continue
		}
		status := "no result"
		if st.HasResult() {
			status = "generated"
		} else if st.Err != "" {
			status = "failed"
		}
		printKeyValue(name, st.Params.String()+" · "+status)
	}
	return nil
}
