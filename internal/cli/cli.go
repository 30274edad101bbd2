package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kolam/pkg/buildinfo"
	"github.com/matzehuels/kolam/pkg/cache"
	"github.com/matzehuels/kolam/pkg/config"
	"github.com/matzehuels/kolam/pkg/integrations/kolamkar"
	"github.com/matzehuels/kolam/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "kolam"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Kolam draws traditional South Indian dot-grid patterns",
		Long: `Kolam renders dot lattices and symmetric stroke patterns to SVG, PNG and PDF,
and talks to the kolam design service to generate and analyze designs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/kolam/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.designCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Resources
// =============================================================================

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "remote", cfg.Remote.URL, "cache", cfg.Cache.Backend)
	c.cfg = &cfg
	return cfg, nil
}

// openCache opens the configured cache. A backend that cannot be reached
// degrades to no caching with a warning.
func (c *CLI) openCache(ctx context.Context, cfg config.Config, noCache bool) cache.Cache {
	ch, err := cfg.OpenCache(ctx, noCache)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "backend", cfg.Cache.Backend, "error", err)
		return cache.NewNullCache()
	}
	return ch
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.openCache(ctx, cfg, noCache), cfg.Keyer(), c.Logger)
}

// newRemote creates a design service client. An explicit url overrides the
// configuration.
func (c *CLI) newRemote(ctx context.Context, cfg config.Config, url string, noCache bool) (*kolamkar.Client, error) {
	if url == "" {
		url = cfg.Remote.URL
	}
	client, err := kolamkar.NewClient(c.openCache(ctx, cfg, noCache), url)
	if err != nil {
		return nil, err
	}
	client.WithKeyer(cfg.Keyer())
	client.WithTimeout(cfg.Remote.Timeout.Duration)
	return client, nil
}
