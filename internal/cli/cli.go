// Package cli implements the minicase command-line interface.
//
// # Commands
//
//   - render: lay out and render a miniature CD package template
//   - layout: print the copy origins for a page and density
//   - slots: print the dimension table
//   - cache: manage the source image cache
//   - completion: generate shell completion scripts
//
// All commands accept --verbose (-v) for debug logging and --config to
// point at a TOML configuration file.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/minicase/pkg/buildinfo"
	"github.com/matzehuels/minicase/pkg/cache"
	"github.com/matzehuels/minicase/pkg/config"
	"github.com/matzehuels/minicase/pkg/pipeline"
	"github.com/matzehuels/minicase/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "minicase"

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
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. At debug level the CLI also
// registers logging observability hooks.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerDebugHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Minicase prints miniature CD package templates",
		Long:         `Minicase lays out cut-and-fold templates for miniature CD packages (front cover, disc, back cover) on printable pages, one to three copies per sheet.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/minicase/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.slotsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the --config file, or the default file when present.
func (c *CLI) loadConfig() error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "cache", cfg.Fetch.Cache, "page", cfg.Render.Page)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Slot paths are used as
// given. The returned cache must be closed by the caller.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, cache.Cache, error) {
	cfg := c.Config
	if noCache {
		cfg.Fetch.Cache = config.CacheNone
	}
	cc, err := cfg.OpenCache(ctx)
	if err != nil {
		return nil, nil, err
	}

	fetcher := source.NewFetcher(cfg.FetcherOptions(cc)...)
	return pipeline.NewRunner(cc, fetcher, c.Logger), cc, nil
}

