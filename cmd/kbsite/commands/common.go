package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/kbsite/internal/config"
)

// Global carries process-wide state into every command.
type Global struct {
	Ctx context.Context
	Out io.Writer
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (built-in defaults when empty)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Render   RenderCmd   `cmd:"" help:"Render the site configuration for the build tool"`
	Sidebar  SidebarCmd  `cmd:"" help:"Generate the sidebar from the document folder"`
	Index    IndexCmd    `cmd:"" help:"Build the local search index and report statistics"`
	Search   SearchCmd   `cmd:"" help:"Query the local search index"`
	Suffixes SuffixesCmd `cmd:"" help:"Print the index suffixes of a term"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve import specifiers through the alias table"`
	HTML     HTMLCmd     `cmd:"" name:"html" help:"Render one document through the markdown pipeline"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate sidebar and index when documents change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig loads the configured file (or the defaults) and switches the
// logger to the configured level and format.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(cfg.Logging.NewHandler(os.Stderr, c.Verbose)))
	return cfg, nil
}

func (g *Global) runContext() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) writer() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}
