package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/kbsite/internal/config"
	"git.home.luguber.info/inful/kbsite/internal/logfields"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing configuration file"`
	Path  string `arg:"" optional:"" help:"Where to write the configuration (defaults to --config or kbsite.yaml)"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := i.Path
	if path == "" {
		path = root.Config
	}
	if path == "" {
		path = "kbsite.yaml"
	}
	slog.Debug("Initializing configuration", logfields.Path(path), slog.Bool("force", i.Force))
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	fmt.Fprintf(g.writer(), "Wrote configuration to %s\n", path)
	return nil
}
