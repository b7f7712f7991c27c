package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/kbsite/internal/config"
	ferrors "git.home.luguber.info/inful/kbsite/internal/foundation/errors"
	"git.home.luguber.info/inful/kbsite/internal/sidebar"
	"git.home.luguber.info/inful/kbsite/internal/site"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Format      string `short:"f" help:"Output format (yaml, json or toml)" default:"yaml"`
	WithSidebar bool   `help:"Generate the sidebar and embed it"`
	Output      string `short:"o" help:"Write to file instead of stdout" type:"path"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	format, err := config.ParseFormat(r.Format)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid --format").UserAction().Build()
	}
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	var items []sidebar.Item
	if r.WithSidebar {
		b, err := site.NewBuilder(cfg, "", nil)
		if err != nil {
			return err
		}
		res, err := b.Build(g.runContext())
		if err != nil {
			return err
		}
		items = res.Sidebar
	}

	data, err := config.Render(cfg, format, items)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "render failed").Build()
	}
	if r.Output == "" {
		_, err := g.writer().Write(data)
		return err
	}
	if err := os.WriteFile(r.Output, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write output").
			WithContext("path", r.Output).Build()
	}
	fmt.Fprintf(g.writer(), "Wrote %s configuration to %s\n", format, r.Output)
	return nil
}
