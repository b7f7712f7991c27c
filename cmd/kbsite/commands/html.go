package commands

import (
	"fmt"
	"os"

	ferrors "git.home.luguber.info/inful/kbsite/internal/foundation/errors"
	"git.home.luguber.info/inful/kbsite/internal/frontmatter"
	"git.home.luguber.info/inful/kbsite/internal/markdown"
)

// HTMLCmd implements the 'html' command.
type HTMLCmd struct {
	File    string   `arg:"" help:"Markdown document to render" type:"existingfile"`
	Plugins []string `short:"p" help:"Plugins to use instead of the configured list" sep:","`
	Output  string   `short:"o" help:"Write to file instead of stdout" type:"path"`
}

func (h *HTMLCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	plugins := cfg.Markdown.Plugins
	if len(h.Plugins) > 0 {
		plugins = h.Plugins
	}
	pipeline, err := markdown.NewPipeline(plugins)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid plugin list").UserAction().Build()
	}

	content, err := os.ReadFile(h.File)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read document").
			WithContext("path", h.File).Build()
	}
	_, body, _, err := frontmatter.Split(content)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryMarkdown, "invalid frontmatter").
			WithContext("path", h.File).Build()
	}
	html, err := pipeline.Render(body)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryMarkdown, "render failed").
			WithContext("path", h.File).Build()
	}

	if h.Output == "" {
		_, err := g.writer().Write(html)
		return err
	}
	if err := os.WriteFile(h.Output, html, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write output").
			WithContext("path", h.Output).Build()
	}
	fmt.Fprintf(g.writer(), "Wrote %s\n", h.Output)
	return nil
}
