package commands

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/kbsite/internal/site"
)

// SidebarCmd implements the 'sidebar' command.
type SidebarCmd struct {
	Output string `short:"o" help:"Sidebar JSON file" default:".vitepress/sidebar.json" type:"path"`
	Print  bool   `help:"Print the tree to stdout instead of writing a file"`
}

func (s *SidebarCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	file := s.Output
	if s.Print {
		file = ""
	}
	b, err := site.NewBuilder(cfg, file, nil)
	if err != nil {
		return err
	}
	res, err := b.Build(g.runContext())
	if err != nil {
		return err
	}

	if s.Print {
		enc := json.NewEncoder(g.writer())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res.Sidebar)
	}
	fmt.Fprintf(g.writer(), "Wrote sidebar for %d documents to %s\n", res.Documents, file)
	return nil
}
