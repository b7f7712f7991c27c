package commands

import (
	"fmt"

	"git.home.luguber.info/inful/kbsite/internal/site"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct{}

func (i *IndexCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	idx, err := site.OpenIndex(cfg.Search)
	if err != nil {
		return err
	}
	defer func() { _ = idx.Close() }()

	b, err := site.NewBuilder(cfg, "", idx)
	if err != nil {
		return err
	}
	res, err := b.Build(g.runContext())
	if err != nil {
		return err
	}
	fmt.Fprintf(g.writer(), "Indexed %s (min suffix length %d)\n", res, cfg.Search.Index.SuffixLength())
	return nil
}
