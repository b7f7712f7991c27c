package commands

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/kbsite/internal/foundation/errors"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Specifiers []string `arg:"" help:"Import specifiers to resolve"`
	Root       string   `help:"Join relative replacements onto this directory" type:"path"`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	table, err := cfg.AliasTable()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid alias rules").UserAction().Build()
	}
	if r.Root != "" {
		table = table.Absolute(r.Root)
	}
	for _, spec := range r.Specifiers {
		if rep, ok := table.Resolve(spec); ok {
			fmt.Fprintf(g.writer(), "%s -> %s\n", spec, rep)
			continue
		}
		fmt.Fprintf(g.writer(), "%s (no alias)\n", spec)
	}
	return nil
}
