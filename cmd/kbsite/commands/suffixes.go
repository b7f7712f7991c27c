package commands

import (
	"fmt"

	"git.home.luguber.info/inful/kbsite/internal/suffix"
)

// SuffixesCmd implements the 'suffixes' command.
type SuffixesCmd struct {
	Term      string `arg:"" help:"Term to expand"`
	MinLength int    `short:"m" help:"Minimum suffix length in characters (defaults to the configured index setting)"`
}

func (s *SuffixesCmd) Run(g *Global, root *CLI) error {
	var process suffix.TermProcessor
	if s.MinLength > 0 {
		process = suffix.ProcessTerm(s.MinLength)
	} else {
		cfg, err := root.loadConfig()
		if err != nil {
			return err
		}
		process = cfg.Search.Index.Processor()
		if process == nil {
			// index uses default tokenization; show what suffixing would emit
			process = suffix.ProcessTerm(suffix.DefaultMinLength)
		}
	}
	suffixes, _ := process(s.Term)
	for _, sfx := range suffixes {
		fmt.Fprintln(g.writer(), sfx)
	}
	return nil
}
