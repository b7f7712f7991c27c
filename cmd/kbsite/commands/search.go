package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	ferrors "git.home.luguber.info/inful/kbsite/internal/foundation/errors"
	"git.home.luguber.info/inful/kbsite/internal/site"
)

// SearchCmd implements the 'search' command.
type SearchCmd struct {
	Query []string `arg:"" help:"Search terms"`
	Limit int      `short:"n" help:"Maximum number of results (0 uses the configured maximum)" default:"10"`
	JSON  bool     `help:"Print results as JSON"`
}

func (s *SearchCmd) Run(g *Global, root *CLI) error {
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
	ctx := g.runContext()
	if _, err := b.Build(ctx); err != nil {
		return err
	}

	query := strings.Join(s.Query, " ")
	hits, err := idx.Search(ctx, query, s.Limit)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategorySearch, "search failed").
			WithContext("query", query).Build()
	}

	out := g.writer()
	if s.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(hits)
	}
	if len(hits) == 0 {
		fmt.Fprintln(out, cfg.Search.Translations.Modal.NoResultsText)
		return nil
	}
	for i, h := range hits {
		fmt.Fprintf(out, "%d. %s  %s  (%.3f)\n", i+1, h.Title, h.ID, h.Score)
		for _, f := range h.Fragments {
			fmt.Fprintf(out, "     %s\n", strings.Join(strings.Fields(f), " "))
		}
	}
	return nil
}
