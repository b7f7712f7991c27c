package searchindex

import (
	"fmt"

	"git.home.luguber.info/inful/kbsite/internal/suffix"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/registry"
)

// SuffixFilterName is the registry type of the suffix token filter.
const SuffixFilterName = "kbsite_suffix"

// suffixFilter replaces each token with the terms its processor returns.
// With suffix.ProcessTerm that is every suffix of at least the minimum
// length, so tokens shorter than the minimum are dropped. A processor that
// declines a term (ok=false) keeps the token as is.
type suffixFilter struct {
	process suffix.TermProcessor
}

func (f *suffixFilter) Filter(input analysis.TokenStream) analysis.TokenStream {
	out := make(analysis.TokenStream, 0, len(input)*2)
	for _, tok := range input {
		term := string(tok.Term)
		suffixes, ok := f.process(term)
		if !ok {
			out = append(out, tok)
			continue
		}
		for _, s := range suffixes {
			start := min(tok.Start+len(term)-len(s), tok.End)
			out = append(out, &analysis.Token{
				Start:    start,
				End:      tok.End,
				Term:     []byte(s),
				Position: tok.Position,
				Type:     tok.Type,
				KeyWord:  tok.KeyWord,
			})
		}
	}
	return out
}

func suffixFilterConstructor(config map[string]interface{}, _ *registry.Cache) (analysis.TokenFilter, error) {
	n := suffix.DefaultMinLength
	switch v := config["min_length"].(type) {
	case nil:
	case float64:
		n = int(v)
	case int:
		n = v
	default:
		return nil, fmt.Errorf("%s: min_length must be a number, got %T", SuffixFilterName, v)
	}
	if n < 1 {
		return nil, fmt.Errorf("%s: min_length must be >= 1, got %d", SuffixFilterName, n)
	}
	return &suffixFilter{process: suffix.ProcessTerm(n)}, nil
}

func init() {
	registry.RegisterTokenFilter(SuffixFilterName, suffixFilterConstructor)
}
