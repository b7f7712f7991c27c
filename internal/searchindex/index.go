// Package searchindex is the local (in-process) search provider. Documents
// are indexed under every suffix of their terms while queries are only
// tokenized and lowercased, then matched by prefix, so any substring of at
// least the minimum suffix length finds a document.
package searchindex

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"git.home.luguber.info/inful/kbsite/internal/docs"
	"git.home.luguber.info/inful/kbsite/internal/logfields"
	"git.home.luguber.info/inful/kbsite/internal/markdown"
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/inful/mdfp"
)

const (
	fieldTitle = "title"
	fieldText  = "text"

	indexAnalyzerName  = "kbsite_index"
	suffixFilterConfig = "kbsite_suffix_configured"

	// QueryAnalyzer tokenizes user queries. It lowercases and drops no
	// words: stop words like "on" are valid substrings of indexed terms.
	QueryAnalyzer = "kbsite_query"

	titleBoost  = 4.0
	textBoost   = 2.0
	prefixBoost = 0.5

	defaultMaxResults = 25
	maxFragments      = 3
)

// Options configures the local index.
type Options struct {
	// MinSuffixLength > 0 indexes every suffix of at least that many
	// characters; 0 indexes with the query analyzer instead.
	MinSuffixLength int
	// DetailedView adds highlighted text fragments to hits.
	DetailedView bool
	MaxResults   int
}

// Document is one indexable page. ID is the page link.
type Document struct {
	ID          string
	Title       string
	Text        string
	Fingerprint string
}

// FromDoc converts a discovered document; title is resolved by the caller
// (normally the sidebar title rules).
func FromDoc(doc docs.Doc, title string) Document {
	return Document{
		ID:          doc.Link,
		Title:       title,
		Text:        markdown.PlainText(doc.Body),
		Fingerprint: mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(doc.Meta.Raw), "\n"), string(doc.Body)),
	}
}

// Hit is a single search result.
type Hit struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Score     float64  `json:"score"`
	Fragments []string `json:"fragments,omitempty"`
}

// Stats summarizes a Sync.
type Stats struct {
	Indexed   int `json:"indexed"`
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`
}

// Index is an in-memory bleve index safe for concurrent use.
type Index struct {
	mu           sync.RWMutex
	index        bleve.Index
	opts         Options
	fingerprints map[string]string
}

// Open creates an empty in-memory index.
func Open(opts Options) (*Index, error) {
	if opts.MinSuffixLength < 0 {
		return nil, fmt.Errorf("min suffix length must be >= 0, got %d", opts.MinSuffixLength)
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}
	m, err := buildMapping(opts)
	if err != nil {
		return nil, err
	}
	idx, err := bleve.NewMemOnly(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return &Index{index: idx, opts: opts, fingerprints: map[string]string{}}, nil
}

func buildMapping(opts Options) (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()
	if err := im.AddCustomAnalyzer(QueryAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{cjk.WidthName, lowercase.Name},
	}); err != nil {
		return nil, fmt.Errorf("register query analyzer: %w", err)
	}

	analyzer := QueryAnalyzer
	if opts.MinSuffixLength > 0 {
		if err := im.AddCustomTokenFilter(suffixFilterConfig, map[string]interface{}{
			"type":       SuffixFilterName,
			"min_length": float64(opts.MinSuffixLength),
		}); err != nil {
			return nil, fmt.Errorf("register suffix filter: %w", err)
		}
		// ideographs are single-rune tokens; pair them before suffixing or
		// a minimum of 2 would drop CJK text entirely
		if err := im.AddCustomAnalyzer(indexAnalyzerName, map[string]interface{}{
			"type":          custom.Name,
			"tokenizer":     unicode.Name,
			"token_filters": []string{cjk.WidthName, lowercase.Name, cjk.BigramName, suffixFilterConfig},
		}); err != nil {
			return nil, fmt.Errorf("register index analyzer: %w", err)
		}
		analyzer = indexAnalyzerName
	}

	textField := func() *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = analyzer
		f.Store = true
		f.Index = true
		f.IncludeTermVectors = true
		return f
	}

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt(fieldTitle, textField())
	docMapping.AddFieldMappingsAt(fieldText, textField())

	im.DefaultMapping = docMapping
	im.DefaultAnalyzer = analyzer
	return im, nil
}

// Sync makes the index match docs: changed documents are (re)indexed,
// unchanged ones skipped by fingerprint, and missing ones removed.
func (i *Index) Sync(ctx context.Context, documents []Document) (Stats, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var stats Stats
	seen := make(map[string]struct{}, len(documents))
	batch := i.index.NewBatch()
	for n, doc := range documents {
		if n%100 == 0 {
			if err := ctx.Err(); err != nil {
				return Stats{}, err
			}
		}
		seen[doc.ID] = struct{}{}
		if doc.Fingerprint != "" && i.fingerprints[doc.ID] == doc.Fingerprint {
			stats.Unchanged++
			continue
		}
		if err := batch.Index(doc.ID, map[string]interface{}{fieldTitle: doc.Title, fieldText: doc.Text}); err != nil {
			return Stats{}, fmt.Errorf("failed to add document %s to batch: %w", doc.ID, err)
		}
		stats.Indexed++
	}
	for id := range i.fingerprints {
		if _, ok := seen[id]; !ok {
			batch.Delete(id)
			stats.Removed++
		}
	}

	if batch.Size() > 0 {
		if err := i.index.Batch(batch); err != nil {
			return Stats{}, fmt.Errorf("failed to execute batch: %w", err)
		}
	}

	next := make(map[string]string, len(documents))
	for _, doc := range documents {
		next[doc.ID] = doc.Fingerprint
	}
	i.fingerprints = next

	slog.Debug("Search index synced",
		slog.Int("indexed", stats.Indexed),
		slog.Int("unchanged", stats.Unchanged),
		slog.Int("removed", stats.Removed))
	return stats, nil
}

// Count returns the number of indexed documents.
func (i *Index) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.DocCount()
}

// Search runs q against titles and text. limit <= 0 uses the configured
// maximum. A query without usable terms returns no hits.
func (i *Index) Search(ctx context.Context, q string, limit int) ([]Hit, error) {
	if limit <= 0 || limit > i.opts.MaxResults {
		limit = i.opts.MaxResults
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	terms := i.queryTerms(q)
	if len(terms) == 0 {
		return []Hit{}, nil
	}

	req := bleve.NewSearchRequestOptions(buildQuery(terms), limit, 0, false)
	req.Fields = []string{fieldTitle}
	if i.opts.DetailedView {
		req.Highlight = bleve.NewHighlightWithStyle("html")
		req.Highlight.Fields = []string{fieldText}
	}

	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		title, _ := h.Fields[fieldTitle].(string)
		hit := Hit{ID: h.ID, Title: title, Score: h.Score}
		if i.opts.DetailedView {
			frags := h.Fragments[fieldText]
			if len(frags) > maxFragments {
				frags = frags[:maxFragments]
			}
			hit.Fragments = frags
		}
		hits = append(hits, hit)
	}
	slog.Debug("Search executed", logfields.Query(q), logfields.Count(len(hits)))
	return hits, nil
}

// Close releases the index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Close()
}

func (i *Index) queryTerms(q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	analyzer := i.index.Mapping().AnalyzerNamed(QueryAnalyzer)
	if analyzer == nil {
		return strings.Fields(strings.ToLower(q))
	}
	tokens := analyzer.Analyze([]byte(q))
	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		terms = append(terms, string(t.Term))
	}
	return terms
}

// buildQuery ORs exact and prefix matches of each term on both fields.
func buildQuery(terms []string) query.Query {
	var qs []query.Query
	for _, t := range terms {
		for field, boost := range map[string]float64{fieldTitle: titleBoost, fieldText: textBoost} {
			exact := bleve.NewTermQuery(t)
			exact.SetField(field)
			exact.SetBoost(boost)

			prefix := bleve.NewPrefixQuery(t)
			prefix.SetField(field)
			prefix.SetBoost(boost * prefixBoost)

			qs = append(qs, exact, prefix)
		}
	}
	return bleve.NewDisjunctionQuery(qs...)
}
