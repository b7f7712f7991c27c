// Package site runs the document pipeline shared by the CLI commands and the
// watcher: discover documents, derive the sidebar, refresh the search index.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/kbsite/internal/config"
	"git.home.luguber.info/inful/kbsite/internal/docs"
	ferrors "git.home.luguber.info/inful/kbsite/internal/foundation/errors"
	"git.home.luguber.info/inful/kbsite/internal/logfields"
	"git.home.luguber.info/inful/kbsite/internal/metrics"
	"git.home.luguber.info/inful/kbsite/internal/searchindex"
	"git.home.luguber.info/inful/kbsite/internal/sidebar"
)

// Result summarizes one Build.
type Result struct {
	Documents int
	Sidebar   []sidebar.Item
	Index     searchindex.Stats
	Duration  time.Duration
}

// Builder holds the long-lived state of the pipeline.
type Builder struct {
	cfg         *config.Config
	discovery   *docs.Discovery
	index       *searchindex.Index
	sidebarFile string
	recorder    metrics.Recorder
}

// NewBuilder prepares a pipeline for cfg. An empty sidebarFile skips writing
// the sidebar; a nil index skips indexing.
func NewBuilder(cfg *config.Config, sidebarFile string, index *searchindex.Index) (*Builder, error) {
	d, err := docs.NewDiscovery(cfg.Sidebar.DiscoveryOptions())
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid sidebar options").
			Fatal().UserAction().Build()
	}
	return &Builder{
		cfg:         cfg,
		discovery:   d,
		index:       index,
		sidebarFile: sidebarFile,
		recorder:    metrics.NoopRecorder{},
	}, nil
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// OpenIndex creates the local search index described by the search config.
func OpenIndex(search config.SearchConfig) (*searchindex.Index, error) {
	if search.Provider == config.SearchProviderNone {
		return nil, ferrors.ValidationError("search is disabled in the configuration").Build()
	}
	idx, err := searchindex.Open(searchindex.Options{
		MinSuffixLength: search.Index.SuffixLength(),
		DetailedView:    search.DetailedView,
		MaxResults:      search.MaxResults,
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySearch, "failed to open search index").Build()
	}
	return idx, nil
}

// ScanRoot is the absolute directory documents are discovered in.
func (b *Builder) ScanRoot() string { return b.discovery.ScanRoot() }

// Discover lists the documents under the scan root.
func (b *Builder) Discover(ctx context.Context) ([]docs.Doc, error) {
	found, err := b.discovery.Discover(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "document discovery failed").
			WithContext("scan_root", b.discovery.ScanRoot()).Build()
	}
	return found, nil
}

// Documents converts discovered docs into index documents, titled by the
// sidebar title rules.
func (b *Builder) Documents(found []docs.Doc) []searchindex.Document {
	out := make([]searchindex.Document, 0, len(found))
	for _, d := range found {
		out = append(out, searchindex.FromDoc(d, b.cfg.Sidebar.PageTitle(d)))
	}
	return out
}

// Build runs the full pipeline once.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	start := time.Now()
	res, err := b.build(ctx)
	res.Duration = time.Since(start)

	b.recorder.ObserveBuildDuration(res.Duration)
	switch {
	case err == nil:
		b.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	case ctx.Err() != nil:
		b.recorder.IncBuildOutcome(metrics.OutcomeCanceled)
	default:
		b.recorder.IncBuildOutcome(metrics.OutcomeFailed)
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (b *Builder) build(ctx context.Context) (Result, error) {
	stage := time.Now()
	found, err := b.Discover(ctx)
	if err != nil {
		return Result{}, err
	}
	b.recorder.ObserveStageDuration("discover", time.Since(stage))
	b.recorder.SetDocuments(len(found))
	slog.Debug("Documents discovered", logfields.Count(len(found)), logfields.Path(b.discovery.ScanRoot()))

	stage = time.Now()
	res := Result{Documents: len(found), Sidebar: sidebar.Generate(b.cfg.Sidebar, found)}
	if b.sidebarFile != "" {
		if err := sidebar.Write(b.sidebarFile, b.cfg.Sidebar.ResolvePath, res.Sidebar); err != nil {
			return Result{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write sidebar").
				WithContext("path", b.sidebarFile).Build()
		}
		slog.Info("Sidebar written", logfields.Path(b.sidebarFile), logfields.Stage("sidebar"))
	}
	b.recorder.ObserveStageDuration("sidebar", time.Since(stage))

	if b.index == nil {
		return res, nil
	}
	stage = time.Now()
	stats, err := b.index.Sync(ctx, b.Documents(found))
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, err
		}
		return Result{}, ferrors.WrapError(err, ferrors.CategorySearch, "failed to update search index").Build()
	}
	b.recorder.ObserveStageDuration("index", time.Since(stage))
	b.recorder.AddIndexChanges(stats.Indexed, stats.Unchanged, stats.Removed)
	res.Index = stats
	slog.Info("Search index updated",
		logfields.Stage("index"),
		slog.Int("indexed", stats.Indexed),
		slog.Int("unchanged", stats.Unchanged),
		slog.Int("removed", stats.Removed))
	return res, nil
}

// String renders a one-line summary.
func (r Result) String() string {
	return fmt.Sprintf("%d documents, %d indexed, %d unchanged, %d removed in %s",
		r.Documents, r.Index.Indexed, r.Index.Unchanged, r.Index.Removed, r.Duration.Round(time.Millisecond))
}
