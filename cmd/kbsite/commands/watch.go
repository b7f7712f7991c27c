package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/kbsite/internal/config"
	"git.home.luguber.info/inful/kbsite/internal/logfields"
	"git.home.luguber.info/inful/kbsite/internal/metrics"
	"git.home.luguber.info/inful/kbsite/internal/searchindex"
	"git.home.luguber.info/inful/kbsite/internal/site"
	"git.home.luguber.info/inful/kbsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output      string        `short:"o" help:"Sidebar JSON file" default:".vitepress/sidebar.json" type:"path"`
	Debounce    time.Duration `help:"Quiet period before rebuilding" default:"300ms"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9102)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	var idx *searchindex.Index
	if cfg.Search.Provider != config.SearchProviderNone {
		idx, err = site.OpenIndex(cfg.Search)
		if err != nil {
			return err
		}
		defer func() { _ = idx.Close() }()
	}

	b, err := site.NewBuilder(cfg, w.Output, idx)
	if err != nil {
		return err
	}

	ctx := g.runContext()
	if w.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		b.WithRecorder(metrics.NewPrometheusRecorder(reg))
		stop := serveMetrics(ctx, w.MetricsAddr, reg)
		defer stop()
	}

	res, err := b.Build(ctx)
	if err != nil {
		return err
	}
	slog.Info("Initial build complete", logfields.Count(res.Documents), logfields.DurationMS(res.Duration.Milliseconds()))

	watcher, err := watch.New(b.ScanRoot(), w.Debounce, func(ctx context.Context) error {
		_, err := b.Build(ctx)
		return err
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

// serveMetrics exposes /metrics until the returned function is called.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		slog.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
