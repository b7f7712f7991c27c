package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/kbsite/internal/docs"
	"git.home.luguber.info/inful/kbsite/internal/suffix"
)

// normalize canonicalizes enum spellings and paths in place. Unknown enum
// values are errors; logging settings fall back to their defaults.
func normalize(cfg *Config) error {
	cfg.Site.Title = strings.TrimSpace(cfg.Site.Title)
	cfg.Site.Lang = strings.TrimSpace(cfg.Site.Lang)
	if cfg.Site.Base == "" {
		cfg.Site.Base = "/"
	}

	provider, err := searchProviderNormalizer.Parse(string(cfg.Search.Provider))
	if err != nil {
		return err
	}
	cfg.Search.Provider = provider

	for _, tp := range []*TermProcessing{&cfg.Search.Index, &cfg.Search.Query} {
		kind, err := termProcessorNormalizer.Parse(string(tp.Kind))
		if err != nil {
			return err
		}
		tp.Kind = kind
		if tp.Kind == TermProcessorSuffix && tp.MinLength == 0 {
			tp.MinLength = suffix.DefaultMinLength
		}
		if tp.Kind == TermProcessorDefault {
			tp.MinLength = 0
		}
	}

	cfg.Sidebar.DocumentRootPath = strings.TrimSpace(cfg.Sidebar.DocumentRootPath)
	cfg.Sidebar.ScanStartPath = strings.Trim(strings.TrimSpace(cfg.Sidebar.ScanStartPath), "/")
	cfg.Sidebar.ResolvePath = docs.NormalizeResolvePath(strings.TrimSpace(cfg.Sidebar.ResolvePath))
	cfg.Sidebar.FrontmatterDateField = strings.TrimSpace(cfg.Sidebar.FrontmatterDateField)

	for i, p := range cfg.Markdown.Plugins {
		cfg.Markdown.Plugins[i] = strings.ToLower(strings.TrimSpace(p))
	}

	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))

	if cfg.Search.MaxResults < 0 {
		return fmt.Errorf("search max_results must be >= 0, got %d", cfg.Search.MaxResults)
	}
	return nil
}
