package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/kbsite/internal/alias"
	"git.home.luguber.info/inful/kbsite/internal/docs"
	"git.home.luguber.info/inful/kbsite/internal/markdown"
)

// Validate checks the configuration and returns the first problem found.
func Validate(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator checks one configuration section per method.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	for _, check := range []func() error{
		cv.validateSite,
		cv.validateNav,
		cv.validateSocialLinks,
		cv.validateSidebar,
		cv.validateSearch,
		cv.validateMarkdown,
		cv.validateAliases,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (cv *configurationValidator) validateSite() error {
	site := cv.config.Site
	if site.Title == "" {
		return errors.New("site title cannot be empty")
	}
	if _, err := language.Parse(site.Lang); err != nil {
		return fmt.Errorf("invalid site language %q: %w", site.Lang, err)
	}
	if !strings.HasPrefix(site.Base, "/") || !strings.HasSuffix(site.Base, "/") {
		return fmt.Errorf("site base must start and end with '/': %q", site.Base)
	}
	return nil
}

func (cv *configurationValidator) validateNav() error {
	for i, item := range cv.config.Theme.Nav {
		if item.Text == "" {
			return fmt.Errorf("nav item %d: text cannot be empty", i)
		}
		if len(item.Items) == 0 {
			if err := validateLink(item.Link); err != nil {
				return fmt.Errorf("nav item %q: %w", item.Text, err)
			}
			continue
		}
		for _, child := range item.Items {
			if child.Text == "" {
				return fmt.Errorf("nav group %q: item text cannot be empty", item.Text)
			}
			if len(child.Items) > 0 {
				return fmt.Errorf("nav group %q: item %q cannot nest further", item.Text, child.Text)
			}
			if err := validateLink(child.Link); err != nil {
				return fmt.Errorf("nav group %q item %q: %w", item.Text, child.Text, err)
			}
		}
	}
	return nil
}

func (cv *configurationValidator) validateSocialLinks() error {
	for _, sl := range cv.config.Theme.SocialLinks {
		if sl.Icon == "" {
			return fmt.Errorf("social link %q: icon cannot be empty", sl.Link)
		}
		u, err := url.Parse(sl.Link)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("social link %q: link must be an absolute URL, got %q", sl.Icon, sl.Link)
		}
	}
	return nil
}

// validateLink accepts site-relative paths and absolute http(s) URLs.
func validateLink(link string) error {
	if link == "" {
		return errors.New("link cannot be empty")
	}
	if strings.HasPrefix(link, "/") {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid link %q: %w", link, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("link must be site-relative or an http(s) URL, got %q", link)
	}
	return nil
}

func (cv *configurationValidator) validateSidebar() error {
	sb := cv.config.Sidebar
	if sb.DocumentRootPath == "" {
		return errors.New("sidebar document_root_path cannot be empty")
	}
	if filepath.IsAbs(sb.ScanStartPath) || hasParentSegment(sb.ScanStartPath) {
		return fmt.Errorf("sidebar scan_start_path must be relative to the document root: %q", sb.ScanStartPath)
	}
	if strings.Contains(sb.ResolvePath, "://") || hasParentSegment(sb.ResolvePath) {
		return fmt.Errorf("sidebar resolve_path must be a site path: %q", sb.ResolvePath)
	}
	if sb.SortMenusByFrontmatterDate && sb.FrontmatterDateField == "" {
		return errors.New("sidebar frontmatter_date_field is required when sorting by date")
	}
	if _, err := docs.CompileExcludes(sb.ExcludePatterns); err != nil {
		return fmt.Errorf("sidebar: %w", err)
	}
	return nil
}

func hasParentSegment(p string) bool {
	return slices.Contains(strings.Split(filepath.ToSlash(p), "/"), "..")
}

func (cv *configurationValidator) validateSearch() error {
	s := cv.config.Search
	if s.Provider == SearchProviderNone {
		return nil
	}
	if s.Index.Kind == TermProcessorSuffix && s.Index.MinLength < 1 {
		return fmt.Errorf("search index_term_processing min_length must be >= 1, got %d", s.Index.MinLength)
	}
	if s.Query.Kind != TermProcessorDefault {
		return fmt.Errorf("search query_term_processing must be %q, got %q", TermProcessorDefault, s.Query.Kind)
	}
	return nil
}

func (cv *configurationValidator) validateMarkdown() error {
	seen := make(map[string]bool, len(cv.config.Markdown.Plugins))
	for _, name := range cv.config.Markdown.Plugins {
		if seen[name] {
			return fmt.Errorf("duplicate markdown plugin: %s", name)
		}
		seen[name] = true
		if _, ok := markdown.LookupPlugin(name); !ok {
			return fmt.Errorf("%w: %q (registered: %v)", markdown.ErrUnknownPlugin, name, markdown.PluginNames())
		}
	}
	return nil
}

func (cv *configurationValidator) validateAliases() error {
	if _, err := alias.Compile(cv.config.Aliases); err != nil {
		return fmt.Errorf("aliases: %w", err)
	}
	return nil
}
