package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/kbsite/internal/alias"
	ferrors "git.home.luguber.info/inful/kbsite/internal/foundation/errors"
	"git.home.luguber.info/inful/kbsite/internal/logfields"
	"git.home.luguber.info/inful/kbsite/internal/sidebar"
)

// Config is the complete site configuration handed to the host build tool.
type Config struct {
	Site     SiteConfig      `yaml:"site"`
	Theme    ThemeConfig     `yaml:"theme"`
	Sidebar  sidebar.Options `yaml:"sidebar"`
	Search   SearchConfig    `yaml:"search"`
	Markdown MarkdownConfig  `yaml:"markdown"`
	Aliases  []alias.Rule    `yaml:"aliases"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// SiteConfig holds the site metadata.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Lang        string `yaml:"lang"` // BCP 47 tag; selects the label catalog
	Base        string `yaml:"base"`
	LastUpdated bool   `yaml:"last_updated"`
	CleanURLs   bool   `yaml:"clean_urls"`
}

// ThemeConfig holds navigation and UI text for the default theme.
type ThemeConfig struct {
	Nav         []NavItem    `yaml:"nav"`
	SocialLinks []SocialLink `yaml:"social_links"`
	Labels      Labels       `yaml:"labels"`
}

// NavItem is a top bar entry: a link, or a group of links when Items is set.
type NavItem struct {
	Text  string    `yaml:"text"`
	Link  string    `yaml:"link,omitempty"`
	Items []NavItem `yaml:"items,omitempty"`
}

// SocialLink is an icon link in the top bar.
type SocialLink struct {
	Icon string `yaml:"icon"`
	Link string `yaml:"link"`
}

// MarkdownConfig lists markdown plugins by registered name.
type MarkdownConfig struct {
	Plugins []string `yaml:"plugins"`
}

// LoggingConfig controls the CLI log handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

var envFiles = []string{".env", ".env.local"}

// Load reads a YAML overlay from path and applies it on top of the defaults
// for the file's site language. Environment variables in the file are
// expanded; .env files never override the existing environment.
func Load(path string) (*Config, error) {
	loadEnvFile()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("configuration file not found").
				WithContext("path", path).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that an empty path yields Default().
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse overlays YAML data on the defaults, then normalizes and validates.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var probe struct {
		Site struct {
			Lang string `yaml:"lang"`
		} `yaml:"site"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").
			Fatal().UserAction().Build()
	}

	tag := DefaultLanguage
	if probe.Site.Lang != "" {
		t, err := language.Parse(probe.Site.Lang)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid site language").
				UserAction().WithContext("lang", probe.Site.Lang).Build()
		}
		tag = t
	}

	cfg := DefaultFor(tag)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").
			Fatal().UserAction().Build()
	}

	if err := normalize(cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "normalize").
			Fatal().UserAction().Build()
	}
	if err := Validate(cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "configuration validation failed").
			UserAction().Build()
	}
	return cfg, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Theme.Nav = cloneNav(c.Theme.Nav)
	out.Theme.SocialLinks = append([]SocialLink(nil), c.Theme.SocialLinks...)
	out.Sidebar.ExcludePatterns = append([]string(nil), c.Sidebar.ExcludePatterns...)
	out.Markdown.Plugins = append([]string(nil), c.Markdown.Plugins...)
	out.Aliases = append([]alias.Rule(nil), c.Aliases...)
	return &out
}

func cloneNav(items []NavItem) []NavItem {
	if items == nil {
		return nil
	}
	out := make([]NavItem, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Items = cloneNav(it.Items)
	}
	return out
}

// AliasTable compiles the alias rules.
func (c *Config) AliasTable() (*alias.Table, error) {
	return alias.Compile(c.Aliases)
}

// Init writes the default configuration as an example file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).Build()
	}
	return nil
}

// loadEnvFile loads the first of .env/.env.local that exists.
func loadEnvFile() {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(f), logfields.Error(err))
			return
		}
		slog.Debug("Loaded environment variables", logfields.Path(f))
		return
	}
}
