package config

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/kbsite/internal/docs"
	"git.home.luguber.info/inful/kbsite/internal/foundation/normalization"
	"git.home.luguber.info/inful/kbsite/internal/sidebar"
)

// Format is an output encoding for Render.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

var formatNormalizer = normalization.NewNormalizer("format", map[string]Format{
	"yaml": FormatYAML,
	"yml":  FormatYAML,
	"json": FormatJSON,
	"toml": FormatTOML,
}, FormatYAML)

// ParseFormat accepts yaml, yml, json or toml; empty means yaml.
func ParseFormat(raw string) (Format, error) {
	return formatNormalizer.Parse(raw)
}

// Render encodes the configuration in the shape the host build tool reads.
// items, when non-nil, is embedded as the generated sidebar keyed by the
// resolve path. Term processors are rendered as descriptors.
func Render(cfg *Config, format Format, items []sidebar.Item) ([]byte, error) {
	tree := Tree(cfg, items)
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatTOML:
		data, err := toml.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("marshal toml: %w", err)
		}
		return data, nil
	case FormatYAML, "":
		data, err := yaml.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported render format: %q", format)
	}
}

// Tree builds the rendered structure as nested maps.
func Tree(cfg *Config, items []sidebar.Item) map[string]any {
	labels := cfg.Theme.Labels
	theme := map[string]any{
		"nav":                  navTree(cfg.Theme.Nav),
		"socialLinks":          socialTree(cfg.Theme.SocialLinks),
		"outline":              map[string]any{"label": labels.OutlineLabel},
		"docFooter":            map[string]any{"prev": labels.DocFooter.Prev, "next": labels.DocFooter.Next},
		"langMenuLabel":        labels.LangMenuLabel,
		"returnToTopLabel":     labels.ReturnToTopLabel,
		"sidebarMenuLabel":     labels.SidebarMenuLabel,
		"darkModeSwitchLabel":  labels.DarkModeSwitchLabel,
		"lightModeSwitchTitle": labels.LightModeSwitchTitle,
		"darkModeSwitchTitle":  labels.DarkModeSwitchTitle,
		"lastUpdated":          map[string]any{"text": labels.LastUpdatedText},
	}
	if cfg.Search.Provider != SearchProviderNone {
		theme["search"] = searchTree(cfg.Search)
	}
	if items != nil {
		theme["sidebar"] = map[string]any{docs.NormalizeResolvePath(cfg.Sidebar.ResolvePath): itemsTree(items)}
	}

	aliases := make([]any, 0, len(cfg.Aliases))
	for _, a := range cfg.Aliases {
		entry := map[string]any{"find": a.Find, "replacement": a.Replacement}
		if a.Regexp {
			entry["regexp"] = true
		}
		aliases = append(aliases, entry)
	}

	plugins := make([]any, 0, len(cfg.Markdown.Plugins))
	for _, p := range cfg.Markdown.Plugins {
		plugins = append(plugins, p)
	}

	return map[string]any{
		"title":          cfg.Site.Title,
		"description":    cfg.Site.Description,
		"lang":           cfg.Site.Lang,
		"base":           cfg.Site.Base,
		"lastUpdated":    cfg.Site.LastUpdated,
		"cleanUrls":      cfg.Site.CleanURLs,
		"themeConfig":    theme,
		"sidebarOptions": sidebarTree(cfg.Sidebar),
		"markdown":       map[string]any{"plugins": plugins},
		"vite":           map[string]any{"resolve": map[string]any{"alias": aliases}},
	}
}

func searchTree(s SearchConfig) map[string]any {
	t := s.Translations
	return map[string]any{
		"provider": string(s.Provider),
		"options": map[string]any{
			"detailedView": s.DetailedView,
			"translations": map[string]any{
				"button": map[string]any{
					"buttonText":      t.Button.ButtonText,
					"buttonAriaLabel": t.Button.ButtonAriaLabel,
				},
				"modal": map[string]any{
					"displayDetails":   t.Modal.DisplayDetails,
					"resetButtonTitle": t.Modal.ResetButtonTitle,
					"backButtonTitle":  t.Modal.BackButtonTitle,
					"noResultsText":    t.Modal.NoResultsText,
					"footer": map[string]any{
						"selectText":   t.Modal.Footer.SelectText,
						"navigateText": t.Modal.Footer.NavigateText,
						"closeText":    t.Modal.Footer.CloseText,
					},
				},
			},
			"miniSearch": map[string]any{
				"options":       map[string]any{"processTerm": s.Index.Descriptor()},
				"searchOptions": map[string]any{"processTerm": s.Query.Descriptor()},
			},
		},
	}
}

func sidebarTree(o sidebar.Options) map[string]any {
	t := map[string]any{
		"documentRootPath":            o.DocumentRootPath,
		"scanStartPath":               o.ScanStartPath,
		"resolvePath":                 o.ResolvePath,
		"useTitleFromFileHeading":     o.UseTitleFromFileHeading,
		"useTitleFromFrontmatter":     o.UseTitleFromFrontmatter,
		"useFolderTitleFromIndexFile": o.UseFolderTitleFromIndexFile,
		"useFolderLinkFromIndexFile":  o.UseFolderLinkFromIndexFile,
		"sortMenusByFrontmatterDate":  o.SortMenusByFrontmatterDate,
		"sortMenusOrderByDescending":  o.SortMenusOrderByDescending,
		"frontmatterDateField":        o.FrontmatterDateField,
		"collapsed":                   o.Collapsed,
	}
	if len(o.ExcludePatterns) > 0 {
		patterns := make([]any, len(o.ExcludePatterns))
		for i, p := range o.ExcludePatterns {
			patterns[i] = p
		}
		t["excludePattern"] = patterns
	}
	return t
}

func navTree(items []NavItem) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		entry := map[string]any{"text": it.Text}
		if it.Link != "" {
			entry["link"] = it.Link
		}
		if len(it.Items) > 0 {
			entry["items"] = navTree(it.Items)
		}
		out = append(out, entry)
	}
	return out
}

func socialTree(links []SocialLink) []any {
	out := make([]any, 0, len(links))
	for _, l := range links {
		out = append(out, map[string]any{"icon": l.Icon, "link": l.Link})
	}
	return out
}

func itemsTree(items []sidebar.Item) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		entry := map[string]any{"text": it.Text}
		if it.Link != "" {
			entry["link"] = it.Link
		}
		if it.Collapsed != nil {
			entry["collapsed"] = *it.Collapsed
		}
		if len(it.Items) > 0 {
			entry["items"] = itemsTree(it.Items)
		}
		out = append(out, entry)
	}
	return out
}
