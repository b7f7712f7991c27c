package sidebar

import "git.home.luguber.info/inful/kbsite/internal/docs"

// Options describes how a navigation tree is derived from a document folder.
type Options struct {
	DocumentRootPath string `yaml:"document_root_path" json:"documentRootPath"`
	ScanStartPath    string `yaml:"scan_start_path" json:"scanStartPath"`
	ResolvePath      string `yaml:"resolve_path" json:"resolvePath"`

	// Page titles: first H1 wins, then frontmatter `title`, then file name.
	UseTitleFromFileHeading bool `yaml:"use_title_from_file_heading" json:"useTitleFromFileHeading"`
	UseTitleFromFrontmatter bool `yaml:"use_title_from_frontmatter" json:"useTitleFromFrontmatter"`

	UseFolderTitleFromIndexFile bool `yaml:"use_folder_title_from_index_file" json:"useFolderTitleFromIndexFile"`
	UseFolderLinkFromIndexFile  bool `yaml:"use_folder_link_from_index_file" json:"useFolderLinkFromIndexFile"`

	SortMenusByFrontmatterDate bool   `yaml:"sort_menus_by_frontmatter_date" json:"sortMenusByFrontmatterDate"`
	SortMenusOrderByDescending bool   `yaml:"sort_menus_order_by_descending" json:"sortMenusOrderByDescending"`
	FrontmatterDateField       string `yaml:"frontmatter_date_field" json:"frontmatterDateField"`

	Collapsed       bool     `yaml:"collapsed" json:"collapsed"`
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty" json:"excludePattern,omitempty"`
}

// DiscoveryOptions maps the sidebar options onto document discovery.
func (o Options) DiscoveryOptions() docs.Options {
	return docs.Options{
		Root:        o.DocumentRootPath,
		ScanPath:    o.ScanStartPath,
		ResolvePath: o.ResolvePath,
		Exclude:     append([]string(nil), o.ExcludePatterns...),
	}
}
