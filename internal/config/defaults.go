package config

import (
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/kbsite/internal/alias"
	"git.home.luguber.info/inful/kbsite/internal/markdown"
	"git.home.luguber.info/inful/kbsite/internal/sidebar"
	"git.home.luguber.info/inful/kbsite/internal/suffix"
)

// DefaultLanguage is the site language when none is configured.
var DefaultLanguage = language.MustParse("zh-CN")

// Labels are the localized theme UI strings.
type Labels struct {
	OutlineLabel         string    `yaml:"outline_label"`
	DocFooter            DocFooter `yaml:"doc_footer"`
	LangMenuLabel        string    `yaml:"lang_menu_label"`
	ReturnToTopLabel     string    `yaml:"return_to_top_label"`
	SidebarMenuLabel     string    `yaml:"sidebar_menu_label"`
	DarkModeSwitchLabel  string    `yaml:"dark_mode_switch_label"`
	LightModeSwitchTitle string    `yaml:"light_mode_switch_title"`
	DarkModeSwitchTitle  string    `yaml:"dark_mode_switch_title"`
	LastUpdatedText      string    `yaml:"last_updated_text"`
}

// DocFooter holds the pagination labels.
type DocFooter struct {
	Prev string `yaml:"prev"`
	Next string `yaml:"next"`
}

// locale bundles everything that differs between site languages.
type locale struct {
	tag         language.Tag
	title       string
	description string
	nav         [3]string // home, notes, links group
	labels      Labels
	search      SearchTranslations
}

var locales = []locale{
	{
		tag:         language.MustParse("zh-CN"),
		title:       "知识库",
		description: "个人知识库",
		nav:         [3]string{"首页", "笔记", "链接"},
		labels: Labels{
			OutlineLabel:         "页面导航",
			DocFooter:            DocFooter{Prev: "上一页", Next: "下一页"},
			LangMenuLabel:        "多语言",
			ReturnToTopLabel:     "回到顶部",
			SidebarMenuLabel:     "菜单",
			DarkModeSwitchLabel:  "主题",
			LightModeSwitchTitle: "切换到浅色模式",
			DarkModeSwitchTitle:  "切换到深色模式",
			LastUpdatedText:      "最后更新于",
		},
		search: SearchTranslations{
			Button: SearchButtonTranslations{ButtonText: "搜索文档", ButtonAriaLabel: "搜索文档"},
			Modal: SearchModalTranslations{
				DisplayDetails:   "显示详细列表",
				ResetButtonTitle: "清除查询条件",
				BackButtonTitle:  "返回",
				NoResultsText:    "无法找到相关结果",
				Footer:           SearchModalFooter{SelectText: "选择", NavigateText: "切换", CloseText: "关闭"},
			},
		},
	},
	{
		tag:         language.English,
		title:       "Knowledge Base",
		description: "Personal knowledge base",
		nav:         [3]string{"Home", "Notes", "Links"},
		labels: Labels{
			OutlineLabel:         "On this page",
			DocFooter:            DocFooter{Prev: "Previous page", Next: "Next page"},
			LangMenuLabel:        "Change language",
			ReturnToTopLabel:     "Return to top",
			SidebarMenuLabel:     "Menu",
			DarkModeSwitchLabel:  "Appearance",
			LightModeSwitchTitle: "Switch to light theme",
			DarkModeSwitchTitle:  "Switch to dark theme",
			LastUpdatedText:      "Last updated",
		},
		search: SearchTranslations{
			Button: SearchButtonTranslations{ButtonText: "Search", ButtonAriaLabel: "Search"},
			Modal: SearchModalTranslations{
				DisplayDetails:   "Display detailed list",
				ResetButtonTitle: "Reset search",
				BackButtonTitle:  "Close search",
				NoResultsText:    "No results for",
				Footer:           SearchModalFooter{SelectText: "to select", NavigateText: "to navigate", CloseText: "to close"},
			},
		},
	},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// SupportedLanguages lists the languages with a label catalog.
func SupportedLanguages() []language.Tag {
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = l.tag
	}
	return tags
}

// Default returns the default configuration in DefaultLanguage. Every call
// builds a fresh value.
func Default() *Config {
	return DefaultFor(DefaultLanguage)
}

// DefaultFor returns the default configuration with the labels of the
// closest supported language; unsupported languages fall back to the first
// catalog entry.
func DefaultFor(tag language.Tag) *Config {
	_, idx, _ := localeMatcher.Match(tag)
	loc := locales[idx]

	return &Config{
		Site: SiteConfig{
			Title:       loc.title,
			Description: loc.description,
			Lang:        loc.tag.String(),
			Base:        "/",
			LastUpdated: true,
			CleanURLs:   true,
		},
		Theme: ThemeConfig{
			Nav: []NavItem{
				{Text: loc.nav[0], Link: "/"},
				{Text: loc.nav[1], Link: "/notes/"},
				{Text: loc.nav[2], Items: []NavItem{
					{Text: "Go", Link: "https://go.dev/doc/"},
					{Text: "VitePress", Link: "https://vitepress.dev/"},
				}},
			},
			SocialLinks: []SocialLink{{Icon: "github", Link: "https://github.com/"}},
			Labels:      loc.labels,
		},
		Sidebar: sidebar.Options{
			DocumentRootPath:            "docs",
			ScanStartPath:               "notes",
			ResolvePath:                 "/notes/",
			UseTitleFromFileHeading:     true,
			UseTitleFromFrontmatter:     true,
			UseFolderTitleFromIndexFile: true,
			UseFolderLinkFromIndexFile:  true,
			SortMenusByFrontmatterDate:  true,
			SortMenusOrderByDescending:  true,
			FrontmatterDateField:        "date",
			Collapsed:                   true,
		},
		Search: SearchConfig{
			Provider:     SearchProviderLocal,
			DetailedView: true,
			MaxResults:   25,
			Translations: loc.search,
			Index:        TermProcessing{Kind: TermProcessorSuffix, MinLength: suffix.DefaultMinLength},
			Query:        TermProcessing{Kind: TermProcessorDefault},
		},
		Markdown: MarkdownConfig{Plugins: []string{markdown.PluginParagraphID}},
		Aliases: []alias.Rule{
			{Find: `^.*/VPNavBarSearch\.vue$`, Replacement: ".vitepress/theme/components/SearchBox.vue", Regexp: true},
			{Find: `^.*/VPNavBarTitle\.vue$`, Replacement: ".vitepress/theme/components/NavBarTitle.vue", Regexp: true},
			{Find: `^.*/VPHome\.vue$`, Replacement: ".vitepress/theme/components/Home.vue", Regexp: true},
			{Find: "@", Replacement: "."},
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}
