package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/kbsite/internal/markdown"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "zh-CN", cfg.Site.Lang)
	assert.Equal(t, "/", cfg.Site.Base)

	assert.Equal(t, "搜索文档", cfg.Search.Translations.Button.ButtonText)
	assert.Equal(t, "无法找到相关结果", cfg.Search.Translations.Modal.NoResultsText)
	assert.Equal(t, "上一页", cfg.Theme.Labels.DocFooter.Prev)
	assert.Equal(t, "切换到深色模式", cfg.Theme.Labels.DarkModeSwitchTitle)

	assert.Equal(t, SearchProviderLocal, cfg.Search.Provider)
	assert.True(t, cfg.Search.DetailedView)
	assert.Equal(t, TermProcessing{Kind: TermProcessorSuffix, MinLength: 2}, cfg.Search.Index)
	assert.Equal(t, TermProcessing{Kind: TermProcessorDefault}, cfg.Search.Query)

	assert.Equal(t, []string{markdown.PluginParagraphID}, cfg.Markdown.Plugins)

	require.Len(t, cfg.Aliases, 4)
	assert.Equal(t, "@", cfg.Aliases[3].Find)

	sb := cfg.Sidebar
	assert.True(t, sb.UseTitleFromFileHeading)
	assert.True(t, sb.UseTitleFromFrontmatter)
	assert.True(t, sb.UseFolderTitleFromIndexFile)
	assert.True(t, sb.UseFolderLinkFromIndexFile)
	assert.True(t, sb.SortMenusByFrontmatterDate)
	assert.True(t, sb.SortMenusOrderByDescending)

	require.NotEmpty(t, cfg.Theme.SocialLinks)
	var external bool
	for _, n := range cfg.Theme.Nav {
		if len(n.Items) > 0 {
			external = true
		}
	}
	assert.True(t, external, "default nav has an external link group")
}

func TestDefault_FreshValues(t *testing.T) {
	a := Default()
	a.Markdown.Plugins[0] = "changed"
	a.Theme.Nav[2].Items[0].Text = "changed"
	a.Aliases[0].Find = "changed"

	b := Default()
	assert.Equal(t, markdown.PluginParagraphID, b.Markdown.Plugins[0])
	assert.NotEqual(t, "changed", b.Theme.Nav[2].Items[0].Text)
	assert.NotEqual(t, "changed", b.Aliases[0].Find)
}

func TestDefaultFor(t *testing.T) {
	en := DefaultFor(language.English)
	assert.Equal(t, "en", en.Site.Lang)
	assert.Equal(t, "Search", en.Search.Translations.Button.ButtonText)
	require.NoError(t, Validate(en))

	fallback := DefaultFor(language.MustParse("fr"))
	assert.Equal(t, Default().Theme.Labels, fallback.Theme.Labels)

	assert.Len(t, SupportedLanguages(), 2)
}

func TestClone(t *testing.T) {
	orig := Default()
	c := orig.Clone()
	require.Equal(t, orig, c)

	c.Theme.Nav[2].Items[0].Link = "https://example.com/"
	c.Markdown.Plugins = append(c.Markdown.Plugins, "x")
	c.Aliases[0].Replacement = "x"

	assert.Equal(t, Default(), orig)
}

func TestTermProcessing(t *testing.T) {
	idx := TermProcessing{Kind: TermProcessorSuffix, MinLength: 3}
	process := idx.Processor()
	require.NotNil(t, process)
	tokens, ok := process("hello")
	require.True(t, ok)
	assert.Equal(t, []string{"hello", "ello", "llo"}, tokens)
	assert.Equal(t, 3, idx.SuffixLength())
	assert.Equal(t, map[string]any{"kind": "suffix", "minLength": 3}, idx.Descriptor())

	def := TermProcessing{Kind: TermProcessorDefault}
	assert.Nil(t, def.Processor())
	assert.Zero(t, def.SuffixLength())
	assert.Equal(t, map[string]any{"kind": "default"}, def.Descriptor())
}
