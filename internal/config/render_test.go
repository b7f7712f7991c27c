package config

import (
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/kbsite/internal/sidebar"
)

func dig(t *testing.T, m map[string]any, keys ...string) any {
	t.Helper()
	var cur any = m
	for _, k := range keys {
		mm, ok := cur.(map[string]any)
		require.True(t, ok, "expected map at %q", k)
		cur, ok = mm[k]
		require.True(t, ok, "missing key %q", k)
	}
	return cur
}

func TestRender_JSON(t *testing.T) {
	collapsed := true
	items := []sidebar.Item{{Text: "Go", Link: "/notes/go/", Collapsed: &collapsed, Items: []sidebar.Item{{Text: "Channels", Link: "/notes/go/channels"}}}}

	data, err := Render(Default(), FormatJSON, items)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "zh-CN", out["lang"])
	assert.Equal(t, "local", dig(t, out, "themeConfig", "search", "provider"))
	assert.Equal(t, true, dig(t, out, "themeConfig", "search", "options", "detailedView"))
	assert.Equal(t, map[string]any{"kind": "suffix", "minLength": 2.0},
		dig(t, out, "themeConfig", "search", "options", "miniSearch", "options", "processTerm"))
	assert.Equal(t, map[string]any{"kind": "default"},
		dig(t, out, "themeConfig", "search", "options", "miniSearch", "searchOptions", "processTerm"))
	assert.Equal(t, "搜索文档", dig(t, out, "themeConfig", "search", "options", "translations", "button", "buttonText"))
	assert.Equal(t, "页面导航", dig(t, out, "themeConfig", "outline", "label"))
	assert.Equal(t, []any{"paragraph-id"}, dig(t, out, "markdown", "plugins"))

	aliases := dig(t, out, "vite", "resolve", "alias").([]any)
	require.Len(t, aliases, 4)
	assert.Equal(t, map[string]any{"find": "@", "replacement": "."}, aliases[3])

	tree := dig(t, out, "themeConfig", "sidebar", "/notes/").([]any)
	require.Len(t, tree, 1)
	assert.Equal(t, "Go", tree[0].(map[string]any)["text"])
	assert.Equal(t, true, tree[0].(map[string]any)["collapsed"])

	assert.Equal(t, "date", dig(t, out, "sidebarOptions", "frontmatterDateField"))
}

func TestRender_YAMLWithoutSidebar(t *testing.T) {
	cfg := Default()
	cfg.Search.Provider = SearchProviderNone

	data, err := Render(cfg, FormatYAML, nil)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(data, &out))

	theme := out["themeConfig"].(map[string]any)
	assert.NotContains(t, theme, "sidebar")
	assert.NotContains(t, theme, "search")
	assert.Equal(t, true, out["cleanUrls"])
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(Default(), Format("xml"), nil)
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestRender_TOML(t *testing.T) {
	data, err := Render(Default(), FormatTOML, []sidebar.Item{{Text: "Go", Link: "/notes/go/"}})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, toml.Unmarshal(data, &out))
	assert.Equal(t, "知识库", out["title"])
	assert.Equal(t, "zh-CN", dig(t, out, "lang"))
	assert.Equal(t, "local", dig(t, out, "themeConfig", "search", "provider"))
	assert.Equal(t, "suffix", dig(t, out, "themeConfig", "search", "options", "miniSearch", "options", "processTerm", "kind"))

	f, err := ParseFormat("TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)
}
