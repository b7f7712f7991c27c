package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/kbsite/internal/foundation/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("kbsite"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = kctx.Run(&Global{Ctx: context.Background(), Out: &out}, &cli)
	return out.String(), err
}

// newSite writes a document tree and a config pointing at it.
func newSite(t *testing.T) (configPath string) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"docs/notes/index.md":       "# Notes\n",
		"docs/notes/go/index.md":    "---\ntitle: Go\n---\n",
		"docs/notes/go/channels.md": "---\ndate: 2024-03-01\n---\n# Channels\n\nBuffered channels block when full.\n",
		"docs/notes/go/maps.md":     "---\ndate: 2024-01-15\n---\n# Maps\n\nIteration order is randomized.\n",
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	configPath = filepath.Join(dir, "kbsite.yaml")
	cfg := "sidebar:\n  document_root_path: " + filepath.Join(dir, "docs") + "\nsearch:\n  detailed_view: false\n"
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))
	return configPath
}

func TestSuffixesCommand(t *testing.T) {
	out, err := run(t, "suffixes", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\nello\nllo\nlo\n", out)

	out, err = run(t, "suffixes", "-m", "5", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	out, err = run(t, "suffixes", "-m", "3", "ab")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSuffixesCommand_UsesConfiguredProcessor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kbsite.yaml")
	cfg := "search:\n  index_term_processing:\n    kind: suffix\n    min_length: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	out, err := run(t, "-c", path, "suffixes", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\nello\n", out)
}

func TestResolveCommand(t *testing.T) {
	out, err := run(t, "resolve",
		"node_modules/vitepress/dist/client/theme-default/components/VPNavBarSearch.vue",
		"@/components/Card.vue",
		"vue")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "-> .vitepress/theme/components/SearchBox.vue"), lines[0])
	assert.Equal(t, "@/components/Card.vue -> ./components/Card.vue", lines[1])
	assert.Equal(t, "vue (no alias)", lines[2])
}

func TestRenderCommand(t *testing.T) {
	cfgPath := newSite(t)
	out, err := run(t, "-c", cfgPath, "render", "--format", "json", "--with-sidebar")
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	theme := tree["themeConfig"].(map[string]any)
	assert.Contains(t, theme["sidebar"], "/notes/")
	assert.Equal(t, false, theme["search"].(map[string]any)["options"].(map[string]any)["detailedView"])
}

func TestRenderCommand_BadFormat(t *testing.T) {
	_, err := run(t, "render", "--format", "xml")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestSidebarCommand(t *testing.T) {
	cfgPath := newSite(t)
	file := filepath.Join(t.TempDir(), "sidebar.json")

	out, err := run(t, "-c", cfgPath, "sidebar", "-o", file)
	require.NoError(t, err)
	assert.Contains(t, out, "4 documents")
	assert.FileExists(t, file)

	out, err = run(t, "-c", cfgPath, "sidebar", "--print")
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Go", items[0]["text"])
}

func TestIndexAndSearchCommands(t *testing.T) {
	cfgPath := newSite(t)

	out, err := run(t, "-c", cfgPath, "index")
	require.NoError(t, err)
	assert.Contains(t, out, "4 indexed")

	out, err = run(t, "-c", cfgPath, "search", "annel")
	require.NoError(t, err)
	assert.Contains(t, out, "/notes/go/channels")

	out, err = run(t, "-c", cfgPath, "search", "--json", "andomiz")
	require.NoError(t, err)
	var hits []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	require.NotEmpty(t, hits)
	assert.Equal(t, "/notes/go/maps", hits[0]["id"])

	out, err = run(t, "-c", cfgPath, "search", "zzzqqq")
	require.NoError(t, err)
	assert.Equal(t, "无法找到相关结果\n", out)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kbsite.yaml")
	out, err := run(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = run(t, "init", path)
	require.Error(t, err)

	_, err = run(t, "init", "--force", path)
	require.NoError(t, err)
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "-c", filepath.Join(t.TempDir(), "nope.yaml"), "render")
	require.Error(t, err)
	assert.Equal(t, 3, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestHTMLCommand(t *testing.T) {
	cfgPath := newSite(t)
	doc := filepath.Join(filepath.Dir(cfgPath), "docs", "notes", "go", "maps.md")

	out, err := run(t, "-c", cfgPath, "html", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Maps</h1>")
	assert.Contains(t, out, `<p id="p-1">Iteration order is randomized.</p>`)
	assert.NotContains(t, out, "date:")

	out, err = run(t, "-c", cfgPath, "html", "-p", "gfm", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "<p>Iteration order is randomized.</p>")

	_, err = run(t, "-c", cfgPath, "html", "-p", "nope", doc)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}
