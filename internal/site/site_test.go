package site

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/kbsite/internal/config"
	ferrors "git.home.luguber.info/inful/kbsite/internal/foundation/errors"
	"git.home.luguber.info/inful/kbsite/internal/metrics"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"notes/index.md":       "# Notes\n",
		"notes/go/index.md":    "---\ntitle: Go\n---\n",
		"notes/go/channels.md": "---\ndate: 2024-03-01\n---\n# Channels\n\nBuffered channels block when full.\n",
		"notes/go/maps.md":     "---\ndate: 2024-01-15\n---\n# Maps\n\nIteration order is randomized.\n",
	})
	cfg := config.Default()
	cfg.Sidebar.DocumentRootPath = root
	return cfg
}

func TestBuilder_Build(t *testing.T) {
	cfg := testConfig(t)
	idx, err := OpenIndex(cfg.Search)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	sidebarFile := filepath.Join(t.TempDir(), "out", "sidebar.json")
	b, err := NewBuilder(cfg, sidebarFile, idx)
	require.NoError(t, err)

	ctx := context.Background()
	res, err := b.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Documents)
	assert.Equal(t, 4, res.Index.Indexed)
	require.Len(t, res.Sidebar, 1)
	assert.Equal(t, "Go", res.Sidebar[0].Text)

	data, err := os.ReadFile(sidebarFile)
	require.NoError(t, err)
	var written map[string]any
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Contains(t, written, "/notes/")

	hits, err := idx.Search(ctx, "andomiz", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "/notes/go/maps", hits[0].ID)
	assert.Equal(t, "Maps", hits[0].Title)

	res, err = b.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Index.Indexed)
	assert.Equal(t, 4, res.Index.Unchanged)
	assert.Contains(t, res.String(), "4 documents")
}

func TestBuilder_WithoutIndexOrSidebarFile(t *testing.T) {
	cfg := testConfig(t)
	b, err := NewBuilder(cfg, "", nil)
	require.NoError(t, err)

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Documents)
	assert.Zero(t, res.Index)
}

func TestBuilder_MissingScanRoot(t *testing.T) {
	cfg := config.Default()
	cfg.Sidebar.DocumentRootPath = filepath.Join(t.TempDir(), "nowhere")
	b, err := NewBuilder(cfg, "", nil)
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestOpenIndex_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Search.Provider = config.SearchProviderNone
	_, err := OpenIndex(cfg.Search)
	require.Error(t, err)
}

type countingRecorder struct {
	metrics.NoopRecorder
	outcomes  []metrics.Outcome
	stages    []string
	documents int
	indexed   int
}

func (r *countingRecorder) IncBuildOutcome(o metrics.Outcome) { r.outcomes = append(r.outcomes, o) }
func (r *countingRecorder) SetDocuments(n int) { r.documents = n }
func (r *countingRecorder) AddIndexChanges(indexed, _, _ int) { r.indexed += indexed }
func (r *countingRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	r.stages = append(r.stages, stage)
}

func TestBuilder_RecordsMetrics(t *testing.T) {
	cfg := testConfig(t)
	idx, err := OpenIndex(cfg.Search)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	rec := &countingRecorder{}
	b, err := NewBuilder(cfg, "", idx)
	require.NoError(t, err)
	b.WithRecorder(rec)

	_, err = b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []metrics.Outcome{metrics.OutcomeSuccess}, rec.outcomes)
	assert.Equal(t, []string{"discover", "sidebar", "index"}, rec.stages)
	assert.Equal(t, 4, rec.documents)
	assert.Equal(t, 4, rec.indexed)

	cfg.Sidebar.DocumentRootPath = filepath.Join(t.TempDir(), "gone")
	b, err = NewBuilder(cfg, "", idx)
	require.NoError(t, err)
	b.WithRecorder(rec)
	_, err = b.Build(context.Background())
	require.Error(t, err)
	assert.Equal(t, metrics.OutcomeFailed, rec.outcomes[len(rec.outcomes)-1])
}
