// Package docs discovers the Markdown documents a site is built from and
// maps each one to its public link.
package docs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/kbsite/internal/frontmatter"
	"git.home.luguber.info/inful/kbsite/internal/logfields"
	"github.com/gobwas/glob"
)

// IndexFile is the per-folder landing document.
const IndexFile = "index.md"

// Doc is a discovered Markdown document.
type Doc struct {
	Path    string // Absolute path on disk
	RelPath string // Slash-separated path relative to the scan root
	Link    string // Public URL path
	Meta    frontmatter.Meta
	Body    []byte // Content after the frontmatter block
}

// Name is the file name without extension.
func (d Doc) Name() string {
	return strings.TrimSuffix(path.Base(d.RelPath), path.Ext(d.RelPath))
}

// Dir is the slash-separated folder of the document, "" at the scan root.
func (d Doc) Dir() string {
	dir := path.Dir(d.RelPath)
	if dir == "." {
		return ""
	}
	return dir
}

// IsIndex reports whether the document is a folder landing page.
func (d Doc) IsIndex() bool {
	return path.Base(d.RelPath) == IndexFile
}

// Options locates documents on disk and on the site.
type Options struct {
	Root        string   // Document root directory
	ScanPath    string   // Subdirectory of Root to scan
	ResolvePath string   // Public URL prefix for scanned files
	Exclude     []string // Glob patterns matched against RelPath
}

// Discovery walks a scan root for Markdown documents.
type Discovery struct {
	scanRoot    string
	resolvePath string
	excludes    []glob.Glob
}

// CompileExcludes compiles slash-separated glob patterns (`**` crosses folders).
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// NewDiscovery validates options and returns a Discovery.
func NewDiscovery(opts Options) (*Discovery, error) {
	excludes, err := CompileExcludes(opts.Exclude)
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(filepath.Join(opts.Root, opts.ScanPath))
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}
	return &Discovery{
		scanRoot:    root,
		resolvePath: NormalizeResolvePath(opts.ResolvePath),
		excludes:    excludes,
	}, nil
}

// ScanRoot returns the absolute directory being scanned.
func (d *Discovery) ScanRoot() string { return d.scanRoot }

// Discover returns every non-excluded Markdown document under the scan root
// in lexical path order.
func (d *Discovery) Discover(ctx context.Context) ([]Doc, error) {
	if info, err := os.Stat(d.scanRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrScanRootNotFound, d.scanRoot)
	}

	var out []Doc
	err := filepath.WalkDir(d.scanRoot, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p != d.scanRoot && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !isMarkdownFile(p) {
			return nil
		}

		rel, err := filepath.Rel(d.scanRoot, p)
		if err != nil {
			return err
		}
		if d.excluded(filepath.ToSlash(rel)) {
			slog.Debug("Excluded document", logfields.Path(rel))
			return nil
		}

		doc, err := d.read(p, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		out = append(out, doc)
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, d.scanRoot, err)
	}

	slog.Debug("Documents discovered", logfields.Path(d.scanRoot), logfields.Count(len(out)))
	return out, nil
}

func (d *Discovery) read(p, rel string) (Doc, error) {
	content, err := os.ReadFile(p) // #nosec G304 -- paths come from walking the scan root
	if err != nil {
		return Doc{}, fmt.Errorf("%w: %s: %w", ErrFileReadFailed, rel, err)
	}
	meta, body, err := frontmatter.Parse(content)
	if err != nil {
		return Doc{}, fmt.Errorf("%s: %w", rel, err)
	}
	return Doc{
		Path:    p,
		RelPath: rel,
		Link:    LinkFor(d.resolvePath, rel),
		Meta:    meta,
		Body:    body,
	}, nil
}

func (d *Discovery) excluded(rel string) bool {
	for _, g := range d.excludes {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// LinkFor maps rel under resolvePath: `index.md` files link to their folder,
// other files drop the `.md` extension.
func LinkFor(resolvePath, rel string) string {
	base := NormalizeResolvePath(resolvePath)
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	if path.Base(rel) == IndexFile {
		dir := path.Dir(rel)
		if dir == "." {
			return base
		}
		return base + dir + "/"
	}
	return base + strings.TrimSuffix(rel, path.Ext(rel))
}

// NormalizeResolvePath makes p start and end with a slash.
func NormalizeResolvePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p + "/"
}

func isMarkdownFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".md" || ext == ".markdown"
}
