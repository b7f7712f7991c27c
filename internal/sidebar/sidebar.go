// Package sidebar derives a nested navigation tree from a folder of
// documents: titles come from headings or frontmatter, folders take their
// title and link from an index page, and entries can be ordered by a
// frontmatter date.
package sidebar

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/kbsite/internal/docs"
	"git.home.luguber.info/inful/kbsite/internal/markdown"
)

// Item is one sidebar entry: a page (Link set, no Items) or a folder.
type Item struct {
	Text      string `json:"text" yaml:"text"`
	Link      string `json:"link,omitempty" yaml:"link,omitempty"`
	Items     []Item `json:"items,omitempty" yaml:"items,omitempty"`
	Collapsed *bool  `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`

	date    time.Time
	hasDate bool
}

type folder struct {
	name     string
	index    *docs.Doc
	pages    []docs.Doc
	children map[string]*folder
}

func newFolder(name string) *folder {
	return &folder{name: name, children: map[string]*folder{}}
}

// Generate builds the sidebar tree for documents discovered under the scan
// root. The root index page is the section landing and is not listed.
func Generate(opts Options, documents []docs.Doc) []Item {
	root := newFolder("")
	for i := range documents {
		doc := documents[i]
		f := root
		if dir := doc.Dir(); dir != "" {
			for _, part := range strings.Split(dir, "/") {
				child, ok := f.children[part]
				if !ok {
					child = newFolder(part)
					f.children[part] = child
				}
				f = child
			}
		}
		if doc.IsIndex() {
			f.index = &doc
			continue
		}
		f.pages = append(f.pages, doc)
	}
	return opts.items(root)
}

func (o Options) items(f *folder) []Item {
	items := make([]Item, 0, len(f.pages)+len(f.children))
	for _, doc := range f.pages {
		item := Item{Text: o.PageTitle(doc), Link: doc.Link}
		item.date, item.hasDate = o.date(doc)
		items = append(items, item)
	}
	for _, child := range f.children {
		items = append(items, o.folderItem(child))
	}
	o.sort(items)
	return items
}

func (o Options) folderItem(f *folder) Item {
	item := Item{Text: f.name, Items: o.items(f)}
	if f.index != nil {
		if o.UseFolderTitleFromIndexFile {
			item.Text = o.PageTitle(*f.index)
		}
		if o.UseFolderLinkFromIndexFile {
			item.Link = f.index.Link
		}
		item.date, item.hasDate = o.date(*f.index)
	}
	if !item.hasDate {
		// newest dated descendant
		for _, c := range item.Items {
			if c.hasDate && (!item.hasDate || c.date.After(item.date)) {
				item.date, item.hasDate = c.date, true
			}
		}
	}
	collapsed := o.Collapsed
	item.Collapsed = &collapsed
	return item
}

// PageTitle resolves the display title of a document.
func (o Options) PageTitle(doc docs.Doc) string {
	if o.UseTitleFromFileHeading {
		if h := markdown.FirstHeading(doc.Body); h != "" {
			return h
		}
	}
	if o.UseTitleFromFrontmatter {
		if t := doc.Meta.Title(); t != "" {
			return t
		}
	}
	if doc.IsIndex() {
		if dir := doc.Dir(); dir != "" {
			return path.Base(dir)
		}
	}
	return doc.Name()
}

func (o Options) date(doc docs.Doc) (time.Time, bool) {
	if !o.SortMenusByFrontmatterDate || o.FrontmatterDateField == "" {
		return time.Time{}, false
	}
	return doc.Meta.Date(o.FrontmatterDateField)
}

// sort orders by date when enabled (undated last), otherwise by text.
// Ties always fall back to ascending text.
func (o Options) sort(items []Item) {
	desc := o.SortMenusOrderByDescending
	slices.SortStableFunc(items, func(a, b Item) int {
		if o.SortMenusByFrontmatterDate {
			switch {
			case a.hasDate && !b.hasDate:
				return -1
			case !a.hasDate && b.hasDate:
				return 1
			case a.hasDate && b.hasDate && !a.date.Equal(b.date):
				c := a.date.Compare(b.date)
				if desc {
					c = -c
				}
				return c
			}
			return cmp.Compare(a.Text, b.Text)
		}
		c := cmp.Compare(a.Text, b.Text)
		if desc {
			c = -c
		}
		return c
	})
}

// Write stores the tree as indented JSON keyed by the resolve path, the shape
// the site theme expects for a multi-sidebar.
func Write(file string, resolvePath string, items []Item) error {
	data, err := json.MarshalIndent(map[string][]Item{docs.NormalizeResolvePath(resolvePath): items}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sidebar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create sidebar directory: %w", err)
	}
	if err := os.WriteFile(file, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write sidebar: %w", err)
	}
	return nil
}
