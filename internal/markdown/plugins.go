package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/yuin/goldmark"
)

// ErrUnknownPlugin is returned when a pipeline names an unregistered plugin.
var ErrUnknownPlugin = errors.New("unknown markdown plugin")

var (
	regMu sync.RWMutex
	reg   = map[string]goldmark.Extender{}
)

// RegisterPlugin registers a goldmark extension under name (first registration wins).
func RegisterPlugin(name string, ext goldmark.Extender) {
	if name == "" || ext == nil {
		return
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := reg[name]; !ok {
		reg[name] = ext
	}
}

// LookupPlugin returns the extension registered under name.
func LookupPlugin(name string) (goldmark.Extender, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	ext, ok := reg[name]
	return ext, ok
}

// PluginNames lists registered plugins, sorted.
func PluginNames() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(reg))
	for n := range reg {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Pipeline renders documents through goldmark with a fixed plugin list.
type Pipeline struct {
	md      goldmark.Markdown
	plugins []string
}

// NewPipeline builds a pipeline with the named plugins, in order.
func NewPipeline(plugins []string) (*Pipeline, error) {
	exts := make([]goldmark.Extender, 0, len(plugins))
	for _, name := range plugins {
		ext, ok := LookupPlugin(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownPlugin, name, PluginNames())
		}
		exts = append(exts, ext)
	}
	return &Pipeline{
		md:      goldmark.New(goldmark.WithExtensions(exts...)),
		plugins: slices.Clone(plugins),
	}, nil
}

// Plugins returns the plugin names in registration order.
func (p *Pipeline) Plugins() []string { return slices.Clone(p.plugins) }

// Render converts a Markdown body to HTML.
func (p *Pipeline) Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
