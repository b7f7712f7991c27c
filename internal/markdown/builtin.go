package markdown

import (
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// Names of the plugins backed by goldmark extensions.
const (
	PluginGFM       = "gfm"
	PluginFootnote  = "footnote"
	PluginHighlight = "highlight"
)

func init() {
	RegisterPlugin(PluginGFM, extension.GFM)
	RegisterPlugin(PluginFootnote, extension.Footnote)
	// Class-based output; colors come from the site stylesheet.
	RegisterPlugin(PluginHighlight, highlighting.NewHighlighting(
		highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
	))
}
