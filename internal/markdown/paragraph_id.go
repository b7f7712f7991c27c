package markdown

import (
	"strconv"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// PluginParagraphID is the registry name of the paragraph-id plugin.
const PluginParagraphID = "paragraph-id"

// ParagraphIDPrefix prefixes generated paragraph anchors.
const ParagraphIDPrefix = "p-"

// ParagraphID annotates every top-level paragraph with id="p-<n>", numbered
// from 1 in document order, so individual paragraphs can be linked.
// Paragraphs that already carry an id (set by an earlier transformer) keep
// it but still consume a number.
var ParagraphID goldmark.Extender = paragraphID{}

type paragraphID struct{}

func (paragraphID) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(util.Prioritized(paragraphIDTransformer{}, 500)),
	)
}

type paragraphIDTransformer struct{}

func (paragraphIDTransformer) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	n := 0
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() != gmast.KindParagraph {
			continue
		}
		n++
		if _, ok := c.AttributeString("id"); ok {
			continue
		}
		c.SetAttributeString("id", []byte(ParagraphIDPrefix+strconv.Itoa(n)))
	}
}

func init() { RegisterPlugin(PluginParagraphID, ParagraphID) }
