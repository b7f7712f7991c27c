// Package markdown holds the goldmark pipeline used for site documents: the
// plugin registry, the paragraph-id plugin, and text extraction helpers used
// by the sidebar and search index.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// FirstHeading returns the text of the first level-1 heading, or "".
func FirstHeading(body []byte) string {
	root := ParseBody(body)
	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if h.Level != 1 {
			return gmast.WalkSkipChildren, nil
		}
		title = strings.TrimSpace(inlineText(h, body))
		return gmast.WalkStop, nil
	})
	return title
}

// PlainText flattens a Markdown body into whitespace-separated text, one
// line per block. Code blocks are kept; markup is dropped.
func PlainText(body []byte) string {
	root := ParseBody(body)
	var buf bytes.Buffer
	newline := func() {
		if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		switch node := n.(type) {
		case *gmast.FencedCodeBlock, *gmast.CodeBlock:
			if entering {
				newline()
				lines := node.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					buf.Write(seg.Value(body))
				}
				newline()
			}
			return gmast.WalkSkipChildren, nil
		case *gmast.Text:
			if entering {
				buf.Write(node.Segment.Value(body))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteByte(' ')
				}
			}
		case *gmast.String:
			if entering {
				buf.Write(node.Value)
			}
		default:
			if !entering && n.Type() == gmast.TypeBlock {
				newline()
			}
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}
