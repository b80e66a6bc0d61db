package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/pdfgen/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Text, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	out := &doctree.Text{Title: baseTitle(filename, ".md", ".markdown")}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		addMarkdownBlock(out, n, src)
	}

	// Use the first top-level heading as the title when there is one.
	for _, b := range out.Blocks {
		if b.Kind == doctree.Heading && b.Level == 1 {
			out.Title = b.Text
			break
		}
	}

	return out, nil
}

func addMarkdownBlock(out *doctree.Text, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		out.Add(doctree.Block{Kind: doctree.Heading, Level: node.Level, Text: inlineText(node, src)})
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		out.Add(doctree.Block{Kind: doctree.Code, Text: rawLines(n, src)})
	case *ast.List:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			var parts []string
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if _, nested := c.(*ast.List); nested {
					continue
				}
				if t := inlineText(c, src); t != "" {
					parts = append(parts, t)
				}
			}
			out.Add(doctree.Block{Kind: doctree.Item, Text: strings.Join(parts, " ")})
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if _, nested := c.(*ast.List); nested {
					addMarkdownBlock(out, c, src)
				}
			}
		}
	case *ast.ThematicBreak:
		out.Add(doctree.Block{Kind: doctree.Break})
	case *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			addMarkdownBlock(out, c, src)
		}
	case *ast.HTMLBlock:
		// Raw HTML has no text layout of its own.
	default:
		out.Add(doctree.Block{Kind: doctree.Paragraph, Text: inlineText(n, src)})
	}
}

// inlineText collects the text of a block's inline children. Soft line
// breaks become spaces and hard breaks become newlines.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.HardLineBreak() {
					buf.WriteByte('\n')
				} else if t.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(t.Value)
			case *ast.AutoLink:
				buf.Write(t.Label(src))
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// rawLines returns the verbatim source lines of a code block.
func rawLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}
