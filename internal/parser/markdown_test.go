package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/pdfgen/internal/doctree"
)

func kinds(blocks []doctree.Block) []doctree.Kind {
	out := make([]doctree.Kind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func TestMarkdownParser_Headings(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content
spans two lines.

### Subsection A1

Subsection A1 content.
`
	p := &MarkdownParser{}
	text, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text.Title != "Title" {
		t.Errorf("expected title from first h1 %q, got %q", "Title", text.Title)
	}

	want := []doctree.Block{
		{Kind: doctree.Heading, Level: 1, Text: "Title"},
		{Kind: doctree.Paragraph, Text: "Intro text."},
		{Kind: doctree.Heading, Level: 2, Text: "Section A"},
		{Kind: doctree.Paragraph, Text: "Section A content spans two lines."},
		{Kind: doctree.Heading, Level: 3, Text: "Subsection A1"},
		{Kind: doctree.Paragraph, Text: "Subsection A1 content."},
	}
	if len(text.Blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %v", len(want), len(text.Blocks), kinds(text.Blocks))
	}
	for i, w := range want {
		if text.Blocks[i] != w {
			t.Errorf("block[%d]: expected %+v, got %+v", i, w, text.Blocks[i])
		}
	}
}

func TestMarkdownParser_CodeListsAndBreaks(t *testing.T) {
	input := "Endpoints:\n\n```\nGET /api/users\nPOST /api/users\n```\n\n- first *item*\n- second\n\n---\n\nAfter."

	p := &MarkdownParser{}
	text, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []doctree.Block{
		{Kind: doctree.Paragraph, Text: "Endpoints:"},
		{Kind: doctree.Code, Text: "GET /api/users\nPOST /api/users"},
		{Kind: doctree.Item, Text: "first item"},
		{Kind: doctree.Item, Text: "second"},
		{Kind: doctree.Break},
		{Kind: doctree.Paragraph, Text: "After."},
	}
	if len(text.Blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %v", len(want), len(text.Blocks), kinds(text.Blocks))
	}
	for i, w := range want {
		if text.Blocks[i] != w {
			t.Errorf("block[%d]: expected %+v, got %+v", i, w, text.Blocks[i])
		}
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	text, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(text.Blocks) != 0 {
		t.Errorf("expected 0 blocks for empty input, got %d", len(text.Blocks))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"docs/plain.MD", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		text, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if text.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, text.Title)
		}
	}
}
