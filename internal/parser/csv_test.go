package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/pdfgen/internal/doctree"
)

func TestCSVParser_Rows(t *testing.T) {
	input := "name, qty\nbolt,4\n\"nut, hex\",10,extra\n"
	p := &CSVParser{}
	text, err := p.Parse(strings.NewReader(input), "parts.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text.Title != "parts" {
		t.Errorf("expected title %q, got %q", "parts", text.Title)
	}

	want := []doctree.Block{
		{Kind: doctree.Row, Text: "name | qty"},
		{Kind: doctree.Break},
		{Kind: doctree.Row, Text: "bolt | 4"},
		{Kind: doctree.Row, Text: "nut, hex | 10 | extra"},
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

func TestCSVParser_HeaderOnly(t *testing.T) {
	p := &CSVParser{}
	text, err := p.Parse(strings.NewReader("a,b\n"), "h.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(text.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(text.Blocks))
	}
}

func TestCSVParser_Empty(t *testing.T) {
	p := &CSVParser{}
	text, err := p.Parse(strings.NewReader(""), "e.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(text.Blocks) != 0 {
		t.Errorf("expected 0 blocks, got %d", len(text.Blocks))
	}
}
