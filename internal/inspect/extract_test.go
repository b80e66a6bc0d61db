package inspect

import (
	"slices"
	"testing"

	"github.com/dgallion1/pdfgen/internal/pdfdoc"
)

func TestExtractLines_RoundTrip(t *testing.T) {
	data := assemble(t, []string{"Hello", "World", "Goodbye"}, 2)

	pages, err := ExtractLines(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"Hello", "World"}, {"Goodbye"}}
	if len(pages) != len(want) {
		t.Fatalf("expected %d pages, got %d", len(want), len(pages))
	}
	for i := range want {
		if !slices.Equal(pages[i], want[i]) {
			t.Errorf("page %d: expected %q, got %q", i, want[i], pages[i])
		}
	}
}

func TestExtractLines_EscapesAndWinAnsi(t *testing.T) {
	lines := []string{`f(x) = a\b`, "Café au lait"}
	data := assemble(t, lines, 20)

	pages, err := ExtractLines(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 || !slices.Equal(pages[0], lines) {
		t.Errorf("expected %q, got %q", lines, pages)
	}
}

func TestExtractLines_EmptyPage(t *testing.T) {
	data := assemble(t, nil, 20)
	pages, err := ExtractLines(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 || len(pages[0]) != 0 {
		t.Errorf("expected one empty page, got %q", pages)
	}
}

func TestExtractLines_Garbage(t *testing.T) {
	if _, err := ExtractLines([]byte("not a pdf")); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestTitle(t *testing.T) {
	doc := pdfdoc.Paginate([]string{"x"}, 20, pdfdoc.DefaultFont(), pdfdoc.DefaultLayout())
	doc.Info = &pdfdoc.Info{Title: "Café (draft)"}
	data, err := pdfdoc.Assemble(doc)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	got, err := Title(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Café (draft)" {
		t.Errorf("expected %q, got %q", "Café (draft)", got)
	}
}
