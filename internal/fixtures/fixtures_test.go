package fixtures

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/dgallion1/pdfgen/internal/inspect"
)

func nonEmpty(lines []string) []string {
	var out []string
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func TestFixtures_TwoPagesEach(t *testing.T) {
	for _, f := range All() {
		doc := f.Document()
		if len(doc.Pages) != 2 {
			t.Fatalf("%s: expected 2 pages, got %d", f.Name, len(doc.Pages))
		}
		if n := len(doc.Pages[0].Lines); n != FirstPageLines {
			t.Errorf("%s: expected %d lines on page 1, got %d", f.Name, FirstPageLines, n)
		}
		if n := len(doc.Pages[1].Lines); n != len(f.Lines)-FirstPageLines {
			t.Errorf("%s: expected %d lines on page 2, got %d", f.Name, len(f.Lines)-FirstPageLines, n)
		}
	}
}

func TestWrite_ProducesReadableFiles(t *testing.T) {
	dir := t.TempDir()
	paths, err := Write(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %d", len(paths))
	}

	for i, f := range All() {
		if filepath.Base(paths[i]) != f.File {
			t.Errorf("expected %s, got %s", f.File, filepath.Base(paths[i]))
		}
		data, err := os.ReadFile(paths[i])
		if err != nil {
			t.Fatalf("read %s: %v", paths[i], err)
		}

		r := inspect.Check(data)
		if !r.OK() {
			t.Fatalf("%s: expected well-formed file, got %v", f.File, r.Problems)
		}
		if r.Pages != 2 || r.Objects != 6 {
			t.Errorf("%s: expected 2 pages and 6 objects, got %d and %d", f.File, r.Pages, r.Objects)
		}

		pages, err := inspect.ExtractLines(data)
		if err != nil {
			t.Fatalf("%s: extract: %v", f.File, err)
		}
		want := [][]string{nonEmpty(f.Lines[:FirstPageLines]), nonEmpty(f.Lines[FirstPageLines:])}
		for p := range want {
			if !slices.Equal(pages[p], want[p]) {
				t.Errorf("%s page %d: expected %q, got %q", f.File, p+1, want[p], pages[p])
			}
		}
	}
}

func TestFixtures_Differ(t *testing.T) {
	a, err := Original.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	b, err := Modified.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if string(a) == string(b) {
		t.Error("expected original and modified fixtures to differ")
	}
}
