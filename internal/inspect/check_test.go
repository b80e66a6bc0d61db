package inspect

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/dgallion1/pdfgen/internal/pdfdoc"
)

func assemble(t *testing.T, lines []string, perPage int) []byte {
	t.Helper()
	doc := pdfdoc.Paginate(lines, perPage, pdfdoc.DefaultFont(), pdfdoc.DefaultLayout())
	data, err := pdfdoc.Assemble(doc)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return data
}

func TestCheck_WellFormed(t *testing.T) {
	for _, pages := range []int{1, 2, 5} {
		lines := make([]string, pages*3)
		for i := range lines {
			lines[i] = "line " + strconv.Itoa(i)
		}
		r := Check(assemble(t, lines, 3))
		if !r.OK() {
			t.Fatalf("pages=%d: expected no problems, got %v", pages, r.Problems)
		}
		if r.Pages != pages {
			t.Errorf("pages=%d: expected page count %d, got %d", pages, pages, r.Pages)
		}
		if want := 2*pages + 2; r.Objects != want {
			t.Errorf("pages=%d: expected %d objects, got %d", pages, want, r.Objects)
		}
		if r.Err() != nil {
			t.Errorf("expected nil Err, got %v", r.Err())
		}
	}
}

func TestCheck_ShiftedOffsets(t *testing.T) {
	data := assemble(t, []string{"Hello", "World"}, 20)
	// An extra byte after the header moves every object but not the xref.
	i := bytes.Index(data, []byte("1 0 obj"))
	shifted := append(append(append([]byte{}, data[:i]...), '\n'), data[i:]...)

	r := Check(shifted)
	if r.OK() {
		t.Fatal("expected problems for shifted objects")
	}
	if r.Err() == nil {
		t.Error("expected non-nil Err")
	}
}

func TestCheck_WrongStreamLength(t *testing.T) {
	data := assemble(t, []string{"Hello"}, 20)
	re := regexp.MustCompile(`/Length (\d+)`)
	m := re.FindSubmatch(data)
	n, _ := strconv.Atoi(string(m[1]))
	bad := re.ReplaceAll(data, []byte("/Length "+strconv.Itoa(n-1)))

	r := Check(bad)
	found := false
	for _, p := range r.Problems {
		if strings.Contains(p, "/Length") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a /Length problem, got %v", r.Problems)
	}
}

func TestCheck_NotAPDF(t *testing.T) {
	r := Check([]byte("hello"))
	if r.OK() {
		t.Fatal("expected problems for non-PDF input")
	}
	if len(r.Problems) != 2 {
		t.Errorf("expected header and trailer problems, got %v", r.Problems)
	}
}

func TestCheck_TruncatedXref(t *testing.T) {
	data := assemble(t, []string{"a", "b", "c"}, 1)
	m := startxrefRe.FindSubmatch(data)
	off, _ := strconv.Atoi(string(m[1]))
	// Drop one xref entry but keep the trailer.
	bad := append(append([]byte{}, data[:off+len("xref\n0 9\n")+entryLen]...), data[off+len("xref\n0 9\n")+2*entryLen:]...)

	r := Check(bad)
	if r.OK() {
		t.Fatal("expected problems for truncated xref")
	}
}
