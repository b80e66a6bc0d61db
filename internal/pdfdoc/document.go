// Package pdfdoc writes minimal multi-page text PDFs: one content stream per
// page, a flat page tree, and a cross-reference table built from the offsets
// actually recorded while the objects were written.
package pdfdoc

import (
	"fmt"
	"math"
	"strings"
)

// DefaultLinesPerPage matches the original two-page generator, which put the
// first 20 lines on page one.
const DefaultLinesPerPage = 20

// Layout holds the page geometry and text metrics for a document, in points.
type Layout struct {
	PageWidth  float64 // Media box width
	PageHeight float64 // Media box height
	MarginLeft float64 // X of every line start
	MarginTop  float64 // Baseline Y of the first line
	FontSize   float64
	LineHeight float64 // Downward advance after each line
}

// DefaultLayout returns US Letter with 12pt text on a 15pt line grid.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:  612,
		PageHeight: 792,
		MarginLeft: 50,
		MarginTop:  750,
		FontSize:   12,
		LineHeight: 15,
	}
}

func (l Layout) validate() error {
	for _, v := range []float64{l.PageWidth, l.PageHeight, l.FontSize, l.LineHeight, l.MarginLeft, l.MarginTop} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidf("layout value %g is not a finite number", v)
		}
	}
	switch {
	case l.PageWidth <= 0 || l.PageHeight <= 0:
		return invalidf("page size %gx%g must be positive", l.PageWidth, l.PageHeight)
	case l.FontSize <= 0:
		return invalidf("font size %g must be positive", l.FontSize)
	case l.LineHeight <= 0:
		return invalidf("line height %g must be positive", l.LineHeight)
	case l.MarginLeft < 0 || l.MarginTop < 0:
		return invalidf("margins must not be negative")
	}
	return nil
}

// Font is a standard Type1 font declared in a page's resource dictionary.
type Font struct {
	Key      string // Resource name used by Tf, e.g. "F1"
	BaseFont string // e.g. "Helvetica"
}

// DefaultFont returns Helvetica under the resource key F1.
func DefaultFont() Font {
	return Font{Key: "F1", BaseFont: "Helvetica"}
}

// Page is one page of text lines drawn top-down in a single font.
type Page struct {
	Lines []string
	Font  string // Key of a Font declared on the Document
}

// Info carries optional document metadata written as the trailer's /Info.
type Info struct {
	Title    string
	Author   string
	Producer string
}

// Document is the input to Assemble.
type Document struct {
	Pages  []Page
	Fonts  []Font
	Layout Layout
	Info   *Info
}

// New returns an empty document using font for every page added with
// AddPage.
func New(font Font, layout Layout) *Document {
	return &Document{
		Fonts:  []Font{font},
		Layout: layout,
	}
}

// AddPage appends a page drawn in the document's first font.
func (d *Document) AddPage(lines []string) {
	key := ""
	if len(d.Fonts) > 0 {
		key = d.Fonts[0].Key
	}
	d.Pages = append(d.Pages, Page{Lines: lines, Font: key})
}

// Paginate splits lines into pages of at most perPage lines. Zero lines
// still produce a single empty page. perPage <= 0 uses DefaultLinesPerPage.
func Paginate(lines []string, perPage int, font Font, layout Layout) *Document {
	if perPage <= 0 {
		perPage = DefaultLinesPerPage
	}
	doc := New(font, layout)
	for start := 0; start < len(lines); start += perPage {
		end := min(start+perPage, len(lines))
		page := make([]string, end-start)
		copy(page, lines[start:end])
		doc.AddPage(page)
	}
	if len(doc.Pages) == 0 {
		doc.AddPage(nil)
	}
	return doc
}

// font looks up a declared font by resource key.
func (d *Document) font(key string) (Font, bool) {
	for _, f := range d.Fonts {
		if f.Key == key {
			return f, true
		}
	}
	return Font{}, false
}

// Validate reports the first structural problem that would make the
// document unwritable.
func (d *Document) Validate() error {
	if d == nil || len(d.Pages) == 0 {
		return invalidf("document has no pages")
	}
	if err := d.Layout.validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(d.Fonts))
	for _, f := range d.Fonts {
		if !isName(f.Key) {
			return invalidf("font key %q is not a valid PDF name", f.Key)
		}
		if !isName(f.BaseFont) {
			return invalidf("base font %q is not a valid PDF name", f.BaseFont)
		}
		if seen[f.Key] {
			return invalidf("font key %q declared twice", f.Key)
		}
		seen[f.Key] = true
	}
	for i, p := range d.Pages {
		if _, ok := d.font(p.Font); !ok {
			return invalidf("page %d references undeclared font %q", i, p.Font)
		}
	}
	return nil
}

// isName reports whether s can be written as a PDF name without # escapes.
func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c > '~' || strings.IndexByte("()<>[]{}/%#", c) >= 0 {
			return false
		}
	}
	return true
}

func invalidf(format string, args ...any) error {
	return &InvalidDocumentError{Reason: fmt.Sprintf(format, args...)}
}
