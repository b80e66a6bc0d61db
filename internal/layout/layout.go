// Package layout flows parsed blocks into fixed-width text lines and pages.
package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/pdfgen/internal/doctree"
	"github.com/dgallion1/pdfgen/internal/pdfdoc"
)

// Producer is written to the /Info dictionary of built documents.
const Producer = "pdfgen"

// Options controls line flow and pagination.
type Options struct {
	WrapColumns  int // Maximum runes per wrapped line; 0 disables wrapping.
	LinesPerPage int
	Font         pdfdoc.Font
	Layout       pdfdoc.Layout
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		WrapColumns:  90,
		LinesPerPage: pdfdoc.DefaultLinesPerPage,
		Font:         pdfdoc.DefaultFont(),
		Layout:       pdfdoc.DefaultLayout(),
	}
}

// Flow converts blocks into output lines. Headings and paragraphs are
// followed by a blank line, runs of blank lines collapse to one and trailing
// blank lines are dropped.
func Flow(text *doctree.Text, opts Options) []string {
	var f flow
	for _, b := range text.Blocks {
		switch b.Kind {
		case doctree.Heading:
			f.line(strings.Join(strings.Fields(b.Text), " "))
			f.blank()
		case doctree.Paragraph:
			for _, l := range strings.Split(b.Text, "\n") {
				for _, w := range wrap(l, opts.WrapColumns) {
					f.line(w)
				}
			}
			f.blank()
		case doctree.Code:
			for _, l := range strings.Split(b.Text, "\n") {
				f.line(strings.TrimRight(l, " \t\r"))
			}
			f.blank()
		case doctree.Item:
			width := opts.WrapColumns
			if width > 2 {
				width -= 2
			}
			for i, w := range wrap(strings.Join(strings.Fields(b.Text), " "), width) {
				if i == 0 {
					f.line("- " + w)
				} else {
					f.line("  " + w)
				}
			}
		case doctree.Row:
			f.line(b.Text)
		case doctree.Break:
			f.blank()
		}
	}
	return f.done()
}

// Build flows text and paginates it into a document carrying the text's
// title as metadata.
func Build(text *doctree.Text, opts Options) *pdfdoc.Document {
	doc := pdfdoc.Paginate(Flow(text, opts), opts.LinesPerPage, opts.Font, opts.Layout)
	doc.Info = &pdfdoc.Info{Title: text.Title, Producer: Producer}
	return doc
}

type flow struct {
	lines []string
}

func (f *flow) line(s string) {
	if s == "" {
		f.blank()
		return
	}
	f.lines = append(f.lines, s)
}

func (f *flow) blank() {
	if len(f.lines) == 0 || f.lines[len(f.lines)-1] == "" {
		return
	}
	f.lines = append(f.lines, "")
}

func (f *flow) done() []string {
	for len(f.lines) > 0 && f.lines[len(f.lines)-1] == "" {
		f.lines = f.lines[:len(f.lines)-1]
	}
	return f.lines
}

// wrap greedily packs the words of s into lines of at most width runes.
// Words longer than width are split across lines.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var out []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if curLen > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, w := range words {
		for utf8.RuneCountInString(w) > width {
			flush()
			head, tail := splitRunes(w, width)
			out = append(out, head)
			w = tail
		}
		n := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+n > width {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += n
	}
	flush()
	return out
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
