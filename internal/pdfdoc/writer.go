package pdfdoc

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const header = "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"

// Assemble serializes doc into a complete PDF. It validates the document
// and encodes every page before writing anything, so it returns either the
// whole file or an error and never a partial buffer.
func Assemble(doc *Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	streams := make([][]byte, len(doc.Pages))
	for i, p := range doc.Pages {
		body, err := EncodeContent(p.Lines, p.Font, doc.Layout)
		if err != nil {
			var encErr *EncodingError
			if errors.As(err, &encErr) {
				encErr.Page = i
			}
			return nil, err
		}
		streams[i] = body
	}

	var info string
	if doc.Info != nil {
		var err error
		if info, err = infoDict(doc.Info); err != nil {
			return nil, err
		}
	}

	nums := numbering{pages: len(doc.Pages), hasInfo: doc.Info != nil}
	w := newObjectWriter(nums.count())
	w.buf.WriteString(header)

	w.begin(nums.catalog())
	fmt.Fprintf(&w.buf, "<< /Type /Catalog /Pages %s >>\n", ref(nums.pagesRoot()))
	w.end()

	w.begin(nums.pagesRoot())
	w.buf.WriteString("<< /Type /Pages /Kids [")
	for i := range doc.Pages {
		if i > 0 {
			w.buf.WriteByte(' ')
		}
		w.buf.WriteString(ref(nums.page(i)))
	}
	fmt.Fprintf(&w.buf, "] /Count %d >>\n", len(doc.Pages))
	w.end()

	l := doc.Layout
	for i, p := range doc.Pages {
		f, _ := doc.font(p.Font)
		w.begin(nums.page(i))
		fmt.Fprintf(&w.buf, "<< /Type /Page /Parent %s /Resources << /Font << /%s << /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding >> >> >> ",
			ref(nums.pagesRoot()), f.Key, f.BaseFont)
		fmt.Fprintf(&w.buf, "/MediaBox [0 0 %s %s] /Contents %s >>\n", num(l.PageWidth), num(l.PageHeight), ref(nums.content(i)))
		w.end()
	}

	for i, body := range streams {
		w.stream(nums.content(i), body)
	}

	if doc.Info != nil {
		w.begin(nums.info())
		w.buf.WriteString(info)
		w.buf.WriteByte('\n')
		w.end()
	}

	startxref := w.xref()

	w.buf.WriteString("trailer\n")
	fmt.Fprintf(&w.buf, "<< /Size %d /Root %s", nums.count()+1, ref(nums.catalog()))
	if doc.Info != nil {
		fmt.Fprintf(&w.buf, " /Info %s", ref(nums.info()))
	}
	w.buf.WriteString(" >>\n")
	fmt.Fprintf(&w.buf, "startxref\n%d\n%%%%EOF\n", startxref)

	return w.buf.Bytes(), nil
}

// numbering assigns object numbers up front so that forward references
// (the page tree's /Kids, each page's /Contents) can be written before the
// referenced object exists. i is a zero-based page index.
type numbering struct {
	pages   int
	hasInfo bool
}

func (n numbering) catalog() int      { return 1 }
func (n numbering) pagesRoot() int    { return 2 }
func (n numbering) page(i int) int    { return 3 + i }
func (n numbering) content(i int) int { return 3 + n.pages + i }
func (n numbering) info() int         { return 3 + 2*n.pages }

// count is the number of real objects; the xref has one more entry for
// the free head.
func (n numbering) count() int {
	c := 2 + 2*n.pages
	if n.hasInfo {
		c++
	}
	return c
}

func ref(n int) string {
	return fmt.Sprintf("%d 0 R", n)
}

// objectWriter appends objects to buf and records each object's offset at
// the moment its "n 0 obj" line starts. offsets[0] is the free entry.
type objectWriter struct {
	buf     bytes.Buffer
	offsets []int
	next    int
}

func newObjectWriter(count int) *objectWriter {
	return &objectWriter{
		offsets: make([]int, count+1),
		next:    1,
	}
}

func (w *objectWriter) begin(n int) {
	if n != w.next {
		panic(fmt.Sprintf("pdfdoc: object %d written out of order, want %d", n, w.next))
	}
	w.offsets[n] = w.buf.Len()
	w.next++
	fmt.Fprintf(&w.buf, "%d 0 obj\n", n)
}

func (w *objectWriter) end() {
	w.buf.WriteString("endobj\n")
}

// stream writes a stream object whose /Length is the byte count between
// "stream\n" and "endstream".
func (w *objectWriter) stream(n int, body []byte) {
	w.begin(n)
	fmt.Fprintf(&w.buf, "<< /Length %d >>\nstream\n", len(body))
	w.buf.Write(body)
	w.buf.WriteString("endstream\n")
	w.end()
}

// xref writes the cross-reference table and returns its offset. Each entry
// is exactly 20 bytes including the two-byte " \n" terminator.
func (w *objectWriter) xref() int {
	if w.next != len(w.offsets) {
		panic(fmt.Sprintf("pdfdoc: xref written after %d of %d objects", w.next-1, len(w.offsets)-1))
	}
	start := w.buf.Len()
	fmt.Fprintf(&w.buf, "xref\n0 %d\n", len(w.offsets))
	fmt.Fprintf(&w.buf, "%010d %05d f \n", 0, 65535)
	for _, off := range w.offsets[1:] {
		fmt.Fprintf(&w.buf, "%010d %05d n \n", off, 0)
	}
	return start
}

func infoDict(info *Info) (string, error) {
	var sb strings.Builder
	sb.WriteString("<<")
	for _, kv := range []struct{ key, val string }{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Producer", info.Producer},
	} {
		if kv.val == "" {
			continue
		}
		v, err := textString(kv.val)
		if err != nil {
			return "", fmt.Errorf("info %s: %w", kv.key, err)
		}
		sb.WriteString(" /" + kv.key + " " + v)
	}
	sb.WriteString(" >>")
	return sb.String(), nil
}

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)

// textString encodes s as a PDF text string: a literal for printable ASCII,
// otherwise UTF-16BE with a byte order mark, written as hex. Invalid UTF-8
// is replaced with U+FFFD.
func textString(s string) (string, error) {
	if isPrintableASCII(s) {
		var buf bytes.Buffer
		buf.WriteByte('(')
		appendLiteral(&buf, s)
		buf.WriteByte(')')
		return buf.String(), nil
	}
	b, err := utf16BE.NewEncoder().Bytes([]byte(strings.ToValidUTF8(s, "\uFFFD")))
	if err != nil {
		return "", err
	}
	return "<" + strings.ToUpper(hex.EncodeToString(b)) + ">", nil
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < ' ' || s[i] > '~' {
			return false
		}
	}
	return true
}
