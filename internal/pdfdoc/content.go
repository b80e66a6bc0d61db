package pdfdoc

import (
	"bytes"
	"strconv"

	"golang.org/x/text/encoding/charmap"
)

// winAnsi is the single-byte encoding declared on every font dictionary.
var winAnsi = charmap.Windows1252

// EncodeContent builds the content stream for one page of lines. The cursor
// starts at (MarginLeft, MarginTop) and moves down LineHeight after every
// line with a relative Td, so line order is position order. An
// *EncodingError carries the line index; its Page is left at 0.
func EncodeContent(lines []string, fontKey string, layout Layout) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("BT\n")
	buf.WriteString("/" + fontKey + " " + num(layout.FontSize) + " Tf\n")
	buf.WriteString(num(layout.MarginLeft) + " " + num(layout.MarginTop) + " Td\n")

	advance := "0 " + num(-layout.LineHeight) + " Td\n"
	for i, line := range lines {
		buf.WriteByte('(')
		if r, ok := appendLiteral(&buf, line); !ok {
			return nil, &EncodingError{Line: i, Rune: r}
		}
		buf.WriteString(") Tj\n")
		buf.WriteString(advance)
	}

	buf.WriteString("ET\n")
	return buf.Bytes(), nil
}

// appendLiteral writes s as the body of a PDF literal string in
// WinAnsiEncoding. On failure it returns the first rune with no byte.
func appendLiteral(buf *bytes.Buffer, s string) (rune, bool) {
	for _, r := range s {
		b, ok := winAnsi.EncodeRune(r)
		if !ok {
			return r, false
		}
		switch b {
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(b)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			buf.WriteByte(b)
		}
	}
	return 0, true
}

// num formats v as a PDF number. PDF has no exponent syntax.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
