package inspect

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractLines opens data with a standalone PDF reader and rebuilds each
// page's lines from glyph positions: glyphs sharing a baseline form one
// line, ordered top to bottom. Empty lines draw no glyphs and are not
// recovered.
func ExtractLines(data []byte) ([][]string, error) {
	r, err := open(data)
	if err != nil {
		return nil, err
	}

	n := r.NumPage()
	pages := make([][]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			return nil, fmt.Errorf("page %d: not found in page tree", i)
		}
		content, err := pageContent(p)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, linesOf(content.Text))
	}
	return pages, nil
}

// Title returns the document's /Info title, or "" when there is none.
func Title(data []byte) (string, error) {
	r, err := open(data)
	if err != nil {
		return "", err
	}
	return r.Trailer().Key("Info").Key("Title").Text(), nil
}

func open(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("open pdf: %v", rec)
		}
	}()
	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return r, nil
}

// pageContent recovers from the reader's panics on malformed content.
func pageContent(p pdf.Page) (c pdf.Content, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read content: %v", rec)
		}
	}()
	return p.Content(), nil
}

type baseline struct {
	y    float64
	text strings.Builder
}

func linesOf(glyphs []pdf.Text) []string {
	var rows []*baseline
	for _, g := range glyphs {
		if len(rows) == 0 || math.Abs(rows[len(rows)-1].y-g.Y) > 0.5 {
			rows = append(rows, &baseline{y: g.Y})
		}
		rows[len(rows)-1].text.WriteString(g.S)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = row.text.String()
	}
	return lines
}
