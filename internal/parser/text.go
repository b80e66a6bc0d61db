package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/pdfgen/internal/doctree"
)

// TextParser handles plain text. Blank lines separate paragraphs; line
// breaks inside a paragraph are kept.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Text, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	text := &doctree.Text{Title: baseTitle(filename, ".txt")}
	var para []string
	flush := func() {
		if len(para) > 0 {
			text.Add(doctree.Block{Kind: doctree.Paragraph, Text: strings.Join(para, "\n")})
			para = para[:0]
		}
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		para = append(para, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return text, nil
}
