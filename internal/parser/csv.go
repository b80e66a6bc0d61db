package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/pdfgen/internal/doctree"
)

// CSVParser handles CSV files. The header record becomes the first row,
// followed by a break and one row per record.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Text, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	out := &doctree.Text{Title: baseTitle(filename, ".csv")}
	if len(records) == 0 {
		return out, nil
	}

	out.Add(doctree.Block{Kind: doctree.Row, Text: strings.Join(records[0], " | ")})
	if len(records) > 1 {
		out.Add(doctree.Block{Kind: doctree.Break})
	}
	for _, rec := range records[1:] {
		out.Add(doctree.Block{Kind: doctree.Row, Text: strings.Join(rec, " | ")})
	}

	return out, nil
}
