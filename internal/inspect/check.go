// Package inspect verifies the structure of generated PDFs and reads their
// text back.
package inspect

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Report summarizes a structural check.
type Report struct {
	Objects    int      // In-use objects listed in the xref
	Pages      int      // /Count of the page tree root
	XrefOffset int      // Value of startxref
	Problems   []string // Empty when the file is well formed
}

// OK reports whether no problems were found.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

// Err returns the problems joined into one error, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Problems))
	for i, p := range r.Problems {
		errs[i] = errors.New(p)
	}
	return fmt.Errorf("malformed pdf: %w", errors.Join(errs...))
}

func (r *Report) problemf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

var (
	startxrefRe = regexp.MustCompile(`startxref\r?\n(\d+)\r?\n%%EOF\s*$`)
	subsecRe    = regexp.MustCompile(`^xref\n0 (\d+)\n`)
	entryRe     = regexp.MustCompile(`^(\d{10}) (\d{5}) ([nf]) \n$`)
	lengthRe    = regexp.MustCompile(`/Length (\d+) >>\nstream\n`)
	sizeRe      = regexp.MustCompile(`trailer\n<<[^>]*/Size (\d+)`)
	countRe     = regexp.MustCompile(`/Type /Pages /Kids \[[^\]]*\] /Count (\d+)`)
)

const entryLen = 20

// Check validates data against the layout the writer produces: header and
// trailer markers, an xref whose entries are exactly 20 bytes and point at
// the matching "n 0 obj" lines, stream lengths that match their bodies, and
// a trailer /Size equal to the xref entry count.
func Check(data []byte) *Report {
	r := &Report{}

	if !bytes.HasPrefix(data, []byte("%PDF-1.")) {
		r.problemf("missing %%PDF-1.x header")
	}

	m := startxrefRe.FindSubmatch(data)
	if m == nil {
		r.problemf("missing startxref or %%%%EOF trailer")
		return r
	}
	r.XrefOffset, _ = strconv.Atoi(string(m[1]))
	if r.XrefOffset <= 0 || r.XrefOffset >= len(data) {
		r.problemf("startxref %d outside file of %d bytes", r.XrefOffset, len(data))
		return r
	}

	xref := data[r.XrefOffset:]
	sm := subsecRe.FindSubmatch(xref)
	if sm == nil {
		r.problemf("startxref %d does not point at an xref table with subsection 0", r.XrefOffset)
		return r
	}
	n, _ := strconv.Atoi(string(sm[1]))
	entries := xref[len(sm[0]):]
	if len(entries) < n*entryLen {
		r.problemf("xref declares %d entries but only %d bytes follow", n, len(entries))
		return r
	}

	for i := 0; i < n; i++ {
		e := entries[i*entryLen : (i+1)*entryLen]
		em := entryRe.FindSubmatch(e)
		if em == nil {
			r.problemf("xref entry %d is malformed: %q", i, e)
			continue
		}
		off, _ := strconv.Atoi(string(em[1]))
		if i == 0 {
			if string(em[3]) != "f" || string(em[2]) != "65535" || off != 0 {
				r.problemf("xref entry 0 is not the free list head: %q", e)
			}
			continue
		}
		if string(em[3]) != "n" {
			r.problemf("xref entry %d is not in use", i)
			continue
		}
		r.Objects++
		want := fmt.Sprintf("%d 0 obj", i)
		if off >= len(data) || !bytes.HasPrefix(data[off:], []byte(want)) {
			r.problemf("xref entry %d offset %d does not start %q", i, off, want)
		}
	}

	trailer := entries[n*entryLen:]
	if tm := sizeRe.FindSubmatch(trailer); tm == nil {
		r.problemf("trailer has no /Size")
	} else if size, _ := strconv.Atoi(string(tm[1])); size != n {
		r.problemf("trailer /Size %d does not match %d xref entries", size, n)
	}

	for _, loc := range lengthRe.FindAllSubmatchIndex(data, -1) {
		length, _ := strconv.Atoi(string(data[loc[2]:loc[3]]))
		end := loc[1] + length
		if end > len(data) || !bytes.HasPrefix(data[end:], []byte("endstream")) {
			r.problemf("stream at %d: /Length %d does not reach endstream", loc[0], length)
		}
	}

	if cm := countRe.FindSubmatch(data); cm != nil {
		r.Pages, _ = strconv.Atoi(string(cm[1]))
	} else {
		r.problemf("no page tree root found")
	}

	return r
}
