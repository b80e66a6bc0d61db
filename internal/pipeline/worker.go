package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/pdfgen/internal/doctree"
	"github.com/dgallion1/pdfgen/internal/inspect"
	"github.com/dgallion1/pdfgen/internal/layout"
	"github.com/dgallion1/pdfgen/internal/parser"
	"github.com/dgallion1/pdfgen/internal/pdfdoc"
)

// Worker processes a single render job.
type Worker struct {
	log   *slog.Logger
	opts  layout.Options
	stats *Stats
}

// NewWorker returns a worker. stats may be nil.
func NewWorker(log *slog.Logger, opts layout.Options, stats *Stats) *Worker {
	return &Worker{log: log, opts: opts, stats: stats}
}

// Process runs parse, layout, assembly and verification for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	start := time.Now()
	defer func() {
		snap := job.Snapshot()
		w.stats.Record(time.Since(start), snap.Progress.Bytes, snap.Status != StatusCompleted)
	}()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.Fail("parsing", err)
		return
	}

	text, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", err)
		return
	}
	if job.Title != "" {
		text.Title = job.Title
	}
	job.SetParsed(len(text.Blocks), text.Title, ContentHashHex([]byte(flattenText(text))))
	log.Info("parsed document", "blocks", len(text.Blocks))

	if ctx.Err() != nil {
		job.Fail("parsing", ctx.Err())
		return
	}

	// Phase 2: Layout
	job.SetStatus(StatusLayout, "layout")
	opts := w.opts
	if job.LinesPerPage > 0 {
		opts.LinesPerPage = job.LinesPerPage
	}
	doc := layout.Build(text, opts)
	lines := 0
	for _, pg := range doc.Pages {
		lines += len(pg.Lines)
	}
	job.SetLaidOut(lines, len(doc.Pages))
	log.Info("laid out document", "lines", lines, "pages", len(doc.Pages))

	// Phase 3: Assemble
	job.SetStatus(StatusAssembling, "assembling")
	data, err := pdfdoc.Assemble(doc)
	if err != nil {
		var encErr *pdfdoc.EncodingError
		if errors.As(err, &encErr) {
			log.Warn("unencodable text", "page", encErr.Page, "line", encErr.Line, "rune", string(encErr.Rune))
		} else {
			log.Error("assemble failed", "error", err)
		}
		job.Fail("assembling", err)
		return
	}

	// Phase 4: Verify
	job.SetStatus(StatusVerifying, "verifying")
	report := inspect.Check(data)
	if !report.OK() {
		log.Error("generated pdf failed verification", "problems", report.Problems)
		job.Fail("verifying", report.Err())
		return
	}

	job.SetPDF(data)
	job.SetStatus(StatusCompleted, "done")
	log.Info("render complete", "bytes", len(data), "objects", report.Objects)
}

// flattenText joins all block text for hashing.
func flattenText(text *doctree.Text) string {
	var sb strings.Builder
	for _, b := range text.Blocks {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s:%s", b.Kind, b.Text)
	}
	return sb.String()
}
