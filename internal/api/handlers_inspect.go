package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/pdfgen/internal/inspect"
)

// handleInspect checks a PDF posted as the raw request body. With ?text=1
// the extracted lines and /Info title are included.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		jsonError(w, "empty body", http.StatusBadRequest)
		return
	}

	report := inspect.Check(data)
	problems := report.Problems
	if problems == nil {
		problems = []string{}
	}
	resp := map[string]any{
		"ok":          report.OK(),
		"objects":     report.Objects,
		"pages":       report.Pages,
		"xref_offset": report.XrefOffset,
		"problems":    problems,
	}

	if r.URL.Query().Get("text") != "" {
		if pages, err := inspect.ExtractLines(data); err != nil {
			resp["extract_error"] = err.Error()
		} else {
			resp["text"] = pages
		}
		if title, err := inspect.Title(data); err == nil && title != "" {
			resp["title"] = title
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
