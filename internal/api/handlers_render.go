package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/pdfgen/internal/layout"
	"github.com/dgallion1/pdfgen/internal/parser"
	"github.com/dgallion1/pdfgen/internal/pdfdoc"
)

// renderRequest is the JSON body of POST /api/render. Either Lines, which
// are paginated, or Pages, which are used as given, must be set.
type renderRequest struct {
	Title        string     `json:"title"`
	Author       string     `json:"author"`
	Lines        []string   `json:"lines"`
	Pages        [][]string `json:"pages"`
	Font         string     `json:"font"`
	LinesPerPage int        `json:"lines_per_page"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req renderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Lines != nil && req.Pages != nil {
		jsonError(w, "set either lines or pages, not both", http.StatusBadRequest)
		return
	}

	opts := s.opts
	if req.Font != "" {
		opts.Font.BaseFont = req.Font
	}
	if req.LinesPerPage > 0 {
		opts.LinesPerPage = req.LinesPerPage
	}

	var doc *pdfdoc.Document
	if req.Pages != nil {
		doc = pdfdoc.New(opts.Font, opts.Layout)
		for _, p := range req.Pages {
			doc.AddPage(p)
		}
	} else {
		doc = pdfdoc.Paginate(req.Lines, opts.LinesPerPage, opts.Font, opts.Layout)
	}
	if req.Title != "" || req.Author != "" {
		doc.Info = &pdfdoc.Info{Title: req.Title, Author: req.Author, Producer: layout.Producer}
	}

	s.writePDF(w, doc, downloadName(req.Title))
}

func (s *Server) handleRenderUpload(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	text, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "parse failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if title := r.FormValue("title"); title != "" {
		text.Title = title
	}

	opts := s.opts
	if n, err := strconv.Atoi(r.FormValue("lines_per_page")); err == nil && n > 0 {
		opts.LinesPerPage = n
	}

	s.writePDF(w, layout.Build(text, opts), downloadName(text.Title))
}

// readUpload reads the "file" part of a multipart form, enforcing the
// upload limit and the supported extensions. It writes the error response
// itself and reports false on failure.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return "", nil, false
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	return filename, data, true
}

// writePDF assembles doc and sends it, or maps the assembly error to a
// status code.
func (s *Server) writePDF(w http.ResponseWriter, doc *pdfdoc.Document, name string) {
	data, err := pdfdoc.Assemble(doc)
	if err != nil {
		writeAssembleError(w, err)
		return
	}
	s.sendPDF(w, data, name)
}

func (s *Server) sendPDF(w http.ResponseWriter, data []byte, name string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if n, err := w.Write(data); err != nil {
		s.log.Warn("pdf write failed", "file", name, "written", n, "bytes", len(data), "error", err)
	}
}

func writeAssembleError(w http.ResponseWriter, err error) {
	var encErr *pdfdoc.EncodingError
	var invErr *pdfdoc.InvalidDocumentError
	switch {
	case errors.As(err, &encErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": err.Error(),
			"page":  encErr.Page,
			"line":  encErr.Line,
			"rune":  string(encErr.Rune),
		})
	case errors.As(err, &invErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  err.Error(),
			"reason": invErr.Reason,
		})
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

// downloadName turns a title into a safe attachment filename.
func downloadName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '_'
		}
		return -1
	}, title)
	if name == "" {
		name = "document"
	}
	return name + ".pdf"
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
