package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dgallion1/pdfgen/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = pipeline.ContentHashHex(data)[:16]
	}
	linesPerPage, _ := strconv.Atoi(r.FormValue("lines_per_page"))

	now := time.Now()
	job := &pipeline.Job{
		ID:           pipeline.NewJobID(),
		DocID:        docID,
		Status:       pipeline.StatusQueued,
		Phase:        "queued",
		Filename:     filename,
		Title:        r.FormValue("title"),
		LinesPerPage: linesPerPage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		s.log.Warn("job rejected", "job_id", job.ID, "error", err)
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	resp := map[string]any{
		"job_id":   snap.ID,
		"doc_id":   snap.DocID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"filename": snap.Filename,
		"title":    snap.Title,
		"progress": snap.Progress,
	}
	if snap.Status == pipeline.StatusCompleted {
		resp["pdf_url"] = fmt.Sprintf("/api/jobs/%s/pdf", snap.ID)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleJobPDF(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	data, ok := job.PDF()
	if !ok {
		snap := job.Snapshot()
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  "job has no output",
			"status": snap.Status,
			"errors": snap.Progress.Errors,
		})
		return
	}
	s.sendPDF(w, data, downloadName(job.Snapshot().Title))
}
