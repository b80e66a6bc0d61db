package api

import "net/http"

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	l := s.opts.Layout
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "pdfgen",
		"version": Version,
		"layout": map[string]any{
			"font":           s.opts.Font.BaseFont,
			"font_size":      l.FontSize,
			"line_height":    l.LineHeight,
			"margin_left":    l.MarginLeft,
			"margin_top":     l.MarginTop,
			"page_width":     l.PageWidth,
			"page_height":    l.PageHeight,
			"lines_per_page": s.opts.LinesPerPage,
			"wrap_columns":   s.opts.WrapColumns,
		},
		"workers": map[string]any{
			"count":       s.cfg.WorkerCount,
			"queue_depth": s.orchestrator.QueueDepth(),
			"jobs":        s.orchestrator.JobCount(),
		},
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"renders":     s.orchestrator.Stats(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"jobs":        s.orchestrator.JobCount(),
	})
}
