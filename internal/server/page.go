package server

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"siteview/internal/legend"
	"siteview/internal/logging"
	"siteview/internal/viewer"
)

//go:embed assets/index.html
var indexSource string

var indexTemplate = template.Must(template.New("index").Parse(indexSource))

type pageData struct {
	Title    string
	Snapshot viewer.Snapshot
	Legend   []legend.Entry
	Margin   float64
	MinZoom  float64
	MaxZoom  float64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	minK, maxK := s.app.ZoomRange()
	data := pageData{
		Title:    s.title,
		Snapshot: s.app.Snapshot(),
		Legend:   legend.Entries(),
		Margin:   s.app.TimelineMargin().Left,
		MinZoom:  minK,
		MaxZoom:  maxK,
	}
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render index failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
