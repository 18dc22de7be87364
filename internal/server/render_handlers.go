package server

import (
	"bytes"
	"errors"
	"net/http"
	"path"
	"strings"

	"siteview/internal/logging"
	"siteview/internal/render"
)

var (
	errInvalidPoint = errors.New("x and y must be numbers")
	errNonFinite    = errors.New("value must be finite")
)

// handleRender serves /render/{spatial,timeline,legend}.{svg,png}.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name := path.Base(r.URL.Path)
	view, ext, ok := strings.Cut(name, ".")
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown view")
		return
	}
	format, err := render.ParseFormat(ext)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	surface := render.NewChartSurface(format)
	switch view {
	case "spatial":
		s.app.RenderSpatial(surface)
	case "timeline":
		s.app.RenderTimeline(surface)
	case "legend":
		s.app.RenderLegend(surface)
	default:
		s.writeError(w, http.StatusNotFound, "unknown view")
		return
	}

	var buf bytes.Buffer
	if err := surface.Encode(&buf); err != nil {
		s.logger.Error("render failed", logging.String("view", view), logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}
