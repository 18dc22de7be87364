package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"siteview/internal/geometry"
	"siteview/internal/legend"
	"siteview/internal/timeline"
	"siteview/internal/viewer"
)

// FrameResponse is one frame as served by /api/frames/{i}.
type FrameResponse struct {
	Index     int            `json:"index"`
	Timestamp string         `json:"timestamp"`
	Workers   map[string]any `json:"workers"`
}

// SeekResponse reports where a seek landed.
type SeekResponse struct {
	Frame    int             `json:"frame"`
	Snapshot viewer.Snapshot `json:"snapshot"`
}

// HoverResponse is the spatial hit-test result.
type HoverResponse struct {
	Hit      bool    `json:"hit"`
	Worker   string  `json:"worker,omitempty"`
	Distance float64 `json:"distance,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.app.Snapshot())
}

func (s *Server) handlePlayback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	action := strings.TrimPrefix(r.URL.Path, "/api/playback/")
	switch action {
	case "play":
		s.app.Play()
	case "pause":
		s.app.Pause()
	case "toggle":
		s.app.TogglePlay()
	case "reset":
		s.app.Reset()
	default:
		s.writeError(w, http.StatusNotFound, "unknown playback action")
		return
	}
	s.writeJSON(w, http.StatusOK, s.app.Snapshot())
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	switch action := r.Form.Get("action"); action {
	case "in":
		s.app.ZoomIn()
	case "out":
		s.app.ZoomOut()
	case "":
		k, err := parseFinite(r.Form.Get("k"))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "k must be a number")
			return
		}
		tx, err := optionalFloat(r.Form.Get("tx"))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "tx must be a number")
			return
		}
		s.app.Zoom(k, tx)
	default:
		s.writeError(w, http.StatusBadRequest, "action must be in or out")
		return
	}
	s.writeJSON(w, http.StatusOK, s.app.Snapshot())
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	var frame int
	switch {
	case r.Form.Get("frame") != "":
		i, err := strconv.Atoi(r.Form.Get("frame"))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "frame must be an integer")
			return
		}
		frame = s.app.SeekFrame(i)
	case r.Form.Get("x") != "":
		x, err := parseFinite(r.Form.Get("x"))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "x must be a number")
			return
		}
		frame = s.app.Drag(x)
	default:
		s.writeError(w, http.StatusBadRequest, "frame or x is required")
		return
	}
	s.writeJSON(w, http.StatusOK, SeekResponse{Frame: frame, Snapshot: s.app.Snapshot()})
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	p, err := pointFromQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hit, ok := s.app.HoverSpatial(p)
	s.writeJSON(w, http.StatusOK, HoverResponse{Hit: ok, Worker: hit.Worker, Distance: hit.Distance})
}

func (s *Server) handleCell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	p, err := pointFromQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tip, ok := s.app.HoverTimeline(p)
	if !ok {
		s.writeJSON(w, http.StatusOK, map[string]any{"hit": false})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"hit": true, "tooltip": tip})
}

func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.app.ClearTooltip()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	var values [4]float64
	for i, key := range []string{"spatial_width", "spatial_height", "timeline_width", "timeline_height"} {
		v, err := optionalFloat(r.Form.Get(key))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, key+" must be a number")
			return
		}
		if v > timeline.MaxSize {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must not exceed %d", key, timeline.MaxSize))
			return
		}
		values[i] = v
	}
	s.app.Resize(
		viewer.Size{Width: values[0], Height: values[1]},
		viewer.Size{Width: values[2], Height: values[3]},
	)
	s.writeJSON(w, http.StatusOK, s.app.Snapshot())
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"entries": legend.Entries()})
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/api/frames/")
	if idStr == "" || strings.Contains(idStr, "/") {
		s.writeError(w, http.StatusNotFound, "frame not found")
		return
	}
	i, err := strconv.Atoi(idStr)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid frame index")
		return
	}
	frame, ok := s.app.Dataset().Frame(i)
	if !ok {
		s.writeError(w, http.StatusNotFound, "frame not found")
		return
	}
	workers := make(map[string]any, len(frame.Workers))
	for id, state := range frame.Workers {
		workers[id] = map[string]any{
			"position":    state.Position,
			"activity":    state.Activity,
			"description": state.Activity.Description(),
			"posture":     state.Posture,
		}
	}
	s.writeJSON(w, http.StatusOK, FrameResponse{Index: i, Timestamp: frame.Timestamp, Workers: workers})
}

func (s *Server) handleSpatialOps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"ops": s.app.SpatialOps()})
}

func pointFromQuery(r *http.Request) (geometry.Point, error) {
	q := r.URL.Query()
	x, err := parseFinite(q.Get("x"))
	if err != nil {
		return geometry.Point{}, errInvalidPoint
	}
	y, err := parseFinite(q.Get("y"))
	if err != nil {
		return geometry.Point{}, errInvalidPoint
	}
	return geometry.Point{X: x, Y: y}, nil
}

func optionalFloat(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return parseFinite(value)
}

// parseFinite rejects NaN and infinities, which snapshots cannot encode.
func parseFinite(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNonFinite
	}
	return v, nil
}
