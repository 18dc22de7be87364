package viewer

import (
	"siteview/internal/playback"
	"siteview/internal/timeline"
)

// Size is a viewport size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Snapshot is the published view state after a render. Version increases on
// every render; Seq is the last accepted playback change.
type Snapshot struct {
	Version      uint64             `json:"version"`
	Seq          uint64             `json:"seq"`
	Cursor       int                `json:"cursor"`
	FrameCount   int                `json:"frame_count"`
	Timestamp    string             `json:"timestamp"`
	State        string             `json:"state"`
	Playing      bool               `json:"playing"`
	PlayLabel    string             `json:"play_label"`
	Zoom         timeline.Transform `json:"zoom"`
	CursorX      float64            `json:"cursor_x"`
	ContentWidth float64            `json:"content_width"`
	SurfaceWidth float64            `json:"surface_width"`
	Scrollable   bool               `json:"scrollable"`
	ScrollLeft   float64            `json:"scroll_left"`
	Axis         timeline.Axis      `json:"axis"`
	Hovered      string             `json:"hovered,omitempty"`
	Tooltip      *timeline.Tooltip  `json:"tooltip,omitempty"`
	Spatial      Size               `json:"spatial"`
	Timeline     Size               `json:"timeline"`
}

// PlayLabel is the toggle button text for a state.
func PlayLabel(s playback.State) string {
	if s == playback.Playing {
		return "Pause"
	}
	return "Play"
}
