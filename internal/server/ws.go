package server

import (
	"encoding/json"
	"net/http"

	"siteview/internal/broadcast"
	"siteview/internal/geometry"
	"siteview/internal/logging"
)

const (
	messageSnapshot      = "snapshot"
	messageDrag          = "drag"
	messageHoverSpatial  = "hover_spatial"
	messageHoverTimeline = "hover_timeline"
	messageTooltipClear  = "tooltip_clear"
	messageError         = "error"
)

// message is the websocket envelope in both directions.
type message struct {
	Type string  `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	Data any     `json:"data,omitempty"`
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	err := s.hub.Serve(s.ctx, &s.upgrader, w, r,
		func(c *broadcast.Client) {
			s.logger.Debug("websocket connected", logging.String(logging.FieldClientID, c.ID))
			_ = s.hub.SendJSON(c, message{Type: messageSnapshot, Data: s.app.Snapshot()})
		},
		s.handleClientMessage)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", logging.Error(err))
	}
}

// handleClientMessage applies pointer events. Resulting renders reach every
// client through the snapshot relay.
func (s *Server) handleClientMessage(c *broadcast.Client, data []byte) {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		_ = s.hub.SendJSON(c, message{Type: messageError, Data: "invalid JSON message"})
		return
	}
	p := geometry.Point{X: msg.X, Y: msg.Y}
	switch msg.Type {
	case messageDrag:
		s.app.Drag(msg.X)
	case messageHoverSpatial:
		s.app.HoverSpatial(p)
	case messageHoverTimeline:
		s.app.HoverTimeline(p)
	case messageTooltipClear:
		s.app.ClearTooltip()
	default:
		_ = s.hub.SendJSON(c, message{Type: messageError, Data: "unknown message type: " + msg.Type})
	}
}
