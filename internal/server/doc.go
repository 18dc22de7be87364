// Package server exposes the viewer over HTTP.
//
// It serves the host page, a JSON control API, rendered SVG/PNG views, and a
// websocket that pushes snapshots after every render and accepts pointer
// events. Mutating routes require the configured bearer token.
package server
