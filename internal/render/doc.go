// Package render defines the drawing surface the views paint onto.
//
// Views only see the Surface interface (clear, draw-path, draw-shape,
// draw-text). Recorder keeps a display list for tests and for the JSON API;
// ChartSurface rasterises to PNG or emits SVG through go-chart's renderers.
package render
