package spatial

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"siteview/internal/annotation"
	"siteview/internal/geometry"
	"siteview/internal/render"
)

// Drawing defaults.
const (
	DefaultPointRadius = 5.0
	DefaultHoverRadius = 10.0
	labelOffset        = 10.0
	labelSize          = 12.0
	dimmedOpacity      = 0.6
)

var (
	trajectoryColor = render.WithOpacity(drawing.ColorFromHex("C8C8C8"), 0.3)
	labelColor      = drawing.ColorFromHex("333333")
)

// Options tunes the view.
type Options struct {
	Mapper      geometry.Mapper
	PointRadius float64
	HoverRadius float64
}

// State is everything a render depends on besides the dataset.
type State struct {
	Cursor  int
	Width   float64
	Height  float64
	Hovered string
}

// Hit is the result of a hover test.
type Hit struct {
	Worker   string
	Distance float64
}

// View draws one dataset. It keeps no mutable state.
type View struct {
	data *annotation.Dataset
	opts Options
}

// New builds a view, filling zero options with defaults.
func New(data *annotation.Dataset, opts Options) *View {
	if opts.Mapper.DomainWidth <= 0 || opts.Mapper.DomainHeight <= 0 {
		opts.Mapper = geometry.NewMapper(opts.Mapper.DomainWidth, opts.Mapper.DomainHeight)
	}
	if opts.PointRadius <= 0 {
		opts.PointRadius = DefaultPointRadius
	}
	if opts.HoverRadius <= 0 {
		opts.HoverRadius = DefaultHoverRadius
	}
	return &View{data: data, opts: opts}
}

// Render clears the surface and draws trajectories, current points, and the
// hover label.
func (v *View) Render(s render.Surface, st State) {
	s.Clear(st.Width, st.Height)

	for _, id := range v.data.WorkerIDs() {
		for _, path := range v.trajectory(id, st) {
			s.DrawPath(path, render.Style{Stroke: trajectoryColor, StrokeWidth: 1})
		}
	}

	var label string
	var labelAt render.Point
	for _, id := range v.data.FrameWorkerIDs(st.Cursor) {
		state, _ := v.data.Worker(st.Cursor, id)
		p := v.screen(state.Position, st)
		fill := state.Activity.Color()
		if id != st.Hovered {
			fill = render.WithOpacity(fill, dimmedOpacity)
		} else {
			label = id + ": " + state.Activity.Description()
			labelAt = render.Point{X: p.X + labelOffset, Y: p.Y - labelOffset}
		}
		s.DrawShape(render.Circle(p.X, p.Y, v.opts.PointRadius), render.Style{Fill: fill})
	}
	if label != "" {
		s.DrawText(label, labelAt, render.TextStyle{Color: labelColor, Size: labelSize})
	}
}

// HitTest returns the current-frame worker nearest to p within the hover
// radius. Equal distances resolve to the smaller worker id.
func (v *View) HitTest(st State, p render.Point) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, id := range v.data.FrameWorkerIDs(st.Cursor) {
		state, _ := v.data.Worker(st.Cursor, id)
		wp := v.screen(state.Position, st)
		d := math.Hypot(wp.X-p.X, wp.Y-p.Y)
		if d < v.opts.HoverRadius && d < best.Distance {
			best = Hit{Worker: id, Distance: d}
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	return best, true
}

// Project maps a worker's domain position at the cursor onto the canvas.
func (v *View) Project(st State, id string) (render.Point, bool) {
	state, ok := v.data.Worker(st.Cursor, id)
	if !ok {
		return render.Point{}, false
	}
	return v.screen(state.Position, st), true
}

// trajectory splits a worker's path wherever the worker is missing from a
// frame. Runs shorter than two points draw nothing and are dropped.
func (v *View) trajectory(id string, st State) [][]render.Point {
	var paths [][]render.Point
	var cur []render.Point
	flush := func() {
		if len(cur) > 1 {
			paths = append(paths, cur)
		}
		cur = nil
	}
	for i := 0; i < v.data.FrameCount(); i++ {
		state, ok := v.data.Worker(i, id)
		if !ok {
			flush()
			continue
		}
		cur = append(cur, v.screen(state.Position, st))
	}
	flush()
	return paths
}

func (v *View) screen(pos annotation.Position, st State) render.Point {
	return v.opts.Mapper.ToScreen(pos.X, pos.Y, st.Width, st.Height)
}
