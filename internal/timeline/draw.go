package timeline

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"siteview/internal/render"
)

const (
	labelGap     = 5.0
	labelSize    = 12.0
	tickLength   = 6.0
	cursorStroke = 2.0
)

var (
	labelColor  = drawing.ColorFromHex("333333")
	axisColor   = drawing.ColorFromHex("000000")
	cursorColor = drawing.ColorFromHex("FF0000")
)

// State is everything a timeline render depends on besides the dataset.
type State struct {
	Cursor    int
	Transform Transform
}

// Render clears the surface and draws bands, worker labels, the axis, and
// the cursor indicator.
func (v *View) Render(s render.Surface, st State) {
	t := st.Transform
	m := v.opts.Margin
	s.Clear(v.SurfaceWidth(t), v.opts.Height)

	bands := v.Bands()
	scale := v.XScale(t)
	cw := v.CellWidth(t)
	for _, id := range v.data.WorkerIDs() {
		y, _ := bands.Position(id)
		for i := 0; i < v.data.FrameCount(); i++ {
			state, ok := v.data.Worker(i, id)
			if !ok {
				continue
			}
			x := m.Left + scale.Map(float64(i))
			s.DrawShape(render.Rect(x, m.Top+y, cw, bands.Bandwidth), render.Style{Fill: state.Activity.Color()})
		}
		s.DrawText(id, render.Point{X: m.Left - labelGap, Y: m.Top + y + bands.Bandwidth/2 + labelSize/3},
			render.TextStyle{Color: labelColor, Size: labelSize, Anchor: render.AnchorEnd})
	}

	v.drawAxis(s, t)

	cx := m.Left + v.CursorX(st.Cursor, t)
	s.DrawPath([]render.Point{{X: cx, Y: m.Top}, {X: cx, Y: m.Top + v.InnerHeight()}},
		render.Style{Stroke: cursorColor, StrokeWidth: cursorStroke})
}

func (v *View) drawAxis(s render.Surface, t Transform) {
	m := v.opts.Margin
	baseline := m.Top + v.InnerHeight()
	scale := v.XScale(t)
	line := render.Style{Stroke: axisColor, StrokeWidth: 1}
	s.DrawPath([]render.Point{{X: m.Left + scale.R0, Y: baseline}, {X: m.Left + scale.R1, Y: baseline}}, line)

	axis := v.Axis(t)
	for _, tick := range axis.Ticks {
		x := m.Left + tick.X
		s.DrawPath([]render.Point{{X: x, Y: baseline}, {X: x, Y: baseline + tickLength}}, line)
		s.DrawText(tick.Label, render.Point{X: x, Y: baseline + tickLength + axis.FontSize},
			render.TextStyle{Color: axisColor, Size: axis.FontSize, Anchor: render.AnchorMiddle})
	}
}
