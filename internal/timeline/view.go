package timeline

import (
	"math"

	"siteview/internal/annotation"
	"siteview/internal/geometry"
)

// View lays out and draws the timeline for one dataset.
type View struct {
	data *annotation.Dataset
	opts Options
}

// New builds a view, filling unset options with defaults.
func New(data *annotation.Dataset, opts Options) *View {
	return &View{data: data, opts: opts.withDefaults()}
}

// Options returns the effective options.
func (v *View) Options() Options {
	return v.opts
}

// MaxSize bounds either container dimension.
const MaxSize = 4096

// Resize returns a view for a new container size sharing the same dataset.
// Non-positive or non-finite sizes keep the current value; larger ones are
// capped at MaxSize.
func (v *View) Resize(width, height float64) *View {
	opts := v.opts
	if width > 0 && !math.IsInf(width, 0) {
		opts.Width = math.Min(width, MaxSize)
	}
	if height > 0 && !math.IsInf(height, 0) {
		opts.Height = math.Min(height, MaxSize)
	}
	return &View{data: v.data, opts: opts}
}

// InnerWidth is the unzoomed band width.
func (v *View) InnerWidth() float64 {
	return math.Max(0, v.opts.Width-v.opts.Margin.Left-v.opts.Margin.Right)
}

// InnerHeight is the height shared by all bands.
func (v *View) InnerHeight() float64 {
	return math.Max(0, v.opts.Height-v.opts.Margin.Top-v.opts.Margin.Bottom)
}

// Bands lays out one band per frame-0 worker, sorted by id.
func (v *View) Bands() geometry.BandScale {
	return geometry.NewBand(v.data.WorkerIDs(), 0, v.InnerHeight(), v.opts.BandPadding)
}

// XScale maps frame indices to band-area x under the transform.
func (v *View) XScale(t Transform) geometry.LinearScale {
	n := float64(v.data.FrameCount())
	return geometry.NewLinear(0, n, 0, v.InnerWidth()).Rescale(t.K, t.TX)
}

// CellWidth is the zoomed width of one frame, never below one pixel.
func (v *View) CellWidth(t Transform) float64 {
	n := v.data.FrameCount()
	if n == 0 {
		return 1
	}
	return math.Max(1, v.InnerWidth()/float64(n)*t.K)
}

// CursorX is the band-area x of the cursor indicator.
func (v *View) CursorX(cursor int, t Transform) float64 {
	return v.XScale(t).Map(float64(cursor))
}

// ContentWidth is the zoomed band width.
func (v *View) ContentWidth(t Transform) float64 {
	return v.InnerWidth() * t.K
}

// Scrollable reports whether the zoomed content overflows the container.
func (v *View) Scrollable(t Transform) bool {
	return v.ContentWidth(t) > v.InnerWidth()
}

// ScrollLeft is the container scroll offset that centres the cursor, or zero
// when nothing overflows.
func (v *View) ScrollLeft(cursor int, t Transform) float64 {
	if !v.Scrollable(t) {
		return 0
	}
	return math.Max(0, v.opts.Margin.Left+v.CursorX(cursor, t)-v.opts.Width/2)
}

// SurfaceWidth is the drawn width including margins and zoomed content.
func (v *View) SurfaceWidth(t Transform) float64 {
	return math.Max(v.opts.Width, v.opts.Margin.Left+v.ContentWidth(t)+t.TX+v.opts.Margin.Right)
}

// FrameAt converts a pointer x (surface coordinates, margin included) to the
// nearest frame index, clamped to the dataset.
func (v *View) FrameAt(x float64, t Transform) int {
	n := v.data.FrameCount()
	if n == 0 {
		return 0
	}
	f := math.Round(v.XScale(t).Invert(x - v.opts.Margin.Left))
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > float64(n-1):
		return n - 1
	}
	return int(f)
}

// Cell identifies one worker/frame rectangle.
type Cell struct {
	Worker string `json:"worker"`
	Frame  int    `json:"frame"`
}

// CellAt resolves a pointer position (surface coordinates) to the cell under
// it. Gaps between bands, the margins, and frames where the worker is absent
// yield no cell.
func (v *View) CellAt(p geometry.Point, t Transform) (Cell, bool) {
	worker, ok := v.Bands().Lookup(p.Y - v.opts.Margin.Top)
	if !ok {
		return Cell{}, false
	}
	x := p.X - v.opts.Margin.Left
	scale := v.XScale(t)
	if x < scale.R0 || x >= scale.R1 {
		return Cell{}, false
	}
	frame := int(math.Floor(scale.Invert(x)))
	if frame < 0 || frame >= v.data.FrameCount() {
		return Cell{}, false
	}
	if _, present := v.data.Worker(frame, worker); !present {
		return Cell{}, false
	}
	return Cell{Worker: worker, Frame: frame}, true
}
