package timeline

import (
	"math"

	"siteview/internal/geometry"
)

// Tick is one labelled axis position.
type Tick struct {
	Frame int     `json:"frame"`
	X     float64 `json:"x"`
	Label string  `json:"label"`
}

// Axis is the time axis under the current transform.
type Axis struct {
	Ticks    []Tick  `json:"ticks"`
	FontSize float64 `json:"font_size"`
}

// TickSpacing is the target pixel gap between ticks; it shrinks with zoom
// but never below 50px.
func TickSpacing(k float64) float64 {
	return math.Max(50, 100/k)
}

// TickCount is the requested number of ticks, never fewer than five.
func TickCount(contentWidth, k float64) int {
	return max(5, int(math.Floor(contentWidth/TickSpacing(k))))
}

// FontSize grows with the square root of the zoom, floored at 10px.
func FontSize(k float64) float64 {
	return math.Max(10, 12*math.Sqrt(k))
}

// Axis computes tick positions and labels. Labels are the timestamp of the
// tick's frame; x is in band-area coordinates.
func (v *View) Axis(t Transform) Axis {
	n := v.data.FrameCount()
	axis := Axis{FontSize: FontSize(t.K)}
	if n == 0 {
		return axis
	}
	scale := v.XScale(t)
	count := TickCount(v.ContentWidth(t), t.K)
	for _, f := range geometry.IntegerTicks(0, float64(n-1), count) {
		axis.Ticks = append(axis.Ticks, Tick{
			Frame: f,
			X:     scale.Map(float64(f)),
			Label: v.data.Timestamp(f),
		})
	}
	return axis
}
