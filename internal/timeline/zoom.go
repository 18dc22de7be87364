package timeline

import "math"

// Transform is the horizontal zoom: x' = x*K + TX.
type Transform struct {
	K  float64 `json:"k"`
	TX float64 `json:"tx"`
}

// Identity is the unzoomed transform.
func Identity() Transform {
	return Transform{K: 1}
}

// Clamp limits K to the configured zoom range. A non-finite TX drops the pan.
func (v *View) Clamp(t Transform) Transform {
	if t.K < v.opts.MinZoom || math.IsNaN(t.K) {
		t.K = v.opts.MinZoom
	}
	if t.K > v.opts.MaxZoom {
		t.K = v.opts.MaxZoom
	}
	if math.IsNaN(t.TX) || math.IsInf(t.TX, 0) {
		t.TX = 0
	}
	return t
}

// Gesture clamps a pointer-anchored zoom from the current transform. When
// the requested scale is out of range the pan is moved only as far as the
// clamped scale, so the point under the pointer stays put.
func (v *View) Gesture(from, to Transform) Transform {
	from = v.Clamp(from)
	clamped := v.Clamp(to)
	if clamped.K == to.K || to.K == from.K {
		return clamped
	}
	// TX is linear in K for a fixed pointer.
	tx := from.TX + (clamped.TX-from.TX)*(clamped.K-from.K)/(to.K-from.K)
	if math.IsNaN(tx) || math.IsInf(tx, 0) {
		tx = from.TX
	}
	clamped.TX = tx
	return clamped
}

// ZoomIn scales up by one step and drops any pan.
func (v *View) ZoomIn(t Transform) Transform {
	return v.Clamp(Transform{K: t.K * v.opts.ZoomStep})
}

// ZoomOut scales down by one step and drops any pan.
func (v *View) ZoomOut(t Transform) Transform {
	return v.Clamp(Transform{K: t.K / v.opts.ZoomStep})
}
