package geometry

import "math"

// LinearScale maps a continuous domain onto a pixel range.
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear builds a scale from domain [d0,d1] to range [r0,r1].
func NewLinear(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map projects a domain value. A degenerate domain maps to the range midpoint.
func (s LinearScale) Map(v float64) float64 {
	if s.D1 == s.D0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Invert projects a range value back into the domain.
func (s LinearScale) Invert(px float64) float64 {
	if s.R1 == s.R0 {
		return (s.D0 + s.D1) / 2
	}
	return s.D0 + (px-s.R0)/(s.R1-s.R0)*(s.D1-s.D0)
}

// Rescale applies a horizontal zoom transform (scale k, translation tx) to
// the range, leaving the domain untouched.
func (s LinearScale) Rescale(k, tx float64) LinearScale {
	return LinearScale{
		D0: s.D0,
		D1: s.D1,
		R0: s.R0*k + tx,
		R1: s.R1*k + tx,
	}
}

// BandScale divides a pixel range into equal bands with inner and outer
// padding expressed as a fraction of the step.
type BandScale struct {
	Start     float64
	Step      float64
	Bandwidth float64
	keys      map[string]int
}

// NewBand lays out keys across [r0,r1] with the same padding for inner and
// outer gaps.
func NewBand(keys []string, r0, r1, padding float64) BandScale {
	n := float64(len(keys))
	step := (r1 - r0) / math.Max(1, n-padding+2*padding)
	start := r0 + (r1-r0-step*(n-padding))*0.5
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}
	return BandScale{
		Start:     start,
		Step:      step,
		Bandwidth: step * (1 - padding),
		keys:      index,
	}
}

// Position returns the top of the band for key.
func (b BandScale) Position(key string) (float64, bool) {
	i, ok := b.keys[key]
	if !ok {
		return 0, false
	}
	return b.Start + float64(i)*b.Step, true
}

// Lookup returns the key whose band contains y.
func (b BandScale) Lookup(y float64) (string, bool) {
	for key, i := range b.keys {
		top := b.Start + float64(i)*b.Step
		if y >= top && y < top+b.Bandwidth {
			return key, true
		}
	}
	return "", false
}
