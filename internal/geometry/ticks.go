package geometry

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// TickStep returns a "nice" step (1, 2 or 5 times a power of ten) that splits
// [start,stop] into roughly count intervals.
func TickStep(start, stop float64, count int) float64 {
	if count <= 0 || stop <= start {
		return 0
	}
	raw := (stop - start) / float64(count)
	power := math.Floor(math.Log10(raw))
	base := math.Pow(10, power)
	ratio := raw / base
	switch {
	case ratio >= e10:
		base *= 10
	case ratio >= e5:
		base *= 5
	case ratio >= e2:
		base *= 2
	}
	return base
}

// IntegerTicks returns integer tick values in [start,stop] spaced by a nice
// step of at least one.
func IntegerTicks(start, stop float64, count int) []int {
	step := TickStep(start, stop, count)
	if step == 0 {
		if stop == start {
			return []int{int(math.Round(start))}
		}
		return nil
	}
	if step < 1 {
		step = 1
	}
	first := math.Ceil(start/step) * step
	var out []int
	for v := first; v <= stop+1e-9; v += step {
		out = append(out, int(math.Round(v)))
	}
	return out
}
