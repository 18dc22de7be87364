package annotation

// Segment is a run of consecutive frames sharing one activity for a worker.
// End is exclusive.
type Segment struct {
	Start    int          `json:"start"`
	End      int          `json:"end"`
	Activity ActivityCode `json:"activity"`
}

// Len returns the number of frames covered.
func (s Segment) Len() int { return s.End - s.Start }

// Segments run-length encodes a worker's activities across the dataset.
// Frames where the worker is absent split segments and are not covered.
func (d *Dataset) Segments(id string) []Segment {
	var out []Segment
	open := false
	for i := 0; i < d.FrameCount(); i++ {
		state, ok := d.Worker(i, id)
		if !ok {
			open = false
			continue
		}
		if open && out[len(out)-1].Activity == state.Activity {
			out[len(out)-1].End = i + 1
			continue
		}
		out = append(out, Segment{Start: i, End: i + 1, Activity: state.Activity})
		open = true
	}
	return out
}

// ActivityCounts tallies frames per activity for a worker.
func (d *Dataset) ActivityCounts(id string) map[ActivityCode]int {
	counts := make(map[ActivityCode]int)
	for _, seg := range d.Segments(id) {
		counts[seg.Activity] += seg.Len()
	}
	return counts
}
