package timeline

import "strings"

// TooltipLine is one frame of the posture window.
type TooltipLine struct {
	Frame     int    `json:"frame"`
	Timestamp string `json:"timestamp"`
	Posture   string `json:"posture"`
}

func (l TooltipLine) String() string {
	return l.Timestamp + ": " + l.Posture
}

// Tooltip lists a worker's postures around a frame.
type Tooltip struct {
	Worker string        `json:"worker"`
	Frame  int           `json:"frame"`
	Lines  []TooltipLine `json:"lines"`
}

// Text joins the lines the way the floating panel shows them.
func (t Tooltip) Text() string {
	parts := make([]string, len(t.Lines))
	for i, l := range t.Lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

// Tooltip collects postures in [frame-window, frame+window], truncated at the
// sequence boundaries. Frames where the worker is absent are left out.
func (v *View) Tooltip(worker string, frame int) Tooltip {
	tip := Tooltip{Worker: worker, Frame: frame, Lines: []TooltipLine{}}
	start := max(0, frame-v.opts.TooltipWindow)
	end := min(v.data.FrameCount()-1, frame+v.opts.TooltipWindow)
	for i := start; i <= end; i++ {
		state, ok := v.data.Worker(i, worker)
		if !ok {
			continue
		}
		tip.Lines = append(tip.Lines, TooltipLine{
			Frame:     i,
			Timestamp: v.data.Timestamp(i),
			Posture:   state.Posture,
		})
	}
	return tip
}
