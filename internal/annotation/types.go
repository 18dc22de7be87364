package annotation

import (
	"sort"
)

// Position is a point in the fixed domain space (origin bottom-left).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WorkerState is one worker's record within a frame.
type WorkerState struct {
	Position Position     `json:"position"`
	Activity ActivityCode `json:"activity"`
	Posture  string       `json:"posture"`
}

// Frame is one sample in time. Index in the dataset is the canonical time axis.
type Frame struct {
	Timestamp string                 `json:"timestamp"`
	Workers   map[string]WorkerState `json:"workers"`
}

// Dataset is the immutable frame sequence loaded at startup.
type Dataset struct {
	frames  []Frame
	workers []string
}

// NewDataset validates frames and builds a dataset. It is used by the loader
// and by callers that assemble frames in memory.
func NewDataset(frames []Frame) (*Dataset, error) {
	if err := validateFrames(frames); err != nil {
		return nil, &LoadError{Kind: KindValidation, Err: err}
	}
	ids := make([]string, 0, len(frames[0].Workers))
	for id := range frames[0].Workers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return &Dataset{frames: frames, workers: ids}, nil
}

// FrameCount returns the number of frames.
func (d *Dataset) FrameCount() int {
	if d == nil {
		return 0
	}
	return len(d.frames)
}

// Frame returns the frame at index i.
func (d *Dataset) Frame(i int) (Frame, bool) {
	if d == nil || i < 0 || i >= len(d.frames) {
		return Frame{}, false
	}
	return d.frames[i], true
}

// Timestamp returns the display timestamp for frame i, or "" when out of range.
func (d *Dataset) Timestamp(i int) string {
	frame, ok := d.Frame(i)
	if !ok {
		return ""
	}
	return frame.Timestamp
}

// WorkerIDs returns the worker identifiers of frame 0, sorted.
func (d *Dataset) WorkerIDs() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.workers...)
}

// Worker returns a worker's state at frame i. A worker absent from the frame
// reports ok=false so views can treat it as "no data this frame".
func (d *Dataset) Worker(i int, id string) (WorkerState, bool) {
	frame, ok := d.Frame(i)
	if !ok {
		return WorkerState{}, false
	}
	state, ok := frame.Workers[id]
	return state, ok
}

// FrameWorkerIDs returns the workers present in frame i, sorted.
func (d *Dataset) FrameWorkerIDs(i int) []string {
	frame, ok := d.Frame(i)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(frame.Workers))
	for id := range frame.Workers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Gaps counts (frame, worker) pairs where a frame-0 worker is missing.
func (d *Dataset) Gaps() int {
	if d == nil {
		return 0
	}
	gaps := 0
	for _, frame := range d.frames {
		for _, id := range d.workers {
			if _, ok := frame.Workers[id]; !ok {
				gaps++
			}
		}
	}
	return gaps
}

// UnknownActivities returns the distinct codes outside the fixed enumeration.
func (d *Dataset) UnknownActivities() []ActivityCode {
	if d == nil {
		return nil
	}
	seen := map[ActivityCode]struct{}{}
	var out []ActivityCode
	for _, frame := range d.frames {
		for _, state := range frame.Workers {
			if state.Activity.Known() {
				continue
			}
			if _, ok := seen[state.Activity]; ok {
				continue
			}
			seen[state.Activity] = struct{}{}
			out = append(out, state.Activity)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
