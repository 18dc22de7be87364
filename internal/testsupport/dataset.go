package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"siteview/internal/annotation"
)

// WorkerTrack describes one worker across a synthetic dataset. Activities and
// Positions are indexed by frame; a missing position defaults to the origin.
type WorkerTrack struct {
	ID         string
	Activities []string
	Positions  []annotation.Position
	Postures   []string
}

// Frames builds a frame slice of length n from the provided tracks. Tracks
// shorter than n leave the worker absent from later frames.
func Frames(n int, tracks ...WorkerTrack) []annotation.Frame {
	frames := make([]annotation.Frame, n)
	for i := range frames {
		frames[i] = annotation.Frame{
			Timestamp: fmt.Sprintf("00:00:%02d", i),
			Workers:   map[string]annotation.WorkerState{},
		}
		for _, tr := range tracks {
			if i >= len(tr.Activities) {
				continue
			}
			state := annotation.WorkerState{Activity: annotation.ActivityCode(tr.Activities[i])}
			if i < len(tr.Positions) {
				state.Position = tr.Positions[i]
			}
			if i < len(tr.Postures) {
				state.Posture = tr.Postures[i]
			} else {
				state.Posture = fmt.Sprintf("%s-posture-%d", tr.ID, i)
			}
			frames[i].Workers[tr.ID] = state
		}
	}
	return frames
}

// Dataset builds a validated dataset or fails the test.
func Dataset(t testing.TB, n int, tracks ...WorkerTrack) *annotation.Dataset {
	t.Helper()
	ds, err := annotation.NewDataset(Frames(n, tracks...))
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	return ds
}

// ScenarioDataset is the three frame, single worker fixture used across
// packages: W1 doing CP, IV, CP while walking diagonally.
func ScenarioDataset(t testing.TB) *annotation.Dataset {
	t.Helper()
	return Dataset(t, 3, WorkerTrack{
		ID:         "W1",
		Activities: []string{"CP", "IV", "CP"},
		Positions: []annotation.Position{
			{X: 0, Y: 0},
			{X: 1100, Y: 500},
			{X: 2200, Y: 1000},
		},
		Postures: []string{"standing", "bending", "kneeling"},
	})
}

// WriteAnnotations serializes frames into annotations.json under a temp dir
// and returns the path.
func WriteAnnotations(t testing.TB, frames []annotation.Frame) string {
	t.Helper()
	payload := map[string]any{"frames": frames}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal annotations: %v", err)
	}
	return WriteRaw(t, data)
}

// WriteRaw writes arbitrary bytes as an annotation file.
func WriteRaw(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annotations.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write annotations: %v", err)
	}
	return path
}
