package timeline

import (
	"math"
	"strings"
	"testing"

	"siteview/internal/annotation"
	"siteview/internal/geometry"
	"siteview/internal/render"
	"siteview/internal/testsupport"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScenarioCursorX(t *testing.T) {
	v := New(testsupport.ScenarioDataset(t), Options{})
	if v.InnerWidth() != 1030 {
		t.Fatalf("inner width = %v", v.InnerWidth())
	}
	want := v.XScale(Identity()).Map(1)
	if !near(v.CursorX(1, Identity()), want) || !near(want, 1030.0/3) {
		t.Fatalf("cursor x = %v, want %v", v.CursorX(1, Identity()), want)
	}

	rec := render.NewRecorder()
	v.Render(rec, State{Cursor: 1, Transform: Identity()})
	paths := rec.Filter(render.OpPath)
	cursor := paths[len(paths)-1]
	if cursor.Stroke != "#ff0000" || !near(cursor.Points[0].X, 50+want) || cursor.Points[0].X != cursor.Points[1].X {
		t.Fatalf("unexpected cursor indicator %+v", cursor)
	}
}

func TestCellsAreContiguous(t *testing.T) {
	v := New(testsupport.ScenarioDataset(t), Options{})
	rec := render.NewRecorder()
	v.Render(rec, State{Transform: Identity()})

	cells := rec.Filter(render.OpShape)
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	wantFill := []string{"#ff6b6b", "#4ecdc4", "#ff6b6b"}
	for i, c := range cells {
		if c.Fill != wantFill[i] {
			t.Fatalf("cell %d fill %s want %s", i, c.Fill, wantFill[i])
		}
		if !near(c.Shape.W, 1030.0/3) {
			t.Fatalf("cell %d width %v", i, c.Shape.W)
		}
		if i > 0 && !near(cells[i-1].Shape.X+cells[i-1].Shape.W, c.Shape.X) {
			t.Fatalf("cell %d does not abut its predecessor", i)
		}
	}
	if !near(cells[2].Shape.X+cells[2].Shape.W, 1080) {
		t.Fatalf("strip should end at the right margin, got %v", cells[2].Shape.X+cells[2].Shape.W)
	}

	labels := rec.Texts()
	if labels[0] != "W1" {
		t.Fatalf("expected worker label first, got %v", labels)
	}
}

func TestFrameAtRoundsAndClamps(t *testing.T) {
	v := New(testsupport.ScenarioDataset(t), Options{})
	scale := v.XScale(Identity())
	x := 50 + scale.Map(1.6)
	if got := v.FrameAt(x, Identity()); got != 2 {
		t.Fatalf("FrameAt(1.6) = %d, want 2", got)
	}
	if got := v.FrameAt(50+scale.Map(1.4), Identity()); got != 1 {
		t.Fatalf("FrameAt(1.4) = %d, want 1", got)
	}
	if got := v.FrameAt(0, Identity()); got != 0 {
		t.Fatalf("FrameAt below range = %d, want 0", got)
	}
	if got := v.FrameAt(5000, Identity()); got != 2 {
		t.Fatalf("FrameAt above range = %d, want 2", got)
	}

	zoomed := Transform{K: 4, TX: -200}
	zx := 50 + v.XScale(zoomed).Map(1.6)
	if got := v.FrameAt(zx, zoomed); got != 2 {
		t.Fatalf("zoomed FrameAt(1.6) = %d, want 2", got)
	}
}

func TestZoomClamps(t *testing.T) {
	v := New(testsupport.ScenarioDataset(t), Options{})
	z := Identity()
	for i := 0; i < 50; i++ {
		z = v.ZoomIn(z)
		if z.K < 1 || z.K > 10 {
			t.Fatalf("zoom out of range: %v", z.K)
		}
	}
	if z.K != 10 {
		t.Fatalf("expected max zoom, got %v", z.K)
	}
	for i := 0; i < 50; i++ {
		z = v.ZoomOut(z)
		if z.K < 1 || z.K > 10 {
			t.Fatalf("zoom out of range: %v", z.K)
		}
	}
	if z.K != 1 {
		t.Fatalf("expected min zoom, got %v", z.K)
	}

	if got := v.ZoomIn(Transform{K: 2, TX: -300}); !near(got.K, 2.4) || got.TX != 0 {
		t.Fatalf("zoom button should reset pan, got %+v", got)
	}
	for _, k := range []float64{-5, 0, 0.3, 1e9, math.Inf(1), math.NaN()} {
		got := v.Clamp(Transform{K: k})
		if got.K < 1 || got.K > 10 {
			t.Fatalf("Clamp(%v) = %v", k, got.K)
		}
	}
}

func TestZoomRescalesHorizontalOnly(t *testing.T) {
	v := New(testsupport.ScenarioDataset(t), Options{})
	base := render.NewRecorder()
	v.Render(base, State{Transform: Identity()})
	zoomed := render.NewRecorder()
	v.Render(zoomed, State{Transform: Transform{K: 2}})

	b := base.Filter(render.OpShape)[1]
	z := zoomed.Filter(render.OpShape)[1]
	if !near(z.Shape.W, 2*b.Shape.W) {
		t.Fatalf("zoomed width %v, base %v", z.Shape.W, b.Shape.W)
	}
	if z.Shape.Y != b.Shape.Y || z.Shape.H != b.Shape.H {
		t.Fatalf("vertical layout changed under zoom")
	}
	if zoomed.Ops()[0].Width <= base.Ops()[0].Width {
		t.Fatalf("zoomed surface should widen")
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	ds := testsupport.Dataset(t, 100, testsupport.WorkerTrack{ID: "A", Activities: repeat("CP", 100)})
	v := New(ds, Options{})
	if v.Scrollable(Identity()) || v.ScrollLeft(99, Identity()) != 0 {
		t.Fatal("unzoomed timeline must not scroll")
	}
	z := Transform{K: 4}
	if !v.Scrollable(z) {
		t.Fatal("zoomed timeline should scroll")
	}
	if got := v.ScrollLeft(2, z); got != 0 {
		t.Fatalf("scroll near start should clamp to 0, got %v", got)
	}
	want := 50 + v.CursorX(60, z) - 550
	if got := v.ScrollLeft(60, z); !near(got, want) {
		t.Fatalf("ScrollLeft = %v, want %v", got, want)
	}
}

func TestGestureZoomKeepsPointerAtLimit(t *testing.T) {
	v := New(testsupport.ScenarioDataset(t), Options{})
	from := Transform{K: 10, TX: -400}
	// A wheel-in at max zoom anchored at pointer x=300.
	to := Transform{K: 11, TX: 300 - (300+400)*11.0/10}
	if got := v.Gesture(from, to); got != from {
		t.Fatalf("wheel at max zoom should not pan, got %+v", got)
	}

	from = Transform{K: 9, TX: -200}
	to = Transform{K: 12, TX: 100 - (100+200)*12.0/9}
	got := v.Gesture(from, to)
	want := 100 - (100+200)*10.0/9
	if got.K != 10 || !near(got.TX, want) {
		t.Fatalf("Gesture = %+v, want k=10 tx=%v", got, want)
	}

	in := Transform{K: 2, TX: -30}
	if got := v.Gesture(Identity(), in); got != in {
		t.Fatalf("in-range gesture changed: %+v", got)
	}
}

func TestNonFiniteInputsAreContained(t *testing.T) {
	v := New(testsupport.ScenarioDataset(t), Options{})
	for _, tx := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := v.Clamp(Transform{K: 2, TX: tx}); got.TX != 0 || got.K != 2 {
			t.Fatalf("Clamp(tx=%v) = %+v", tx, got)
		}
		if got := v.Gesture(Transform{K: 2, TX: -10}, Transform{K: tx, TX: tx}); math.IsNaN(got.TX) || math.IsInf(got.TX, 0) {
			t.Fatalf("Gesture(k=%v) kept non-finite pan: %+v", tx, got)
		}
	}

	r := v.Resize(math.Inf(1), 1e9)
	if r.Options().Width != v.Options().Width || r.Options().Height != MaxSize {
		t.Fatalf("unexpected resized options %+v", r.Options())
	}
	if got := v.FrameAt(math.NaN(), Identity()); got != 0 {
		t.Fatalf("FrameAt(NaN) = %d", got)
	}
	if got := v.FrameAt(1e300, Identity()); got != 2 {
		t.Fatalf("FrameAt(1e300) = %d", got)
	}
}

func TestAxisDensityFollowsZoom(t *testing.T) {
	ds := testsupport.Dataset(t, 200, testsupport.WorkerTrack{ID: "A", Activities: repeat("IV", 200)})
	v := New(ds, Options{})

	if TickSpacing(1) != 100 || TickSpacing(4) != 50 {
		t.Fatalf("unexpected spacing %v %v", TickSpacing(1), TickSpacing(4))
	}
	if TickCount(100, 1) != 5 {
		t.Fatalf("tick count floor should be 5")
	}
	if FontSize(1) != 12 || FontSize(0.5) != 10 || !near(FontSize(4), 24) {
		t.Fatalf("unexpected font sizes")
	}

	a1 := v.Axis(Identity())
	a4 := v.Axis(Transform{K: 4})
	if len(a4.Ticks) <= len(a1.Ticks) {
		t.Fatalf("zooming in should add ticks: %d -> %d", len(a1.Ticks), len(a4.Ticks))
	}
	for _, tick := range a1.Ticks {
		if tick.Label != ds.Timestamp(tick.Frame) {
			t.Fatalf("tick label %q for frame %d", tick.Label, tick.Frame)
		}
	}
	if len(a1.Ticks) < 5 {
		t.Fatalf("expected at least 5 ticks, got %d", len(a1.Ticks))
	}
}

func TestCellAtAndTooltip(t *testing.T) {
	ds := testsupport.Dataset(t, 30,
		testsupport.WorkerTrack{ID: "A", Activities: repeat("CP", 30)},
		testsupport.WorkerTrack{ID: "B", Activities: repeat("WAT", 30)},
	)
	v := New(ds, Options{})
	bands := v.Bands()
	yB, _ := bands.Position("B")
	scale := v.XScale(Identity())
	p := geometry.Point{X: 50 + scale.Map(3.5), Y: 20 + yB + bands.Bandwidth/2}

	cell, ok := v.CellAt(p, Identity())
	if !ok || cell.Worker != "B" || cell.Frame != 3 {
		t.Fatalf("CellAt = %+v ok=%v", cell, ok)
	}
	if _, ok := v.CellAt(geometry.Point{X: 10, Y: p.Y}, Identity()); ok {
		t.Fatal("margin should not resolve to a cell")
	}

	tip := v.Tooltip("B", 3)
	if len(tip.Lines) != 14 || tip.Lines[0].Frame != 0 || tip.Lines[13].Frame != 13 {
		t.Fatalf("expected frames 0..13, got %d lines", len(tip.Lines))
	}
	if tip.Lines[3].String() != "00:00:03: B-posture-3" {
		t.Fatalf("unexpected line %q", tip.Lines[3].String())
	}
	mid := v.Tooltip("A", 15)
	if len(mid.Lines) != 21 {
		t.Fatalf("expected a full 21-line window, got %d", len(mid.Lines))
	}
	end := v.Tooltip("A", 29)
	if len(end.Lines) != 11 || !strings.HasSuffix(end.Text(), "00:00:29: A-posture-29") {
		t.Fatalf("unexpected tail window: %q", end.Text())
	}
}

func TestMissingWorkerLeavesCellEmpty(t *testing.T) {
	frames := testsupport.Frames(3, testsupport.WorkerTrack{ID: "A", Activities: []string{"CP", "IV", "CP"}})
	delete(frames[1].Workers, "A")
	ds, err := annotation.NewDataset(frames)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	v := New(ds, Options{})
	rec := render.NewRecorder()
	v.Render(rec, State{Transform: Identity()})
	if n := len(rec.Filter(render.OpShape)); n != 2 {
		t.Fatalf("expected 2 cells, got %d", n)
	}
	tip := v.Tooltip("A", 1)
	if len(tip.Lines) != 2 {
		t.Fatalf("absent frame should be omitted from tooltip, got %+v", tip.Lines)
	}

	bands := v.Bands()
	y, _ := bands.Position("A")
	p := geometry.Point{X: 50 + v.XScale(Identity()).Map(1.5), Y: 20 + y + 1}
	if _, ok := v.CellAt(p, Identity()); ok {
		t.Fatal("absent worker frame should not resolve to a cell")
	}
}

func repeat(code string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = code
	}
	return out
}
