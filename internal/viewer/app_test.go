package viewer

import (
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"siteview/internal/geometry"
	"siteview/internal/playback"
	"siteview/internal/render"
	"siteview/internal/testsupport"
	"siteview/internal/timeline"
)

type manualScheduler struct {
	mu  sync.Mutex
	fns []func()
}

func (m *manualScheduler) Every(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fns = append(m.fns, fn)
	return func() {}
}

func (m *manualScheduler) fireLatest() {
	m.mu.Lock()
	fn := m.fns[len(m.fns)-1]
	m.mu.Unlock()
	fn()
}

func newScenarioApp(t *testing.T) (*App, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	app := New(testsupport.ScenarioDataset(t), Options{Scheduler: sched})
	t.Cleanup(app.Close)
	return app, sched
}

func TestInitialRenderShowsFrameZero(t *testing.T) {
	app, _ := newScenarioApp(t)
	snap := app.Snapshot()
	if snap.Cursor != 0 || snap.FrameCount != 3 || snap.Timestamp != "00:00:00" {
		t.Fatalf("unexpected initial snapshot %+v", snap)
	}
	if snap.PlayLabel != "Play" || snap.Playing {
		t.Fatalf("app should start stopped, got %+v", snap)
	}
	if len(app.SpatialOps()) == 0 {
		t.Fatal("spatial view should be drawn on construction")
	}
}

func TestTickKeepsViewsInSync(t *testing.T) {
	app, sched := newScenarioApp(t)
	app.Play()
	if snap := app.Snapshot(); !snap.Playing || snap.PlayLabel != "Pause" {
		t.Fatalf("expected playing snapshot, got %+v", snap)
	}
	sched.fireLatest()

	snap := app.Snapshot()
	if snap.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", snap.Cursor)
	}
	tl := timeline.New(app.Dataset(), timeline.Options{})
	if snap.CursorX != tl.CursorX(1, timeline.Identity()) {
		t.Fatalf("timeline cursor x %v does not match frame 1", snap.CursorX)
	}
	points := 0
	for _, op := range app.SpatialOps() {
		if op.Kind == render.OpShape {
			points++
			if op.Shape.X != 550 || op.Shape.Y != 250 {
				t.Fatalf("spatial point not at frame 1 position: %+v", op.Shape)
			}
		}
	}
	if points != 1 {
		t.Fatalf("expected one point, got %d", points)
	}

	sched.fireLatest()
	sched.fireLatest()
	if app.Snapshot().Cursor != 0 {
		t.Fatalf("expected wrap to 0, got %d", app.Snapshot().Cursor)
	}
}

func TestResetAndToggle(t *testing.T) {
	app, _ := newScenarioApp(t)
	if state := app.TogglePlay(); state != playback.Playing {
		t.Fatalf("toggle from stopped gave %s", state)
	}
	app.SeekFrame(2)
	app.Reset()
	snap := app.Snapshot()
	if snap.Cursor != 0 || snap.State != "stopped" || snap.PlayLabel != "Play" {
		t.Fatalf("unexpected snapshot after reset %+v", snap)
	}
}

func TestDragUsesZoomedScale(t *testing.T) {
	app, _ := newScenarioApp(t)
	tl := timeline.New(app.Dataset(), timeline.Options{})

	if got := app.Drag(50 + tl.XScale(timeline.Identity()).Map(1.6)); got != 2 {
		t.Fatalf("drag to 1.6 gave frame %d", got)
	}
	if got := app.Drag(-100); got != 0 {
		t.Fatalf("drag below range gave frame %d", got)
	}

	z := app.Zoom(3, -400)
	if z.K != 3 || z.TX != -400 {
		t.Fatalf("unexpected zoom %+v", z)
	}
	x := 50 + tl.XScale(z).Map(1.2)
	if got := app.Drag(x); got != 1 {
		t.Fatalf("zoomed drag gave frame %d", got)
	}
	if app.Snapshot().Cursor != 1 {
		t.Fatalf("drag did not move the shared cursor")
	}
}

func TestZoomButtonsClamp(t *testing.T) {
	app, _ := newScenarioApp(t)
	for i := 0; i < 30; i++ {
		app.ZoomIn()
	}
	if z := app.Snapshot().Zoom; z.K != 10 {
		t.Fatalf("expected k=10, got %v", z.K)
	}
	if !app.Snapshot().Scrollable {
		t.Fatal("zoomed timeline should be scrollable")
	}
	for i := 0; i < 30; i++ {
		app.ZoomOut()
	}
	if z := app.Snapshot().Zoom; z.K != 1 || z.TX != 0 {
		t.Fatalf("expected identity, got %+v", z)
	}
	if z := app.Zoom(50, 10); z.K != 10 {
		t.Fatalf("gesture zoom not clamped: %+v", z)
	}
}

func TestHoverSpatialRerendersOnChange(t *testing.T) {
	app, _ := newScenarioApp(t)
	app.SeekFrame(2)
	before := app.Snapshot().Version

	hit, ok := app.HoverSpatial(geometry.Point{X: 1100, Y: 0})
	if !ok || hit.Worker != "W1" {
		t.Fatalf("expected W1 hover, got %+v %v", hit, ok)
	}
	snap := app.Snapshot()
	if snap.Hovered != "W1" || snap.Version != before+1 {
		t.Fatalf("hover should re-render once: %+v", snap)
	}
	app.HoverSpatial(geometry.Point{X: 1099, Y: 1})
	if app.Snapshot().Version != before+1 {
		t.Fatal("same hover target should not re-render")
	}

	texts := 0
	for _, op := range app.SpatialOps() {
		if op.Kind == render.OpText && op.Text == "W1: Concrete Pouring" {
			texts++
		}
	}
	if texts != 1 {
		t.Fatalf("expected hover label, got %d", texts)
	}

	if _, ok := app.HoverSpatial(geometry.Point{X: 1050, Y: 0}); ok {
		t.Fatal("50px away should not hover")
	}
	if app.Snapshot().Hovered != "" {
		t.Fatal("hover should clear")
	}
}

func TestTooltipSingleInstance(t *testing.T) {
	ds := testsupport.Dataset(t, 40, testsupport.WorkerTrack{ID: "A", Activities: make([]string, 40)})
	app := New(ds, Options{Scheduler: &manualScheduler{}})
	defer app.Close()

	tl := timeline.New(ds, timeline.Options{})
	bands := tl.Bands()
	y, _ := bands.Position("A")
	at := func(frame float64) geometry.Point {
		return geometry.Point{X: 50 + tl.XScale(timeline.Identity()).Map(frame), Y: 20 + y + 1}
	}

	tip, ok := app.HoverTimeline(at(20.5))
	if !ok || tip.Frame != 20 || len(tip.Lines) != 21 {
		t.Fatalf("unexpected tooltip %+v ok=%v", tip, ok)
	}
	tip, ok = app.HoverTimeline(at(0.5))
	if !ok || tip.Frame != 0 || len(tip.Lines) != 11 {
		t.Fatalf("tooltip should be replaced, got frame %d with %d lines", tip.Frame, len(tip.Lines))
	}
	if snap := app.Snapshot(); snap.Tooltip == nil || snap.Tooltip.Frame != 0 {
		t.Fatalf("snapshot should carry the replacing tooltip")
	}

	app.ClearTooltip()
	if app.Snapshot().Tooltip != nil {
		t.Fatal("tooltip should be removed")
	}
	app.HoverTimeline(at(5.5))
	if _, ok := app.HoverTimeline(geometry.Point{X: 1, Y: 1}); ok {
		t.Fatal("margin should not show a tooltip")
	}
	if app.Snapshot().Tooltip != nil {
		t.Fatal("pointer-out should remove the tooltip")
	}
}

func TestStaleChangesAreDropped(t *testing.T) {
	app, _ := newScenarioApp(t)
	app.SeekFrame(2)
	seq := app.Snapshot().Seq

	app.onPlayback(playback.Change{Seq: seq - 1, Cursor: 0, State: playback.Stopped, Reason: playback.ReasonTick})
	if snap := app.Snapshot(); snap.Cursor != 2 || snap.Seq != seq {
		t.Fatalf("stale change applied: %+v", snap)
	}
}

func TestSubscribeReceivesLatest(t *testing.T) {
	app, _ := newScenarioApp(t)
	ch, cancel := app.Subscribe()
	defer cancel()

	first := <-ch
	if first.Cursor != 0 {
		t.Fatalf("subscriber should get current snapshot first, got %+v", first)
	}
	app.SeekFrame(1)
	app.SeekFrame(2)
	latest := <-ch
	if latest.Cursor != 2 {
		t.Fatalf("slow subscriber should see the newest snapshot, got cursor %d", latest.Cursor)
	}

	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after cancel")
	}
}

func TestResize(t *testing.T) {
	app, _ := newScenarioApp(t)
	app.Resize(Size{Width: 550, Height: 250}, Size{Width: 600})
	snap := app.Snapshot()
	if snap.Spatial.Width != 550 || snap.Timeline.Width != 600 || snap.Timeline.Height != 300 {
		t.Fatalf("unexpected sizes %+v %+v", snap.Spatial, snap.Timeline)
	}
	for _, op := range app.SpatialOps() {
		if op.Kind == render.OpClear && (op.Width != 550 || op.Height != 250) {
			t.Fatalf("spatial surface not resized: %+v", op)
		}
	}
}

func TestNonFiniteInputKeepsSnapshotEncodable(t *testing.T) {
	app, _ := newScenarioApp(t)
	app.Zoom(2, math.NaN())
	app.Zoom(math.Inf(1), math.Inf(-1))
	app.Resize(Size{Width: math.NaN(), Height: math.Inf(1)}, Size{Width: math.Inf(1), Height: 1e9})
	app.Drag(math.NaN())

	snap := app.Snapshot()
	if _, err := json.Marshal(snap); err != nil {
		t.Fatalf("snapshot no longer encodes: %v", err)
	}
	if snap.Spatial.Width != 1100 || snap.Timeline.Width != 1100 || snap.Timeline.Height != timeline.MaxSize {
		t.Fatalf("unexpected sizes %+v %+v", snap.Spatial, snap.Timeline)
	}
	if snap.Zoom.K != 10 || snap.Zoom.TX != 0 {
		t.Fatalf("unexpected zoom %+v", snap.Zoom)
	}
}
