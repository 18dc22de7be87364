package viewer

import (
	"log/slog"
	"math"
	"sync"

	"siteview/internal/annotation"
	"siteview/internal/geometry"
	"siteview/internal/legend"
	"siteview/internal/logging"
	"siteview/internal/playback"
	"siteview/internal/render"
	"siteview/internal/spatial"
	"siteview/internal/timeline"
)

// App is the application state object. Methods are safe for concurrent use.
// The mutex is never held while calling into the playback controller, whose
// change callback re-enters App.
type App struct {
	logger *slog.Logger
	data   *annotation.Dataset
	ctrl   *playback.Controller

	mu        sync.Mutex
	spatial   *spatial.View
	timeline  *timeline.View
	spatialSz Size
	cursor    int
	state     playback.State
	lastSeq   uint64
	version   uint64
	zoom      timeline.Transform
	hovered   string
	tooltip   *timeline.Tooltip
	frame     *render.Recorder
	snapshot  Snapshot
	subs      map[int]chan Snapshot
	nextSub   int
	closed    bool
}

// New wires the views and playback controller around a loaded dataset and
// renders frame 0. Playback is not started.
func New(data *annotation.Dataset, opts Options) *App {
	if opts.SpatialWidth <= 0 {
		opts.SpatialWidth = 1100
	}
	if opts.SpatialHeight <= 0 {
		opts.SpatialHeight = 500
	}
	a := &App{
		logger:    logging.NewComponentLogger(opts.Logger, "viewer"),
		data:      data,
		spatial:   spatial.New(data, opts.Spatial),
		timeline:  timeline.New(data, opts.Timeline),
		spatialSz: Size{Width: opts.SpatialWidth, Height: opts.SpatialHeight},
		zoom:      timeline.Identity(),
		frame:     render.NewRecorder(),
		subs:      make(map[int]chan Snapshot),
	}
	ctrlOpts := []playback.Option{playback.WithOnChange(a.onPlayback)}
	if opts.Interval > 0 {
		ctrlOpts = append(ctrlOpts, playback.WithInterval(opts.Interval))
	}
	if opts.Scheduler != nil {
		ctrlOpts = append(ctrlOpts, playback.WithScheduler(opts.Scheduler))
	}
	a.ctrl = playback.New(data.FrameCount(), ctrlOpts...)

	a.mu.Lock()
	a.renderFrameLocked()
	a.mu.Unlock()
	return a
}

// Dataset returns the loaded dataset.
func (a *App) Dataset() *annotation.Dataset {
	return a.data
}

// Snapshot returns the latest published state.
func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot
}

// Close stops playback and releases subscribers.
func (a *App) Close() {
	a.ctrl.Stop()
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	for id, ch := range a.subs {
		close(ch)
		delete(a.subs, id)
	}
}

// Subscribe returns a channel carrying the latest snapshot after every
// render. Slow readers only ever see the newest value. The returned func
// unsubscribes.
func (a *App) Subscribe() (<-chan Snapshot, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ch := make(chan Snapshot, 1)
	if a.closed {
		close(ch)
		return ch, func() {}
	}
	id := a.nextSub
	a.nextSub++
	a.subs[id] = ch
	ch <- a.snapshot
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			if c, ok := a.subs[id]; ok {
				close(c)
				delete(a.subs, id)
			}
		})
	}
}

// Playback events.

// TogglePlay flips between playing and paused and returns the new state.
func (a *App) TogglePlay() playback.State { return a.ctrl.Toggle() }

// Play starts the frame timer.
func (a *App) Play() { a.ctrl.Start() }

// Pause stops the frame timer, keeping the cursor.
func (a *App) Pause() { a.ctrl.Stop() }

// Reset stops playback and rewinds to frame 0.
func (a *App) Reset() { a.ctrl.Reset() }

// SeekFrame moves the cursor to i, clamped, without touching play state.
func (a *App) SeekFrame(i int) int {
	return a.ctrl.Seek(i)
}

// Drag converts a timeline pointer x under the current zoom into a frame
// and seeks to it.
func (a *App) Drag(x float64) int {
	a.mu.Lock()
	frame := a.timeline.FrameAt(x, a.zoom)
	a.mu.Unlock()
	return a.ctrl.Seek(frame)
}

// Zoom events.

// ZoomIn scales the timeline up one step.
func (a *App) ZoomIn() timeline.Transform {
	return a.setZoom(func(v *timeline.View, t timeline.Transform) timeline.Transform { return v.ZoomIn(t) })
}

// ZoomOut scales the timeline down one step.
func (a *App) ZoomOut() timeline.Transform {
	return a.setZoom(func(v *timeline.View, t timeline.Transform) timeline.Transform { return v.ZoomOut(t) })
}

// Zoom applies a pointer-gesture transform, clamping its scale around the
// gesture's anchor.
func (a *App) Zoom(k, tx float64) timeline.Transform {
	return a.setZoom(func(v *timeline.View, cur timeline.Transform) timeline.Transform {
		return v.Gesture(cur, timeline.Transform{K: k, TX: tx})
	})
}

func (a *App) setZoom(fn func(*timeline.View, timeline.Transform) timeline.Transform) timeline.Transform {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.zoom = fn(a.timeline, a.zoom)
	a.renderFrameLocked()
	return a.zoom
}

// HoverSpatial resolves a canvas pointer position to a worker. Only a change
// of hovered worker re-renders.
func (a *App) HoverSpatial(p geometry.Point) (spatial.Hit, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	hit, ok := a.spatial.HitTest(a.spatialStateLocked(), p)
	if hit.Worker != a.hovered {
		a.logger.Debug("hover changed", logging.Worker(hit.Worker), logging.Frame(a.cursor))
		a.hovered = hit.Worker
		a.renderFrameLocked()
	}
	return hit, ok
}

// HoverTimeline shows the posture tooltip for the cell under p, replacing any
// open tooltip. Off-cell positions remove it.
func (a *App) HoverTimeline(p geometry.Point) (timeline.Tooltip, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cell, ok := a.timeline.CellAt(p, a.zoom)
	if !ok {
		if a.tooltip != nil {
			a.tooltip = nil
			a.renderFrameLocked()
		}
		return timeline.Tooltip{}, false
	}
	if a.tooltip == nil || a.tooltip.Worker != cell.Worker || a.tooltip.Frame != cell.Frame {
		tip := a.timeline.Tooltip(cell.Worker, cell.Frame)
		a.tooltip = &tip
		a.renderFrameLocked()
	}
	return *a.tooltip, true
}

// ClearTooltip removes the tooltip if one is open.
func (a *App) ClearTooltip() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.tooltip == nil {
		return
	}
	a.tooltip = nil
	a.renderFrameLocked()
}

// Resize updates viewport sizes. Non-positive or non-finite values keep the
// current size and larger ones are capped at timeline.MaxSize.
func (a *App) Resize(spatialSize, timelineSize Size) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.spatialSz.Width = resized(a.spatialSz.Width, spatialSize.Width)
	a.spatialSz.Height = resized(a.spatialSz.Height, spatialSize.Height)
	a.timeline = a.timeline.Resize(timelineSize.Width, timelineSize.Height)
	a.renderFrameLocked()
}

func resized(cur, next float64) float64 {
	if next <= 0 || math.IsInf(next, 0) || math.IsNaN(next) {
		return cur
	}
	return math.Min(next, timeline.MaxSize)
}

// RenderSpatial replays the current spatial display list onto s.
func (a *App) RenderSpatial(s render.Surface) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frame.Replay(s)
}

// SpatialOps returns the current spatial display list.
func (a *App) SpatialOps() []render.Op {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame.Ops()
}

// RenderTimeline draws the timeline at the current cursor and zoom.
func (a *App) RenderTimeline(s render.Surface) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timeline.Render(s, timeline.State{Cursor: a.cursor, Transform: a.zoom})
}

// TimelineMargin returns the timeline margins; pointer x positions sent by
// clients include the left margin.
func (a *App) TimelineMargin() timeline.Margin {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timeline.Options().Margin
}

// ZoomRange is the configured timeline scale limits.
func (a *App) ZoomRange() (minK, maxK float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	opts := a.timeline.Options()
	return opts.MinZoom, opts.MaxZoom
}

// RenderLegend draws the activity legend.
func (a *App) RenderLegend(s render.Surface) {
	legend.Render(s)
}

func (a *App) onPlayback(change playback.Change) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if change.Seq < a.lastSeq {
		a.logger.Debug("dropping stale playback change",
			logging.Frame(change.Cursor),
			logging.Uint64("seq", change.Seq),
			logging.Uint64("last_seq", a.lastSeq))
		return
	}
	a.lastSeq = change.Seq
	a.cursor = change.Cursor
	a.state = change.State
	if change.Reason != playback.ReasonTick {
		a.logger.Debug("playback changed",
			logging.String("reason", string(change.Reason)),
			logging.String("state", change.State.String()),
			logging.Frame(change.Cursor))
	}
	a.renderFrameLocked()
}

func (a *App) spatialStateLocked() spatial.State {
	return spatial.State{
		Cursor:  a.cursor,
		Width:   a.spatialSz.Width,
		Height:  a.spatialSz.Height,
		Hovered: a.hovered,
	}
}

// renderFrameLocked is the single render entry point: it redraws the spatial
// view, recomputes the timeline cursor and axis, and publishes the result.
func (a *App) renderFrameLocked() {
	if _, ok := a.data.Worker(a.cursor, a.hovered); a.hovered != "" && !ok {
		a.hovered = ""
	}
	a.spatial.Render(a.frame, a.spatialStateLocked())

	a.version++
	opts := a.timeline.Options()
	snap := Snapshot{
		Version:      a.version,
		Seq:          a.lastSeq,
		Cursor:       a.cursor,
		FrameCount:   a.data.FrameCount(),
		Timestamp:    a.data.Timestamp(a.cursor),
		State:        a.state.String(),
		Playing:      a.state == playback.Playing,
		PlayLabel:    PlayLabel(a.state),
		Zoom:         a.zoom,
		CursorX:      a.timeline.CursorX(a.cursor, a.zoom),
		ContentWidth: a.timeline.ContentWidth(a.zoom),
		SurfaceWidth: a.timeline.SurfaceWidth(a.zoom),
		Scrollable:   a.timeline.Scrollable(a.zoom),
		ScrollLeft:   a.timeline.ScrollLeft(a.cursor, a.zoom),
		Axis:         a.timeline.Axis(a.zoom),
		Hovered:      a.hovered,
		Spatial:      a.spatialSz,
		Timeline:     Size{Width: opts.Width, Height: opts.Height},
	}
	if a.tooltip != nil {
		tip := *a.tooltip
		snap.Tooltip = &tip
	}
	a.snapshot = snap

	for _, ch := range a.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
