package playback

import (
	"sync"
	"time"
)

// DefaultInterval is the autoplay cadence.
const DefaultInterval = 100 * time.Millisecond

// State is the playback state.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Reason explains what produced a change notification.
type Reason string

const (
	ReasonTick  Reason = "tick"
	ReasonSeek  Reason = "seek"
	ReasonStart Reason = "start"
	ReasonStop  Reason = "stop"
	ReasonReset Reason = "reset"
)

// Change is delivered to the OnChange callback after the controller lock is
// released. Seq strictly increases across changes from one controller.
type Change struct {
	Seq    uint64
	Cursor int
	State  State
	Reason Reason
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval overrides the tick cadence.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithOnChange registers the change callback.
func WithOnChange(fn func(Change)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// Controller owns the cursor. All methods are safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	frameCount int
	cursor     int
	state      State
	seq        uint64
	generation uint64
	cancel     func()

	interval  time.Duration
	scheduler Scheduler
	onChange  func(Change)
}

// New builds a stopped controller at cursor 0. frameCount below one is
// treated as one.
func New(frameCount int, opts ...Option) *Controller {
	if frameCount < 1 {
		frameCount = 1
	}
	c := &Controller{
		frameCount: frameCount,
		interval:   DefaultInterval,
		scheduler:  TimeScheduler{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FrameCount returns the number of frames the cursor cycles through.
func (c *Controller) FrameCount() int {
	return c.frameCount
}

// Cursor returns the current frame index.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins playback. Calling it while already playing does nothing.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.state == Playing {
		c.mu.Unlock()
		return
	}
	c.state = Playing
	c.generation++
	gen := c.generation
	c.cancel = c.scheduler.Every(c.interval, func() { c.tick(gen) })
	change := c.changeLocked(ReasonStart)
	c.mu.Unlock()
	c.emit(change)
}

// Stop halts playback and cancels the pending tick. Calling it while stopped
// does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state == Stopped {
		c.mu.Unlock()
		return
	}
	c.haltLocked()
	change := c.changeLocked(ReasonStop)
	c.mu.Unlock()
	c.emit(change)
}

// Toggle starts or stops playback and returns the resulting state.
func (c *Controller) Toggle() State {
	if c.State() == Playing {
		c.Stop()
	} else {
		c.Start()
	}
	return c.State()
}

// Reset stops playback from any state and rewinds to frame 0.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.state == Playing {
		c.haltLocked()
	}
	c.cursor = 0
	change := c.changeLocked(ReasonReset)
	c.mu.Unlock()
	c.emit(change)
}

// Tick advances the cursor by one frame, wrapping at the end. It is what the
// scheduler invokes while playing, and may be called directly.
func (c *Controller) Tick() {
	c.mu.Lock()
	c.cursor = (c.cursor + 1) % c.frameCount
	change := c.changeLocked(ReasonTick)
	c.mu.Unlock()
	c.emit(change)
}

// Seek moves the cursor to i, clamped to the valid range. Playback state is
// untouched; the next tick continues from the new cursor.
func (c *Controller) Seek(i int) int {
	if i < 0 {
		i = 0
	}
	if i > c.frameCount-1 {
		i = c.frameCount - 1
	}
	c.mu.Lock()
	c.cursor = i
	change := c.changeLocked(ReasonSeek)
	c.mu.Unlock()
	c.emit(change)
	return i
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if c.state != Playing || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.cursor = (c.cursor + 1) % c.frameCount
	change := c.changeLocked(ReasonTick)
	c.mu.Unlock()
	c.emit(change)
}

func (c *Controller) haltLocked() {
	c.state = Stopped
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) changeLocked(reason Reason) Change {
	c.seq++
	return Change{Seq: c.seq, Cursor: c.cursor, State: c.state, Reason: reason}
}

func (c *Controller) emit(change Change) {
	if c.onChange != nil {
		c.onChange(change)
	}
}
