package render

// OpKind names a recorded drawing call.
type OpKind string

const (
	OpClear OpKind = "clear"
	OpPath  OpKind = "path"
	OpShape OpKind = "shape"
	OpText  OpKind = "text"
)

// Op is one recorded drawing call.
type Op struct {
	Kind      OpKind    `json:"kind"`
	Width     float64   `json:"width,omitempty"`
	Height    float64   `json:"height,omitempty"`
	Points    []Point   `json:"points,omitempty"`
	Shape     Shape     `json:"shape"`
	Style     Style     `json:"style"`
	Text      string    `json:"text,omitempty"`
	At        Point     `json:"at"`
	TextStyle TextStyle `json:"text_style"`

	// Colours as CSS strings for JSON consumers.
	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`
}

// Recorder is a Surface that keeps a display list. Clear discards previous
// operations.
type Recorder struct {
	ops []Op
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Clear records a canvas reset.
func (r *Recorder) Clear(width, height float64) {
	r.ops = append(r.ops[:0], Op{Kind: OpClear, Width: width, Height: height})
}

// DrawPath records a polyline.
func (r *Recorder) DrawPath(points []Point, style Style) {
	cp := append([]Point(nil), points...)
	r.ops = append(r.ops, Op{Kind: OpPath, Points: cp, Style: style, Stroke: cssOrEmpty(style.Stroke), Fill: cssOrEmpty(style.Fill)})
}

// DrawShape records a rectangle or circle.
func (r *Recorder) DrawShape(shape Shape, style Style) {
	r.ops = append(r.ops, Op{Kind: OpShape, Shape: shape, Style: style, Stroke: cssOrEmpty(style.Stroke), Fill: cssOrEmpty(style.Fill)})
}

// DrawText records a label.
func (r *Recorder) DrawText(text string, at Point, style TextStyle) {
	r.ops = append(r.ops, Op{Kind: OpText, Text: text, At: at, TextStyle: style, Fill: cssOrEmpty(style.Color)})
}

// Ops returns a copy of the display list.
func (r *Recorder) Ops() []Op {
	return append([]Op(nil), r.ops...)
}

// Filter returns the operations of one kind, in draw order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings drawn, in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Replay draws the recorded list onto another surface.
func (r *Recorder) Replay(dst Surface) {
	for _, op := range r.ops {
		switch op.Kind {
		case OpClear:
			dst.Clear(op.Width, op.Height)
		case OpPath:
			dst.DrawPath(op.Points, op.Style)
		case OpShape:
			dst.DrawShape(op.Shape, op.Style)
		case OpText:
			dst.DrawText(op.Text, op.At, op.TextStyle)
		}
	}
}

func cssOrEmpty(c Color) string {
	if !visible(c) {
		return ""
	}
	return CSS(c)
}
