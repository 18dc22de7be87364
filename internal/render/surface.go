package render

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"siteview/internal/geometry"
)

// Color is an RGBA colour.
type Color = drawing.Color

// Point is a pixel coordinate.
type Point = geometry.Point

// Common colours.
var (
	White       = drawing.ColorWhite
	Transparent = drawing.ColorTransparent
)

// ShapeKind selects the primitive drawn by DrawShape.
type ShapeKind string

const (
	ShapeRect   ShapeKind = "rect"
	ShapeCircle ShapeKind = "circle"
)

// Shape is a rectangle (X, Y top-left, W x H) or a circle (X, Y centre, R).
type Shape struct {
	Kind ShapeKind `json:"kind"`
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
	W    float64   `json:"w,omitempty"`
	H    float64   `json:"h,omitempty"`
	R    float64   `json:"r,omitempty"`
}

// Rect builds a rectangle shape.
func Rect(x, y, w, h float64) Shape {
	return Shape{Kind: ShapeRect, X: x, Y: y, W: w, H: h}
}

// Circle builds a circle shape.
func Circle(x, y, r float64) Shape {
	return Shape{Kind: ShapeCircle, X: x, Y: y, R: r}
}

// Contains reports whether p falls inside the shape.
func (s Shape) Contains(p Point) bool {
	switch s.Kind {
	case ShapeCircle:
		return math.Hypot(p.X-s.X, p.Y-s.Y) <= s.R
	default:
		return p.X >= s.X && p.X < s.X+s.W && p.Y >= s.Y && p.Y < s.Y+s.H
	}
}

// Style describes fill and stroke. A fully transparent colour is skipped.
type Style struct {
	Fill        Color   `json:"-"`
	Stroke      Color   `json:"-"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
}

// Anchor is the horizontal alignment of text relative to its point.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// TextStyle describes a text run. Y is the baseline.
type TextStyle struct {
	Color  Color   `json:"-"`
	Size   float64 `json:"size"`
	Anchor Anchor  `json:"anchor,omitempty"`
}

// Surface is the capability set every view draws with.
type Surface interface {
	Clear(width, height float64)
	DrawPath(points []Point, style Style)
	DrawShape(shape Shape, style Style)
	DrawText(text string, at Point, style TextStyle)
}

// Hex formats a colour as #rrggbb.
func Hex(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CSS formats a colour for style attributes, keeping alpha.
func CSS(c Color) string {
	if c.A == 255 {
		return Hex(c)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}

// WithOpacity returns c with its alpha set from a 0..1 opacity.
func WithOpacity(c Color, opacity float64) Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(math.Round(opacity * 255))
	return c
}

func visible(c Color) bool {
	return c.A > 0
}
