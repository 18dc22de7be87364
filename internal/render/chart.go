package render

import (
	"errors"
	"fmt"
	"html"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Format selects a ChartSurface output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSVG, FormatPNG:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported image format %q (want svg or png)", s)
	}
}

// ContentType returns the HTTP media type for the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// ChartSurface paints onto a go-chart renderer. Errors are sticky and
// reported by Encode.
type ChartSurface struct {
	format   Format
	provider chart.RendererProvider
	r        chart.Renderer
	err      error
}

// NewChartSurface returns a surface for the requested format. Nothing can be
// drawn until Clear sets the canvas size.
func NewChartSurface(format Format) *ChartSurface {
	provider := chart.SVG
	if format == FormatPNG {
		provider = chart.PNG
	}
	return &ChartSurface{format: format, provider: provider}
}

// Format returns the output encoding.
func (s *ChartSurface) Format() Format {
	return s.format
}

// MaxRasterPixels bounds the area of a PNG canvas.
const MaxRasterPixels = 64 << 20

// Clear starts a new canvas of the given size, painted white. A PNG canvas
// larger than MaxRasterPixels fails and is reported by Encode.
func (s *ChartSurface) Clear(width, height float64) {
	w, h := px(width), px(height)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if s.format == FormatPNG && float64(w)*float64(h) > MaxRasterPixels {
		s.r = nil
		s.err = fmt.Errorf("png canvas %dx%d exceeds %d pixels", w, h, MaxRasterPixels)
		return
	}
	r, err := s.provider(w, h)
	if err != nil {
		s.err = fmt.Errorf("create %s renderer: %w", s.format, err)
		return
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		s.err = fmt.Errorf("load default font: %w", err)
		return
	}
	r.SetFont(font)
	s.r = r
	s.err = nil
	s.DrawShape(Rect(0, 0, float64(w), float64(h)), Style{Fill: White})
}

// DrawPath strokes or fills a polyline; fewer than two points draw nothing.
func (s *ChartSurface) DrawPath(points []Point, style Style) {
	if !s.ready() || len(points) < 2 {
		return
	}
	s.r.ResetStyle()
	s.applyStyle(style)
	s.r.MoveTo(px(points[0].X), px(points[0].Y))
	for _, p := range points[1:] {
		s.r.LineTo(px(p.X), px(p.Y))
	}
	s.paint(style)
}

// DrawShape draws a rectangle or circle.
func (s *ChartSurface) DrawShape(shape Shape, style Style) {
	if !s.ready() {
		return
	}
	s.r.ResetStyle()
	// The SVG renderer emits circles immediately, so colours go first.
	s.applyStyle(style)
	switch shape.Kind {
	case ShapeCircle:
		s.r.Circle(shape.R, px(shape.X), px(shape.Y))
		if s.format == FormatSVG {
			return
		}
	default:
		x0, y0 := px(shape.X), px(shape.Y)
		x1, y1 := px(shape.X+shape.W), px(shape.Y+shape.H)
		s.r.MoveTo(x0, y0)
		s.r.LineTo(x1, y0)
		s.r.LineTo(x1, y1)
		s.r.LineTo(x0, y1)
		s.r.LineTo(x0, y0)
		s.r.Close()
	}
	s.paint(style)
}

// DrawText writes a label anchored at the given point.
func (s *ChartSurface) DrawText(text string, at Point, style TextStyle) {
	if !s.ready() || text == "" {
		return
	}
	s.r.ResetStyle()
	s.r.SetFontColor(style.Color)
	s.r.SetFontSize(style.Size)
	x := px(at.X)
	switch style.Anchor {
	case AnchorEnd:
		x -= s.r.MeasureText(text).Width()
	case AnchorMiddle:
		x -= s.r.MeasureText(text).Width() / 2
	}
	body := text
	if s.format == FormatSVG {
		body = html.EscapeString(text)
	}
	s.r.Text(body, x, px(at.Y))
}

// Encode writes the rendered image.
func (s *ChartSurface) Encode(w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	if s.r == nil {
		return errors.New("surface was never cleared")
	}
	return s.r.Save(w)
}

func (s *ChartSurface) ready() bool {
	return s.err == nil && s.r != nil
}

func (s *ChartSurface) applyStyle(style Style) {
	if visible(style.Fill) {
		s.r.SetFillColor(style.Fill)
	}
	if visible(style.Stroke) {
		s.r.SetStrokeColor(style.Stroke)
		width := style.StrokeWidth
		if width <= 0 {
			width = 1
		}
		s.r.SetStrokeWidth(width)
	}
}

func (s *ChartSurface) paint(style Style) {
	fill, stroke := visible(style.Fill), visible(style.Stroke)
	switch {
	case fill && stroke:
		s.r.FillStroke()
	case fill:
		s.r.Fill()
	case stroke:
		s.r.Stroke()
	}
}

func px(v float64) int {
	return int(math.Round(v))
}
