package legend

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"siteview/internal/annotation"
	"siteview/internal/render"
)

const (
	rowHeight   = 28.0
	swatchSize  = 18.0
	padding     = 10.0
	textGap     = 8.0
	textSize    = 13.0
	minWidth    = 320.0
	swatchInset = (rowHeight - swatchSize) / 2
)

var textColor = drawing.ColorFromHex("333333")

// Entry is one legend row.
type Entry struct {
	Code        annotation.ActivityCode `json:"code"`
	Color       string                  `json:"color"`
	Description string                  `json:"description"`
}

// Entries lists every activity code in legend order.
func Entries() []Entry {
	codes := annotation.Activities()
	out := make([]Entry, 0, len(codes))
	for _, code := range codes {
		out = append(out, Entry{
			Code:        code,
			Color:       render.Hex(code.Color()),
			Description: code.Description(),
		})
	}
	return out
}

// Size returns the surface size Render uses.
func Size() (width, height float64) {
	return minWidth, padding*2 + rowHeight*float64(len(annotation.Activities()))
}

// Render clears the surface and draws one swatch and description per code.
func Render(s render.Surface) {
	w, h := Size()
	s.Clear(w, h)
	for i, code := range annotation.Activities() {
		top := padding + float64(i)*rowHeight
		s.DrawShape(render.Rect(padding, top+swatchInset, swatchSize, swatchSize), render.Style{Fill: code.Color()})
		s.DrawText(code.Description(), render.Point{X: padding + swatchSize + textGap, Y: top + rowHeight/2 + textSize/3},
			render.TextStyle{Color: textColor, Size: textSize})
	}
}
