package geometry

// Default domain extent of annotation positions.
const (
	DefaultDomainWidth  = 2200.0
	DefaultDomainHeight = 1000.0
)

// Point is a pixel coordinate on a surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Mapper converts domain positions into pixel coordinates. Inputs are not
// clamped; out-of-range positions land outside the canvas.
type Mapper struct {
	DomainWidth  float64
	DomainHeight float64
}

// NewMapper returns a mapper for the given domain extent, falling back to the
// default extent for non-positive values.
func NewMapper(domainWidth, domainHeight float64) Mapper {
	if domainWidth <= 0 {
		domainWidth = DefaultDomainWidth
	}
	if domainHeight <= 0 {
		domainHeight = DefaultDomainHeight
	}
	return Mapper{DomainWidth: domainWidth, DomainHeight: domainHeight}
}

// ToScreenX maps a domain x onto a canvas of the given width.
func (m Mapper) ToScreenX(x, width float64) float64 {
	return x / m.DomainWidth * width
}

// ToScreenY maps a domain y onto a canvas of the given height, inverting the axis.
func (m Mapper) ToScreenY(y, height float64) float64 {
	return height - y/m.DomainHeight*height
}

// FromScreenX inverts ToScreenX.
func (m Mapper) FromScreenX(px, width float64) float64 {
	if width == 0 {
		return 0
	}
	return px / width * m.DomainWidth
}

// FromScreenY inverts ToScreenY.
func (m Mapper) FromScreenY(py, height float64) float64 {
	if height == 0 {
		return 0
	}
	return (height - py) / height * m.DomainHeight
}

// ToScreen maps a domain point onto a canvas of the given size.
func (m Mapper) ToScreen(x, y, width, height float64) Point {
	return Point{X: m.ToScreenX(x, width), Y: m.ToScreenY(y, height)}
}
