package timeline

// Margin is the gap between the container edge and the band area.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Options sizes and tunes the view. Width and Height are the container size
// including margins.
type Options struct {
	Width         float64
	Height        float64
	Margin        Margin
	BandPadding   float64
	MinZoom       float64
	MaxZoom       float64
	ZoomStep      float64
	TooltipWindow int
}

// DefaultOptions returns the stock layout.
func DefaultOptions() Options {
	return Options{
		Width:         1100,
		Height:        300,
		Margin:        Margin{Top: 20, Right: 20, Bottom: 30, Left: 50},
		BandPadding:   0.1,
		MinZoom:       1,
		MaxZoom:       10,
		ZoomStep:      1.2,
		TooltipWindow: 10,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.Margin == (Margin{}) {
		o.Margin = def.Margin
	}
	if o.BandPadding < 0 || o.BandPadding >= 1 {
		o.BandPadding = def.BandPadding
	}
	if o.MinZoom <= 0 {
		o.MinZoom = def.MinZoom
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = def.MaxZoom
	}
	if o.MaxZoom < o.MinZoom {
		o.MaxZoom = o.MinZoom
	}
	if o.ZoomStep <= 1 {
		o.ZoomStep = def.ZoomStep
	}
	if o.TooltipWindow < 0 {
		o.TooltipWindow = 0
	}
	return o
}
