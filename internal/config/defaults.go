package config

const (
	defaultAnnotations    = "annotations.json"
	defaultStateDir       = "~/.local/share/siteview"
	defaultAPIBind        = "127.0.0.1:7488"
	defaultIntervalMS     = 100
	defaultSpatialWidth   = 1100
	defaultSpatialHeight  = 500
	defaultDomainWidth    = 2200
	defaultDomainHeight   = 1000
	defaultPointRadius    = 5
	defaultHoverRadius    = 10
	defaultTimelineWidth  = 1100
	defaultTimelineHeight = 300
	defaultMarginTop      = 20
	defaultMarginRight    = 20
	defaultMarginBottom   = 30
	defaultMarginLeft     = 50
	defaultBandPadding    = 0.1
	defaultMinZoom        = 1
	defaultMaxZoom        = 10
	defaultZoomStep       = 1.2
	defaultTooltipWindow  = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Annotations: defaultAnnotations,
			StateDir:    defaultStateDir,
			APIBind:     defaultAPIBind,
		},
		Playback: Playback{
			IntervalMS: defaultIntervalMS,
			Autoplay:   true,
		},
		Spatial: Spatial{
			Width:        defaultSpatialWidth,
			Height:       defaultSpatialHeight,
			DomainWidth:  defaultDomainWidth,
			DomainHeight: defaultDomainHeight,
			PointRadius:  defaultPointRadius,
			HoverRadius:  defaultHoverRadius,
		},
		Timeline: Timeline{
			Width:         defaultTimelineWidth,
			Height:        defaultTimelineHeight,
			MarginTop:     defaultMarginTop,
			MarginRight:   defaultMarginRight,
			MarginBottom:  defaultMarginBottom,
			MarginLeft:    defaultMarginLeft,
			BandPadding:   defaultBandPadding,
			MinZoom:       defaultMinZoom,
			MaxZoom:       defaultMaxZoom,
			ZoomStep:      defaultZoomStep,
			TooltipWindow: defaultTooltipWindow,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
