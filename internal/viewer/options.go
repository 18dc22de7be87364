package viewer

import (
	"log/slog"
	"time"

	"siteview/internal/config"
	"siteview/internal/geometry"
	"siteview/internal/playback"
	"siteview/internal/spatial"
	"siteview/internal/timeline"
)

// Options configures an App.
type Options struct {
	SpatialWidth  float64
	SpatialHeight float64
	Spatial       spatial.Options
	Timeline      timeline.Options
	Interval      time.Duration
	Scheduler     playback.Scheduler
	Logger        *slog.Logger
}

// OptionsFromConfig maps the configuration sections onto view options.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		SpatialWidth:  float64(cfg.Spatial.Width),
		SpatialHeight: float64(cfg.Spatial.Height),
		Spatial: spatial.Options{
			Mapper:      geometry.NewMapper(cfg.Spatial.DomainWidth, cfg.Spatial.DomainHeight),
			PointRadius: cfg.Spatial.PointRadius,
			HoverRadius: cfg.Spatial.HoverRadius,
		},
		Timeline: timeline.Options{
			Width:  float64(cfg.Timeline.Width),
			Height: float64(cfg.Timeline.Height),
			Margin: timeline.Margin{
				Top:    float64(cfg.Timeline.MarginTop),
				Right:  float64(cfg.Timeline.MarginRight),
				Bottom: float64(cfg.Timeline.MarginBottom),
				Left:   float64(cfg.Timeline.MarginLeft),
			},
			BandPadding:   cfg.Timeline.BandPadding,
			MinZoom:       cfg.Timeline.MinZoom,
			MaxZoom:       cfg.Timeline.MaxZoom,
			ZoomStep:      cfg.Timeline.ZoomStep,
			TooltipWindow: cfg.Timeline.TooltipWindow,
		},
		Interval: time.Duration(cfg.Playback.IntervalMS) * time.Millisecond,
		Logger:   logger,
	}
}
