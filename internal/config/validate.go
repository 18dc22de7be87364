package config

import (
	"errors"
	"fmt"
)

// maxViewport bounds any configured canvas dimension.
const maxViewport = 4096

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if err := c.validateSpatial(); err != nil {
		return err
	}
	if err := c.validateTimeline(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.IntervalMS <= 0 {
		return errors.New("playback.interval_ms must be positive")
	}
	return nil
}

func (c *Config) validateSpatial() error {
	if c.Spatial.Width <= 0 || c.Spatial.Height <= 0 {
		return fmt.Errorf("spatial.width and spatial.height must be positive (got %dx%d)", c.Spatial.Width, c.Spatial.Height)
	}
	if c.Spatial.Width > maxViewport || c.Spatial.Height > maxViewport {
		return fmt.Errorf("spatial.width and spatial.height must not exceed %d", maxViewport)
	}
	if c.Spatial.DomainWidth <= 0 || c.Spatial.DomainHeight <= 0 {
		return errors.New("spatial.domain_width and spatial.domain_height must be positive")
	}
	if c.Spatial.PointRadius <= 0 {
		return errors.New("spatial.point_radius must be positive")
	}
	if c.Spatial.HoverRadius <= 0 {
		return errors.New("spatial.hover_radius must be positive")
	}
	return nil
}

func (c *Config) validateTimeline() error {
	t := c.Timeline
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("timeline.width and timeline.height must be positive (got %dx%d)", t.Width, t.Height)
	}
	if t.Width > maxViewport || t.Height > maxViewport {
		return fmt.Errorf("timeline.width and timeline.height must not exceed %d", maxViewport)
	}
	if t.MarginTop < 0 || t.MarginRight < 0 || t.MarginBottom < 0 || t.MarginLeft < 0 {
		return errors.New("timeline margins must not be negative")
	}
	if t.Width-t.MarginLeft-t.MarginRight <= 0 {
		return errors.New("timeline.width must exceed margin_left + margin_right")
	}
	if t.Height-t.MarginTop-t.MarginBottom <= 0 {
		return errors.New("timeline.height must exceed margin_top + margin_bottom")
	}
	if t.BandPadding < 0 || t.BandPadding >= 1 {
		return errors.New("timeline.band_padding must be in [0, 1)")
	}
	if t.MinZoom < 1 {
		return errors.New("timeline.min_zoom must be at least 1")
	}
	if t.MaxZoom < t.MinZoom {
		return errors.New("timeline.max_zoom must not be below timeline.min_zoom")
	}
	if t.ZoomStep <= 1 {
		return errors.New("timeline.zoom_step must be greater than 1")
	}
	if t.TooltipWindow < 0 {
		return errors.New("timeline.tooltip_window must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
