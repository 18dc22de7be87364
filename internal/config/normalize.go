package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlayback()
	c.normalizeSpatial()
	c.normalizeTimeline()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := os.LookupEnv("SITEVIEW_ANNOTATIONS"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Annotations = value
	}
	c.Paths.Annotations = strings.TrimSpace(c.Paths.Annotations)
	if c.Paths.Annotations == "" {
		c.Paths.Annotations = defaultAnnotations
	}
	if !isURL(c.Paths.Annotations) {
		if c.Paths.Annotations, err = expandPath(c.Paths.Annotations); err != nil {
			return fmt.Errorf("paths.annotations: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	if c.Paths.APIToken == "" {
		if value, ok := os.LookupEnv("SITEVIEW_API_TOKEN"); ok {
			c.Paths.APIToken = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizePlayback() {
	if c.Playback.IntervalMS == 0 {
		c.Playback.IntervalMS = defaultIntervalMS
	}
}

func (c *Config) normalizeSpatial() {
	if c.Spatial.Width == 0 {
		c.Spatial.Width = defaultSpatialWidth
	}
	if c.Spatial.Height == 0 {
		c.Spatial.Height = defaultSpatialHeight
	}
	if c.Spatial.DomainWidth == 0 {
		c.Spatial.DomainWidth = defaultDomainWidth
	}
	if c.Spatial.DomainHeight == 0 {
		c.Spatial.DomainHeight = defaultDomainHeight
	}
	if c.Spatial.PointRadius == 0 {
		c.Spatial.PointRadius = defaultPointRadius
	}
	if c.Spatial.HoverRadius == 0 {
		c.Spatial.HoverRadius = defaultHoverRadius
	}
}

func (c *Config) normalizeTimeline() {
	if c.Timeline.Width == 0 {
		c.Timeline.Width = defaultTimelineWidth
	}
	if c.Timeline.Height == 0 {
		c.Timeline.Height = defaultTimelineHeight
	}
	if c.Timeline.MinZoom == 0 {
		c.Timeline.MinZoom = defaultMinZoom
	}
	if c.Timeline.MaxZoom == 0 {
		c.Timeline.MaxZoom = defaultMaxZoom
	}
	if c.Timeline.ZoomStep == 0 {
		c.Timeline.ZoomStep = defaultZoomStep
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
