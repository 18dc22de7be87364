// Package config loads, normalizes, and validates siteview configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SITEVIEW_ANNOTATIONS. The Config type centralizes every knob the viewer
// server and CLI need: where the annotation file lives, canvas and timeline
// geometry, playback cadence, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
