// Package logging assembles structured slog loggers and formatting helpers used
// across siteview.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers plus a component logger so view,
// playback, and server code tag their lines consistently. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
