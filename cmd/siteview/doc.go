// Package main hosts the siteview CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, resolves the annotation
// source, and hands the dataset to the internal packages: `serve` runs the
// browser viewer, `render` writes one frame as an image, and `summary`,
// `strip`, and `postures` inspect a recording from the terminal.
//
// Keep this package lean. New behaviour belongs in internal packages first and
// is surfaced here through commands or flags.
package main
