// Package timeline renders one activity band per worker across all frames.
//
// The horizontal scale maps the frame domain [0, N] onto the band width so
// cells of width W/N tile each band. A Transform (scale K, translation TX)
// zooms the horizontal axis only; the vertical band layout never changes.
// FrameAt inverts the zoomed scale for drag-to-seek, CellAt resolves the
// hovered cell, and Tooltip collects the posture window around it.
package timeline
