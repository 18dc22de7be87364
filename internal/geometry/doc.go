// Package geometry maps between domain space, frame indices, and pixels.
//
// Mapper converts worker positions (origin bottom-left, fixed extent) into
// canvas pixels (origin top-left). LinearScale and BandScale are the small
// continuous and ordinal scales the timeline lays itself out with; Ticks
// picks evenly spaced integer tick values.
package geometry
