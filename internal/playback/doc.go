// Package playback owns the current-frame cursor and the autoplay timer.
//
// Controller is a two-state machine (Stopped, Playing). While playing, a
// Scheduler fires Tick at a fixed cadence and the cursor advances modulo the
// frame count. Every cursor or state change is reported to an OnChange
// callback with a monotonically increasing sequence number so consumers can
// discard notifications that arrive out of order.
package playback
