// Package viewer is the application controller.
//
// App owns the explicit application state: the dataset, the playback
// controller, the timeline zoom, the hovered worker, the open tooltip, and
// the viewport sizes. Input arrives as events (toggle, zoom, drag, hover,
// resize). Every state change runs one render entry point that redraws the
// spatial display list and republishes a Snapshot, so subscribers always see
// both views agree on the cursor.
package viewer
