// Package spatial renders worker trajectories and current positions.
//
// The view is a function of the dataset, the cursor, the canvas size, and
// the hovered worker. HitTest resolves a pointer position to the nearest
// worker of the current frame within the hover radius.
package spatial
