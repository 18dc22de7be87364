// Package legend draws the activity colour key.
package legend
