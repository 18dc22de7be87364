// Package terminal draws a text rendition of the timeline for the CLI.
//
// Each worker gets one row; frames are bucketed into the available columns
// and each column shows the most frequent activity in its bucket. With
// colour enabled the cells are painted in the activity colour via lipgloss;
// otherwise a one-letter symbol stands in.
package terminal
