package terminal

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"siteview/internal/annotation"
	"siteview/internal/render"
)

const (
	defaultWidth = 80
	blockRune    = "█"
)

var symbols = map[annotation.ActivityCode]string{
	annotation.ActivityConcretePouring:        "P",
	annotation.ActivityInspection:             "I",
	annotation.ActivityWalking:                "W",
	annotation.ActivityToolRetrieval:          "T",
	annotation.ActivityMaterialInstallation:   "M",
	annotation.ActivitySiteDocumentation:      "D",
	annotation.ActivityConditionDocumentation: "S",
}

// Options controls strip rendering.
type Options struct {
	// Width is the total line width including the worker label column.
	Width int
	Color bool
	// Cursor marks a frame under the strip; negative hides the marker.
	Cursor int
}

// Width reports the terminal width of f, falling back to 80 columns.
func Width(f *os.File) int {
	if f == nil {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// ColorEnabled reports whether f is a terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Symbol returns the single-letter stand-in for an activity.
func Symbol(code annotation.ActivityCode) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return "?"
}

// Strip renders one row per worker followed by an optional cursor marker and
// a key line.
func Strip(ds *annotation.Dataset, opts Options) string {
	ids := ds.WorkerIDs()
	labelWidth := 0
	for _, id := range ids {
		labelWidth = max(labelWidth, len(id))
	}
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	cols := max(1, min(ds.FrameCount(), width-labelWidth-2))

	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%-*s │", labelWidth, id)
		for c := 0; c < cols; c++ {
			code, ok := dominant(ds, id, bucket(c, cols, ds.FrameCount()))
			b.WriteString(cell(code, ok, opts.Color))
		}
		b.WriteByte('\n')
	}
	if opts.Cursor >= 0 && opts.Cursor < ds.FrameCount() {
		col := opts.Cursor * cols / ds.FrameCount()
		fmt.Fprintf(&b, "%s%s^ %s\n", strings.Repeat(" ", labelWidth+2), strings.Repeat(" ", col), ds.Timestamp(opts.Cursor))
	}
	b.WriteString(key(opts.Color))
	return b.String()
}

func bucket(c, cols, n int) [2]int {
	start := c * n / cols
	end := (c + 1) * n / cols
	if end <= start {
		end = start + 1
	}
	return [2]int{start, end}
}

// dominant returns the most frequent activity of a worker within frames
// [r[0], r[1]); ties go to the earliest seen.
func dominant(ds *annotation.Dataset, id string, r [2]int) (annotation.ActivityCode, bool) {
	counts := map[annotation.ActivityCode]int{}
	var order []annotation.ActivityCode
	for i := r[0]; i < r[1]; i++ {
		state, ok := ds.Worker(i, id)
		if !ok {
			continue
		}
		if counts[state.Activity] == 0 {
			order = append(order, state.Activity)
		}
		counts[state.Activity]++
	}
	if len(order) == 0 {
		return "", false
	}
	best := order[0]
	for _, code := range order[1:] {
		if counts[code] > counts[best] {
			best = code
		}
	}
	return best, true
}

func cell(code annotation.ActivityCode, ok, color bool) string {
	if !ok {
		return " "
	}
	if !color {
		return Symbol(code)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(render.Hex(code.Color()))).Render(blockRune)
}

func key(color bool) string {
	parts := make([]string, 0, len(annotation.Activities()))
	for _, code := range annotation.Activities() {
		parts = append(parts, cell(code, true, color)+" "+code.Description())
	}
	return strings.Join(parts, "  ") + "\n"
}
