package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"siteview/internal/annotation"
)

type workerSummary struct {
	Worker   string         `json:"worker"`
	Frames   int            `json:"frames"`
	Segments int            `json:"segments"`
	Dominant string         `json:"dominant"`
	Counts   map[string]int `json:"counts"`
}

type datasetSummary struct {
	Source            string          `json:"source"`
	Frames            int             `json:"frames"`
	FirstTimestamp    string          `json:"first_timestamp"`
	LastTimestamp     string          `json:"last_timestamp"`
	Gaps              int             `json:"gaps"`
	UnknownActivities []string        `json:"unknown_activities,omitempty"`
	Workers           []workerSummary `json:"workers"`
	Activities        map[string]int  `json:"activities"`
}

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize frames, workers, and activity time",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ctx.loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			summary := summarize(ctx.annotationSource(), data)
			if jsonOutput {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source:  %s\n", summary.Source)
			fmt.Fprintf(out, "Frames:  %d (%s to %s)\n", summary.Frames, summary.FirstTimestamp, summary.LastTimestamp)
			fmt.Fprintf(out, "Workers: %d\n", len(summary.Workers))
			fmt.Fprintf(out, "Gaps:    %d\n", summary.Gaps)
			if len(summary.UnknownActivities) > 0 {
				fmt.Fprintf(out, "Unknown activity codes: %v\n", summary.UnknownActivities)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(activityTable(summary)))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(workerTable(summary)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of tables")
	return cmd
}

func summarize(source string, data *annotation.Dataset) datasetSummary {
	summary := datasetSummary{
		Source:         source,
		Frames:         data.FrameCount(),
		FirstTimestamp: data.Timestamp(0),
		LastTimestamp:  data.Timestamp(data.FrameCount() - 1),
		Gaps:           data.Gaps(),
		Workers:        []workerSummary{},
		Activities:     map[string]int{},
	}
	for _, code := range data.UnknownActivities() {
		summary.UnknownActivities = append(summary.UnknownActivities, string(code))
	}
	for _, id := range data.WorkerIDs() {
		counts := data.ActivityCounts(id)
		ws := workerSummary{
			Worker:   id,
			Segments: len(data.Segments(id)),
			Counts:   make(map[string]int, len(counts)),
		}
		best := 0
		for code, n := range counts {
			ws.Frames += n
			ws.Counts[string(code)] = n
			summary.Activities[string(code)] += n
			if n > best || (n == best && string(code) < ws.Dominant) {
				best = n
				ws.Dominant = string(code)
			}
		}
		summary.Workers = append(summary.Workers, ws)
	}
	return summary
}

// activityCodes lists the known codes in legend order followed by any
// unknown codes present in the summary.
func activityCodes(summary datasetSummary) []string {
	var codes []string
	seen := map[string]bool{}
	for _, code := range annotation.Activities() {
		codes = append(codes, string(code))
		seen[string(code)] = true
	}
	var extra []string
	for code := range summary.Activities {
		if !seen[code] {
			extra = append(extra, code)
		}
	}
	sort.Strings(extra)
	return append(codes, extra...)
}

func activityTable(summary datasetSummary) ([]string, [][]string, []columnAlignment, []string) {
	headers := []string{"Code", "Activity", "Frames", "Share"}
	total := 0
	for _, n := range summary.Activities {
		total += n
	}
	var rows [][]string
	for _, code := range activityCodes(summary) {
		n := summary.Activities[code]
		rows = append(rows, []string{
			code,
			annotation.ActivityCode(code).Description(),
			strconv.Itoa(n),
			share(n, total),
		})
	}
	footer := []string{"", "Total", strconv.Itoa(total), share(total, total)}
	return headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignRight}, footer
}

func workerTable(summary datasetSummary) ([]string, [][]string, []columnAlignment, []string) {
	headers := []string{"Worker", "Frames", "Segments", "Dominant"}
	var rows [][]string
	for _, ws := range summary.Workers {
		dominant := "-"
		if ws.Dominant != "" {
			dominant = fmt.Sprintf("%s (%s)", ws.Dominant, annotation.ActivityCode(ws.Dominant).Description())
		}
		rows = append(rows, []string{ws.Worker, strconv.Itoa(ws.Frames), strconv.Itoa(ws.Segments), dominant})
	}
	return headers, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignLeft}, nil
}

func share(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}
