package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"siteview/internal/timeline"
)

func newPosturesCommand(ctx *commandContext) *cobra.Command {
	var worker string
	var frame int
	var window int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "postures",
		Short: "List a worker's postures around a frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ctx.loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			if worker == "" {
				return fmt.Errorf("--worker is required")
			}
			known := false
			for _, id := range data.WorkerIDs() {
				if id == worker {
					known = true
					break
				}
			}
			if !known {
				return fmt.Errorf("worker %q does not appear in frame 0", worker)
			}
			if frame < 0 || frame >= data.FrameCount() {
				return fmt.Errorf("frame %d out of range [0, %d)", frame, data.FrameCount())
			}

			opts := timeline.DefaultOptions()
			if cfg := ctx.configValue(); cfg != nil {
				opts.TooltipWindow = cfg.Timeline.TooltipWindow
			}
			if cmd.Flags().Changed("window") {
				opts.TooltipWindow = window
			}
			tip := timeline.New(data, opts).Tooltip(worker, frame)
			if jsonOutput {
				return writeJSON(cmd, tip)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Worker %s around frame %d (%s)\n", worker, frame, data.Timestamp(frame))
			if len(tip.Lines) == 0 {
				fmt.Fprintln(out, "No postures recorded in this window")
				return nil
			}
			fmt.Fprintln(out, tip.Text())
			return nil
		},
	}

	cmd.Flags().StringVarP(&worker, "worker", "w", "", "Worker id")
	cmd.Flags().IntVarP(&frame, "frame", "f", 0, "Centre frame index")
	cmd.Flags().IntVar(&window, "window", 10, "Frames listed either side of the centre frame")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}
