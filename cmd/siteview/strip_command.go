package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"siteview/internal/terminal"
)

func newStripCommand(ctx *commandContext) *cobra.Command {
	var width int
	var frame int
	var noColor bool

	cmd := &cobra.Command{
		Use:   "strip",
		Short: "Print the activity timeline as a terminal strip",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ctx.loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			file, _ := out.(*os.File)
			if width <= 0 {
				width = terminal.Width(file)
			}
			fmt.Fprint(out, terminal.Strip(data, terminal.Options{
				Width:  width,
				Color:  !noColor && terminal.ColorEnabled(file),
				Cursor: frame,
			}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Line width (default terminal width)")
	cmd.Flags().IntVarP(&frame, "frame", "f", -1, "Mark a frame under the strip")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Use letters instead of coloured blocks")
	return cmd
}
