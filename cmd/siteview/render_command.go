package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"siteview/internal/fileutil"
	"siteview/internal/logging"
	"siteview/internal/render"
	"siteview/internal/viewer"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var view string
	var frame int
	var formatFlag string
	var zoom float64
	var outPath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame of a view as SVG or PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(formatFlag, outPath)
			if err != nil {
				return err
			}
			data, err := ctx.loadDataset(cmd.Context())
			if err != nil {
				return err
			}

			app := viewer.New(data, viewer.OptionsFromConfig(ctx.configValue(), logging.NewNop()))
			defer app.Close()
			cursor := app.SeekFrame(frame)
			if zoom > 0 {
				app.Zoom(zoom, 0)
			}

			surface := render.NewChartSurface(format)
			switch strings.ToLower(strings.TrimSpace(view)) {
			case "spatial":
				app.RenderSpatial(surface)
			case "timeline":
				app.RenderTimeline(surface)
			case "legend":
				app.RenderLegend(surface)
			default:
				return fmt.Errorf("unknown view %q (want spatial, timeline, or legend)", view)
			}

			if outPath == "" || outPath == "-" {
				if err := surface.Encode(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("render %s: %w", view, err)
				}
				return nil
			}
			if err := fileutil.WriteAtomic(outPath, 0o644, surface.Encode); err != nil {
				return fmt.Errorf("render %s to %s: %w", view, outPath, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s view at frame %d (%s) to %s\n",
				view, cursor, data.Timestamp(cursor), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", "spatial", "View to render: spatial, timeline, or legend")
	cmd.Flags().IntVarP(&frame, "frame", "f", 0, "Frame index (clamped to the recording)")
	cmd.Flags().StringVar(&formatFlag, "format", "", "Image format: svg or png (default from --out extension, else svg)")
	cmd.Flags().Float64Var(&zoom, "zoom", 0, "Timeline zoom factor")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func resolveFormat(flag, outPath string) (render.Format, error) {
	if strings.TrimSpace(flag) != "" {
		return render.ParseFormat(strings.ToLower(strings.TrimSpace(flag)))
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(outPath)), "."); ext != "" {
		return render.ParseFormat(ext)
	}
	return render.FormatSVG, nil
}
