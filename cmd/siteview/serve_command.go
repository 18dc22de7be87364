package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"siteview/internal/annotation"
	"siteview/internal/fileutil"
	"siteview/internal/logging"
	"siteview/internal/server"
	"siteview/internal/viewer"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string
	var noAutoplay bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			lock := flock.New(cfg.LockPath())
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return errors.New("another siteview server is already running")
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release server lock", logging.Error(err))
				}
			}()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			source := ctx.annotationSource()
			data, err := ctx.loadDataset(signalCtx)
			if err != nil {
				var loadErr *annotation.LoadError
				if errors.As(err, &loadErr) {
					logger.Error("annotation load failed",
						logging.String(logging.FieldErrorKind, loadErr.ErrorKind()),
						logging.String(logging.FieldSource, source),
						logging.Error(loadErr.Err),
					)
				}
				return err
			}
			if unknown := data.UnknownActivities(); len(unknown) > 0 {
				codes := make([]string, len(unknown))
				for i, code := range unknown {
					codes[i] = string(code)
				}
				logger.Warn("annotations use unknown activity codes",
					logging.String("codes", strings.Join(codes, ",")),
				)
			}
			logger.Info("annotations loaded",
				logging.String(logging.FieldSource, source),
				logging.Int("frames", data.FrameCount()),
				logging.Int("workers", len(data.WorkerIDs())),
			)

			app := viewer.New(data, viewer.OptionsFromConfig(cfg, logger))
			defer app.Close()

			address := cfg.Paths.APIBind
			if strings.TrimSpace(bind) != "" {
				address = bind
			}
			srv := server.New(app, server.Options{
				Bind:   address,
				Token:  cfg.Paths.APIToken,
				Logger: logger,
			})
			if err := srv.Start(signalCtx); err != nil {
				return err
			}
			if err := writePIDFile(cfg.PIDPath()); err != nil {
				logger.Warn("failed to write pid file", logging.Error(err))
			}
			defer os.Remove(cfg.PIDPath())

			if cfg.Playback.Autoplay && !noAutoplay {
				app.Play()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Serving %d frames at http://%s/\n", data.FrameCount(), srv.Addr())
			fmt.Fprintf(out, "Playback: %s\n", titleCase(app.Snapshot().State))

			<-signalCtx.Done()
			logger.Info("siteview shutting down")
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides paths.api_bind)")
	cmd.Flags().BoolVar(&noAutoplay, "no-autoplay", false, "Start with playback stopped")
	return cmd
}

func writePIDFile(path string) error {
	return fileutil.WriteFileAtomic(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644)
}
