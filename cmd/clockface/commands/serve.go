package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/lucax88x/clockface/cmd/clockface/console"
	"github.com/lucax88x/clockface/cmd/clockface/runner"
	"github.com/lucax88x/clockface/internal/config"
	"github.com/lucax88x/clockface/internal/control"
	"github.com/lucax88x/clockface/internal/server"
	"github.com/lucax88x/clockface/internal/settings"
	"github.com/lucax88x/clockface/internal/widget"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func NewServeCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	level *slog.LevelVar,
) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve clock frames over http",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(viper, cmd, map[string]string{
				"addr":     config.KeyHTTPAddr,
				"fifo":     config.KeyFifo,
				"pid-file": config.KeyPidFile,
				"density":  config.KeyDensity,
			})
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return runner.RunCmdE(ctx, logger, viper, console, level, args, runServeCmd())
		},
	}

	flags := serveCmd.Flags()
	flags.String("addr", settings.Clockface.Server.Addr, "listen address")
	flags.String("fifo", "", "control pipe path, --fifo alone uses "+settings.Clockface.FifoPath)
	flags.Lookup("fifo").NoOptDefVal = settings.Clockface.FifoPath
	flags.String("pid-file", settings.Clockface.PidFilePath, "pid file, empty to skip")
	flags.Float64("density", settings.Clockface.Density, "pixels per dp for the default frame size")

	serveCmd.SetOut(console.Stdout)
	serveCmd.SetErr(console.Stderr)

	return serveCmd
}

func runServeCmd() runner.RunE {
	return func(
		ctx context.Context,
		_ *console.Console,
		_ []string,
		di *runner.Clockface,
	) error {
		cfg := di.Config

		if cfg.PidFile != "" {
			if err := runner.CreatePidFile(cfg.PidFile); err != nil {
				return err
			}

			defer func() {
				if err := runner.RemovePidFile(cfg.PidFile); err != nil {
					di.Logger.ErrorContext(ctx, "serve: could not remove pid file", slog.Any("error", err))
				}
			}()
		}

		// the view is never attached: the server renders per request and
		// only reads the style and visibility the control pipe keeps current
		view := widget.NewClockView(widget.Options{
			Style:   di.Style,
			Clock:   di.Clock,
			Density: cfg.Density,
			Logger:  di.Logger,
		})

		srv, err := server.NewServer(di.Logger, di.Clock, view, server.Options{
			Addr:         cfg.HTTP.Addr,
			Density:      cfg.Density,
			CacheSize:    cfg.HTTP.CacheSize,
			MaxDimension: cfg.HTTP.MaxDimension,
		})
		if err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)

		startControl(gctx, g, di.Logger, cfg.Fifo, control.NewHandler(di.Logger, view, di.Style))

		g.Go(srv.Start)

		g.Go(func() error {
			<-gctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		})

		err = g.Wait()

		di.Logger.InfoContext(ctx, "serve: shutdown complete")

		return err
	}
}
