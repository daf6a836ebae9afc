package commands

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/lucax88x/clockface/cmd/clockface/console"
	"github.com/lucax88x/clockface/cmd/clockface/runner"
	"github.com/lucax88x/clockface/internal/config"
	"github.com/lucax88x/clockface/internal/control"
	"github.com/lucax88x/clockface/internal/settings"
	"github.com/lucax88x/clockface/internal/tui"
	"github.com/lucax88x/clockface/internal/widget"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func NewWatchCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	level *slog.LevelVar,
) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "live clock in the terminal",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(viper, cmd, map[string]string{
				"fifo":         config.KeyFifo,
				"redraw-delay": config.KeyRedrawDelay,
			})
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return runner.RunCmdE(ctx, logger, viper, console, level, args, runWatchCmd())
		},
	}

	flags := watchCmd.Flags()
	flags.String("fifo", "", "control pipe path, --fifo alone uses "+settings.Clockface.FifoPath)
	flags.Lookup("fifo").NoOptDefVal = settings.Clockface.FifoPath
	flags.Duration("redraw-delay", settings.Clockface.RedrawDelay, "delay between frames")

	watchCmd.SetOut(console.Stdout)
	watchCmd.SetErr(console.Stderr)

	return watchCmd
}

func runWatchCmd() runner.RunE {
	return func(
		ctx context.Context,
		_ *console.Console,
		_ []string,
		di *runner.Clockface,
	) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		host := tui.NewHost(
			ctx,
			di.Logger,
			widget.Options{
				Style:   di.Style,
				Clock:   di.Clock,
				Density: di.Config.Density,
				Logger:  di.Logger,
			},
			clockwork.NewRealClock(),
			di.Config.RedrawDelay,
		)

		handler := control.NewHandler(di.Logger, host.View(), di.Style)
		handler.OnApplied = host.Invalidate

		g, gctx := errgroup.WithContext(ctx)

		startControl(gctx, g, di.Logger, di.Config.Fifo, handler)

		g.Go(func() error {
			defer cancel()
			return host.Run(gctx)
		})

		return g.Wait()
	}
}
