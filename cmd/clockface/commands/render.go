package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lucax88x/clockface/cmd/clockface/console"
	"github.com/lucax88x/clockface/cmd/clockface/runner"
	"github.com/lucax88x/clockface/internal/canvas"
	"github.com/lucax88x/clockface/internal/clock"
	"github.com/lucax88x/clockface/internal/config"
	"github.com/lucax88x/clockface/internal/settings"
	"github.com/lucax88x/clockface/internal/widget"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type renderOptions struct {
	width    int
	height   int
	at       string
	out      string
	stateIn  string
	stateOut string
}

func NewRenderCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	level *slog.LevelVar,
) *cobra.Command {
	var opts renderOptions

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one frame as png",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(viper, cmd, map[string]string{"density": config.KeyDensity})
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return runner.RunCmdE(ctx, logger, viper, console, level, args, runRenderCmd(opts))
		},
	}

	flags := renderCmd.Flags()
	flags.IntVar(&opts.width, "width", 0, "width in pixels, 0 uses the intrinsic size")
	flags.IntVar(&opts.height, "height", 0, "height in pixels, 0 uses the intrinsic size")
	flags.StringVar(&opts.at, "at", "", "draw a fixed time, HH:MM[:SS]")
	flags.StringVarP(&opts.out, "out", "o", "clock.png", "output file, - for stdout")
	flags.StringVar(&opts.stateIn, "state-in", "", "restore style from a saved state file")
	flags.StringVar(&opts.stateOut, "state-out", "", "save style to a state file")
	flags.Float64("density", settings.Clockface.Density, "pixels per dp for the intrinsic size")

	renderCmd.SetOut(console.Stdout)
	renderCmd.SetErr(console.Stderr)

	return renderCmd
}

func runRenderCmd(opts renderOptions) runner.RunE {
	return func(
		ctx context.Context,
		console *console.Console,
		_ []string,
		di *runner.Clockface,
	) error {
		source := di.Clock
		if opts.at != "" {
			at, err := clock.ParseAt(opts.at, source.Now())
			if err != nil {
				return err
			}
			source = clock.NewFixedClock(at)
		}

		view := widget.NewClockView(widget.Options{
			Style:   di.Style,
			Clock:   source,
			Density: di.Config.Density,
			Logger:  di.Logger,
		})

		if opts.stateIn != "" {
			data, err := os.ReadFile(opts.stateIn)
			if err != nil {
				return fmt.Errorf("render: could not read state. %w", err)
			}
			view.RestoreState(data)
		}

		width, height := view.OnMeasure(measureSpec(opts.width), measureSpec(opts.height))
		view.OnSizeChanged(width, height)

		raster := canvas.NewRaster(width, height)

		cmds := view.OnDraw(raster)

		if err := writeOutput(opts.out, console.Stdout, raster.PNG); err != nil {
			return err
		}

		di.Logger.InfoContext(
			ctx,
			"render: frame written",
			slog.String("out", opts.out),
			slog.Int("width", width),
			slog.Int("height", height),
			slog.Int("commands", len(cmds)),
		)

		if opts.stateOut != "" {
			data, err := view.SaveState(nil)
			if err != nil {
				return fmt.Errorf("render: could not save state. %w", err)
			}

			if err := os.WriteFile(opts.stateOut, data, 0o644); err != nil {
				return fmt.Errorf("render: could not write state. %w", err)
			}
		}

		return nil
	}
}

func measureSpec(size int) widget.MeasureSpec {
	if size <= 0 {
		return widget.MeasureSpec{Mode: widget.Unspecified}
	}

	return widget.MeasureSpec{Mode: widget.Exactly, Size: size}
}

func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: could not create %s. %w", path, err)
	}

	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("render: could not encode png. %w", err)
	}

	return file.Close()
}
