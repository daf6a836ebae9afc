package runner

import (
	"context"
	"log/slog"

	"github.com/lucax88x/clockface/cmd/clockface/console"
	"github.com/lucax88x/clockface/internal/clock"
	"github.com/lucax88x/clockface/internal/clockface"
	"github.com/lucax88x/clockface/internal/config"
	"github.com/lucax88x/clockface/internal/setup"
	"github.com/spf13/viper"
)

// Clockface holds what every command needs once configuration is loaded.
type Clockface struct {
	Logger *slog.Logger
	Config *config.Cfg
	Style  clockface.Style
	Clock  clock.Clock
}

type RunE func(
	ctx context.Context,
	console *console.Console,
	args []string,
	di *Clockface,
) error

func RunCmdE(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	level *slog.LevelVar,
	args []string,
	run RunE,
) error {
	cfg, err := config.Load(viper)

	if err != nil {
		return err
	}

	level.Set(setup.ParseLevel(cfg.LogLevel))

	style, err := cfg.ClockStyle()

	if err != nil {
		logger.WarnContext(ctx, "runner: some style colors were ignored", slog.Any("error", err))
	}

	logger.DebugContext(
		ctx,
		"runner: config loaded",
		slog.String("config", viper.ConfigFileUsed()),
		slog.String("style", style.Fingerprint()),
		slog.Float64("density", cfg.Density),
	)

	return run(ctx, console, args, &Clockface{
		Logger: logger,
		Config: cfg,
		Style:  style,
		Clock:  clock.NewSystemClock(),
	})
}
