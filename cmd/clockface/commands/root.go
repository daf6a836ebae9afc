package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucax88x/clockface/cmd/clockface/console"
	"github.com/lucax88x/clockface/internal/config"
	"github.com/lucax88x/clockface/internal/settings"
	"github.com/lucax88x/clockface/internal/setup"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	level *slog.LevelVar,
) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "clockface",
		Short:         "analog clock face renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.config/clockface/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", settings.Clockface.LogLevel, "debug, info, warn or error")

	//nolint:errcheck // flags are defined just above
	viper.BindPFlag(config.KeyConfigFile, rootCmd.PersistentFlags().Lookup("config"))
	//nolint:errcheck // flags are defined just above
	viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.SetOut(console.Stdout)
	rootCmd.SetErr(console.Stderr)

	rootCmd.AddCommand(
		NewRenderCmd(ctx, logger, viper, console, level),
		NewWatchCmd(ctx, logger, viper, console, level),
		NewServeCmd(ctx, logger, viper, console, level),
	)

	return rootCmd
}

func NewExecutor(
	viper *viper.Viper,
	console *console.Console,
	level *slog.LevelVar,
) setup.ProgramExecutor {
	return func(ctx context.Context, logger *slog.Logger) error {
		return NewRootCmd(ctx, logger, viper, console, level).ExecuteContext(ctx)
	}
}

// bindFlags maps command flags onto config keys. It runs when the command
// does, so commands sharing a key never overwrite each other's binding.
func bindFlags(viper *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("commands: could not bind flag %s. %w", flag, err)
		}
	}

	return nil
}
