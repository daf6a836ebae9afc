package main

import (
	"log/slog"
	"os"

	"github.com/lucax88x/clockface/cmd/clockface/commands"
	"github.com/lucax88x/clockface/cmd/clockface/console"
	"github.com/lucax88x/clockface/internal/setup"
	"github.com/spf13/viper"
)

func cli(viper *viper.Viper, console *console.Console, level *slog.LevelVar) setup.ProgramExecutor {
	return commands.NewExecutor(viper, console, level)
}

func main() {
	result := setup.Run(cli)

	if result == setup.NotOk {
		os.Exit(1)
	}
}
