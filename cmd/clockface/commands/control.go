package commands

import (
	"context"
	"log/slog"

	"github.com/lucax88x/clockface/internal/control"
	"github.com/lucax88x/clockface/internal/fifo"
	"golang.org/x/sync/errgroup"
)

// startControl listens on the control pipe in g. A pipe that cannot be
// created is logged and skipped; the clock keeps running without it.
func startControl(
	ctx context.Context,
	g *errgroup.Group,
	logger *slog.Logger,
	path string,
	handler *control.Handler,
) {
	if path == "" {
		return
	}

	reader := fifo.NewFifoReader(logger)
	if err := reader.Start(path); err != nil {
		logger.ErrorContext(ctx, "control: could not start fifo, continuing without it", slog.Any("error", err))
		return
	}

	lines := make(chan string)

	g.Go(func() error {
		defer close(lines)
		if err := reader.Listen(ctx, path, lines); err != nil {
			logger.ErrorContext(ctx, "control: fifo stopped", slog.Any("error", err))
		}
		return nil
	})

	g.Go(func() error {
		handler.Serve(ctx, lines)
		return nil
	})
}
