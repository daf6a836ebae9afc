package fifo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"
)

const (
	maxRetries = 3
	retryDelay = time.Second * 2
)

type Reader struct {
	logger *slog.Logger
}

func NewFifoReader(logger *slog.Logger) *Reader {
	return &Reader{
		logger,
	}
}

func (f *Reader) makeSureFifoExists(path string) error {
	stat, err := os.Stat(path)
	if err == nil {
		if stat.Mode()&os.ModeNamedPipe != 0 {
			return nil
		}

		f.logger.Warn(
			"fifo: path exists but is not a named pipe, replacing it",
			slog.String("path", path),
		)

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("fifo: could not remove existing file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("fifo: could not stat file: %w", err)
	}

	if err := syscall.Mkfifo(path, 0o640); err != nil {
		return fmt.Errorf("fifo: could not create fifo file: %w", err)
	}

	f.logger.Info("fifo: created fifo file", slog.String("path", path))

	return nil
}

func (f *Reader) Start(path string) error {
	if err := f.makeSureFifoExists(path); err != nil {
		return fmt.Errorf("fifo: error creating file: %w", err)
	}
	return nil
}

// Listen sends every non-empty line written to path until ctx is done.
// Failed attempts are retried a few times before giving up.
func (f *Reader) Listen(
	ctx context.Context,
	path string,
	ch chan<- string,
) error {
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := f.listenAttempt(ctx, path, ch)

		if err == nil || ctx.Err() != nil {
			return nil
		}

		f.logger.ErrorContext(ctx, "fifo: listen attempt failed",
			slog.Any("error", err),
			slog.Int("attempt", attempt),
			slog.Int("maxRetries", maxRetries))

		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(retryDelay):
			if err := f.makeSureFifoExists(path); err != nil {
				f.logger.ErrorContext(ctx, "fifo: failed to recreate fifo", slog.Any("error", err))
			}
		}
	}

	return fmt.Errorf("fifo: gave up after %d attempts", maxRetries)
}

func (f *Reader) listenAttempt(ctx context.Context, path string, ch chan<- string) error {
	// read-write keeps a writer open, so the reader never sees EOF between
	// clients and open does not block
	file, err := os.OpenFile(path, os.O_RDWR, os.ModeNamedPipe)
	if err != nil {
		return fmt.Errorf("fifo: could not open: %w", err)
	}

	stop := context.AfterFunc(ctx, func() {
		file.Close()
	})
	defer func() {
		if stop() {
			file.Close()
		}
	}()

	f.logger.InfoContext(ctx, "fifo: listening", slog.String("path", path))

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		select {
		case ch <- line:
		case <-ctx.Done():
			return nil
		}
	}

	if ctx.Err() != nil {
		return nil
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("fifo: read failed: %w", err)
	}

	return errors.New("fifo: closed unexpectedly")
}
