package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/lucax88x/clockface/internal/redraw"
	"github.com/lucax88x/clockface/internal/widget"
)

// Host owns a Bubble Tea program showing one clock view.
type Host struct {
	logger  *slog.Logger
	view    *widget.ClockView
	loop    *redraw.Loop
	program *tea.Program
}

// NewHost wires opts.Timer to a redraw loop that sends FrameMsg into the
// program. Any timer already set in opts is replaced.
func NewHost(
	ctx context.Context,
	logger *slog.Logger,
	opts widget.Options,
	clock clockwork.Clock,
	delay time.Duration,
	programOpts ...tea.ProgramOption,
) *Host {
	h := &Host{logger: logger}

	h.loop = redraw.New(clock, delay, h.Invalidate)
	opts.Timer = h.loop
	h.view = widget.NewClockView(opts)

	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, programOpts...)
	h.program = tea.NewProgram(NewModel(h.view), programOpts...)

	return h
}

func (h *Host) View() *widget.ClockView {
	return h.view
}

// Invalidate schedules a redraw on the program goroutine.
func (h *Host) Invalidate() {
	h.program.Send(FrameMsg{})
}

// Run blocks until the user quits or ctx is done. The redraw loop only runs
// while the program does.
func (h *Host) Run(ctx context.Context) error {
	h.view.Attach()
	defer h.view.Detach()

	h.logger.InfoContext(ctx, "tui: starting", slog.Duration("delay", h.loop.Delay()))

	_, err := h.program.Run()

	h.logger.InfoContext(ctx, "tui: stopped", slog.Uint64("ticks", h.loop.Ticks()))

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: program failed. %w", err)
	}

	return nil
}
