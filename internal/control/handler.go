package control

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucax88x/clockface/internal/clockface"
)

// Target is the widget a control message acts on.
type Target interface {
	SetVisible(visible bool)
	Style() clockface.Style
	SetStyle(style clockface.Style)
}

type Handler struct {
	logger   *slog.Logger
	target   Target
	defaults clockface.Style
	// OnApplied runs after every message that changed the target.
	OnApplied func()
}

// NewHandler resets to defaults when it receives a reset message.
func NewHandler(logger *slog.Logger, target Target, defaults clockface.Style) *Handler {
	return &Handler{
		logger:   logger,
		target:   target,
		defaults: defaults,
	}
}

func (h *Handler) Apply(msg *Message) error {
	switch msg.Action {
	case Show:
		h.target.SetVisible(true)
	case Hide:
		h.target.SetVisible(false)
	case Reset:
		h.target.SetStyle(h.defaults)
	case Style:
		c, err := clockface.ParseColor(msg.Color)
		if err != nil {
			return fmt.Errorf("control: %w", err)
		}

		style, ok := h.target.Style().With(msg.Key, c)
		if !ok {
			return fmt.Errorf("control: unknown style key %q", msg.Key)
		}

		h.target.SetStyle(style)
	default:
		return fmt.Errorf("control: unknown action %q", msg.Action)
	}

	if h.OnApplied != nil {
		h.OnApplied()
	}

	return nil
}

// Serve applies every line received on ch until ctx is done or ch closes.
// Bad lines are logged and skipped.
func (h *Handler) Serve(ctx context.Context, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-ch:
			if !ok {
				return
			}

			msg, err := Parse(line)
			if err != nil {
				h.logger.ErrorContext(ctx, "control: could not parse message", slog.Any("error", err))
				continue
			}

			if err := h.Apply(msg); err != nil {
				h.logger.ErrorContext(ctx, "control: could not apply message",
					slog.String("action", msg.Action),
					slog.Any("error", err))
				continue
			}

			h.logger.InfoContext(ctx, "control: applied",
				slog.String("action", msg.Action),
				slog.String("key", msg.Key),
				slog.String("color", msg.Color))
		}
	}
}
