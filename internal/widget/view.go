package widget

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lucax88x/clockface/internal/clock"
	"github.com/lucax88x/clockface/internal/clockface"
)

// Timer schedules the next invalidation. redraw.Loop implements it.
type Timer interface {
	Start()
	Arm()
	Stop()
}

type Options struct {
	Style   clockface.Style
	Clock   clock.Clock
	Density float64
	Timer   Timer
	Logger  *slog.Logger
}

// ClockView adapts the renderer to a host toolkit: the host reports size
// changes and asks for frames, the view keeps the style and the layout and
// drives the redraw timer while it is attached and visible.
type ClockView struct {
	logger  *slog.Logger
	clock   clock.Clock
	density float64
	timer   Timer

	mu       sync.Mutex
	style    clockface.Style
	geometry clockface.Geometry
	attached bool
	visible  bool
}

func NewClockView(opts Options) *ClockView {
	if opts.Clock == nil {
		opts.Clock = clock.NewSystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Density <= 0 {
		opts.Density = 1
	}

	return &ClockView{
		logger:  opts.Logger,
		clock:   opts.Clock,
		density: opts.Density,
		timer:   opts.Timer,
		style:   opts.Style,
		visible: true,
	}
}

// OnMeasure resolves the intrinsic square size against the parent specs.
func (v *ClockView) OnMeasure(width, height MeasureSpec) (int, int) {
	desired := DefaultSize(v.density)
	return ResolveSize(desired, width), ResolveSize(desired, height)
}

func (v *ClockView) OnSizeChanged(width, height int) {
	g := clockface.Layout(clockface.Viewport{Width: float64(width), Height: float64(height)})

	v.mu.Lock()
	v.geometry = g
	v.mu.Unlock()

	v.logger.Debug(
		"widget: size changed",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Float64("radius", g.Radius),
	)
}

// OnDraw renders the current time onto surface and re-arms the redraw
// timer. It returns the commands it replayed.
func (v *ClockView) OnDraw(surface clockface.Surface) []clockface.Command {
	v.mu.Lock()
	style, geometry := v.style, v.geometry
	live := v.attached && v.visible
	v.mu.Unlock()

	now := clockface.TimeOf(v.clock.Now())
	cmds := clockface.NewRenderer(geometry, style, surface).Render(now)
	clockface.Replay(surface, cmds)

	if live && v.timer != nil {
		v.timer.Arm()
	}

	return cmds
}

// Attach starts the redraw timer if the view is visible.
func (v *ClockView) Attach() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.attached = true
	v.syncTimerLocked()
}

// Detach stops the redraw timer. The loop does not outlive its host.
func (v *ClockView) Detach() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.attached = false
	v.syncTimerLocked()
}

// SetVisible pauses the redraw timer while the view is hidden.
func (v *ClockView) SetVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.visible = visible
	v.syncTimerLocked()

	v.logger.Debug("widget: visibility changed", slog.Bool("visible", visible))
}

func (v *ClockView) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.visible
}

func (v *ClockView) Style() clockface.Style {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.style
}

func (v *ClockView) SetStyle(style clockface.Style) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.style = style
}

func (v *ClockView) Geometry() clockface.Geometry {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.geometry
}

// SaveState bundles the style with the host's own state.
func (v *ClockView) SaveState(superState []byte) ([]byte, error) {
	return encodeState(v.Style(), superState)
}

// RestoreState replaces the style from a saved bundle and hands back the
// host's own state. Fields that are missing or unreadable fall back to the
// default palette; this never fails.
func (v *ClockView) RestoreState(data []byte) []byte {
	style, superState, err := decodeState(data)
	if err != nil {
		v.logger.WarnContext(context.Background(), "widget: restored with defaults", slog.Any("error", err))
	}

	v.SetStyle(style)

	return superState
}

func (v *ClockView) syncTimerLocked() {
	if v.timer == nil {
		return
	}

	if v.attached && v.visible {
		v.timer.Start()
		return
	}

	v.timer.Stop()
}
