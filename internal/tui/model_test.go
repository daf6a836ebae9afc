package tui_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucax88x/clockface/internal/clock"
	"github.com/lucax88x/clockface/internal/clockface"
	"github.com/lucax88x/clockface/internal/tui"
	"github.com/lucax88x/clockface/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel() (tui.Model, *widget.ClockView) {
	view := widget.NewClockView(widget.Options{
		Style: clockface.DefaultStyle(),
		Clock: clock.NewFixedClock(time.Date(2025, 6, 1, 10, 10, 30, 0, time.UTC)),
	})
	return tui.NewModel(view), view
}

func update(t *testing.T, m tui.Model, msg tea.Msg) (tui.Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(tui.Model)
	require.True(t, ok)

	return model, cmd
}

func TestModel_DrawsOnResizeAndFrame(t *testing.T) {
	m, view := newModel()
	assert.Empty(t, m.View())

	m, _ = update(t, m, tui.FrameMsg{})
	assert.Zero(t, m.Frames(), "nothing to draw before the first size")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Equal(t, 1, m.Frames())
	assert.Len(t, strings.Split(m.View(), "\n"), 20)
	assert.InDelta(t, 20, view.Geometry().Radius, 1e-9)

	m, _ = update(t, m, tui.FrameMsg{})
	assert.Equal(t, 2, m.Frames())
}

func TestModel_Keys(t *testing.T) {
	m, view := newModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, view.Visible())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, view.Visible())

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
