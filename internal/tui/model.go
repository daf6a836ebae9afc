// Package tui hosts the clock in a terminal through Bubble Tea.
//
// The redraw loop and the control pipe run outside the Bubble Tea event
// loop; both reach the model only through Program.Send, so drawing always
// happens on the program goroutine.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucax88x/clockface/internal/canvas"
	"github.com/lucax88x/clockface/internal/widget"
)

// FrameMsg asks the model to draw a new frame.
type FrameMsg struct{}

type Model struct {
	view   *widget.ClockView
	cols   int
	rows   int
	frame  string
	frames int
}

func NewModel(view *widget.ClockView) Model {
	return Model{view: view}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.view.OnSizeChanged(m.cols, m.rows*2)
		m.draw()

	case FrameMsg:
		m.draw()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.view.SetVisible(!m.view.Visible())
			m.draw()
		}
	}

	return m, nil
}

func (m Model) View() string {
	return m.frame
}

// Frames counts drawn frames.
func (m Model) Frames() int {
	return m.frames
}

func (m *Model) draw() {
	if m.cols <= 0 || m.rows <= 0 {
		return
	}

	surface := canvas.NewTerminal(m.cols, m.rows)
	m.view.OnDraw(surface)
	m.frame = surface.String()
	m.frames++
}
