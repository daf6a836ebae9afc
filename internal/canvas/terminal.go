package canvas

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucax88x/clockface/internal/clockface"
)

const (
	upperHalfBlock = "▀"
	// pixels below this alpha count as empty cells
	opaqueThreshold = 0x80
)

type label struct {
	col   int
	text  string
	color clockface.Color
}

// Terminal draws into a grid of character cells. Every cell is two pixels
// tall so the clock keeps its aspect ratio on a typical 1:2 terminal font.
type Terminal struct {
	cols   int
	rows   int
	raster *Raster
	labels map[int][]label
}

var _ clockface.Surface = (*Terminal)(nil)

func NewTerminal(cols, rows int) *Terminal {
	cols, rows = max(cols, 0), max(rows, 0)

	return &Terminal{
		cols:   cols,
		rows:   rows,
		raster: NewRaster(cols, rows*2),
		labels: map[int][]label{},
	}
}

// PixelSize is the viewport the clock should be laid out in.
func (t *Terminal) PixelSize() (int, int) {
	return t.cols, t.rows * 2
}

// VerticalMetrics reports a zero-height font: labels are placed as whole
// characters in the cell under their anchor.
func (t *Terminal) VerticalMetrics(float64) (float64, float64) {
	return 0, 0
}

func (t *Terminal) FillCircle(cx, cy, radius float64, c clockface.Color) {
	// keep tick dots visible at terminal resolution
	t.raster.FillCircle(cx, cy, math.Max(radius, 0.5*sign(radius)), c)
}

func (t *Terminal) StrokeCircle(cx, cy, radius, width float64, c clockface.Color) {
	t.raster.StrokeCircle(cx, cy, radius, math.Max(width, sign(width)), c)
}

func (t *Terminal) Line(x1, y1, x2, y2, width float64, c clockface.Color) {
	t.raster.Line(x1, y1, x2, y2, math.Max(width, sign(width)), c)
}

func (t *Terminal) Text(s string, x, baseline, size float64, c clockface.Color) {
	if s == "" || size <= 0 {
		return
	}

	row := int(math.Floor(baseline / 2))
	col := int(math.Round(x - float64(len(s))/2))

	if row < 0 || row >= t.rows {
		return
	}

	t.labels[row] = append(t.labels[row], label{col: col, text: s, color: c})
}

// String renders the grid as styled lines.
func (t *Terminal) String() string {
	img := t.raster.Image()

	var b strings.Builder
	for row := range t.rows {
		if row > 0 {
			b.WriteByte('\n')
		}

		overlay := t.overlay(row)

		for col := range t.cols {
			top := pixel(img, col, row*2)
			bottom := pixel(img, col, row*2+1)

			if ch, ok := overlay[col]; ok {
				b.WriteString(cellStyle(ch.color, bottomOrTop(top, bottom)).Render(string(ch.r)))
				continue
			}

			if top == 0 && bottom == 0 {
				b.WriteByte(' ')
				continue
			}

			b.WriteString(cellStyle(top, bottom).Render(upperHalfBlock))
		}
	}

	return b.String()
}

type overlayRune struct {
	r     rune
	color clockface.Color
}

func (t *Terminal) overlay(row int) map[int]overlayRune {
	out := map[int]overlayRune{}
	for _, l := range t.labels[row] {
		for i, r := range l.text {
			col := l.col + i
			if col >= 0 && col < t.cols {
				out[col] = overlayRune{r: r, color: l.color}
			}
		}
	}
	return out
}

func cellStyle(fg, bg clockface.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if fg != 0 {
		style = style.Foreground(lipgloss.Color(fg.Hex()))
	}
	if bg != 0 {
		style = style.Background(lipgloss.Color(bg.Hex()))
	}
	return style
}

func pixel(img *image.RGBA, x, y int) clockface.Color {
	c := clockface.FromColor(img.RGBAAt(x, y))
	if c.A() < opaqueThreshold {
		return 0
	}
	return c
}

func bottomOrTop(top, bottom clockface.Color) clockface.Color {
	if bottom != 0 {
		return bottom
	}
	return top
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return 0
}
