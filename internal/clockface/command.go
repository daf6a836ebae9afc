package clockface

// Op identifies a draw primitive.
type Op int

const (
	OpFillCircle Op = iota
	OpStrokeCircle
	OpLine
	OpText
)

func (o Op) String() string {
	switch o {
	case OpFillCircle:
		return "fill_circle"
	case OpStrokeCircle:
		return "stroke_circle"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Command is one draw primitive. Fields not used by Op stay zero:
//   - circles use X, Y, Radius (and StrokeWidth when stroked)
//   - lines go from (X, Y) to (X2, Y2) with StrokeWidth
//   - text is centered horizontally on X with its baseline at Y, Size high
type Command struct {
	Op          Op
	Color       Color
	X           float64
	Y           float64
	X2          float64
	Y2          float64
	Radius      float64
	StrokeWidth float64
	Size        float64
	Text        string
}

// FontMetrics reports the vertical extent of text at a given size. Both
// values are distances from the baseline and are non-negative.
type FontMetrics interface {
	VerticalMetrics(size float64) (ascent, descent float64)
}

// Surface executes draw commands.
type Surface interface {
	FontMetrics
	FillCircle(cx, cy, radius float64, c Color)
	StrokeCircle(cx, cy, radius, width float64, c Color)
	Line(x1, y1, x2, y2, width float64, c Color)
	Text(s string, x, baseline, size float64, c Color)
}

// Replay draws cmds on s in order.
func Replay(s Surface, cmds []Command) {
	for _, cmd := range cmds {
		switch cmd.Op {
		case OpFillCircle:
			s.FillCircle(cmd.X, cmd.Y, cmd.Radius, cmd.Color)
		case OpStrokeCircle:
			s.StrokeCircle(cmd.X, cmd.Y, cmd.Radius, cmd.StrokeWidth, cmd.Color)
		case OpLine:
			s.Line(cmd.X, cmd.Y, cmd.X2, cmd.Y2, cmd.StrokeWidth, cmd.Color)
		case OpText:
			s.Text(cmd.Text, cmd.X, cmd.Y, cmd.Size, cmd.Color)
		}
	}
}

type noMetrics struct{}

func (noMetrics) VerticalMetrics(float64) (float64, float64) { return 0, 0 }
