package clockface

import (
	"math"
	"strconv"
)

const (
	dotCount    = 60
	hourCount   = 12
	majorDotMod = 5
)

// Renderer turns a layout, a style and a time into draw commands. It holds
// no state between frames.
type Renderer struct {
	geometry Geometry
	style    Style
	metrics  FontMetrics
}

// NewRenderer builds a renderer. A nil metrics centers labels on their
// baseline.
func NewRenderer(geometry Geometry, style Style, metrics FontMetrics) *Renderer {
	if metrics == nil {
		metrics = noMetrics{}
	}

	return &Renderer{
		geometry: geometry,
		style:    style,
		metrics:  metrics,
	}
}

func (r *Renderer) Geometry() Geometry {
	return r.geometry
}

// Render emits the whole frame: base, frame, dots, labels, hands.
func (r *Renderer) Render(t Time) []Command {
	cmds := make([]Command, 0, 2+dotCount+hourCount+4)
	cmds = append(cmds, r.RenderFace()...)
	cmds = append(cmds, r.RenderDots()...)
	cmds = append(cmds, r.RenderHourLabels()...)
	cmds = append(cmds, r.RenderHands(t)...)
	return cmds
}

// RenderFace emits the filled base and the frame ring. The ring is pulled
// in by half its width so the stroke stays inside the bounding circle.
func (r *Renderer) RenderFace() []Command {
	g := r.geometry
	strokeWidth := g.Radius / 12

	return []Command{
		{
			Op:     OpFillCircle,
			Color:  r.style.Base,
			X:      g.CenterX,
			Y:      g.CenterY,
			Radius: g.Radius,
		},
		{
			Op:          OpStrokeCircle,
			Color:       r.style.Frame,
			X:           g.CenterX,
			Y:           g.CenterY,
			Radius:      g.Radius - strokeWidth/2,
			StrokeWidth: strokeWidth,
		},
	}
}

func (r *Renderer) RenderDots() []Command {
	g := r.geometry
	distance := g.Radius * 5 / 6

	cmds := make([]Command, 0, dotCount)
	for i := range dotCount {
		x, y := g.Polar(float64(i)*math.Pi/30, distance)

		dotRadius := g.Radius / 128
		if i%majorDotMod == 0 {
			dotRadius = g.Radius / 96
		}

		cmds = append(cmds, Command{
			Op:     OpFillCircle,
			Color:  r.style.Dots,
			X:      x,
			Y:      y,
			Radius: dotRadius,
		})
	}

	return cmds
}

// RenderHourLabels places "1".."12" so that each glyph's vertical middle,
// not its baseline, sits on the label circle.
func (r *Renderer) RenderHourLabels() []Command {
	g := r.geometry
	distance := g.Radius * 11 / 16
	size := g.Radius * 2 / 7

	ascent, descent := r.metrics.VerticalMetrics(size)
	baselineShift := (ascent - descent) / 2

	cmds := make([]Command, 0, hourCount)
	for hour := 1; hour <= hourCount; hour++ {
		x, y := g.Polar(-math.Pi/2+float64(hour)*math.Pi/6, distance)

		cmds = append(cmds, Command{
			Op:    OpText,
			Color: r.style.Text,
			X:     x,
			Y:     y + baselineShift,
			Size:  size,
			Text:  strconv.Itoa(hour),
		})
	}

	return cmds
}

// RenderHands emits the hour, minute and second hands. The second hand is
// two segments: a thin pointer and a thicker counterweight tail.
func (r *Renderer) RenderHands(t Time) []Command {
	radius := r.geometry.Radius

	hour := DialAngle(t.HourDegrees())
	minute := DialAngle(t.MinuteDegrees())
	second := DialAngle(t.SecondDegrees())

	return []Command{
		r.hand(hour, radius*3/14, radius*7/14, radius/15, r.style.HourArrow),
		r.hand(minute, radius*2/7, radius*5/7, radius/40, r.style.MinuteArrow),
		r.hand(second, radius*1/14, radius*5/7, radius/80, r.style.SecondArrow),
		r.hand(second, radius*2/7, -radius*1/14, radius/50, r.style.SecondArrow),
	}
}

// hand draws a segment along angle from behind the center to ahead of it.
// A negative ahead ends the segment behind the center.
func (r *Renderer) hand(angle, behind, ahead, width float64, c Color) Command {
	g := r.geometry
	x1, y1 := g.Polar(angle, -behind)
	x2, y2 := g.Polar(angle, ahead)

	return Command{
		Op:          OpLine,
		Color:       c,
		X:           x1,
		Y:           y1,
		X2:          x2,
		Y2:          y2,
		StrokeWidth: width,
	}
}
