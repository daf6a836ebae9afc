package clockface_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lucax88x/clockface/internal/clockface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

type fixedMetrics struct {
	ascent  float64
	descent float64
}

func (m fixedMetrics) VerticalMetrics(size float64) (float64, float64) {
	return m.ascent * size, m.descent * size
}

type recorder struct {
	fixedMetrics
	ops []clockface.Op
}

func (r *recorder) FillCircle(_, _, _ float64, _ clockface.Color) {
	r.ops = append(r.ops, clockface.OpFillCircle)
}

func (r *recorder) StrokeCircle(_, _, _, _ float64, _ clockface.Color) {
	r.ops = append(r.ops, clockface.OpStrokeCircle)
}

func (r *recorder) Line(_, _, _, _, _ float64, _ clockface.Color) {
	r.ops = append(r.ops, clockface.OpLine)
}

func (r *recorder) Text(_ string, _, _, _ float64, _ clockface.Color) {
	r.ops = append(r.ops, clockface.OpText)
}

func TestLayout(t *testing.T) {
	testCases := []struct {
		name     string
		viewport clockface.Viewport
		want     clockface.Geometry
	}{
		{
			name:     "square",
			viewport: clockface.Viewport{Width: 240, Height: 240},
			want:     clockface.Geometry{Radius: 120, CenterX: 120, CenterY: 120},
		},
		{
			name:     "landscape",
			viewport: clockface.Viewport{Width: 300, Height: 100},
			want:     clockface.Geometry{Radius: 50, CenterX: 150, CenterY: 50},
		},
		{
			name:     "portrait odd",
			viewport: clockface.Viewport{Width: 101, Height: 400},
			want:     clockface.Geometry{Radius: 50.5, CenterX: 50.5, CenterY: 200},
		},
		{
			name:     "empty",
			viewport: clockface.Viewport{},
			want:     clockface.Geometry{},
		},
		{
			name:     "negative clamps",
			viewport: clockface.Viewport{Width: -10, Height: 20},
			want:     clockface.Geometry{Radius: 0, CenterX: 0, CenterY: 10},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := clockface.Layout(tc.viewport)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Layout() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderFace(t *testing.T) {
	style := clockface.DefaultStyle()
	r := clockface.NewRenderer(clockface.Layout(clockface.Viewport{Width: 240, Height: 240}), style, nil)

	got := r.RenderFace()

	want := []clockface.Command{
		{Op: clockface.OpFillCircle, Color: style.Base, X: 120, Y: 120, Radius: 120},
		{Op: clockface.OpStrokeCircle, Color: style.Frame, X: 120, Y: 120, Radius: 115, StrokeWidth: 10},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderFace() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderDots(t *testing.T) {
	g := clockface.Layout(clockface.Viewport{Width: 192, Height: 192})
	r := clockface.NewRenderer(g, clockface.DefaultStyle(), nil)

	dots := r.RenderDots()
	require.Len(t, dots, 60)

	for i, dot := range dots {
		angle := float64(i) * 6 * math.Pi / 180

		assert.Equal(t, clockface.OpFillCircle, dot.Op)
		assert.InDelta(t, g.CenterX+80*math.Cos(angle), dot.X, epsilon, "dot %d x", i)
		assert.InDelta(t, g.CenterY+80*math.Sin(angle), dot.Y, epsilon, "dot %d y", i)
		assert.InDelta(t, g.Radius*5/6, math.Hypot(dot.X-g.CenterX, dot.Y-g.CenterY), epsilon)

		if i%5 == 0 {
			assert.InDelta(t, 1.0, dot.Radius, epsilon, "major dot %d", i)
		} else {
			assert.InDelta(t, 0.75, dot.Radius, epsilon, "minor dot %d", i)
		}
	}
}

func TestRenderHourLabels(t *testing.T) {
	g := clockface.Layout(clockface.Viewport{Width: 224, Height: 224})
	metrics := fixedMetrics{ascent: 0.75, descent: 0.25}
	r := clockface.NewRenderer(g, clockface.DefaultStyle(), metrics)

	labels := r.RenderHourLabels()
	require.Len(t, labels, 12)

	size := g.Radius * 2 / 7
	shift := (0.75*size - 0.25*size) / 2

	for i, label := range labels {
		hour := i + 1
		angle := -math.Pi/2 + float64(hour)*math.Pi/6

		assert.Equal(t, clockface.OpText, label.Op)
		assert.Equal(t, strconv.Itoa(hour), label.Text)
		assert.InDelta(t, size, label.Size, epsilon)
		assert.InDelta(t, g.CenterX+77*math.Cos(angle), label.X, epsilon)
		assert.InDelta(t, g.CenterY+77*math.Sin(angle)+shift, label.Y, epsilon)
	}

	twelve := labels[11]
	assert.InDelta(t, g.CenterX, twelve.X, epsilon)
	assert.Less(t, twelve.Y, g.CenterY)
}

func TestTimeAngles(t *testing.T) {
	testCases := []struct {
		name   string
		time   clockface.Time
		hour   float64
		minute float64
		second float64
	}{
		{name: "three o'clock", time: clockface.Time{Hour: 3}, hour: 90},
		{name: "half past three", time: clockface.Time{Hour: 3, Minute: 30}, hour: 105, minute: 180},
		{name: "afternoon folds", time: clockface.Time{Hour: 15, Minute: 30}, hour: 105, minute: 180},
		{name: "midnight", time: clockface.Time{Hour: 0}, hour: 0},
		{name: "noon", time: clockface.Time{Hour: 12}, hour: 360},
		{name: "quarter second", time: clockface.Time{Hour: 1, Second: 15}, hour: 30, second: 90},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.hour, tc.time.HourDegrees(), epsilon)
			assert.InDelta(t, tc.minute, tc.time.MinuteDegrees(), epsilon)
			assert.InDelta(t, tc.second, tc.time.SecondDegrees(), epsilon)
		})
	}
}

func TestHour12(t *testing.T) {
	for hour, want := range map[int]int{0: 0, 1: 1, 11: 11, 12: 12, 13: 1, 23: 11} {
		assert.Equal(t, want, clockface.Time{Hour: hour}.Hour12(), "hour %d", hour)
	}
}

func TestRenderHands_Noon(t *testing.T) {
	g := clockface.Layout(clockface.Viewport{Width: 280, Height: 280})
	r := clockface.NewRenderer(g, clockface.DefaultStyle(), nil)

	hands := r.RenderHands(clockface.Time{Hour: 12})
	require.Len(t, hands, 4)

	hour, minute := hands[0], hands[1]

	// both point straight up
	assert.InDelta(t, g.CenterX, hour.X2, epsilon)
	assert.InDelta(t, g.CenterX, minute.X2, epsilon)
	assert.InDelta(t, g.CenterY-70, hour.Y2, epsilon)
	assert.InDelta(t, g.CenterY-100, minute.Y2, epsilon)

	// tails point straight down
	assert.InDelta(t, g.CenterY+30, hour.Y, epsilon)
	assert.InDelta(t, g.CenterY+40, minute.Y, epsilon)

	hourLength := g.CenterY - hour.Y2
	minuteLength := g.CenterY - minute.Y2
	assert.Greater(t, minuteLength, hourLength)
	assert.InDelta(t, 0.7, hourLength/minuteLength, epsilon)

	assert.InDelta(t, g.Radius/15, hour.StrokeWidth, epsilon)
	assert.InDelta(t, g.Radius/40, minute.StrokeWidth, epsilon)
}

func TestRenderHands_SecondHand(t *testing.T) {
	g := clockface.Layout(clockface.Viewport{Width: 280, Height: 280})
	style := clockface.DefaultStyle()
	r := clockface.NewRenderer(g, style, nil)

	hands := r.RenderHands(clockface.Time{Hour: 9, Second: 15})
	pointer, tail := hands[2], hands[3]

	// due east
	assert.InDelta(t, g.CenterX-10, pointer.X, epsilon)
	assert.InDelta(t, g.CenterX+100, pointer.X2, epsilon)
	assert.InDelta(t, g.CenterY, pointer.Y, epsilon)
	assert.InDelta(t, g.CenterY, pointer.Y2, epsilon)
	assert.InDelta(t, g.Radius/80, pointer.StrokeWidth, epsilon)

	// counterweight on the west side, ending where the pointer starts
	assert.InDelta(t, g.CenterX-40, tail.X, epsilon)
	assert.InDelta(t, pointer.X, tail.X2, epsilon)
	assert.InDelta(t, g.Radius/50, tail.StrokeWidth, epsilon)

	assert.Equal(t, style.SecondArrow, pointer.Color)
	assert.Equal(t, style.SecondArrow, tail.Color)
}

func TestRender_Order(t *testing.T) {
	g := clockface.Layout(clockface.Viewport{Width: 100, Height: 100})
	r := clockface.NewRenderer(g, clockface.DefaultStyle(), nil)
	rec := &recorder{}

	cmds := r.Render(clockface.Time{Hour: 10, Minute: 10, Second: 30})
	clockface.Replay(rec, cmds)

	want := []clockface.Op{clockface.OpFillCircle, clockface.OpStrokeCircle}
	for range 60 {
		want = append(want, clockface.OpFillCircle)
	}
	for range 12 {
		want = append(want, clockface.OpText)
	}
	want = append(want, clockface.OpLine, clockface.OpLine, clockface.OpLine, clockface.OpLine)

	if diff := cmp.Diff(want, rec.ops); diff != "" {
		t.Errorf("Replay() order mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_DegenerateViewport(t *testing.T) {
	r := clockface.NewRenderer(clockface.Layout(clockface.Viewport{}), clockface.DefaultStyle(), fixedMetrics{1, 1})

	cmds := r.Render(clockface.Time{Hour: 23, Minute: 59, Second: 59})
	require.Len(t, cmds, 2+60+12+4)

	for _, cmd := range cmds {
		assert.Zero(t, cmd.Radius)
		assert.Zero(t, cmd.StrokeWidth)
		assert.Zero(t, cmd.Size)
		for _, v := range []float64{cmd.X, cmd.Y, cmd.X2, cmd.Y2} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			assert.InDelta(t, 0, v, epsilon)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	g := clockface.Layout(clockface.Viewport{Width: 333, Height: 200})
	tm := clockface.Time{Hour: 7, Minute: 42, Second: 8}

	a := clockface.NewRenderer(g, clockface.DefaultStyle(), nil).Render(tm)
	b := clockface.NewRenderer(g, clockface.DefaultStyle(), nil).Render(tm)

	if diff := cmp.Diff(a, b, cmpopts.EquateApprox(0, epsilon)); diff != "" {
		t.Errorf("Render() not deterministic (-a +b):\n%s", diff)
	}
}
