package clockface

import "math"

// Viewport is the pixel area available to the clock.
type Viewport struct {
	Width  float64
	Height float64
}

// Geometry is the layout snapshot derived from a Viewport.
type Geometry struct {
	Radius  float64
	CenterX float64
	CenterY float64
}

// Layout fits the clock inside the viewport. Negative sizes count as zero;
// an empty viewport yields a zero radius and every draw collapses to a point.
func Layout(v Viewport) Geometry {
	w := math.Max(v.Width, 0)
	h := math.Max(v.Height, 0)

	return Geometry{
		Radius:  math.Min(w, h) / 2,
		CenterX: w / 2,
		CenterY: h / 2,
	}
}

// Polar returns the point at distance from the center along angle, in
// drawing space (0 rad points right, angles grow clockwise on screen).
func (g Geometry) Polar(angle, distance float64) (float64, float64) {
	return g.CenterX + distance*math.Cos(angle),
		g.CenterY + distance*math.Sin(angle)
}
