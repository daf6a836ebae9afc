package canvas

import (
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"
)

type point struct {
	x, y float64
}

type shapeOp struct {
	op  sfnt.SegmentOp
	pts [3]point
}

// shape is a closed path in image coordinates. Every subpath is closed when
// the next one starts and at the end.
type shape struct {
	ops      []shapeOp
	min, max point
}

func (s *shape) moveTo(p point) {
	s.add(sfnt.SegmentOpMoveTo, p)
}

func (s *shape) lineTo(p point) {
	s.add(sfnt.SegmentOpLineTo, p)
}

func (s *shape) quadTo(c, p point) {
	s.add(sfnt.SegmentOpQuadTo, c, p)
}

func (s *shape) cubeTo(c1, c2, p point) {
	s.add(sfnt.SegmentOpCubeTo, c1, c2, p)
}

func (s *shape) add(op sfnt.SegmentOp, pts ...point) {
	o := shapeOp{op: op}
	for i, p := range pts {
		if len(s.ops) == 0 && i == 0 {
			s.min, s.max = p, p
		}

		s.min = point{math.Min(s.min.x, p.x), math.Min(s.min.y, p.y)}
		s.max = point{math.Max(s.max.x, p.x), math.Max(s.max.y, p.y)}
		o.pts[i] = p
	}

	s.ops = append(s.ops, o)
}

// bounds is the pixel rectangle covering the shape. Curves stay inside the
// hull of their control points, so the hull is enough.
func (s *shape) bounds() image.Rectangle {
	if len(s.ops) == 0 {
		return image.Rectangle{}
	}

	return image.Rect(
		int(math.Floor(s.min.x)), int(math.Floor(s.min.y)),
		int(math.Ceil(s.max.x)), int(math.Ceil(s.max.y)),
	)
}

// replay adds the path to z with origin moved to the top-left of the
// rasterizer.
func (s *shape) replay(z *vector.Rasterizer, origin image.Point) {
	ox, oy := float64(origin.X), float64(origin.Y)
	at := func(p point) (float32, float32) {
		return float32(p.x - ox), float32(p.y - oy)
	}

	open := false
	for _, o := range s.ops {
		switch o.op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			x, y := at(o.pts[0])
			z.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := at(o.pts[0])
			z.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := at(o.pts[0])
			x, y := at(o.pts[1])
			z.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := at(o.pts[0])
			c2x, c2y := at(o.pts[1])
			x, y := at(o.pts[2])
			z.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}

	if open {
		z.ClosePath()
	}
}
