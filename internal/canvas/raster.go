package canvas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/lucax88x/clockface/internal/clockface"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	minCircleSegments = 24
	maxCircleSegments = 720

	// labels are condensed: glyphs narrowed horizontally and pulled
	// together by a fraction of the text size
	labelScaleX        = 0.9
	labelLetterSpacing = -0.15
)

//nolint:gochecknoglobals // parsed once, read-only afterwards
var (
	regularOnce sync.Once
	regular     *sfnt.Font
	regularErr  error
)

func regularFont() (*sfnt.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = sfnt.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Raster draws onto an anti-aliased RGBA image. It is not safe for
// concurrent use.
type Raster struct {
	img *image.RGBA
	// z is reset per primitive and sized to its bounding box
	z   vector.Rasterizer
	buf sfnt.Buffer
}

var _ clockface.Surface = (*Raster)(nil)

func NewRaster(width, height int) *Raster {
	return &Raster{
		img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
	}
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) PNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("canvas: could not encode png. %w", err)
	}
	return nil
}

func (r *Raster) VerticalMetrics(size float64) (float64, float64) {
	if size <= 0 {
		return 0, 0
	}

	f, err := regularFont()
	if err != nil {
		return 0, 0
	}

	m, err := f.Metrics(&r.buf, toFixed(size), font.HintingNone)
	if err != nil {
		return 0, 0
	}

	return fromFixed(m.Ascent), fromFixed(m.Descent)
}

func (r *Raster) FillCircle(cx, cy, radius float64, c clockface.Color) {
	if radius <= 0 {
		return
	}

	var s shape
	circlePath(&s, cx, cy, radius, false)
	r.fill(c, &s)
}

// StrokeCircle fills the ring between radius-width/2 and radius+width/2. The
// inner circle winds the other way so it cuts the hole.
func (r *Raster) StrokeCircle(cx, cy, radius, width float64, c clockface.Color) {
	outer := radius + width/2
	inner := radius - width/2

	if width <= 0 || outer <= 0 {
		return
	}

	var s shape
	circlePath(&s, cx, cy, outer, false)
	if inner > 0 {
		circlePath(&s, cx, cy, inner, true)
	}
	r.fill(c, &s)
}

// Line draws a butt-capped segment.
func (r *Raster) Line(x1, y1, x2, y2, width float64, c clockface.Color) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)

	if width <= 0 || length == 0 {
		return
	}

	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	var s shape
	s.moveTo(point{x1 + nx, y1 + ny})
	s.lineTo(point{x2 + nx, y2 + ny})
	s.lineTo(point{x2 - nx, y2 - ny})
	s.lineTo(point{x1 - nx, y1 - ny})
	r.fill(c, &s)
}

type placedGlyph struct {
	index sfnt.GlyphIndex
	x     float64
}

// Text draws s centered on x. Glyph outlines are scaled by labelScaleX and
// every glyph gets labelLetterSpacing·size of extra advance, split evenly on
// both sides.
func (r *Raster) Text(s string, x, baseline, size float64, c clockface.Color) {
	if s == "" || size <= 0 {
		return
	}

	f, err := regularFont()
	if err != nil {
		return
	}

	ppem := toFixed(size)
	spacing := labelLetterSpacing * size

	var glyphs []placedGlyph
	var prev sfnt.GlyphIndex
	pen := 0.0

	for _, ch := range s {
		index, err := f.GlyphIndex(&r.buf, ch)
		if err != nil {
			continue
		}

		if len(glyphs) > 0 {
			if kern, err := f.Kern(&r.buf, prev, index, ppem, font.HintingNone); err == nil {
				pen += fromFixed(kern) * labelScaleX
			}
		}

		advance, err := f.GlyphAdvance(&r.buf, index, ppem, font.HintingNone)
		if err != nil {
			continue
		}

		glyphs = append(glyphs, placedGlyph{index: index, x: pen + spacing/2})
		pen += fromFixed(advance)*labelScaleX + spacing
		prev = index
	}

	left := x - pen/2

	var path shape
	for _, g := range glyphs {
		segments, err := f.LoadGlyph(&r.buf, g.index, ppem, nil)
		if err != nil {
			continue
		}

		at := func(p fixed.Point26_6) point {
			return point{left + g.x + fromFixed(p.X)*labelScaleX, baseline + fromFixed(p.Y)}
		}

		for _, seg := range segments {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				path.moveTo(at(seg.Args[0]))
			case sfnt.SegmentOpLineTo:
				path.lineTo(at(seg.Args[0]))
			case sfnt.SegmentOpQuadTo:
				path.quadTo(at(seg.Args[0]), at(seg.Args[1]))
			case sfnt.SegmentOpCubeTo:
				path.cubeTo(at(seg.Args[0]), at(seg.Args[1]), at(seg.Args[2]))
			}
		}
	}

	r.fill(c, &path)
}

// fill rasterizes s only over its bounding box clipped to the image.
func (r *Raster) fill(c clockface.Color, s *shape) {
	rect := s.bounds().Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}

	r.z.Reset(rect.Dx(), rect.Dy())
	s.replay(&r.z, rect.Min)
	r.z.Draw(r.img, rect, image.NewUniform(c), image.Point{})
}

func circlePath(s *shape, cx, cy, radius float64, reverse bool) {
	n := int(math.Ceil(2 * math.Pi * radius / 2))
	n = min(max(n, minCircleSegments), maxCircleSegments)

	step := 2 * math.Pi / float64(n)
	if reverse {
		step = -step
	}

	s.moveTo(point{cx + radius, cy})
	for i := 1; i < n; i++ {
		a := float64(i) * step
		s.lineTo(point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)})
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
