package clockface

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 0xAARRGGBB value.
type Color uint32

const (
	Black     Color = 0xFF000000
	Gray      Color = 0xFF808080
	LightGray Color = 0xFFD3D3D3
	White     Color = 0xFFFFFFFF
)

//nolint:gochecknoglobals // ok
var palette = map[string]Color{
	"black":      Black,
	"gray":       Gray,
	"light_gray": LightGray,
	"white":      White,
}

func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// RGBA implements color.Color.
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	return c.NRGBA().RGBA()
}

// Hex drops the alpha channel, "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R(), c.G(), c.B())
}

func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// FromColor converts any color.Color, un-premultiplying alpha.
func FromColor(c color.Color) Color {
	n, _ := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// ParseColor accepts a palette name, "#rrggbb" or "#aarrggbb".
func ParseColor(value string) (Color, error) {
	value = strings.TrimSpace(value)

	if c, ok := palette[strings.ToLower(value)]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(value, "#")
	alpha := uint8(0xFF)

	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[:2], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("color: invalid alpha in %q. %w", value, err)
		}
		alpha = uint8(a)
		hex = hex[2:]
	default:
		return 0, fmt.Errorf("color: unsupported format %q", value)
	}

	rgb, err := colorful.Hex("#" + hex)
	if err != nil {
		return 0, fmt.Errorf("color: could not parse %q. %w", value, err)
	}

	r, g, b := rgb.RGB255()

	return ARGB(alpha, r, g, b), nil
}
