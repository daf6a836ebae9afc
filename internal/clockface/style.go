package clockface

import (
	"errors"
	"fmt"
	"strings"
)

// Key names a style color as it appears in configuration and saved state.
type Key = string

const (
	KeyHourArrow   Key = "hourArrow"
	KeyMinuteArrow Key = "minuteArrow"
	KeySecondArrow Key = "secondArrow"
	KeyBase        Key = "base"
	KeyText        Key = "text"
	KeyFrame       Key = "frame"
	KeyDots        Key = "dots"
)

//nolint:gochecknoglobals // ok
var Keys = []Key{
	KeyHourArrow,
	KeyMinuteArrow,
	KeySecondArrow,
	KeyBase,
	KeyText,
	KeyFrame,
	KeyDots,
}

// Style holds the seven colors of a clock. It is a value type: every change
// produces a new Style.
type Style struct {
	Base        Color
	Frame       Color
	Dots        Color
	Text        Color
	HourArrow   Color
	MinuteArrow Color
	SecondArrow Color
}

func DefaultStyle() Style {
	return Style{
		Base:        LightGray,
		Frame:       Black,
		Dots:        Black,
		Text:        Black,
		HourArrow:   Black,
		MinuteArrow: Black,
		SecondArrow: Gray,
	}
}

func (s Style) field(key Key) *Color {
	switch key {
	case KeyHourArrow:
		return &s.HourArrow
	case KeyMinuteArrow:
		return &s.MinuteArrow
	case KeySecondArrow:
		return &s.SecondArrow
	case KeyBase:
		return &s.Base
	case KeyText:
		return &s.Text
	case KeyFrame:
		return &s.Frame
	case KeyDots:
		return &s.Dots
	}
	return nil
}

func (s Style) Get(key Key) (Color, bool) {
	f := s.field(canonicalKey(key))
	if f == nil {
		return 0, false
	}
	return *f, true
}

// With returns a copy of s with key set to c. Unknown keys report false.
func (s Style) With(key Key, c Color) (Style, bool) {
	switch canonicalKey(key) {
	case KeyHourArrow:
		s.HourArrow = c
	case KeyMinuteArrow:
		s.MinuteArrow = c
	case KeySecondArrow:
		s.SecondArrow = c
	case KeyBase:
		s.Base = c
	case KeyText:
		s.Text = c
	case KeyFrame:
		s.Frame = c
	case KeyDots:
		s.Dots = c
	default:
		return s, false
	}
	return s, true
}

// Fingerprint is a compact identity of the style, usable as a cache key.
func (s Style) Fingerprint() string {
	var b strings.Builder
	for i, key := range Keys {
		if i > 0 {
			b.WriteByte('-')
		}
		c, _ := s.Get(key)
		fmt.Fprintf(&b, "%08x", uint32(c))
	}
	return b.String()
}

// ParseStyle builds a Style from a key->color mapping. Keys are matched
// case-insensitively. Absent keys and values that fail to parse keep the
// default palette; parse failures are reported together in the error.
func ParseStyle(values map[string]string) (Style, error) {
	style := DefaultStyle()

	var errs []error
	for raw, value := range values {
		key := canonicalKey(raw)
		if _, ok := style.Get(key); !ok {
			errs = append(errs, fmt.Errorf("style: unknown key %q", raw))
			continue
		}

		c, err := ParseColor(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("style: %s: %w", key, err))
			continue
		}

		style, _ = style.With(key, c)
	}

	return style, errors.Join(errs...)
}

func canonicalKey(key string) Key {
	for _, k := range Keys {
		if strings.EqualFold(k, key) {
			return k
		}
	}
	return key
}
