package widget

import "math"

// MeasureMode says how a parent constrains one dimension.
type MeasureMode int

const (
	Unspecified MeasureMode = iota
	Exactly
	AtMost
)

type MeasureSpec struct {
	Mode MeasureMode
	Size int
}

// DefaultSizeDP is the intrinsic clock size in density-independent units.
const DefaultSizeDP = 240

// ResolveSize reconciles a desired size with a parent's constraint.
func ResolveSize(desired int, spec MeasureSpec) int {
	switch spec.Mode {
	case Exactly:
		return spec.Size
	case AtMost:
		return min(desired, spec.Size)
	default:
		return desired
	}
}

// DefaultSize converts DefaultSizeDP to pixels.
func DefaultSize(density float64) int {
	if density <= 0 {
		density = 1
	}
	return int(math.Floor(DefaultSizeDP * density))
}
