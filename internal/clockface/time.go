package clockface

import (
	"math"
	"time"
)

// Time is the wall-clock reading a frame is drawn for.
type Time struct {
	Hour   int
	Minute int
	Second int
}

func TimeOf(t time.Time) Time {
	return Time{
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Hour12 folds afternoon hours onto the dial. Midnight stays 0 and noon
// stays 12; both land on the same position.
func (t Time) Hour12() int {
	if t.Hour > 12 {
		return t.Hour - 12
	}
	return t.Hour
}

// HourDegrees is measured clockwise from 12 o'clock and advances with the
// minutes.
func (t Time) HourDegrees() float64 {
	return (float64(t.Hour12()) + float64(t.Minute)/60) * 30
}

func (t Time) MinuteDegrees() float64 {
	return float64(t.Minute) * 6
}

func (t Time) SecondDegrees() float64 {
	return float64(t.Second) * 6
}

// DialAngle converts degrees clockwise from 12 o'clock to radians in drawing
// space, where 0 points to 3 o'clock.
func DialAngle(degrees float64) float64 {
	return degrees*math.Pi/180 - math.Pi/2
}
