package clock

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the wall-clock source sampled once per frame.
type Clock interface {
	Now() time.Time
}

const Time = "15:04:05"
const HoursMinutes = "15:04"

type SystemClock struct{}

func NewSystemClock() Clock {
	return &SystemClock{}
}

func (r *SystemClock) Now() time.Time {
	return time.Now()
}

// NewFixedClock always reports t. It backs a stopped clock face.
func NewFixedClock(t time.Time) Clock {
	return clockwork.NewFakeClockAt(t)
}

// ParseAt reads "15:04:05" or "15:04" and places it on the day of base.
func ParseAt(value string, base time.Time) (time.Time, error) {
	for _, layout := range []string{Time, HoursMinutes} {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}

		return time.Date(
			base.Year(), base.Month(), base.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), 0,
			base.Location(),
		), nil
	}

	return time.Time{}, fmt.Errorf("clock: could not parse time %q, expected HH:MM[:SS]", value)
}
