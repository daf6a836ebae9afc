// Package redraw schedules repeated invalidations of a widget.
//
// A Loop is a one-shot timer that the host re-arms after each completed
// draw, so a slow or paused host never piles up ticks. Stop cancels the
// pending tick and turns further Arm calls into no-ops until Start.
package redraw

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDelay keeps the second hand moving smoothly.
const DefaultDelay = 180 * time.Millisecond

type Loop struct {
	clock  clockwork.Clock
	delay  time.Duration
	onTick func()

	mu      sync.Mutex
	running bool
	pending clockwork.Timer
	// gen identifies the pending timer; a tick from an older one is stale
	gen   uint64
	ticks uint64
}

// New creates a stopped loop. A non-positive delay falls back to
// DefaultDelay.
func New(clock clockwork.Clock, delay time.Duration, onTick func()) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	return &Loop{
		clock:  clock,
		delay:  delay,
		onTick: onTick,
	}
}

// Start marks the loop running and arms the first tick.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.running = true
	l.armLocked()
}

// Arm schedules the next tick if the loop is running and none is pending.
func (l *Loop) Arm() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return
	}
	l.armLocked()
}

func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.running = false
	if l.pending != nil {
		l.pending.Stop()
		l.pending = nil
	}
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.running
}

// Ticks counts delivered ticks.
func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.ticks
}

func (l *Loop) Delay() time.Duration {
	return l.delay
}

func (l *Loop) armLocked() {
	if l.pending != nil {
		return
	}

	l.gen++
	gen := l.gen
	l.pending = l.clock.AfterFunc(l.delay, func() {
		l.fire(gen)
	})
}

func (l *Loop) fire(gen uint64) {
	l.mu.Lock()
	if l.pending == nil || l.gen != gen || !l.running {
		l.mu.Unlock()
		return
	}
	l.pending = nil
	l.ticks++
	l.mu.Unlock()

	if l.onTick != nil {
		l.onTick()
	}
}
