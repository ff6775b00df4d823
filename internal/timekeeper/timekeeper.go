// Package timekeeper provides the two session timers: a count-up
// stopwatch for elapsed training time and a countdown rest timer.
//
// Both derive their displayed value from an absolute start timestamp at
// read time instead of accumulating ticks, so a process that was
// suspended (backgrounded tab, sleeping laptop) reads the correct value
// on the very next poll. Poll cadence is up to the caller; nothing here
// schedules callbacks.
package timekeeper

import (
	"fmt"
	"time"
)

// RestOptions are the selectable rest durations.
var RestOptions = []time.Duration{
	30 * time.Second,
	60 * time.Second,
	90 * time.Second,
	120 * time.Second,
	180 * time.Second,
	300 * time.Second,
}

// DefaultRest is the rest duration used until the user picks another.
const DefaultRest = 90 * time.Second

// Stopwatch counts up from zero. Pausing banks the elapsed time so a
// later Start continues from where it stopped.
type Stopwatch struct {
	now       func() time.Time
	startedAt time.Time
	banked    time.Duration
	running   bool
}

// NewStopwatch creates a stopped stopwatch at zero.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// Start begins (or resumes) counting. No-op while already running.
func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.startedAt = s.now()
	s.running = true
}

// Pause stops counting and banks the elapsed time.
func (s *Stopwatch) Pause() {
	if !s.running {
		return
	}
	s.banked += s.now().Sub(s.startedAt)
	s.running = false
}

// Reset stops the stopwatch and returns it to zero.
func (s *Stopwatch) Reset() {
	s.banked = 0
	s.running = false
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool { return s.running }

// Elapsed recomputes the total elapsed time from the start timestamp.
func (s *Stopwatch) Elapsed() time.Duration {
	if !s.running {
		return s.banked
	}
	return s.banked + s.now().Sub(s.startedAt)
}

// RestTimer counts down from a configured duration and fires a one-shot
// callback when it reaches zero. It never goes negative and never
// restarts on its own.
type RestTimer struct {
	now       func() time.Time
	duration  time.Duration
	startedAt time.Time
	banked    time.Duration // time already consumed before the last pause
	running   bool
	fired     bool
	onExpire  func()
}

// NewRestTimer creates a stopped rest timer at the default duration.
// onExpire may be nil; when set it is called at most once per countdown,
// from whichever read first observes expiry.
func NewRestTimer(onExpire func()) *RestTimer {
	return &RestTimer{
		now:      time.Now,
		duration: DefaultRest,
		onExpire: onExpire,
	}
}

// SetDuration selects a new countdown length from RestOptions and resets
// the timer to it.
func (t *RestTimer) SetDuration(d time.Duration) error {
	valid := false
	for _, opt := range RestOptions {
		if d == opt {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported rest duration %s", d)
	}
	t.duration = d
	t.Reset()
	return nil
}

// Duration returns the configured countdown length.
func (t *RestTimer) Duration() time.Duration { return t.duration }

// Start begins (or resumes) the countdown. Starting an expired timer
// restarts it from the full duration.
func (t *RestTimer) Start() {
	if t.running {
		return
	}
	if t.banked >= t.duration {
		// expired: restart from the top
		t.banked = 0
		t.fired = false
	}
	t.startedAt = t.now()
	t.running = true
}

// Pause freezes the countdown.
func (t *RestTimer) Pause() {
	if !t.running {
		return
	}
	t.banked += t.now().Sub(t.startedAt)
	t.running = false
}

// Reset stops the countdown and restores the full duration.
func (t *RestTimer) Reset() {
	t.banked = 0
	t.running = false
	t.fired = false
}

// Running reports whether the countdown is active.
func (t *RestTimer) Running() bool { return t.running }

// Remaining recomputes the time left from the start timestamp, clamped
// at zero. Crossing zero stops the timer and fires the expiry callback
// exactly once, even if the process slept through the deadline.
func (t *RestTimer) Remaining() time.Duration {
	consumed := t.banked
	if t.running {
		consumed += t.now().Sub(t.startedAt)
	}
	if consumed < t.duration {
		return t.duration - consumed
	}

	if t.running {
		t.banked = t.duration
		t.running = false
	}
	if !t.fired {
		t.fired = true
		if t.onExpire != nil {
			t.onExpire()
		}
	}
	return 0
}
