package timekeeper

import (
	"testing"
	"time"
)

// fakeClock steps time manually so suspension can be simulated by a
// single large jump between reads.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// TestStopwatchElapsed verifies elapsed time is derived from the clock,
// including across a simulated suspension where no polls happened.
func TestStopwatchElapsed(t *testing.T) {
	clock := newFakeClock()
	s := NewStopwatch()
	s.now = clock.now

	s.Start()
	clock.advance(3 * time.Second)
	if got := s.Elapsed(); got != 3*time.Second {
		t.Errorf("elapsed = %v, want 3s", got)
	}

	// Suspension: a long gap with zero intermediate reads.
	clock.advance(10 * time.Minute)
	if got := s.Elapsed(); got != 10*time.Minute+3*time.Second {
		t.Errorf("elapsed after suspension = %v, want 10m3s", got)
	}
}

// TestStopwatchPauseResume verifies pausing banks time and resuming
// continues from the banked value.
func TestStopwatchPauseResume(t *testing.T) {
	clock := newFakeClock()
	s := NewStopwatch()
	s.now = clock.now

	s.Start()
	clock.advance(5 * time.Second)
	s.Pause()

	clock.advance(1 * time.Hour) // paused time does not count
	if got := s.Elapsed(); got != 5*time.Second {
		t.Errorf("elapsed while paused = %v, want 5s", got)
	}

	s.Start()
	clock.advance(2 * time.Second)
	if got := s.Elapsed(); got != 7*time.Second {
		t.Errorf("elapsed after resume = %v, want 7s", got)
	}

	s.Reset()
	if got := s.Elapsed(); got != 0 {
		t.Errorf("elapsed after reset = %v, want 0", got)
	}
}

// TestRestTimerCountdown verifies the countdown value is recomputed from
// the start timestamp.
func TestRestTimerCountdown(t *testing.T) {
	clock := newFakeClock()
	rt := NewRestTimer(nil)
	rt.now = clock.now

	if rt.Duration() != 90*time.Second {
		t.Fatalf("default duration = %v, want 90s", rt.Duration())
	}

	rt.Start()
	clock.advance(30 * time.Second)
	if got := rt.Remaining(); got != 60*time.Second {
		t.Errorf("remaining = %v, want 60s", got)
	}
}

// TestRestTimerExpiry verifies the timer clamps at zero, stops, and
// fires the callback exactly once even when the deadline passed during
// a suspension.
func TestRestTimerExpiry(t *testing.T) {
	clock := newFakeClock()
	fired := 0
	rt := NewRestTimer(func() { fired++ })
	rt.now = clock.now

	rt.Start()
	clock.advance(5 * time.Minute) // slept through the whole countdown

	if got := rt.Remaining(); got != 0 {
		t.Errorf("remaining = %v, want 0", got)
	}
	if rt.Running() {
		t.Error("timer still running after expiry")
	}
	if fired != 1 {
		t.Fatalf("expiry fired %d times, want 1", fired)
	}

	// Further reads stay at zero without re-firing.
	clock.advance(time.Minute)
	if got := rt.Remaining(); got != 0 {
		t.Errorf("remaining = %v, want 0", got)
	}
	if fired != 1 {
		t.Errorf("expiry fired %d times after extra reads, want 1", fired)
	}
}

// TestRestTimerRestartAfterExpiry verifies starting an expired timer
// restarts a full countdown with a fresh one-shot callback.
func TestRestTimerRestartAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	fired := 0
	rt := NewRestTimer(func() { fired++ })
	rt.now = clock.now

	rt.Start()
	clock.advance(2 * time.Minute)
	rt.Remaining()

	rt.Start()
	clock.advance(10 * time.Second)
	if got := rt.Remaining(); got != 80*time.Second {
		t.Errorf("remaining after restart = %v, want 80s", got)
	}

	clock.advance(90 * time.Second)
	rt.Remaining()
	if fired != 2 {
		t.Errorf("expiry fired %d times across two countdowns, want 2", fired)
	}
}

// TestRestTimerSetDuration verifies only the fixed option set is
// accepted and that choosing one resets the countdown.
func TestRestTimerSetDuration(t *testing.T) {
	clock := newFakeClock()
	rt := NewRestTimer(nil)
	rt.now = clock.now

	if err := rt.SetDuration(45 * time.Second); err == nil {
		t.Error("45s accepted, want error")
	}

	rt.Start()
	clock.advance(10 * time.Second)
	if err := rt.SetDuration(180 * time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.Running() {
		t.Error("timer running after SetDuration reset")
	}
	rt.Start()
	clock.advance(time.Second)
	if got := rt.Remaining(); got != 179*time.Second {
		t.Errorf("remaining = %v, want 179s", got)
	}
}

// TestRestTimerPause verifies a paused countdown does not consume time.
func TestRestTimerPause(t *testing.T) {
	clock := newFakeClock()
	rt := NewRestTimer(nil)
	rt.now = clock.now

	rt.Start()
	clock.advance(20 * time.Second)
	rt.Pause()
	clock.advance(time.Hour)
	if got := rt.Remaining(); got != 70*time.Second {
		t.Errorf("remaining while paused = %v, want 70s", got)
	}
}
