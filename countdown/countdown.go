// Package countdown implements the time-pressure input timer: a
// single-purpose state machine that drives a visible countdown and forces
// exactly one submission when it expires.
package countdown

import (
	"sync"
	"time"
)

// State is the timer's lifecycle position.
type State int

const (
	Idle State = iota
	Running
	Expired
)

// TickInterval is the granularity the driver advances the timer at.
const TickInterval = 100 * time.Millisecond

// Timer counts a fractional-seconds remainder down to zero. Advancing is
// separated from wall-clock driving so tests stay deterministic.
type Timer struct {
	mu        sync.Mutex
	state     State
	remaining float64
	duration  float64
	onExpire  func()
}

// New returns an idle timer.
func New() *Timer {
	return &Timer{}
}

// Arm starts a countdown of the given duration. Re-arming replaces any
// previous countdown; the old expiry callback will never fire.
func (t *Timer) Arm(seconds int, onExpire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Running
	t.duration = float64(seconds)
	t.remaining = float64(seconds)
	t.onExpire = onExpire
}

// Cancel stops the countdown without side effects.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Idle
	t.remaining = 0
	t.duration = 0
	t.onExpire = nil
}

// Advance moves the countdown forward by dt seconds. When the remainder
// crosses zero the expiry callback fires exactly once and the timer returns
// to Idle; further advances are no-ops until the next Arm.
func (t *Timer) Advance(dt float64) {
	t.mu.Lock()
	if t.state != Running {
		t.mu.Unlock()
		return
	}
	t.remaining -= dt
	if t.remaining > 0 {
		t.mu.Unlock()
		return
	}
	t.remaining = 0
	t.state = Expired
	fire := t.onExpire
	t.onExpire = nil
	t.state = Idle
	t.mu.Unlock()

	// Outside the lock: the callback re-enters the session manager.
	if fire != nil {
		fire()
	}
}

// Snapshot reports the current state and the remaining/total seconds for
// rendering.
func (t *Timer) Snapshot() (State, float64, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.remaining, t.duration
}

// Drive advances the timer from a wall-clock ticker until the returned stop
// function is called.
func Drive(t *Timer, interval time.Duration) (stop func()) {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				t.Advance(interval.Seconds())
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
