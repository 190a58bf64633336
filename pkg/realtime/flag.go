package realtime

import (
	"sync"
	"time"
)

// Timer is a pending single-shot callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// WallClock schedules on real time.
var WallClock Scheduler = wallScheduler{}

// Flag is a boolean that falls back to false a fixed time after the last
// Trigger. It backs transient confirmations such as "Copied!".
//
// At most one reset is pending at a time. Each Trigger bumps a generation, and
// a reset only applies if its generation is still current, so a callback that
// already started when it was superseded does nothing.
type Flag struct {
	mu       sync.Mutex
	value    bool
	hold     time.Duration
	sched    Scheduler
	pending  Timer
	gen      uint64
	closed   bool
	onChange func(bool)
}

// FlagOption configures a Flag.
type FlagOption func(*Flag)

// WithScheduler replaces the wall clock, mostly for tests.
func WithScheduler(s Scheduler) FlagOption {
	return func(f *Flag) { f.sched = s }
}

// WithOnChange registers a callback for value transitions. It runs without
// the flag's lock held, on the triggering goroutine or the timer goroutine.
func WithOnChange(fn func(bool)) FlagOption {
	return func(f *Flag) { f.onChange = fn }
}

// NewFlag creates a lowered flag that holds for hold after each Trigger.
func NewFlag(hold time.Duration, opts ...FlagOption) *Flag {
	f := &Flag{hold: hold, sched: WallClock}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Trigger raises the flag and restarts its reset countdown.
func (f *Flag) Trigger() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if f.pending != nil {
		f.pending.Stop()
	}
	f.gen++
	gen := f.gen
	raised := !f.value
	f.value = true
	f.pending = f.sched.AfterFunc(f.hold, func() { f.reset(gen) })
	f.mu.Unlock()

	if raised {
		f.notify(true)
	}
}

func (f *Flag) reset(gen uint64) {
	f.mu.Lock()
	if f.closed || gen != f.gen || !f.value {
		f.mu.Unlock()
		return
	}
	f.value = false
	f.pending = nil
	f.mu.Unlock()

	f.notify(false)
}

func (f *Flag) notify(v bool) {
	if f.onChange != nil {
		f.onChange(v)
	}
}

// Value reports whether the flag is raised.
func (f *Flag) Value() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Pending reports whether a reset is scheduled.
func (f *Flag) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending != nil
}

// Close cancels any pending reset. The flag keeps its last value and ignores
// further triggers.
func (f *Flag) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.gen++
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
}
