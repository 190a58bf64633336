package realtime

import (
	"sort"
	"sync"
	"testing"
	"time"
)

// fakeClock fires scheduled callbacks only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

type changeLog struct {
	mu     sync.Mutex
	values []bool
}

func (l *changeLog) record(v bool) {
	l.mu.Lock()
	l.values = append(l.values, v)
	l.mu.Unlock()
}

func (l *changeLog) snapshot() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]bool(nil), l.values...)
}

func TestFlag_TriggerThenReset(t *testing.T) {
	clock := &fakeClock{}
	var log changeLog
	f := NewFlag(2*time.Second, WithScheduler(clock), WithOnChange(log.record))

	if f.Value() {
		t.Fatal("new flag should be lowered")
	}
	f.Trigger()
	if !f.Value() {
		t.Fatal("Trigger should raise the flag immediately")
	}
	clock.Advance(1999 * time.Millisecond)
	if !f.Value() {
		t.Fatal("flag reset before the hold elapsed")
	}
	clock.Advance(time.Millisecond)
	if f.Value() {
		t.Fatal("flag should reset after the hold")
	}
	if f.Pending() {
		t.Error("no reset should be pending after it fired")
	}
	got := log.snapshot()
	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("changes %v, want [true false]", got)
	}
}

func TestFlag_RetriggerCancelsStaleReset(t *testing.T) {
	clock := &fakeClock{}
	var log changeLog
	f := NewFlag(2*time.Second, WithScheduler(clock), WithOnChange(log.record))

	f.Trigger()
	clock.Advance(1500 * time.Millisecond)
	f.Trigger()
	clock.Advance(1000 * time.Millisecond)
	if !f.Value() {
		t.Fatal("first reset fired after re-trigger")
	}
	clock.Advance(1000 * time.Millisecond)
	if f.Value() {
		t.Fatal("second reset did not fire")
	}
	clock.Advance(10 * time.Second)
	got := log.snapshot()
	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("changes %v, want exactly one raise and one reset", got)
	}
}

func TestFlag_StaleCallbackIgnored(t *testing.T) {
	clock := &fakeClock{}
	f := NewFlag(time.Second, WithScheduler(clock))

	f.Trigger()
	stale := clock.timers[0]
	f.Trigger()
	// Simulate the first timer having already started when Stop was called.
	stale.fn()
	if !f.Value() {
		t.Fatal("superseded reset lowered the flag")
	}
	clock.Advance(time.Second)
	if f.Value() {
		t.Fatal("current reset did not lower the flag")
	}
}

func TestFlag_CloseCancelsPendingReset(t *testing.T) {
	clock := &fakeClock{}
	var log changeLog
	f := NewFlag(time.Second, WithScheduler(clock), WithOnChange(log.record))

	f.Trigger()
	f.Close()
	if f.Pending() {
		t.Error("Close should cancel the pending reset")
	}
	clock.Advance(5 * time.Second)
	f.Trigger()
	if got := log.snapshot(); len(got) != 1 {
		t.Errorf("changes after Close %v, want only the initial raise", got)
	}
	f.Close()
}

func TestFlag_WallClock(t *testing.T) {
	done := make(chan bool, 2)
	f := NewFlag(20*time.Millisecond, WithOnChange(func(v bool) { done <- v }))
	f.Trigger()
	if v := <-done; !v {
		t.Fatal("first change should raise")
	}
	select {
	case v := <-done:
		if v {
			t.Fatal("second change should lower")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("flag never reset")
	}
	if f.Value() {
		t.Error("flag still raised")
	}
}
