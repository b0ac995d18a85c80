// Package testutil provides shared test harness pieces. The fake clock
// drives the engine's timers deterministically: nothing fires until the
// test advances time.
package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/echoline/echoline/internal/engine"
)

// Clock is a manual clock implementing engine.Clock.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *Clock
	at      time.Time
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.stopped
	t.stopped = true
	return !was
}

// NewClock returns a clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) AfterFunc(d time.Duration, fn func()) engine.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward, firing due timers in schedule order.
// Callbacks run without the clock lock held, so they may schedule further
// timers; those fire too when they fall within the advance window.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	deadline := c.now.Add(d)
	c.mu.Unlock()

	for {
		t := c.nextDue(deadline)
		if t == nil {
			break
		}
		t.fn()
	}

	c.mu.Lock()
	c.now = deadline
	c.mu.Unlock()
}

func (c *Clock) nextDue(deadline time.Time) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].at.Before(c.timers[j].at) })
	for _, t := range c.timers {
		if t.stopped || t.at.After(deadline) {
			continue
		}
		t.stopped = true
		if t.at.After(c.now) {
			c.now = t.at
		}
		return t
	}
	return nil
}
