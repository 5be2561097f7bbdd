// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/scheduler.go
// Summary: Frame tick abstraction and callback coalescing.
// Usage: Resize and drag geometry work is throttled to one execution per
// tick, always with the most recent arguments, and is cancellable so a stale
// write cannot land after the owning gesture ends.

package dock

import (
	"sync"
	"time"
)

// FrameScheduler abstracts the display refresh tick so core logic stays
// testable without a rendering surface.
type FrameScheduler interface {
	// Schedule runs fn on the next tick. The returned cancel function stops
	// the callback if it has not run yet; calling it afterwards is a no-op.
	Schedule(fn func()) (cancel func())
}

// coalescer collapses bursts of calls into at most one execution per tick,
// keeping only the newest callback. The dirty/scheduled flag pair is the
// whole state machine.
type coalescer struct {
	mu        sync.Mutex
	sched     FrameScheduler
	latest    func()
	scheduled bool
	cancel    func()
}

func newCoalescer(s FrameScheduler) *coalescer {
	return &coalescer{sched: s}
}

// Call records fn as the pending work, scheduling a tick if none is pending.
// Callbacks superseded before the tick fires are discarded.
func (c *coalescer) Call(fn func()) {
	c.mu.Lock()
	c.latest = fn
	if c.scheduled {
		c.mu.Unlock()
		return
	}
	c.scheduled = true
	c.mu.Unlock()
	cancel := c.sched.Schedule(c.run)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
}

func (c *coalescer) run() {
	c.mu.Lock()
	fn := c.latest
	c.latest = nil
	c.scheduled = false
	c.cancel = nil // this tick's cancel is spent
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Cancel drops any pending callback. With nothing scheduled it does nothing,
// so a cancel arriving after the tick already fired cannot touch the
// scheduler.
func (c *coalescer) Cancel() {
	c.mu.Lock()
	cancel := c.cancel
	c.latest = nil
	c.scheduled = false
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// schedEntry is one queued callback. Cancel funcs hold the entry itself, not
// a queue position, so a cancel that fires after its callback ran can never
// hit work a later client queued.
type schedEntry struct {
	fn func()
}

// ManualScheduler is a deterministic scheduler for tests and synchronous
// hosts: callbacks queue until Tick is called.
type ManualScheduler struct {
	queue []*schedEntry
}

// Schedule queues fn for the next Tick.
func (s *ManualScheduler) Schedule(fn func()) (cancel func()) {
	e := &schedEntry{fn: fn}
	s.queue = append(s.queue, e)
	return func() { e.fn = nil }
}

// Tick runs everything queued so far. Callbacks scheduled during the tick
// wait for the next one.
func (s *ManualScheduler) Tick() {
	pending := s.queue
	s.queue = nil
	for _, e := range pending {
		if e.fn != nil {
			e.fn()
		}
	}
}

// Pending reports how many callbacks wait for the next tick.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, e := range s.queue {
		if e.fn != nil {
			n++
		}
	}
	return n
}

// TickScheduler drives callbacks from a wall-clock ticker, one batch per
// interval. Used by interactive hosts as the display-refresh stand-in.
type TickScheduler struct {
	mu    sync.Mutex
	queue []*schedEntry
	stop  chan struct{}
	once  sync.Once
}

// NewTickScheduler starts a scheduler firing every interval.
func NewTickScheduler(interval time.Duration) *TickScheduler {
	s := &TickScheduler{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				pending := s.queue
				s.queue = nil
				s.mu.Unlock()
				for _, e := range pending {
					s.mu.Lock()
					fn := e.fn
					s.mu.Unlock()
					if fn != nil {
						fn()
					}
				}
			}
		}
	}()
	return s
}

// Schedule queues fn for the next ticker fire.
func (s *TickScheduler) Schedule(fn func()) (cancel func()) {
	e := &schedEntry{fn: fn}
	s.mu.Lock()
	s.queue = append(s.queue, e)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		e.fn = nil
		s.mu.Unlock()
	}
}

// Close stops the ticker goroutine. Pending callbacks are dropped.
func (s *TickScheduler) Close() {
	s.once.Do(func() { close(s.stop) })
}
