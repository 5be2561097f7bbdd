// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/scheduler_test.go
// Summary: Exercises the coalescer and the manual scheduler.
// Usage: Executed during `go test` to guard against regressions.

package dock

import (
	"testing"
	"time"
)

func TestCoalescerKeepsNewestCallback(t *testing.T) {
	sched := &ManualScheduler{}
	c := newCoalescer(sched)

	var ran []int
	c.Call(func() { ran = append(ran, 1) })
	c.Call(func() { ran = append(ran, 2) })
	c.Call(func() { ran = append(ran, 3) })

	if sched.Pending() != 1 {
		t.Fatalf("a burst must schedule exactly one tick callback, got %d", sched.Pending())
	}
	sched.Tick()
	if len(ran) != 1 || ran[0] != 3 {
		t.Fatalf("only the newest callback may run, got %v", ran)
	}
}

func TestCoalescerCancelDropsPending(t *testing.T) {
	sched := &ManualScheduler{}
	c := newCoalescer(sched)

	ran := false
	c.Call(func() { ran = true })
	c.Cancel()
	sched.Tick()
	if ran {
		t.Fatalf("cancelled work must not run")
	}

	// The coalescer stays usable after a cancel.
	c.Call(func() { ran = true })
	sched.Tick()
	if !ran {
		t.Fatalf("coalescer must accept work after a cancel")
	}
}

func TestManualSchedulerTickBatches(t *testing.T) {
	sched := &ManualScheduler{}

	count := 0
	sched.Schedule(func() {
		count++
		// Work scheduled during a tick waits for the next one.
		sched.Schedule(func() { count += 10 })
	})

	sched.Tick()
	if count != 1 {
		t.Fatalf("nested schedule must not run in the same tick, count=%d", count)
	}
	sched.Tick()
	if count != 11 {
		t.Fatalf("nested schedule must run on the following tick, count=%d", count)
	}
}

func TestCancelAfterFireLeavesLaterWorkAlone(t *testing.T) {
	sched := &ManualScheduler{}

	first := false
	cancelFirst := sched.Schedule(func() { first = true })
	sched.Tick()
	if !first {
		t.Fatalf("first callback should have run")
	}

	// A new client queues work at the position the first entry used to
	// occupy; the spent cancel must not reach it.
	second := 0
	sched.Schedule(func() { second++ })
	cancelFirst()
	sched.Tick()
	if second != 1 {
		t.Fatalf("second callback ran %d times, want 1", second)
	}
}

func TestCoalescersShareOneScheduler(t *testing.T) {
	sched := &ManualScheduler{}
	c1 := newCoalescer(sched)
	c2 := newCoalescer(sched)

	// c1's tick fires and is done with its cancel.
	c1.Call(func() {})
	sched.Tick()

	ran := 0
	c2.Call(func() { ran++ })
	c1.Cancel() // nothing pending on c1; c2's queued work must survive
	sched.Tick()
	if ran != 1 {
		t.Fatalf("c2 callback ran %d times, want 1", ran)
	}

	// And c2 keeps rescheduling afterwards.
	c2.Call(func() { ran++ })
	sched.Tick()
	if ran != 2 {
		t.Fatalf("ran=%d, want 2 (coalescer must keep rescheduling)", ran)
	}
}

func TestResizeCancelAfterCommitKeepsOthersWorking(t *testing.T) {
	tr := newTestTree()
	row := tr.Root.Rows[0]
	colA := row.Columns[0]
	g := tr.AddGroup(colA, 0)
	tr.AddPanel(g, NewPanel("", "test", "p"), 0)
	colB := tr.AddColumn(row, 1)
	gb := tr.AddGroup(colB, 0)
	tr.AddPanel(gb, NewPanel("", "test", "p"), 0)
	colA.Width = Fixed(300)
	tr.Layout(Rect{W: 1000, H: 400})

	sched := &ManualScheduler{}
	rcA := NewColumnResizer(tr, sched, colA)
	rcG := NewGroupResizer(tr, sched, g)

	// Gesture one completes; its coalesced tick has fired.
	rcA.PointerDown(PointerEvent{X: 300, Y: 10})
	rcA.PointerMove(PointerEvent{X: 320, Y: 10})
	sched.Tick()

	// Gesture two queues work, then gesture one is cancelled late.
	rcG.PointerDown(PointerEvent{X: 10, Y: 200})
	rcG.PointerMove(PointerEvent{X: 10, Y: 210})
	rcA.Cancel()

	layouts := 0
	tr.Dispatcher().Subscribe(ListenerFunc(func(ev Event) {
		if ev.Type == EventLayoutChanged {
			layouts++
		}
	}))
	sched.Tick()
	if layouts != 1 {
		t.Fatalf("a stale cancel must not swallow another gesture's relayout, got %d", layouts)
	}
}

func TestTickSchedulerRunsScheduledWork(t *testing.T) {
	s := NewTickScheduler(time.Millisecond)
	defer s.Close()

	done := make(chan struct{})
	s.Schedule(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("scheduled work never ran")
	}
}

func TestTickSchedulerCancel(t *testing.T) {
	s := NewTickScheduler(time.Millisecond)
	defer s.Close()

	ran := make(chan struct{}, 1)
	cancel := s.Schedule(func() { ran <- struct{}{} })
	cancel()

	select {
	case <-ran:
		t.Fatalf("cancelled work must not run")
	case <-time.After(20 * time.Millisecond):
	}
}
