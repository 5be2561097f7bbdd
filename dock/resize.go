// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/resize.go
// Summary: Pointer-driven resize controllers for axis-holding nodes.
// Usage: One controller per resizable node. The host routes every
// pointer-move of an active gesture here, whether or not the pointer is
// still over the handle, so dragging past the handle's bounds keeps
// tracking.

package dock

// PointerEvent carries pointer coordinates. It is the only input-device
// abstraction the engine knows about.
type PointerEvent struct {
	X, Y int
}

// ResizeAxis selects the coordinate a controller reads from pointer events.
type ResizeAxis int

const (
	// AxisHorizontal edits widths (columns).
	AxisHorizontal ResizeAxis = iota
	// AxisVertical edits heights (rows, panel groups).
	AxisVertical
)

// ResizeController turns pointer-drag gestures on a resize handle into size
// writes. Move work is coalesced to one relayout per frame tick; pointer-up
// cancels anything pending and runs one uncoalesced full-precision pass so
// the committed size exactly matches the final pointer position even when a
// tick was dropped.
type ResizeController struct {
	tree  *Tree
	axis  ResizeAxis
	relay *coalescer

	// minimum is a closure because group floors depend on the current
	// header region, which changes as tabs come and go.
	minimum func() float64
	read    func() float64
	write   func(v float64)

	dragging   bool
	startCoord int
	startSize  float64
}

// NewColumnResizer builds a width controller for col.
func NewColumnResizer(t *Tree, sched FrameScheduler, col *Column) *ResizeController {
	return &ResizeController{
		tree:    t,
		axis:    AxisHorizontal,
		relay:   newCoalescer(sched),
		minimum: func() float64 { return t.Metrics.MinColumnWidth },
		read: func() float64 {
			if col.Width != nil {
				return *col.Width
			}
			return float64(col.Bounds.W)
		},
		write: func(v float64) { col.Width = Fixed(v) },
	}
}

// NewRowResizer builds a height controller for row.
func NewRowResizer(t *Tree, sched FrameScheduler, row *Row) *ResizeController {
	return &ResizeController{
		tree:    t,
		axis:    AxisVertical,
		relay:   newCoalescer(sched),
		minimum: func() float64 { return t.Metrics.MinRowHeight },
		read: func() float64 {
			if row.Height != nil {
				return *row.Height
			}
			return float64(row.Bounds.H)
		},
		write: func(v float64) { row.Height = Fixed(v) },
	}
}

// NewGroupResizer builds a height controller for g. The floor is the group's
// content minimum plus the header region it owns.
func NewGroupResizer(t *Tree, sched FrameScheduler, g *PanelGroup) *ResizeController {
	return &ResizeController{
		tree:    t,
		axis:    AxisVertical,
		relay:   newCoalescer(sched),
		minimum: func() float64 { return t.Metrics.GroupMinHeight(g) },
		read: func() float64 {
			if g.Height != nil {
				return *g.Height
			}
			return float64(g.Bounds.H)
		},
		write: func(v float64) { g.Height = Fixed(v) },
	}
}

// Dragging reports whether a gesture is in progress.
func (rc *ResizeController) Dragging() bool { return rc.dragging }

func (rc *ResizeController) coord(ev PointerEvent) int {
	if rc.axis == AxisHorizontal {
		return ev.X
	}
	return ev.Y
}

// PointerDown starts a gesture, recording the start coordinate and size.
func (rc *ResizeController) PointerDown(ev PointerEvent) {
	rc.dragging = true
	rc.startCoord = rc.coord(ev)
	rc.startSize = rc.read()
}

// PointerMove applies the clamped size and schedules a coalesced relayout.
// Multiple moves between ticks collapse into one layout pass.
func (rc *ResizeController) PointerMove(ev PointerEvent) {
	if !rc.dragging {
		return
	}
	rc.write(rc.clamped(ev))
	rc.relay.Call(func() {
		rc.tree.changed()
	})
}

// PointerUp ends the gesture: pending coalesced work is cancelled and one
// final uncoalesced pass commits the exact end position.
func (rc *ResizeController) PointerUp(ev PointerEvent) {
	if !rc.dragging {
		return
	}
	rc.dragging = false
	rc.relay.Cancel()
	rc.write(rc.clamped(ev))
	rc.tree.changed()
}

// Cancel aborts a gesture without committing, restoring the start size.
func (rc *ResizeController) Cancel() {
	if !rc.dragging {
		return
	}
	rc.dragging = false
	rc.relay.Cancel()
	rc.write(rc.startSize)
	rc.tree.changed()
}

func (rc *ResizeController) clamped(ev PointerEvent) float64 {
	delta := float64(rc.coord(ev) - rc.startCoord)
	size := rc.startSize + delta
	if min := rc.minimum(); size < min {
		size = min
	}
	return size
}
