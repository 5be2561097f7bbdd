// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/drag_test.go
// Summary: Exercises the drag coordinator state machine end to end.
// Usage: Executed during `go test` to guard against regressions.

package dock

import "testing"

// buildTwoColumns returns a tree with one row holding columns [A, B], where
// A holds the given number of groups and B holds one.
func buildTwoColumns(t *testing.T, groupsInA int) (*Tree, *Row, *Column, *Column) {
	t.Helper()
	tr := newTestTree()
	row := tr.Root.Rows[0]
	colA := row.Columns[0]
	for i := 0; i < groupsInA; i++ {
		g := tr.AddGroup(colA, i)
		tr.AddPanel(g, NewPanel("", "test", "p"), 0)
	}
	colB := tr.AddColumn(row, 1)
	gB := tr.AddGroup(colB, 0)
	tr.AddPanel(gB, NewPanel("", "test", "p"), 0)
	tr.Layout(Rect{W: 1000, H: 400})
	return tr, row, colA, colB
}

func TestGroupDropIntoRowGapCreatesColumnAndPrunesSource(t *testing.T) {
	tr, row, colA, colB := buildTwoColumns(t, 1)
	g := colA.Groups[0]

	c := NewDragCoordinator(tr)
	if !c.StartGroupDrag(g) {
		t.Fatalf("drag should start")
	}
	zone := DropZone{Kind: ZoneRowGap, Row: row}
	at := PointerEvent{X: colB.Bounds.MidX() + 1, Y: 10}
	c.DragEnter(at, zone)
	c.Drop(at, zone)

	if len(row.Columns) != 2 {
		t.Fatalf("expected 2 columns after move, got %d", len(row.Columns))
	}
	if row.Columns[0] != colB {
		t.Fatalf("emptied source column must be pruned")
	}
	newCol := row.Columns[1]
	if len(newCol.Groups) != 1 || newCol.Groups[0] != g {
		t.Fatalf("dropped group must live alone in the new column")
	}
	if c.State() != DragIdle {
		t.Fatalf("drop must end the drag")
	}
}

func TestGhostDropCommitsNothing(t *testing.T) {
	tr, row, colA, _ := buildTwoColumns(t, 1)
	g := colA.Groups[0]

	c := NewDragCoordinator(tr)
	c.StartGroupDrag(g)
	zone := DropZone{Kind: ZoneRowGap, Row: row}
	// Just right of the origin column: an adjacent gap, resolved as a ghost.
	at := PointerEvent{X: colA.Bounds.MidX() + 1, Y: 10}
	c.DragEnter(at, zone)
	c.Drop(at, zone)

	if len(row.Columns) != 2 || row.Columns[0] != colA {
		t.Fatalf("ghost drop must leave the layout untouched")
	}
	if g.parent != colA {
		t.Fatalf("group must stay in its source column")
	}
}

func TestDropWithoutDragIsIgnored(t *testing.T) {
	tr, row, colA, _ := buildTwoColumns(t, 1)
	c := NewDragCoordinator(tr)

	c.Drop(PointerEvent{X: 500, Y: 10}, DropZone{Kind: ZoneRowGap, Row: row})

	if len(row.Columns) != 2 || row.Columns[0] != colA {
		t.Fatalf("drop with no drag payload must be a no-op")
	}
}

func TestEndDragClearsEverything(t *testing.T) {
	tr, _, colA, _ := buildTwoColumns(t, 2)
	g := colA.Groups[0]

	c := NewDragCoordinator(tr)
	c.StartGroupDrag(g)
	zone := DropZone{Kind: ZoneColumnInterior, Column: colA}
	// Past the last group's midpoint: a real target, placeholder visible.
	last := colA.Groups[len(colA.Groups)-1]
	c.DragEnter(PointerEvent{X: 10, Y: last.Bounds.MidY() + 1}, zone)
	if !c.Placeholder().Visible {
		t.Fatalf("expected a visible placeholder before cancel")
	}

	c.EndDrag()

	if c.State() != DragIdle {
		t.Fatalf("EndDrag must return to idle")
	}
	if c.Placeholder().Visible {
		t.Fatalf("EndDrag must hide the placeholder")
	}
	if c.Payload() != (DragPayload{}) {
		t.Fatalf("EndDrag must clear the payload")
	}

	// A later drop in the same zone commits nothing: caches were cleared.
	c.StartGroupDrag(g)
	c.Drop(PointerEvent{X: 10, Y: last.Bounds.MidY() + 1}, zone)
	if colA.Groups[len(colA.Groups)-1] != last {
		t.Fatalf("stale cache must not leak into the next drag")
	}
}

func TestDragLifecycleEvents(t *testing.T) {
	tr, _, colA, _ := buildTwoColumns(t, 1)
	g := colA.Groups[0]

	var started, ended int
	tr.Dispatcher().Subscribe(ListenerFunc(func(ev Event) {
		switch ev.Type {
		case EventDragStarted:
			started++
		case EventDragEnded:
			ended++
		}
	}))

	c := NewDragCoordinator(tr)
	c.StartGroupDrag(g)
	c.EndDrag()
	c.EndDrag() // idempotent

	if started != 1 || ended != 1 {
		t.Fatalf("expected 1 start and 1 end, got %d/%d", started, ended)
	}
}

func TestSecondDragRefusedWhileActive(t *testing.T) {
	tr, _, colA, colB := buildTwoColumns(t, 1)

	c := NewDragCoordinator(tr)
	if !c.StartGroupDrag(colA.Groups[0]) {
		t.Fatalf("first drag should start")
	}
	if c.StartGroupDrag(colB.Groups[0]) {
		t.Fatalf("second drag must be refused while one is active")
	}
	c.EndDrag()
}

func TestPanelDropOnForeignTabStrip(t *testing.T) {
	tr, _, colA, colB := buildTwoColumns(t, 1)
	gA := colA.Groups[0]
	gB := colB.Groups[0]
	extra := NewPanel("", "test", "extra")
	tr.AddPanel(gA, extra, 1)
	tr.Layout(Rect{W: 1000, H: 400})

	c := NewDragCoordinator(tr)
	if !c.StartPanelDrag(extra) {
		t.Fatalf("panel drag should start")
	}
	zone := DropZone{Kind: ZoneTabStrip, Group: gB}
	at := PointerEvent{X: gB.Bounds.X + 1, Y: gB.Panels[0].HeaderBounds.MidY() + 1}
	c.DragEnter(at, zone)
	c.Drop(at, zone)

	if len(gB.Panels) != 2 || gB.Panels[1] != extra {
		t.Fatalf("panel must be inserted into the target strip")
	}
	if gB.ActivePanelID != extra.ID {
		t.Fatalf("dropped panel should become active")
	}
	if len(gA.Panels) != 1 {
		t.Fatalf("source group keeps its remaining panel")
	}
}

func TestGroupDropOnForeignTabStripMerges(t *testing.T) {
	tr, _, colA, colB := buildTwoColumns(t, 1)
	gA := colA.Groups[0]
	gB := colB.Groups[0]
	tr.AddPanel(gA, NewPanel("", "test", "second"), 1)
	tr.Layout(Rect{W: 1000, H: 400})
	moved := append([]*Panel(nil), gA.Panels...)

	c := NewDragCoordinator(tr)
	if !c.StartGroupDrag(gA) {
		t.Fatalf("group drag should start")
	}
	zone := DropZone{Kind: ZoneTabStrip, Group: gB}
	at := PointerEvent{X: gB.Bounds.X + 1, Y: gB.Panels[0].HeaderBounds.MidY() + 1}
	c.DragEnter(at, zone)
	c.Drop(at, zone)

	if len(gB.Panels) != 3 {
		t.Fatalf("expected merged group of 3 panels, got %d", len(gB.Panels))
	}
	if gB.Panels[1] != moved[0] || gB.Panels[2] != moved[1] {
		t.Fatalf("merged panels must keep their order at the insertion point")
	}
	if len(colA.Groups) != 0 || gA.parent != nil {
		t.Fatalf("dissolved source group must be pruned")
	}
}
