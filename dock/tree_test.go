// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/tree_test.go
// Summary: Exercises structural mutations, pruning and active-panel rules.
// Usage: Executed during `go test` to guard against regressions.

package dock

import "testing"

func newTestTree() *Tree {
	return NewTree(DefaultMetrics())
}

// addPanels fills the placeholder column with one group holding n panels.
func addPanels(t *Tree, n int) (*Column, *PanelGroup, []*Panel) {
	col := t.Root.Rows[0].Columns[0]
	g := t.AddGroup(col, 0)
	panels := make([]*Panel, n)
	for i := range panels {
		panels[i] = NewPanel("", "test", "panel")
		t.AddPanel(g, panels[i], i)
	}
	return col, g, panels
}

func TestNewTreeHasPlaceholder(t *testing.T) {
	tr := newTestTree()
	if len(tr.Root.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(tr.Root.Rows))
	}
	row := tr.Root.Rows[0]
	if len(row.Columns) != 1 {
		t.Fatalf("expected 1 column, got %d", len(row.Columns))
	}
	if len(row.Columns[0].Groups) != 0 {
		t.Fatalf("placeholder column must be empty")
	}
}

func TestFirstPanelBecomesActive(t *testing.T) {
	tr := newTestTree()
	_, g, panels := addPanels(tr, 2)
	if g.ActivePanelID != panels[0].ID {
		t.Fatalf("first panel should be active, got %q", g.ActivePanelID)
	}
}

func TestRemovePanelActiveFallback(t *testing.T) {
	tr := newTestTree()
	_, g, panels := addPanels(tr, 3)
	tr.ActivatePanel(panels[1])

	tr.RemovePanel(g, panels[1])
	if g.ActivePanelID != panels[0].ID {
		t.Fatalf("expected previous-index fallback to %q, got %q", panels[0].ID, g.ActivePanelID)
	}

	tr.ActivatePanel(panels[0])
	tr.RemovePanel(g, panels[0])
	if g.ActivePanelID != panels[2].ID {
		t.Fatalf("expected first-panel fallback to %q, got %q", panels[2].ID, g.ActivePanelID)
	}
}

func TestRemovePanelIdempotent(t *testing.T) {
	tr := newTestTree()
	_, g, panels := addPanels(tr, 2)
	tr.RemovePanel(g, panels[0])
	tr.RemovePanel(g, panels[0]) // duplicate event, must not change anything
	if len(g.Panels) != 1 {
		t.Fatalf("expected 1 panel after duplicate remove, got %d", len(g.Panels))
	}
}

func TestPruneCascadeRestoresPlaceholder(t *testing.T) {
	tr := newTestTree()
	_, g, panels := addPanels(tr, 1)

	tr.RemovePanel(g, panels[0])

	if len(tr.Root.Rows) != 1 {
		t.Fatalf("container must keep a placeholder row")
	}
	row := tr.Root.Rows[0]
	if len(row.Columns) != 1 || len(row.Columns[0].Groups) != 0 {
		t.Fatalf("expected empty placeholder column after cascade")
	}
}

func TestRemoveEmitsEvents(t *testing.T) {
	tr := newTestTree()
	_, g, panels := addPanels(tr, 1)

	var removed, closed int
	tr.Dispatcher().Subscribe(ListenerFunc(func(ev Event) {
		switch ev.Type {
		case EventNodeRemoved:
			removed++
		case EventPanelClosed:
			closed++
		}
	}))

	tr.RemovePanel(g, panels[0])
	if closed != 1 {
		t.Fatalf("expected 1 panel-closed event, got %d", closed)
	}
	// Group, column and row all empty out in the cascade.
	if removed != 3 {
		t.Fatalf("expected 3 node-removed events, got %d", removed)
	}
}

func TestMoveGroupSameColumnIndexAdjust(t *testing.T) {
	tr := newTestTree()
	col := tr.Root.Rows[0].Columns[0]
	g0 := tr.AddGroup(col, 0)
	g1 := tr.AddGroup(col, 1)
	g2 := tr.AddGroup(col, 2)
	for i, g := range []*PanelGroup{g0, g1, g2} {
		tr.AddPanel(g, NewPanel("", "test", "p"), i)
	}

	// Moving g0 to index 2 within its own column targets the gap before g2,
	// which is index 1 once g0 is detached.
	tr.MoveGroupToColumn(g0, col, 2)
	if col.Groups[0] != g1 || col.Groups[1] != g0 || col.Groups[2] != g2 {
		t.Fatalf("unexpected order after same-column move")
	}
}

func TestMoveGroupToNewColumnPrunesSource(t *testing.T) {
	tr := newTestTree()
	row := tr.Root.Rows[0]
	colA := row.Columns[0]
	g := tr.AddGroup(colA, 0)
	tr.AddPanel(g, NewPanel("", "test", "p"), 0)
	colB := tr.AddColumn(row, 1)
	gb := tr.AddGroup(colB, 0)
	tr.AddPanel(gb, NewPanel("", "test", "p"), 0)

	// g is the sole group of colA; moving it right of colB must prune colA.
	tr.MoveGroupToNewColumn(g, row, 2)

	if len(row.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(row.Columns))
	}
	if row.Columns[0] != colB {
		t.Fatalf("source column should have been pruned")
	}
	if row.Columns[1].Groups[0] != g {
		t.Fatalf("moved group should live in the new column")
	}
}

func TestMovePanelDissolvesEmptiedGroup(t *testing.T) {
	tr := newTestTree()
	col, g, panels := addPanels(tr, 1)
	g2 := tr.AddGroup(col, 1)
	tr.AddPanel(g2, NewPanel("", "test", "p"), 0)

	tr.MovePanelToGroup(panels[0], g2, 1)

	if len(col.Groups) != 1 || col.Groups[0] != g2 {
		t.Fatalf("emptied source group should be pruned")
	}
	if len(g2.Panels) != 2 {
		t.Fatalf("expected 2 panels in destination, got %d", len(g2.Panels))
	}
	if g2.ActivePanelID != panels[0].ID {
		t.Fatalf("moved panel should become active in destination")
	}
	if g.parent != nil {
		t.Fatalf("pruned group must be detached from its column")
	}
}

func TestSetCollapsedDropsActive(t *testing.T) {
	tr := newTestTree()
	col, g, panels := addPanels(tr, 2)
	g2 := tr.AddGroup(col, 1)
	tr.AddPanel(g2, NewPanel("", "test", "p"), 0)

	tr.SetCollapsed(g, true)
	if g.ActivePanelID != "" {
		t.Fatalf("collapsed group must have no active panel")
	}
	tr.SetCollapsed(g, false)
	if g.ActivePanelID != panels[0].ID {
		t.Fatalf("reopened group should activate its first panel")
	}
}

func TestFindPanel(t *testing.T) {
	tr := newTestTree()
	_, _, panels := addPanels(tr, 2)
	if tr.FindPanel(panels[1].ID) != panels[1] {
		t.Fatalf("FindPanel should return the panel by ID")
	}
	if tr.FindPanel("missing") != nil {
		t.Fatalf("FindPanel should return nil for unknown IDs")
	}
}
