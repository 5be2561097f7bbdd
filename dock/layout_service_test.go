// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/layout_service_test.go
// Summary: Exercises the collapse floor and fill-space invariant passes.
// Usage: Executed during `go test` to guard against regressions.

package dock

import "testing"

func TestCollapseFloorForcesLastOpen(t *testing.T) {
	tr := newTestTree()
	col, g0, _ := addPanels(tr, 1)
	g1 := tr.AddGroup(col, 1)
	tr.AddPanel(g1, NewPanel("", "test", "p"), 0)

	tr.SetCollapsed(g0, true)
	tr.SetCollapsed(g1, true)

	if g1.Collapsed {
		t.Fatalf("last group must be forced open when all would be collapsed")
	}
	if g1.ActivePanel() == nil {
		t.Fatalf("forced-open group must regain an active panel")
	}
	if !g0.Collapsed {
		t.Fatalf("first group should stay collapsed")
	}
}

func TestFillSpaceUniqueness(t *testing.T) {
	tr := newTestTree()
	col, g0, _ := addPanels(tr, 1)
	g1 := tr.AddGroup(col, 1)
	tr.AddPanel(g1, NewPanel("", "test", "p"), 0)
	g2 := tr.AddGroup(col, 2)
	tr.AddPanel(g2, NewPanel("", "test", "p"), 0)

	fills := 0
	for _, g := range col.Groups {
		if g.Fill() {
			fills++
		}
	}
	if fills != 1 {
		t.Fatalf("exactly one group must fill, got %d", fills)
	}
	if !g2.Fill() || g2.Height != nil {
		t.Fatalf("last uncollapsed group must be the fill child with nil height")
	}
	if g0.Height == nil || g1.Height == nil {
		t.Fatalf("non-fill groups must be pinned to fixed heights")
	}
}

func TestFillSkipsCollapsedTail(t *testing.T) {
	tr := newTestTree()
	col, g0, _ := addPanels(tr, 1)
	g1 := tr.AddGroup(col, 1)
	tr.AddPanel(g1, NewPanel("", "test", "p"), 0)

	tr.SetCollapsed(g1, true)

	if !g0.Fill() {
		t.Fatalf("fill must move to the last uncollapsed group")
	}
	if g0.Height != nil {
		t.Fatalf("fill group must carry nil height")
	}
	if g1.Fill() {
		t.Fatalf("collapsed group can never fill")
	}
}

func TestPinnedHeightUsesMeasuredBounds(t *testing.T) {
	tr := newTestTree()
	col, g0, _ := addPanels(tr, 1)
	tr.Layout(Rect{W: 400, H: 500})

	// g0 fills the whole column; adding a group below pins it to its
	// measured height.
	g1 := tr.AddGroup(col, 1)
	tr.AddPanel(g1, NewPanel("", "test", "p"), 0)

	if g0.Height == nil {
		t.Fatalf("expected pinned height")
	}
	if *g0.Height != 500 {
		t.Fatalf("pin should use measured bounds, got %v", *g0.Height)
	}
}

func TestPinnedHeightFallsBackToDefault(t *testing.T) {
	tr := newTestTree()
	col, g0, _ := addPanels(tr, 1)
	// No layout has run; bounds are zero.
	g1 := tr.AddGroup(col, 1)
	tr.AddPanel(g1, NewPanel("", "test", "p"), 0)

	if g0.Height == nil || *g0.Height != tr.Metrics.DefaultGroupHeight {
		t.Fatalf("unmeasured pin should fall back to the default height")
	}
}

func TestRowAndContainerFill(t *testing.T) {
	tr := newTestTree()
	row0 := tr.Root.Rows[0]
	colA := row0.Columns[0]
	g := tr.AddGroup(colA, 0)
	tr.AddPanel(g, NewPanel("", "test", "p"), 0)
	tr.AddColumn(row0, 1)
	tr.AddRow(1)

	if colA.Width == nil {
		t.Fatalf("non-last column must be pinned")
	}
	if row0.Columns[len(row0.Columns)-1].Width != nil {
		t.Fatalf("last column must fill")
	}
	if row0.Height == nil {
		t.Fatalf("non-last row must be pinned")
	}
	if tr.Root.Rows[len(tr.Root.Rows)-1].Height != nil {
		t.Fatalf("last row must fill")
	}
}
