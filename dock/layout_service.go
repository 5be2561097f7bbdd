// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/layout_service.go
// Summary: Invariant passes run after every structural mutation.
// Usage: Scoped to the directly affected Row/Column so the cost stays
// O(children of one node) regardless of total layout size.

package dock

// normalizeColumn re-establishes the collapse and fill-space invariants over
// one column's groups:
//   - never all children collapsed; the last one is forced open
//   - exactly the last uncollapsed child carries fill-space sizing, all
//     others are pinned to fixed sizes
func (t *Tree) normalizeColumn(col *Column) {
	if col == nil || len(col.Groups) == 0 {
		return
	}

	allCollapsed := true
	for _, g := range col.Groups {
		if !g.Collapsed {
			allCollapsed = false
			break
		}
	}
	if allCollapsed {
		last := col.Groups[len(col.Groups)-1]
		last.Collapsed = false
		if last.ActivePanel() == nil && len(last.Panels) > 0 {
			last.ActivePanelID = last.Panels[0].ID
		}
		logger.Debug("layout: forced last group open")
	}

	lastOpen := -1
	for i, g := range col.Groups {
		if !g.Collapsed {
			lastOpen = i
		}
	}
	for i, g := range col.Groups {
		if g.Collapsed {
			g.fill = false
			continue
		}
		if i == lastOpen {
			g.fill = true
			g.Height = nil
			continue
		}
		g.fill = false
		if g.Height == nil {
			g.Height = Fixed(t.pinnedGroupHeight(g))
		}
	}
}

// pinnedGroupHeight converts a fill group losing fill status to a fixed
// size: its last measured height when available, the default otherwise.
func (t *Tree) pinnedGroupHeight(g *PanelGroup) float64 {
	if h := float64(g.Bounds.H); h > 0 {
		return h
	}
	return t.Metrics.DefaultGroupHeight
}

// normalizeRow applies the fill-space invariant to a row's columns. Columns
// have no collapsed state, so the last column is always the fill child.
func (t *Tree) normalizeRow(row *Row) {
	if row == nil || len(row.Columns) == 0 {
		return
	}
	last := len(row.Columns) - 1
	for i, col := range row.Columns {
		if i == last {
			col.Width = nil
			continue
		}
		if col.Width == nil {
			if w := float64(col.Bounds.W); w > 0 {
				col.Width = Fixed(w)
			} else {
				col.Width = Fixed(t.Metrics.DefaultColumnWidth)
			}
		}
	}
}

// normalizeContainer applies the fill-space invariant to the root's rows.
func (t *Tree) normalizeContainer() {
	rows := t.Root.Rows
	if len(rows) == 0 {
		return
	}
	last := len(rows) - 1
	for i, row := range rows {
		if i == last {
			row.Height = nil
			continue
		}
		if row.Height == nil {
			if h := float64(row.Bounds.H); h > 0 {
				row.Height = Fixed(h)
			} else {
				row.Height = Fixed(t.Metrics.DefaultRowHeight)
			}
		}
	}
}
