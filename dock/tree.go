// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/tree.go
// Summary: Layout tree ownership, insertion, removal and auto-pruning.
// Usage: All structural mutations go through Tree methods so the collapse
// and fill-space invariants are re-established after every change.

package dock

// Tree owns the node hierarchy rooted at a single Container. Nodes are
// created through the factory methods below and destroyed only through
// removal, which cascades upward when it empties an ancestor.
type Tree struct {
	Root    *Container
	Metrics Metrics

	dispatcher *EventDispatcher
	viewport   Rect
	laidOut    bool
}

// NewTree creates a tree holding the permanent placeholder: one row with one
// empty column, so a drop target exists before any panel is added.
func NewTree(m Metrics) *Tree {
	t := &Tree{
		Root:       &Container{},
		Metrics:    m,
		dispatcher: NewEventDispatcher(),
	}
	t.ensurePlaceholder()
	return t
}

// Dispatcher exposes the tree-scoped event bus.
func (t *Tree) Dispatcher() *EventDispatcher { return t.dispatcher }

// ensurePlaceholder restores the guaranteed drop target after the prune
// cascade empties the container. The empty placeholder column is the one
// sanctioned exception to the no-empty-node invariant.
func (t *Tree) ensurePlaceholder() {
	if len(t.Root.Rows) > 0 {
		return
	}
	col := &Column{}
	row := &Row{Columns: []*Column{col}, parent: t.Root}
	col.parent = row
	t.Root.Rows = []*Row{row}
	logger.Debug("tree: restored placeholder row/column")
}

// changed re-runs geometry over the last viewport and notifies observers.
// Every public mutation funnels through here exactly once.
func (t *Tree) changed() {
	if t.laidOut {
		t.layout(t.viewport)
	}
	t.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
}

// AddRow inserts a new fill-sized row at index and returns it.
func (t *Tree) AddRow(index int) *Row {
	row := &Row{parent: t.Root}
	index = clampIndex(index, len(t.Root.Rows))
	t.Root.Rows = append(t.Root.Rows, nil)
	copy(t.Root.Rows[index+1:], t.Root.Rows[index:])
	t.Root.Rows[index] = row
	t.normalizeContainer()
	t.changed()
	return row
}

// AddColumn inserts a new fill-sized column into row at index.
func (t *Tree) AddColumn(row *Row, index int) *Column {
	col := &Column{parent: row}
	index = clampIndex(index, len(row.Columns))
	row.Columns = append(row.Columns, nil)
	copy(row.Columns[index+1:], row.Columns[index:])
	row.Columns[index] = col
	t.normalizeRow(row)
	t.changed()
	return col
}

// AddGroup inserts a new empty panel group into col at index.
func (t *Tree) AddGroup(col *Column, index int) *PanelGroup {
	g := &PanelGroup{parent: col}
	index = clampIndex(index, len(col.Groups))
	col.Groups = append(col.Groups, nil)
	copy(col.Groups[index+1:], col.Groups[index:])
	col.Groups[index] = g
	t.normalizeColumn(col)
	t.changed()
	return g
}

// AddPanel inserts p into g at index. The first panel of an uncollapsed
// group becomes active.
func (t *Tree) AddPanel(g *PanelGroup, p *Panel, index int) {
	index = clampIndex(index, len(g.Panels))
	g.Panels = append(g.Panels, nil)
	copy(g.Panels[index+1:], g.Panels[index:])
	g.Panels[index] = p
	p.parent = g
	if !g.Collapsed && g.ActivePanel() == nil {
		g.ActivePanelID = p.ID
	}
	t.normalizeColumn(g.parent)
	t.changed()
}

// RemovePanel removes p from g, fixes the active panel, and prunes emptied
// ancestors. Removing a panel that is not present is an idempotent no-op;
// the usual cause is a duplicate event, not corruption.
func (t *Tree) RemovePanel(g *PanelGroup, p *Panel) {
	idx := g.panelIndex(p)
	if idx == -1 {
		logger.Debug("tree: remove of absent panel ignored", "panel", p.ID)
		return
	}
	t.detachPanel(g, idx)
	p.parent = nil
	col := g.parent
	t.pruneGroup(g)
	if col != nil {
		t.normalizeColumn(col)
	}
	t.dispatcher.Broadcast(Event{Type: EventPanelClosed, Payload: p})
	t.changed()
}

// detachPanel unlinks the panel at idx without pruning the group, applying
// the active-panel fallback: previous index first, else the new first panel.
func (t *Tree) detachPanel(g *PanelGroup, idx int) *Panel {
	p := g.Panels[idx]
	g.Panels = append(g.Panels[:idx], g.Panels[idx+1:]...)
	if g.ActivePanelID == p.ID {
		switch {
		case len(g.Panels) == 0:
			g.ActivePanelID = ""
		case idx > 0:
			g.ActivePanelID = g.Panels[idx-1].ID
		default:
			g.ActivePanelID = g.Panels[0].ID
		}
		if g.ActivePanelID != "" {
			t.dispatcher.Broadcast(Event{Type: EventActivePanelChanged, Payload: g})
		}
	}
	return p
}

// ActivatePanel makes p the active panel of its group.
func (t *Tree) ActivatePanel(p *Panel) {
	g := p.parent
	if g == nil || g.Collapsed || g.ActivePanelID == p.ID {
		return
	}
	g.ActivePanelID = p.ID
	t.dispatcher.Broadcast(Event{Type: EventActivePanelChanged, Payload: g})
	t.changed()
}

// SetCollapsed collapses or opens a group. A collapsed group drops its
// active panel; opening restores the first panel as active.
func (t *Tree) SetCollapsed(g *PanelGroup, collapsed bool) {
	if g.Collapsed == collapsed {
		return
	}
	g.Collapsed = collapsed
	if collapsed {
		g.ActivePanelID = ""
	} else if len(g.Panels) > 0 {
		g.ActivePanelID = g.Panels[0].ID
	}
	if g.parent != nil {
		t.normalizeColumn(g.parent)
	}
	t.changed()
}

// RemoveGroup removes g from col and prunes upward. Idempotent when g is
// not a child of col.
func (t *Tree) RemoveGroup(col *Column, g *PanelGroup) {
	idx := col.groupIndex(g)
	if idx == -1 {
		logger.Debug("tree: remove of absent group ignored")
		return
	}
	col.Groups = append(col.Groups[:idx], col.Groups[idx+1:]...)
	g.parent = nil
	t.dispatcher.Broadcast(Event{Type: EventNodeRemoved, Payload: g})
	t.pruneColumn(col)
	if col.parent != nil {
		t.normalizeColumn(col)
	}
	t.changed()
}

// RemoveColumn removes col from row and prunes upward.
func (t *Tree) RemoveColumn(row *Row, col *Column) {
	idx := row.columnIndex(col)
	if idx == -1 {
		logger.Debug("tree: remove of absent column ignored")
		return
	}
	row.Columns = append(row.Columns[:idx], row.Columns[idx+1:]...)
	col.parent = nil
	t.dispatcher.Broadcast(Event{Type: EventNodeRemoved, Payload: col})
	t.pruneRow(row)
	if row.parent != nil {
		t.normalizeRow(row)
	}
	t.changed()
}

// RemoveRow removes row from the container, restoring the placeholder when
// it was the last one.
func (t *Tree) RemoveRow(row *Row) {
	idx := t.Root.rowIndex(row)
	if idx == -1 {
		logger.Debug("tree: remove of absent row ignored")
		return
	}
	t.Root.Rows = append(t.Root.Rows[:idx], t.Root.Rows[idx+1:]...)
	row.parent = nil
	t.dispatcher.Broadcast(Event{Type: EventNodeRemoved, Payload: row})
	t.ensurePlaceholder()
	t.normalizeContainer()
	t.changed()
}

// pruneGroup removes g from its column once emptied, cascading upward.
func (t *Tree) pruneGroup(g *PanelGroup) {
	if len(g.Panels) > 0 {
		return
	}
	col := g.parent
	if col == nil {
		return
	}
	if idx := col.groupIndex(g); idx != -1 {
		col.Groups = append(col.Groups[:idx], col.Groups[idx+1:]...)
		g.parent = nil
		t.dispatcher.Broadcast(Event{Type: EventNodeRemoved, Payload: g})
	}
	t.pruneColumn(col)
}

// pruneColumn removes col from its row once emptied, cascading upward.
// Placeholder columns under the root are re-created by ensurePlaceholder
// when the cascade reaches the container.
func (t *Tree) pruneColumn(col *Column) {
	if len(col.Groups) > 0 {
		return
	}
	row := col.parent
	if row == nil {
		return
	}
	if idx := row.columnIndex(col); idx != -1 {
		row.Columns = append(row.Columns[:idx], row.Columns[idx+1:]...)
		col.parent = nil
		t.dispatcher.Broadcast(Event{Type: EventNodeRemoved, Payload: col})
	}
	t.pruneRow(row)
}

// pruneRow removes row from the container once emptied. The container never
// self-removes; it falls back to the placeholder instead.
func (t *Tree) pruneRow(row *Row) {
	if len(row.Columns) > 0 {
		return
	}
	if idx := t.Root.rowIndex(row); idx != -1 {
		t.Root.Rows = append(t.Root.Rows[:idx], t.Root.Rows[idx+1:]...)
		row.parent = nil
		t.dispatcher.Broadcast(Event{Type: EventNodeRemoved, Payload: row})
	}
	t.ensurePlaceholder()
	t.normalizeContainer()
}

// detachGroup unlinks g from its column without pruning, returning the
// source column so the caller can prune after the destination insert. The
// deferred prune keeps the source visible for ghost-drop checks.
func (t *Tree) detachGroup(g *PanelGroup) *Column {
	col := g.parent
	if col == nil {
		return nil
	}
	if idx := col.groupIndex(g); idx != -1 {
		col.Groups = append(col.Groups[:idx], col.Groups[idx+1:]...)
	}
	g.parent = nil
	return col
}

// MoveGroupToColumn moves g into dst at index, implemented as detach then
// insert then prune-source so the emptied-cascade never fires before the
// destination insert lands.
func (t *Tree) MoveGroupToColumn(g *PanelGroup, dst *Column, index int) {
	src := g.parent
	if src == dst {
		if cur := dst.groupIndex(g); cur != -1 && index > cur {
			index--
		}
	}
	srcCol := t.detachGroup(g)
	index = clampIndex(index, len(dst.Groups))
	dst.Groups = append(dst.Groups, nil)
	copy(dst.Groups[index+1:], dst.Groups[index:])
	dst.Groups[index] = g
	g.parent = dst
	g.Height = nil // dropped nodes re-enter fill-space sizing
	if srcCol != nil && srcCol != dst {
		t.pruneColumn(srcCol)
		if srcCol.parent != nil {
			t.normalizeColumn(srcCol)
		}
	}
	t.normalizeColumn(dst)
	t.changed()
}

// MoveGroupToNewColumn moves g into a fresh column inserted into row at
// index, used by the row-gap drop zone.
func (t *Tree) MoveGroupToNewColumn(g *PanelGroup, row *Row, index int) *Column {
	srcCol := t.detachGroup(g)
	col := &Column{parent: row}
	index = clampIndex(index, len(row.Columns))
	row.Columns = append(row.Columns, nil)
	copy(row.Columns[index+1:], row.Columns[index:])
	row.Columns[index] = col
	col.Groups = []*PanelGroup{g}
	g.parent = col
	g.Height = nil
	col.Width = nil
	if srcCol != nil {
		t.pruneColumn(srcCol)
		if srcCol.parent != nil {
			t.normalizeColumn(srcCol)
		}
	}
	t.normalizeColumn(col)
	t.normalizeRow(row)
	t.changed()
	return col
}

// MoveGroupToNewRow moves g into a fresh single-column row inserted at
// index, used by the container-gap drop zone.
func (t *Tree) MoveGroupToNewRow(g *PanelGroup, index int) *Row {
	srcCol := t.detachGroup(g)
	row := &Row{parent: t.Root}
	col := &Column{parent: row}
	row.Columns = []*Column{col}
	index = clampIndex(index, len(t.Root.Rows))
	t.Root.Rows = append(t.Root.Rows, nil)
	copy(t.Root.Rows[index+1:], t.Root.Rows[index:])
	t.Root.Rows[index] = row
	col.Groups = []*PanelGroup{g}
	g.parent = col
	g.Height = nil
	if srcCol != nil {
		t.pruneColumn(srcCol)
		if srcCol.parent != nil {
			t.normalizeColumn(srcCol)
		}
	}
	t.normalizeColumn(col)
	t.normalizeContainer()
	t.changed()
	return row
}

// MovePanelToGroup moves p into dst at index, with the same deferred-prune
// ordering as group moves.
func (t *Tree) MovePanelToGroup(p *Panel, dst *PanelGroup, index int) {
	src := p.parent
	if src == nil {
		return
	}
	cur := src.panelIndex(p)
	if cur == -1 {
		logger.Debug("tree: move of detached panel ignored", "panel", p.ID)
		return
	}
	if src == dst && index > cur {
		index--
	}
	t.detachPanel(src, cur)
	index = clampIndex(index, len(dst.Panels))
	dst.Panels = append(dst.Panels, nil)
	copy(dst.Panels[index+1:], dst.Panels[index:])
	dst.Panels[index] = p
	p.parent = dst
	p.Height = nil
	if !dst.Collapsed {
		dst.ActivePanelID = p.ID
	}
	srcCol := src.parent
	if src != dst {
		t.pruneGroup(src)
	}
	if srcCol != nil {
		t.normalizeColumn(srcCol)
	}
	if dst.parent != nil && dst.parent != srcCol {
		t.normalizeColumn(dst.parent)
	}
	t.changed()
}

// extractPanelAsGroup detaches p and wraps it in a fresh unparented group,
// returning the wrapper and the source column for deferred pruning.
func (t *Tree) extractPanelAsGroup(p *Panel) (*PanelGroup, *PanelGroup) {
	src := p.parent
	if src == nil {
		return nil, nil
	}
	cur := src.panelIndex(p)
	if cur == -1 {
		return nil, nil
	}
	t.detachPanel(src, cur)
	g := &PanelGroup{Panels: []*Panel{p}, ActivePanelID: p.ID}
	p.parent = g
	p.Height = nil
	return g, src
}

// MovePanelToNewGroup moves p into a fresh group inserted into col at index,
// used when a lone panel is dropped in a column interior.
func (t *Tree) MovePanelToNewGroup(p *Panel, col *Column, index int) *PanelGroup {
	g, src := t.extractPanelAsGroup(p)
	if g == nil {
		return nil
	}
	index = clampIndex(index, len(col.Groups))
	col.Groups = append(col.Groups, nil)
	copy(col.Groups[index+1:], col.Groups[index:])
	col.Groups[index] = g
	g.parent = col
	srcCol := colOf(src)
	t.pruneGroup(src)
	if srcCol != nil && srcCol != col && srcCol.parent != nil {
		t.normalizeColumn(srcCol)
	}
	t.normalizeColumn(col)
	t.changed()
	return g
}

// MovePanelToNewColumn moves p into a fresh group inside a fresh column
// inserted into row at index.
func (t *Tree) MovePanelToNewColumn(p *Panel, row *Row, index int) *Column {
	g, src := t.extractPanelAsGroup(p)
	if g == nil {
		return nil
	}
	col := &Column{parent: row, Groups: []*PanelGroup{g}}
	g.parent = col
	index = clampIndex(index, len(row.Columns))
	row.Columns = append(row.Columns, nil)
	copy(row.Columns[index+1:], row.Columns[index:])
	row.Columns[index] = col
	srcCol := colOf(src)
	t.pruneGroup(src)
	if srcCol != nil && srcCol.parent != nil {
		t.normalizeColumn(srcCol)
	}
	t.normalizeColumn(col)
	t.normalizeRow(row)
	t.changed()
	return col
}

// MovePanelToNewRow moves p into a fresh group/column/row inserted at index.
func (t *Tree) MovePanelToNewRow(p *Panel, index int) *Row {
	g, src := t.extractPanelAsGroup(p)
	if g == nil {
		return nil
	}
	row := &Row{parent: t.Root}
	col := &Column{parent: row, Groups: []*PanelGroup{g}}
	row.Columns = []*Column{col}
	g.parent = col
	index = clampIndex(index, len(t.Root.Rows))
	t.Root.Rows = append(t.Root.Rows, nil)
	copy(t.Root.Rows[index+1:], t.Root.Rows[index:])
	t.Root.Rows[index] = row
	srcCol := colOf(src)
	t.pruneGroup(src)
	if srcCol != nil && srcCol.parent != nil {
		t.normalizeColumn(srcCol)
	}
	t.normalizeColumn(col)
	t.normalizeContainer()
	t.changed()
	return row
}

func colOf(g *PanelGroup) *Column {
	if g == nil {
		return nil
	}
	return g.parent
}

// FindPanel returns the panel with the given ID, or nil.
func (t *Tree) FindPanel(id string) *Panel {
	for _, row := range t.Root.Rows {
		for _, col := range row.Columns {
			for _, g := range col.Groups {
				for _, p := range g.Panels {
					if p.ID == id {
						return p
					}
				}
			}
		}
	}
	return nil
}

// Walk visits every group in document order.
func (t *Tree) Walk(fn func(row *Row, col *Column, g *PanelGroup)) {
	for _, row := range t.Root.Rows {
		for _, col := range row.Columns {
			for _, g := range col.Groups {
				fn(row, col, g)
			}
		}
	}
}
