// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/placement_rowgap.go
// Summary: Placement strategy for the gaps between a row's columns.

package dock

// rowGapStrategy creates a new column at a gap between existing columns.
// Ghost drops: when the moving unit is its column's sole remaining group,
// both gaps adjacent to that column would reproduce the origin after the
// source column prunes away, so both suppress.
type rowGapStrategy struct {
	placementState
}

func (s *rowGapStrategy) DragEnter(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	s.enterZone(zone, func() []int {
		points := make([]int, len(zone.Row.Columns))
		for i, col := range zone.Row.Columns {
			points[i] = col.Bounds.MidX()
		}
		return points
	})
	s.DragOver(ev, zone, c)
}

func (s *rowGapStrategy) DragOver(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	if !s.cache.valid {
		return
	}
	idx := s.cache.indexFor(ev.X)
	ghost := false
	if mg := c.payload.movingGroup(); mg != nil && mg.parent != nil {
		col := mg.parent
		if len(col.Groups) == 1 && col.parent == zone.Row {
			if cur := zone.Row.columnIndex(col); cur != -1 {
				ghost = ghostGap(idx, cur)
			}
		}
	}
	s.resolve(zone, idx, ghost, PlaceholderVertical, c)
}

func (s *rowGapStrategy) DragLeave(zone DropZone, next *DropZone, c *DragCoordinator) {
	s.leaveZone(zone, next, c)
}

func (s *rowGapStrategy) Drop(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	idx := s.take(zone)
	if idx == nil {
		return
	}
	switch c.payload.Kind {
	case KindPanelGroup:
		c.tree.MoveGroupToNewColumn(c.payload.Group, zone.Row, *idx)
	case KindPanel:
		c.tree.MovePanelToNewColumn(c.payload.Panel, zone.Row, *idx)
	}
}
