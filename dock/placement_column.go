// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/placement_column.go
// Summary: Placement strategy for column interiors (vertically stacked
// panel groups).

package dock

// columnInteriorStrategy places dragged groups between the groups of a
// column. A dragged panel dropped here is wrapped into a fresh group at the
// insertion index.
type columnInteriorStrategy struct {
	placementState
}

func (s *columnInteriorStrategy) DragEnter(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	s.enterZone(zone, func() []int {
		points := make([]int, len(zone.Column.Groups))
		for i, g := range zone.Column.Groups {
			points[i] = g.Bounds.MidY()
		}
		return points
	})
	s.DragOver(ev, zone, c)
}

func (s *columnInteriorStrategy) DragOver(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	if !s.cache.valid {
		return
	}
	idx := s.cache.indexFor(ev.Y)
	ghost := false
	if mg := c.payload.movingGroup(); mg != nil && mg.parent == zone.Column {
		if cur := zone.Column.groupIndex(mg); cur != -1 {
			ghost = ghostGap(idx, cur)
		}
	}
	s.resolve(zone, idx, ghost, PlaceholderHorizontal, c)
}

func (s *columnInteriorStrategy) DragLeave(zone DropZone, next *DropZone, c *DragCoordinator) {
	s.leaveZone(zone, next, c)
}

func (s *columnInteriorStrategy) Drop(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	idx := s.take(zone)
	if idx == nil {
		return
	}
	switch c.payload.Kind {
	case KindPanelGroup:
		c.tree.MoveGroupToColumn(c.payload.Group, zone.Column, *idx)
	case KindPanel:
		c.tree.MovePanelToNewGroup(c.payload.Panel, zone.Column, *idx)
	}
}
