// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/placement_containergap.go
// Summary: Placement strategy for the gaps between the container's rows.

package dock

// containerGapStrategy creates a new single-column row at a gap between
// existing rows. The ghost case mirrors the row gap: a moving unit that is
// the sole content of a single-column row suppresses both adjacent gaps.
type containerGapStrategy struct {
	placementState
}

func (s *containerGapStrategy) DragEnter(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	s.enterZone(zone, func() []int {
		points := make([]int, len(zone.Container.Rows))
		for i, row := range zone.Container.Rows {
			points[i] = row.Bounds.MidY()
		}
		return points
	})
	s.DragOver(ev, zone, c)
}

func (s *containerGapStrategy) DragOver(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	if !s.cache.valid {
		return
	}
	idx := s.cache.indexFor(ev.Y)
	ghost := false
	if mg := c.payload.movingGroup(); mg != nil && mg.parent != nil {
		col := mg.parent
		if len(col.Groups) == 1 && col.parent != nil && len(col.parent.Columns) == 1 {
			if cur := zone.Container.rowIndex(col.parent); cur != -1 {
				ghost = ghostGap(idx, cur)
			}
		}
	}
	s.resolve(zone, idx, ghost, PlaceholderHorizontal, c)
}

func (s *containerGapStrategy) DragLeave(zone DropZone, next *DropZone, c *DragCoordinator) {
	s.leaveZone(zone, next, c)
}

func (s *containerGapStrategy) Drop(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	idx := s.take(zone)
	if idx == nil {
		return
	}
	switch c.payload.Kind {
	case KindPanelGroup:
		c.tree.MoveGroupToNewRow(c.payload.Group, *idx)
	case KindPanel:
		c.tree.MovePanelToNewRow(c.payload.Panel, *idx)
	}
}
