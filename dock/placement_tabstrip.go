// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/placement_tabstrip.go
// Summary: Placement strategy for a group's tab strip (stacked panel
// headers).

package dock

// tabStripStrategy places dragged panels between the headers of a group.
// A dragged group dropped on a foreign tab strip merges its panels into the
// target at the insertion index; dropped on its own strip it is always a
// ghost.
type tabStripStrategy struct {
	placementState
}

func (s *tabStripStrategy) DragEnter(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	s.enterZone(zone, func() []int {
		points := make([]int, len(zone.Group.Panels))
		for i, p := range zone.Group.Panels {
			points[i] = p.HeaderBounds.MidY()
		}
		return points
	})
	s.DragOver(ev, zone, c)
}

func (s *tabStripStrategy) DragOver(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	if !s.cache.valid {
		return
	}
	idx := s.cache.indexFor(ev.Y)
	ghost := false
	switch c.payload.Kind {
	case KindPanel:
		if p := c.payload.Panel; p.parent == zone.Group {
			if cur := zone.Group.panelIndex(p); cur != -1 {
				ghost = ghostGap(idx, cur)
			}
		}
	case KindPanelGroup:
		ghost = c.payload.Group == zone.Group
	}
	s.resolve(zone, idx, ghost, PlaceholderHorizontal, c)
}

func (s *tabStripStrategy) DragLeave(zone DropZone, next *DropZone, c *DragCoordinator) {
	s.leaveZone(zone, next, c)
}

func (s *tabStripStrategy) Drop(ev PointerEvent, zone DropZone, c *DragCoordinator) {
	idx := s.take(zone)
	if idx == nil {
		return
	}
	switch c.payload.Kind {
	case KindPanel:
		c.tree.MovePanelToGroup(c.payload.Panel, zone.Group, *idx)
	case KindPanelGroup:
		// Merge in order; each move lands after the previous one.
		at := *idx
		src := c.payload.Group
		for len(src.Panels) > 0 {
			c.tree.MovePanelToGroup(src.Panels[0], zone.Group, at)
			at++
		}
	}
}
