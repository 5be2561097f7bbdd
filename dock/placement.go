// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/placement.go
// Summary: Placement strategy contract and the shared position cache.
// Usage: One strategy instance per zone kind, registered on the
// coordinator. Strategies are pure placement math plus a per-zone cache;
// the coordinator owns everything else.

package dock

// PlacementStrategy computes insertion indices for one drop-zone kind.
//
// DragEnter builds the position cache once per zone entry; measuring
// bounding boxes forces layout recalculation, so it must never happen on
// every pointer-move. DragOver works from cached midpoints only. Drop
// commits the last computed index, or nothing when the gesture resolved to
// a ghost drop.
type PlacementStrategy interface {
	DragEnter(ev PointerEvent, zone DropZone, c *DragCoordinator)
	DragOver(ev PointerEvent, zone DropZone, c *DragCoordinator)
	DragLeave(zone DropZone, next *DropZone, c *DragCoordinator)
	Drop(ev PointerEvent, zone DropZone, c *DragCoordinator)

	// ClearCache is idempotent and callable with no drag in progress; the
	// coordinator calls it on every strategy at drag end.
	ClearCache()
}

// midpointCache stores candidate midpoints on the zone's placement axis,
// captured on zone entry.
type midpointCache struct {
	valid  bool
	points []int
}

func (mc *midpointCache) build(points []int) {
	mc.points = points
	mc.valid = true
}

func (mc *midpointCache) clear() {
	mc.points = nil
	mc.valid = false
}

// indexFor returns the insertion index: the index of the first candidate
// whose midpoint exceeds coord, or the append position when none does.
func (mc *midpointCache) indexFor(coord int) int {
	for i, p := range mc.points {
		if p > coord {
			return i
		}
	}
	return len(mc.points)
}

// placementState is the cache-and-pending-index pair every strategy embeds.
// A nil pending index means the later Drop does nothing (ghost drop or the
// pointer never produced a target).
type placementState struct {
	cache   midpointCache
	zone    DropZone
	pending *int
}

// enterZone rebuilds the cache unless it is still valid for the same zone,
// which happens when DragLeave kept it for a descendant move.
func (ps *placementState) enterZone(zone DropZone, measure func() []int) {
	if ps.cache.valid && sameZone(ps.zone, zone) {
		return
	}
	ps.zone = zone
	ps.pending = nil
	ps.cache.build(measure())
}

// leaveZone invalidates the cache unless the pointer moved into a descendant
// still inside the same zone.
func (ps *placementState) leaveZone(zone DropZone, next *DropZone, c *DragCoordinator) {
	if next != nil && sameZone(zone, *next) {
		return
	}
	ps.ClearCache()
	c.HidePlaceholder()
}

// resolve records idx as pending and shows the placeholder, or suppresses a
// ghost drop by hiding it and recording nil.
func (ps *placementState) resolve(zone DropZone, idx int, ghost bool, mode PlaceholderMode, c *DragCoordinator) {
	if ghost {
		ps.pending = nil
		c.HidePlaceholder()
		return
	}
	ps.pending = &idx
	c.ShowPlaceholder(zone, mode, idx)
}

// take returns the committed index for zone, nil for a no-op drop.
func (ps *placementState) take(zone DropZone) *int {
	if !sameZone(ps.zone, zone) {
		return nil
	}
	return ps.pending
}

func (ps *placementState) ClearCache() {
	ps.cache.clear()
	ps.pending = nil
	ps.zone = DropZone{}
}

// ghostGap reports whether idx is one of the two gaps adjacent to the
// candidate currently at cur; dropping there reproduces the origin.
func ghostGap(idx, cur int) bool {
	return idx == cur || idx == cur+1
}
