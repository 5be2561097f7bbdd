// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/drag.go
// Summary: Drag-and-drop coordinator owning drag state and the shared
// placeholder.
// Usage: One coordinator per tree, constructor-injected into the host and
// never a process-wide singleton, so isolated coordinators can be built per
// test. Strategies are resolved through a zone-kind keyed registry.

package dock

// DragState is the coordinator's two-state machine.
type DragState int

const (
	DragIdle DragState = iota
	DragActive
)

// ZoneKind identifies which placement strategy governs a drop target.
type ZoneKind string

const (
	ZoneColumnInterior ZoneKind = "column-interior"
	ZoneRowGap         ZoneKind = "row-gap"
	ZoneContainerGap   ZoneKind = "container-gap"
	ZoneTabStrip       ZoneKind = "tab-strip"
)

// DropZone names a drop target: the kind selects the strategy, the target
// pointer matching that kind selects the parent being dropped into.
type DropZone struct {
	Kind      ZoneKind
	Column    *Column     // column-interior
	Row       *Row        // row-gap
	Container *Container  // container-gap
	Group     *PanelGroup // tab-strip
}

func sameZone(a, b DropZone) bool {
	return a.Kind == b.Kind && a.Column == b.Column && a.Row == b.Row &&
		a.Container == b.Container && a.Group == b.Group
}

// DragPayload describes what is being dragged and where it came from.
type DragPayload struct {
	Kind         NodeKind // KindPanelGroup or KindPanel
	Group        *PanelGroup
	Panel        *Panel
	SourceGroup  *PanelGroup
	SourceColumn *Column
}

// movingGroup resolves the group that effectively moves: the dragged group
// itself, or, when the payload is the last remaining panel of its group,
// that group, since committing the drop dissolves it. Ghost-drop checks key
// off this so a lone tab behaves exactly like its group (both adjacent gaps
// suppress).
func (p DragPayload) movingGroup() *PanelGroup {
	switch p.Kind {
	case KindPanelGroup:
		return p.Group
	case KindPanel:
		if p.SourceGroup != nil && len(p.SourceGroup.Panels) == 1 {
			return p.SourceGroup
		}
	}
	return nil
}

// PlaceholderMode tells the view layer how to render the insertion marker.
type PlaceholderMode int

const (
	// PlaceholderHorizontal is a horizontal insert line between vertically
	// stacked candidates (rows, groups, tab headers).
	PlaceholderHorizontal PlaceholderMode = iota
	// PlaceholderVertical is a vertical insert line between horizontally
	// stacked candidates (columns).
	PlaceholderVertical
)

// Placeholder is the single shared insertion marker. The coordinator is its
// only writer; strategies go through ShowPlaceholder/HidePlaceholder so two
// zones can never fight over it mid-gesture.
type Placeholder struct {
	Visible bool
	Mode    PlaceholderMode
	Zone    DropZone
	Index   int
}

// DragCoordinator owns current-drag state and dispatches drag callbacks to
// the strategy registered for the target zone's kind.
type DragCoordinator struct {
	tree        *Tree
	state       DragState
	payload     DragPayload
	placeholder Placeholder
	strategies  map[ZoneKind]PlacementStrategy
}

// NewDragCoordinator builds a coordinator with the four built-in strategies
// registered.
func NewDragCoordinator(t *Tree) *DragCoordinator {
	c := &DragCoordinator{
		tree:       t,
		strategies: make(map[ZoneKind]PlacementStrategy),
	}
	c.Register(ZoneColumnInterior, &columnInteriorStrategy{})
	c.Register(ZoneRowGap, &rowGapStrategy{})
	c.Register(ZoneContainerGap, &containerGapStrategy{})
	c.Register(ZoneTabStrip, &tabStripStrategy{})
	return c
}

// Register installs (or replaces) the strategy for a zone kind.
func (c *DragCoordinator) Register(kind ZoneKind, s PlacementStrategy) {
	c.strategies[kind] = s
}

// State returns the coordinator state.
func (c *DragCoordinator) State() DragState { return c.state }

// Payload returns the current drag payload; zero value while idle.
func (c *DragCoordinator) Payload() DragPayload { return c.payload }

// Placeholder returns the shared placeholder for rendering.
func (c *DragCoordinator) Placeholder() Placeholder { return c.placeholder }

// StartGroupDrag begins dragging a panel group.
func (c *DragCoordinator) StartGroupDrag(g *PanelGroup) bool {
	if c.state != DragIdle || g == nil || g.parent == nil {
		return false
	}
	c.payload = DragPayload{Kind: KindPanelGroup, Group: g, SourceColumn: g.parent}
	c.state = DragActive
	c.tree.dispatcher.Broadcast(Event{Type: EventDragStarted, Payload: c.payload})
	logger.Debug("drag: group drag started")
	return true
}

// StartPanelDrag begins dragging a single panel. Immovable panels refuse.
func (c *DragCoordinator) StartPanelDrag(p *Panel) bool {
	if c.state != DragIdle || p == nil || p.parent == nil || !p.Movable {
		return false
	}
	c.payload = DragPayload{Kind: KindPanel, Panel: p, SourceGroup: p.parent}
	c.state = DragActive
	c.tree.dispatcher.Broadcast(Event{Type: EventDragStarted, Payload: c.payload})
	logger.Debug("drag: panel drag started", "panel", p.ID)
	return true
}

// DragEnter dispatches zone entry to the registered strategy, which builds
// its position cache there; bounding-box measurement happens once per zone
// entry, never per pointer-move.
func (c *DragCoordinator) DragEnter(ev PointerEvent, zone DropZone) {
	if c.state != DragActive {
		return
	}
	if s, ok := c.strategies[zone.Kind]; ok {
		s.DragEnter(ev, zone, c)
	}
}

// DragOver dispatches pointer movement over a zone.
func (c *DragCoordinator) DragOver(ev PointerEvent, zone DropZone) {
	if c.state != DragActive {
		return
	}
	if s, ok := c.strategies[zone.Kind]; ok {
		s.DragOver(ev, zone, c)
	}
}

// DragLeave dispatches zone exit. next is the zone the pointer moved into,
// nil when unknown; strategies keep their cache when next is still the same
// zone (the platform related-target containment check).
func (c *DragCoordinator) DragLeave(zone DropZone, next *DropZone) {
	if c.state != DragActive {
		return
	}
	if s, ok := c.strategies[zone.Kind]; ok {
		s.DragLeave(zone, next, c)
	}
}

// Drop commits the drag over the zone. A drop with no recorded drag payload
// (a gesture that originated outside the tree) is silently ignored.
func (c *DragCoordinator) Drop(ev PointerEvent, zone DropZone) {
	if c.state != DragActive {
		logger.Debug("drag: drop without drag payload ignored")
		return
	}
	if s, ok := c.strategies[zone.Kind]; ok {
		s.Drop(ev, zone, c)
	}
	c.EndDrag()
}

// EndDrag leaves DRAGGING no matter how the gesture terminated. Every
// registered strategy gets a ClearCache so an abnormal end (e.g.
// cancellation) cannot leak a stale position cache into the next drag.
func (c *DragCoordinator) EndDrag() {
	if c.state == DragIdle {
		return
	}
	c.state = DragIdle
	c.payload = DragPayload{}
	c.HidePlaceholder()
	for _, s := range c.strategies {
		s.ClearCache()
	}
	c.tree.dispatcher.Broadcast(Event{Type: EventDragEnded})
}

// ShowPlaceholder positions the shared placeholder for strategies.
func (c *DragCoordinator) ShowPlaceholder(zone DropZone, mode PlaceholderMode, index int) {
	c.placeholder = Placeholder{Visible: true, Mode: mode, Zone: zone, Index: index}
}

// HidePlaceholder hides the shared placeholder.
func (c *DragCoordinator) HidePlaceholder() {
	c.placeholder = Placeholder{}
}
