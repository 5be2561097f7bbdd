// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/node.go
// Summary: Node model for the dockable panel layout tree.
// Usage: Containers own rows, rows own columns, columns own panel groups,
// groups own panels. Every non-root node keeps a non-owning parent reference.

package dock

import "github.com/google/uuid"

// NodeKind tags every node level in the layout tree. Drag payloads and
// placement strategies dispatch on it instead of a type hierarchy.
type NodeKind int

const (
	KindContainer NodeKind = iota
	KindRow
	KindColumn
	KindPanelGroup
	KindPanel
)

func (k NodeKind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	case KindPanelGroup:
		return "panelGroup"
	case KindPanel:
		return "panel"
	}
	return "unknown"
}

// Rect stores computed node bounds in screen pixels. Bounds are refreshed by
// the geometry pass; mutations between passes leave them stale on purpose so
// placement caches keep working mid-gesture.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// MidX returns the horizontal midpoint, the placement axis coordinate for
// horizontally stacked candidates (columns in a row).
func (r Rect) MidX() int { return r.X + r.W/2 }

// MidY returns the vertical midpoint, the placement axis coordinate for
// vertically stacked candidates (rows, groups, panel headers).
func (r Rect) MidY() int { return r.Y + r.H/2 }

// Fixed wraps a pixel size for the nullable size fields. A nil size means
// fill-space.
func Fixed(v float64) *float64 { return &v }

// Container is the root of the layout tree. It always keeps at least one
// child so a drop target exists even when every panel has been closed.
type Container struct {
	Rows   []*Row
	Bounds Rect
}

// Row is a horizontal band of the container holding columns side by side.
// A nil Height fills the remaining vertical space.
type Row struct {
	Height  *float64
	Columns []*Column
	Bounds  Rect

	parent *Container
}

func (r *Row) Parent() *Container { return r.parent }

// Column is a vertical slice of a row holding panel groups stacked top to
// bottom. A nil Width fills the remaining horizontal space.
type Column struct {
	Width  *float64
	Groups []*PanelGroup
	Bounds Rect

	parent *Row
}

func (c *Column) Parent() *Row { return c.parent }

// PanelGroup is a tabbed stack of panels occupying one rectangle. Panel
// headers stack vertically above the active panel's content. A collapsed
// group shows headers only and has no active panel.
type PanelGroup struct {
	Height        *float64
	Collapsed     bool
	ActivePanelID string
	Panels        []*Panel
	Bounds        Rect

	// fill is maintained by the layout service: true on exactly the last
	// uncollapsed group of the column.
	fill bool

	parent *Column
}

func (g *PanelGroup) Parent() *Column { return g.parent }

// Fill reports whether the group currently carries fill-space sizing.
func (g *PanelGroup) Fill() bool { return g.fill }

// ActivePanel returns the active panel, or nil when the group is collapsed
// or the recorded ID no longer resolves.
func (g *PanelGroup) ActivePanel() *Panel {
	if g.Collapsed || g.ActivePanelID == "" {
		return nil
	}
	for _, p := range g.Panels {
		if p.ID == g.ActivePanelID {
			return p
		}
	}
	return nil
}

func (g *PanelGroup) panelIndex(p *Panel) int {
	for i, cand := range g.Panels {
		if cand == p {
			return i
		}
	}
	return -1
}

// Panel is the leaf content holder and the unit end users drag. Content is
// opaque to the engine; Instance optionally carries the host application's
// runtime object attached during restore.
type Panel struct {
	ID          string
	Type        string
	Title       string
	Content     string
	Height      *float64
	Closable    bool
	Movable     bool
	Collapsible bool

	// HeaderBounds is the clickable tab header rectangle, refreshed by the
	// geometry pass alongside Bounds.
	HeaderBounds Rect
	Bounds       Rect

	Instance PanelInstance

	parent *PanelGroup
}

func (p *Panel) Parent() *PanelGroup { return p.parent }

// PanelInstance is the runtime content object a PanelFactory attaches to a
// restored panel. The engine never inspects it beyond its type tag.
type PanelInstance interface {
	PanelType() string
}

// NewPanel builds a panel with sensible flags. An empty id is replaced with
// a fresh UUID so serialization always has a stable identity to reference.
func NewPanel(id, panelType, title string) *Panel {
	if id == "" {
		id = uuid.NewString()
	}
	return &Panel{
		ID:          id,
		Type:        panelType,
		Title:       title,
		Closable:    true,
		Movable:     true,
		Collapsible: true,
	}
}

func (r *Row) columnIndex(c *Column) int {
	for i, cand := range r.Columns {
		if cand == c {
			return i
		}
	}
	return -1
}

func (c *Column) groupIndex(g *PanelGroup) int {
	for i, cand := range c.Groups {
		if cand == g {
			return i
		}
	}
	return -1
}

func (ct *Container) rowIndex(r *Row) int {
	for i, cand := range ct.Rows {
		if cand == r {
			return i
		}
	}
	return -1
}

// uncollapsedGroups returns the column's groups that are currently open.
func (c *Column) uncollapsedGroups() []*PanelGroup {
	var out []*PanelGroup
	for _, g := range c.Groups {
		if !g.Collapsed {
			out = append(out, g)
		}
	}
	return out
}

func clampIndex(idx, length int) int {
	if idx < 0 {
		return 0
	}
	if idx > length {
		return length
	}
	return idx
}
