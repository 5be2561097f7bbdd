// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/layout.go
// Summary: Pixel geometry pass computing bounds for every node.
// Usage: Hosts call Tree.Layout with the viewport; mutations re-run it over
// the last viewport automatically.

package dock

import "math"

// Metrics controls the pixel geometry of the layout pass. Hosts working in
// terminal cells rather than pixels supply cell-sized values instead.
type Metrics struct {
	// HeaderHeight is the height of one panel header line. The tab strip of
	// a group is its panel headers stacked vertically.
	HeaderHeight int

	// Minimum sizes are floors for both the resize controllers and the
	// distribution pass.
	MinPanelHeight float64
	MinColumnWidth float64
	MinRowHeight   float64

	// Defaults pin previously fill-sized nodes that lose fill status before
	// they were ever measured.
	DefaultRowHeight   float64
	DefaultColumnWidth float64
	DefaultGroupHeight float64
}

// DefaultMetrics returns the stock pixel metrics.
func DefaultMetrics() Metrics {
	return Metrics{
		HeaderHeight:       24,
		MinPanelHeight:     48,
		MinColumnWidth:     150,
		MinRowHeight:       80,
		DefaultRowHeight:   240,
		DefaultColumnWidth: 260,
		DefaultGroupHeight: 180,
	}
}

// headerArea is the vertical space a group's stacked panel headers occupy.
func (m Metrics) headerArea(g *PanelGroup) int {
	n := len(g.Panels)
	if n == 0 {
		n = 1 // empty placeholder group still renders one header strip
	}
	return n * m.HeaderHeight
}

// GroupMinHeight is the resize floor for a group: its content minimum plus
// the header region it owns.
func (m Metrics) GroupMinHeight(g *PanelGroup) float64 {
	return m.MinPanelHeight + float64(m.headerArea(g))
}

// Layout computes bounds for every node from the given viewport and
// remembers it so later mutations can re-run geometry.
func (t *Tree) Layout(viewport Rect) {
	t.viewport = viewport
	t.laidOut = true
	t.layout(viewport)
}

func (t *Tree) layout(viewport Rect) {
	t.Root.Bounds = viewport

	sizes := make([]*float64, len(t.Root.Rows))
	mins := make([]float64, len(t.Root.Rows))
	for i, row := range t.Root.Rows {
		sizes[i] = row.Height
		mins[i] = t.Metrics.MinRowHeight
	}
	heights := distribute(viewport.H, sizes, mins)

	y := viewport.Y
	for i, row := range t.Root.Rows {
		row.Bounds = Rect{X: viewport.X, Y: y, W: viewport.W, H: heights[i]}
		t.layoutRow(row)
		y += heights[i]
	}
}

func (t *Tree) layoutRow(row *Row) {
	sizes := make([]*float64, len(row.Columns))
	mins := make([]float64, len(row.Columns))
	for i, col := range row.Columns {
		sizes[i] = col.Width
		mins[i] = t.Metrics.MinColumnWidth
	}
	widths := distribute(row.Bounds.W, sizes, mins)

	x := row.Bounds.X
	for i, col := range row.Columns {
		col.Bounds = Rect{X: x, Y: row.Bounds.Y, W: widths[i], H: row.Bounds.H}
		t.layoutColumn(col)
		x += widths[i]
	}
}

func (t *Tree) layoutColumn(col *Column) {
	sizes := make([]*float64, len(col.Groups))
	mins := make([]float64, len(col.Groups))
	for i, g := range col.Groups {
		if g.Collapsed {
			// Collapsed groups shrink to their header strip no matter what
			// size they carried while open.
			h := float64(t.Metrics.headerArea(g))
			sizes[i] = &h
			mins[i] = h
			continue
		}
		sizes[i] = g.Height
		mins[i] = t.Metrics.GroupMinHeight(g)
	}
	heights := distribute(col.Bounds.H, sizes, mins)

	y := col.Bounds.Y
	for i, g := range col.Groups {
		g.Bounds = Rect{X: col.Bounds.X, Y: y, W: col.Bounds.W, H: heights[i]}
		t.layoutGroup(g)
		y += heights[i]
	}
}

// layoutGroup stacks the panel headers at the top of the group and gives the
// active panel the remaining content area. Inactive panels collapse to their
// header rectangle.
func (t *Tree) layoutGroup(g *PanelGroup) {
	hy := g.Bounds.Y
	for _, p := range g.Panels {
		p.HeaderBounds = Rect{X: g.Bounds.X, Y: hy, W: g.Bounds.W, H: t.Metrics.HeaderHeight}
		p.Bounds = p.HeaderBounds
		hy += t.Metrics.HeaderHeight
	}
	if g.Collapsed {
		return
	}
	active := g.ActivePanel()
	if active == nil {
		return
	}
	contentH := g.Bounds.Y + g.Bounds.H - hy
	if contentH < 0 {
		contentH = 0
	}
	active.Bounds = Rect{X: g.Bounds.X, Y: hy, W: g.Bounds.W, H: contentH}
}

// distribute splits total pixels across children: fixed sizes are clamped to
// their minimum, fill children (nil size) share the remainder. The last fill
// child absorbs rounding leftovers so the axis is always fully covered.
func distribute(total int, sizes []*float64, mins []float64) []int {
	out := make([]int, len(sizes))
	if len(sizes) == 0 {
		return out
	}

	used := 0
	fills := 0
	lastFill := -1
	for i, s := range sizes {
		if s == nil {
			fills++
			lastFill = i
			continue
		}
		v := int(math.Round(math.Max(*s, mins[i])))
		out[i] = v
		used += v
	}

	if fills == 0 {
		return out
	}

	remaining := total - used
	if remaining < 0 {
		remaining = 0
	}
	share := remaining / fills
	for i, s := range sizes {
		if s != nil {
			continue
		}
		v := share
		if i == lastFill {
			v = remaining - share*(fills-1)
		}
		if min := int(math.Round(mins[i])); v < min {
			v = min
		}
		out[i] = v
	}
	return out
}
