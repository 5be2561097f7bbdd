// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/docktile/render.go
// Summary: tcell rendering of the layout tree for the demo.

package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/docktile/dock"
)

var (
	styleDefault     = tcell.StyleDefault
	styleHeader      = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	styleHeaderOn    = tcell.StyleDefault.Background(tcell.ColorSteelBlue).Foreground(tcell.ColorWhite).Bold(true)
	styleBorder      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlaceholder = tcell.StyleDefault.Background(tcell.ColorDarkGoldenrod).Foreground(tcell.ColorBlack)
	styleStatus      = tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
)

func (d *demo) render() {
	d.screen.Clear()

	d.tree.Walk(func(_ *dock.Row, _ *dock.Column, g *dock.PanelGroup) {
		d.renderGroup(g)
	})
	d.renderBorders()
	d.renderPlaceholder()
	d.renderStatus()

	d.screen.Show()
}

func (d *demo) renderGroup(g *dock.PanelGroup) {
	active := g.ActivePanel()
	for _, p := range g.Panels {
		style := styleHeader
		if p == active {
			style = styleHeaderOn
		}
		marker := "▸ "
		if g.Collapsed {
			marker = "• "
		} else if p == active {
			marker = "▾ "
		}
		d.drawLine(p.HeaderBounds, marker+p.Title, style)
	}
	if active != nil && active.Bounds.H > 0 {
		d.fillRect(active.Bounds, styleDefault)
		d.drawText(active.Bounds.X+1, active.Bounds.Y, active.Bounds.W-2, active.Content, styleDefault)
	}
}

// renderBorders draws the resize handles: right edges of non-last columns and
// bottom edges of non-last rows and groups.
func (d *demo) renderBorders() {
	for ri, row := range d.tree.Root.Rows {
		if ri < len(d.tree.Root.Rows)-1 {
			y := row.Bounds.Y + row.Bounds.H - 1
			for x := row.Bounds.X; x < row.Bounds.X+row.Bounds.W; x++ {
				d.screen.SetContent(x, y, '═', nil, styleBorder)
			}
		}
		for ci, col := range row.Columns {
			if ci < len(row.Columns)-1 {
				x := col.Bounds.X + col.Bounds.W - 1
				for y := col.Bounds.Y; y < col.Bounds.Y+col.Bounds.H; y++ {
					d.screen.SetContent(x, y, '│', nil, styleBorder)
				}
			}
			for gi, g := range col.Groups {
				if gi < len(col.Groups)-1 {
					y := g.Bounds.Y + g.Bounds.H - 1
					for x := g.Bounds.X; x < g.Bounds.X+g.Bounds.W-1; x++ {
						d.screen.SetContent(x, y, '─', nil, styleBorder)
					}
				}
			}
		}
	}
}

// renderPlaceholder draws the insertion marker the coordinator computed for
// the current drag position.
func (d *demo) renderPlaceholder() {
	ph := d.coord.Placeholder()
	if !ph.Visible {
		return
	}
	switch ph.Zone.Kind {
	case dock.ZoneColumnInterior:
		col := ph.Zone.Column
		y := insertCoordY(groupRects(col.Groups), ph.Index, col.Bounds)
		d.hLine(col.Bounds.X, col.Bounds.W, y)
	case dock.ZoneTabStrip:
		g := ph.Zone.Group
		y := insertCoordY(headerRects(g.Panels), ph.Index, g.Bounds)
		d.hLine(g.Bounds.X, g.Bounds.W, y)
	case dock.ZoneContainerGap:
		ct := ph.Zone.Container
		y := insertCoordY(rowRects(ct.Rows), ph.Index, ct.Bounds)
		d.hLine(ct.Bounds.X, ct.Bounds.W, y)
	case dock.ZoneRowGap:
		row := ph.Zone.Row
		x := insertCoordX(columnRects(row.Columns), ph.Index, row.Bounds)
		for y := row.Bounds.Y; y < row.Bounds.Y+row.Bounds.H; y++ {
			d.screen.SetContent(x, y, '┃', nil, stylePlaceholder)
		}
	}
}

func (d *demo) renderStatus() {
	w, h := d.screen.Size()
	line := " a:add  x:close  c:collapse  s:save  l:load  q:quit"
	if d.status != "" {
		line = " " + d.status + "  |" + line
		d.status = ""
	}
	d.drawLine(dock.Rect{X: 0, Y: h - 1, W: w, H: 1}, line, styleStatus)
}

func (d *demo) hLine(x, w, y int) {
	for i := x; i < x+w; i++ {
		d.screen.SetContent(i, y, '━', nil, stylePlaceholder)
	}
}

func (d *demo) drawLine(r dock.Rect, text string, style tcell.Style) {
	for x := r.X; x < r.X+r.W; x++ {
		d.screen.SetContent(x, r.Y, ' ', nil, style)
	}
	d.drawText(r.X+1, r.Y, r.W-2, text, style)
}

func (d *demo) drawText(x, y, maxw int, text string, style tcell.Style) {
	if maxw <= 0 {
		return
	}
	text = runewidth.Truncate(text, maxw, "…")
	cx := x
	for _, r := range text {
		d.screen.SetContent(cx, y, r, nil, style)
		cx += runewidth.RuneWidth(r)
	}
}

func (d *demo) fillRect(r dock.Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			d.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// insertCoordY converts an insertion index over vertically stacked rects into
// the y coordinate of the insert line.
func insertCoordY(rects []dock.Rect, idx int, bounds dock.Rect) int {
	if len(rects) == 0 || idx <= 0 {
		return bounds.Y
	}
	if idx >= len(rects) {
		last := rects[len(rects)-1]
		return last.Y + last.H - 1
	}
	return rects[idx].Y
}

// insertCoordX is the horizontal counterpart for columns in a row.
func insertCoordX(rects []dock.Rect, idx int, bounds dock.Rect) int {
	if len(rects) == 0 || idx <= 0 {
		return bounds.X
	}
	if idx >= len(rects) {
		last := rects[len(rects)-1]
		return last.X + last.W - 1
	}
	return rects[idx].X
}

func groupRects(gs []*dock.PanelGroup) []dock.Rect {
	out := make([]dock.Rect, len(gs))
	for i, g := range gs {
		out[i] = g.Bounds
	}
	return out
}

func headerRects(ps []*dock.Panel) []dock.Rect {
	out := make([]dock.Rect, len(ps))
	for i, p := range ps {
		out[i] = p.HeaderBounds
	}
	return out
}

func rowRects(rs []*dock.Row) []dock.Rect {
	out := make([]dock.Rect, len(rs))
	for i, r := range rs {
		out[i] = r.Bounds
	}
	return out
}

func columnRects(cs []*dock.Column) []dock.Rect {
	out := make([]dock.Rect, len(cs))
	for i, c := range cs {
		out[i] = c.Bounds
	}
	return out
}
