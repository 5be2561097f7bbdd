// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/docktile/demo.go
// Summary: Interactive terminal demo of the layout engine.
// Usage: Renders the tree with tcell; mouse drags on headers move panels,
// drags on borders resize, and the keyboard adds/removes panels and
// saves/loads the layout.

package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/docktile/config"
	"github.com/framegrace/docktile/dock"
	"github.com/framegrace/docktile/storage"
)

func newDemoCmd() *cobra.Command {
	var slot string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive layout demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("demo needs an interactive terminal")
			}
			cfg, err := config.Load()
			if err != nil {
				// A broken config file should not block the demo.
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return runDemo(cfg, slot)
		},
	}
	cmd.Flags().StringVar(&slot, "slot", "demo", "layout slot to save/load")
	return cmd
}

// cellMetrics maps the engine's pixel-oriented knobs onto terminal cells.
func cellMetrics() dock.Metrics {
	return dock.Metrics{
		HeaderHeight:       1,
		MinPanelHeight:     2,
		MinColumnWidth:     14,
		MinRowHeight:       4,
		DefaultRowHeight:   10,
		DefaultColumnWidth: 30,
		DefaultGroupHeight: 7,
	}
}

type demoMode int

const (
	modeIdle demoMode = iota
	modeResizing
	modeDragging
)

// demo owns the tcell loop and routes pointer gestures into the engine.
type demo struct {
	screen  tcell.Screen
	tree    *dock.Tree
	coord   *dock.DragCoordinator
	sched   *dock.ManualScheduler
	session *dock.Session
	store   *storage.SQLiteStore

	mode        demoMode
	resizer     *dock.ResizeController
	zone        *dock.DropZone
	pressPanel  *dock.Panel
	pressGroup  *dock.PanelGroup
	pressMoved  bool
	counter     int
	status      string
	activePanel *dock.Panel
}

// Warn implements dock.Notifier on the status line.
func (d *demo) Warn(msg string) { d.status = msg }

func runDemo(cfg config.Config, slot string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	tree := dock.NewTree(cellMetrics())
	d := &demo{
		screen: screen,
		tree:   tree,
		coord:  dock.NewDragCoordinator(tree),
		sched:  &dock.ManualScheduler{},
	}

	reg := dock.NewPanelRegistry()
	reg.Register("demo", func(p *dock.Panel) (dock.PanelInstance, error) {
		return demoContent{}, nil
	})

	path, err := cfg.StoragePath()
	if err == nil {
		if store, serr := storage.Open(path); serr == nil {
			d.store = store
			d.session = dock.NewSession(tree, store, reg, d, slot)
			defer store.Close()
		} else {
			d.status = "storage unavailable: " + serr.Error()
		}
	}

	w, h := screen.Size()
	tree.Layout(dock.Rect{W: w, H: h - 1})
	d.seed()

	for {
		d.sched.Tick()
		d.render()
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := screen.Size()
			tree.Layout(dock.Rect{W: w, H: h - 1})
			screen.Sync()
		case *tcell.EventKey:
			if d.handleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			d.handleMouse(ev)
		}
	}
}

// demoContent is the inert instance behind every demo panel.
type demoContent struct{}

func (demoContent) PanelType() string { return "demo" }

func (d *demo) seed() {
	col := d.tree.Root.Rows[0].Columns[0]
	g := d.tree.AddGroup(col, 0)
	d.tree.AddPanel(g, d.newPanel(), 0)
	d.tree.AddPanel(g, d.newPanel(), 1)
	g2 := d.tree.AddGroup(col, 1)
	d.tree.AddPanel(g2, d.newPanel(), 0)
}

func (d *demo) newPanel() *dock.Panel {
	d.counter++
	p := dock.NewPanel("", "demo", fmt.Sprintf("Panel %d", d.counter))
	p.Content = fmt.Sprintf("content of panel %d", d.counter)
	p.Instance = demoContent{}
	return p
}

func (d *demo) handleKey(ev *tcell.EventKey) (quit bool) {
	switch {
	case ev.Key() == tcell.KeyEscape && d.mode == modeDragging:
		d.coord.EndDrag()
		d.mode = modeIdle
		d.zone = nil
	case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
		return true
	case ev.Rune() == 'a':
		if g := d.targetGroup(); g != nil {
			d.tree.AddPanel(g, d.newPanel(), len(g.Panels))
		} else {
			col := d.tree.Root.Rows[0].Columns[0]
			g := d.tree.AddGroup(col, len(col.Groups))
			d.tree.AddPanel(g, d.newPanel(), 0)
		}
	case ev.Rune() == 'x':
		if p := d.activePanel; p != nil && p.Closable {
			d.tree.RemovePanel(p.Parent(), p)
			d.activePanel = nil
		}
	case ev.Rune() == 'c':
		if g := d.targetGroup(); g != nil && len(g.Panels) > 0 {
			collapsible := true
			for _, p := range g.Panels {
				if !p.Collapsible {
					collapsible = false
				}
			}
			if collapsible {
				d.tree.SetCollapsed(g, !g.Collapsed)
			}
		}
	case ev.Rune() == 's':
		if d.session != nil {
			if err := d.session.SaveLayout(); err == nil {
				d.status = "layout saved"
			}
		}
	case ev.Rune() == 'l':
		if d.session != nil {
			if ok, err := d.session.LoadLayout(); err == nil {
				if ok {
					d.status = "layout loaded"
				} else {
					d.status = "no saved layout"
				}
			}
		}
	}
	return false
}

func (d *demo) targetGroup() *dock.PanelGroup {
	if d.activePanel != nil && d.activePanel.Parent() != nil {
		return d.activePanel.Parent()
	}
	var first *dock.PanelGroup
	d.tree.Walk(func(_ *dock.Row, _ *dock.Column, g *dock.PanelGroup) {
		if first == nil {
			first = g
		}
	})
	return first
}

func (d *demo) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pt := dock.PointerEvent{X: x, Y: y}
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch d.mode {
	case modeResizing:
		if pressed {
			d.resizer.PointerMove(pt)
		} else {
			d.resizer.PointerUp(pt)
			d.resizer = nil
			d.mode = modeIdle
		}
	case modeDragging:
		if pressed {
			d.trackDrag(pt)
		} else {
			if d.zone != nil {
				d.coord.Drop(pt, *d.zone)
			} else {
				d.coord.EndDrag()
			}
			d.mode = modeIdle
			d.zone = nil
		}
	default:
		if !pressed {
			// Release without a press we tracked: a click on a header
			// activates the panel under it.
			if d.pressPanel != nil && !d.pressMoved {
				d.tree.ActivatePanel(d.pressPanel)
				d.activePanel = d.pressPanel
			}
			d.pressPanel = nil
			d.pressGroup = nil
			return
		}
		if d.pressPanel != nil || d.pressGroup != nil {
			// Button held after a header press: promote to a drag once the
			// pointer leaves the press cell.
			d.pressMoved = true
			started := false
			if d.pressGroup != nil {
				started = d.coord.StartGroupDrag(d.pressGroup)
			} else {
				started = d.coord.StartPanelDrag(d.pressPanel)
			}
			d.pressPanel = nil
			d.pressGroup = nil
			if started {
				d.mode = modeDragging
				d.trackDrag(pt)
			}
			return
		}
		if rc := d.resizerAt(x, y); rc != nil {
			d.resizer = rc
			d.resizer.PointerDown(pt)
			d.mode = modeResizing
			return
		}
		if p, g := d.headerAt(x, y); p != nil {
			d.pressPanel = p
			d.pressMoved = false
			if ev.Modifiers()&tcell.ModShift != 0 {
				d.pressPanel = nil
				d.pressGroup = g
			}
		}
	}
}

// trackDrag translates pointer position into enter/leave/over calls on the
// coordinator.
func (d *demo) trackDrag(pt dock.PointerEvent) {
	next := d.zoneAt(pt.X, pt.Y)
	switch {
	case next == nil && d.zone != nil:
		d.coord.DragLeave(*d.zone, nil)
		d.zone = nil
	case next != nil && d.zone == nil:
		d.zone = next
		d.coord.DragEnter(pt, *next)
	case next != nil && !sameDemoZone(*next, *d.zone):
		d.coord.DragLeave(*d.zone, next)
		d.zone = next
		d.coord.DragEnter(pt, *next)
	case next != nil:
		d.coord.DragOver(pt, *next)
	}
}

func sameDemoZone(a, b dock.DropZone) bool {
	return a.Kind == b.Kind && a.Column == b.Column && a.Row == b.Row &&
		a.Container == b.Container && a.Group == b.Group
}

// resizerAt builds a controller for the border under the pointer: the right
// edge of a non-last column, the bottom edge of a non-last row, or the bottom
// edge of a non-last group.
func (d *demo) resizerAt(x, y int) *dock.ResizeController {
	for ri, row := range d.tree.Root.Rows {
		if ri < len(d.tree.Root.Rows)-1 && y == row.Bounds.Y+row.Bounds.H-1 &&
			x >= row.Bounds.X && x < row.Bounds.X+row.Bounds.W {
			return dock.NewRowResizer(d.tree, d.sched, row)
		}
		if !row.Bounds.Contains(x, y) {
			continue
		}
		for ci, col := range row.Columns {
			if ci < len(row.Columns)-1 && x == col.Bounds.X+col.Bounds.W-1 {
				return dock.NewColumnResizer(d.tree, d.sched, col)
			}
			if !col.Bounds.Contains(x, y) {
				continue
			}
			for gi, g := range col.Groups {
				if gi < len(col.Groups)-1 && y == g.Bounds.Y+g.Bounds.H-1 {
					return dock.NewGroupResizer(d.tree, d.sched, g)
				}
			}
		}
	}
	return nil
}

// headerAt returns the panel whose header line is under the pointer and its
// group.
func (d *demo) headerAt(x, y int) (*dock.Panel, *dock.PanelGroup) {
	var panel *dock.Panel
	var group *dock.PanelGroup
	d.tree.Walk(func(_ *dock.Row, _ *dock.Column, g *dock.PanelGroup) {
		for _, p := range g.Panels {
			if p.HeaderBounds.Contains(x, y) {
				panel, group = p, g
			}
		}
	})
	return panel, group
}

// zoneAt classifies the pointer position into a drop zone. Column edges map
// to the row gap, row edges to the container gap, header strips to the tab
// strip, and everything else inside a column to its interior.
func (d *demo) zoneAt(x, y int) *dock.DropZone {
	for ri, row := range d.tree.Root.Rows {
		if ri < len(d.tree.Root.Rows)-1 && y == row.Bounds.Y+row.Bounds.H-1 {
			return &dock.DropZone{Kind: dock.ZoneContainerGap, Container: d.tree.Root}
		}
		if !row.Bounds.Contains(x, y) {
			continue
		}
		for ci, col := range row.Columns {
			if ci < len(row.Columns)-1 && x == col.Bounds.X+col.Bounds.W-1 {
				return &dock.DropZone{Kind: dock.ZoneRowGap, Row: row}
			}
			if !col.Bounds.Contains(x, y) {
				continue
			}
			for _, g := range col.Groups {
				for _, p := range g.Panels {
					if p.HeaderBounds.Contains(x, y) {
						return &dock.DropZone{Kind: dock.ZoneTabStrip, Group: g}
					}
				}
			}
			return &dock.DropZone{Kind: dock.ZoneColumnInterior, Column: col}
		}
	}
	return nil
}
