// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/snapshot_restore.go
// Summary: Tree restore from serialized layouts, with legacy wrapping and
// per-node defaulting.
// Usage: Malformed nodes degrade to defaults instead of aborting the load;
// a single bad entry must never cost the user the whole layout.

package dock

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// PanelFactory builds the runtime content instance for one panel type
// during restore. The returned instance is attached to the panel; a nil
// instance is allowed for inert panels.
type PanelFactory func(p *Panel) (PanelInstance, error)

// PanelRegistry maps panel type tags to factories. Unknown types restore as
// plain panels with no instance.
type PanelRegistry struct {
	mu        sync.RWMutex
	factories map[string]PanelFactory
}

// NewPanelRegistry creates an empty registry.
func NewPanelRegistry() *PanelRegistry {
	return &PanelRegistry{factories: make(map[string]PanelFactory)}
}

// Register installs a factory for a panel type.
func (r *PanelRegistry) Register(panelType string, f PanelFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[panelType] = f
}

func (r *PanelRegistry) lookup(panelType string) PanelFactory {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.factories[panelType]
}

// FromJSON replaces the tree contents with the serialized layout. Legacy
// payloads missing the "rows" key are wrapped into one synthetic row.
// Defaulting applies per node; only undecodable top-level JSON is an error.
func (t *Tree) FromJSON(data []byte, reg *PanelRegistry) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode layout: %w", err)
	}

	var rows []json.RawMessage
	if rowsRaw, ok := raw["rows"]; ok {
		if err := json.Unmarshal(rowsRaw, &rows); err != nil {
			logger.Debug("restore: unreadable rows list, starting empty")
			rows = nil
		}
	} else if _, ok := raw["columns"]; ok {
		// Legacy layout: the whole payload is a single row.
		rows = []json.RawMessage{data}
		logger.Debug("restore: wrapped legacy columns payload into one row")
	}

	container := &Container{}
	for _, rowRaw := range rows {
		var rj rowJSON
		if err := json.Unmarshal(rowRaw, &rj); err != nil {
			logger.Debug("restore: skipping undecodable row")
			continue
		}
		row := &Row{Height: rj.Height, parent: container}
		for _, cj := range rj.Columns {
			col := &Column{Width: cj.Width, parent: row}
			for _, gj := range cj.Groups {
				g := t.restoreGroup(gj, col, reg)
				if len(g.Panels) == 0 {
					continue // empty groups never survive a mutation; drop them here too
				}
				col.Groups = append(col.Groups, g)
			}
			if len(col.Groups) > 0 {
				row.Columns = append(row.Columns, col)
			}
		}
		if len(row.Columns) > 0 {
			container.Rows = append(container.Rows, row)
		}
	}

	t.Root = container
	t.ensurePlaceholder()
	t.normalizeContainer()
	for _, row := range t.Root.Rows {
		t.normalizeRow(row)
		for _, col := range row.Columns {
			t.normalizeColumn(col)
		}
	}
	t.changed()
	return nil
}

func (t *Tree) restoreGroup(gj groupJSON, col *Column, reg *PanelRegistry) *PanelGroup {
	g := &PanelGroup{
		Height:    gj.Height,
		Collapsed: gj.Collapsed,
		parent:    col,
	}
	for _, pj := range gj.Panels {
		p := &Panel{
			ID:          pj.ID,
			Type:        pj.Type,
			Title:       pj.Title,
			Content:     pj.Content,
			Height:      pj.Height,
			Closable:    pj.Closable,
			Movable:     pj.Movable,
			Collapsible: pj.Collapsible,
			parent:      g,
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if f := reg.lookup(p.Type); f != nil {
			inst, err := f(p)
			if err != nil {
				logger.Debug("restore: panel factory failed, keeping inert panel",
					"type", p.Type, "err", err)
			} else {
				p.Instance = inst
			}
		}
		g.Panels = append(g.Panels, p)
	}

	// Active panel: honor the recorded ID when it resolves, else fall back
	// to the first panel. Collapsed groups carry none.
	if !g.Collapsed && len(g.Panels) > 0 {
		g.ActivePanelID = g.Panels[0].ID
		if gj.ActivePanelID != nil {
			for _, p := range g.Panels {
				if p.ID == *gj.ActivePanelID {
					g.ActivePanelID = p.ID
					break
				}
			}
		}
	}
	return g
}
