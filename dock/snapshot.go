// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/snapshot.go
// Summary: Tree serialization to the nested layout format.
// Usage: The field names are the persisted contract shared with FromJSON.

package dock

import "encoding/json"

// Serialized tree format. The field names are the persisted contract; legacy
// payloads predating the rows layer are auto-wrapped on restore.
type containerJSON struct {
	Rows []rowJSON `json:"rows"`
}

type rowJSON struct {
	Height  *float64     `json:"height"`
	Columns []columnJSON `json:"columns"`
}

type columnJSON struct {
	Width  *float64    `json:"width"`
	Groups []groupJSON `json:"panelGroups"`
}

type groupJSON struct {
	Height        *float64    `json:"height"`
	Collapsed     bool        `json:"collapsed"`
	ActivePanelID *string     `json:"activePanelId"`
	Panels        []panelJSON `json:"panels"`
}

type panelJSON struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Height      *float64 `json:"height"`
	Closable    bool     `json:"closable"`
	Movable     bool     `json:"movable"`
	Collapsible bool     `json:"collapsible"`
}

// ToJSON serializes the tree to the nested plain structure.
func (t *Tree) ToJSON() ([]byte, error) {
	out := containerJSON{Rows: make([]rowJSON, 0, len(t.Root.Rows))}
	for _, row := range t.Root.Rows {
		rj := rowJSON{Height: cloneSize(row.Height), Columns: make([]columnJSON, 0, len(row.Columns))}
		for _, col := range row.Columns {
			cj := columnJSON{Width: cloneSize(col.Width), Groups: make([]groupJSON, 0, len(col.Groups))}
			for _, g := range col.Groups {
				gj := groupJSON{
					Height:    cloneSize(g.Height),
					Collapsed: g.Collapsed,
					Panels:    make([]panelJSON, 0, len(g.Panels)),
				}
				if g.ActivePanelID != "" {
					id := g.ActivePanelID
					gj.ActivePanelID = &id
				}
				for _, p := range g.Panels {
					gj.Panels = append(gj.Panels, panelJSON{
						ID:          p.ID,
						Type:        p.Type,
						Title:       p.Title,
						Content:     p.Content,
						Height:      cloneSize(p.Height),
						Closable:    p.Closable,
						Movable:     p.Movable,
						Collapsible: p.Collapsible,
					})
				}
				cj.Groups = append(cj.Groups, gj)
			}
			rj.Columns = append(rj.Columns, cj)
		}
		out.Rows = append(out.Rows, rj)
	}
	return json.MarshalIndent(out, "", "  ")
}

func cloneSize(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
