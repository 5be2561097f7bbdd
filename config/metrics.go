// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/metrics.go
// Summary: Bridge from the on-disk layout section to engine metrics.

package config

import "github.com/framegrace/docktile/dock"

// Metrics converts the layout section into the engine's metric set. Hosts
// working in terminal cells rather than pixels supply their own values
// instead.
func (c Config) Metrics() dock.Metrics {
	return dock.Metrics{
		HeaderHeight:       c.Layout.HeaderHeight,
		MinPanelHeight:     float64(c.Layout.MinPanelHeight),
		MinColumnWidth:     float64(c.Layout.MinColumnWidth),
		MinRowHeight:       float64(c.Layout.MinRowHeight),
		DefaultRowHeight:   float64(c.Layout.DefaultRowHeight),
		DefaultColumnWidth: float64(c.Layout.DefaultColumnWidth),
		DefaultGroupHeight: float64(c.Layout.DefaultGroupHeight),
	}
}
