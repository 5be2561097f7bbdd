// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/log.go
// Summary: Package logger for the dock engine.

package dock

import (
	"io"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(io.Discard, log.Options{Prefix: "dock"})

// SetLogger replaces the package logger. The engine logs mutations and
// recovered protocol violations at debug level; it is silent by default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(io.Discard, log.Options{Prefix: "dock"})
	}
	logger = l
}
