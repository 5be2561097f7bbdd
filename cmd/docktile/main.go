// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/docktile/main.go
// Summary: CLI entry point with root command and logging setup.

package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/framegrace/docktile/dock"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "docktile",
		Short:        "Docktile is a dockable panel layout engine",
		Long:         `Docktile manages rows, columns and tabbed panel groups with drag-and-drop rearrangement, pointer resizing and persistent layouts.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
				Level:  level,
				Prefix: "docktile",
			})
			dock.SetLogger(logger)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDemoCmd())
	root.AddCommand(newLayoutsCmd())

	return root.Execute()
}
