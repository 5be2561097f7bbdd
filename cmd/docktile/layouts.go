// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/docktile/layouts.go
// Summary: Subcommands for inspecting and deleting saved layouts.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framegrace/docktile/config"
	"github.com/framegrace/docktile/storage"
)

func newLayoutsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Manage saved layouts",
	}
	cmd.AddCommand(newLayoutsListCmd())
	cmd.AddCommand(newLayoutsDeleteCmd())
	return cmd
}

func openStore() (*storage.SQLiteStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}

func newLayoutsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved layout slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			keys, err := store.List()
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved layouts")
				return nil
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func newLayoutsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete a saved layout slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			return store.Delete(args[0])
		},
	}
}
