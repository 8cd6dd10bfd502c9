/*
 * ff.go, part of goCG.
 *
 * Copyright 2026 The goCG authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rmera/gocg/ff"
	"github.com/spf13/cobra"
)

// NewFFCommand creates the ff command and its subcommands.
func NewFFCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ff",
		Short: "Force field commands",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List the available force fields",
		Long: `List the built-in force fields and those read from --ff-dir, with
their residue count and whether they build an elastic network by default.`,
		Args: cobra.NoArgs,
		RunE: runFFList,
	}
	list.Flags().String("ff-dir", "", "directory with additional force field files (json, yaml or toml)")
	cmd.AddCommand(list)
	return cmd
}

func runFFList(cmd *cobra.Command, args []string) error {
	reg := ff.NewRegistry()
	dir, _ := cmd.Flags().GetString("ff-dir")
	if dir != "" {
		if _, err := reg.ScanDir(dir); err != nil {
			return err
		}
	}
	nameColor := color.New(color.FgCyan, color.Bold)
	w := cmd.OutOrStdout()
	for _, name := range reg.Names() {
		F, err := reg.Load(name)
		if err != nil {
			return err
		}
		el := "no"
		if F.Elastic.Enabled {
			el = "yes"
		}
		nameColor.Fprintf(w, "%-12s", name)
		fmt.Fprintf(w, " %3d residues, elastic network: %-3s  %s\n", len(F.Residues), el, F.Description)
	}
	return nil
}
