/*
 * root.go, part of goCG.
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

// Package commands implements the gocg command line.
package commands

import (
	"context"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/rmera/gocg/internal/cli/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version information, set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command. Without a subcommand, it runs the
// coarse-graining, as the run command does.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gocg [input.pdb]",
		Short: "Coarse-grained topologies for proteins",
		Long: color.CyanString(`goCG builds coarse-grained (Martini-like) models of proteins.

From an atomistic structure it assigns the secondary structure of each residue,
maps the atoms to beads, and writes a Gromacs topology with the bonded terms
and, optionally, an elastic network.`),
		Args:          cobra.MaximumNArgs(1),
		RunE:          runRun,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file (default: gocg.yaml, if present)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every step")
	addRunFlags(rootCmd)

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewFFCommand())
	rootCmd.AddCommand(NewSSCommand())
	rootCmd.AddCommand(NewVersionCommand())
	return rootCmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			w := cmd.OutOrStdout()
			titleColor.Fprint(w, "goCG version: ")
			fmt.Fprintln(w, Version)
			titleColor.Fprint(w, "Git commit: ")
			fmt.Fprintln(w, GitCommit)
			titleColor.Fprint(w, "Build date: ")
			fmt.Fprintln(w, BuildDate)
			titleColor.Fprint(w, "Go version: ")
			fmt.Fprintln(w, runtime.Version())
		},
	}
}

// newLogger returns a development logger if verbose, otherwise a production
// one that only reports warnings and errors.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// Execute runs the root command with the process arguments. Cancelling ctx
// stops the processing of the chains not yet started.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.Error(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}
