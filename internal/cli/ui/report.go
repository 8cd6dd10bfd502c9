/*
 * report.go, part of goCG.
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

// Package ui prints run results on the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/pipeline"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
)

// MaxSS is the number of secondary structure labels shown per chain.
var MaxSS = 60

func ellipsis(s string, n int) string {
	if n <= 3 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// Report prints a summary of R: one line per chain and the totals.
func Report(w io.Writer, R *pipeline.Report) {
	titleColor.Fprintf(w, "Run %s, force field %s\n", R.RunID, R.ForceField)
	for _, c := range R.Chains {
		id := c.ChainID
		if id == "" {
			id = "-"
		}
		if c.Err != nil {
			errorColor.Fprintf(w, "  ✗ chain %-2s ", id)
			fmt.Fprintln(w, c.Err)
			continue
		}
		successColor.Fprintf(w, "  ✓ chain %-2s ", id)
		fmt.Fprintf(w, "%4d residues %5d beads %5d terms  ", len(c.Labels), c.Topology.Len(), len(c.Topology.Terms))
		dimColor.Fprintln(w, ellipsis(c.Labels.String(), MaxSS))
	}
	T := R.Topology
	fmt.Fprintf(w, "Total: %d beads, charge %+.1f, %d terms (%d elastic) in %s\n",
		T.Len(), T.Charge(), len(T.Terms), T.Count(cg.Elastic), R.Elapsed.Round(time.Millisecond))
	if R.UnmappedResidues > 0 || R.MissingAtoms > 0 {
		warningColor.Fprintf(w, "Warning: %d unmapped residues, %d missing atoms\n", R.UnmappedResidues, R.MissingAtoms)
	}
	if f := R.Failed(); len(f) > 0 {
		errorColor.Fprintf(w, "%d of %d chains failed\n", len(f), len(R.Chains))
	}
}

// Written prints the list of files written.
func Written(w io.Writer, files []string) {
	if len(files) == 0 {
		return
	}
	titleColor.Fprintln(w, "Written:")
	fmt.Fprintln(w, "  "+strings.Join(files, "\n  "))
}

// Error prints err in red.
func Error(w io.Writer, err error) {
	errorColor.Fprintf(w, "Error: %v\n", err)
}

// Warn prints a warning in yellow.
func Warn(w io.Writer, format string, args ...any) {
	warningColor.Fprintf(w, "Warning: "+format+"\n", args...)
}
