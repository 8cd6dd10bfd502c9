/*
 * ss.go, part of goCG.
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

	"github.com/rmera/gocg/ss"
	"github.com/spf13/cobra"
)

// NewSSCommand creates the ss command.
func NewSSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ss [input.pdb]",
		Short: "Print the secondary structure of each chain",
		Long: `Assign the secondary structure of each chain in the input, and print it
in FASTA-like format, one DSSP code per residue.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSS,
	}
	f := cmd.Flags()
	f.StringP("input", "f", "", "input PDB file")
	f.Bool("phi-psi", false, "also require the backbone dihedrals to match")
	f.Bool("hydrogens", false, "keep hydrogens from the input")
	f.String("altloc", "A", "alternate location to read")
	return cmd
}

func runSS(cmd *cobra.Command, args []string) error {
	C, log, _, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer log.Sync()
	chains, err := readInput(C)
	if err != nil {
		return err
	}
	O := ss.DefaultOptions()
	O.PhiPsi(C.PhiPsi)
	w := cmd.OutOrStdout()
	for _, c := range chains {
		labels := ss.Classify(c, O)
		fmt.Fprintf(w, ">%s\n%s\n%s\n", c.ID, c.Sequence(), labels)
	}
	return nil
}
