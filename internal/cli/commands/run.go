/*
 * run.go, part of goCG.
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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/cgplot"
	"github.com/rmera/gocg/ff"
	"github.com/rmera/gocg/internal/cli/ui"
	"github.com/rmera/gocg/internal/config"
	"github.com/rmera/gocg/internal/zio"
	"github.com/rmera/gocg/pdb"
	"github.com/rmera/gocg/pipeline"
	"github.com/rmera/gocg/ss"
	"github.com/rmera/gocg/top"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input.pdb]",
		Short: "Build the coarse-grained model of a protein",
		Long: `Read a protein structure, assign the secondary structure, map it to beads
and write the Gromacs topology (.top and one .itp per chain, or a single one with
--merge) and the coarse-grained coordinates (.gro).

Input and output structure files may be compressed with gzip (.gz) or zstd (.zst).`,
		Example: `  # Martini 2.2 model of all the chains in the file
  gocg run -f 1ubq.pdb

  # Elnedyn model with the elastic network also between chains, in one molecule
  gocg run -f dimer.pdb.gz --forcefield elnedyn22 --cross-chain -o out

  # Secondary structure from a DSSP file, and a coarse-grained PDB
  gocg run -f 1ubq.pdb --dssp 1ubq.dssp --cg-pdb cg.pdb`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "f", "", "input PDB file")
	f.String("forcefield", "martini22", "force field")
	f.String("ff-dir", "", "directory with additional force field files (json, yaml or toml)")
	f.String("elastic", "default", "elastic network: default (as the force field says), on or off")
	f.Float64("elastic-upper", 0, "elastic network upper cutoff, in nm (0: force field value)")
	f.Float64("elastic-k", 0, "elastic network force constant (0: force field value)")
	f.Bool("cross-chain", false, "elastic network also between chains (implies --merge)")
	f.String("ss", "", "secondary structure, one DSSP code per residue of all chains")
	f.String("dssp", "", "read the secondary structure from this DSSP file")
	f.Bool("phi-psi", false, "also require the backbone dihedrals to match in the secondary structure assignment")
	f.Bool("centroid", false, "place beads at the geometric center of their atoms, not the center of mass")
	f.Bool("neutral-termini", false, "don't charge the chain termini")
	f.Bool("hydrogens", false, "keep hydrogens from the input")
	f.String("altloc", "A", "alternate location to read")
	f.Int("cpus", 0, "chains processed in parallel (0: all CPUs)")
	f.Bool("merge", false, "write all chains as a single molecule")
	f.StringP("output", "o", ".", "output directory")
	f.String("top", "topol.top", "topology file name")
	f.String("gro", "cg.gro", "coarse-grained structure file name")
	f.String("cg-pdb", "", "also write the coarse-grained structure as PDB")
	f.Bool("plot", false, "plot the secondary structure and the elastic network")
}

// ffIncludes are the Gromacs parameter files of the built-in force fields.
var ffIncludes = map[string]string{
	"martini22": "martini_v2.2.itp",
	"elnedyn22": "martini_v2.2.itp",
}

func ffInclude(name string) string {
	if inc, ok := ffIncludes[strings.ToLower(name)]; ok {
		return inc
	}
	return strings.ToLower(name) + ".itp"
}

// setup loads the configuration, the logger and the force field registry.
func setup(cmd *cobra.Command, args []string) (*config.Config, *zap.Logger, *ff.Registry, error) {
	path, _ := cmd.Flags().GetString("config")
	C, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}
	if len(args) > 0 {
		C.Input = args[0]
	}
	log, err := newLogger(C.Verbose)
	if err != nil {
		return nil, nil, nil, err
	}
	reg := ff.NewRegistry()
	if C.FFDir != "" {
		names, err := reg.ScanDir(C.FFDir)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("force fields loaded", zap.String("dir", C.FFDir), zap.Strings("names", names))
	}
	return C, log, reg, nil
}

// readInput reads the protein chains in the input file.
func readInput(C *config.Config) ([]*cg.Chain, error) {
	if C.Input == "" {
		return nil, fmt.Errorf("no input file given")
	}
	po := pdb.DefaultOptions()
	po.Hydrogens(C.Hydrogens)
	if C.AltLoc != "" {
		po.AltLoc(C.AltLoc[0])
	}
	chains, err := pdb.ReadFile(C.Input, po)
	if err != nil {
		return nil, err
	}
	if len(chains) == 0 {
		return nil, fmt.Errorf("%s: no protein chains found", C.Input)
	}
	return chains, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	C, log, reg, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer log.Sync()
	chains, err := readInput(C)
	if err != nil {
		return err
	}
	O, err := C.Options(reg, log)
	if err != nil {
		return err
	}
	O.SS(C.SS)
	if C.DSSP != "" {
		m, err := readDSSP(C.DSSP)
		if err != nil {
			return err
		}
		O.ChainSS(m)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	R, err := pipeline.Run(ctx, chains, O)
	if R == nil {
		return err
	}
	out := cmd.OutOrStdout()
	ui.Report(out, R)
	if err != nil {
		return err
	}
	if R.Topology.Len() == 0 {
		return fmt.Errorf("no chain could be processed")
	}
	files, werr := writeOutputs(C, R)
	ui.Written(out, files)
	if werr != nil {
		return werr
	}
	if f := R.Failed(); len(f) > 0 {
		return fmt.Errorf("%d of %d chains failed: %w", len(f), len(R.Chains), R.Err())
	}
	return nil
}

func readDSSP(name string) (map[string]string, error) {
	f, err := zio.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ss.ReadDSSP(f)
}

// create writes the file name with write. The file is compressed if its name ends in .gz or .zst.
func create(name string, write func(w io.Writer) error) error {
	f, err := zio.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

// molecule is a topology to be written as a Gromacs molecule type.
type molecule struct {
	name string
	T    *cg.Topology
}

// molecules returns the molecule types to write: one per successful chain, named
// Protein_<chain>, or, if merge, a single one called Protein.
func molecules(R *pipeline.Report, merge bool) []molecule {
	if merge {
		return []molecule{{"Protein", R.Topology}}
	}
	var ret []molecule
	seen := make(map[string]bool)
	for _, c := range R.Chains {
		if c.Topology == nil {
			continue
		}
		name := "Protein"
		if c.ChainID != "" {
			name += "_" + c.ChainID
		}
		//several chains can share an ID.
		if seen[name] {
			name = fmt.Sprintf("%s_%d", name, c.Index+1)
		}
		seen[name] = true
		ret = append(ret, molecule{name, c.Topology})
	}
	return ret
}

// writeOutputs writes the topology and structure files for R, and returns their names.
func writeOutputs(C *config.Config, R *pipeline.Report) ([]string, error) {
	if err := os.MkdirAll(C.Output, 0o755); err != nil {
		return nil, err
	}
	var files []string
	path := func(name string) string {
		p := filepath.Join(C.Output, name)
		files = append(files, p)
		return p
	}
	title := strings.TrimSuffix(filepath.Base(C.Input), filepath.Ext(C.Input))
	mols := molecules(R, C.Merge || C.CrossChain)
	names := make([]string, len(mols))
	for i, m := range mols {
		names[i] = m.name
		err := create(path(m.name+".itp"), func(w io.Writer) error {
			return top.WriteITP(w, m.T, m.name, R.ForceField)
		})
		if err != nil {
			return files, err
		}
	}
	err := create(path(C.Top), func(w io.Writer) error {
		return top.WriteTop(w, "Coarse-grained "+title, ffInclude(R.ForceField), names)
	})
	if err != nil {
		return files, err
	}
	err = create(path(C.Gro), func(w io.Writer) error {
		return top.WriteGro(w, R.Topology, "Coarse-grained "+title)
	})
	if err != nil {
		return files, err
	}
	if C.PDB != "" {
		err = create(path(C.PDB), func(w io.Writer) error {
			return pdb.WriteBeads(w, R.Topology, "Coarse-grained "+title)
		})
		if err != nil {
			return files, err
		}
	}
	if !C.Plot {
		return files, nil
	}
	if err := cgplot.SSTrack(R.Topology.Labels, "Secondary structure of "+title, path("ss.png")); err != nil {
		return files, err
	}
	if R.Topology.Count(cg.Elastic) > 0 {
		if err := cgplot.ContactMap(R.Topology, "Elastic network of "+title, path("elastic.png")); err != nil {
			return files, err
		}
		if err := cgplot.ForceHistogram(R.Topology, 0, "Elastic force constants", path("elastic_k.png")); err != nil {
			return files, err
		}
	}
	return files, nil
}
