/*
 * elnedyn.go, part of goCG.
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

package ff

import "github.com/rmera/gocg/elnet"

// ElNeDyn 2.2: the backbone bead sits on the CA, side-chain beads at the center of mass
// of their atoms, and the backbone structure is held by an elastic network instead of
// secondary-structure-dependent angles and dihedrals.

var elnedynBBSC = map[string][2]float64{
	"CYS": {0.240, 0}, "ASP": {0.292, 0}, "GLU": {0.401, 0}, "PHE": {0.340, 0},
	"HIS": {0.336, 0}, "ILE": {0.341, 0}, "LYS": {0.325, 0}, "LEU": {0.363, 0},
	"MET": {0.309, 0}, "ASN": {0.352, 0}, "PRO": {0.187, 0}, "GLN": {0.400, 0},
	"ARG": {0.330, 0}, "SER": {0.287, 0}, "THR": {0.226, 0}, "VAL": {0.292, 0},
	"TRP": {0.300, 0}, "TYR": {0.335, 0},
}

// Elnedyn22 returns the ElNeDyn 2.2 force field.
func Elnedyn22() *ForceField {
	F := &ForceField{
		Name:        "elnedyn22",
		Description: "Martini 2.2 with the ElNeDyn elastic network",
		Mass:        72,
		Residues: residues(func() *BeadSpec {
			return &BeadSpec{Name: "BB", Type: "P5", Atoms: []string{"CA"}, Rule: Single, Backbone: true}
		}),
		TypeRules: martiniTypeRules(),
		Termini: Termini{
			N: TerminusSpec{Bead: "BB", Type: "Qd", Charge: 1},
			C: TerminusSpec{Bead: "BB", Type: "Qa", Charge: -1},
		},
	}
	F.Templates = []*Template{
		bond("bb-bond", "bb-bond", []string{"BB", "+BB"}, nil, 0.380, 1250),
		angle("bb-angle", "bb-angle", []string{"BB", "+BB", "++BB"}, nil, 127, 20),
	}
	F.Templates = append(F.Templates, sideChainTerms(elnedynBBSC)...)
	F.Elastic = elnet.Params{
		Enabled:            true,
		Lower:              0,
		Upper:              0.9,
		K:                  500,
		DecayPower:         1,
		MinSeparation:      3,
		ExcludeBondedDepth: 2,
		Func:               6,
	}
	return F
}

// CA returns a one-bead-per-residue model: a bead on each CA, typed by secondary structure,
// bonded in sequence, with a backbone angle term and an elastic network between all
// non-bonded pairs within 0.9 nm.
func CA() *ForceField {
	rt := make([]*ResidueTemplate, 0, len(aminoOrder))
	for _, n := range aminoOrder {
		rt = append(rt, &ResidueTemplate{
			Name:    n,
			Aliases: aminoAliases[n],
			Beads:   []*BeadSpec{{Name: "BB", Type: "P5", Atoms: []string{"CA"}, Rule: Single, Backbone: true}},
		})
	}
	return &ForceField{
		Name:        "ca",
		Description: "one bead per residue, on the CA",
		Mass:        72,
		Residues:    rt,
		TypeRules: []*TypeRule{
			{Bead: "BB", SS: ssHelix, Type: "N0"},
			{Bead: "BB", SS: ssSheet + "T", Type: "Nda"},
		},
		Templates: []*Template{
			bond("ca-bond", "ca-bond", []string{"BB", "+BB"}, nil, 0.380, 1250),
			angle("ca-angle-helix", "ca-angle", []string{"BB", "+BB", "++BB"}, []string{ssHelix, ssHelix, ssHelix}, 91, 700),
			angle("ca-angle-sheet", "ca-angle", []string{"BB", "+BB", "++BB"}, []string{ssSheet, ssSheet, ssSheet}, 120, 25),
			angle("ca-angle", "ca-angle", []string{"BB", "+BB", "++BB"}, nil, 110, 25),
		},
		Elastic: elnet.Params{
			Enabled:            true,
			Upper:              0.9,
			K:                  500,
			DecayPower:         1,
			MinSeparation:      1,
			ExcludeBondedDepth: 1,
			Func:               6,
		},
	}
}
