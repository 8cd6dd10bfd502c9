/*
 * martini22.go, part of goCG.
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

// Martini 2.2 protein force field, after martinize 2.x. Bead types for the backbone depend on
// the secondary structure; side chains use the standard mapping.

const (
	ssHelix = "HGI"
	ssSheet = "EB"
)

var bbAtoms = []string{"N", "CA", "C", "O"}

// Terminal oxygens and hydrogens, included in the BB bead when present.
var bbExtra = []string{"OXT", "OT1", "OT2", "OC1", "OC2", "H", "HN", "H1", "H2", "H3"}

func sc(name, typ string, charge float64, atoms ...string) *BeadSpec {
	return &BeadSpec{Name: name, Type: typ, Charge: charge, Atoms: atoms}
}

func ring(name, typ string, atoms ...string) *BeadSpec {
	return &BeadSpec{Name: name, Type: typ, Mass: 45, Atoms: atoms}
}

// martiniSideChains are shared by martini22 and elnedyn22.
func martiniSideChains() map[string][]*BeadSpec {
	return map[string][]*BeadSpec{
		"ALA": nil,
		"GLY": nil,
		"CYS": {sc("SC1", "C5", 0, "CB", "SG")},
		"ASP": {sc("SC1", "Qa", -1, "CB", "CG", "OD1", "OD2")},
		"GLU": {sc("SC1", "Qa", -1, "CB", "CG", "CD", "OE1", "OE2")},
		"PHE": {ring("SC1", "SC5", "CB", "CG", "CD1"), ring("SC2", "SC5", "CD2", "CE2"), ring("SC3", "SC5", "CE1", "CZ")},
		"HIS": {ring("SC1", "SC4", "CB", "CG"), ring("SC2", "SP1", "CD2", "NE2"), ring("SC3", "SP1", "ND1", "CE1")},
		"ILE": {sc("SC1", "C1", 0, "CB", "CG1", "CG2", "CD1")},
		"LYS": {sc("SC1", "C3", 0, "CB", "CG", "CD"), sc("SC2", "Qd", 1, "CE", "NZ")},
		"LEU": {sc("SC1", "C1", 0, "CB", "CG", "CD1", "CD2")},
		"MET": {sc("SC1", "C5", 0, "CB", "CG", "SD", "CE")},
		"ASN": {sc("SC1", "P5", 0, "CB", "CG", "OD1", "ND2")},
		"PRO": {sc("SC1", "C3", 0, "CB", "CG", "CD")},
		"GLN": {sc("SC1", "P4", 0, "CB", "CG", "CD", "OE1", "NE2")},
		"ARG": {sc("SC1", "N0", 0, "CB", "CG", "CD"), sc("SC2", "Qd", 1, "NE", "CZ", "NH1", "NH2")},
		"SER": {sc("SC1", "P1", 0, "CB", "OG")},
		"THR": {sc("SC1", "P1", 0, "CB", "OG1", "CG2")},
		"VAL": {sc("SC1", "C2", 0, "CB", "CG1", "CG2")},
		"TRP": {ring("SC1", "SC4", "CB", "CG"), ring("SC2", "SNd", "CD1", "NE1"), ring("SC3", "SC5", "CD2", "CE2", "CZ2"), ring("SC4", "SC5", "CE3", "CZ3", "CH2")},
		"TYR": {ring("SC1", "SC4", "CB", "CG", "CD1"), ring("SC2", "SC4", "CD2", "CE2"), ring("SC3", "SP1", "CE1", "CZ", "OH")},
	}
}

var aminoOrder = []string{"ALA", "ARG", "ASN", "ASP", "CYS", "GLN", "GLU", "GLY", "HIS", "ILE", "LEU", "LYS", "MET", "PHE", "PRO", "SER", "THR", "TRP", "TYR", "VAL"}

var aminoAliases = map[string][]string{
	"HIS": {"HID", "HIE", "HIP", "HSD", "HSE", "HSP"},
	"CYS": {"CYX", "CYM"},
	"MET": {"MSE"},
	"ASP": {"ASH"},
	"GLU": {"GLH"},
	"LYS": {"LYN"},
}

// residues builds the 20 standard residue templates with the backbone bead given
// and the martini side chains.
func residues(backbone func() *BeadSpec) []*ResidueTemplate {
	side := martiniSideChains()
	ret := make([]*ResidueTemplate, 0, len(aminoOrder))
	for _, n := range aminoOrder {
		beads := append([]*BeadSpec{backbone()}, side[n]...)
		ret = append(ret, &ResidueTemplate{Name: n, Aliases: aminoAliases[n], Beads: beads})
	}
	return ret
}

func bond(name, group string, beads, ss []string, eq, k float64) *Template {
	return &Template{Name: name, Group: group, Kind: "bond", Beads: beads, SS: ss, Eq: eq, K: k, Func: 1}
}

func constraint(name, group string, beads, ss []string, eq float64) *Template {
	return &Template{Name: name, Group: group, Kind: "bond", Beads: beads, SS: ss, Eq: eq, Func: 1, Constraint: true}
}

func angle(name, group string, beads, ss []string, eq, k float64) *Template {
	return &Template{Name: name, Group: group, Kind: "angle", Beads: beads, SS: ss, Eq: eq, K: k, Func: 2}
}

func dihedral(name, group string, beads, ss []string, eq, k float64) *Template {
	return &Template{Name: name, Group: group, Kind: "dihedral", Beads: beads, SS: ss, Eq: eq, K: k, Func: 1, Mult: 1}
}

func forRes(t *Template, res string) *Template {
	t.Residues = make([]string, len(t.Beads))
	for i, b := range t.Beads {
		//side-chain beads belong to the residue; backbone beads of neighbors can be anything
		if r, _ := ParseRef(b); r.Offset == 0 {
			t.Residues[i] = res
		} else {
			t.Residues[i] = "*"
		}
	}
	return t
}

// sideChainTerms are the bonded terms within side chains and between them and the backbone.
// The BB-SC1 bond lengths depend on where BB sits, so they are given by the caller.
func sideChainTerms(bbsc map[string][2]float64) []*Template {
	var ret []*Template
	for _, n := range aminoOrder {
		v, ok := bbsc[n]
		if !ok {
			continue
		}
		if v[1] == 0 {
			ret = append(ret, forRes(constraint("bb-sc-"+n, "", []string{"BB", "SC1"}, nil, v[0]), n))
		} else {
			ret = append(ret, forRes(bond("bb-sc-"+n, "", []string{"BB", "SC1"}, nil, v[0], v[1]), n))
		}
	}
	ret = append(ret,
		forRes(bond("sc-LYS", "", []string{"SC1", "SC2"}, nil, 0.28, 5000), "LYS"),
		forRes(bond("sc-ARG", "", []string{"SC1", "SC2"}, nil, 0.34, 5000), "ARG"),
		forRes(angle("bb-sc-sc-LYS", "", []string{"BB", "SC1", "SC2"}, nil, 180, 25), "LYS"),
		forRes(angle("bb-sc-sc-ARG", "", []string{"BB", "SC1", "SC2"}, nil, 180, 25), "ARG"),
	)
	for _, n := range []string{"PHE", "HIS", "TYR"} {
		ret = append(ret,
			forRes(constraint("ring-12-"+n, "", []string{"SC1", "SC2"}, nil, 0.27), n),
			forRes(constraint("ring-13-"+n, "", []string{"SC1", "SC3"}, nil, 0.27), n),
			forRes(constraint("ring-23-"+n, "", []string{"SC2", "SC3"}, nil, 0.27), n),
			forRes(angle("bb-ring-2-"+n, "", []string{"BB", "SC1", "SC2"}, nil, 150, 50), n),
			forRes(angle("bb-ring-3-"+n, "", []string{"BB", "SC1", "SC3"}, nil, 150, 50), n),
		)
	}
	ret = append(ret,
		forRes(constraint("ring-12-TRP", "", []string{"SC1", "SC2"}, nil, 0.27), "TRP"),
		forRes(constraint("ring-13-TRP", "", []string{"SC1", "SC3"}, nil, 0.27), "TRP"),
		forRes(constraint("ring-23-TRP", "", []string{"SC2", "SC3"}, nil, 0.27), "TRP"),
		forRes(constraint("ring-24-TRP", "", []string{"SC2", "SC4"}, nil, 0.27), "TRP"),
		forRes(constraint("ring-34-TRP", "", []string{"SC3", "SC4"}, nil, 0.27), "TRP"),
		forRes(angle("bb-ring-2-TRP", "", []string{"BB", "SC1", "SC2"}, nil, 90, 50), "TRP"),
		forRes(angle("bb-ring-3-TRP", "", []string{"BB", "SC1", "SC3"}, nil, 210, 50), "TRP"),
		forRes(&Template{Name: "ring-improper-TRP", Kind: "improper", Beads: []string{"SC1", "SC2", "SC4", "SC3"}, Eq: 0, K: 50, Func: 2}, "TRP"),
	)
	//the backbone-backbone-side chain angle
	ret = append(ret, &Template{Name: "bbs-angle", Kind: "angle", Beads: []string{"-BB", "BB", "SC1"}, Residues: []string{"*", "!ALA,GLY", "*"}, Eq: 100, K: 25, Func: 2})
	return ret
}

// Backbone bond lengths for martini22. Helix bonds are constraints.
var martiniBBSC = map[string][2]float64{
	"CYS": {0.31, 7500}, "ASP": {0.32, 7500}, "GLU": {0.40, 5000}, "PHE": {0.31, 7500},
	"HIS": {0.32, 7500}, "ILE": {0.31, 0}, "LYS": {0.33, 5000}, "LEU": {0.33, 7500},
	"MET": {0.40, 2500}, "ASN": {0.32, 5000}, "PRO": {0.30, 7500}, "GLN": {0.40, 5000},
	"ARG": {0.33, 5000}, "SER": {0.25, 7500}, "THR": {0.26, 0}, "VAL": {0.265, 0},
	"TRP": {0.30, 5000}, "TYR": {0.32, 5000},
}

func martiniBackboneTerms() []*Template {
	hh := []string{ssHelix, ssHelix}
	ee := []string{ssSheet, ssSheet}
	return []*Template{
		constraint("bb-bond-helix", "bb-bond", []string{"BB", "+BB"}, hh, 0.310),
		bond("bb-bond-sheet", "bb-bond", []string{"BB", "+BB"}, ee, 0.350, 1250),
		bond("bb-bond", "bb-bond", []string{"BB", "+BB"}, nil, 0.350, 1250),

		angle("bb-angle-helix", "bb-angle", []string{"BB", "+BB", "++BB"}, []string{ssHelix, ssHelix, ssHelix}, 96, 700),
		angle("bb-angle-sheet", "bb-angle", []string{"BB", "+BB", "++BB"}, []string{ssSheet, ssSheet, ssSheet}, 134, 25),
		angle("bb-angle-turn", "bb-angle", []string{"BB", "+BB", "++BB"}, []string{"*", "T", "*"}, 100, 25),
		angle("bb-angle-bend", "bb-angle", []string{"BB", "+BB", "++BB"}, []string{"*", "S", "*"}, 130, 25),
		angle("bb-angle", "bb-angle", []string{"BB", "+BB", "++BB"}, nil, 127, 25),

		dihedral("bb-dihedral-helix", "bb-dihedral", []string{"BB", "+BB", "++BB", "+++BB"}, []string{ssHelix, ssHelix, ssHelix, ssHelix}, -120, 400),
		dihedral("bb-dihedral-sheet", "bb-dihedral", []string{"BB", "+BB", "++BB", "+++BB"}, []string{ssSheet, ssSheet, ssSheet, ssSheet}, 0, 10),
	}
}

// Backbone types per secondary structure. The first rule that matches wins.
func martiniTypeRules() []*TypeRule {
	rules := []*TypeRule{
		{Residue: "ALA", Bead: "BB", SS: ssHelix, Type: "C5"},
		{Residue: "ALA", Bead: "BB", SS: ssSheet + "T", Type: "N0"},
		{Residue: "ALA", Bead: "BB", Type: "P4"},
		{Residue: "PRO", Bead: "BB", SS: ssHelix, Type: "C5"},
		{Residue: "PRO", Bead: "BB", SS: ssSheet + "T", Type: "N0"},
		{Residue: "PRO", Bead: "BB", Type: "Na"},
		{Bead: "BB", SS: ssHelix, Type: "N0"},
		{Bead: "BB", SS: ssSheet + "T", Type: "Nda"},
	}
	return rules
}

// Martini22 returns the Martini 2.2 force field.
func Martini22() *ForceField {
	F := &ForceField{
		Name:        "martini22",
		Description: "Martini 2.2 protein model",
		Mass:        72,
		Residues: residues(func() *BeadSpec {
			return &BeadSpec{Name: "BB", Type: "P5", Atoms: bbAtoms, Extra: bbExtra, Rule: COM, Backbone: true}
		}),
		TypeRules: martiniTypeRules(),
		Termini: Termini{
			N: TerminusSpec{Bead: "BB", Type: "Qd", Charge: 1},
			C: TerminusSpec{Bead: "BB", Type: "Qa", Charge: -1},
		},
	}
	F.Templates = append(martiniBackboneTerms(), sideChainTerms(martiniBBSC)...)
	F.Elastic = elnet.DefaultParams()
	return F
}
