/*
 * fixture.go, part of goCG.
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

// Package fixture builds small synthetic protein chains with known geometry,
// for the tests of the goCG packages.
package fixture

import (
	"fmt"
	"math"

	cg "github.com/rmera/gocg"
)

var one2three = map[byte]string{
	'A': "ALA", 'C': "CYS", 'D': "ASP", 'E': "GLU", 'F': "PHE", 'G': "GLY", 'H': "HIS",
	'I': "ILE", 'K': "LYS", 'L': "LEU", 'M': "MET", 'N': "ASN", 'P': "PRO", 'Q': "GLN",
	'R': "ARG", 'S': "SER", 'T': "THR", 'V': "VAL", 'W': "TRP", 'Y': "TYR",
}

// SideChains lists the heavy side-chain atoms of the standard residues.
var SideChains = map[string][]string{
	"ALA": {"CB"},
	"CYS": {"CB", "SG"},
	"ASP": {"CB", "CG", "OD1", "OD2"},
	"GLU": {"CB", "CG", "CD", "OE1", "OE2"},
	"PHE": {"CB", "CG", "CD1", "CD2", "CE1", "CE2", "CZ"},
	"GLY": {},
	"HIS": {"CB", "CG", "ND1", "CD2", "CE1", "NE2"},
	"ILE": {"CB", "CG1", "CG2", "CD1"},
	"LYS": {"CB", "CG", "CD", "CE", "NZ"},
	"LEU": {"CB", "CG", "CD1", "CD2"},
	"MET": {"CB", "CG", "SD", "CE"},
	"ASN": {"CB", "CG", "OD1", "ND2"},
	"PRO": {"CB", "CG", "CD"},
	"GLN": {"CB", "CG", "CD", "OE1", "NE2"},
	"ARG": {"CB", "CG", "CD", "NE", "CZ", "NH1", "NH2"},
	"SER": {"CB", "OG"},
	"THR": {"CB", "OG1", "CG2"},
	"VAL": {"CB", "CG1", "CG2"},
	"TRP": {"CB", "CG", "CD1", "CD2", "NE1", "CE2", "CE3", "CZ2", "CZ3", "CH2"},
	"TYR": {"CB", "CG", "CD1", "CD2", "CE1", "CE2", "CZ", "OH"},
}

// Helix returns n points on a helix of the given radius, rise per point
// and angular step (degrees), all in Angstrom.
func Helix(n int, radius, rise, step float64) [][3]float64 {
	ret := make([][3]float64, n)
	for i := range ret {
		a := step * float64(i) * math.Pi / 180
		ret[i] = [3]float64{radius * math.Cos(a), radius * math.Sin(a), rise * float64(i)}
	}
	return ret
}

// AlphaCA returns the CA trace of an ideal alpha helix.
func AlphaCA(n int) [][3]float64 { return Helix(n, 2.3, 1.5, 100) }

// Helix310CA returns the CA trace of an ideal 3-10 helix.
func Helix310CA(n int) [][3]float64 { return Helix(n, 1.9, 2.0, 120) }

// Strand returns the CA trace of a flat, ideal beta strand along z, starting at origin
// and going in the direction dir (1 or -1).
func Strand(n int, origin [3]float64, dir float64) [][3]float64 {
	ret := make([][3]float64, n)
	for i := range ret {
		zig := -0.95
		if i%2 == 1 {
			zig = 0.95
		}
		ret[i] = [3]float64{origin[0], origin[1] + zig, origin[2] + dir*3.3*float64(i)}
	}
	return ret
}

// Hairpin returns the CA trace of two antiparallel strands of n residues each, 4.8 A apart,
// joined by a 2-residue turn. The trace has 2n+2 points.
func Hairpin(n int) [][3]float64 {
	ret := Strand(n, [3]float64{0, 0, 0}, 1)
	top := 3.3 * float64(n-1)
	ret = append(ret, [3]float64{1.0, 0, top + 3.0}, [3]float64{3.8, 0, top + 3.0})
	return append(ret, Strand(n, [3]float64{4.8, 0, top}, -1)...)
}

// Residues returns the three-letter names for a one-letter sequence.
func Residues(seq string) []string {
	ret := make([]string, len(seq))
	for i := 0; i < len(seq); i++ {
		n, ok := one2three[seq[i]]
		if !ok {
			panic(fmt.Sprintf("fixture: unknown residue letter %c", seq[i]))
		}
		ret[i] = n
	}
	return ret
}

// CAChain builds a chain where each residue only has a CA atom.
func CAChain(id string, names []string, ca [][3]float64) *cg.Chain {
	if len(names) != len(ca) {
		panic("fixture: names and coordinates differ in length")
	}
	res := make([]*cg.Residue, len(names))
	for i, n := range names {
		res[i] = cg.NewResidue(n, i+1, &cg.Atom{Name: "CA", Element: "C", Serial: i + 1, Coord: ca[i]})
	}
	c, err := cg.NewChain(id, res)
	if err != nil {
		panic(err)
	}
	return c
}

// FullChain builds a chain with all the heavy atoms of each residue. Backbone and
// side-chain atoms are placed at fixed offsets from the CA given. The geometry is not
// chemically meaningful, but it is deterministic.
func FullChain(id string, names []string, ca [][3]float64) *cg.Chain {
	if len(names) != len(ca) {
		panic("fixture: names and coordinates differ in length")
	}
	serial := 1
	res := make([]*cg.Residue, len(names))
	for i, n := range names {
		r := cg.NewResidue(n, i+1)
		add := func(name string, dx, dy, dz float64) {
			c := ca[i]
			r.AddAtom(&cg.Atom{Name: name, Serial: serial, Coord: [3]float64{c[0] + dx, c[1] + dy, c[2] + dz}})
			serial++
		}
		add("N", -0.5, 0, -1.3)
		add("CA", 0, 0, 0)
		add("C", 0.5, 0, 1.3)
		add("O", 1.5, 0, 1.6)
		sc, ok := SideChains[cg.CanonicalResidue(n)]
		if !ok {
			sc = []string{"X1"}
		}
		for j, a := range sc {
			f := float64(j + 1)
			add(a, -0.4*f, 1.2+0.2*f, 0.1*f)
		}
		res[i] = r
	}
	c, err := cg.NewChain(id, res)
	if err != nil {
		panic(err)
	}
	return c
}
