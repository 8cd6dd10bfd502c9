/*
 * atomicdata.go, part of goCG.
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

package cg

import (
	"strings"
	"unicode"
)

// A map for assigning mass to elements.
// Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Fe": 55.84,
	"Mn": 54.94,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

// A map between 3-letters name for aminoacidic residues to the corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
}

// Residue names found in PDB files that stand for one of the standard
// amino acids (protonation states, modified residues, etc.).
var residueAliases = map[string]string{
	"HID": "HIS",
	"HIE": "HIS",
	"HIP": "HIS",
	"HSD": "HIS",
	"HSE": "HIS",
	"HSP": "HIS",
	"CYX": "CYS",
	"CYM": "CYS",
	"MSE": "MET",
	"ASH": "ASP",
	"GLH": "GLU",
	"LYN": "LYS",
}

// CanonicalResidue returns the standard name for the residue name given, resolving
// the common aliases (HIE->HIS, MSE->MET, ...). Names without an alias are returned
// upper-cased and otherwise unchanged.
func CanonicalResidue(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if c, ok := residueAliases[name]; ok {
		return c
	}
	return name
}

// IsKnownResidue returns true if name (or the residue it is an alias of)
// is a standard amino acid.
func IsKnownResidue(name string) bool {
	_, ok := three2OneLetter[CanonicalResidue(name)]
	return ok
}

// OneLetter returns the one-letter code for a residue name, or 'X'.
func OneLetter(name string) byte {
	if l, ok := three2OneLetter[CanonicalResidue(name)]; ok {
		return l
	}
	return 'X'
}

// Mass returns the mass of the element symbol given, and false if the
// element is not in the table.
func Mass(element string) (float64, bool) {
	m, ok := symbolMass[element]
	return m, ok
}

// ElementFromName guesses the element symbol from a PDB atom name. It only
// knows about the elements found in proteins, so "CA" is carbon, not calcium.
// The residue name is used for the few cases where that is not enough.
func ElementFromName(atomName, resName string) string {
	name := strings.TrimLeftFunc(strings.TrimSpace(atomName), unicode.IsDigit)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "SE") && CanonicalResidue(resName) == "MET" {
		return "Se"
	}
	switch name[0] {
	case 'C', 'N', 'O', 'S', 'H', 'P':
		return name[:1]
	}
	//Not a protein atom. Try a proper element symbol.
	if len(name) > 1 {
		s := name[:1] + strings.ToLower(name[1:2])
		if _, ok := symbolMass[s]; ok {
			return s
		}
	}
	return name[:1]
}
