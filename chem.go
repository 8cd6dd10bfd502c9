/*
 * chem.go, part of goCG.
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
	"fmt"
	"strings"

	v3 "github.com/rmera/gocg/v3"
)

/**Note: Some functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong there, the program is most likely wrong and should
 * crash. Those panics are related to using the function on a nil object or trying to access out-of bounds
 * fields**/

// Atom is one atom of the all-atom input. Coordinates are in Angstrom.
type Atom struct {
	Name      string
	Element   string
	Serial    int
	Coord     [3]float64
	Occupancy float64
	BFactor   float64
	Het       bool
	Residue   *Residue //the residue this atom belongs to. Set by NewResidue.
}

// Copy returns a copy of the atom, without the reference to its residue.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	ret.Residue = nil
	return &ret
}

// Mass returns the mass of the atom from its element, guessing the element from the name
// if it is not set. It returns 0 if the element is unknown.
func (A *Atom) Mass() float64 {
	el := A.Element
	if el == "" {
		resname := ""
		if A.Residue != nil {
			resname = A.Residue.Name
		}
		el = ElementFromName(A.Name, resname)
	}
	m, _ := Mass(el)
	return m
}

// Residue is an ordered set of atoms sharing a residue name, sequence number and insertion code.
type Residue struct {
	Name   string
	SeqNum int
	ICode  byte //insertion code, 0 or ' ' if none.
	Atoms  []*Atom
	Index  int    //position in the chain. Set by NewChain.
	Chain  *Chain //Set by NewChain
	byname map[string]*Atom
}

// NewResidue returns a residue with the given name, sequence number and atoms.
// The atoms get their Residue field set to the new residue.
func NewResidue(name string, seqnum int, atoms ...*Atom) *Residue {
	R := &Residue{Name: strings.ToUpper(strings.TrimSpace(name)), SeqNum: seqnum}
	for _, v := range atoms {
		R.AddAtom(v)
	}
	return R
}

// AddAtom appends at to the residue. If an atom with the same name already exists,
// the first one is kept for name lookups.
func (R *Residue) AddAtom(at *Atom) {
	if at == nil {
		panic("Residue: tried to add a nil atom")
	}
	if R.byname == nil {
		R.byname = make(map[string]*Atom, 16)
	}
	at.Residue = R
	R.Atoms = append(R.Atoms, at)
	if _, ok := R.byname[at.Name]; !ok {
		R.byname[at.Name] = at
	}
}

// Atom returns the atom with the given name, or nil.
func (R *Residue) Atom(name string) *Atom {
	if R.byname == nil {
		return nil
	}
	return R.byname[name]
}

// Has returns true if the residue has an atom called name.
func (R *Residue) Has(name string) bool {
	return R.Atom(name) != nil
}

// Len returns the number of atoms in the residue.
func (R *Residue) Len() int {
	return len(R.Atoms)
}

// ID returns a human-readable identifier, like "ALA12" or "GLY30A".
func (R *Residue) ID() string {
	if R.ICode != 0 && R.ICode != ' ' {
		return fmt.Sprintf("%s%d%c", R.Name, R.SeqNum, R.ICode)
	}
	return fmt.Sprintf("%s%d", R.Name, R.SeqNum)
}

// Coords returns the coordinates of the atoms named in names, in that order,
// and the names that were not found.
func (R *Residue) Coords(names ...string) (*v3.Matrix, []string) {
	var missing []string
	found := make([]float64, 0, 3*len(names))
	for _, v := range names {
		at := R.Atom(v)
		if at == nil {
			missing = append(missing, v)
			continue
		}
		found = append(found, at.Coord[:]...)
	}
	if len(found) == 0 {
		return nil, missing
	}
	ret, _ := v3.NewMatrix(found) //can't fail, the length is always a multiple of 3
	return ret, missing
}

// Chain is an ordered sequence of residues with strictly increasing
// sequence positions. It is built with NewChain.
type Chain struct {
	ID       string
	Residues []*Residue
}

// NewChain builds a chain from the residues given, which must be in order, with strictly
// increasing sequence numbers (insertion codes break ties). It sets the Index and Chain fields of
// each residue.
func NewChain(id string, residues []*Residue) (*Chain, error) {
	C := &Chain{ID: id, Residues: residues}
	for i, r := range residues {
		if r == nil {
			return nil, fmt.Errorf("NewChain: chain %s: residue %d is nil", id, i)
		}
		if i > 0 {
			prev := residues[i-1]
			if r.SeqNum < prev.SeqNum || (r.SeqNum == prev.SeqNum && icode(r.ICode) <= icode(prev.ICode)) {
				return nil, fmt.Errorf("NewChain: chain %s: residue %s does not follow %s", id, r.ID(), prev.ID())
			}
		}
		r.Index = i
		r.Chain = C
	}
	return C, nil
}

func icode(c byte) byte {
	if c == ' ' {
		return 0
	}
	return c
}

// Len returns the number of residues in the chain.
func (C *Chain) Len() int {
	return len(C.Residues)
}

// Residue returns the ith residue of the chain. It panics if i is out of range.
func (C *Chain) Residue(i int) *Residue {
	if i < 0 || i >= len(C.Residues) {
		panic(fmt.Sprintf("Chain: requested residue %d out of bounds", i))
	}
	return C.Residues[i]
}

// Sequence returns the one-letter sequence of the chain.
func (C *Chain) Sequence() string {
	b := make([]byte, 0, len(C.Residues))
	for _, r := range C.Residues {
		b = append(b, OneLetter(r.Name))
	}
	return string(b)
}

// Atoms returns the number of atoms in the chain.
func (C *Chain) Atoms() int {
	n := 0
	for _, r := range C.Residues {
		n += r.Len()
	}
	return n
}
