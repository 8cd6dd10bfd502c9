/*
 * topology.go, part of goCG.
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
	"math"
)

// Bead is one coarse-grained particle. Coordinates are in Angstrom.
type Bead struct {
	Index    int //position in the owning topology. Local to the chain until merged.
	Name     string
	Type     string
	Charge   float64
	Mass     float64
	Coord    [3]float64
	Chain    string
	Segment  int //position of the owning chain in Topology.Chains. Chains can share an ID.
	ResName  string
	ResSeq   int
	ResIndex int      //index of the owning residue in its chain
	SS       Label    //secondary structure of the owning residue
	Atoms    []string //the atoms this bead was built from, as force field references ("CA", "+N")
	Backbone bool
}

// Copy returns a deep copy of the bead.
func (B *Bead) Copy() *Bead {
	ret := *B
	ret.Atoms = append([]string(nil), B.Atoms...)
	return &ret
}

// SameChain returns true if B and o belong to the same chain.
func (B *Bead) SameChain(o *Bead) bool {
	return B.Segment == o.Segment && B.Chain == o.Chain
}

// Distance returns the distance between B and o, in Angstrom.
func (B *Bead) Distance(o *Bead) float64 {
	dx := B.Coord[0] - o.Coord[0]
	dy := B.Coord[1] - o.Coord[1]
	dz := B.Coord[2] - o.Coord[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Kind is the kind of a bonded term.
type Kind uint8

const (
	Bond Kind = iota
	Angle
	Dihedral
	Improper
	Elastic
)

// Kinds in the order they are written to topology files.
var Kinds = []Kind{Bond, Elastic, Angle, Dihedral, Improper}

func (K Kind) String() string {
	switch K {
	case Bond:
		return "bond"
	case Angle:
		return "angle"
	case Dihedral:
		return "dihedral"
	case Improper:
		return "improper"
	case Elastic:
		return "elastic"
	}
	return fmt.Sprintf("Kind(%d)", int(K))
}

// Arity returns the number of beads a term of this kind involves.
func (K Kind) Arity() int {
	switch K {
	case Angle:
		return 3
	case Dihedral, Improper:
		return 4
	}
	return 2
}

// ParseKind returns the Kind named by s ("bond", "angle", "dihedral", "improper", "elastic").
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("ParseKind: unknown term kind %q", s)
}

// Term is a bonded interaction among 2 to 4 beads. Eq is in nm for bonds
// and degrees for angles and dihedrals, K in GROMACS units.
type Term struct {
	Kind       Kind
	Beads      []int
	Eq         float64
	K          float64
	Func       int //GROMACS function type
	Mult       int //multiplicity, only for proper dihedrals
	Constraint bool
	Rule       string //the template or rule that produced the term
}

// Copy returns a deep copy of the term.
func (T *Term) Copy() *Term {
	ret := *T
	ret.Beads = append([]int(nil), T.Beads...)
	return &ret
}

// Segment records which slice of a merged topology belongs to which chain.
type Segment struct {
	ChainID   string
	FirstBead int
	NBeads    int
	FirstRes  int //index of the first residue of the chain in the merged Labels
	NRes      int
}

// Topology is a set of beads with the bonded terms among them. Term bead indexes
// refer to Bead.Index values.
type Topology struct {
	Beads  []*Bead
	Terms  []*Term
	Chains []Segment
	Labels Labels
}

// NewTopology builds a single-chain topology. Beads get their Index set to their position.
func NewTopology(chainID string, beads []*Bead, terms []*Term, labels Labels) *Topology {
	for i, b := range beads {
		b.Index = i
	}
	return &Topology{
		Beads:  beads,
		Terms:  terms,
		Labels: labels,
		Chains: []Segment{{ChainID: chainID, NBeads: len(beads), NRes: len(labels)}},
	}
}

// Len returns the number of beads.
func (T *Topology) Len() int {
	return len(T.Beads)
}

// Count returns the number of terms of kind k.
func (T *Topology) Count(k Kind) int {
	n := 0
	for _, t := range T.Terms {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// TermsOf returns the terms of kind k, in their original order.
func (T *Topology) TermsOf(k Kind) []*Term {
	var ret []*Term
	for _, t := range T.Terms {
		if t.Kind == k {
			ret = append(ret, t)
		}
	}
	return ret
}

// Charge returns the net charge of the topology.
func (T *Topology) Charge() float64 {
	var q float64
	for _, b := range T.Beads {
		q += b.Charge
	}
	return q
}

// Check verifies that every bead has the index of its position, and that every term
// refers to existing beads with the right arity.
func (T *Topology) Check() error {
	for i, b := range T.Beads {
		if b.Index != i {
			return NewError(IndexRemapError, b.Chain, "", "bead %d (%s) has index %d", i, b.Name, b.Index)
		}
	}
	for i, t := range T.Terms {
		if len(t.Beads) != t.Kind.Arity() {
			return NewError(IndexRemapError, "", "", "term %d (%s) has %d beads", i, t.Kind, len(t.Beads))
		}
		for _, v := range t.Beads {
			if v < 0 || v >= len(T.Beads) {
				return NewError(IndexRemapError, "", "", "term %d (%s) refers to bead %d, topology has %d", i, t.Kind, v, len(T.Beads))
			}
		}
	}
	return nil
}

// Remap returns a copy of T where the bead at position p gets the index offset+p, and every term
// is translated accordingly. Remapping an already remapped topology with the same offset
// gives an identical topology. Terms pointing to beads not in T give an IndexRemapError.
func (T *Topology) Remap(offset int) (*Topology, error) {
	old2pos := make(map[int]int, len(T.Beads))
	ret := &Topology{
		Beads:  make([]*Bead, len(T.Beads)),
		Terms:  make([]*Term, len(T.Terms)),
		Labels: T.Labels.Copy(),
		Chains: append([]Segment(nil), T.Chains...),
	}
	for p, b := range T.Beads {
		if _, ok := old2pos[b.Index]; ok {
			return nil, NewError(IndexRemapError, b.Chain, "", "duplicated bead index %d", b.Index)
		}
		old2pos[b.Index] = p
		nb := b.Copy()
		nb.Index = offset + p
		ret.Beads[p] = nb
	}
	for i, t := range T.Terms {
		nt := t.Copy()
		for j, v := range t.Beads {
			p, ok := old2pos[v]
			if !ok {
				return nil, NewError(IndexRemapError, "", "", "term %d (%s) refers to bead index %d, which is not in the topology", i, t.Kind, v)
			}
			nt.Beads[j] = offset + p
		}
		ret.Terms[i] = nt
	}
	return ret, nil
}

// Merge concatenates the topologies in the order given, into one topology with global
// bead indexes. Labels are concatenated too, and Chains records where each chain ended up.
// Bead.Segment is shifted so it keeps pointing to the bead's chain in the merged Chains.
// Merging a single, already merged topology returns an identical topology.
func Merge(tops ...*Topology) (*Topology, error) {
	ret := new(Topology)
	for i, t := range tops {
		if t == nil {
			return nil, NewError(IndexRemapError, "", "", "topology %d is nil", i)
		}
		r, err := t.Remap(len(ret.Beads))
		if err != nil {
			return nil, Decorate(err, fmt.Sprintf("Merge: topology %d", i))
		}
		for _, s := range r.Chains {
			s.FirstBead += len(ret.Beads)
			s.FirstRes += len(ret.Labels)
			ret.Chains = append(ret.Chains, s)
		}
		for _, b := range r.Beads {
			b.Segment += len(ret.Chains) - len(r.Chains)
		}
		ret.Beads = append(ret.Beads, r.Beads...)
		ret.Terms = append(ret.Terms, r.Terms...)
		ret.Labels = append(ret.Labels, r.Labels...)
	}
	if err := ret.Check(); err != nil {
		return nil, Decorate(err, "Merge")
	}
	return ret, nil
}
