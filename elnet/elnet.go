/*
 * elnet.go, part of goCG.
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

// Package elnet builds elastic networks: harmonic restraints between coarse-grained beads
// that are close in space, used to keep the tertiary structure of a protein.
package elnet

import (
	"slices"

	cg "github.com/rmera/gocg"
)

// Rule is the rule name given to the terms produced by this package.
const Rule = "elastic"

// Build returns the elastic terms among beads. A pair is restrained if both beads take part in the
// network (see Params.Beads), their distance d is within [Lower, Upper] and the force constant at d
// is at least MinForce. Pairs in the same chain must be at least MinSeparation residues apart,
// and, with SkipSameHelix, not in the same helix. Pairs in different chains are only considered with
// CrossChain. Pairs excluded by any of excl are left out.
// labels are the secondary structure of the residues of the chain the beads belong to. If nil,
// or if the beads come from several chains, the SS field of the beads is used instead.
// Terms come sorted by their first bead, then by the second, so the result only
// depends on the input.
func Build(beads []*cg.Bead, labels cg.Labels, P Params, excl ...Excluder) []*cg.Term {
	return build(beads, labels, P, func(a, b *cg.Bead) bool {
		return a.SameChain(b) || P.CrossChain
	}, excl)
}

// BuildCross is like Build, but only restrains pairs of beads from different chains,
// regardless of P.CrossChain. It is meant for merged, multi-chain topologies.
func BuildCross(beads []*cg.Bead, P Params, excl ...Excluder) []*cg.Term {
	return build(beads, nil, P, func(a, b *cg.Bead) bool {
		return !a.SameChain(b)
	}, excl)
}

func build(beads []*cg.Bead, labels cg.Labels, P Params, consider func(a, b *cg.Bead) bool, excl []Excluder) []*cg.Term {
	var ret []*cg.Term
	part := participants(beads, P)
	helix := helixSegments(part, labels)
	for x, a := range part {
		for _, b := range part[x+1:] {
			if !consider(a, b) {
				continue
			}
			if a.SameChain(b) {
				sep := b.ResIndex - a.ResIndex
				if sep < 0 {
					sep = -sep
				}
				if sep < P.MinSeparation {
					continue
				}
				if P.SkipSameHelix && sameHelix(helix, a, b) {
					continue
				}
			}
			if excluded(excl, a.Index, b.Index) {
				continue
			}
			d := a.Distance(b) / 10 //nm
			if d < P.Lower || d > P.Upper {
				continue
			}
			k := P.Force(d)
			if k < P.MinForce || k <= 0 {
				continue
			}
			i, j := a.Index, b.Index
			if i > j {
				i, j = j, i
			}
			ret = append(ret, &cg.Term{Kind: cg.Elastic, Beads: []int{i, j}, Eq: d, K: k, Func: P.Func, Rule: Rule})
		}
	}
	slices.SortStableFunc(ret, func(s, t *cg.Term) int {
		if s.Beads[0] != t.Beads[0] {
			return s.Beads[0] - t.Beads[0]
		}
		return s.Beads[1] - t.Beads[1]
	})
	return ret
}

func participants(beads []*cg.Bead, P Params) []*cg.Bead {
	ret := make([]*cg.Bead, 0, len(beads))
	for _, b := range beads {
		if len(P.Beads) == 0 {
			if b.Backbone {
				ret = append(ret, b)
			}
			continue
		}
		if slices.Contains(P.Beads, b.Name) {
			ret = append(ret, b)
		}
	}
	return ret
}

func excluded(excl []Excluder, i, j int) bool {
	for _, e := range excl {
		if e != nil && e.Excluded(i, j) {
			return true
		}
	}
	return false
}

// chainKey identifies a chain. Chains split by TER records in the input can share an ID.
type chainKey struct {
	seg int
	id  string
}

func keyOf(b *cg.Bead) chainKey { return chainKey{b.Segment, b.Chain} }

type resKey struct {
	chain chainKey
	res   int
}

// helixSegments assigns an id to each helical residue, shared by consecutive
// helical residues of the same chain.
func helixSegments(beads []*cg.Bead, labels cg.Labels) map[resKey]int {
	single := true
	for _, b := range beads {
		if !b.SameChain(beads[0]) {
			single = false
			break
		}
	}
	//residue labels per chain
	perchain := make(map[chainKey]cg.Labels)
	var chains []chainKey
	for _, b := range beads {
		k := keyOf(b)
		ls, ok := perchain[k]
		if !ok {
			chains = append(chains, k)
		}
		for len(ls) <= b.ResIndex {
			ls = append(ls, cg.Unknown)
		}
		ls[b.ResIndex] = b.SS
		perchain[k] = ls
	}
	if single && labels != nil && len(beads) > 0 {
		perchain[keyOf(beads[0])] = labels
	}
	ret := make(map[resKey]int)
	id := 0
	for _, c := range chains {
		ls := perchain[c]
		prev := false
		for i, l := range ls {
			h := l.Helical()
			if h && !prev {
				id++
			}
			if h {
				ret[resKey{c, i}] = id
			}
			prev = h
		}
	}
	return ret
}

func sameHelix(seg map[resKey]int, a, b *cg.Bead) bool {
	sa, ok := seg[resKey{keyOf(a), a.ResIndex}]
	if !ok {
		return false
	}
	sb, ok := seg[resKey{keyOf(b), b.ResIndex}]
	return ok && sa == sb
}
