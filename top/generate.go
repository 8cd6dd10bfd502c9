/*
 * generate.go, part of goCG.
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

package top

import (
	"fmt"

	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/elnet"
	"github.com/rmera/gocg/ff"
	"go.uber.org/zap"
)

// Options for the topology generation.
type Options struct {
	logger *zap.Logger
}

// DefaultOptions returns the default options (no logging).
func DefaultOptions() *Options {
	return &Options{logger: zap.NewNop()}
}

// Logger returns the logger in use, and sets it, if a non-nil one is given.
func (O *Options) Logger(l ...*zap.Logger) *zap.Logger {
	ret := O.logger
	if len(l) > 0 && l[0] != nil {
		O.logger = l[0]
	}
	return ret
}

type resKey struct {
	seg   int
	chain string
	res   int
}

// beadIndex locates beads by residue and name.
type beadIndex struct {
	order  []resKey
	byres  map[resKey]map[string]int //bead name -> position in the bead slice
	labels map[resKey]cg.Label
}

func newBeadIndex(beads []*cg.Bead, labels cg.Labels) *beadIndex {
	B := &beadIndex{byres: make(map[resKey]map[string]int), labels: make(map[resKey]cg.Label)}
	single := true
	for _, b := range beads {
		if !b.SameChain(beads[0]) {
			single = false
		}
	}
	for i, b := range beads {
		k := resKey{b.Segment, b.Chain, b.ResIndex}
		m, ok := B.byres[k]
		if !ok {
			m = make(map[string]int)
			B.byres[k] = m
			B.order = append(B.order, k)
			l := b.SS
			if single && b.ResIndex < len(labels) {
				l = labels[b.ResIndex]
			}
			B.labels[k] = l
		}
		if _, dup := m[b.Name]; !dup {
			m[b.Name] = i
		}
	}
	return B
}

func (B *beadIndex) find(anchor resKey, ref ff.AtomRef) (int, resKey, bool) {
	k := resKey{anchor.seg, anchor.chain, anchor.res + ref.Offset}
	m, ok := B.byres[k]
	if !ok {
		return 0, k, false
	}
	i, ok := m[ref.Name]
	return i, k, ok
}

// Generate builds the topology for the beads of one chain, as produced by mapping.Map: a bonded term
// for each residue and matching template of F, plus the elastic network if F.Elastic.Enabled.
// labels is the secondary structure of the chain. Beads are copied, so the input is not modified.
// Terms come in residue order and, within each residue, in template order. The elastic
// terms follow, sorted by bead index.
func Generate(beads []*cg.Bead, labels cg.Labels, F *ff.ForceField, opts ...*Options) (*cg.Topology, error) {
	O := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		O = opts[0]
	}
	chain := ""
	if len(beads) > 0 {
		chain = beads[0].Chain
	}
	cp := make([]*cg.Bead, len(beads))
	for i, b := range beads {
		if b.Type == "" {
			return nil, cg.NewError(cg.InvalidForceFieldConfig, b.Chain, fmt.Sprintf("%s%d", b.ResName, b.ResSeq), "bead %s has no type", b.Name)
		}
		cp[i] = b.Copy()
		cp[i].Index = i
	}
	idx := newBeadIndex(cp, labels)
	var terms []*cg.Term
	for _, anchor := range idx.order {
		done := make(map[string]bool)
		for _, t := range F.Templates {
			if t.Group != "" && done[t.Group] {
				continue
			}
			term, ok := apply(t, anchor, idx, cp)
			if !ok {
				continue
			}
			if t.Group != "" {
				done[t.Group] = true
			}
			terms = append(terms, term)
		}
	}
	if F.Elastic.Enabled {
		graph := elnet.NewBondGraph(cp, terms)
		el := elnet.Build(cp, labels, F.Elastic, graph.Excluder(F.Elastic.ExcludeBondedDepth))
		terms = append(terms, el...)
	}
	T := cg.NewTopology(chain, cp, terms, labels.Copy())
	if err := T.Check(); err != nil {
		return nil, cg.Decorate(err, "top.Generate")
	}
	O.Logger().Debug("topology generated", zap.String("chain", chain), zap.Int("beads", T.Len()),
		zap.Int("bonds", T.Count(cg.Bond)), zap.Int("angles", T.Count(cg.Angle)),
		zap.Int("dihedrals", T.Count(cg.Dihedral)+T.Count(cg.Improper)), zap.Int("elastic", T.Count(cg.Elastic)))
	return T, nil
}

// apply tries the template t with anchor residue, and returns the term if all
// its beads exist and match the patterns.
func apply(t *ff.Template, anchor resKey, idx *beadIndex, beads []*cg.Bead) (*cg.Term, bool) {
	refs := t.Refs()
	ids := make([]int, len(refs))
	for k, r := range refs {
		i, key, ok := idx.find(anchor, r)
		if !ok {
			return nil, false
		}
		if !t.Matches(k, beads[i].ResName, idx.labels[key]) {
			return nil, false
		}
		ids[k] = i
	}
	return &cg.Term{
		Kind:       t.TermKind(),
		Beads:      ids,
		Eq:         t.Eq,
		K:          t.K,
		Func:       t.Func,
		Mult:       t.Mult,
		Constraint: t.Constraint,
		Rule:       t.Name,
	}, true
}
