/*
 * graph.go, part of goCG.
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

package elnet

import (
	cg "github.com/rmera/gocg"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Excluder decides whether a pair of beads, given by their indexes, must be left out
// of the elastic network.
type Excluder interface {
	Excluded(i, j int) bool
}

// ExcluderFunc adapts a function to the Excluder interface.
type ExcluderFunc func(i, j int) bool

func (f ExcluderFunc) Excluded(i, j int) bool { return f(i, j) }

// BondGraph is the graph of the beads joined by bonds or constraints.
type BondGraph struct {
	g *simple.UndirectedGraph
}

// NewBondGraph builds the bond graph from the Bond terms among beads.
// Terms of other kinds are ignored.
func NewBondGraph(beads []*cg.Bead, terms []*cg.Term) *BondGraph {
	g := simple.NewUndirectedGraph()
	for _, b := range beads {
		if g.Node(int64(b.Index)) == nil {
			g.AddNode(simple.Node(b.Index))
		}
	}
	for _, t := range terms {
		if t.Kind != cg.Bond || len(t.Beads) != 2 || t.Beads[0] == t.Beads[1] {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(t.Beads[0]), simple.Node(t.Beads[1])))
	}
	return &BondGraph{g: g}
}

// Neighbors returns the indexes of the beads that are at most depth bonds away
// from bead i, not including i.
func (B *BondGraph) Neighbors(i, depth int) []int {
	from := B.g.Node(int64(i))
	if from == nil || depth <= 0 {
		return nil
	}
	var ret []int
	bf := traverse.BreadthFirst{}
	bf.Walk(B.g, from, func(n graph.Node, d int) bool {
		if d > depth {
			return true
		}
		if n.ID() != int64(i) {
			ret = append(ret, int(n.ID()))
		}
		return false
	})
	return ret
}

// Excluder returns an Excluder that leaves out the pairs of beads at most depth bonds
// apart. A depth of 0 excludes nothing.
func (B *BondGraph) Excluder(depth int) Excluder {
	near := make(map[[2]int]struct{})
	if depth > 0 {
		nodes := B.g.Nodes()
		for nodes.Next() {
			i := int(nodes.Node().ID())
			for _, j := range B.Neighbors(i, depth) {
				near[pairKey(i, j)] = struct{}{}
			}
		}
	}
	return ExcluderFunc(func(i, j int) bool {
		_, ok := near[pairKey(i, j)]
		return ok
	})
}

func pairKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}
