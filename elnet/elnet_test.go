/*
 * elnet_test.go, part of goCG.
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
	"math"
	"slices"
	"testing"

	cg "github.com/rmera/gocg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line returns n backbone beads of chain ch, 3.8 A apart along x, starting at index first.
func line(ch string, n, first int, y float64) []*cg.Bead {
	ret := make([]*cg.Bead, n)
	for i := range ret {
		ret[i] = &cg.Bead{Index: first + i, Name: "BB", Type: "P5", Chain: ch, ResName: "ALA", ResIndex: i, Backbone: true, SS: cg.Coil,
			Coord: [3]float64{3.8 * float64(i), y, 0}}
	}
	return ret
}

func bonds(beads []*cg.Bead) []*cg.Term {
	var ret []*cg.Term
	for i := 1; i < len(beads); i++ {
		if beads[i].SameChain(beads[i-1]) {
			ret = append(ret, &cg.Term{Kind: cg.Bond, Beads: []int{beads[i-1].Index, beads[i].Index}})
		}
	}
	return ret
}

func params() Params {
	return Params{Enabled: true, Upper: 0.9, K: 500, DecayPower: 1, MinSeparation: 1, Func: 6}
}

func TestBuild(Te *testing.T) {
	beads := line("A", 6, 0, 0)
	P := params()
	terms := Build(beads, nil, P)
	// separations 1 (0.38 nm) and 2 (0.76 nm)
	require.Len(Te, terms, 9)
	assert.Equal(Te, []int{0, 1}, terms[0].Beads)
	assert.InDelta(Te, 0.38, terms[0].Eq, 1e-9)
	assert.Equal(Te, 500.0, terms[0].K)
	assert.Equal(Te, 6, terms[0].Func)
	assert.Equal(Te, Rule, terms[0].Rule)
	assert.Equal(Te, cg.Elastic, terms[0].Kind)

	P.MinSeparation = 2
	assert.Len(Te, Build(beads, nil, P), 4)

	P = params()
	P.Lower = 0.5
	assert.Len(Te, Build(beads, nil, P), 4)

	P = params()
	P.Beads = []string{"SC1"}
	assert.Empty(Te, Build(beads, nil, P))
}

func TestBuildOrder(Te *testing.T) {
	beads := line("A", 8, 0, 0)
	P := params()
	want := Build(beads, nil, P)
	rev := slices.Clone(beads)
	slices.Reverse(rev)
	got := Build(rev, nil, P)
	require.Len(Te, got, len(want))
	for i := range want {
		assert.Equal(Te, want[i].Beads, got[i].Beads)
		assert.Equal(Te, want[i].Eq, got[i].Eq)
	}
	for i := 1; i < len(got); i++ {
		p, t := got[i-1].Beads, got[i].Beads
		assert.True(Te, p[0] < t[0] || (p[0] == t[0] && p[1] < t[1]), "terms %d and %d out of order", i-1, i)
	}
}

func TestForce(Te *testing.T) {
	P := Params{K: 500, DecayRate: 10, DecayPower: 1, DecayShift: 0.38}
	assert.Equal(Te, 500.0, P.Force(0.3))
	assert.Equal(Te, 500.0, P.Force(0.38))
	assert.InDelta(Te, 500*math.Exp(-3.8), P.Force(0.76), 1e-9)
	P.DecayPower = 2
	assert.InDelta(Te, 500*math.Exp(-10*0.38*0.38), P.Force(0.76), 1e-9)
	P.DecayRate = 0
	assert.Equal(Te, 500.0, P.Force(5))
}

func TestMinForce(Te *testing.T) {
	beads := line("A", 6, 0, 0)
	P := params()
	P.DecayRate = 10
	P.DecayShift = 0.38
	terms := Build(beads, nil, P)
	require.Len(Te, terms, 9)
	assert.InDelta(Te, 500*math.Exp(-3.8), terms[1].K, 1e-6)
	P.MinForce = 100
	terms = Build(beads, nil, P)
	assert.Len(Te, terms, 5)
	for _, t := range terms {
		assert.Equal(Te, 1, t.Beads[1]-t.Beads[0])
	}
}

func TestSkipSameHelix(Te *testing.T) {
	beads := line("A", 6, 0, 0)
	P := params()
	P.SkipSameHelix = true
	labels := cg.ParseLabels("HHCHHC")
	// (0,1) and (3,4) are in the same helix
	assert.Len(Te, Build(beads, labels, P), 7)
	// without labels, the bead SS is used
	for i, l := range labels {
		beads[i].SS = l
	}
	assert.Len(Te, Build(beads, nil, P), 7)
	P.SkipSameHelix = false
	assert.Len(Te, Build(beads, labels, P), 9)
}

func TestBondExclusion(Te *testing.T) {
	beads := line("A", 6, 0, 0)
	g := NewBondGraph(beads, bonds(beads))
	assert.Equal(Te, []int{1, 2}, g.Neighbors(0, 2))
	assert.ElementsMatch(Te, []int{1, 3}, g.Neighbors(2, 1))
	assert.Empty(Te, g.Neighbors(2, 0))
	assert.Empty(Te, g.Neighbors(42, 1))

	P := params()
	assert.Len(Te, Build(beads, nil, P, g.Excluder(0)), 9)
	assert.Len(Te, Build(beads, nil, P, g.Excluder(1)), 4)
	assert.Empty(Te, Build(beads, nil, P, g.Excluder(2)))
	onlyFirst := ExcluderFunc(func(i, j int) bool { return i == 0 || j == 0 })
	assert.Len(Te, Build(beads, nil, P, onlyFirst, nil), 7)
}

func TestCrossChain(Te *testing.T) {
	a := line("A", 3, 0, 0)
	b := line("B", 3, 3, 5)
	beads := append(a, b...)
	P := params()
	assert.Len(Te, Build(beads, nil, P), 6)
	P.CrossChain = true
	assert.Len(Te, Build(beads, nil, P), 13)
	cross := BuildCross(beads, params())
	require.Len(Te, cross, 7)
	for _, t := range cross {
		assert.Less(Te, t.Beads[0], 3)
		assert.GreaterOrEqual(Te, t.Beads[1], 3)
	}
	assert.Equal(Te, []int{0, 3}, cross[0].Beads)
	assert.InDelta(Te, 0.5, cross[0].Eq, 1e-9)
}

func TestSharedChainID(Te *testing.T) {
	a := line("A", 3, 0, 0)
	b := line("A", 3, 3, 5)
	for _, v := range b {
		v.Segment = 1
	}
	beads := append(a, b...)
	P := params()
	assert.Len(Te, Build(beads, nil, P), 6)
	cross := BuildCross(beads, P)
	require.Len(Te, cross, 7)
	for _, t := range cross {
		assert.Less(Te, t.Beads[0], 3)
		assert.GreaterOrEqual(Te, t.Beads[1], 3)
	}
	//helices are not joined across chains
	for _, v := range beads {
		v.SS = cg.Helix
	}
	P.SkipSameHelix = true
	P.CrossChain = true
	assert.Len(Te, Build(beads, nil, P), 7)
}

func TestValidate(Te *testing.T) {
	assert.NoError(Te, DefaultParams().Validate())
	bad := []func(*Params){
		func(P *Params) { P.Lower = -1 },
		func(P *Params) { P.Upper = 0.1 },
		func(P *Params) { P.K = -5 },
		func(P *Params) { P.DecayRate = -1 },
		func(P *Params) { P.DecayRate = 1; P.DecayPower = 0 },
		func(P *Params) { P.MinSeparation = -1 },
		func(P *Params) { P.Enabled = true; P.Func = 0 },
	}
	for i, f := range bad {
		P := DefaultParams()
		f(&P)
		assert.Error(Te, P.Validate(), "case %d", i)
	}
}
