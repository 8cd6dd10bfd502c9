/*
 * top_test.go, part of goCG.
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
	"bytes"
	"strings"
	"testing"

	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/elnet"
	"github.com/rmera/gocg/ff"
	"github.com/rmera/gocg/internal/fixture"
	"github.com/rmera/gocg/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(Te *testing.T, name string) *ff.ForceField {
	F, err := ff.Default.Load(name)
	require.NoError(Te, err)
	return F
}

func caHelix(Te *testing.T) *cg.Topology {
	seq := strings.Repeat("A", 10)
	c := fixture.CAChain("A", fixture.Residues(seq), fixture.AlphaCA(10))
	labels := cg.ParseLabels("CHHHHHHHHC")
	F := load(Te, "ca")
	beads, _, err := mapping.Map(c, labels, F)
	require.NoError(Te, err)
	T, err := Generate(beads, labels, F)
	require.NoError(Te, err)
	return T
}

func TestGenerateCAHelix(Te *testing.T) {
	T := caHelix(Te)
	assert.Equal(Te, 10, T.Len())
	assert.Equal(Te, 9, T.Count(cg.Bond))
	assert.Equal(Te, 8, T.Count(cg.Angle))
	assert.Zero(Te, T.Count(cg.Dihedral))

	//brute force: not bonded, within 0.9 nm
	expected := 0
	for i := range T.Beads {
		for j := i + 2; j < T.Len(); j++ {
			if T.Beads[i].Distance(T.Beads[j]) <= 9.0 {
				expected++
			}
		}
	}
	assert.Equal(Te, 26, expected)
	el := T.TermsOf(cg.Elastic)
	assert.Len(Te, el, expected)
	for k, t := range el {
		assert.Equal(Te, elnet.Rule, t.Rule)
		assert.Less(Te, t.Beads[0], t.Beads[1])
		assert.GreaterOrEqual(Te, t.Beads[1]-t.Beads[0], 2)
		if k > 0 {
			p := el[k-1]
			assert.True(Te, p.Beads[0] < t.Beads[0] || (p.Beads[0] == t.Beads[0] && p.Beads[1] < t.Beads[1]))
		}
	}
	for i, b := range T.Beads {
		assert.Equal(Te, i, b.Index)
	}
	assert.Equal(Te, "CHHHHHHHHC", T.Labels.String())
	assert.Equal(Te, "P5", T.Beads[0].Type)
	assert.Equal(Te, "N0", T.Beads[1].Type)
}

func TestGroupFirstMatch(Te *testing.T) {
	T := caHelix(Te)
	rules := map[string]int{}
	for _, t := range T.TermsOf(cg.Angle) {
		rules[t.Rule]++
	}
	//anchors 1 to 6 have three helical residues
	assert.Equal(Te, map[string]int{"ca-angle-helix": 6, "ca-angle": 2}, rules)
	for _, t := range T.TermsOf(cg.Angle) {
		if t.Rule == "ca-angle-helix" {
			assert.Equal(Te, 91.0, t.Eq)
		}
	}
}

func TestGenerateMartini22(Te *testing.T) {
	seq := "KLAGF"
	c := fixture.FullChain("A", fixture.Residues(seq), fixture.AlphaCA(len(seq)))
	labels := cg.ParseLabels("CCCCC")
	F := load(Te, "martini22")
	beads, _, err := mapping.Map(c, labels, F)
	require.NoError(Te, err)
	T, err := Generate(beads, labels, F)
	require.NoError(Te, err)
	var bonds, constraints int
	for _, t := range T.TermsOf(cg.Bond) {
		if t.Constraint {
			constraints++
		} else {
			bonds++
		}
	}
	assert.Equal(Te, 8, bonds)
	assert.Equal(Te, 3, constraints)
	assert.Equal(Te, 8, T.Count(cg.Angle))
	assert.Zero(Te, T.Count(cg.Dihedral))
	assert.Zero(Te, T.Count(cg.Elastic))
	assert.Equal(Te, 1.0, T.Charge()) //charged termini and LYS
	assert.NoError(Te, T.Check())
	//the input is not modified
	beads[0].Name = "XX"
	assert.Equal(Te, "BB", T.Beads[0].Name)
}

func TestGenerateHelixDihedrals(Te *testing.T) {
	c := fixture.FullChain("A", fixture.Residues("LLLLLL"), fixture.AlphaCA(6))
	labels := cg.ParseLabels("HHHHHH")
	F := load(Te, "martini22")
	beads, _, err := mapping.Map(c, labels, F)
	require.NoError(Te, err)
	T, err := Generate(beads, labels, F)
	require.NoError(Te, err)
	assert.Equal(Te, 3, T.Count(cg.Dihedral))
	for _, t := range T.TermsOf(cg.Dihedral) {
		assert.Equal(Te, -120.0, t.Eq)
		assert.Equal(Te, 1, t.Mult)
	}
	n := 0
	for _, t := range T.TermsOf(cg.Bond) {
		if t.Rule == "bb-bond-helix" {
			assert.True(Te, t.Constraint)
			n++
		}
	}
	assert.Equal(Te, 5, n)
}

func TestGenerateUntypedBead(Te *testing.T) {
	b := []*cg.Bead{{Name: "BB", Chain: "A", ResName: "ALA"}}
	_, err := Generate(b, cg.ParseLabels("C"), load(Te, "ca"))
	k, ok := cg.KindOf(err)
	require.True(Te, ok)
	assert.Equal(Te, cg.InvalidForceFieldConfig, k)
}

func TestITP(Te *testing.T) {
	T := caHelix(Te)
	var buf bytes.Buffer
	require.NoError(Te, WriteITP(&buf, T, "Protein_A", "ca"))
	out := buf.String()
	assert.Contains(Te, out, "; AAAAAAAAAA\n")
	assert.Contains(Te, out, "; CHHHHHHHHC\n")
	assert.Contains(Te, out, "#ifdef RUBBER_BANDS")

	I, err := ReadITP(strings.NewReader(out))
	require.NoError(Te, err)
	assert.Equal(Te, "Protein_A", I.Name)
	assert.Equal(Te, 1, I.Nrexcl)
	require.Len(Te, I.Atoms, 10)
	assert.Equal(Te, "N0", I.Atoms[1].Type)
	assert.Equal(Te, 2, I.Atoms[1].ResNr)
	assert.Equal(Te, 72.0, I.Atoms[1].Mass)
	assert.Equal(Te, 9, I.Count(cg.Bond))
	assert.Equal(Te, 8, I.Count(cg.Angle))
	assert.Zero(Te, I.Count(cg.Elastic))

	I, err = ReadITP(strings.NewReader(out), RubberBands)
	require.NoError(Te, err)
	assert.Equal(Te, T.Count(cg.Elastic), I.Count(cg.Elastic))
	for _, k := range cg.Kinds {
		var read []*cg.Term
		for _, t := range I.Terms {
			if t.Kind == k {
				read = append(read, t)
			}
		}
		written := T.TermsOf(k)
		require.Len(Te, read, len(written))
		for i, t := range written {
			assert.Equal(Te, t.Beads, read[i].Beads)
			assert.InDelta(Te, t.Eq, read[i].Eq, 1e-5)
		}
	}
}

func TestITPImpropers(Te *testing.T) {
	T := cg.NewTopology("A", []*cg.Bead{
		{Name: "SC1", Type: "SC4", ResName: "TRP"}, {Name: "SC2", Type: "SNd", ResName: "TRP"},
		{Name: "SC3", Type: "SC5", ResName: "TRP"}, {Name: "SC4", Type: "SC5", ResName: "TRP"},
	}, []*cg.Term{
		{Kind: cg.Improper, Beads: []int{0, 1, 3, 2}, K: 50, Func: 2},
		{Kind: cg.Dihedral, Beads: []int{0, 1, 2, 3}, Eq: -120, K: 400, Func: 1, Mult: 1},
		{Kind: cg.Bond, Beads: []int{0, 1}, Eq: 0.27, Func: 1, Constraint: true},
	}, cg.ParseLabels("C"))
	var buf bytes.Buffer
	require.NoError(Te, WriteITP(&buf, T, "Protein", "martini22"))
	I, err := ReadITP(&buf)
	require.NoError(Te, err)
	require.Len(Te, I.Terms, 3)
	assert.Equal(Te, cg.Improper, I.Terms[2].Kind)
	assert.Equal(Te, []int{0, 1, 3, 2}, I.Terms[2].Beads)
	assert.Equal(Te, 1, I.Terms[1].Mult)
	assert.True(Te, I.Terms[0].Constraint)
	assert.Equal(Te, 0.27, I.Terms[0].Eq)
}

func TestWriteTop(Te *testing.T) {
	var buf bytes.Buffer
	require.NoError(Te, WriteTop(&buf, "test system", "martini_v2.2.itp", []string{"Protein_A", "Protein_B"}))
	out := buf.String()
	assert.True(Te, strings.HasPrefix(out, "#include \"martini_v2.2.itp\""))
	assert.Contains(Te, out, "#include \"Protein_B.itp\"")
	assert.Contains(Te, out, "[ molecules ]\nProtein_A")
}

func TestGro(Te *testing.T) {
	T := caHelix(Te)
	var a, b bytes.Buffer
	require.NoError(Te, WriteGro(&a, T, "helix"))
	require.NoError(Te, WriteGro(&b, T, "helix"))
	G, err := ReadGro(bytes.NewReader(a.Bytes()))
	require.NoError(Te, err)
	assert.Equal(Te, "helix", G.Title)
	require.Len(Te, G.Atoms, 10)
	assert.Equal(Te, "BB", G.Atoms[3].Name)
	assert.Equal(Te, 4, G.Atoms[3].ResNr)
	assert.InDelta(Te, T.Beads[3].Coord[2]*A2nm, G.Atoms[3].Coord[2], 1e-3)
	require.Len(Te, G.Box, 3)
	assert.Greater(Te, G.Box[2], 2*BoxMargin)

	eq, err := GroEqual(bytes.NewReader(a.Bytes()), bytes.NewReader(b.Bytes()), 1e-3)
	require.NoError(Te, err)
	assert.True(Te, eq)

	T.Beads[5].Coord[0] += 1 //0.1 nm
	var c bytes.Buffer
	require.NoError(Te, WriteGro(&c, T, "moved"))
	eq, err = GroEqual(bytes.NewReader(a.Bytes()), &c, 1e-3)
	require.NoError(Te, err)
	assert.False(Te, eq)

	_, err = GroEqual(strings.NewReader("title\nnot a number\n"), &b, 1e-3)
	assert.Error(Te, err)
}

const refGro = `INSANE! Membrane UpperLeaflet>POPC=1 LowerLeaflet>POPC=1
4
    1POPC   NC3    1   2.111  14.647  11.951
    1POPC   PO4    2   2.177  14.644  11.651
    1POPC   GL1    3   2.128  14.642  11.351
    1POPC   GL2    4   1.961  14.651  11.351
10 10 10
`

func TestGroEqualFields(Te *testing.T) {
	cases := []struct {
		name string
		gro  string
		want bool
	}{
		{"identical", refGro, true},
		{"within tolerance", strings.Replace(refGro, "11.351\n    1POPC   GL2", "11.352\n    1POPC   GL2", 1), true},
		{"out of tolerance", strings.Replace(refGro, "11.351\n    1POPC   GL2", "11.353\n    1POPC   GL2", 1), false},
		{"title", strings.Replace(refGro, "INSANE! Membrane UpperLeaflet>POPC=1 LowerLeaflet>POPC=1", "A different title", 1), false},
		{"residue name", strings.Replace(refGro, "1POPC   PO4", "1DIFF   PO4", 1), false},
		{"box", strings.Replace(refGro, "10 10 10", "10 9.9 10", 1), false},
		{"triclinic box", strings.Replace(refGro, "10 10 10", "10 9.9 10 9.08 4 54", 1), false},
		{"null triclinic terms", strings.Replace(refGro, "10 10 10", "10 10 10 0 0 0 0 0 0", 1), true},
	}
	for _, c := range cases {
		eq, err := GroEqual(strings.NewReader(refGro), strings.NewReader(c.gro), 1.5e-3)
		require.NoError(Te, err, c.name)
		assert.Equal(Te, c.want, eq, c.name)
	}
	G, err := ReadGro(strings.NewReader(strings.Replace(refGro, "10 10 10", "10 9.9 10 9.08 4 54", 1)))
	require.NoError(Te, err)
	assert.Equal(Te, []float64{10, 9.9, 10, 9.08, 4, 54}, G.Box)
}
