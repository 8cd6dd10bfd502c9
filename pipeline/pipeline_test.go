package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/ff"
	"github.com/rmera/gocg/internal/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shifted(ca [][3]float64, dx float64) [][3]float64 {
	for i := range ca {
		ca[i][0] += dx
	}
	return ca
}

func helix(id, seq string, dx float64) *cg.Chain {
	return fixture.CAChain(id, fixture.Residues(seq), shifted(fixture.AlphaCA(len(seq)), dx))
}

func caOptions() *Options {
	O := DefaultOptions()
	O.ForceFieldName("ca")
	return O
}

func TestRunSingleHelix(Te *testing.T) {
	R, err := Run(context.Background(), []*cg.Chain{helix("A", strings.Repeat("A", 10), 0)}, caOptions())
	require.NoError(Te, err)
	require.NoError(Te, R.Err())
	assert.Equal(Te, "ca", R.ForceField)
	assert.NotEqual(Te, uuid.Nil, R.RunID)
	T := R.Topology
	assert.Equal(Te, 10, T.Len())
	assert.Equal(Te, 9, T.Count(cg.Bond))
	assert.Equal(Te, 8, T.Count(cg.Angle))
	assert.Equal(Te, 26, T.Count(cg.Elastic))
	assert.Equal(Te, "CHHHHHHHHC", R.Chains[0].Labels.String())

	O := caOptions()
	O.Elastic(ElasticOff)
	R, err = Run(context.Background(), []*cg.Chain{helix("A", strings.Repeat("A", 10), 0)}, O)
	require.NoError(Te, err)
	assert.Zero(Te, R.Topology.Count(cg.Elastic))
}

// A residue type the force field has no template for fails its chain only.
func TestRunUnmappedResidue(Te *testing.T) {
	F := ff.CA()
	F.Name = "ca-notrp"
	var kept []*ff.ResidueTemplate
	for _, r := range F.Residues {
		if r.Name != "TRP" {
			kept = append(kept, r)
		}
	}
	F.Residues = kept
	reg := ff.NewRegistry()
	require.NoError(Te, reg.Register(F))
	O := DefaultOptions()
	O.Registry(reg)
	O.ForceFieldName("ca-notrp")
	chains := []*cg.Chain{helix("A", "AAAAWAAAA", 0), helix("B", "AAAAAA", 30)}
	R, err := Run(context.Background(), chains, O)
	require.NoError(Te, err)
	require.Len(Te, R.Chains, 2)
	a, b := R.Chains[0], R.Chains[1]
	require.Error(Te, a.Err)
	assert.True(Te, errors.Is(a.Err, cg.ErrUnmappedResidue))
	assert.Nil(Te, a.Topology)
	require.Len(Te, a.Diagnostics.Unmapped, 1)
	assert.Equal(Te, "TRP5", a.Diagnostics.Unmapped[0].Residue)
	assert.NoError(Te, b.Err)
	require.NotNil(Te, b.Topology)
	assert.Equal(Te, 6, b.Topology.Len())
	assert.Equal(Te, 1, R.UnmappedResidues)
	assert.Len(Te, R.Failed(), 1)
	assert.Error(Te, R.Err())
	require.Len(Te, R.Topology.Chains, 1)
	assert.Equal(Te, "B", R.Topology.Chains[0].ChainID)
	assert.Equal(Te, 6, R.Topology.Len())
	assert.NoError(Te, R.Topology.Check())
}

func TestRunOverrideLength(Te *testing.T) {
	chains := []*cg.Chain{helix("A", "AAAAA", 0), helix("B", "AAAA", 30)}
	started := 0
	var mu sync.Mutex
	O := caOptions()
	O.before = func(int) {
		mu.Lock()
		started++
		mu.Unlock()
	}
	O.SS(strings.Repeat("H", 8))
	R, err := Run(context.Background(), chains, O)
	assert.Nil(Te, R)
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, cg.ErrLabelLengthMismatch))
	assert.Zero(Te, started)

	O.SS("HHHHHEEEE")
	R, err = Run(context.Background(), chains, O)
	require.NoError(Te, err)
	assert.Equal(Te, "HHHHH", R.Chains[0].Labels.String())
	assert.Equal(Te, "EEEE", R.Chains[1].Labels.String())
	assert.Equal(Te, "HHHHHEEEE", R.Topology.Labels.String())
	assert.Equal(Te, 2, started)

	O.ChainSS(map[string]string{"B": "TTST"})
	R, err = Run(context.Background(), chains, O)
	require.NoError(Te, err)
	assert.Equal(Te, "TTST", R.Chains[1].Labels.String())
	assert.Equal(Te, "HHHHH", R.Chains[0].Labels.String())

	O.ChainSS(map[string]string{"B": "TTT"})
	_, err = Run(context.Background(), chains, O)
	assert.True(Te, errors.Is(err, cg.ErrLabelLengthMismatch))
	O.ChainSS(map[string]string{"Z": "TTTT"})
	_, err = Run(context.Background(), chains, O)
	assert.True(Te, errors.Is(err, cg.ErrLabelLengthMismatch))
}

func TestRunBadForceField(Te *testing.T) {
	O := DefaultOptions()
	O.ForceFieldName("martini99")
	_, err := Run(context.Background(), []*cg.Chain{helix("A", "AAAA", 0)}, O)
	k, ok := cg.KindOf(err)
	require.True(Te, ok)
	assert.Equal(Te, cg.InvalidForceFieldConfig, k)

	F := ff.CA()
	F.Templates[0].Beads = []string{"BB", "+XX"}
	O = DefaultOptions()
	O.ForceField(F)
	_, err = Run(context.Background(), []*cg.Chain{helix("A", "AAAA", 0)}, O)
	assert.True(Te, errors.Is(err, cg.ErrInvalidForceFieldConfig))

	O = caOptions()
	O.Elastic(ElasticOn)
	reg := ff.NewRegistry()
	F = ff.CA()
	F.Name = "ca-badnet"
	F.Elastic.Enabled = false
	F.Elastic.Func = 0
	require.NoError(Te, reg.Register(F))
	O.Registry(reg)
	O.ForceFieldName("ca-badnet")
	_, err = Run(context.Background(), []*cg.Chain{helix("A", "AAAA", 0)}, O)
	assert.True(Te, errors.Is(err, cg.ErrInvalidForceFieldConfig))
}

// The merged topology follows the input order, not the completion order.
func TestRunOrder(Te *testing.T) {
	chains := []*cg.Chain{helix("A", strings.Repeat("A", 10), 0), helix("B", strings.Repeat("L", 5), 30)}
	var mu sync.Mutex
	var finished []int
	O := caOptions()
	O.Cpus(2)
	O.before = func(i int) {
		if i == 0 {
			time.Sleep(150 * time.Millisecond)
		}
	}
	O.after = func(i int) {
		mu.Lock()
		finished = append(finished, i)
		mu.Unlock()
	}
	R, err := Run(context.Background(), chains, O)
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 0}, finished)
	T := R.Topology
	require.Len(Te, T.Chains, 2)
	assert.Equal(Te, cg.Segment{ChainID: "A", FirstBead: 0, NBeads: 10, FirstRes: 0, NRes: 10}, T.Chains[0])
	assert.Equal(Te, cg.Segment{ChainID: "B", FirstBead: 10, NBeads: 5, FirstRes: 10, NRes: 5}, T.Chains[1])
	for i, b := range T.Beads {
		assert.Equal(Te, i, b.Index)
		if i < 10 {
			assert.Equal(Te, "A", b.Chain)
		} else {
			assert.Equal(Te, "B", b.Chain)
		}
	}
	for _, t := range T.Terms {
		for _, v := range t.Beads[1:] {
			assert.Equal(Te, t.Beads[0] < 10, v < 10, "term %v crosses chains", t.Beads)
		}
	}
}

func TestRunDeterminism(Te *testing.T) {
	mk := func() []*cg.Chain {
		return []*cg.Chain{
			fixture.FullChain("A", fixture.Residues("MKLVFAGE"), fixture.AlphaCA(8)),
			fixture.FullChain("B", fixture.Residues("KRWYH"), shifted(fixture.AlphaCA(5), 20)),
			fixture.FullChain("C", fixture.Residues("STNQ"), shifted(fixture.AlphaCA(4), 40)),
		}
	}
	O := DefaultOptions()
	O.Elastic(ElasticOn)
	R1, err := Run(context.Background(), mk(), O)
	require.NoError(Te, err)
	require.NoError(Te, R1.Err())
	O.Cpus(1)
	R2, err := Run(context.Background(), mk(), O)
	require.NoError(Te, err)
	assert.Equal(Te, R1.Topology.Beads, R2.Topology.Beads)
	assert.Equal(Te, R1.Topology.Terms, R2.Topology.Terms)
	assert.Equal(Te, R1.Topology.Labels, R2.Topology.Labels)
	assert.NotEqual(Te, R1.RunID, R2.RunID)
}

func crossTerms(T *cg.Topology) int {
	n := 0
	for _, t := range T.TermsOf(cg.Elastic) {
		if !T.Beads[t.Beads[0]].SameChain(T.Beads[t.Beads[1]]) {
			n++
		}
	}
	return n
}

func TestRunCrossChain(Te *testing.T) {
	chains := []*cg.Chain{helix("A", strings.Repeat("A", 6), 0), helix("B", strings.Repeat("A", 6), 6)}
	cross := crossTerms
	O := caOptions()
	R, err := Run(context.Background(), chains, O)
	require.NoError(Te, err)
	assert.Zero(Te, cross(R.Topology))
	O.CrossChain(true)
	R, err = Run(context.Background(), chains, O)
	require.NoError(Te, err)
	assert.Positive(Te, cross(R.Topology))
	assert.NoError(Te, R.Topology.Check())
}

// Chains split by TER records can share an ID, and are still different chains.
func TestRunSharedChainID(Te *testing.T) {
	mk := func(second string) []*cg.Chain {
		return []*cg.Chain{helix("A", strings.Repeat("A", 10), 0), helix(second, strings.Repeat("A", 10), 7)}
	}
	O := caOptions()
	O.CrossChain(true)
	ab, err := Run(context.Background(), mk("B"), O)
	require.NoError(Te, err)
	aa, err := Run(context.Background(), mk("A"), O)
	require.NoError(Te, err)
	require.NoError(Te, aa.Topology.Check())
	assert.Positive(Te, crossTerms(ab.Topology))
	assert.Equal(Te, crossTerms(ab.Topology), crossTerms(aa.Topology))
	assert.Equal(Te, ab.Topology.Count(cg.Elastic), aa.Topology.Count(cg.Elastic))
	for i, b := range aa.Topology.Beads {
		assert.Equal(Te, i/10, b.Segment)
	}

	O.CrossChain(false)
	ab, err = Run(context.Background(), mk("B"), O)
	require.NoError(Te, err)
	aa, err = Run(context.Background(), mk("A"), O)
	require.NoError(Te, err)
	assert.Zero(Te, crossTerms(aa.Topology))
	assert.Equal(Te, ab.Topology.Count(cg.Elastic), aa.Topology.Count(cg.Elastic))
}

func TestRunCancelled(Te *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chains := []*cg.Chain{helix("A", "AAAA", 0), helix("B", "AAAA", 30)}
	R, err := Run(ctx, chains, caOptions())
	assert.ErrorIs(Te, err, context.Canceled)
	require.NotNil(Te, R)
	for _, c := range R.Chains {
		assert.ErrorIs(Te, c.Err, context.Canceled)
	}
	assert.Zero(Te, R.Topology.Len())
}
