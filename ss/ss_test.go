package ss

import (
	"errors"
	"strings"
	"testing"

	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/internal/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func polyAla(n int) []string {
	return fixture.Residues(strings.Repeat("A", n))
}

func TestClassifyAlphaHelix(Te *testing.T) {
	c := fixture.CAChain("A", polyAla(10), fixture.AlphaCA(10))
	labels := Classify(c)
	require.Len(Te, labels, 10)
	assert.Equal(Te, "CHHHHHHHHC", labels.String())
}

func TestClassify310(Te *testing.T) {
	c := fixture.CAChain("A", polyAla(10), fixture.Helix310CA(10))
	labels := Classify(c)
	for i := 2; i < 8; i++ {
		assert.Equal(Te, cg.Helix310, labels[i], "residue %d: %s", i, labels)
	}
}

func TestClassifyHairpin(Te *testing.T) {
	trace := fixture.Hairpin(8)
	c := fixture.CAChain("A", polyAla(len(trace)), trace)
	labels := Classify(c)
	require.Len(Te, labels, 18)
	for i := 2; i < 6; i++ {
		assert.Equal(Te, cg.Sheet, labels[i], "residue %d: %s", i, labels)
		assert.Equal(Te, cg.Sheet, labels[len(labels)-1-i], "residue %d: %s", len(labels)-1-i, labels)
	}
}

func TestLoneStrandIsNotSheet(Te *testing.T) {
	c := fixture.CAChain("A", polyAla(8), fixture.Strand(8, [3]float64{}, 1))
	labels := Classify(c)
	assert.Zero(Te, labels.Count(cg.Sheet), labels.String())
	O := DefaultOptions()
	O.Thresholds().PartnerDist = 0
	labels = Classify(c, O)
	assert.Equal(Te, cg.Sheet, labels[3], labels.String())
}

func TestShortRunsAreDowngraded(Te *testing.T) {
	//one or two residues with a complete helical window, less than MinRun.
	for _, n := range []int{5, 6} {
		c := fixture.CAChain("A", polyAla(n), fixture.AlphaCA(n))
		labels := Classify(c)
		require.Len(Te, labels, n)
		for i, l := range labels {
			assert.Contains(Te, []cg.Label{cg.Coil, cg.Bend}, l, "n=%d residue %d: %s", n, i, labels)
		}
	}
}

func TestMissingTrace(Te *testing.T) {
	c := fixture.CAChain("A", polyAla(10), fixture.AlphaCA(10))
	ca := c.Residues[9].Atoms[0]
	ca.Name = "XX"
	c.Residues[9] = cg.NewResidue("ALA", 10, ca)
	c, err := cg.NewChain("A", c.Residues)
	require.NoError(Te, err)
	labels := Classify(c)
	assert.Equal(Te, cg.Unknown, labels[9])
	assert.Len(Te, labels, 10)
	//other trace atoms can be used
	O := DefaultOptions()
	O.Trace("XX")
	labels = Classify(c, O)
	assert.Equal(Te, cg.Unknown, labels[0])
	assert.Equal(Te, "XX", O.Trace("CA"), "the setter returns the previous value")
}

func TestClassifyIsDeterministic(Te *testing.T) {
	trace := fixture.Hairpin(6)
	c := fixture.CAChain("A", polyAla(len(trace)), trace)
	first := Classify(c)
	for i := 0; i < 5; i++ {
		assert.Equal(Te, first, Classify(c))
	}
}

func TestOverride(Te *testing.T) {
	computed := cg.ParseLabels("CHHHHC")
	got, err := Override(computed, "EE..TT")
	require.NoError(Te, err)
	assert.Equal(Te, "EEHHTT", got.String())
	assert.Equal(Te, "CHHHHC", computed.String())
	_, err = Override(computed, "HHH")
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, cg.ErrLabelLengthMismatch))

	c := fixture.CAChain("A", polyAla(10), fixture.AlphaCA(10))
	got, err = Assign(c, strings.Repeat("E", 10))
	require.NoError(Te, err)
	assert.Equal(Te, 10, got.Count(cg.Sheet))
	_, err = Assign(c, "EEE\r\n")
	assert.True(Te, errors.Is(err, cg.ErrLabelLengthMismatch))
	assert.Contains(Te, err.Error(), "override has 3 labels, chain has 10 residues")
	got, err = Assign(c, strings.Repeat("E", 10)+"\n")
	require.NoError(Te, err)
	assert.Len(Te, got, 10)
}

func TestRuns(Te *testing.T) {
	l := cg.ParseLabels("HHCCHHHE")
	assert.Equal(Te, [][2]int{{0, 2}, {4, 7}}, Runs(l, cg.Label.Helical))
	assert.Nil(Te, Runs(l, func(x cg.Label) bool { return x == cg.Turn }))
}

const dsspSample = `==== Secondary Structure Definition by the program DSSP ====
  #  RESIDUE AA STRUCTURE BP1 BP2  ACC     N-H-->O    O-->H-N    N-H-->O    O-->H-N    TCO  KAPPA ALPHA  PHI   PSI    X-CA   Y-CA   Z-CA
    1    1 A M              0   0  156      0, 0.0     2,-0.3     0, 0.0    47,-0.1   0.000 360.0 360.0 360.0 147.5   27.0   10.4  -12.6
    2    2 A Q  E     -a   64   0A  89     62,-2.7    64,-0.2     1,-0.1     2,-0.1  -0.946 360.0 -161.8 -122.6 146.7   26.4   13.2   -9.9
    3    3 A I  E     -ab  65  10A   3     62,-1.9    64,-0.3     1,-0.1    21,-0.2  -0.933  11.1 -166.5 -120.7 130.9   26.6   13.6   -6.2
    4        !              0   0    0      0, 0.0     0, 0.0     0, 0.0     0, 0.0   0.000 360.0 360.0 360.0 360.0    0.0    0.0    0.0
    5    1 B G  H  >        0   0   10      0, 0.0     0, 0.0     0, 0.0     0, 0.0   0.000 360.0 360.0 360.0 360.0    0.0    0.0    0.0
`

func TestReadDSSP(Te *testing.T) {
	got, err := ReadDSSP(strings.NewReader(dsspSample))
	require.NoError(Te, err)
	assert.Equal(Te, map[string]string{"A": "CEE", "B": "H"}, got)
	_, err = ReadDSSP(strings.NewReader("nothing here\n"))
	assert.Error(Te, err)
}
