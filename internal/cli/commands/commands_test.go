package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/internal/fixture"
	"github.com/rmera/gocg/internal/zio"
	"github.com/rmera/gocg/pdb"
	"github.com/rmera/gocg/pipeline"
	"github.com/rmera/gocg/top"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shifted(ca [][3]float64, dx float64) [][3]float64 {
	for i := range ca {
		ca[i][0] += dx
	}
	return ca
}

func atomRecord(serial int, name, res, chain string, seq int, c [3]float64) string {
	return fmt.Sprintf("%-6s%5d %-4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f\n",
		"ATOM", serial, name, res, chain, seq, c[0], c[1], c[2], 1.0, 0.0)
}

// writePDB writes the chains to a PDB file in dir, followed by a chain X of residues
// of type XYZ if unknown is true.
func writePDB(Te *testing.T, dir string, unknown bool, chains ...*cg.Chain) string {
	Te.Helper()
	var b strings.Builder
	s := 1
	for _, c := range chains {
		for _, r := range c.Residues {
			for _, a := range r.Atoms {
				b.WriteString(atomRecord(s, a.Name, r.Name, c.ID, r.SeqNum, a.Coord))
				s++
			}
		}
		b.WriteString("TER\n")
	}
	if unknown {
		for i, n := range []string{"N", "CA", "C", "O"} {
			b.WriteString(atomRecord(s, n, "XYZ", "X", 1, [3]float64{80 + float64(i), 0, 0}))
			s++
		}
		b.WriteString("TER\n")
	}
	b.WriteString("END\n")
	path := filepath.Join(dir, "prot.pdb")
	require.NoError(Te, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// isolate keeps the tests from reading any configuration file of the user.
func isolate(Te *testing.T) {
	Te.Setenv("HOME", Te.TempDir())
	Te.Setenv("XDG_CONFIG_HOME", Te.TempDir())
}

func execute(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func dimer() []*cg.Chain {
	return []*cg.Chain{
		fixture.FullChain("A", fixture.Residues("MKLVFAGE"), fixture.AlphaCA(8)),
		fixture.FullChain("B", fixture.Residues("KRWYH"), shifted(fixture.AlphaCA(5), 20)),
	}
}

func TestNewRootCommand(Te *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(Te, "gocg", cmd.Name())
	for _, name := range []string{"run", "ff", "ss", "version"} {
		c, _, err := cmd.Find([]string{name})
		require.NoError(Te, err)
		assert.Equal(Te, name, c.Name())
	}
	out, err := execute(Te, "version")
	require.NoError(Te, err)
	assert.Contains(Te, out, "goCG version: dev")
}

func TestFFList(Te *testing.T) {
	isolate(Te)
	out, err := execute(Te, "ff", "list")
	require.NoError(Te, err)
	for _, name := range []string{"martini22", "elnedyn22", "ca"} {
		assert.Contains(Te, out, name)
	}
	_, err = execute(Te, "ff", "list", "--ff-dir", filepath.Join(Te.TempDir(), "none"))
	assert.Error(Te, err)
}

func TestRun(Te *testing.T) {
	isolate(Te)
	dir := Te.TempDir()
	in := writePDB(Te, dir, false, dimer()...)
	out := filepath.Join(dir, "out")
	stdout, err := execute(Te, "run", "-f", in, "-o", out, "--cg-pdb", "cg.pdb.gz", "--plot", "--elastic", "on", "--cpus", "2")
	require.NoError(Te, err, stdout)
	assert.Contains(Te, stdout, "chain A")
	for _, name := range []string{"Protein_A.itp", "Protein_B.itp", "topol.top", "cg.gro", "cg.pdb.gz", "ss.png", "elastic.png", "elastic_k.png"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(Te, err, name)
	}
	topol, err := os.ReadFile(filepath.Join(out, "topol.top"))
	require.NoError(Te, err)
	assert.Contains(Te, string(topol), "#include \"martini_v2.2.itp\"")
	assert.Contains(Te, string(topol), "#include \"Protein_B.itp\"")

	f, err := os.Open(filepath.Join(out, "Protein_A.itp"))
	require.NoError(Te, err)
	itp, err := top.ReadITP(f, top.RubberBands)
	f.Close()
	require.NoError(Te, err)
	assert.Equal(Te, "Protein_A", itp.Name)
	assert.Positive(Te, itp.Count(cg.Elastic))

	//the gro file has the beads of both chains, in order.
	want, err := pipeline.Run(context.Background(), dimer())
	require.NoError(Te, err)
	f, err = os.Open(filepath.Join(out, "cg.gro"))
	require.NoError(Te, err)
	gro, err := top.ReadGro(f)
	f.Close()
	require.NoError(Te, err)
	assert.Len(Te, gro.Atoms, want.Topology.Len())

	cgpdb, err := pdb.ReadFile(filepath.Join(out, "cg.pdb.gz"))
	require.NoError(Te, err)
	assert.Len(Te, cgpdb, 2)

	//a single molecule
	out = filepath.Join(dir, "merged")
	_, err = execute(Te, "-f", in, "-o", out, "--merge", "--gro", "cg.gro.zst")
	require.NoError(Te, err)
	_, err = os.Stat(filepath.Join(out, "Protein.itp"))
	assert.NoError(Te, err)
	_, err = os.Stat(filepath.Join(out, "Protein_A.itp"))
	assert.True(Te, os.IsNotExist(err))
	r, err := zio.Open(filepath.Join(out, "cg.gro.zst"))
	require.NoError(Te, err)
	gro, err = top.ReadGro(r)
	r.Close()
	require.NoError(Te, err)
	assert.Len(Te, gro.Atoms, want.Topology.Len())
}

func TestRunPartialFailure(Te *testing.T) {
	isolate(Te)
	dir := Te.TempDir()
	in := writePDB(Te, dir, true, dimer()[0])
	out := filepath.Join(dir, "out")
	stdout, err := execute(Te, "run", in, "-o", out)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "1 of 2 chains failed")
	assert.Contains(Te, stdout, "chain X")
	_, err = os.Stat(filepath.Join(out, "Protein_A.itp"))
	assert.NoError(Te, err)
	_, err = os.Stat(filepath.Join(out, "Protein_X.itp"))
	assert.True(Te, os.IsNotExist(err))
}

func TestRunErrors(Te *testing.T) {
	isolate(Te)
	dir := Te.TempDir()
	in := writePDB(Te, dir, false, dimer()...)
	cases := [][]string{
		{"run"},
		{"run", "-f", filepath.Join(dir, "missing.pdb")},
		{"run", "-f", in, "--elastic", "maybe"},
		{"run", "-f", in, "--forcefield", "martini99"},
		{"run", "-f", in, "--ss", "HHH"},
		{"run", "-f", in, "--ss", "HHH", "--dssp", "x.dssp"},
	}
	for _, c := range cases {
		_, err := execute(Te, append(c, "-o", filepath.Join(dir, "out"))...)
		assert.Error(Te, err, "%v", c)
	}
}

func TestSS(Te *testing.T) {
	isolate(Te)
	dir := Te.TempDir()
	in := writePDB(Te, dir, false, fixture.CAChain("A", fixture.Residues(strings.Repeat("A", 10)), fixture.AlphaCA(10)))
	out, err := execute(Te, "ss", in)
	require.NoError(Te, err)
	assert.Equal(Te, ">A\nAAAAAAAAAA\nCHHHHHHHHC\n", out)
}

func TestMolecules(Te *testing.T) {
	T := cg.NewTopology("A", nil, nil, nil)
	R := &pipeline.Report{
		Topology: T,
		Chains: []*pipeline.ChainResult{
			{ChainID: "A", Index: 0, Topology: T},
			{ChainID: "B", Index: 1, Err: fmt.Errorf("failed")},
			{ChainID: "A", Index: 2, Topology: T},
			{ChainID: "", Index: 3, Topology: T},
		},
	}
	var names []string
	for _, m := range molecules(R, false) {
		names = append(names, m.name)
	}
	assert.Equal(Te, []string{"Protein_A", "Protein_A_3", "Protein"}, names)
	m := molecules(R, true)
	require.Len(Te, m, 1)
	assert.Equal(Te, "Protein", m[0].name)
	assert.Same(Te, T, m[0].T)
	assert.Equal(Te, "martini_v2.2.itp", ffInclude("Martini22"))
	assert.Equal(Te, "ca.itp", ffInclude("ca"))
}
