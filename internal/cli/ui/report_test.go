package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestReport(Te *testing.T) {
	color.NoColor = true
	beads := []*cg.Bead{{Name: "BB", Chain: "A", Charge: 1}, {Name: "BB", Chain: "A"}}
	T := cg.NewTopology("A", beads, []*cg.Term{{Kind: cg.Bond, Beads: []int{0, 1}}}, cg.ParseLabels("HH"))
	R := &pipeline.Report{
		RunID:      uuid.New(),
		ForceField: "martini22",
		Chains: []*pipeline.ChainResult{
			{ChainID: "A", Labels: T.Labels, Topology: T},
			{ChainID: "B", Index: 1, Err: errors.New("chain B: no template for XYZ")},
		},
		Topology:         T,
		UnmappedResidues: 1,
		Elapsed:          1500 * time.Microsecond,
	}
	var b bytes.Buffer
	Report(&b, R)
	out := b.String()
	assert.Contains(Te, out, "force field martini22")
	assert.Contains(Te, out, "✓ chain A")
	assert.Contains(Te, out, "HH")
	assert.Contains(Te, out, "✗ chain B  chain B: no template for XYZ")
	assert.Contains(Te, out, "Total: 2 beads, charge +1.0, 1 terms (0 elastic) in 2ms")
	assert.Contains(Te, out, "1 unmapped residues")
	assert.Contains(Te, out, "1 of 2 chains failed")

	b.Reset()
	Written(&b, []string{"a.itp", "b.gro"})
	assert.Equal(Te, "Written:\n  a.itp\n  b.gro\n", b.String())
}

func TestEllipsis(Te *testing.T) {
	assert.Equal(Te, "HHH", ellipsis("HHH", 5))
	assert.Equal(Te, "HH...", ellipsis(strings.Repeat("H", 10), 5))
}
