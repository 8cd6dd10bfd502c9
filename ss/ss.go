/*
 * ss.go, part of goCG.
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

// Package ss assigns secondary structure to protein chains from their CA trace, and
// handles secondary-structure strings given by the user or read from DSSP files.
package ss

import (
	"math"

	cg "github.com/rmera/gocg"
	v3 "github.com/rmera/gocg/v3"
)

// descriptors are the CA-trace (and backbone) geometric values for one residue.
// Unavailable values are NaN.
type descriptors struct {
	d2, d3, d4 float64
	theta, tau float64
	kappa      float64
	phi, psi   float64
}

func (S *Signature) match(d descriptors, phipsi bool) bool {
	if !(S.D2.Has(d.d2) && S.D3.Has(d.d3) && S.D4.Has(d.d4) && S.Theta.Has(d.theta) && S.Tau.Has(d.tau)) {
		return false
	}
	if phipsi {
		if !math.IsNaN(d.phi) && !S.Phi.Has(d.phi) {
			return false
		}
		if !math.IsNaN(d.psi) && !S.Psi.Has(d.psi) {
			return false
		}
	}
	return true
}

// trace returns the trace atom coordinates for each residue, nil for the residues lacking it.
func trace(c *cg.Chain, name string) []*v3.Matrix {
	ret := make([]*v3.Matrix, c.Len())
	for i, r := range c.Residues {
		if at := r.Atom(name); at != nil {
			ret[i] = v3.Vec(at.Coord[0], at.Coord[1], at.Coord[2])
		}
	}
	return ret
}

func atomVec(r *cg.Residue, name string) *v3.Matrix {
	at := r.Atom(name)
	if at == nil {
		return nil
	}
	return v3.Vec(at.Coord[0], at.Coord[1], at.Coord[2])
}

func describe(c *cg.Chain, p []*v3.Matrix, i int) descriptors {
	nan := math.NaN()
	d := descriptors{nan, nan, nan, nan, nan, nan, nan, nan}
	at := func(j int) *v3.Matrix {
		if j < 0 || j >= len(p) {
			return nil
		}
		return p[j]
	}
	dist := func(a, b *v3.Matrix) float64 {
		if a == nil || b == nil {
			return nan
		}
		return v3.Distance(a, b)
	}
	m2, m1, c0, p1, p2 := at(i-2), at(i-1), at(i), at(i+1), at(i+2)
	d.d2 = dist(m1, p1)
	d.d3 = dist(m1, p2)
	d.d4 = dist(m2, p2)
	if m1 != nil && c0 != nil && p1 != nil {
		d.theta = v3.BondAngle(m1, c0, p1) * v3.Rad2Deg
		if p2 != nil {
			d.tau = v3.Dihedral(m1, c0, p1, p2) * v3.Rad2Deg
		}
	}
	if m2 != nil && c0 != nil && p2 != nil {
		u := v3.Zeros(1)
		w := v3.Zeros(1)
		u.Sub(c0, m2)
		w.Sub(p2, c0)
		d.kappa = v3.Angle(u, w) * v3.Rad2Deg
	}
	//phi and psi, only if the whole backbone is there.
	r := c.Residues[i]
	n, ca, cc := atomVec(r, "N"), atomVec(r, "CA"), atomVec(r, "C")
	if n == nil || ca == nil || cc == nil {
		return d
	}
	if i > 0 {
		if prevC := atomVec(c.Residues[i-1], "C"); prevC != nil {
			d.phi = v3.Dihedral(prevC, n, ca, cc) * v3.Rad2Deg
		}
	}
	if i < c.Len()-1 {
		if nextN := atomVec(c.Residues[i+1], "N"); nextN != nil {
			d.psi = v3.Dihedral(n, ca, cc, nextN) * v3.Rad2Deg
		}
	}
	return d
}

// Runs returns the [start, end) index pairs of the maximal runs of consecutive
// labels for which pred is true.
func Runs(labels cg.Labels, pred func(cg.Label) bool) [][2]int {
	var ret [][2]int
	start := -1
	for i, l := range labels {
		if pred(l) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			ret = append(ret, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		ret = append(ret, [2]int{start, len(labels)})
	}
	return ret
}

func boolRuns(m []bool) [][2]int {
	var ret [][2]int
	start := -1
	for i, v := range m {
		if v && start < 0 {
			start = i
		} else if !v && start >= 0 {
			ret = append(ret, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		ret = append(ret, [2]int{start, len(m)})
	}
	return ret
}

// Classify assigns a secondary structure label to each residue of the chain, from the
// geometry of its CA trace (see Thresholds). Helix takes precedence over 3-10 helix, which takes
// precedence over sheet, then turn, bend and coil. Helix and strand matches need to come in runs of at least
// MinRun residues; shorter runs are downgraded to bend or coil. Residues lacking the trace atom
// get cg.Unknown. The result always has one label per residue.
func Classify(c *cg.Chain, opts ...*Options) cg.Labels {
	O := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		O = opts[0]
	}
	T := O.Thresholds()
	n := c.Len()
	labels := make(cg.Labels, n)
	if n == 0 {
		return labels
	}
	p := trace(c, O.Trace())
	desc := make([]descriptors, n)
	for i := range desc {
		desc[i] = describe(c, p, i)
	}
	set := func(i int, l cg.Label) {
		if i >= 0 && i < n && labels[i] == cg.Unknown && p[i] != nil {
			labels[i] = l
		}
	}
	//residues matching a helix or strand signature in a run too short to count.
	//They can only be bend or coil.
	short := make([]bool, n)
	paint := func(sig *Signature, l cg.Label, partner bool) {
		m := make([]bool, n)
		for i := range m {
			m[i] = p[i] != nil && labels[i] == cg.Unknown && sig.match(desc[i], O.PhiPsi())
		}
		for _, r := range boolRuns(m) {
			if r[1]-r[0] < T.MinRun {
				for i := r[0]; i < r[1]; i++ {
					short[i] = true
				}
				continue
			}
			if partner && !hasPartner(p, r, T.PartnerDist) {
				continue
			}
			for i := r[0] - T.Extend; i < r[1]+T.Extend; i++ {
				set(i, l)
			}
		}
	}
	paint(&T.Alpha, cg.Helix, false)
	paint(&T.H310, cg.Helix310, false)
	paint(&T.Strand, cg.Sheet, T.PartnerDist > 0)
	turns := make([]bool, n)
	for i := range turns {
		turns[i] = labels[i] == cg.Unknown && !short[i] && desc[i].d3 < T.TurnD3 //NaN compares false
	}
	for _, r := range boolRuns(turns) {
		if r[1]-r[0] < T.TurnMinRun {
			continue
		}
		for i := r[0]; i < r[1]; i++ {
			set(i, cg.Turn)
		}
	}
	for i := range labels {
		if desc[i].kappa > T.BendKappa {
			set(i, cg.Bend)
		}
		set(i, cg.Coil)
	}
	return labels
}

// hasPartner returns true if some residue in the run has the trace atom of
// a residue 3 or more positions away within dist.
func hasPartner(p []*v3.Matrix, run [2]int, dist float64) bool {
	for i := run[0]; i < run[1]; i++ {
		if p[i] == nil {
			continue
		}
		for j, q := range p {
			if q == nil || (j-i < 3 && i-j < 3) {
				continue
			}
			if v3.Distance(p[i], q) <= dist {
				return true
			}
		}
	}
	return false
}
