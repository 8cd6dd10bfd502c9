/*
 * options.go, part of goCG.
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

package ss

import "math"

// Range is a closed interval. An empty Range (Min == Max == 0) accepts anything.
type Range struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// Has returns true if v is in the range. NaN is never in a non-empty range.
func (R Range) Has(v float64) bool {
	if R.Min == 0 && R.Max == 0 {
		return true
	}
	return v >= R.Min && v <= R.Max
}

// AngleRange is an interval of angles, in degrees, given by its center and half-width.
// It handles the wrap-around at +-180.
type AngleRange struct {
	Center float64 `mapstructure:"center"`
	Width  float64 `mapstructure:"width"`
}

// Has returns true if the angle v (degrees) is within Width of Center.
// A zero Width accepts anything.
func (A AngleRange) Has(v float64) bool {
	if A.Width == 0 {
		return true
	}
	if math.IsNaN(v) {
		return false
	}
	d := math.Mod(math.Abs(v-A.Center), 360)
	if d > 180 {
		d = 360 - d
	}
	return d <= A.Width
}

// Signature is the set of CA-trace descriptors that a residue must match to be assigned
// a given secondary structure. Distances are in Angstrom and angles in degrees.
// For residue i, D2 is the CA(i-1)-CA(i+1) distance, D3 is CA(i-1)-CA(i+2), D4 is CA(i-2)-CA(i+2),
// Theta is the CA(i-1)-CA(i)-CA(i+1) angle and Tau the CA(i-1)-CA(i)-CA(i+1)-CA(i+2) dihedral.
// Phi and Psi are only checked when the backbone N and C atoms are available.
type Signature struct {
	D2    Range      `mapstructure:"d2"`
	D3    Range      `mapstructure:"d3"`
	D4    Range      `mapstructure:"d4"`
	Theta Range      `mapstructure:"theta"`
	Tau   AngleRange `mapstructure:"tau"`
	Phi   AngleRange `mapstructure:"phi"`
	Psi   AngleRange `mapstructure:"psi"`
}

// Thresholds contains all the geometric criteria used by Classify.
type Thresholds struct {
	Alpha  Signature `mapstructure:"alpha"`
	H310   Signature `mapstructure:"h310"`
	Strand Signature `mapstructure:"strand"`
	//Strands are only labeled as sheet if some residue has a CA
	//from a non-neighbor residue (3 or more positions away) closer than this.
	//0 disables the check.
	PartnerDist float64 `mapstructure:"partner_dist"`
	TurnD3      float64 `mapstructure:"turn_d3"`    //max CA(i-1)-CA(i+2) distance for a turn
	BendKappa   float64 `mapstructure:"bend_kappa"` //min CA(i-2)-CA(i)-CA(i+2) bend angle for a bend
	MinRun      int     `mapstructure:"min_run"`    //shortest helix or strand run kept
	TurnMinRun  int     `mapstructure:"turn_min_run"`
	Extend      int     `mapstructure:"extend"` //residues added at each end of a kept run
}

// DefaultThresholds returns the default criteria, in the spirit of P-SEA.
func DefaultThresholds() *Thresholds {
	return &Thresholds{
		Alpha: Signature{
			D2:    Range{5.0, 6.0},
			D3:    Range{4.6, 5.8},
			D4:    Range{5.6, 7.0},
			Theta: Range{77, 103},
			Tau:   AngleRange{50, 20},
			Phi:   AngleRange{-63, 45},
			Psi:   AngleRange{-42, 45},
		},
		H310: Signature{
			D2:    Range{4.8, 5.8},
			D3:    Range{5.8, 6.8},
			D4:    Range{7.5, 9.5},
			Theta: Range{70, 100},
			Tau:   AngleRange{85, 25},
			Phi:   AngleRange{-60, 45},
			Psi:   AngleRange{-25, 45},
		},
		Strand: Signature{
			D2:    Range{6.0, 7.4},
			D3:    Range{9.0, 11.0},
			D4:    Range{11.3, 14.0},
			Theta: Range{105, 145},
			Tau:   AngleRange{-170, 45},
			Phi:   AngleRange{-120, 60},
			Psi:   AngleRange{130, 60},
		},
		PartnerDist: 5.5,
		TurnD3:      7.0,
		BendKappa:   70,
		MinRun:      3,
		TurnMinRun:  2,
		Extend:      1,
	}
}

// Options for the secondary structure assignment.
type Options struct {
	trace  string
	thr    *Thresholds
	phipsi bool
}

// DefaultOptions returns the default options: the CA atoms are used as the
// trace, default thresholds, and phi/psi are not checked.
func DefaultOptions() *Options {
	return &Options{trace: "CA", thr: DefaultThresholds()}
}

// Trace returns the current name of the trace atom and sets it, if a
// non-empty name is given.
func (O *Options) Trace(name ...string) string {
	ret := O.trace
	if len(name) > 0 && name[0] != "" {
		O.trace = name[0]
	}
	return ret
}

// Thresholds returns the current thresholds and sets them, if non-nil ones are given.
func (O *Options) Thresholds(t ...*Thresholds) *Thresholds {
	ret := O.thr
	if len(t) > 0 && t[0] != nil {
		O.thr = t[0]
	}
	return ret
}

// PhiPsi returns whether the backbone dihedrals are checked, when the atoms
// are available, and sets it, if a value is given.
func (O *Options) PhiPsi(use ...bool) bool {
	ret := O.phipsi
	if len(use) > 0 {
		O.phipsi = use[0]
	}
	return ret
}
