/*
 * params.go, part of goCG.
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
	"fmt"
	"math"
)

// Params controls how the elastic network is built. Distances are in nm.
// The force constant of a pair at distance d is K*exp(-DecayRate*(d-DecayShift)^DecayPower),
// or just K for distances below DecayShift.
type Params struct {
	Enabled            bool     `mapstructure:"enabled"`
	Beads              []string `mapstructure:"beads"` //bead names taking part. Empty means backbone beads.
	Lower              float64  `mapstructure:"lower"`
	Upper              float64  `mapstructure:"upper"`
	K                  float64  `mapstructure:"k"`
	DecayRate          float64  `mapstructure:"decay_rate"`
	DecayPower         float64  `mapstructure:"decay_power"`
	DecayShift         float64  `mapstructure:"decay_shift"`
	MinForce           float64  `mapstructure:"min_force"`
	MinSeparation      int      `mapstructure:"min_separation"` //in residues, within a chain
	CrossChain         bool     `mapstructure:"cross_chain"`
	SkipSameHelix      bool     `mapstructure:"skip_same_helix"`
	ExcludeBondedDepth int      `mapstructure:"exclude_bonded_depth"`
	Func               int      `mapstructure:"func"`
}

// DefaultParams returns the martinize defaults for an elastic network on the backbone:
// 500 kJ/mol/nm^2 for pairs between 0.5 and 0.9 nm, 3 or more residues apart, without decay.
func DefaultParams() Params {
	return Params{
		Lower:              0.5,
		Upper:              0.9,
		K:                  500,
		DecayPower:         1,
		MinSeparation:      3,
		ExcludeBondedDepth: 2,
		Func:               6,
	}
}

// Force returns the force constant for a pair at distance d (nm).
func (P Params) Force(d float64) float64 {
	if P.DecayRate == 0 {
		return P.K
	}
	x := d - P.DecayShift
	if x <= 0 {
		return P.K
	}
	return P.K * math.Exp(-P.DecayRate*math.Pow(x, P.DecayPower))
}

// Validate returns an error if the parameters can't produce a network.
func (P Params) Validate() error {
	switch {
	case P.Lower < 0 || P.Upper < 0:
		return fmt.Errorf("elastic network: negative distance bounds (%g, %g)", P.Lower, P.Upper)
	case P.Upper < P.Lower:
		return fmt.Errorf("elastic network: upper bound %g below lower bound %g", P.Upper, P.Lower)
	case P.K < 0:
		return fmt.Errorf("elastic network: negative force constant %g", P.K)
	case P.DecayRate < 0:
		return fmt.Errorf("elastic network: negative decay rate %g", P.DecayRate)
	case P.DecayRate > 0 && P.DecayPower <= 0:
		return fmt.Errorf("elastic network: decay power must be positive, got %g", P.DecayPower)
	case P.MinSeparation < 0 || P.ExcludeBondedDepth < 0:
		return fmt.Errorf("elastic network: negative separation or exclusion depth")
	case P.Enabled && P.Func <= 0:
		return fmt.Errorf("elastic network: invalid function type %d", P.Func)
	}
	return nil
}
