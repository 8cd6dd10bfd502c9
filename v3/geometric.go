/*
 * geometric.go, part of goCG.
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

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Distance returns the distance between the 1-vectors a and b.
func Distance(a, b *Matrix) float64 {
	d := Zeros(1)
	d.Sub(b, a)
	return d.Norm()
}

// Angle takes 2 vectors and calculate the angle in radians between them.
// It does not check for correctness or return errors!
func Angle(v1, v2 *Matrix) float64 {
	normproduct := v1.Norm() * v2.Norm()
	if normproduct <= appzero {
		return math.NaN()
	}
	argument := v1.Dot(v2) / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

// BondAngle returns the angle, in radians, formed by the points a, b and c, with vertex in b.
func BondAngle(a, b, c *Matrix) float64 {
	ba := Zeros(1)
	bc := Zeros(1)
	ba.Sub(a, b)
	bc.Sub(c, b)
	return Angle(ba, bc)
}

// Dihedral calculates the dihedral between the points a, b, c, d, where the first plane
// is defined by abc and the second by bcd. The result is in radians, in (-pi, pi].
func Dihedral(a, b, c, d *Matrix) float64 {
	all := []*Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(fmt.Sprintf("Vector %d is nil", number))
		}
		pr, pc := point.Dims()
		if pr != 1 || pc != 3 {
			panic(fmt.Sprintf("Vector %d has invalid shape", number))
		}
	}
	//bma=b minus a
	bma := Zeros(1)
	cmb := Zeros(1)
	dmc := Zeros(1)
	bmascaled := Zeros(1)
	bma.Sub(b, a)
	cmb.Sub(c, b)
	dmc.Sub(d, c)
	bmascaled.Scale(cmb.Norm(), bma)
	v1 := Zeros(1)
	v2 := Zeros(1)
	v1.Cross(bma, cmb)
	v2.Cross(cmb, dmc)
	first := bmascaled.Dot(v2)
	second := v1.Dot(v2)
	return math.Atan2(first, second)
}

// WeightedCenter returns the weighted mean of the vectors in coords. If weights is nil, the
// geometric center is returned. It returns an error if the lengths don't match or
// the weights add up to zero.
func WeightedCenter(coords *Matrix, weights []float64) (*Matrix, error) {
	if coords == nil {
		return nil, Error{"nil matrix to get the center", []string{"v3.WeightedCenter"}, true}
	}
	n := coords.NVecs()
	if weights != nil {
		if len(weights) != n {
			return nil, Error{fmt.Sprintf("%d weights for %d vectors", len(weights), n), []string{"v3.WeightedCenter"}, true}
		}
		if floats.Sum(weights) <= appzero {
			return nil, Error{"weights add up to zero", []string{"v3.WeightedCenter"}, true}
		}
	}
	ret := Zeros(1)
	col := make([]float64, n)
	for j := 0; j < 3; j++ {
		ret.Set(0, j, stat.Mean(mat.Col(col, j, coords), weights))
	}
	return ret, nil
}

// Rad2Deg converts radians to degrees.
const Rad2Deg = 180 / math.Pi
