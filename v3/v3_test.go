/*
 * v3_test.go, part of goCG.
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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrixShape(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2})
	assert.Error(Te, err)
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	assert.Equal(Te, [3]float64{4, 5, 6}, A.Array(1))
}

func TestGeo(Te *testing.T) {
	a := Vec(1, 0, 0)
	b := Vec(0, 0, 0)
	c := Vec(0, 1, 0)
	d := Vec(0, 1, 1)
	assert.InDelta(Te, 1.0, Distance(a, b), 1e-12)
	assert.InDelta(Te, 90.0, BondAngle(a, b, c)*Rad2Deg, 1e-9)
	assert.InDelta(Te, 90.0, math.Abs(Dihedral(a, b, c, d))*Rad2Deg, 1e-9)
	//trans and cis
	assert.InDelta(Te, 180.0, math.Abs(Dihedral(a, b, c, Vec(-1, 1, 0)))*Rad2Deg, 1e-9)
	assert.InDelta(Te, 0.0, Dihedral(a, b, c, Vec(1, 1, 0))*Rad2Deg, 1e-9)
	x := Zeros(1)
	x.Cross(a, c)
	assert.Equal(Te, [3]float64{0, 0, 1}, x.Array(0))
	assert.Equal(Te, "   0.000    0.000    1.000\n", x.String())
	assert.Panics(Te, func() { x.Cross(Zeros(2), c) })
	assert.True(Te, math.IsNaN(Angle(a, b)))
}

func TestWeightedCenter(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 2, 0, 0})
	c, err := WeightedCenter(A, nil)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.0, c.At(0, 0), 1e-12)
	c, err = WeightedCenter(A, []float64{3, 1})
	require.NoError(Te, err)
	assert.InDelta(Te, 0.5, c.At(0, 0), 1e-12)
	_, err = WeightedCenter(A, []float64{1})
	assert.Error(Te, err)
	_, err = WeightedCenter(A, []float64{0, 0})
	assert.Error(Te, err)
}
