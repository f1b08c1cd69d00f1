/*
 * v3_test.go, part of somcyp.
 *
 * Copyright 2024 The somcyp authors
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())

	_, err = NewMatrix([]float64{1, 2, 3, 4})
	assert.Error(Te, err)
	_, err = NewMatrix(nil)
	assert.Error(Te, err)
}

func TestCentroidAndSubVec(Te *testing.T) {
	A, err := NewMatrix([]float64{0, 0, 0, 2, 0, 0, 0, 4, 0, 2, 4, 8})
	require.NoError(Te, err)
	c := A.Centroid()
	assert.InDeltaSlice(Te, []float64{1, 2, 2}, mat.Row(nil, 0, c.Dense), 1e-12)
	B := A.Clone()
	B.SubVec(B, c)
	assert.InDeltaSlice(Te, []float64{0, 0, 0}, mat.Row(nil, 0, B.Centroid().Dense), 1e-12)
	//A is untouched
	assert.Equal(Te, 2.0, A.At(1, 0))
	assert.Panics(Te, func() { B.SubVec(B, A) })
}

func TestMulAliasing(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	eye := mat.NewDense(3, 3, []float64{0, 1, 0, 1, 0, 0, 0, 0, 1})
	A.Mul(A, eye)
	assert.Equal(Te, []float64{2, 1, 3}, mat.Row(nil, 0, A.Dense))
	assert.InDelta(Te, -1.0, Det3(eye), 1e-12)
}

func TestNVecsShape(Te *testing.T) {
	A := &Matrix{mat.NewDense(2, 4, nil)}
	assert.PanicsWithValue(Te, ErrNotNx3Matrix, func() { A.NVecs() })
	assert.Equal(Te, 4, Zeros(4).NVecs())
}
