/*
 * geom_test.go, part of somcyp.
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

package geom

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	somcyp "github.com/md-studio/somcyp"
	v3 "github.com/md-studio/somcyp/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func tetrahedron(Te *testing.T) *v3.Matrix {
	A, err := v3.NewMatrix([]float64{
		0, 0, 0,
		1.5, 0, 0,
		0, 1.2, 0,
		0, 0, 0.9,
		0.4, 0.3, 2.1,
	})
	require.NoError(Te, err)
	return A
}

//addVec adds the 1-vector vec to each vector of A, in place.
func addVec(A, vec *v3.Matrix) {
	r, c := A.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			A.Set(i, j, A.At(i, j)+vec.At(0, j))
		}
	}
}

//rotated returns A rotated by angle around z and then translated.
func rotated(A *v3.Matrix, angle float64, t [3]float64) *v3.Matrix {
	c, s := math.Cos(angle), math.Sin(angle)
	R := mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
	B := A.Clone()
	B.Mul(B, R)
	tr, _ := v3.NewMatrix(t[:])
	addVec(B, tr)
	return B
}

func TestRMSD(Te *testing.T) {
	A := tetrahedron(Te)
	B := A.Clone()
	r, err := RMSD(A, B)
	require.NoError(Te, err)
	assert.Equal(Te, 0.0, r)
	tr, _ := v3.NewMatrix([]float64{1, 0, 0})
	addVec(B, tr)
	r, err = RMSD(A, B)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.0, r, 1e-12)
}

func TestKabschRMSD(Te *testing.T) {
	A := tetrahedron(Te)
	B := rotated(A, 1.1, [3]float64{3, -2, 7})
	orig := A.Clone()
	k, err := KabschRMSD(A, B)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.0, k, 1e-9)
	r, err := RMSD(A, B)
	require.NoError(Te, err)
	assert.Greater(Te, r, 1.0)
	assert.True(Te, mat.Equal(orig, A), "the input was modified")
}

func TestKabschNoReflection(Te *testing.T) {
	A := tetrahedron(Te)
	M := A.Clone()
	for i := 0; i < M.NVecs(); i++ {
		M.Set(i, 2, -M.At(i, 2))
	}
	k, err := KabschRMSD(A, M)
	require.NoError(Te, err)
	assert.Greater(Te, k, 1e-3, "a mirror image should not be superimposable")
}

func TestMetricProperties(Te *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sets := make([]*v3.Matrix, 6)
	for i := range sets {
		d := make([]float64, 3*7)
		for j := range d {
			d[j] = rng.NormFloat64() * 3
		}
		sets[i], _ = v3.NewMatrix(d)
	}
	for i := range sets {
		for j := range sets {
			r1, err := RMSD(sets[i], sets[j])
			require.NoError(Te, err)
			r2, _ := RMSD(sets[j], sets[i])
			k1, err := KabschRMSD(sets[i], sets[j])
			require.NoError(Te, err)
			k2, _ := KabschRMSD(sets[j], sets[i])
			assert.InDelta(Te, r1, r2, 1e-12)
			assert.InDelta(Te, k1, k2, 1e-9)
			assert.LessOrEqual(Te, k1, r1+1e-9)
			assert.GreaterOrEqual(Te, k1, 0.0)
			if i == j {
				assert.Equal(Te, 0.0, r1)
				assert.InDelta(Te, 0.0, k1, 1e-9)
			}
		}
	}
}

func TestShapeMismatch(Te *testing.T) {
	A := tetrahedron(Te)
	B, _ := v3.NewMatrix([]float64{0, 0, 0})
	_, err := RMSD(A, B)
	assert.True(Te, errors.Is(err, somcyp.ErrShapeMismatch))
	_, err = KabschRMSD(A, nil)
	assert.True(Te, errors.Is(err, somcyp.ErrShapeMismatch))
}

func TestParseMetric(Te *testing.T) {
	for name, want := range map[string]Metric{"rmsd": PlainRMSD, "RMSD": PlainRMSD, "kabsch": Kabsch, "Kabsch_RMSD": Kabsch} {
		m, err := ParseMetric(name)
		require.NoError(Te, err)
		assert.Equal(Te, want, m)
	}
	_, err := ParseMetric("tanimoto")
	assert.True(Te, errors.Is(err, somcyp.ErrUnsupportedMetric))
	_, err = Metric(7).Distance(tetrahedron(Te), tetrahedron(Te))
	assert.True(Te, errors.Is(err, somcyp.ErrUnsupportedMetric))
	assert.Equal(Te, "kabsch", Kabsch.String())
}
