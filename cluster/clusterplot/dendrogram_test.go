/*
 * dendrogram_test.go, part of somcyp.
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

package clusterplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/md-studio/somcyp/cluster"
	"github.com/md-studio/somcyp/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func lineAssignment(Te *testing.T) *cluster.Assignment {
	D, err := cluster.NewDistanceMatrixFromCondensed([]string{"a", "b", "c", "d"}, []float64{1, 3, 7, 2, 6, 4}, geom.PlainRMSD)
	require.NoError(Te, err)
	A, err := cluster.Cluster(D, cluster.Params{Threshold: 2, Method: cluster.Single, Criterion: cluster.MaxClust, MinClusterCount: 1})
	require.NoError(Te, err)
	return A
}

func TestColorThreshold(Te *testing.T) {
	A := lineAssignment(Te)
	T := A.Tree()
	assert.Equal(Te, 4.0, ColorThreshold(T, 2))
	assert.Equal(Te, 2.0, ColorThreshold(T, 3))
	assert.Equal(Te, 5.0, ColorThreshold(T, 1))
	groups := linkColors(T, T.MaxHeights(), 4)
	assert.Equal(Te, []int{1, 1, 0}, groups)
}

func TestDendrogram(Te *testing.T) {
	A := lineAssignment(Te)
	_, err := Dendrogram(A.Tree(), []string{"a"}, 1)
	assert.Error(Te, err)
	p, err := Dendrogram(A.Tree(), A.Labels(), 4)
	require.NoError(Te, err)
	assert.Equal(Te, 40.0, p.X.Max)
	assert.Equal(Te, 3*vg.Millimeter, p.Title.Padding)
	dir := Te.TempDir()
	for _, name := range []string{"dendrogram.png", "dendrogram.svg"} {
		fname := filepath.Join(dir, name)
		require.NoError(Te, Save(A, fname))
		st, err := os.Stat(fname)
		require.NoError(Te, err)
		assert.NotZero(Te, st.Size())
	}
}
