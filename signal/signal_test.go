/*
 * signal_test.go, part of somcyp.
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

package signal

import (
	"errors"
	"math"
	"testing"

	somcyp "github.com/md-studio/somcyp"
	"github.com/md-studio/somcyp/cluster"
	"github.com/md-studio/somcyp/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func value(Te *testing.T, T *Table, atom int, col string) float64 {
	v, ok := T.Value(atom, col)
	require.True(Te, ok, "atom %d column %s", atom, col)
	return v
}

func TestRanking(Te *testing.T) {
	A, err := NewAggregator([]Score{{1, 2.0}, {2, 1.0}}, Ranking)
	require.NoError(Te, err)
	T := A.Table()
	assert.Equal(Te, 0.0, value(Te, T, 1, "Reactivity"))
	assert.Equal(Te, 0.5, value(Te, T, 2, "Reactivity"))
	assert.Equal(Te, []int{1, 2}, T.Atoms())

	A, err = NewAggregator([]Score{{1, 0}, {2, 0}, {3, math.NaN()}}, Ranking)
	require.NoError(Te, err)
	assert.Equal(Te, 1.0, value(Te, A.Table(), 1, "Reactivity"))
	assert.True(Te, math.IsNaN(value(Te, A.Table(), 3, "Reactivity")))
}

func TestEnergy(Te *testing.T) {
	O := DefaultOptions()
	O.Logger(zaptest.NewLogger(Te))
	O.ReactivityName("SMARTCyp")
	A, err := NewAggregator([]Score{{1, 50}, {2, 100}, {3, 999}, {4, 1200}, {5, math.NaN()}}, Energy, O)
	require.NoError(Te, err)
	T := A.Table()
	assert.Equal(Te, 1.0, value(Te, T, 1, "SMARTCyp"))
	assert.Equal(Te, 0.5, value(Te, T, 2, "SMARTCyp"))
	for _, a := range []int{3, 4, 5} {
		assert.True(Te, math.IsNaN(value(Te, T, a, "SMARTCyp")), "atom %d should be missing", a)
	}
	assert.Equal(Te, []int{1}, T.Highlight("SMARTCyp"))

	//negative energies would give values out of range
	A, err = NewAggregator([]Score{{1, -10}, {2, 20}}, Energy, O)
	require.NoError(Te, err)
	assert.Equal(Te, 1.0, value(Te, A.Table(), 1, "SMARTCyp"))
	assert.Equal(Te, 0.0, value(Te, A.Table(), 2, "SMARTCyp"))
}

func TestNewAggregatorErrors(Te *testing.T) {
	_, err := NewAggregator([]Score{{1, 1}}, Convention(0))
	assert.True(Te, errors.Is(err, somcyp.ErrUnsupportedConvention))
	c, err := ParseConvention(" Energy")
	require.NoError(Te, err)
	assert.Equal(Te, Energy, c)
	_, err = ParseConvention("smartcyp")
	assert.True(Te, errors.Is(err, somcyp.ErrUnsupportedConvention))
	_, err = NewAggregator(nil, Ranking)
	assert.True(Te, errors.Is(err, somcyp.ErrAtomKeyMismatch))
	_, err = NewAggregator([]Score{{1, 1}, {1, 2}}, Ranking)
	assert.True(Te, errors.Is(err, somcyp.ErrAtomKeyMismatch))
}

func TestDocking(Te *testing.T) {
	A, err := NewAggregator([]Score{{10, 1}, {11, 2}, {12, 3}}, Ranking)
	require.NoError(Te, err)
	contacts := []Contact{{"p1", 10, "pi"}, {"p2", 10, "fe"}, {"p2", 10, "pi"}}
	require.NoError(Te, A.AddDocking(contacts, 3))
	T := A.Table()
	assert.Equal(Te, 1.0, value(Te, T, 10, "Docking"))
	assert.Equal(Te, 0.0, value(Te, T, 11, "Docking"))
	assert.Equal(Te, 0.0, value(Te, T, 12, "Docking"))
	assert.Equal(Te, []string{"p1", "p2"}, T.Poses())
	assert.True(Te, T.Contact("p2", 10))
	assert.False(Te, T.Contact("p2", 11))
	assert.Equal(Te, []string{"Reactivity", "Docking"}, T.Columns())
	err = A.AddDocking(nil, 3)
	assert.True(Te, errors.Is(err, somcyp.ErrDuplicateColumn))
}

func TestDockingRatios(Te *testing.T) {
	A, err := NewAggregator([]Score{{1, 1}, {2, 1}, {3, 1}}, Ranking)
	require.NoError(Te, err)
	contacts := []Contact{{"a", 1, ""}, {"b", 1, ""}, {"c", 1, ""}, {"d", 1, ""}, {"a", 2, ""}}
	require.NoError(Te, A.AddDocking(contacts, 10))
	assert.InDelta(Te, 1.0, value(Te, A.Table(), 1, "Docking"), 1e-12)
	assert.InDelta(Te, 0.25, value(Te, A.Table(), 2, "Docking"), 1e-12)
}

func TestDockingNoContacts(Te *testing.T) {
	A, err := NewAggregator([]Score{{1, 1}, {2, 1}}, Ranking)
	require.NoError(Te, err)
	require.NoError(Te, A.AddDocking(nil, 5))
	for _, a := range []int{1, 2} {
		assert.Equal(Te, 0.0, value(Te, A.Table(), a, "Docking"))
	}
	assert.Empty(Te, A.Table().Highlight("Docking"))
}

func TestDockingErrors(Te *testing.T) {
	A, err := NewAggregator([]Score{{1, 1}, {2, 1}}, Ranking)
	require.NoError(Te, err)
	err = A.AddDocking([]Contact{{"a", 1, ""}, {"a", 7, ""}}, 2)
	assert.True(Te, errors.Is(err, somcyp.ErrAtomKeyMismatch))
	assert.Equal(Te, []string{"Reactivity"}, A.Table().Columns(), "a failed step should leave the table untouched")
	err = A.AddDocking([]Contact{{"a", 1, ""}, {"b", 1, ""}}, 1)
	assert.True(Te, errors.Is(err, somcyp.ErrInvalidPoseCount))
	err = A.AddDocking([]Contact{{"a", 1, ""}}, 0)
	assert.True(Te, errors.Is(err, somcyp.ErrInvalidPoseCount))
	assert.Empty(Te, A.Table().Poses())
}

func TestAuxiliary(Te *testing.T) {
	A, err := NewAggregator([]Score{{1, 1}, {2, 2}, {3, 3}}, Ranking)
	require.NoError(Te, err)
	require.NoError(Te, A.AddAuxiliary("Occurrence", []AuxValue{{1, 0.9, "aliphatic hydroxylation"}, {2, 0.2, ""}}, 0.5))
	T := A.Table()
	assert.Equal(Te, 0.9, value(Te, T, 1, "Occurrence"))
	assert.True(Te, math.IsNaN(value(Te, T, 3, "Occurrence")))
	assert.Equal(Te, "aliphatic hydroxylation", T.Label(1, "Occurrence"))
	assert.Equal(Te, "", T.Label(2, "Occurrence"))
	assert.Equal(Te, []int{1}, T.Highlight("Occurrence"))
	col, ok := T.Column("Occurrence")
	require.True(Te, ok)
	col.Values[0] = 0
	assert.Equal(Te, 0.9, value(Te, T, 1, "Occurrence"), "Column should return a copy")

	err = A.AddAuxiliary("Occurrence", nil, 0.5)
	assert.True(Te, errors.Is(err, somcyp.ErrDuplicateColumn))
	err = A.AddAuxiliary("Other", []AuxValue{{1, 1.5, ""}}, 0.5)
	assert.True(Te, errors.Is(err, somcyp.ErrSignalRange))
	err = A.AddAuxiliary("Other", []AuxValue{{9, 0.5, ""}}, 0.5)
	assert.True(Te, errors.Is(err, somcyp.ErrAtomKeyMismatch))
	_, ok = T.Column("Other")
	assert.False(Te, ok)
}

func TestFilterContacts(Te *testing.T) {
	D, err := cluster.NewDistanceMatrixFromCondensed([]string{"p1", "p2", "p3", "p4"}, []float64{1, 3, 7, 2, 6, 4}, geom.PlainRMSD)
	require.NoError(Te, err)
	CA, err := cluster.Cluster(D, cluster.Params{Threshold: 2, Method: cluster.Single, Criterion: cluster.MaxClust, MinClusterCount: 2})
	require.NoError(Te, err)
	contacts := []Contact{{"p1", 1, ""}, {"p4", 1, ""}, {"p4", 2, ""}, {"p9", 2, ""}}
	kept, n := FilterContacts(contacts, CA)
	assert.Equal(Te, 3, n)
	assert.Equal(Te, []Contact{{"p1", 1, ""}}, kept)
}
