/*
 * cypconf_test.go, part of somcyp.
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

package cypconf

import (
	"errors"
	"strings"
	"testing"

	somcyp "github.com/md-studio/somcyp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectDefault(Te *testing.T) {
	T := DefaultTable()
	cases := []struct {
		iso  string
		mw   float64
		nh   int
		want string
	}{
		{"3A4", 200, 5, "3UA1_apo_5901.mol2"},
		{"3A4", 400, 5, "3UA1_BCP_3521.mol2"}, //last match wins over 3UA1_apo_6091
		{"3A4", 600, 5, "3UA1_BCP_3521.mol2"},
		{"cyp1a2", 150, 40, "1A2_nathan.mol2"},
		{"2D6", 250, 30, "2D6_PPD_70_216.mol2"},
		{"2D6", 300, 10, "2D6_TMF_70_3.mol2"},
		{"2D6", 300, 30, "2D6_TMF_70_3.mol2"},
	}
	for _, c := range cases {
		ch, err := T.Select(c.iso, c.mw, c.nh)
		require.NoError(Te, err, c.iso)
		assert.Equal(Te, c.want, ch.Structure, "%s %v %d", c.iso, c.mw, c.nh)
	}
}

func TestBoundariesAreExclusive(Te *testing.T) {
	T := DefaultTable()
	_, err := T.Select("3A4", 354, 0)
	assert.True(Te, errors.Is(err, somcyp.ErrNoConformation), "354 is in none of (0,354), (354,500) and (354,9999)")
	ch, err := T.Select("3A4", 354.01, 0)
	require.NoError(Te, err)
	assert.Equal(Te, "3UA1_BCP_3521.mol2", ch.Structure)
}

func TestLastMatchWins(Te *testing.T) {
	T := Table{"X": {
		{MinMW: 0, MaxMW: 1000, Structure: "first"},
		{MinMW: 100, MaxMW: 200, MaxHydrophobic: 3, Structure: "second"},
		{MinMW: 500, Structure: "third"},
	}}
	for _, c := range []struct {
		mw   float64
		nh   int
		want string
	}{{50, 0, "first"}, {150, 2, "second"}, {150, 4, "first"}, {600, 0, "third"}, {5000, 0, "third"}} {
		ch, err := T.Select("x", c.mw, c.nh)
		require.NoError(Te, err)
		assert.Equal(Te, c.want, ch.Structure)
		assert.Equal(Te, "X", ch.Isoform)
	}
}

func TestResolve(Te *testing.T) {
	T := Table{"2D6": nil, "2*": nil, "3A?": nil, "3A4": nil}
	for in, want := range map[string]string{"2d6": "2D6", "CYP2C9": "2*", "3A5": "3A?", "cyp3a4": "3A4"} {
		got, err := T.Resolve(in)
		require.NoError(Te, err, in)
		assert.Equal(Te, want, got, in)
	}
	_, err := DefaultTable().Resolve("2C19")
	assert.True(Te, errors.Is(err, somcyp.ErrUnsupportedIsoform))
	_, err = DefaultTable().Select("2C19", 300, 0)
	assert.True(Te, errors.Is(err, somcyp.ErrUnsupportedIsoform))
}

func TestNoConformation(Te *testing.T) {
	_, err := DefaultTable().Select("3A4", 10000, 0)
	assert.True(Te, errors.Is(err, somcyp.ErrNoConformation))
}

func TestSelectForAtoms(Te *testing.T) {
	atoms := []*somcyp.Atom{{Serial: 1, Type: "C.ar"}, {Serial: 2, Type: "C.ar"}, {Serial: 3, Type: "O.3"}, {Serial: 4, Type: "H"}}
	ch, mw, nh, err := DefaultTable().SelectForAtoms("2D6", atoms)
	require.NoError(Te, err)
	assert.Equal(Te, 2, nh)
	assert.InDelta(Te, 2*12.011+15.999+1.008, mw, 1e-9)
	assert.Equal(Te, "2D6_PPD_70_216.mol2", ch.Structure)
	_, _, _, err = DefaultTable().SelectForAtoms("2D6", []*somcyp.Atom{{Serial: 1, Type: "Qq.3"}})
	assert.True(Te, errors.Is(err, somcyp.ErrMol2))
}

const yamlTable = `
2D6:
  - min_mw: 0
    max_mw: 280
    structure: small.mol2
  - min_mw: 280
    max_mw: 9999
    max_hydrophobic: 18
    structure: few_hydrophobic.mol2
"3*":
  - structure: any.mol2
`

func TestLoadTable(Te *testing.T) {
	T, err := LoadTable(strings.NewReader(yamlTable))
	require.NoError(Te, err)
	require.Len(Te, T["2D6"], 2)
	assert.Equal(Te, 18, T["2D6"][1].MaxHydrophobic)
	ch, err := T.Select("3A4", 500, 50)
	require.NoError(Te, err)
	assert.Equal(Te, "any.mol2", ch.Structure)
	_, err = T.Select("2D6", 300, 19)
	assert.True(Te, errors.Is(err, somcyp.ErrNoConformation))

	_, err = LoadTable(strings.NewReader("1A2:\n  - min_mw: 3\n"))
	assert.True(Te, errors.Is(err, somcyp.ErrNoConformation))
	_, err = LoadTable(strings.NewReader("- a\n- b\n"))
	assert.Error(Te, err)
}
