/*
 * table.go, part of somcyp.
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
	"math"
)

//Column is one signal in a Table. Values are parallel to the atoms of the table,
//each in [0,1], or NaN when the signal has nothing to say about the atom.
type Column struct {
	Name   string
	Cutoff float64
	Values []float64
	Labels []string //categorical label per atom, nil if the column has none.
}

func (C *Column) copy() Column {
	r := Column{Name: C.Name, Cutoff: C.Cutoff, Values: make([]float64, len(C.Values))}
	copy(r.Values, C.Values)
	if C.Labels != nil {
		r.Labels = make([]string, len(C.Labels))
		copy(r.Labels, C.Labels)
	}
	return r
}

//Table holds per-atom signals, keyed by the atom serial number.
//The atoms are those of the reactivity table that created it.
type Table struct {
	atoms   []int
	index   map[int]int
	columns []*Column
	byname  map[string]*Column
	poses   []string
	contact [][]bool //pose, atom
}

func newTable(atoms []int) *Table {
	T := &Table{atoms: atoms, index: make(map[int]int, len(atoms)), byname: make(map[string]*Column)}
	for i, a := range atoms {
		T.index[a] = i
	}
	return T
}

func (T *Table) add(c *Column) {
	T.columns = append(T.columns, c)
	T.byname[c.Name] = c
}

//Atoms returns the atom serial numbers, in table order.
func (T *Table) Atoms() []int {
	r := make([]int, len(T.atoms))
	copy(r, T.atoms)
	return r
}

//Has returns true if atom is in the table.
func (T *Table) Has(atom int) bool {
	_, ok := T.index[atom]
	return ok
}

//Columns returns the names of the columns, in the order they were added.
func (T *Table) Columns() []string {
	r := make([]string, len(T.columns))
	for i, c := range T.columns {
		r[i] = c.Name
	}
	return r
}

//Column returns a copy of the column with the given name, and false if there is no such column.
func (T *Table) Column(name string) (Column, bool) {
	c, ok := T.byname[name]
	if !ok {
		return Column{}, false
	}
	return c.copy(), true
}

//Value returns the value of column for atom (NaN if missing), and false if either is not in the table.
func (T *Table) Value(atom int, column string) (float64, bool) {
	c, ok := T.byname[column]
	if !ok {
		return math.NaN(), false
	}
	i, ok := T.index[atom]
	if !ok {
		return math.NaN(), false
	}
	return c.Values[i], true
}

//Label returns the categorical label of column for atom, or an empty string.
func (T *Table) Label(atom int, column string) string {
	c, ok := T.byname[column]
	if !ok || c.Labels == nil {
		return ""
	}
	i, ok := T.index[atom]
	if !ok {
		return ""
	}
	return c.Labels[i]
}

//Highlight returns the atoms with a value of column equal or above the column's cutoff,
//in table order. Missing values are never highlighted.
func (T *Table) Highlight(column string) []int {
	c, ok := T.byname[column]
	if !ok {
		return nil
	}
	var r []int
	for i, v := range c.Values {
		if !math.IsNaN(v) && v >= c.Cutoff {
			r = append(r, T.atoms[i])
		}
	}
	return r
}

//Poses returns the poses with contact events, in order of first appearance.
func (T *Table) Poses() []string {
	r := make([]string, len(T.poses))
	copy(r, T.poses)
	return r
}

//Contact returns true if atom had a contact event in pose.
func (T *Table) Contact(pose string, atom int) bool {
	i, ok := T.index[atom]
	if !ok {
		return false
	}
	for p, name := range T.poses {
		if name == pose {
			return T.contact[p][i]
		}
	}
	return false
}
